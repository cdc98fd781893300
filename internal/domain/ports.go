package domain

import "context"

// BlobStore is the durable key-value capability the recipe store persists
// into. Get returns ErrNotFound when the key has never been written.
// Implementations can be in-memory, file-based, or an embedded database.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, blob []byte) error
}

// IntentParser converts raw user input into structured intents.
type IntentParser interface {
	Parse(ctx context.Context, input string) (*Intent, error)
}

// Notifier delivers messages to the user. Implementations can write to
// stdout or a terminal UI.
type Notifier interface {
	Notify(ctx context.Context, message string) error
	NotifyUrgent(ctx context.Context, message string) error
}

// Chimer plays an audible alert. The silent implementation is used when
// audio is disabled or no device is available.
type Chimer interface {
	Chime(ctx context.Context) error
}
