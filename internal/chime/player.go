// Package chime rings the kitchen timer bell.
package chime

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/hammamikhairi/whatscooking/internal/domain"
	"github.com/hammamikhairi/whatscooking/internal/logger"
)

const (
	// SampleRate of the synthesized chime.
	SampleRate = 24000
	// ChannelCount is mono.
	ChannelCount = 1
)

var _ domain.Chimer = (*Player)(nil)

// Player plays the chime through the system audio device via oto.
type Player struct {
	ctx     *oto.Context
	log     *logger.Logger
	pattern []byte

	mu     sync.Mutex // serializes chimes
	active *oto.Player
}

// NewPlayer initializes the audio context. Returns an error if the audio
// device is unavailable; callers fall back to Silent.
func NewPlayer(log *logger.Logger) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   SampleRate,
		ChannelCount: ChannelCount,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("opening audio device: %w", err)
	}
	<-ready

	log.Debug("chime player initialized (rate=%d, channels=%d)", SampleRate, ChannelCount)
	return &Player{ctx: ctx, log: log, pattern: Pattern(SampleRate)}, nil
}

// Chime plays the bell pattern and blocks until it finishes or ctx is done.
func (p *Player) Chime(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	player := p.ctx.NewPlayer(bytes.NewReader(p.pattern))
	p.active = player
	defer func() { p.active = nil }()

	player.Play()
	p.log.Debug("chime: playing %d bytes of PCM", len(p.pattern))

	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for player.IsPlaying() {
		select {
		case <-ctx.Done():
			player.Pause()
			p.log.Debug("chime: interrupted")
			player.Close()
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return player.Close()
}
