package storage

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"

	"github.com/hammamikhairi/whatscooking/internal/domain"
	"github.com/hammamikhairi/whatscooking/internal/logger"
)

// Compile-time interface check.
var _ domain.BlobStore = (*BadgerStore)(nil)

// BadgerOption configures a BadgerStore.
type BadgerOption func(*badgerConfig)

type badgerConfig struct {
	inMemory   bool
	syncWrites bool
}

// WithInMemory opens Badger without touching disk. Data is lost on Close.
func WithInMemory() BadgerOption {
	return func(c *badgerConfig) {
		c.inMemory = true
		c.syncWrites = false
	}
}

// WithSyncWrites toggles fsync on every write. On by default.
func WithSyncWrites(on bool) BadgerOption {
	return func(c *badgerConfig) {
		c.syncWrites = on
	}
}

// BadgerStore keeps blobs in an embedded BadgerDB. Safe for concurrent use.
type BadgerStore struct {
	db  *badger.DB
	log *logger.Logger
}

// OpenBadger opens (or creates) a Badger database in dir. dir is ignored
// when WithInMemory is given. Call Close when done.
func OpenBadger(dir string, log *logger.Logger, opts ...BadgerOption) (*BadgerStore, error) {
	cfg := badgerConfig{syncWrites: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	var bopts badger.Options
	if cfg.inMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if dir == "" {
			return nil, errors.New("badger store: directory is required")
		}
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating badger directory %s: %w", dir, err)
		}
		bopts = badger.DefaultOptions(dir)
	}

	bopts = bopts.
		WithSyncWrites(cfg.syncWrites).
		WithNumVersionsToKeep(1).
		WithLogger(log)

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("opening badger database: %w", err)
	}

	log.Debug("badger store opened (dir=%q, in-memory=%v)", dir, cfg.inMemory)
	return &BadgerStore{db: db, log: log}, nil
}

// Get returns the blob stored under key.
func (s *BadgerStore) Get(ctx context.Context, key string) ([]byte, error) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return out, nil
}

// Set stores blob under key in its own transaction.
func (s *BadgerStore) Set(ctx context.Context, key string, blob []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), blob)
	})
	if err != nil {
		return fmt.Errorf("writing %s: %w", key, err)
	}
	s.log.Debug("badger store: set %s (%d bytes)", key, len(blob))
	return nil
}

// Close flushes and closes the database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
