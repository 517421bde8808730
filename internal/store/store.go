// Package store persists claims, departments, users, subscriptions,
// notifications and both audit trails in an embedded BadgerDB instance.
//
// Every operation that writes more than one entity runs inside a single
// badger transaction via Update: either every write commits or none
// does. Uniqueness (subscription pairs, department names, user emails
// and usernames) is enforced by key structure inside the transaction,
// so a concurrent duplicate insert fails at commit and is translated to
// the domain conflict error instead of leaking a storage error.
package store

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/SolBenven/proyecto-final-prog-av/internal/model"
)

// Config holds configuration for the embedded database.
type Config struct {
	// Path is the directory for database files. Ignored when InMemory
	// is true.
	Path string

	// InMemory disables disk persistence. Used by tests.
	InMemory bool

	// SyncWrites enables synchronous writes for durability.
	SyncWrites bool

	// Logger receives badger's internal logging. Nil disables it.
	Logger *slog.Logger

	// GCInterval is how often value log garbage collection runs.
	// Zero disables it.
	GCInterval time.Duration
}

// DefaultConfig returns production defaults for the given data
// directory.
func DefaultConfig(path string) Config {
	return Config{
		Path:       path,
		SyncWrites: true,
		GCInterval: 5 * time.Minute,
	}
}

// InMemoryConfig returns a configuration for tests: no disk I/O, no GC.
func InMemoryConfig() Config {
	return Config{InMemory: true}
}

// badgerLogger adapts slog.Logger to badger's Logger interface.
type badgerLogger struct {
	logger *slog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Info(fmt.Sprintf(format, args...))
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Debug(fmt.Sprintf(format, args...))
}

// Store wraps the database and exposes transactional access to every
// entity.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
	stopGC chan struct{}
}

// Open creates and opens a store with the given configuration.
func Open(cfg Config) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, fmt.Errorf("store: path is required for persistent databases")
		}
		if err := os.MkdirAll(cfg.Path, 0o755); err != nil {
			return nil, fmt.Errorf("store: create data dir: %w", err)
		}
		opts = badger.DefaultOptions(filepath.Clean(cfg.Path))
	}
	opts = opts.WithSyncWrites(cfg.SyncWrites)
	if cfg.Logger != nil {
		opts = opts.WithLogger(&badgerLogger{logger: cfg.Logger})
	} else {
		opts = opts.WithLogger(nil)
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	s := &Store{db: db, logger: cfg.Logger, stopGC: make(chan struct{})}
	if cfg.GCInterval > 0 && !cfg.InMemory {
		go s.runGC(cfg.GCInterval)
	}
	return s, nil
}

// OpenInMemory opens an ephemeral store for tests.
func OpenInMemory() (*Store, error) {
	return Open(InMemoryConfig())
}

func (s *Store) runGC(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stopGC:
			return
		case <-ticker.C:
			for {
				if err := s.db.RunValueLogGC(0.5); err != nil {
					break
				}
			}
		}
	}
}

// Close stops background work and closes the database.
func (s *Store) Close() error {
	close(s.stopGC)
	return s.db.Close()
}

// Update runs fn inside one read-write transaction. All writes commit
// together or not at all. A conflicting concurrent commit surfaces as
// the domain conflict error.
func (s *Store) Update(fn func(tx *Tx) error) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return fn(&Tx{txn: txn})
	})
	if errors.Is(err, badger.ErrConflict) {
		return fmt.Errorf("%w: la operación fue rechazada por una escritura concurrente", model.ErrConflict)
	}
	return err
}

// View runs fn inside one read-only transaction.
func (s *Store) View(fn func(tx *Tx) error) error {
	return s.db.View(func(txn *badger.Txn) error {
		return fn(&Tx{txn: txn})
	})
}
