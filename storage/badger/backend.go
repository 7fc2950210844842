package badger

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/poiesic/librarian/storage"
)

const (
	// Request log ids are leased from badger in blocks of this size.
	defaultSequenceBandwidth = 100
)

// Backend is the badger database holding the book catalog and the math
// request log. Repositories share one Backend and partition it by key prefix.
type Backend struct {
	db     *badger.DB
	logger *slog.Logger
}

// slogAdapter routes badger's internal logging onto slog.
type slogAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*slogAdapter)(nil)

func (a *slogAdapter) Errorf(msg string, items ...any) {
	a.logger.Error(strings.TrimSpace(fmt.Sprintf(msg, items...)))
}

func (a *slogAdapter) Warningf(msg string, items ...any) {
	a.logger.Warn(strings.TrimSpace(fmt.Sprintf(msg, items...)))
}

func (a *slogAdapter) Infof(msg string, items ...any) {
	a.logger.Debug(strings.TrimSpace(fmt.Sprintf(msg, items...)))
}

func (a *slogAdapter) Debugf(msg string, items ...any) {
	a.logger.Debug(strings.TrimSpace(fmt.Sprintf(msg, items...)))
}

// OpenBackend opens the library database at dir, creating the directory when
// missing. With inMemory set, dir is ignored and the database lives only as
// long as the process.
func OpenBackend(dir string, inMemory bool) (*Backend, error) {
	var opts badger.Options
	if inMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := ensureDir(dir); err != nil {
			return nil, err
		}
		opts = badger.DefaultOptions(dir)
	}

	logger := slog.Default().With("component", "badger")
	opts = opts.
		WithLogger(&slogAdapter{logger: logger}).
		WithCompression(options.None).
		WithNumVersionsToKeep(1)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open library database: %w", err)
	}

	return &Backend{
		db:     db,
		logger: logger,
	}, nil
}

// ensureDir creates dir if needed and fails if the path is not a directory.
func ensureDir(dir string) error {
	if dir == "" {
		return errors.New("database directory is required")
	}
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return os.MkdirAll(dir, 0o755)
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", dir)
	}
	return nil
}

// Close closes the BadgerDB database.
func (b *Backend) Close() error {
	return b.db.Close()
}

// IsClosed returns true if the database is closed.
func (b *Backend) IsClosed() bool {
	return b.db.IsClosed()
}

// WithTx executes a function within a BadgerDB transaction.
// If isWrite is true, creates a read-write transaction.
// The transaction is automatically discarded if fn returns an error.
func (b *Backend) WithTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	tx := b.db.NewTransaction(isWrite)
	defer tx.Discard()
	return fn(tx)
}

// GetSequence returns a badger sequence, used for request log ids.
func (b *Backend) GetSequence(name string) (*badger.Sequence, error) {
	return b.db.GetSequence([]byte(name), defaultSequenceBandwidth)
}

// WithTransaction runs fn inside a write transaction and commits it when fn
// succeeds. Returns storage.ErrStorageClosed once the database is closed.
func (b *Backend) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if b.db.IsClosed() {
		return storage.ErrStorageClosed
	}
	return b.WithTx(func(tx *badger.Txn) error {
		if err := fn(ctx); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}
