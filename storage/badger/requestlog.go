package badger

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/librarian/core"
	"github.com/poiesic/librarian/storage"
)

// RequestLogRepository implements storage.RequestLogRepository for BadgerDB.
// Entries are keyed by a monotonically increasing sequence, so key order is
// insertion order.
type RequestLogRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.RequestLogRepository = (*RequestLogRepository)(nil)

// NewRequestLogRepository creates a new RequestLogRepository.
func NewRequestLogRepository(backend *Backend) (*RequestLogRepository, error) {
	idSeq, err := backend.GetSequence(requestLogIDSeq)
	if err != nil {
		return nil, err
	}

	return &RequestLogRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *RequestLogRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *RequestLogRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AppendRequest stores a new log entry.
func (r *RequestLogRepository) AppendRequest(ctx context.Context, entry *core.RequestLogEntry) (*core.RequestLogEntry, error) {
	if entry != nil && entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if err := core.ValidateRequestLogEntry(entry); err != nil {
		return nil, err
	}

	err := r.backend.WithTx(func(tx *badger.Txn) error {
		nextID, err := r.idSeq.Next()
		if err != nil {
			return err
		}
		// BadgerDB sequences can return 0 on first call, so we skip it
		if nextID == 0 {
			nextID, err = r.idSeq.Next()
			if err != nil {
				return err
			}
		}
		entry.Id = core.ID(nextID)

		value, err := storage.MarshalRequestLogEntry(entry)
		if err != nil {
			return err
		}
		if err := tx.Set(makeRequestLogKey(entry.Id), value); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
	if err != nil {
		return nil, fmt.Errorf("append request log: %w", err)
	}
	return entry, nil
}

// RecentRequests iterates the log in reverse key order.
func (r *RequestLogRepository) RecentRequests(ctx context.Context, limit int) ([]*core.RequestLogEntry, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidQuery
	}

	var results []*core.RequestLogEntry
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		prefix := []byte(requestLogPrefix + ":")
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = prefix
		it := tx.NewIterator(opts)
		defer it.Close()

		// Reverse iteration must start past the last possible key
		seekKey := append(append([]byte{}, prefix...), 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff)
		for it.Seek(seekKey); it.Valid() && len(results) < limit; it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			err := it.Item().Value(func(val []byte) error {
				entry, err := storage.UnmarshalRequestLogEntry(val)
				if err != nil {
					return err
				}
				results = append(results, entry)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return results, nil
}
