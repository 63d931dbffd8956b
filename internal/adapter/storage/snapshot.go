package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/niksmo/storefront-session/internal/core/domain"
	"github.com/niksmo/storefront-session/internal/core/port"
	"github.com/niksmo/storefront-session/pkg/retry"
	"github.com/syndtr/goleveldb/leveldb"
	ldberrors "github.com/syndtr/goleveldb/leveldb/errors"
)

var _ port.SnapshotStorage = (*SnapshotRepository)(nil)

var snapshotKey = []byte("session/snapshot")

// A SnapshotRepository keeps the serialized session snapshot in an
// embedded key-value database. The codec is JSON: unknown fields are
// ignored and missing fields default, so snapshots written by an
// older build keep loading after the product shape grows.
type SnapshotRepository struct {
	db *leveldb.DB
}

// NewSnapshotRepository opens the database at path, recovering it
// in place when the on-disk state is corrupted.
func NewSnapshotRepository(path string) (SnapshotRepository, error) {
	const op = "SnapshotRepository"
	log := slog.With("op", op)

	db, err := leveldb.OpenFile(path, nil)
	if ldberrors.IsCorrupted(err) {
		log.Warn("snapshot database is corrupted, recovering", "err", err)
		db, err = leveldb.RecoverFile(path, nil)
	}
	if err != nil {
		return SnapshotRepository{}, fmt.Errorf("%s: %w", op, err)
	}
	return SnapshotRepository{db}, nil
}

// LoadSnapshot reads the stored snapshot. A missing key or a
// malformed value yields an empty snapshot, never an error: startup
// must not fail on stale local data.
func (r SnapshotRepository) LoadSnapshot(
	ctx context.Context,
) (domain.SessionSnapshot, error) {
	const op = "SnapshotRepository.LoadSnapshot"
	log := slog.With("op", op)

	if err := ctx.Err(); err != nil {
		return domain.SessionSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	b, err := r.db.Get(snapshotKey, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return domain.SessionSnapshot{}, nil
		}
		return domain.SessionSnapshot{}, fmt.Errorf("%s: %w", op, err)
	}

	var v sessionSnapshotV1
	if err := json.Unmarshal(b, &v); err != nil {
		log.Warn("stored snapshot is malformed, starting empty", "err", err)
		return domain.SessionSnapshot{}, nil
	}
	return v.toDomain(), nil
}

// SaveSnapshot serializes and writes the snapshot. Transient write
// failures are retried briefly; the caller degrades to in-memory
// operation when the error persists.
func (r SnapshotRepository) SaveSnapshot(
	ctx context.Context, snap domain.SessionSnapshot,
) error {
	const op = "SnapshotRepository.SaveSnapshot"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	b, err := json.Marshal(toSnapshotV1(snap))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	retryCfg := retry.RetryConfig{
		MaxAttempts: 3,
		Backoff:     retry.LinearBackoff(25 * time.Millisecond),
	}
	err = retry.Do(ctx, retryCfg, func() error {
		return r.db.Put(snapshotKey, b, nil)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r SnapshotRepository) Close() {
	const op = "SnapshotRepository.Close"
	log := slog.With("op", op)

	log.Info("closing snapshot database...")
	if err := r.db.Close(); err != nil {
		log.Error("failed to close", "err", err)
		return
	}
	log.Info("snapshot database is closed")
}
