// Package database defines the storage interfaces shared by the MariaDB and
// PostgreSQL backends, plus the record types they persist.
package database

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by lookups that match no stored row.
var ErrNotFound = errors.New("not found")

// ImageStore persists face images and answers exact-byte match queries.
type ImageStore interface {
	// StoreImage inserts one image row. Duplicate descriptions are allowed;
	// every call produces a new row.
	StoreImage(ctx context.Context, img StoredImage) error

	// MatchImage scans stored images in storage order and returns the first
	// one whose raw bytes equal data exactly. Returns ErrNotFound when no
	// stored image matches.
	MatchImage(ctx context.Context, data []byte) (*ImageMatch, error)
}

// TaskStore persists free-text reminder tasks.
type TaskStore interface {
	// AddTask inserts one task row with a server-assigned UTC timestamp.
	AddTask(ctx context.Context, text string) error

	// ListTasks returns all task texts in storage (insertion) order.
	ListTasks(ctx context.Context) ([]string, error)

	// DeleteTask deletes every row whose text equals text exactly and
	// reports whether at least one such row existed.
	DeleteTask(ctx context.Context, text string) (bool, error)

	// PurgeOlderThan deletes every row created strictly before cutoff and
	// returns the number of rows removed.
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Store bundles both repositories behind a single backend handle.
type Store interface {
	ImageStore
	TaskStore
	Close() error
}
