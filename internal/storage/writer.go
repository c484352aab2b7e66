package storage

import (
	"context"
)

// Committer ends a write transaction.
type Committer interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// Writer exposes tables bound to a single write transaction.
type Writer struct {
	tx Committer
	Reader
}

func NewWriter(tx Committer, reader Reader) *Writer {
	return &Writer{
		tx:     tx,
		Reader: reader,
	}
}

func (w *Writer) Commit() error {
	return w.tx.Commit(context.Background())
}

func (w *Writer) Rollback() error {
	return w.tx.Rollback(context.Background())
}
