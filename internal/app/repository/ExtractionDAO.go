package repository

import (
	"context"

	"yt2t/internal/app/model"
)

// DefaultListLimit caps ListRecent when callers pass a non-positive limit.
const DefaultListLimit = 50

// MaxListLimit is the largest page ListRecent returns.
const MaxListLimit = 500

// ExtractionDAO persists the outcome of every extraction.
type ExtractionDAO interface {
	Close() error

	// Record inserts rec and sets rec.ID.
	Record(ctx context.Context, rec *model.ExtractionRecord) error

	// ListRecent returns up to limit records, newest first.
	ListRecent(ctx context.Context, limit int) ([]model.ExtractionRecord, error)
}

// ClampLimit applies DefaultListLimit and MaxListLimit.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// NoopDAO is used when history is disabled.
type NoopDAO struct{}

func (NoopDAO) Close() error { return nil }

func (NoopDAO) Record(context.Context, *model.ExtractionRecord) error { return nil }

func (NoopDAO) ListRecent(context.Context, int) ([]model.ExtractionRecord, error) {
	return []model.ExtractionRecord{}, nil
}
