package adapters

import (
	"context"

	"oandarates/internal/domain"
)

// RatesClient fetches the current financing-rates document from the remote
// source. Raw is the response body verbatim, suitable for persistence.
type RatesClient interface {
	GetFinancingRates(ctx context.Context) (doc *domain.RatesDocument, raw []byte, err error)
}

// SnapshotRepository stores one snapshot per calendar date. Save is an
// upsert on the date key; LoadAll returns snapshots in ascending date order.
type SnapshotRepository interface {
	Save(ctx context.Context, snapshot domain.RateSnapshot) error
	LoadLatest(ctx context.Context) (domain.RateSnapshot, error)
	LoadAll(ctx context.Context) ([]domain.RateSnapshot, error)
}

// HistoryCache serves per-instrument rate history with memoization.
// InvalidateAll must be called after every persisted save; a new snapshot
// can touch any instrument, so partial invalidation is unsafe.
type HistoryCache interface {
	Get(ctx context.Context, instrument string) ([]domain.HistoryPoint, error)
	InvalidateAll()
}
