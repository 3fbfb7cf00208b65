package cache

import (
	"context"
	"fmt"

	"oandarates/internal/adapters"
	"oandarates/internal/domain"

	"github.com/dgraph-io/ristretto"
	"github.com/sirupsen/logrus"
)

// RistrettoHistoryCache memoizes per-instrument rate history on top of the
// snapshot repository. A miss replays every stored snapshot and filters by
// instrument; a hit skips the store entirely. Invalidation is always full:
// a fresh snapshot can touch any instrument, so evicting single keys after
// a save would serve stale history.
type RistrettoHistoryCache struct {
	cache *ristretto.Cache
	repo  adapters.SnapshotRepository
}

func NewHistoryCache(repo adapters.SnapshotRepository, maxEntries int64) (*RistrettoHistoryCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxEntries,
		MaxCost:     maxEntries,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create history cache failed: %w", err)
	}
	return &RistrettoHistoryCache{cache: c, repo: repo}, nil
}

func (c *RistrettoHistoryCache) Get(ctx context.Context, instrument string) ([]domain.HistoryPoint, error) {
	if v, ok := c.cache.Get(instrument); ok {
		if points, ok := v.([]domain.HistoryPoint); ok {
			return points, nil
		}
	}

	points, err := c.load(ctx, instrument)
	if err != nil {
		return nil, err
	}
	c.cache.Set(instrument, points, 1)
	return points, nil
}

func (c *RistrettoHistoryCache) InvalidateAll() {
	c.cache.Clear()
}

func (c *RistrettoHistoryCache) Close() { c.cache.Close() }

// load replays all snapshots in date order. Payloads are schema-on-read;
// a day that no longer decodes is skipped rather than failing the lookup.
func (c *RistrettoHistoryCache) load(ctx context.Context, instrument string) ([]domain.HistoryPoint, error) {
	snapshots, err := c.repo.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load history for %q: %w", instrument, err)
	}

	points := make([]domain.HistoryPoint, 0, len(snapshots))
	for _, s := range snapshots {
		doc, decodeErr := domain.DecodeDocument(s.RawPayload)
		if decodeErr != nil {
			logrus.WithError(decodeErr).Warnf("Skipping undecodable snapshot %s", s.DateKey())
			continue
		}
		for _, record := range doc.FinancingRates {
			if record.Instrument != instrument {
				continue
			}
			points = append(points, domain.HistoryPoint{
				Date:      s.Date,
				LongRate:  record.LongRate,
				ShortRate: record.ShortRate,
			})
		}
	}
	return points, nil
}
