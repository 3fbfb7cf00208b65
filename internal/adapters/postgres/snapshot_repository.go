package postgres

import (
	"context"
	"errors"
	"fmt"

	"oandarates/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SnapshotRepository persists one raw rates document per calendar date.
// Every call checks a connection out of the pool for its own duration;
// nothing holds a session across calls.
type SnapshotRepository struct {
	pool *pgxpool.Pool
}

// Save upserts the snapshot for its date. Re-fetching the same day replaces
// the stored payload; past dates are never touched because fetches are only
// ever issued for today.
func (r *SnapshotRepository) Save(ctx context.Context, snapshot domain.RateSnapshot) error {
	const q = `
        insert into rate_snapshots (snapshot_date, raw_payload)
        values ($1, $2)
        on conflict (snapshot_date) do update
            set raw_payload = excluded.raw_payload,
                updated_at  = now();
    `

	if _, err := r.pool.Exec(ctx, q, snapshot.Date, snapshot.RawPayload); err != nil {
		return fmt.Errorf("failed to save snapshot for %s: %w", snapshot.DateKey(), err)
	}
	return nil
}

func (r *SnapshotRepository) LoadLatest(ctx context.Context) (domain.RateSnapshot, error) {
	const q = `
        select snapshot_date, raw_payload
        from rate_snapshots
        order by snapshot_date desc
        limit 1;
    `

	var s domain.RateSnapshot
	if err := r.pool.QueryRow(ctx, q).Scan(&s.Date, &s.RawPayload); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.RateSnapshot{}, domain.ErrNoSnapshots
		}
		return domain.RateSnapshot{}, fmt.Errorf("failed to select latest snapshot: %w", err)
	}
	s.Date = domain.SnapshotDate(s.Date)
	return s, nil
}

func (r *SnapshotRepository) LoadAll(ctx context.Context) ([]domain.RateSnapshot, error) {
	const q = `
        select snapshot_date, raw_payload
        from rate_snapshots
        order by snapshot_date asc;
    `

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := make([]domain.RateSnapshot, 0, 64)
	for rows.Next() {
		var s domain.RateSnapshot
		if err = rows.Scan(&s.Date, &s.RawPayload); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		s.Date = domain.SnapshotDate(s.Date)
		snapshots = append(snapshots, s)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}
	return snapshots, nil
}

func NewSnapshotRepository(pool *pgxpool.Pool) *SnapshotRepository {
	return &SnapshotRepository{pool: pool}
}
