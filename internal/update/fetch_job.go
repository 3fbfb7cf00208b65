package update

import (
	"context"
	"fmt"
	"time"

	"oandarates/internal/adapters"
	"oandarates/internal/domain"

	"github.com/sirupsen/logrus"
)

// Mode distinguishes preview fetches from settling fetches. Manual fetches
// are never persisted: the store holds only end-of-day values written by
// automatic (scheduled or initial) runs.
type Mode string

const (
	ModeManual    Mode = "manual"
	ModeAutomatic Mode = "automatic"
)

// JobState is the terminal state of a fetch job run.
type JobState string

const (
	JobSucceeded JobState = "succeeded"
	JobFailed    JobState = "failed"
	JobCancelled JobState = "cancelled"
)

// FetchOutcome reports a finished run. Document and Date are set only on
// success; Err only on failure.
type FetchOutcome struct {
	State    JobState
	Date     time.Time
	Document *domain.RatesDocument
	Err      error
}

// FetchJob calls the remote source and, in automatic mode, settles the
// result into the store. Cancellation is cooperative: the token is checked
// immediately before the network call and immediately before persisting.
// A run past both checkpoints completes even if cancellation was requested.
type FetchJob struct {
	client  adapters.RatesClient
	repo    adapters.SnapshotRepository
	cache   adapters.HistoryCache
	timeout time.Duration
	now     func() time.Time
}

func NewFetchJob(client adapters.RatesClient, repo adapters.SnapshotRepository, cache adapters.HistoryCache, timeout time.Duration) *FetchJob {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &FetchJob{client: client, repo: repo, cache: cache, timeout: timeout, now: time.Now}
}

func (j *FetchJob) Run(ctx context.Context, execID string, mode Mode, token *Token) FetchOutcome {
	if token.Requested() {
		logrus.Infof("Fetch job %s cancelled before network call", execID)
		return FetchOutcome{State: JobCancelled}
	}

	reqCtx, cancel := context.WithTimeout(ctx, j.timeout)
	defer cancel()

	doc, raw, err := j.client.GetFinancingRates(reqCtx)
	if err != nil {
		logrus.WithError(err).Errorf("Fetch job %s failed", execID)
		return FetchOutcome{State: JobFailed, Err: err}
	}

	if token.Requested() {
		logrus.Infof("Fetch job %s cancelled before persisting", execID)
		return FetchOutcome{State: JobCancelled}
	}

	today := domain.SnapshotDate(j.now())

	if mode == ModeAutomatic {
		snapshot := domain.RateSnapshot{Date: today, RawPayload: raw}
		if err = j.repo.Save(ctx, snapshot); err != nil {
			logrus.WithError(err).Errorf("Fetch job %s could not persist snapshot", execID)
			return FetchOutcome{State: JobFailed, Err: fmt.Errorf("failed to persist snapshot: %w", err)}
		}
		// a new snapshot can change history for any instrument
		j.cache.InvalidateAll()
		logrus.Infof("Fetch job %s persisted snapshot for %s", execID, snapshot.DateKey())
	}

	return FetchOutcome{State: JobSucceeded, Date: today, Document: doc}
}
