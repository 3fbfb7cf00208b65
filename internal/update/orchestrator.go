package update

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"oandarates/internal/adapters"
	"oandarates/internal/domain"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Orchestrator owns the scheduler, the worker pool, the live cancellation
// token and the update queue. The presentation layer only ever talks to it:
// it requests updates, cancels them, drains messages and asks for history.
// All fetch work happens on pool workers; results travel back exclusively
// as queued messages.
type Orchestrator struct {
	queue *Queue
	pool  *WorkerPool
	sched *Scheduler
	job   *FetchJob
	repo  adapters.SnapshotRepository
	cache adapters.HistoryCache

	ctx context.Context

	mu             sync.Mutex
	current        *Token
	manualInFlight bool
}

func NewOrchestrator(sched *Scheduler, job *FetchJob, repo adapters.SnapshotRepository, cache adapters.HistoryCache, poolSize int) *Orchestrator {
	return &Orchestrator{
		queue: NewQueue(),
		pool:  NewWorkerPool(poolSize),
		sched: sched,
		job:   job,
		repo:  repo,
		cache: cache,
		ctx:   context.Background(),
	}
}

// Start kicks off the initial load and arms the daily trigger. A scheduler
// that fails to start disables automatic updates for the process lifetime
// but leaves manual updates working; the failure surfaces as a status line.
func (o *Orchestrator) Start(ctx context.Context) {
	o.ctx = ctx

	o.pool.Submit(func() { o.initialLoad(ctx) })

	if err := o.sched.Start(ctx, func() { o.scheduledTick() }); err != nil {
		logrus.WithError(err).Error("Failed to start scheduler, automatic updates disabled")
		o.queue.Push(domain.StatusMessage{
			Text:    fmt.Sprintf("Automatic updates disabled: %v", err),
			IsError: true,
		})
		return
	}
	logrus.Info("✅ Scheduler activation successful")
}

// RequestManualUpdate submits a preview fetch. A prior in-flight manual job
// is superseded: its token is cancelled and a fresh one is issued.
func (o *Orchestrator) RequestManualUpdate() {
	o.mu.Lock()
	if o.manualInFlight && o.current != nil {
		o.current.Request()
	}
	token := NewToken()
	o.current = token
	o.manualInFlight = true
	o.mu.Unlock()

	o.queue.Push(domain.ButtonsEnabledMessage{Enabled: false})
	o.queue.Push(domain.StatusMessage{Text: "Fetching new data from API..."})

	execID := uuid.NewString()
	submitted := o.pool.Submit(func() {
		outcome := o.job.Run(o.ctx, execID, ModeManual, token)
		o.finishManual(token, outcome)
	})
	if !submitted {
		logrus.Warnf("Manual update %s rejected, worker pool is shut down", execID)
		o.mu.Lock()
		if o.current == token {
			o.manualInFlight = false
		}
		o.mu.Unlock()
		o.queue.Push(domain.StatusMessage{Text: "Update service is shutting down.", IsError: true})
		o.queue.Push(domain.ButtonsEnabledMessage{Enabled: true})
	}
}

// CancelCurrentUpdate requests cooperative cancellation of the in-flight
// manual job. No-op when nothing is running.
func (o *Orchestrator) CancelCurrentUpdate() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.manualInFlight && o.current != nil {
		o.current.Request()
	}
}

// DrainMessages returns every queued message without blocking; empty when
// nothing is queued. Called from the presentation layer's timer tick.
func (o *Orchestrator) DrainMessages() []domain.UpdateMessage {
	return o.queue.Drain()
}

// History serves per-instrument historical rates through the cache.
func (o *Orchestrator) History(ctx context.Context, instrument string) ([]domain.HistoryPoint, error) {
	return o.cache.Get(ctx, instrument)
}

// Shutdown stops the trigger source first so no new jobs land in a
// draining pool, then waits for in-flight jobs.
func (o *Orchestrator) Shutdown() {
	if err := o.sched.Shutdown(); err != nil {
		logrus.Errorf("Scheduler shutdown error: %v", err)
	}
	o.pool.Shutdown()
}

// initialLoad publishes the stored snapshot if one exists, otherwise falls
// through to a settling fetch.
func (o *Orchestrator) initialLoad(ctx context.Context) {
	o.queue.Push(domain.StatusMessage{Text: "Loading latest data from database..."})

	snapshot, err := o.repo.LoadLatest(ctx)
	switch {
	case err == nil:
		doc, decodeErr := domain.DecodeDocument(snapshot.RawPayload)
		if decodeErr != nil {
			logrus.WithError(decodeErr).Error("Stored snapshot is undecodable, refetching")
			o.runAutomatic(ctx, "Stored data unreadable. Fetching from API...")
			return
		}
		o.queue.Push(domain.DataReadyMessage{Date: snapshot.Date, Document: doc})
		o.queue.Push(domain.StatusMessage{Text: "Data loaded successfully."})
	case errors.Is(err, domain.ErrNoSnapshots):
		o.runAutomatic(ctx, "No local data. Fetching from API...")
	default:
		logrus.WithError(err).Error("Initial load failed")
		o.queue.Push(domain.StatusMessage{Text: fmt.Sprintf("Failed to load local data: %v", err), IsError: true})
	}
}

func (o *Orchestrator) scheduledTick() {
	o.queue.Push(domain.StatusMessage{Text: "Performing scheduled update..."})
	o.pool.Submit(func() { o.runAutomatic(o.ctx, "") })
}

// runAutomatic executes a settling fetch on the calling worker. Automatic
// runs are not user-cancellable; shutdown flows through ctx instead.
func (o *Orchestrator) runAutomatic(ctx context.Context, announce string) {
	if announce != "" {
		o.queue.Push(domain.StatusMessage{Text: announce})
	}
	execID := uuid.NewString()
	outcome := o.job.Run(ctx, execID, ModeAutomatic, NewToken())
	o.publishOutcome(outcome)
}

func (o *Orchestrator) finishManual(token *Token, outcome FetchOutcome) {
	o.mu.Lock()
	isCurrent := o.current == token
	if isCurrent {
		o.manualInFlight = false
	}
	o.mu.Unlock()

	o.publishOutcome(outcome)
	if isCurrent {
		o.queue.Push(domain.ButtonsEnabledMessage{Enabled: true})
	}
}

// publishOutcome converts a terminal job state into exactly one status
// message, plus the data payload on success.
func (o *Orchestrator) publishOutcome(outcome FetchOutcome) {
	switch outcome.State {
	case JobSucceeded:
		o.queue.Push(domain.DataReadyMessage{Date: outcome.Date, Document: outcome.Document})
		o.queue.Push(domain.StatusMessage{Text: "API fetch successful."})
	case JobCancelled:
		o.queue.Push(domain.StatusMessage{Text: "Update cancelled."})
	case JobFailed:
		text := fmt.Sprintf("API fetch failed: %v", outcome.Err)
		if errors.Is(outcome.Err, domain.ErrMalformedResponse) {
			text = "API response format is unexpected."
		}
		o.queue.Push(domain.StatusMessage{Text: text, IsError: true})
	}
}
