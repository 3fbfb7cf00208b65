// Package present is the single consumer of the update queue: it drains
// messages on its own timer, keeps the current display state, and never
// reads job state directly.
package present

import (
	"context"
	"sync"
	"time"

	"oandarates/internal/classify"
	"oandarates/internal/domain"

	"github.com/sirupsen/logrus"
)

// UpdateSource is the orchestrator surface the presenter consumes.
type UpdateSource interface {
	DrainMessages() []domain.UpdateMessage
	RequestManualUpdate()
	CancelCurrentUpdate()
	History(ctx context.Context, instrument string) ([]domain.HistoryPoint, error)
}

// Presenter applies queued messages on a single goroutine (the Run loop);
// HTTP handlers read the resulting state under a read lock.
type Presenter struct {
	source     UpdateSource
	classifier *classify.Classifier

	mu             sync.RWMutex
	latestDate     time.Time
	doc            *domain.RatesDocument
	status         string
	statusIsError  bool
	buttonsEnabled bool
}

func NewPresenter(source UpdateSource, classifier *classify.Classifier) *Presenter {
	return &Presenter{
		source:         source,
		classifier:     classifier,
		buttonsEnabled: true,
	}
}

// Run polls the queue until ctx is cancelled. The tick must never block:
// DrainMessages is pop-if-available and Apply is pure state mutation.
func (p *Presenter) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Apply(p.source.DrainMessages())
		}
	}
}

// Apply folds a drained batch into the display state in queue order.
func (p *Presenter) Apply(msgs []domain.UpdateMessage) {
	if len(msgs) == 0 {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, msg := range msgs {
		switch m := msg.(type) {
		case domain.StatusMessage:
			p.status = m.Text
			p.statusIsError = m.IsError
			if m.IsError {
				logrus.Error(m.Text)
			}
		case domain.DataReadyMessage:
			p.doc = m.Document
			p.latestDate = m.Date
		case domain.ButtonsEnabledMessage:
			p.buttonsEnabled = m.Enabled
		default:
			// every tag must be handled; an unknown one is a bug
			logrus.Errorf("Unhandled update message %T", msg)
		}
	}
}

// Rows filters and formats the current document for display.
func (p *Presenter) Rows(category string, filter string) ([]Row, time.Time) {
	p.mu.RLock()
	doc := p.doc
	date := p.latestDate
	p.mu.RUnlock()

	return buildRows(doc, p.classifier, category, filter), date
}

// Status returns the latest status line, its error flag, and whether the
// manual-update control is enabled.
func (p *Presenter) Status() (text string, isError bool, buttonsEnabled bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status, p.statusIsError, p.buttonsEnabled
}

func (p *Presenter) RequestManualUpdate() { p.source.RequestManualUpdate() }
func (p *Presenter) CancelUpdate()        { p.source.CancelCurrentUpdate() }

// InstrumentHistory loads an instrument's history and summary statistics.
func (p *Presenter) InstrumentHistory(ctx context.Context, instrument string) ([]domain.HistoryPoint, HistoryStats, error) {
	points, err := p.source.History(ctx, instrument)
	if err != nil {
		return nil, HistoryStats{}, err
	}
	return points, computeStats(points), nil
}
