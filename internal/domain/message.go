package domain

import "time"

// UpdateMessage is a tagged message pushed from background jobs to the
// presentation layer. Messages are immutable once constructed; ownership
// moves to the queue on push and to the consumer on drain.
type UpdateMessage interface {
	updateMessage()
}

// StatusMessage carries a human-readable status line. Every terminal fetch
// outcome produces exactly one of these.
type StatusMessage struct {
	Text    string
	IsError bool
}

// DataReadyMessage delivers a freshly decoded rates document. Date is the
// calendar day the document belongs to (today for fetches, the stored date
// for an initial load from the database).
type DataReadyMessage struct {
	Date     time.Time
	Document *RatesDocument
}

// ButtonsEnabledMessage toggles the manual-update control while a manual
// job is in flight.
type ButtonsEnabledMessage struct {
	Enabled bool
}

func (StatusMessage) updateMessage()         {}
func (DataReadyMessage) updateMessage()      {}
func (ButtonsEnabledMessage) updateMessage() {}
