package update

import "sync/atomic"

// Token is a one-shot cancellation flag: exactly one transition from unset
// to requested, any number of readers. A fresh token is issued per manual
// fetch and never reused, so a stale request can't cancel a later job.
type Token struct {
	requested atomic.Bool
}

func NewToken() *Token {
	return &Token{}
}

// Request marks cancellation; returns false if it was already requested.
func (t *Token) Request() bool {
	return t.requested.CompareAndSwap(false, true)
}

func (t *Token) Requested() bool {
	return t.requested.Load()
}
