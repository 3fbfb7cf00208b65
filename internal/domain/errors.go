package domain

import "errors"

var (
	ErrNoSnapshots       = errors.New("no snapshots stored")
	ErrMalformedResponse = errors.New("response missing financingRates")
)
