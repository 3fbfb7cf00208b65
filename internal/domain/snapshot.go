package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// SnapshotDateLayout is the canonical form of a snapshot's primary key.
const SnapshotDateLayout = "2006-01-02"

// RateSnapshot is one day's full API response, stored verbatim.
// At most one snapshot exists per calendar date; a re-fetch for the
// same date replaces the previous payload.
type RateSnapshot struct {
	Date       time.Time
	RawPayload []byte
}

// DateKey returns the snapshot date formatted as its storage key.
func (s RateSnapshot) DateKey() string {
	return s.Date.Format(SnapshotDateLayout)
}

// SnapshotDate truncates t to a UTC calendar date.
func SnapshotDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// RatesDocument is the decoded shape of a snapshot payload. Only the
// financingRates array is interpreted; the raw payload stays authoritative.
type RatesDocument struct {
	FinancingRates []RateRecord `json:"financingRates"`
}

// RateRecord is a single instrument's entry inside a document. Rates come
// from the API as fractions (0.0123 == 1.23%); charge/units/days fields
// show up as either numbers or strings depending on instrument type.
type RateRecord struct {
	Instrument  string     `json:"instrument"`
	Currency    string     `json:"currency"`
	LongRate    FlexNumber `json:"longRate"`
	ShortRate   FlexNumber `json:"shortRate"`
	LongCharge  FlexNumber `json:"longCharge"`
	ShortCharge FlexNumber `json:"shortCharge"`
	Units       FlexNumber `json:"units"`
	Days        FlexNumber `json:"days"`
}

// LongRatePercent returns the long financing rate as a percentage.
func (r RateRecord) LongRatePercent() (float64, bool) {
	v, ok := r.LongRate.Float64()
	return v * 100, ok
}

// ShortRatePercent returns the short financing rate as a percentage.
func (r RateRecord) ShortRatePercent() (float64, bool) {
	v, ok := r.ShortRate.Float64()
	return v * 100, ok
}

// FlexNumber decodes a JSON value that may arrive as a number, a string,
// or null, and keeps its textual form for display.
type FlexNumber string

func (f *FlexNumber) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexNumber(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexNumber(n.String())
	return nil
}

func (f FlexNumber) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(f))
}

func (f FlexNumber) String() string { return string(f) }

// Float64 parses the value; ok is false for empty or non-numeric text.
func (f FlexNumber) Float64() (float64, bool) {
	if f == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(string(f), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// DecodeDocument parses a raw snapshot payload. A payload without the
// financingRates array is malformed, not empty.
func DecodeDocument(raw []byte) (*RatesDocument, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("failed to decode rates payload: %w", err)
	}
	rawRates, ok := probe["financingRates"]
	if !ok {
		return nil, ErrMalformedResponse
	}
	var doc RatesDocument
	if err := json.Unmarshal(rawRates, &doc.FinancingRates); err != nil {
		return nil, fmt.Errorf("failed to decode financingRates: %w", err)
	}
	return &doc, nil
}

// HistoryPoint is one day's long/short rate for a single instrument,
// reconstructed from persisted snapshots.
type HistoryPoint struct {
	Date      time.Time
	LongRate  FlexNumber
	ShortRate FlexNumber
}
