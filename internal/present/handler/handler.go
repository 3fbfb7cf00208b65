package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"oandarates/internal/domain"
	"oandarates/internal/present"
)

// RatesPresenter is the presenter surface the HTTP layer needs.
type RatesPresenter interface {
	Rows(category string, filter string) ([]present.Row, time.Time)
	Status() (text string, isError bool, buttonsEnabled bool)
	RequestManualUpdate()
	CancelUpdate()
	InstrumentHistory(ctx context.Context, instrument string) ([]domain.HistoryPoint, present.HistoryStats, error)
}

type Handler struct {
	presenter RatesPresenter
}

func NewRatesHandler(presenter RatesPresenter) *Handler {
	return &Handler{presenter: presenter}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorResponse{
		Error: errorMsg,
	})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
