package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"oandarates/internal/domain"
	"oandarates/internal/present"
)

type HistoryPointResponse struct {
	Date      string `json:"date"`
	LongRate  string `json:"long_rate"`
	ShortRate string `json:"short_rate"`
}

type GetHistoryResponse struct {
	Instrument string                 `json:"instrument"`
	Points     []HistoryPointResponse `json:"points"`
	Stats      present.HistoryStats   `json:"stats"`
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	instrument := strings.TrimSpace(chi.URLParam(r, "instrument"))
	if instrument == "" {
		writeError(w, http.StatusBadRequest, "instrument is required")
		return
	}

	points, stats, err := h.presenter.InstrumentHistory(r.Context(), instrument)
	if err != nil {
		if errors.Is(err, domain.ErrNoSnapshots) {
			writeError(w, http.StatusNotFound, "no history for instrument")
			return
		}
		logrus.WithError(err).WithFields(logrus.Fields{
			"instrument": instrument,
		}).Error("failed to load instrument history")
		writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	if len(points) == 0 {
		writeError(w, http.StatusNotFound, "no history for instrument")
		return
	}

	res := GetHistoryResponse{
		Instrument: instrument,
		Points:     make([]HistoryPointResponse, 0, len(points)),
		Stats:      stats,
	}
	for _, p := range points {
		res.Points = append(res.Points, HistoryPointResponse{
			Date:      p.Date.Format(domain.SnapshotDateLayout),
			LongRate:  string(p.LongRate),
			ShortRate: string(p.ShortRate),
		})
	}
	writeJSON(w, http.StatusOK, res)
}
