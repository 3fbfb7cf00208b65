package handler

import (
	"net/http"
	"strings"

	"oandarates/internal/domain"
	"oandarates/internal/present"
)

type GetRatesResponse struct {
	Date string        `json:"date"`
	Rows []present.Row `json:"rows"`
}

func (h *Handler) GetRates(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	filter := strings.TrimSpace(r.URL.Query().Get("q"))

	rows, date := h.presenter.Rows(category, filter)

	res := GetRatesResponse{Rows: rows}
	if !date.IsZero() {
		res.Date = date.Format(domain.SnapshotDateLayout)
	}
	writeJSON(w, http.StatusOK, res)
}
