package handler

import "net/http"

type CancelUpdateResponse struct {
	Requested bool `json:"requested"`
}

// CancelUpdate requests cooperative cancellation of the in-flight manual
// fetch; a no-op when nothing is running.
func (h *Handler) CancelUpdate(w http.ResponseWriter, _ *http.Request) {
	h.presenter.CancelUpdate()
	writeJSON(w, http.StatusAccepted, CancelUpdateResponse{Requested: true})
}
