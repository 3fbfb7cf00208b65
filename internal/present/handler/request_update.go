package handler

import "net/http"

type RequestUpdateResponse struct {
	Accepted bool `json:"accepted"`
}

// RequestUpdate triggers a manual preview fetch. The fetch runs in the
// background; progress arrives through the status endpoint.
func (h *Handler) RequestUpdate(w http.ResponseWriter, _ *http.Request) {
	h.presenter.RequestManualUpdate()
	writeJSON(w, http.StatusAccepted, RequestUpdateResponse{Accepted: true})
}
