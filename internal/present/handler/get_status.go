package handler

import "net/http"

type GetStatusResponse struct {
	Status         string `json:"status"`
	IsError        bool   `json:"is_error"`
	ButtonsEnabled bool   `json:"buttons_enabled"`
}

func (h *Handler) GetStatus(w http.ResponseWriter, _ *http.Request) {
	text, isError, buttonsEnabled := h.presenter.Status()
	writeJSON(w, http.StatusOK, GetStatusResponse{
		Status:         text,
		IsError:        isError,
		ButtonsEnabled: buttonsEnabled,
	})
}
