package handlers

import (
	"net/http"
)

type healthResponse struct {
	Status         string `json:"status"`
	CurveOverrides int    `json:"curve_overrides"`
	Uploads        bool   `json:"uploads"`
}

// Health reports liveness plus the pricing and upload configuration loaded at startup.
func (a *App) Health(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, healthResponse{
		Status:         "ok",
		CurveOverrides: a.Curves.Len(),
		Uploads:        a.Uploader != nil,
	})
}
