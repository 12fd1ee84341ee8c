package handlers

import (
	"net/http"
	"time"

	"themekit/internal/models"
)

// healthBody is the response of the health check.
type healthBody struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// Health reports that the process is up. It does not touch the database.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, healthBody{
		Status:    "Backend is running",
		Timestamp: time.Now().UTC(),
	})
}

// Presets returns the built-in color presets.
func Presets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.Presets())
}
