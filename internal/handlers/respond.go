// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the JSON HTTP API for themes, users, presets
// and health. Handlers own no state beyond the store handles they are given.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"themekit/internal/models"
)

// maxBodyBytes caps request bodies; anything larger is rejected with 400.
const maxBodyBytes = 1 << 20

// genericError is the message returned for every server-side failure.
const genericError = "Something went wrong"

// errorBody is the JSON shape of every error response. Message carries the
// underlying error text outside production only.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// messageBody is returned by delete endpoints.
type messageBody struct {
	Message string `json:"message"`
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("encode response", "error", err)
	}
}

// writeError writes a {"error": msg} response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

// responder maps store errors onto HTTP responses. In production the
// details of server errors stay in the log.
type responder struct {
	production bool
}

// internal logs err and answers 500 with the generic message.
func (rs responder) internal(w http.ResponseWriter, r *http.Request, op string, err error) {
	slog.Error(op, "error", err, "method", r.Method, "path", r.URL.Path)
	body := errorBody{Error: genericError}
	if !rs.production {
		body.Message = err.Error()
	}
	writeJSON(w, http.StatusInternalServerError, body)
}

// storeError answers a failed store write: validation errors become 400,
// duplicate emails 409, anything else 500.
func (rs responder) storeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Message)
	case errors.Is(err, models.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
	default:
		rs.internal(w, r, op, err)
	}
}

// decodeJSON reads a size-limited JSON request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

// pathID parses the {id} route parameter. A malformed id is answered with
// 400 and ok is false.
func pathID(w http.ResponseWriter, r *http.Request, msg string) (id uuid.UUID, ok bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, msg)
		return uuid.Nil, false
	}
	return id, true
}

// NotFound answers unknown routes with a JSON 404.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Route not found")
}

// MethodNotAllowed answers known routes called with the wrong verb.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
}
