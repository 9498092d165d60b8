// Package api implements the Raido REST API using chi.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/catalog"
	"github.com/starford/raido/internal/store"
)

// Handler holds API route handlers.
type Handler struct {
	svc *catalog.Service
	db  *store.DB
}

// NewHandler creates a new Handler. The store handle is used only for the
// health probe.
func NewHandler(svc *catalog.Service, db *store.DB) *Handler {
	return &Handler{svc: svc, db: db}
}

// writeError maps the error taxonomy onto status codes. Validation messages
// pass through to the caller; infrastructure detail is logged but never
// leaked.
func writeError(w http.ResponseWriter, op string, err error) {
	var ve *apperr.ValidationError
	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorBody(ve.Reason))
	case errors.Is(err, apperr.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody("record not found"))
	default:
		slog.Error(op+" failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
	}
}

// ListRecords handles GET /records with optional search, category, and
// sortBy query parameters.
func (h *Handler) ListRecords(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := store.Filter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Sort:     store.ParseSort(q.Get("sortBy")),
	}
	recs, err := h.svc.List(r.Context(), f)
	if err != nil {
		writeError(w, "list records", err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

// GetRecord handles GET /records/{id}.
func (h *Handler) GetRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := h.svc.Get(r.Context(), id)
	if err != nil {
		writeError(w, "get record", err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// CreateRecord handles POST /records.
func (h *Handler) CreateRecord(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	rec, err := h.svc.Create(r.Context(), req.input())
	if err != nil {
		writeError(w, "create record", err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

// UpdateRecord handles PUT /records/{id} as a full replacement of the
// mutable fields.
func (h *Handler) UpdateRecord(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	id := chi.URLParam(r, "id")
	var req RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	rec, err := h.svc.Update(r.Context(), id, req.input())
	if err != nil {
		writeError(w, "update record", err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// DeleteRecord handles DELETE /records/{id}.
func (h *Handler) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.svc.Delete(r.Context(), id); err != nil {
		writeError(w, "delete record", err)
		return
	}
	writeJSON(w, http.StatusOK, DeleteResponse{Message: "record deleted successfully"})
}

// Health handles GET /health. It always answers 200; storeConnected reflects
// whether the database still responds to a ping.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	connected := h.db.Ping(r.Context()) == nil
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", StoreConnected: connected})
}
