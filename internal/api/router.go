package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/starford/raido/internal/catalog"
	"github.com/starford/raido/internal/store"
)

// NewRouter creates a chi router with all API routes mounted.
func NewRouter(svc *catalog.Service, db *store.DB) chi.Router {
	h := NewHandler(svc, db)

	r := chi.NewRouter()

	// Records CRUD.
	r.Get("/records", h.ListRecords)
	r.Post("/records", h.CreateRecord)
	r.Get("/records/{id}", h.GetRecord)
	r.Put("/records/{id}", h.UpdateRecord)
	r.Delete("/records/{id}", h.DeleteRecord)

	// Health check.
	r.Get("/health", h.Health)

	return r
}
