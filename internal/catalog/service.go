// Package catalog implements the record lifecycle: validation,
// normalization, persistence, and the list query contract.
package catalog

import (
	"context"
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/figma"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/store"
)

// Input carries the raw client-supplied fields for create and update.
// Tags is the raw comma-separated form; it is split, trimmed, and cleaned
// during normalization. Duplicate tags are kept as provided.
type Input struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ExternalURL string `json:"externalUrl"`
	Category    string `json:"category"`
	Tags        string `json:"tags"`
}

// Service owns the canonical record schema and is the sole writer to the
// store.
type Service struct {
	db  *store.DB
	now func() time.Time
}

// NewService creates a catalog service on top of the given store.
func NewService(db *store.DB) *Service {
	return &Service{db: db, now: time.Now}
}

// Create validates and normalizes the input, assigns an id and timestamps,
// and persists the record. CreatedAt equals UpdatedAt on the stored record.
func (s *Service) Create(ctx context.Context, in Input) (*models.Record, error) {
	rec, err := normalize(in)
	if err != nil {
		return nil, err
	}
	now := s.now()
	rec.ID = uuid.NewString()
	rec.CreatedAt = now
	rec.UpdatedAt = now
	if err := s.db.Insert(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Update replaces every mutable field of an existing record. Supplying no
// tags clears tags. CreatedAt is preserved; UpdatedAt is refreshed.
func (s *Service) Update(ctx context.Context, id string, in Input) (*models.Record, error) {
	rec, err := normalize(in)
	if err != nil {
		return nil, err
	}
	existing, err := s.db.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	rec.ID = id
	rec.CreatedAt = existing.CreatedAt
	rec.UpdatedAt = s.now()
	if err := s.db.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete hard-deletes the record with the given id.
func (s *Service) Delete(ctx context.Context, id string) error {
	return s.db.Delete(ctx, id)
}

// Get returns the record with the given id, or apperr.ErrNotFound.
func (s *Service) Get(ctx context.Context, id string) (*models.Record, error) {
	return s.db.Get(ctx, id)
}

// List returns the full ordered result set matching the filter.
func (s *Service) List(ctx context.Context, f store.Filter) ([]models.Record, error) {
	return s.db.List(ctx, f)
}

// normalize trims the input, applies category and tag normalization, and
// validates the result. Validation failures come back as
// *apperr.ValidationError so the boundary can map them to 400.
func normalize(in Input) (*models.Record, error) {
	rec := &models.Record{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		ExternalURL: strings.TrimSpace(in.ExternalURL),
		Category:    models.ParseCategory(strings.TrimSpace(in.Category)),
		Tags:        splitTags(in.Tags),
	}
	if err := validateRecord(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func validateRecord(rec *models.Record) error {
	err := validation.ValidateStruct(rec,
		validation.Field(&rec.Title, validation.Required, validation.RuneLength(1, 200)),
		validation.Field(&rec.Description, validation.RuneLength(0, 1000)),
		validation.Field(&rec.ExternalURL, validation.Required, validation.By(figmaShareURL)),
		validation.Field(&rec.Tags, validation.Each(validation.RuneLength(0, 50))),
	)
	if err != nil {
		return apperr.Validation(err.Error())
	}
	return nil
}

func figmaShareURL(value interface{}) error {
	s, _ := value.(string)
	if !figma.IsShareURL(s) {
		return errors.New("must be a Figma prototype or file URL")
	}
	return nil
}

// splitTags turns the raw comma-separated tag string into a cleaned slice:
// entries are trimmed and empties discarded, order and duplicates preserved.
func splitTags(raw string) []string {
	out := []string{}
	for _, part := range strings.Split(raw, ",") {
		tag := strings.TrimSpace(part)
		if tag == "" {
			continue
		}
		out = append(out, tag)
	}
	return out
}
