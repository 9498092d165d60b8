package api

import "github.com/starford/raido/internal/catalog"

// RecordRequest is the request body for creating or updating a record.
// Tags is a comma-separated string; the catalog splits and cleans it.
type RecordRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ExternalURL string `json:"externalUrl"`
	Category    string `json:"category"`
	Tags        string `json:"tags"`
}

func (r RecordRequest) input() catalog.Input {
	return catalog.Input{
		Title:       r.Title,
		Description: r.Description,
		ExternalURL: r.ExternalURL,
		Category:    r.Category,
		Tags:        r.Tags,
	}
}

// DeleteResponse confirms a successful delete.
type DeleteResponse struct {
	Message string `json:"message"`
}

// HealthResponse is the health check payload.
type HealthResponse struct {
	Status         string `json:"status"`
	StoreConnected bool   `json:"storeConnected"`
}
