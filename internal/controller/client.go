package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/starford/raido/internal/models"
)

// HTTPClient talks to the Raido REST API. It satisfies the Client interface.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient creates a client for the API at baseURL (no trailing slash).
// httpClient may be nil, in which case http.DefaultClient is used.
func NewHTTPClient(baseURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &HTTPClient{baseURL: baseURL, http: httpClient}
}

var _ Client = (*HTTPClient)(nil)

// List fetches /records with the query's filter parameters.
func (c *HTTPClient) List(ctx context.Context, q Query) ([]models.Record, error) {
	params := url.Values{}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.SortBy != "" {
		params.Set("sortBy", q.SortBy)
	}
	u := c.baseURL + "/records"
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	var out []models.Record
	if err := c.do(ctx, http.MethodGet, u, nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []models.Record{}
	}
	return out, nil
}

// Create posts a new record.
func (c *HTTPClient) Create(ctx context.Context, v FormValues) (*models.Record, error) {
	var rec models.Record
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/records", payload(v), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update replaces the record with the given id.
func (c *HTTPClient) Update(ctx context.Context, id string, v FormValues) (*models.Record, error) {
	var rec models.Record
	if err := c.do(ctx, http.MethodPut, c.baseURL+"/records/"+url.PathEscape(id), payload(v), &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete removes the record with the given id.
func (c *HTTPClient) Delete(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, c.baseURL+"/records/"+url.PathEscape(id), nil, nil)
}

func payload(v FormValues) map[string]string {
	return map[string]string{
		"title":       v.Title,
		"description": v.Description,
		"externalUrl": v.ExternalURL,
		"category":    v.Category,
		"tags":        v.Tags,
	}
}

// do issues the request and decodes the response into out (when non-nil).
// Non-2xx responses are turned into errors carrying the server's message so
// the controller can surface it verbatim.
func (c *HTTPClient) do(ctx context.Context, method, u string, body any, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return err
		}
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, u, rd)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		if decErr := json.NewDecoder(resp.Body).Decode(&e); decErr == nil && e.Error != "" {
			return fmt.Errorf("%s", e.Error)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
