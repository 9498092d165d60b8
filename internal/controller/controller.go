// Package controller keeps a display-ready record list synchronized with the
// catalog service under user-driven filter, sort, and CRUD actions, and
// manages the modal layer of the UI.
package controller

import (
	"context"
	"strings"
	"sync"

	"github.com/starford/raido/internal/figma"
	"github.com/starford/raido/internal/models"
)

// Query is the filter state the controller sends with every list fetch.
type Query struct {
	Search   string
	Category string
	SortBy   string
}

func (q Query) isZero() bool {
	return q.Search == "" && q.Category == ""
}

// FormValues carries the edit-form fields. Tags is the comma-separated form
// the catalog expects.
type FormValues struct {
	Title       string
	Description string
	ExternalURL string
	Category    string
	Tags        string
}

// Client is the REST surface the controller talks to.
type Client interface {
	List(ctx context.Context, q Query) ([]models.Record, error)
	Create(ctx context.Context, v FormValues) (*models.Record, error)
	Update(ctx context.Context, id string, v FormValues) (*models.Record, error)
	Delete(ctx context.Context, id string) error
}

// EmptyState tells the view which empty-state message to show.
type EmptyState int

const (
	// EmptyHidden means there are records to show.
	EmptyHidden EmptyState = iota
	// EmptyNoRecords means the catalog holds no records at all.
	EmptyNoRecords
	// EmptyNoMatches means records exist but none match the active filter.
	EmptyNoMatches
)

// Modal enumerates the modal layer states. At most one modal is open.
type Modal int

const (
	ModalClosed Modal = iota
	ModalEdit
	ModalDetail
)

// NotifyKind classifies a transient notification.
type NotifyKind int

const (
	NotifySuccess NotifyKind = iota
	NotifyError
)

// View is the rendering surface the controller drives. Implementations are
// expected to be cheap and non-blocking, with the exception of
// ConfirmDelete, which may block on user input.
type View interface {
	RenderList(items []models.Record, empty EmptyState)
	ShowForm(initial FormValues)
	ShowDetail(rec models.Record, embedURL string)
	CloseModals()
	SetBusy(busy bool)
	Notify(kind NotifyKind, msg string)
	ConfirmDelete() bool
}

// Controller holds the client-side catalog state: the last fetched list, the
// currently targeted record id, and the modal layer.
//
// Overlapping Refresh calls are intentionally not serialized: each fetch is
// independent and the last response to arrive wins, so a slow stale response
// can briefly overwrite a fresher one until the next refresh. Mutations
// never patch items locally; the list is only replaced after a refresh.
type Controller struct {
	client Client
	view   View

	mu        sync.Mutex
	items     []models.Record
	editingID string // empty means "create" context
	modal     Modal
	query     Query
}

// New creates a controller bound to a client and a view.
func New(client Client, view View) *Controller {
	return &Controller{client: client, view: view, items: []models.Record{}}
}

// Refresh fetches the list for the current query, replaces items wholesale,
// and re-renders. A failed fetch resets the list and surfaces the error.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	q := c.query
	c.mu.Unlock()

	items, err := c.client.List(ctx, q)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.items = []models.Record{}
		c.view.RenderList(c.items, c.emptyStateLocked())
		c.view.Notify(NotifyError, "Failed to load records. Please try again.")
		return err
	}
	c.items = items
	c.view.RenderList(c.items, c.emptyStateLocked())
	return nil
}

// Filter replaces the query state and refreshes.
func (c *Controller) Filter(ctx context.Context, q Query) error {
	c.mu.Lock()
	c.query = q
	c.mu.Unlock()
	return c.Refresh(ctx)
}

// Submit pre-validates the form, then creates or updates depending on
// whether an edit target is set. Success refreshes the list and closes the
// form; failure surfaces the service's message verbatim and leaves the form
// open.
func (c *Controller) Submit(ctx context.Context, v FormValues) error {
	v.Title = strings.TrimSpace(v.Title)
	v.ExternalURL = strings.TrimSpace(v.ExternalURL)

	// Fast local feedback mirroring the server rules.
	if v.Title == "" || v.ExternalURL == "" {
		c.view.Notify(NotifyError, "Please fill in all required fields.")
		return nil
	}
	if !figma.IsShareURL(v.ExternalURL) {
		c.view.Notify(NotifyError, "Please enter a valid Figma URL.")
		return nil
	}

	c.mu.Lock()
	editingID := c.editingID
	c.mu.Unlock()

	c.view.SetBusy(true)
	defer c.view.SetBusy(false)

	var err error
	if editingID != "" {
		_, err = c.client.Update(ctx, editingID, v)
	} else {
		_, err = c.client.Create(ctx, v)
	}
	if err != nil {
		c.view.Notify(NotifyError, err.Error())
		return err
	}

	_ = c.Refresh(ctx)
	c.closeAll()
	if editingID != "" {
		c.view.Notify(NotifySuccess, "Record updated successfully!")
	} else {
		c.view.Notify(NotifySuccess, "Record added successfully!")
	}
	return nil
}

// RequestDelete asks the view for confirmation, deletes the record, and
// refreshes. A declined confirmation is a silent no-op. A detail view
// targeting the deleted id is closed.
func (c *Controller) RequestDelete(ctx context.Context, id string) error {
	if !c.view.ConfirmDelete() {
		return nil
	}

	c.view.SetBusy(true)
	defer c.view.SetBusy(false)

	if err := c.client.Delete(ctx, id); err != nil {
		c.view.Notify(NotifyError, err.Error())
		return err
	}

	_ = c.Refresh(ctx)

	c.mu.Lock()
	closing := c.modal == ModalDetail && c.editingID == id
	c.mu.Unlock()
	if closing {
		c.closeAll()
	}
	c.view.Notify(NotifySuccess, "Record deleted successfully!")
	return nil
}

// OpenAdd opens the edit form in create context.
func (c *Controller) OpenAdd() {
	c.mu.Lock()
	c.editingID = ""
	c.modal = ModalEdit
	c.mu.Unlock()
	c.view.ShowForm(FormValues{})
}

// OpenEdit opens the edit form pre-populated from the cached list; no fresh
// fetch is made. Unknown ids are ignored.
func (c *Controller) OpenEdit(id string) {
	c.mu.Lock()
	rec, ok := c.findLocked(id)
	if !ok {
		c.mu.Unlock()
		return
	}
	c.editingID = id
	c.modal = ModalEdit
	c.mu.Unlock()

	c.view.ShowForm(FormValues{
		Title:       rec.Title,
		Description: rec.Description,
		ExternalURL: rec.ExternalURL,
		Category:    string(rec.Category),
		Tags:        strings.Join(rec.Tags, ", "),
	})
}

// OpenDetail opens the detail view for a cached record, handing the view an
// embeddable viewer URL. Unknown ids are ignored.
func (c *Controller) OpenDetail(id string) {
	c.mu.Lock()
	rec, ok := c.findLocked(id)
	if !ok {
		c.mu.Unlock()
		return
	}
	c.editingID = id
	c.modal = ModalDetail
	c.mu.Unlock()

	c.view.ShowDetail(rec, figma.EmbedURL(rec.ExternalURL))
}

// CloseAll forces the modal layer closed and clears the edit target.
func (c *Controller) CloseAll() {
	c.closeAll()
}

// HandleEscape closes whatever modal is open, from any state.
func (c *Controller) HandleEscape() {
	c.closeAll()
}

func (c *Controller) closeAll() {
	c.mu.Lock()
	c.modal = ModalClosed
	c.editingID = ""
	c.mu.Unlock()
	c.view.CloseModals()
}

// Items returns a copy of the last fetched list.
func (c *Controller) Items() []models.Record {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Record, len(c.items))
	copy(out, c.items)
	return out
}

// Modal returns the current modal state.
func (c *Controller) Modal() Modal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.modal
}

// EditingID returns the currently targeted record id, or "" for create
// context.
func (c *Controller) EditingID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.editingID
}

// emptyStateLocked decides which empty-state message applies. A zero-valued
// query with an empty list means the catalog is empty; a non-zero query
// means records exist but none match.
func (c *Controller) emptyStateLocked() EmptyState {
	if len(c.items) > 0 {
		return EmptyHidden
	}
	if c.query.isZero() {
		return EmptyNoRecords
	}
	return EmptyNoMatches
}

func (c *Controller) findLocked(id string) (models.Record, bool) {
	for _, rec := range c.items {
		if rec.ID == id {
			return rec, true
		}
	}
	return models.Record{}, false
}
