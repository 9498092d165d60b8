package controller

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/starford/raido/internal/api"
	"github.com/starford/raido/internal/testutil"
)

func testServer(t *testing.T) *HTTPClient {
	t.Helper()
	svc, db := testutil.TestService(t)
	srv := httptest.NewServer(api.NewRouter(svc, db))
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL, srv.Client())
}

func TestHTTPClient_CRUDRoundTrip(t *testing.T) {
	client := testServer(t)
	ctx := context.Background()

	created, err := client.Create(ctx, FormValues{
		Title:       "Onboarding",
		Description: "First-run flow",
		ExternalURL: "https://www.figma.com/proto/onb/Onboarding",
		Category:    "mobile-app",
		Tags:        "flow, mobile",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("no id assigned")
	}

	items, err := client.List(ctx, Query{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Onboarding" {
		t.Fatalf("items = %v", items)
	}

	updated, err := client.Update(ctx, created.ID, FormValues{
		Title:       "Onboarding v2",
		ExternalURL: "https://www.figma.com/proto/onb/Onboarding",
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Title != "Onboarding v2" {
		t.Errorf("title = %q", updated.Title)
	}

	if err := client.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	items, err = client.List(ctx, Query{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("items after delete = %v", items)
	}
}

func TestHTTPClient_ServerMessageSurfaced(t *testing.T) {
	client := testServer(t)

	_, err := client.Create(context.Background(), FormValues{
		Title:       "X",
		ExternalURL: "https://example.com/file/abc",
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "externalUrl") {
		t.Errorf("server message should pass through, got %q", err.Error())
	}
}

func TestHTTPClient_DeleteUnknownID(t *testing.T) {
	client := testServer(t)
	err := client.Delete(context.Background(), "ghost")
	if err == nil {
		t.Fatal("deleting a nonexistent id must not be a silent success")
	}
}

func TestHTTPClient_ListSendsFilterParams(t *testing.T) {
	client := testServer(t)
	ctx := context.Background()

	if _, err := client.Create(ctx, FormValues{
		Title:       "Kit",
		ExternalURL: "https://www.figma.com/file/kit",
		Category:    "ui-kit",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	items, err := client.List(ctx, Query{Search: "kit", Category: "ui-kit", SortBy: "alphabetical"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("items = %v", items)
	}

	items, err = client.List(ctx, Query{Category: "website"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("non-matching category should return empty, got %v", items)
	}
}
