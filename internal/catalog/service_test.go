package catalog

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/starford/raido/internal/apperr"
	"github.com/starford/raido/internal/models"
	"github.com/starford/raido/internal/store"
)

func testService(t *testing.T) *Service {
	t.Helper()
	f, err := os.CreateTemp("", "raido-catalog-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := store.Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewService(db)
}

func validInput() Input {
	return Input{
		Title:       "Checkout Flow",
		Description: "Mobile checkout prototype",
		ExternalURL: "https://www.figma.com/proto/abc/Checkout",
		Category:    "mobile-app",
		Tags:        "ios, payments",
	}
}

func TestCreateThenGet_RoundTrip(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("id not assigned")
	}
	if !created.CreatedAt.Equal(created.UpdatedAt) {
		t.Errorf("createdAt %v != updatedAt %v after create", created.CreatedAt, created.UpdatedAt)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "Checkout Flow" || got.Description != "Mobile checkout prototype" {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if got.Category != models.CategoryMobileApp {
		t.Errorf("category = %q", got.Category)
	}
	if len(got.Tags) != 2 || got.Tags[0] != "ios" || got.Tags[1] != "payments" {
		t.Errorf("tags = %v", got.Tags)
	}
}

func TestCreate_TrimsWhitespace(t *testing.T) {
	svc := testService(t)
	in := validInput()
	in.Title = "  Padded  "
	in.Description = " d "

	rec, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Title != "Padded" || rec.Description != "d" {
		t.Errorf("fields not trimmed: %q, %q", rec.Title, rec.Description)
	}
}

func TestCreate_EmptyTitleRejected(t *testing.T) {
	svc := testService(t)
	in := validInput()
	in.Title = "   "

	_, err := svc.Create(context.Background(), in)
	if !apperr.IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if !strings.Contains(err.Error(), "title") {
		t.Errorf("message should name the field: %q", err.Error())
	}
}

func TestCreate_MissingHostMarkerRejected(t *testing.T) {
	svc := testService(t)
	in := validInput()
	in.ExternalURL = "https://example.com/file/abc"

	_, err := svc.Create(context.Background(), in)
	if !apperr.IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestCreate_MissingPathMarkerRejected(t *testing.T) {
	svc := testService(t)
	in := validInput()
	in.ExternalURL = "https://www.figma.com/design/abc"

	_, err := svc.Create(context.Background(), in)
	if !apperr.IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestCreate_TitleTooLongRejected(t *testing.T) {
	svc := testService(t)
	in := validInput()
	in.Title = strings.Repeat("x", 201)

	if _, err := svc.Create(context.Background(), in); !apperr.IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestCreate_TagTooLongRejected(t *testing.T) {
	svc := testService(t)
	in := validInput()
	in.Tags = "ok," + strings.Repeat("y", 51)

	if _, err := svc.Create(context.Background(), in); !apperr.IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
}

func TestCreate_UnrecognizedCategoryDefaultsToOther(t *testing.T) {
	svc := testService(t)
	in := validInput()
	in.Category = "board-game"

	rec, err := svc.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Category != models.CategoryOther {
		t.Errorf("category = %q, want other", rec.Category)
	}
}

func TestSplitTags(t *testing.T) {
	cases := []struct {
		raw  string
		want []string
	}{
		{"a, b ,, c", []string{"a", "b", "c"}},
		{"", []string{}},
		{" , ,", []string{}},
		{"solo", []string{"solo"}},
		{"dup,dup", []string{"dup", "dup"}},
	}
	for _, c := range cases {
		got := splitTags(c.raw)
		if len(got) != len(c.want) {
			t.Errorf("splitTags(%q) = %v, want %v", c.raw, got, c.want)
			continue
		}
		for i := range got {
			if got[i] != c.want[i] {
				t.Errorf("splitTags(%q)[%d] = %q, want %q", c.raw, i, got[i], c.want[i])
			}
		}
	}
}

func TestUpdate_ReplacesFieldsAndRefreshesUpdatedAt(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Pin the clock forward so updatedAt strictly increases.
	svc.now = func() time.Time { return created.CreatedAt.Add(time.Minute) }

	in := validInput()
	in.Title = "Checkout Flow v2"
	in.Tags = ""
	updated, err := svc.Update(ctx, created.ID, in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("id changed on update")
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("createdAt changed: %v, want %v", updated.CreatedAt, created.CreatedAt)
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("updatedAt did not increase: %v vs %v", updated.UpdatedAt, created.UpdatedAt)
	}

	got, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Title != "Checkout Flow v2" {
		t.Errorf("title = %q", got.Title)
	}
	if len(got.Tags) != 0 {
		t.Errorf("omitting tags should clear them, got %v", got.Tags)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	svc := testService(t)
	_, err := svc.Update(context.Background(), "missing", validInput())
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteThenGet_NotFound(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, created.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("Get after delete = %v, want ErrNotFound", err)
	}
}

func TestDelete_NonexistentIsNotSilent(t *testing.T) {
	svc := testService(t)
	if err := svc.Delete(context.Background(), "missing"); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestCreate_IdenticalInputsGetDistinctIDs(t *testing.T) {
	svc := testService(t)
	ctx := context.Background()

	a, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create a: %v", err)
	}
	b, err := svc.Create(ctx, validInput())
	if err != nil {
		t.Fatalf("Create b: %v", err)
	}
	if a.ID == b.ID {
		t.Fatalf("ids collide: %s", a.ID)
	}
	if _, err := svc.Get(ctx, a.ID); err != nil {
		t.Errorf("a not retrievable: %v", err)
	}
	if _, err := svc.Get(ctx, b.ID); err != nil {
		t.Errorf("b not retrievable: %v", err)
	}
}
