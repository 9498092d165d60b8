// Package testutil provides shared test helpers for setting up stores and services.
package testutil

import (
	"os"
	"testing"

	"github.com/starford/raido/internal/catalog"
	"github.com/starford/raido/internal/store"
)

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *store.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "raido-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := store.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// TestService creates a catalog service backed by a temporary store.
func TestService(t *testing.T) (*catalog.Service, *store.DB) {
	t.Helper()
	db := TestDB(t)
	return catalog.NewService(db), db
}
