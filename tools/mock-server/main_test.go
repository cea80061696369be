package main

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func loadTestFixture(t *testing.T) []json.RawMessage {
	t.Helper()
	path := filepath.Join("testdata", "listings.json")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading fixture: %v", err)
	}
	var listings []json.RawMessage
	if err := json.Unmarshal(data, &listings); err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return listings
}

func TestLoadFixture(t *testing.T) {
	fixture := loadTestFixture(t)
	if len(fixture) == 0 {
		t.Fatal("expected listings in fixture")
	}
}

func TestListingsHandler_AllListings(t *testing.T) {
	fixture := loadTestFixture(t)
	handler := listingsHandler(testLogger(), fixture)
	req := httptest.NewRequest(http.MethodGet, "/listings", http.NoBody)
	w := httptest.NewRecorder()

	handler(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d, want %d", w.Code, http.StatusOK)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content-type=%s, want application/json", ct)
	}

	var resp []json.RawMessage
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp) != len(fixture) {
		t.Errorf("listings=%d, want %d", len(resp), len(fixture))
	}
}

func TestListingsHandler_QueryFilter(t *testing.T) {
	fixture := loadTestFixture(t)
	handler := listingsHandler(testLogger(), fixture)
	req := httptest.NewRequest(http.MethodGet, "/listings?q=thinkpad", http.NoBody)
	w := httptest.NewRecorder()

	handler(w, req)

	var resp []struct {
		Title string `json:"title"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp) == 0 {
		t.Fatal("expected case-insensitive matches for thinkpad")
	}
	if len(resp) == len(fixture) {
		t.Error("expected query to filter out non-matching listings")
	}
}

func TestListingsHandler_Limit(t *testing.T) {
	fixture := loadTestFixture(t)
	handler := listingsHandler(testLogger(), fixture)
	req := httptest.NewRequest(http.MethodGet, "/listings?limit=2", http.NoBody)
	w := httptest.NewRecorder()

	handler(w, req)

	var resp []json.RawMessage
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp) != 2 {
		t.Errorf("listings=%d, want 2", len(resp))
	}
}

func TestListingsHandler_NoResults(t *testing.T) {
	fixture := loadTestFixture(t)
	handler := listingsHandler(testLogger(), fixture)
	req := httptest.NewRequest(http.MethodGet, "/listings?q=nonexistent_xyz_item", http.NoBody)
	w := httptest.NewRecorder()

	handler(w, req)

	var resp []json.RawMessage
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp == nil {
		t.Error("expected empty array, got nil")
	}
	if len(resp) != 0 {
		t.Errorf("listings=%d, want 0", len(resp))
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}
