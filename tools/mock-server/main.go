// Package main implements a mock listings feed for local development.
// It serves canned listings from a JSON fixture so the watcher can be run
// end to end without polling a real marketplace gateway.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

type listingTitle struct {
	Title string `json:"title"`
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/listings.json", "path to listings fixture")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fixture, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "listings", len(fixture))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /listings", listingsHandler(logger, fixture))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock listings feed", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadFixture(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var listings []json.RawMessage
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	return listings, nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func listingsHandler(logger *slog.Logger, fixture []json.RawMessage) http.HandlerFunc {
	// Pre-parse titles for filtering.
	type indexedListing struct {
		raw   json.RawMessage
		title string
	}
	listings := make([]indexedListing, 0, len(fixture))
	for _, raw := range fixture {
		var l listingTitle
		//nolint:errcheck,gosec // fixture data is trusted; title extraction is best-effort
		json.Unmarshal(raw, &l)
		listings = append(listings, indexedListing{raw: raw, title: strings.ToLower(l.Title)})
	}

	return func(w http.ResponseWriter, r *http.Request) {
		q := strings.ToLower(r.URL.Query().Get("q"))
		limitStr := r.URL.Query().Get("limit")

		limit := len(listings)
		if limitStr != "" {
			if v, err := strconv.Atoi(limitStr); err == nil && v > 0 {
				limit = v
			}
		}

		// Filter by query substring match on title.
		matched := make([]json.RawMessage, 0, len(listings))
		for _, l := range listings {
			if q == "" || strings.Contains(l.title, q) {
				matched = append(matched, l.raw)
			}
		}
		if len(matched) > limit {
			matched = matched[:limit]
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(matched)
		logger.Info("served listings", "query", q, "returned", len(matched))
	}
}
