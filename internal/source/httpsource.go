package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"

	"github.com/fleawatch/fleawatch/internal/metrics"
	domain "github.com/fleawatch/fleawatch/pkg/types"
)

const (
	defaultUserAgent  = "fleawatch/1.0"
	defaultMaxRetries = 3
)

// HTTPSource fetches listings as JSON from a single endpoint, typically a
// feed gateway sitting in front of the marketplace. Short-lived failures
// are retried with exponential backoff a few times inside one Fetch call;
// anything beyond that surfaces as a transient fetch error.
type HTTPSource struct {
	url        string
	client     *http.Client
	userAgent  string
	maxRetries int
	log        *slog.Logger
}

// HTTPSourceOption configures an HTTPSource.
type HTTPSourceOption func(*HTTPSource)

// WithSourceHTTPClient sets a custom HTTP client.
func WithSourceHTTPClient(c *http.Client) HTTPSourceOption {
	return func(s *HTTPSource) {
		s.client = c
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) HTTPSourceOption {
	return func(s *HTTPSource) {
		s.userAgent = ua
	}
}

// WithMaxRetries sets how many attempts a single Fetch makes.
func WithMaxRetries(n int) HTTPSourceOption {
	return func(s *HTTPSource) {
		s.maxRetries = n
	}
}

// WithSourceLogger sets a custom logger.
func WithSourceLogger(l *slog.Logger) HTTPSourceOption {
	return func(s *HTTPSource) {
		s.log = l
	}
}

// NewHTTPSource creates a source reading from url.
func NewHTTPSource(url string, opts ...HTTPSourceOption) *HTTPSource {
	s := &HTTPSource{
		url:        url,
		client:     &http.Client{Timeout: 20 * time.Second},
		userAgent:  defaultUserAgent,
		maxRetries: defaultMaxRetries,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// listingRecord is the feed wire format. Price may arrive as a number or
// only as display text ("1 234 €"); both absent means unknown price.
type listingRecord struct {
	ID          string   `json:"id,omitempty"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	PriceText   string   `json:"price_text,omitempty"`
	Currency    string   `json:"currency,omitempty"`
	URL         string   `json:"url"`
	ImageURL    string   `json:"image_url,omitempty"`
	Source      string   `json:"source,omitempty"`
}

// Fetch implements Source. It retries transient failures with exponential
// backoff until maxRetries attempts are spent or ctx expires.
func (s *HTTPSource) Fetch(ctx context.Context) ([]domain.Listing, error) {
	backoffCfg := backoff.NewExponentialBackOff()

	var lastErr error
	for attempt := 1; attempt <= s.maxRetries; attempt++ {
		records, err := s.fetchOnce(ctx)
		if err == nil {
			return toListings(records), nil
		}
		lastErr = err

		if attempt == s.maxRetries {
			break
		}
		s.log.Debug("fetch attempt failed, backing off",
			"attempt", attempt, "error", err)

		sleep := backoffCfg.NextBackOff()
		if sleep == backoff.Stop {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(sleep):
		}
	}

	return nil, fmt.Errorf("fetching listings from %s: %w", s.url, lastErr)
}

func (s *HTTPSource) fetchOnce(ctx context.Context) ([]listingRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "application/json")

	metrics.SourceRequestsTotal.Inc()

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("source returned %d", resp.StatusCode)
	}

	var records []listingRecord
	if err := json.NewDecoder(resp.Body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decoding listings: %w", err)
	}

	return records, nil
}

// toListings converts wire records into domain listings, deriving a URL
// fingerprint ID and parsing display-text prices where needed. Records
// without a URL are dropped: they can neither be visited nor deduped.
func toListings(records []listingRecord) []domain.Listing {
	listings := make([]domain.Listing, 0, len(records))
	for i := range records {
		r := &records[i]
		if r.URL == "" {
			continue
		}

		id := r.ID
		if id == "" {
			id = Fingerprint(r.URL)
		}

		price := r.Price
		if price == nil && r.PriceText != "" {
			price = ParsePrice(r.PriceText)
		}

		listings = append(listings, domain.Listing{
			ID:          id,
			Title:       r.Title,
			Description: r.Description,
			Price:       price,
			Currency:    r.Currency,
			URL:         r.URL,
			ImageURL:    r.ImageURL,
			Source:      r.Source,
		})
	}
	return listings
}
