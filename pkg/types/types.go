// Package domain defines the core business types for the marketplace watcher.
package domain

import "time"

// Listing represents a single item record fetched from a listing source.
// A Listing is immutable once fetched.
type Listing struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"` // nil when unknown/unparsable
	Currency    string   `json:"currency,omitempty"`
	URL         string   `json:"url"`
	ImageURL    string   `json:"image_url,omitempty"`
	Source      string   `json:"source,omitempty"`
}

// PriceKnown reports whether the listing carries a usable price.
func (l *Listing) PriceKnown() bool {
	return l.Price != nil
}

// Reason identifies the first failing matcher check for a listing.
type Reason string

// Matcher reasons, in evaluation order. An empty Reason means matched.
const (
	ReasonExcluded         Reason = "excluded"
	ReasonModelMismatch    Reason = "model-mismatch"
	ReasonTermsMismatch    Reason = "terms-mismatch"
	ReasonPriceOutOfRange  Reason = "price-out-of-range"
	ReasonPriceUnknown     Reason = "price-unknown"
	ReasonNoShippingSignal Reason = "no-shipping-signal"
)

// MatchResult is the outcome of evaluating one listing against a profile.
type MatchResult struct {
	Listing Listing  `json:"listing"`
	Matched bool     `json:"matched"`
	Reason  Reason   `json:"reason,omitempty"` // diagnostic only
	Tags    []string `json:"tags,omitempty"`   // matched optional terms
}

// PriceUnknownPolicy selects how a listing with no parseable price is treated.
type PriceUnknownPolicy string

// Unknown-price policies. Reject is the default: an unpriceable listing
// never matches, so a missing price can only suppress a notification,
// never fire a spurious one.
const (
	PriceUnknownReject PriceUnknownPolicy = "reject"
	PriceUnknownAccept PriceUnknownPolicy = "accept"
)

// Profile holds the filter criteria one watcher run evaluates listings
// against. All term slices are case- and accent-normalized at load time;
// the matcher compares them against normalized listing text verbatim.
type Profile struct {
	// Models is the model/name whitelist. Empty means wildcard.
	Models []string `json:"models,omitempty"`

	// Price band, inclusive on both ends.
	PriceMin float64 `json:"price_min"`
	PriceMax float64 `json:"price_max"`

	// PriceUnknown picks the unknown-price policy (default reject).
	PriceUnknown PriceUnknownPolicy `json:"price_unknown,omitempty"`

	// Shipping heuristic. When RequireShipping is set the listing text
	// must contain a positive shipping term and none of the negatives.
	RequireShipping  bool     `json:"require_shipping,omitempty"`
	ShippingPositive []string `json:"shipping_positive,omitempty"`
	ShippingNegative []string `json:"shipping_negative,omitempty"`

	// TermsAny is an ordered sequence of term groups. Terms within a
	// group are OR-ed; every group must be satisfied (AND of ORs).
	TermsAny [][]string `json:"terms_any,omitempty"`

	// TermsOptional never gates a match; hits are surfaced as tags.
	TermsOptional []string `json:"terms_optional,omitempty"`

	// TermsExclude rejects the listing when any term is present.
	TermsExclude []string `json:"terms_exclude,omitempty"`

	// TagPrefix is prepended to every notification message.
	TagPrefix string `json:"tag_prefix,omitempty"`
}

// SeenRecord is a dedup store entry: when a listing was first notified.
type SeenRecord struct {
	ListingID string    `json:"listing_id"`
	FirstSeen time.Time `json:"first_seen"`
}

// CycleReport summarizes one completed scan cycle.
type CycleReport struct {
	ID         string        `json:"id"`
	StartedAt  time.Time     `json:"started_at"`
	Duration   time.Duration `json:"duration"`
	Fetched    int           `json:"fetched"`
	Matched    int           `json:"matched"`
	Notified   int           `json:"notified"`
	Duplicates int           `json:"duplicates"`
	FetchErr   string        `json:"fetch_err,omitempty"`
	NotifyErrs int           `json:"notify_errs"`
}
