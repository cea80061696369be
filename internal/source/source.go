// Package source defines the listing source collaborator: anything that can
// produce a batch of listing records for evaluation.
package source

import (
	"context"
	"crypto/sha1" //nolint:gosec // dedup fingerprint, not security
	"encoding/hex"

	domain "github.com/fleawatch/fleawatch/pkg/types"
)

// Source supplies raw listing records. A returned error is treated as a
// transient failure by the scan loop: the cycle is skipped and retried
// after the next interval.
type Source interface {
	Fetch(ctx context.Context) ([]domain.Listing, error)
}

// Fingerprint derives a stable dedup identifier from a listing URL, for
// sources that do not expose their own item IDs.
func Fingerprint(url string) string {
	sum := sha1.Sum([]byte(url)) //nolint:gosec // see above
	return hex.EncodeToString(sum[:])
}
