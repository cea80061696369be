package source

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want float64
		ok   bool
	}{
		{"plain", "450€", 450, true},
		{"with space", "450 €", 450, true},
		{"thousands with spaces", "1 234 €", 1234, true},
		{"non-breaking spaces", "1 234 €", 1234, true},
		{"embedded in text", "Prix : 30 € à débattre", 30, true},
		{"no euro sign", "450", 0, false},
		{"no digits", "gratuit", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := ParsePrice(tt.in)
			if !tt.ok {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestFingerprint(t *testing.T) {
	t.Parallel()

	a := Fingerprint("https://example.test/items/1")
	b := Fingerprint("https://example.test/items/2")

	assert.Len(t, a, 40) // sha1 hex
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, Fingerprint("https://example.test/items/1"))
}
