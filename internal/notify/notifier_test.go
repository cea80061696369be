package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domain "github.com/fleawatch/fleawatch/pkg/types"
)

func price(v float64) *float64 { return &v }

func TestBuildMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		res  domain.MatchResult
		want Message
	}{
		{
			name: "known price with currency",
			res: domain.MatchResult{
				Listing: domain.Listing{
					Title:    "X1 mint",
					Price:    price(30),
					Currency: "EUR",
					URL:      "http://x/1",
				},
				Matched: true,
			},
			want: Message{
				TagPrefix: "[modeA]",
				Title:     "X1 mint",
				Price:     "30 EUR",
				URL:       "http://x/1",
			},
		},
		{
			name: "unknown price renders question mark",
			res: domain.MatchResult{
				Listing: domain.Listing{Title: "X1 mint", URL: "http://x/1"},
				Matched: true,
			},
			want: Message{
				TagPrefix: "[modeA]",
				Title:     "X1 mint",
				Price:     "?",
				URL:       "http://x/1",
			},
		},
		{
			name: "image url carried through",
			res: domain.MatchResult{
				Listing: domain.Listing{
					Title:    "X1 mint",
					Price:    price(30),
					URL:      "http://x/1",
					ImageURL: "http://img/1.jpg",
				},
				Matched: true,
			},
			want: Message{
				TagPrefix: "[modeA]",
				Title:     "X1 mint",
				Price:     "30",
				URL:       "http://x/1",
				ImageURL:  "http://img/1.jpg",
			},
		},
		{
			name: "tags carried through",
			res: domain.MatchResult{
				Listing: domain.Listing{Title: "X1", Price: price(25.5), URL: "http://x/1"},
				Matched: true,
				Tags:    []string{"boxed"},
			},
			want: Message{
				TagPrefix: "[modeA]",
				Tags:      []string{"boxed"},
				Title:     "X1",
				Price:     "25.5",
				URL:       "http://x/1",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, BuildMessage("[modeA]", &tt.res))
		})
	}
}

func TestMessage_Render(t *testing.T) {
	t.Parallel()

	msg := Message{
		TagPrefix: "[modeA]",
		Tags:      []string{"boxed", "charger"},
		Title:     "X1 mint",
		Price:     "30 EUR",
		URL:       "http://x/1",
	}
	assert.Equal(t, "[modeA] [boxed, charger] X1 mint\n30 EUR\nhttp://x/1", msg.Render())

	// Status messages render as a bare line.
	assert.Equal(t, "watcher started", StatusMessage("watcher started").Render())
}
