// Package notify defines the notification interface and implementations for
// delivering matched listings to a chat.
package notify

import (
	"context"
	"strconv"
	"strings"

	domain "github.com/fleawatch/fleawatch/pkg/types"
)

// Message is a single outbound notification. Listing messages carry all
// four required fields (tag prefix, title, price, URL); status messages
// carry only a title line.
type Message struct {
	TagPrefix string
	Tags      []string
	Title     string
	Price     string
	URL       string
	// ImageURL, when set, asks the notifier to attach the listing photo
	// with the rendered text as its caption.
	ImageURL string
}

// Notifier defines the interface for delivering a message. Send returns
// a non-nil error when delivery was not confirmed.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// BuildMessage formats a matched listing for delivery. Optional-term tags
// annotate the title line; an unknown price renders as "?".
func BuildMessage(tagPrefix string, res *domain.MatchResult) Message {
	price := "?"
	if res.Listing.PriceKnown() {
		price = strconv.FormatFloat(*res.Listing.Price, 'f', -1, 64)
		if res.Listing.Currency != "" {
			price += " " + res.Listing.Currency
		}
	}
	return Message{
		TagPrefix: tagPrefix,
		Tags:      res.Tags,
		Title:     res.Listing.Title,
		Price:     price,
		URL:       res.Listing.URL,
		ImageURL:  res.Listing.ImageURL,
	}
}

// StatusMessage wraps operator-facing text (startup notice, heartbeat
// summary) as a bare message.
func StatusMessage(text string) Message {
	return Message{Title: text}
}

// Render produces the delivered text: a title line with optional tag
// prefix and annotations, then price and URL lines when present.
func (m Message) Render() string {
	var b strings.Builder
	if m.TagPrefix != "" {
		b.WriteString(m.TagPrefix)
		b.WriteString(" ")
	}
	if len(m.Tags) > 0 {
		b.WriteString("[" + strings.Join(m.Tags, ", ") + "] ")
	}
	b.WriteString(m.Title)
	if m.Price != "" {
		b.WriteString("\n")
		b.WriteString(m.Price)
	}
	if m.URL != "" {
		b.WriteString("\n")
		b.WriteString(m.URL)
	}
	return b.String()
}
