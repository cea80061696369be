package scan

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/fleawatch/fleawatch/internal/notify"
)

// Heartbeat periodically emits a status summary of the running loop:
// cycles completed, matches, notifications, and dedup store size. Summaries
// are always logged and optionally delivered to the chat. It runs beside
// the scan loop and only reads its atomic counters, never its state.
type Heartbeat struct {
	cron     *cron.Cron
	loop     *Loop
	notifier notify.Notifier
	log      *slog.Logger
	toChat   bool
	timeout  time.Duration
}

// NewHeartbeat creates a heartbeat firing every interval.
func NewHeartbeat(
	loop *Loop,
	n notify.Notifier,
	interval time.Duration,
	log *slog.Logger,
	toChat bool,
) (*Heartbeat, error) {
	c := cron.New()

	h := &Heartbeat{
		cron:     c,
		loop:     loop,
		notifier: n,
		log:      log,
		toChat:   toChat,
		timeout:  10 * time.Second,
	}

	if _, err := c.AddFunc("@every "+interval.String(), h.emit); err != nil {
		return nil, err
	}

	return h, nil
}

// Start begins emitting heartbeats.
func (h *Heartbeat) Start() {
	h.log.Info("heartbeat started")
	h.cron.Start()
}

// Stop gracefully stops the heartbeat, waiting for a running emit to finish.
func (h *Heartbeat) Stop() context.Context {
	h.log.Info("heartbeat stopping")
	return h.cron.Stop()
}

func (h *Heartbeat) emit() {
	snap := h.loop.Snapshot()
	h.log.Info("heartbeat",
		"cycles", snap.Cycles,
		"fetched", snap.Fetched,
		"matched", snap.Matched,
		"notified", snap.Notified,
		"fetch_errors", snap.FetchErrors,
		"seen", snap.SeenCount,
	)

	if !h.toChat {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	text := fmt.Sprintf(
		"Watcher status: %d cycles, %d matched, %d notified, %d tracked, %d fetch errors",
		snap.Cycles, snap.Matched, snap.Notified, snap.SeenCount, snap.FetchErrors,
	)
	if err := h.notifier.Send(ctx, notify.StatusMessage(text)); err != nil {
		h.log.Warn("heartbeat notification failed", "error", err)
	}
}
