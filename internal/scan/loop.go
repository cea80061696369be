package scan

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/fleawatch/fleawatch/internal/match"
	"github.com/fleawatch/fleawatch/internal/metrics"
	"github.com/fleawatch/fleawatch/internal/notify"
	"github.com/fleawatch/fleawatch/internal/source"
	domain "github.com/fleawatch/fleawatch/pkg/types"
)

// State identifies where the loop is in its cycle.
type State string

// Loop states. The loop moves Fetching → Evaluating → Notifying → Sleeping
// and repeats; Idle only before Run is called and between cycles.
const (
	StateIdle       State = "idle"
	StateFetching   State = "fetching"
	StateEvaluating State = "evaluating"
	StateNotifying  State = "notifying"
	StateSleeping   State = "sleeping"
)

// Clock abstracts time for the loop so tests can run a cycle without real
// sleeps.
type Clock interface {
	Now() time.Time
	// Sleep blocks for d or until ctx is done, returning ctx.Err() in the
	// latter case.
	Sleep(ctx context.Context, d time.Duration) error
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

const (
	defaultFetchTimeout  = 30 * time.Second
	defaultNotifyTimeout = 10 * time.Second

	// Consecutive fetch failures before an operator notice is sent to the
	// chat. Sent once per streak, not per failure.
	fetchFailureNoticeAfter = 3
)

// Stats is a point-in-time snapshot of loop counters, safe to read from
// other goroutines (heartbeat, ops server).
type Stats struct {
	Cycles      int64
	Fetched     int64
	Matched     int64
	Notified    int64
	FetchErrors int64
	SeenCount   int64
}

// Loop runs the scan-dedupe-notify cycle strictly sequentially: one fetch,
// one evaluation pass, one notification pass, one sleep. The dedup store and
// profile are owned by the loop; nothing else mutates them.
type Loop struct {
	source   source.Source
	notifier notify.Notifier
	profile  *domain.Profile
	dedup    *DedupStore
	interval time.Duration

	clock         Clock
	log           *slog.Logger
	fetchTimeout  time.Duration
	notifyTimeout time.Duration

	state      atomic.Value // holds State
	failStreak int

	cycles      atomic.Int64
	fetched     atomic.Int64
	matched     atomic.Int64
	notified    atomic.Int64
	fetchErrors atomic.Int64
	seenCount   atomic.Int64
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) LoopOption {
	return func(lp *Loop) {
		lp.log = l
	}
}

// WithClock injects a clock, used by tests to avoid real sleeps.
func WithClock(c Clock) LoopOption {
	return func(lp *Loop) {
		lp.clock = c
	}
}

// WithFetchTimeout bounds a single source fetch.
func WithFetchTimeout(d time.Duration) LoopOption {
	return func(lp *Loop) {
		lp.fetchTimeout = d
	}
}

// WithNotifyTimeout bounds a single notification delivery.
func WithNotifyTimeout(d time.Duration) LoopOption {
	return func(lp *Loop) {
		lp.notifyTimeout = d
	}
}

// NewLoop creates a scan loop with injected collaborators.
func NewLoop(
	src source.Source,
	n notify.Notifier,
	profile *domain.Profile,
	dedup *DedupStore,
	interval time.Duration,
	opts ...LoopOption,
) *Loop {
	lp := &Loop{
		source:        src,
		notifier:      n,
		profile:       profile,
		dedup:         dedup,
		interval:      interval,
		clock:         realClock{},
		log:           slog.Default(),
		fetchTimeout:  defaultFetchTimeout,
		notifyTimeout: defaultNotifyTimeout,
	}
	for _, opt := range opts {
		opt(lp)
	}
	return lp
}

// State returns the loop's current state. Like Snapshot, it is safe to
// call from other goroutines (heartbeat, ops server) while the loop runs.
func (lp *Loop) State() State {
	if s, ok := lp.state.Load().(State); ok {
		return s
	}
	return StateIdle
}

func (lp *Loop) setState(s State) {
	lp.state.Store(s)
}

// Snapshot returns the current loop counters.
func (lp *Loop) Snapshot() Stats {
	return Stats{
		Cycles:      lp.cycles.Load(),
		Fetched:     lp.fetched.Load(),
		Matched:     lp.matched.Load(),
		Notified:    lp.notified.Load(),
		FetchErrors: lp.fetchErrors.Load(),
		SeenCount:   lp.seenCount.Load(),
	}
}

// Run executes scan cycles until ctx is canceled. Cancellation is checked
// at cycle boundaries: a cycle in flight finishes (including its
// notifications) before the loop stops, and no new fetch is started after.
// Returns ctx.Err() once stopped.
func (lp *Loop) Run(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			lp.setState(StateIdle)
			return ctx.Err()
		}

		rep := lp.RunCycle(ctx)
		lp.log.Info("cycle complete",
			"cycle", rep.ID,
			"fetched", rep.Fetched,
			"matched", rep.Matched,
			"notified", rep.Notified,
			"duplicates", rep.Duplicates,
			"duration", rep.Duration,
		)

		lp.setState(StateSleeping)
		if err := lp.clock.Sleep(ctx, lp.interval); err != nil {
			lp.setState(StateIdle)
			return err
		}
	}
}

// RunCycle executes a single fetch-evaluate-notify pass and returns its
// report. Fetch and notify failures are tolerated: a failed fetch skips
// straight to the report with the dedup store untouched, and a failed
// notification leaves the listing unmarked so it is retried next cycle
// (accepting a possible duplicate delivery over a lost one).
func (lp *Loop) RunCycle(ctx context.Context) domain.CycleReport {
	start := lp.clock.Now()
	rep := domain.CycleReport{
		ID:        uuid.NewString(),
		StartedAt: start,
	}
	defer func() {
		rep.Duration = lp.clock.Now().Sub(start)
		lp.cycles.Add(1)
		lp.seenCount.Store(int64(lp.dedup.Len()))
		metrics.CycleDuration.Observe(rep.Duration.Seconds())
		metrics.DedupStoreSize.Set(float64(lp.dedup.Len()))
		lp.setState(StateIdle)
	}()

	lp.setState(StateFetching)
	fetchCtx, cancel := context.WithTimeout(ctx, lp.fetchTimeout)
	listings, err := lp.source.Fetch(fetchCtx)
	cancel()
	if err != nil {
		lp.log.Warn("fetch failed, skipping cycle", "cycle", rep.ID, "error", err)
		lp.fetchErrors.Add(1)
		metrics.FetchErrorsTotal.Inc()
		rep.FetchErr = err.Error()
		lp.failStreak++
		if lp.failStreak == fetchFailureNoticeAfter {
			lp.sendFetchTroubleNotice(ctx, err)
		}
		return rep
	}
	lp.failStreak = 0
	rep.Fetched = len(listings)
	lp.fetched.Add(int64(len(listings)))

	lp.setState(StateEvaluating)
	var matches []domain.MatchResult
	for i := range listings {
		res := lp.evaluate(listings[i])
		metrics.ListingsEvaluatedTotal.Inc()
		if res.Matched {
			matches = append(matches, res)
		}
	}
	rep.Matched = len(matches)
	lp.matched.Add(int64(len(matches)))
	metrics.MatchesTotal.Add(float64(len(matches)))

	lp.setState(StateNotifying)
	for i := range matches {
		id := matches[i].Listing.ID
		if lp.dedup.HasSeen(id) {
			rep.Duplicates++
			continue
		}

		notifyCtx, cancel := context.WithTimeout(ctx, lp.notifyTimeout)
		sendErr := lp.notifier.Send(notifyCtx, notify.BuildMessage(lp.profile.TagPrefix, &matches[i]))
		cancel()
		if sendErr != nil {
			// Not marked seen: retried next cycle.
			lp.log.Warn("notify failed", "cycle", rep.ID, "listing", id, "error", sendErr)
			metrics.NotifyFailuresTotal.Inc()
			rep.NotifyErrs++
			continue
		}

		lp.dedup.MarkSeen(id)
		rep.Notified++
		lp.notified.Add(1)
		metrics.NotificationsTotal.Inc()
	}

	return rep
}

// sendFetchTroubleNotice tells the chat the feed has been failing. Best
// effort: delivery failure is only logged.
func (lp *Loop) sendFetchTroubleNotice(ctx context.Context, cause error) {
	text := fmt.Sprintf("Watcher trouble: %d consecutive fetch failures, last: %v",
		lp.failStreak, cause)
	notifyCtx, cancel := context.WithTimeout(ctx, lp.notifyTimeout)
	defer cancel()
	if err := lp.notifier.Send(notifyCtx, notify.StatusMessage(text)); err != nil {
		lp.log.Warn("operator notice delivery failed", "error", err)
	}
}

// evaluate wraps the pure matcher so one malformed listing can never abort
// a cycle: a panic downgrades to no-match.
func (lp *Loop) evaluate(l domain.Listing) (res domain.MatchResult) {
	defer func() {
		if r := recover(); r != nil {
			lp.log.Error("evaluation failed, treating as no-match",
				"listing", l.ID, "panic", r)
			res = domain.MatchResult{Listing: l}
		}
	}()
	return match.Evaluate(l, lp.profile)
}
