package notify_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleawatch/fleawatch/internal/notify"
)

func TestRateLimiter_Wait(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rate    float64
		burst   int
		daily   int64
		calls   int
		wantErr bool
	}{
		{
			name:  "allows calls within rate",
			rate:  100,
			burst: 10,
			daily: 500,
			calls: 3,
		},
		{
			name:  "allows burst",
			rate:  100,
			burst: 5,
			daily: 500,
			calls: 5,
		},
		{
			name:    "rejects when daily cap reached",
			rate:    100,
			burst:   10,
			daily:   2,
			calls:   3,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rl := notify.NewRateLimiter(tt.rate, tt.burst, tt.daily)

			var lastErr error
			for range tt.calls {
				lastErr = rl.Wait(context.Background())
				if lastErr != nil {
					break
				}
			}

			if tt.wantErr {
				require.ErrorIs(t, lastErr, notify.ErrDailyMessageLimit)
			} else {
				require.NoError(t, lastErr)
			}
		})
	}
}

func TestRateLimiter_DailyWindowResets(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	rl := notify.NewRateLimiter(100, 10, 2,
		notify.WithRateLimiterNowFunc(func() time.Time { return now }),
	)

	require.NoError(t, rl.Wait(context.Background()))
	require.NoError(t, rl.Wait(context.Background()))
	require.Error(t, rl.Wait(context.Background()))
	assert.Equal(t, int64(0), rl.Remaining())

	// Jump past the 24h window: the budget is fresh again.
	now = now.Add(25 * time.Hour)
	require.NoError(t, rl.Wait(context.Background()))
	assert.Equal(t, int64(1), rl.DailyCount())
	assert.Equal(t, int64(1), rl.Remaining())
}

func TestRateLimiter_ResetAt(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 8, 1, 9, 0, 0, 0, time.UTC)
	rl := notify.NewRateLimiter(1, 1, 10,
		notify.WithRateLimiterNowFunc(func() time.Time { return start }),
	)
	assert.Equal(t, start.Add(24*time.Hour), rl.ResetAt())
}
