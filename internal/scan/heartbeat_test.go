package scan

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/fleawatch/fleawatch/pkg/types"
)

func TestHeartbeat_EmitToChat(t *testing.T) {
	t.Parallel()

	src := &fakeSource{batches: [][]domain.Listing{{
		{ID: "1", Title: "X1", Price: price(30)},
	}}}
	loopNotifier := &fakeNotifier{}
	lp := newTestLoop(src, loopNotifier)
	lp.RunCycle(context.Background())

	chat := &fakeNotifier{}
	h, err := NewHeartbeat(lp, chat, time.Hour, quietLogger(), true)
	require.NoError(t, err)

	h.emit()
	require.Len(t, chat.sent, 1)
	assert.Contains(t, chat.sent[0].Title, "1 cycles")
	assert.Contains(t, chat.sent[0].Title, "1 notified")
}

func TestHeartbeat_LogOnly(t *testing.T) {
	t.Parallel()

	lp := newTestLoop(&fakeSource{}, &fakeNotifier{})

	chat := &fakeNotifier{}
	h, err := NewHeartbeat(lp, chat, time.Hour, quietLogger(), false)
	require.NoError(t, err)

	h.emit()
	assert.Empty(t, chat.sent)
}
