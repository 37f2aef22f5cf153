package schedule

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"choropleth/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	logger.Discard()
	goleak.VerifyTestMain(m)
}

func TestEveryRunsImmediatelyAndRepeats(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var n int32
	done := Every(ctx, 10*time.Millisecond, "refresh", func(context.Context) error {
		atomic.AddInt32(&n, 1)
		return nil
	})
	require.Eventually(t, func() bool { return atomic.LoadInt32(&n) >= 3 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestEveryKeepsRunningAfterErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var n int32
	done := Every(ctx, 5*time.Millisecond, "refresh", func(context.Context) error {
		atomic.AddInt32(&n, 1)
		return errors.New("upstream down")
	})
	require.Eventually(t, func() bool { return atomic.LoadInt32(&n) >= 2 }, 2*time.Second, 5*time.Millisecond)
	cancel()
	<-done
}

func TestEveryStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var n int32
	done := Every(ctx, time.Hour, "refresh", func(context.Context) error {
		atomic.AddInt32(&n, 1)
		return nil
	})
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("loop did not exit")
	}
	assert.EqualValues(t, 1, atomic.LoadInt32(&n))
}
