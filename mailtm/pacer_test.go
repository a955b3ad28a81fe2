package mailtm

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacer_FirstCallAdmittedImmediately(t *testing.T) {
	clock := clockwork.NewFakeClock()
	p := newPacer(clock, time.Second)

	require.NoError(t, p.wait(context.Background()))
}

func TestPacer_SecondCallWaitsForInterval(t *testing.T) {
	clock := clockwork.NewFakeClock()
	p := newPacer(clock, time.Second)

	require.NoError(t, p.wait(context.Background()))

	done := make(chan error, 1)
	go func() {
		done <- p.wait(context.Background())
	}()

	clock.BlockUntil(1)

	select {
	case <-done:
		t.Fatal("second wait returned before the interval elapsed")
	default:
	}

	clock.Advance(time.Second)
	require.NoError(t, <-done)
}

func TestPacer_ZeroIntervalIsNoop(t *testing.T) {
	clock := clockwork.NewFakeClock()
	p := newPacer(clock, 0)

	for i := 0; i < 5; i++ {
		require.NoError(t, p.wait(context.Background()))
	}
}

func TestPacer_NilIsNoop(t *testing.T) {
	var p *pacer

	assert.NoError(t, p.wait(context.Background()))
}

func TestPacer_CancelledWhileWaiting(t *testing.T) {
	clock := clockwork.NewFakeClock()
	p := newPacer(clock, time.Second)

	require.NoError(t, p.wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- p.wait(ctx)
	}()

	clock.BlockUntil(1)
	cancel()

	assert.ErrorIs(t, <-done, context.Canceled)
}
