package pacer

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntervalPacer_SpacesWaits(t *testing.T) {
	p := NewIntervalPacer(20 * time.Millisecond)

	start := time.Now()
	require.NoError(t, p.Wait(context.Background()))
	require.NoError(t, p.Wait(context.Background()))
	elapsed := time.Since(start)

	assert.GreaterOrEqual(t, elapsed, 40*time.Millisecond,
		"every Wait is one full delay")
}

func TestIntervalPacer_ZeroIntervalNeverBlocks(t *testing.T) {
	p := NewIntervalPacer(0)

	start := time.Now()
	for i := 0; i < 100; i++ {
		require.NoError(t, p.Wait(context.Background()))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestIntervalPacer_CancelledContext(t *testing.T) {
	p := NewIntervalPacer(1 * time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Error(t, p.Wait(ctx))
}

func TestNop(t *testing.T) {
	assert.NoError(t, Nop{}.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, Nop{}.Wait(ctx))
}
