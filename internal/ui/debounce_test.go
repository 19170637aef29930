package ui_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"shopkeeper/internal/ui"
)

func TestDebouncerCoalescesBursts(t *testing.T) {
	d := ui.NewDebouncer(30 * time.Millisecond)
	defer d.Stop()

	var calls atomic.Int32
	var last atomic.Value

	for _, term := range []string{"r", "ri", "ric", "rice"} {
		term := term
		d.Trigger(func() {
			calls.Add(1)
			last.Store(term)
		})
	}

	deadline := time.Now().Add(time.Second)
	for calls.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	time.Sleep(50 * time.Millisecond)

	require.Equal(t, int32(1), calls.Load())
	require.Equal(t, "rice", last.Load())
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	d := ui.NewDebouncer(20 * time.Millisecond)

	var calls atomic.Int32
	d.Trigger(func() { calls.Add(1) })
	d.Stop()

	time.Sleep(60 * time.Millisecond)
	require.Equal(t, int32(0), calls.Load())
}
