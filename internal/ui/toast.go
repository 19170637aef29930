package ui

import (
	"sync"
	"time"
)

// DefaultToastDuration is how long a toast stays visible before it
// dismisses itself.
const DefaultToastDuration = 3 * time.Second

// Toast is a transient notification.
type Toast struct {
	Message string
	Kind    string // "success" or "error"
}

// ToastSink renders toasts for a concrete surface.
type ToastSink interface {
	ToastShown(t Toast)
	ToastDismissed(t Toast)
}

// Toaster shows toasts on a sink and auto-dismisses each one after a
// fixed duration.
type Toaster struct {
	sink     ToastSink
	duration time.Duration

	mu     sync.Mutex
	timers map[*time.Timer]struct{}
}

// NewToaster builds a Toaster with the default dismiss duration.
func NewToaster(sink ToastSink) *Toaster {
	return NewToasterWithDuration(sink, DefaultToastDuration)
}

// NewToasterWithDuration builds a Toaster with a custom dismiss duration.
func NewToasterWithDuration(sink ToastSink, d time.Duration) *Toaster {
	return &Toaster{sink: sink, duration: d, timers: make(map[*time.Timer]struct{})}
}

// Show displays a toast and schedules its dismissal.
func (t *Toaster) Show(message, kind string) {
	toast := Toast{Message: message, Kind: kind}
	t.sink.ToastShown(toast)

	t.mu.Lock()
	defer t.mu.Unlock()
	var timer *time.Timer
	timer = time.AfterFunc(t.duration, func() {
		t.sink.ToastDismissed(toast)
		t.mu.Lock()
		delete(t.timers, timer)
		t.mu.Unlock()
	})
	t.timers[timer] = struct{}{}
}

// Success shows a success toast.
func (t *Toaster) Success(message string) { t.Show(message, "success") }

// Error shows an error toast.
func (t *Toaster) Error(message string) { t.Show(message, "error") }

// Notify implements the gateway notifier contract.
func (t *Toaster) Notify(message, kind string) { t.Show(message, kind) }

// Stop cancels all pending dismissals.
func (t *Toaster) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	for timer := range t.timers {
		timer.Stop()
		delete(t.timers, timer)
	}
}
