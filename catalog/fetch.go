package catalog

import (
	"context"
	"sync"
)

// Status of a Fetcher.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusLoading   Status = "loading"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Terminal reports whether a fetch in this status has finished.
func (s Status) Terminal() bool {
	return s == StatusSucceeded || s == StatusFailed
}

// Fetcher tracks a single one-shot fetch: idle -> loading -> succeeded|failed.
// It never retries on its own. Once detached, a fetch still in flight finishes
// without touching the fetcher's state.
type Fetcher[T any] struct {
	mu       sync.Mutex
	status   Status
	data     T
	err      error
	detached bool
	done     chan struct{}
}

func NewFetcher[T any]() *Fetcher[T] {
	return &Fetcher[T]{status: StatusIdle}
}

// Start runs fetch in its own goroutine if the fetcher is idle. The returned
// channel is closed when that fetch returns. Calling Start on a fetcher that
// is not idle does nothing and returns the channel of the current or last
// fetch (already closed if there was none).
func (f *Fetcher[T]) Start(ctx context.Context, fetch func(context.Context) (T, error)) <-chan struct{} {
	f.mu.Lock()
	if f.status != StatusIdle || f.detached {
		done := f.done
		f.mu.Unlock()
		if done == nil {
			done = make(chan struct{})
			close(done)
		}
		return done
	}

	f.status = StatusLoading
	f.err = nil
	done := make(chan struct{})
	f.done = done
	f.mu.Unlock()

	go func() {
		defer close(done)
		data, err := fetch(ctx)
		f.complete(data, err)
	}()
	return done
}

func (f *Fetcher[T]) complete(data T, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.detached || f.status != StatusLoading {
		return
	}
	if err != nil {
		f.status = StatusFailed
		f.err = err
		return
	}
	f.status = StatusSucceeded
	f.data = data
}

// Reset returns a finished fetcher to idle so Start can run again.
// It has no effect while a fetch is loading.
func (f *Fetcher[T]) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.status.Terminal() {
		return
	}
	var zero T
	f.status = StatusIdle
	f.data = zero
	f.err = nil
}

// Detach freezes the fetcher: later completions are dropped and Start is a no-op.
func (f *Fetcher[T]) Detach() {
	f.mu.Lock()
	f.detached = true
	f.mu.Unlock()
}

func (f *Fetcher[T]) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *Fetcher[T]) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.err
}

func (f *Fetcher[T]) Data() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.data
}
