// Package loop runs a page view's callbacks one at a time, the way a browser
// runs event handlers, animation frames and timers on its UI thread.
package loop

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Frame is the display refresh interval used by RequestFrame.
const Frame = 16 * time.Millisecond

// ErrClosed is returned by Do once the loop has stopped.
var ErrClosed = errors.New("loop closed")

// ErrPanicked is returned by Do when fn panicked. The loop stops afterwards.
var ErrPanicked = errors.New("loop task panicked")

// Timer is a scheduled callback that can be cancelled.
type Timer interface {
	Stop() bool
}

// Scheduler schedules callbacks onto a single logical thread.
type Scheduler interface {
	RequestFrame(fn func()) Timer
	After(d time.Duration, fn func()) Timer
}

// Loop executes posted functions sequentially on one goroutine.
type Loop struct {
	tasks   chan func()
	done    chan struct{}
	cancel  context.CancelFunc
	onPanic func(v any)

	mu     sync.Mutex
	closed bool
}

var _ Scheduler = (*Loop)(nil)

// Option configures a Loop.
type Option func(*Loop)

// WithPanicHandler calls fn with the recovered value when a task panics.
// fn runs on the loop goroutine just before the loop stops.
func WithPanicHandler(fn func(v any)) Option {
	return func(l *Loop) { l.onPanic = fn }
}

// New starts a loop that stops when ctx is done, Close is called or a task
// panics.
func New(ctx context.Context, opts ...Option) *Loop {
	ctx, cancel := context.WithCancel(ctx)
	l := &Loop{
		tasks:  make(chan func(), 64),
		done:   make(chan struct{}),
		cancel: cancel,
	}
	for _, opt := range opts {
		opt(l)
	}
	go l.run(ctx)
	return l
}

func (l *Loop) run(ctx context.Context) {
	defer close(l.done)
	defer func() {
		l.mu.Lock()
		l.closed = true
		l.mu.Unlock()
		l.cancel()
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-l.tasks:
			if !l.exec(fn) {
				return
			}
		}
	}
}

func (l *Loop) exec(fn func()) (ok bool) {
	defer func() {
		if v := recover(); v != nil {
			ok = false
			if l.onPanic != nil {
				l.onPanic(v)
			}
		}
	}()
	fn()
	return true
}

// Post queues fn without waiting. It reports false if the loop is closed.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	closed := l.closed
	l.mu.Unlock()
	if closed {
		return false
	}
	select {
	case l.tasks <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Do runs fn on the loop and waits for it to return.
func (l *Loop) Do(fn func()) error {
	finished := make(chan struct{})
	returned := false
	if !l.Post(func() {
		defer close(finished)
		fn()
		returned = true
	}) {
		return ErrClosed
	}
	select {
	case <-finished:
	case <-l.done:
		// fn may have been dequeued just before shutdown.
		select {
		case <-finished:
		default:
			return ErrClosed
		}
	}
	if !returned {
		return ErrPanicked
	}
	return nil
}

// After runs fn on the loop once d has elapsed.
func (l *Loop) After(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, func() { l.Post(fn) })
}

// RequestFrame runs fn on the loop at the next frame.
func (l *Loop) RequestFrame(fn func()) Timer {
	return l.After(Frame, fn)
}

// Close stops the loop and waits for the running task to finish.
func (l *Loop) Close() {
	l.cancel()
	<-l.done
}
