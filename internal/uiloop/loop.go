// Package uiloop provides the single event goroutine on which all scene
// mutations and user notifications run.
package uiloop

import (
	"context"
	"sync"
)

// Loop runs posted functions one at a time in FIFO order.
type Loop struct {
	mu      sync.Mutex
	pending []func()
	wake    chan struct{}
	stopped bool
	done    chan struct{}
}

// New creates a loop. Nothing runs until Run is called.
func New() *Loop {
	return &Loop{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
	}
}

// Post queues fn. It never blocks. It returns false if the loop has been
// stopped and fn will not run.
func (l *Loop) Post(fn func()) bool {
	l.mu.Lock()
	if l.stopped {
		l.mu.Unlock()
		return false
	}
	l.pending = append(l.pending, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
	return true
}

// Run executes posted functions until ctx is done or Stop is called.
// Functions accepted by Post before either happens still run.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.done)

	for {
		for _, fn := range l.drain() {
			fn()
		}

		l.mu.Lock()
		stopped := l.stopped && len(l.pending) == 0
		l.mu.Unlock()
		if stopped {
			return nil
		}

		select {
		case <-ctx.Done():
			l.Stop()
			for _, fn := range l.drain() {
				fn()
			}
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Stop makes Run return once the queue is empty.
func (l *Loop) Stop() {
	l.mu.Lock()
	l.stopped = true
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Done is closed when Run has returned.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}

func (l *Loop) drain() []func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	fns := l.pending
	l.pending = nil
	return fns
}
