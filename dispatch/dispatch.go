// Package dispatch provides a single-goroutine task scheduler. Submitted
// tasks run later, one at a time, on the dispatcher's own goroutine — never
// synchronously inside Submit and never concurrently with each other.
package dispatch

import (
	"sync"
	"sync/atomic"
)

const defaultBufferSize = 16

// Serial runs submitted tasks sequentially on a dedicated goroutine.
type Serial struct {
	ch        chan func()
	done      chan struct{}
	wg        sync.WaitGroup
	closed    atomic.Bool
	closeOnce sync.Once
}

// SerialOption defines a function type to modify the Serial instance.
type SerialOption func(*serialConfig)

type serialConfig struct {
	bufferSize int
}

// WithBufferSize sets the task channel capacity.
func WithBufferSize(n int) SerialOption {
	return func(c *serialConfig) {
		c.bufferSize = n
	}
}

// NewSerial starts the dispatcher goroutine.
func NewSerial(options ...SerialOption) *Serial {
	cfg := serialConfig{bufferSize: defaultBufferSize}
	for _, opt := range options {
		opt(&cfg)
	}
	if cfg.bufferSize <= 0 {
		cfg.bufferSize = 1
	}

	d := &Serial{
		ch:   make(chan func(), cfg.bufferSize),
		done: make(chan struct{}),
	}

	d.wg.Add(1)
	go d.run()

	return d
}

func (d *Serial) run() {
	defer d.wg.Done()

	for {
		select {
		case task := <-d.ch:
			task()
		case <-d.done:
			for {
				select {
				case task := <-d.ch:
					task()
				default:
					return
				}
			}
		}
	}
}

// Submit queues a task for later execution. Tasks submitted after Close are
// dropped.
func (d *Serial) Submit(task func()) {
	if d == nil || d.closed.Load() {
		return
	}

	select {
	case d.ch <- task:
	case <-d.done:
	}
}

// Close drains any queued tasks and stops the dispatcher goroutine.
func (d *Serial) Close() {
	if d == nil {
		return
	}
	d.closeOnce.Do(func() {
		d.closed.Store(true)
		close(d.done)
		d.wg.Wait()
	})
}
