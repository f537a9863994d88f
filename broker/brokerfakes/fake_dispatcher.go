package brokerfakes

import (
	"sync"

	"github.com/harmonode/qobuz/broker"
)

var _ broker.Dispatcher = (*FakeDispatcher)(nil)

// FakeDispatcher queues submitted tasks and runs them only when the test
// calls Pump, making notification rounds deterministic.
type FakeDispatcher struct {
	lock  sync.Mutex
	tasks []func()
}

func NewFakeDispatcher() *FakeDispatcher {
	return &FakeDispatcher{}
}

func (d *FakeDispatcher) Submit(task func()) {
	d.lock.Lock()
	defer d.lock.Unlock()
	d.tasks = append(d.tasks, task)
}

// Pending reports how many submitted tasks have not run yet.
func (d *FakeDispatcher) Pending() int {
	d.lock.Lock()
	defer d.lock.Unlock()
	return len(d.tasks)
}

// Pump runs every queued task, including tasks submitted while pumping,
// and reports how many ran.
func (d *FakeDispatcher) Pump() int {
	ran := 0
	for {
		d.lock.Lock()
		if len(d.tasks) == 0 {
			d.lock.Unlock()
			return ran
		}
		task := d.tasks[0]
		d.tasks = d.tasks[1:]
		d.lock.Unlock()

		task()
		ran++
	}
}
