// Package broker caches one Qobuz login result and coalesces concurrent
// requests for it: no matter how many callers register while the broker is
// idle, at most one login exchange is ever in flight.
package broker

import (
	"sync"

	"github.com/harmonode/qobuz/session"
	"github.com/pkg/errors"
)

// Waiter receives a wake-up once a login outcome (success or failure) is
// available. The notification carries no payload; the waiter calls
// TryGetSession to learn what happened.
type Waiter interface {
	OnSessionReady()
}

// WaiterFunc adapts a plain function to the Waiter interface.
type WaiterFunc func()

func (f WaiterFunc) OnSessionReady() { f() }

// LoginOperation is one asynchronous login exchange. Start is fire-and-forget;
// the operation reports exactly once, via the handler it was built with.
type LoginOperation interface {
	Start() error
}

// Handler is the completion interface a LoginOperation reports into.
// The broker itself implements it.
type Handler interface {
	OnLoginSuccess(session.Session)
	OnLoginError(error)
}

// OperationFactory builds a fresh login operation reporting into h.
// The broker calls it once per login attempt.
type OperationFactory func(h Handler) (LoginOperation, error)

// Dispatcher runs a submitted task later, on its own execution context,
// never synchronously within Submit.
type Dispatcher interface {
	Submit(task func())
}

// Broker is the session-acquisition state machine. All public methods are
// safe for concurrent use; none of them blocks waiting for a login to finish.
type Broker struct {
	dispatcher   Dispatcher
	newOperation OperationFactory

	mu            sync.Mutex
	session       session.Session
	err           error
	operation     LoginOperation // non-nil while a login exchange is in flight
	waiters       []Waiter
	notifyPending bool // a notification round is submitted but not yet started
}

// NewBroker initializes a Broker with its required collaborators.
func NewBroker(dispatcher Dispatcher, newOperation OperationFactory) (*Broker, error) {
	if dispatcher == nil {
		return nil, errors.New("[NewBroker] dispatcher is required")
	}
	if newOperation == nil {
		return nil, errors.New("[NewBroker] operation factory is required")
	}

	return &Broker{
		dispatcher:   dispatcher,
		newOperation: newOperation,
	}, nil
}

var _ Handler = (*Broker)(nil)

// Register adds w to the notification queue. It returns immediately; w is
// woken later, on the dispatcher context, once an outcome is available.
// A waiter must not be registered twice concurrently.
//
// A login operation is started only when the queue transitions from empty to
// non-empty with no operation already running. A cached session short-circuits
// into an immediate notification round; a cached error does not — a new wave
// of registrants always gets a fresh attempt.
func (b *Broker) Register(w Waiter) {
	b.mu.Lock()

	wasEmpty := len(b.waiters) == 0
	b.waiters = append(b.waiters, w)

	if !wasEmpty || b.operation != nil {
		b.mu.Unlock()
		return
	}

	submit := false
	if b.session.IsDefined() {
		submit = b.scheduleNotifyLocked()
	} else if err := b.startLoginLocked(); err != nil {
		b.err = err
		submit = b.scheduleNotifyLocked()
	}
	b.mu.Unlock()

	if submit {
		b.dispatcher.Submit(b.notifyWaiters)
	}
}

// TryGetSession is a non-blocking snapshot read of the cached outcome.
// It fails with NotLoggedInErr before the first attempt completes, re-surfaces
// the stored error if the most recent attempt failed, and otherwise returns
// the cached session. The waiter queue is neither consulted nor modified.
func (b *Broker) TryGetSession() (session.Session, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.err != nil {
		return session.Session{}, b.err
	}
	if !b.session.IsDefined() {
		return session.Session{}, NotLoggedInErr
	}
	return b.session, nil
}

// OnLoginSuccess is the login operation's success path. It overwrites the
// cached outcome wholesale and triggers a notification round.
func (b *Broker) OnLoginSuccess(s session.Session) {
	b.mu.Lock()
	b.session = s
	b.err = nil
	b.operation = nil
	submit := b.scheduleNotifyLocked()
	b.mu.Unlock()

	if submit {
		b.dispatcher.Submit(b.notifyWaiters)
	}
}

// OnLoginError is the login operation's failure path. The error is stored
// opaquely; the broker never classifies it.
func (b *Broker) OnLoginError(err error) {
	b.mu.Lock()
	b.err = err
	b.session = session.Session{}
	b.operation = nil
	submit := b.scheduleNotifyLocked()
	b.mu.Unlock()

	if submit {
		b.dispatcher.Submit(b.notifyWaiters)
	}
}

// startLoginLocked launches a fresh login attempt. Caller holds b.mu.
func (b *Broker) startLoginLocked() error {
	op, err := b.newOperation(b)
	if err != nil {
		return errors.Wrap(err, "[Register] building login operation")
	}

	b.operation = op
	if err := op.Start(); err != nil {
		b.operation = nil
		return errors.Wrap(err, "[Register] starting login operation")
	}
	return nil
}

// scheduleNotifyLocked marks a notification round as pending. It returns true
// when the caller should submit the round; at most one submission is
// outstanding per broker since a round always drains the queue fully.
// Caller holds b.mu.
func (b *Broker) scheduleNotifyLocked() bool {
	if b.notifyPending {
		return false
	}
	b.notifyPending = true
	return true
}

// notifyWaiters is the notification round. It runs on the dispatcher context
// and drains the queue in FIFO order, releasing the lock around every
// callback: a callback may re-enter the broker (Register, TryGetSession)
// without deadlocking, and a waiter appended mid-round is drained in the same
// pass because the loop re-checks emptiness each iteration.
func (b *Broker) notifyWaiters() {
	b.mu.Lock()
	b.notifyPending = false
	for len(b.waiters) > 0 {
		w := b.waiters[0]
		b.waiters = b.waiters[1:]

		b.mu.Unlock()
		w.OnSessionReady()
		b.mu.Lock()
	}
	b.mu.Unlock()
}
