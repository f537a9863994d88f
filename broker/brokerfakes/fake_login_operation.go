package brokerfakes

import (
	"sync"

	"github.com/harmonode/qobuz/broker"
	"github.com/harmonode/qobuz/session"
)

var _ broker.LoginOperation = (*FakeLoginOperation)(nil)

// FakeLoginOperation is a hand-rolled login operation whose outcome the test
// drives explicitly via Succeed or Fail.
type FakeLoginOperation struct {
	handler broker.Handler

	lock     sync.Mutex
	started  int
	startErr error
}

func NewFakeLoginOperation(h broker.Handler) *FakeLoginOperation {
	return &FakeLoginOperation{handler: h}
}

// Factory returns an OperationFactory handing out fakes and a function to
// retrieve every operation built so far.
func Factory() (broker.OperationFactory, func() []*FakeLoginOperation) {
	var lock sync.Mutex
	var ops []*FakeLoginOperation

	factory := func(h broker.Handler) (broker.LoginOperation, error) {
		op := NewFakeLoginOperation(h)
		lock.Lock()
		ops = append(ops, op)
		lock.Unlock()
		return op, nil
	}

	built := func() []*FakeLoginOperation {
		lock.Lock()
		defer lock.Unlock()
		return append([]*FakeLoginOperation(nil), ops...)
	}

	return factory, built
}

// SetStartError makes the next Start call fail synchronously.
func (op *FakeLoginOperation) SetStartError(err error) {
	op.lock.Lock()
	defer op.lock.Unlock()
	op.startErr = err
}

func (op *FakeLoginOperation) Start() error {
	op.lock.Lock()
	defer op.lock.Unlock()
	if op.startErr != nil {
		return op.startErr
	}
	op.started++
	return nil
}

// StartCount reports how many times Start succeeded.
func (op *FakeLoginOperation) StartCount() int {
	op.lock.Lock()
	defer op.lock.Unlock()
	return op.started
}

// Succeed reports a successful login into the handler.
func (op *FakeLoginOperation) Succeed(s session.Session) {
	op.handler.OnLoginSuccess(s)
}

// Fail reports a failed login into the handler.
func (op *FakeLoginOperation) Fail(err error) {
	op.handler.OnLoginError(err)
}
