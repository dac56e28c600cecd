// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fut

import (
	"code.hybscloud.com/iox"
)

// Waker is the capability to report renewed readiness.
// Wake may be called any number of times, synchronously or from arbitrary
// later call stacks, and is a safe no-op once its origin has been dropped.
type Waker interface {
	Wake()
}

// Handle is the wake-handle representation passed to every Poll.
// It is the value-cell half of a guard pair holding a Waker, so combinators
// can link their fan-in arrays to it and the link can never dangle past
// either side's Drop.
//
// Handle is deliberately not convertible to or from any foreign waker
// representation (context cancellation, channels, runtime wakers).
type Handle struct {
	cell Cell[Waker]
}

// NewHandle returns a Handle waking w.
func NewHandle(w Waker) *Handle {
	h := &Handle{}
	h.cell.Set(w)
	return h
}

// Wake forwards to the held Waker. No-op after Drop.
func (h *Handle) Wake() {
	if w := h.cell.Get(); w != nil {
		w.Wake()
	}
}

// Drop invalidates h: any Weak currently linked to it reads absent from now
// on, and Wake becomes a no-op.
func (h *Handle) Drop() {
	h.cell.Drop()
}

// A Future is a suspendable unit of work advanced only by explicit Poll
// calls, never by blocking.
//
// Poll returns (v, nil) when the future completes with v, or
// (zero, iox.ErrWouldBlock) when it cannot make progress now. In the
// pending case the future must arrange for h to be woken before it can
// progress; the driver must not re-poll except in response to such a wake.
//
// Once Poll has returned nil, the future is consumed; polling it again is
// a contract violation.
type Future[T any] interface {
	Poll(h *Handle) (T, error)
}

// FutureFunc adapts a function to the Future interface.
type FutureFunc[T any] func(h *Handle) (T, error)

// Poll implements Future by calling f.
func (f FutureFunc[T]) Poll(h *Handle) (T, error) {
	return f(h)
}

// Ready returns a Future that completes immediately with v.
func Ready[T any](v T) Future[T] {
	return FutureFunc[T](func(*Handle) (T, error) {
		return v, nil
	})
}

// Never returns a Future that never completes and never wakes.
func Never[T any]() Future[T] {
	return FutureFunc[T](func(*Handle) (T, error) {
		var zero T
		return zero, iox.ErrWouldBlock
	})
}
