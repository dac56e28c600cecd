// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fut

const (
	memoActive = iota
	memoDone
	memoTaken
)

// Memo wraps a Future and memoizes its result, so that a slot already
// known complete can be safely polled again as a no-op. Join relies on
// this: its scan polls any woken slot unconditionally, completed or not.
//
// States: Active (inner future still running), Done (output held),
// Taken (output extracted).
type Memo[T any] struct {
	state  uint8
	future Future[T]
	output T
}

// Wrap returns a Memo in the Active state wrapping f.
func Wrap[T any](f Future[T]) *Memo[T] {
	return &Memo[T]{future: f}
}

// Poll advances the wrapped future. While Active, the inner future is
// polled with h; on Ready its output is memoized and the inner future
// released. Once Done, Poll completes immediately without touching the
// inner future again.
//
// Polling after TakeOutput is a contract violation and panics: it means a
// driver ignored the rule that a terminated slot is never re-polled.
func (m *Memo[T]) Poll(h *Handle) error {
	switch m.state {
	case memoActive:
		v, err := m.future.Poll(h)
		if err != nil {
			return err
		}
		m.output = v
		m.future = nil
		m.state = memoDone
		return nil
	case memoDone:
		return nil
	default:
		panic("fut: memo polled after output taken")
	}
}

// Done reports whether the output is held and not yet taken.
func (m *Memo[T]) Done() bool {
	return m.state == memoDone
}

// TakeOutput extracts the memoized output, transitioning Done to Taken.
// In any other state it returns (zero, false); absence is not an error.
func (m *Memo[T]) TakeOutput() (T, bool) {
	if m.state != memoDone {
		var zero T
		return zero, false
	}
	m.state = memoTaken
	v := m.output
	var zero T
	m.output = zero
	return v, true
}
