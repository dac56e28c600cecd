// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fut

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

// guardLock serializes every atomic guard-pair operation. A link update
// touches both objects of a pair, so it cannot be expressed as a single
// compare-and-swap; one shared critical section covers the two-object
// invariant instead, as in a classic interrupt-masking critical section.
var guardLock spinLock

// spinLock is a CAS spinlock with adaptive backoff under contention.
type spinLock struct {
	state atomix.Uint32
}

func (l *spinLock) lock() {
	if l.state.CompareAndSwap(0, 1) {
		return
	}
	var bo iox.Backoff
	for !l.state.CompareAndSwap(0, 1) {
		bo.Wait()
	}
}

func (l *spinLock) unlock() {
	l.state.Store(0)
}

// AtomicCell is the thread-safe variant of Cell. Link, Set, Get and Drop
// run under mutual exclusion, preserving the single-writer single-reader
// contract across goroutines.
type AtomicCell[T any] struct {
	noCopy noCopy

	value T
	weak  *AtomicWeak[T]
	dead  bool
}

// NewAtomicCell returns an AtomicCell holding v, not yet linked.
func NewAtomicCell[T any](v T) *AtomicCell[T] {
	return &AtomicCell[T]{value: v}
}

// Set replaces the stored value.
func (c *AtomicCell[T]) Set(v T) {
	guardLock.lock()
	c.value = v
	guardLock.unlock()
}

// Get returns the stored value, or the zero value after Drop.
func (c *AtomicCell[T]) Get() T {
	guardLock.lock()
	v := c.value
	if c.dead {
		var zero T
		v = zero
	}
	guardLock.unlock()
	return v
}

// Drop invalidates c, unlinking the partner AtomicWeak first.
func (c *AtomicCell[T]) Drop() {
	guardLock.lock()
	if c.weak != nil {
		c.weak.cell = nil
		c.weak = nil
	}
	var zero T
	c.value = zero
	c.dead = true
	guardLock.unlock()
}

// AtomicWeak is the thread-safe variant of Weak.
type AtomicWeak[T any] struct {
	noCopy noCopy

	cell *AtomicCell[T]
}

// NewAtomicWeak returns an AtomicWeak not linked to any AtomicCell.
func NewAtomicWeak[T any]() *AtomicWeak[T] {
	return &AtomicWeak[T]{}
}

// Bind links w to c, unlinking both parties' previous partners.
// Last registration wins.
func (w *AtomicWeak[T]) Bind(c *AtomicCell[T]) {
	guardLock.lock()
	if prev := c.weak; prev != nil && prev != w {
		prev.cell = nil
	}
	if prev := w.cell; prev != nil && prev != c {
		prev.weak = nil
	}
	c.weak = w
	w.cell = c
	guardLock.unlock()
}

// Get returns the linked AtomicCell's value. ok is false if the link was
// never made, was superseded, or either side was dropped.
func (w *AtomicWeak[T]) Get() (T, bool) {
	guardLock.lock()
	c := w.cell
	if c == nil || c.dead {
		guardLock.unlock()
		var zero T
		return zero, false
	}
	v := c.value
	guardLock.unlock()
	return v, true
}

// Drop unlinks w from its AtomicCell, if any.
func (w *AtomicWeak[T]) Drop() {
	guardLock.lock()
	if c := w.cell; c != nil {
		c.weak = nil
		w.cell = nil
	}
	guardLock.unlock()
}
