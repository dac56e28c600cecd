// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fut

// A guard pair is a mutual weak reference between two address-stable
// objects: a Cell owning a value, and a Weak reading through to it.
// Linking is exclusive on both sides; binding a new partner unlinks the
// previous one, and dropping either side nulls the partner's link first.
// No heap allocation and no reference counting are involved in the link
// itself, only the two back pointers.
//
// Both types are address-identity objects: they must not be copied while
// linked. The noCopy field makes `go vet` flag copies.

// Cell is the value side of a guard pair. At most one Weak is linked to a
// Cell at a time.
type Cell[T any] struct {
	noCopy noCopy

	value T
	weak  *Weak[T]
	dead  bool
}

// NewCell returns a Cell holding v, not yet linked to any Weak.
func NewCell[T any](v T) *Cell[T] {
	return &Cell[T]{value: v}
}

// Set replaces the stored value. Linked Weaks observe the new value on
// their next Get.
func (c *Cell[T]) Set(v T) {
	c.value = v
}

// Get returns the stored value, or the zero value after Drop.
func (c *Cell[T]) Get() T {
	if c.dead {
		var zero T
		return zero
	}
	return c.value
}

// Drop invalidates c. The linked Weak, if any, is unlinked first; its
// subsequent Get reports absent, never a stale value. Get on c returns the
// zero value from now on.
func (c *Cell[T]) Drop() {
	if c.weak != nil {
		c.weak.cell = nil
		c.weak = nil
	}
	var zero T
	c.value = zero
	c.dead = true
}

// Weak is the reading side of a guard pair. A Weak reads through at most
// one Cell at a time.
type Weak[T any] struct {
	noCopy noCopy

	cell *Cell[T]
}

// NewWeak returns a Weak not linked to any Cell.
func NewWeak[T any]() *Weak[T] {
	return &Weak[T]{}
}

// Bind links w to c, unlinking w's previous Cell and c's previous Weak.
// Last registration wins; superseded links read absent, which is designed
// behavior, not an error.
func (w *Weak[T]) Bind(c *Cell[T]) {
	if prev := c.weak; prev != nil && prev != w {
		prev.cell = nil
	}
	if prev := w.cell; prev != nil && prev != c {
		prev.weak = nil
	}
	c.weak = w
	w.cell = c
}

// Get returns the linked Cell's value. ok is false if w was never bound,
// its link was superseded, or either side was dropped.
func (w *Weak[T]) Get() (T, bool) {
	c := w.cell
	if c == nil || c.dead {
		var zero T
		return zero, false
	}
	return c.value, true
}

// Drop unlinks w from its Cell, if any.
func (w *Weak[T]) Drop() {
	if c := w.cell; c != nil {
		c.weak = nil
		w.cell = nil
	}
}

// noCopy triggers `go vet -copylocks` on copies of address-identity types.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
