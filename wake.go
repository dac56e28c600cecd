// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fut

// wakeCell is one slot of readiness bookkeeping: a woken flag plus a link
// to the bank's shared parent. Wake always sets the flag and always
// forwards to the parent if one is linked; redundant forwarding is safe.
// The flag is cleared only by takeWoken.
type wakeCell struct {
	parent *Weak[Waker]
	woken  bool
}

// Wake implements Waker.
func (c *wakeCell) Wake() {
	c.woken = true
	if w, ok := c.parent.Get(); ok && w != nil {
		w.Wake()
	}
}

func (c *wakeCell) takeWoken() bool {
	woken := c.woken
	c.woken = false
	return woken
}

// WakeArray is a fixed-size bank of wake cells sharing one parent
// registration. A combinator owns one WakeArray, registering the handle it
// is polled with as the shared parent and handing each child slot i's
// handle to child i, so a leaf's readiness bubbles to the root driver
// however deep the nesting.
//
// The parent registration is held through a guard pair, so a child's late
// Wake after the owner is dropped reaches nothing rather than something
// stale.
type WakeArray struct {
	parent  Weak[Waker]
	cells   []wakeCell
	handles []Handle
}

// NewWakeArray returns a bank of n wake cells. Every cell starts woken so
// that the first poll of each slot is never skipped.
func NewWakeArray(n int) *WakeArray {
	a := &WakeArray{
		cells:   make([]wakeCell, n),
		handles: make([]Handle, n),
	}
	for i := range a.cells {
		a.cells[i].parent = &a.parent
		a.cells[i].woken = true
		a.handles[i].cell.Set(&a.cells[i])
	}
	return a
}

// Len returns the number of slots.
func (a *WakeArray) Len() int {
	return len(a.cells)
}

// RegisterParent rebinds the shared parent to h for the next notification.
// The owner calls this on every poll: the supplied handle can legitimately
// differ from call to call, and last registration wins.
func (a *WakeArray) RegisterParent(h *Handle) {
	a.parent.Bind(&h.cell)
}

// ChildHandle returns the handle the owner passes when polling child i.
// Waking it marks slot i woken and forwards to the registered parent.
func (a *WakeArray) ChildHandle(i int) *Handle {
	return &a.handles[i]
}

// TakeWoken reads and clears slot i's woken flag. The owner calls it once
// per slot per poll to decide whether to actually poll that child.
func (a *WakeArray) TakeWoken(i int) bool {
	return a.cells[i].takeWoken()
}

// Drop unlinks the parent registration and invalidates every child handle.
// Wakes arriving afterwards are safe no-ops.
func (a *WakeArray) Drop() {
	a.parent.Drop()
	for i := range a.handles {
		a.handles[i].Drop()
	}
}
