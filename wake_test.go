// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fut_test

import (
	"testing"

	"code.hybscloud.com/fut"
)

// countWaker counts Wake calls.
type countWaker struct {
	n int
}

func (w *countWaker) Wake() {
	w.n++
}

func TestWakeArrayStartsWoken(t *testing.T) {
	a := fut.NewWakeArray(3)
	if a.Len() != 3 {
		t.Fatalf("len got %d, want 3", a.Len())
	}
	for i := 0; i < 3; i++ {
		if !a.TakeWoken(i) {
			t.Fatalf("slot %d not woken initially", i)
		}
		if a.TakeWoken(i) {
			t.Fatalf("slot %d woken after take", i)
		}
	}
}

func TestWakeForwardsToParent(t *testing.T) {
	a := fut.NewWakeArray(2)
	root := &countWaker{}
	parent := fut.NewHandle(root)
	a.RegisterParent(parent)

	a.TakeWoken(0)
	a.TakeWoken(1)

	a.ChildHandle(1).Wake()
	if root.n != 1 {
		t.Fatalf("parent woken %d times, want 1", root.n)
	}
	if a.TakeWoken(0) {
		t.Fatal("slot 0 woken, want only slot 1")
	}
	if !a.TakeWoken(1) {
		t.Fatal("slot 1 not woken")
	}

	// Forwarding is unconditional, not deduplicated on the flag.
	a.ChildHandle(1).Wake()
	a.ChildHandle(1).Wake()
	if root.n != 3 {
		t.Fatalf("parent woken %d times, want 3", root.n)
	}
}

func TestWakeFanInTwoLevels(t *testing.T) {
	// Child array's parent is a slot of the outer array: a leaf wake must
	// bubble through both levels to the root.
	outer := fut.NewWakeArray(2)
	inner := fut.NewWakeArray(1)
	root := &countWaker{}

	outer.RegisterParent(fut.NewHandle(root))
	inner.RegisterParent(outer.ChildHandle(1))

	outer.TakeWoken(1)
	inner.TakeWoken(0)

	inner.ChildHandle(0).Wake()
	if !inner.TakeWoken(0) {
		t.Fatal("inner slot 0 not marked woken")
	}
	if root.n != 1 {
		t.Fatalf("root woken %d times, want 1", root.n)
	}
	if !outer.TakeWoken(1) {
		t.Fatal("outer slot 1 not marked woken")
	}
}

func TestWakeReRegistrationLastWins(t *testing.T) {
	a := fut.NewWakeArray(1)
	first := &countWaker{}
	second := &countWaker{}
	h1 := fut.NewHandle(first)
	h2 := fut.NewHandle(second)

	a.RegisterParent(h1)
	a.RegisterParent(h2)

	a.ChildHandle(0).Wake()
	if first.n != 0 {
		t.Fatalf("superseded parent woken %d times, want 0", first.n)
	}
	if second.n != 1 {
		t.Fatalf("current parent woken %d times, want 1", second.n)
	}
}

func TestWakeAfterParentHandleDrop(t *testing.T) {
	a := fut.NewWakeArray(1)
	root := &countWaker{}
	h := fut.NewHandle(root)
	a.RegisterParent(h)

	h.Drop()

	// Safe no-op at the severed link; the local flag still latches.
	a.TakeWoken(0)
	a.ChildHandle(0).Wake()
	if root.n != 0 {
		t.Fatalf("dropped parent woken %d times, want 0", root.n)
	}
	if !a.TakeWoken(0) {
		t.Fatal("slot 0 flag lost")
	}
}

func TestWakeAfterArrayDrop(t *testing.T) {
	a := fut.NewWakeArray(2)
	root := &countWaker{}
	a.RegisterParent(fut.NewHandle(root))

	// A child retains its handle past the owner's lifetime.
	retained := a.ChildHandle(0)
	a.Drop()

	retained.Wake()
	if root.n != 0 {
		t.Fatalf("root woken %d times after array drop, want 0", root.n)
	}
}
