// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fut

import (
	"code.hybscloud.com/lfq"
)

// pipeCore holds the bounded transport and the two guard-linked waiters.
// Each waiter is bound to whatever handle last polled that end while
// pending, so progress on one end wakes the other; a dropped handle simply
// reads absent and nothing stale is woken.
type pipeCore[T any] struct {
	ring       lfq.SPSC[T]
	sendWaiter Weak[Waker]
	recvWaiter Weak[Waker]
	serial     Serial
	sendSlot   T
}

func (p *pipeCore[T]) wakeRecv() {
	if w, ok := p.recvWaiter.Get(); ok && w != nil {
		w.Wake()
	}
}

func (p *pipeCore[T]) wakeSend() {
	if w, ok := p.sendWaiter.Get(); ok && w != nil {
		w.Wake()
	}
}

// pipePair holds both ends, the ring and the waiters in a single
// allocation; only the ring buffer is a separate heap object.
type pipePair[T any] struct {
	core pipeCore[T]
	s    Sender[T]
	r    Receiver[T]
}

// Sender is the producing end of a pipe.
type Sender[T any] struct {
	core *pipeCore[T]
}

// Receiver is the consuming end of a pipe.
type Receiver[T any] struct {
	core *pipeCore[T]
}

// NewPipe creates a connected pipe pair over a bounded lock-free SPSC ring
// of the given capacity. Send futures observe backpressure as Pending;
// Recv futures observe an empty ring as Pending. Each pipe is assigned a
// monotonically increasing serial.
//
// The supported mode is single-executor interleaving: both ends composed
// into one future tree and driven by one Exec. Cross-goroutine use
// inherits the SPSC single-producer single-consumer contract.
func NewPipe[T any](capacity int) (*Sender[T], *Receiver[T]) {
	pair := &pipePair[T]{}
	pair.core.ring.Init(capacity)
	pair.core.serial = nextSerial()
	pair.s = Sender[T]{core: &pair.core}
	pair.r = Receiver[T]{core: &pair.core}
	return &pair.s, &pair.r
}

// Serial returns the serial number assigned to this pipe.
func (s *Sender[T]) Serial() Serial {
	return s.core.serial
}

// Serial returns the serial number assigned to this pipe.
func (r *Receiver[T]) Serial() Serial {
	return r.core.serial
}

// Send returns a Future that completes once v is enqueued. While the ring
// is full it is Pending with the sender's waiter bound to the polling
// handle; the receiver's next dequeue wakes it.
func (s *Sender[T]) Send(v T) Future[struct{}] {
	return &sendFuture[T]{core: s.core, value: v}
}

// Recv returns a Future that completes with the next value dequeued.
// While the ring is empty it is Pending with the receiver's waiter bound
// to the polling handle; the sender's next enqueue wakes it.
func (r *Receiver[T]) Recv() Future[T] {
	return &recvFuture[T]{core: r.core}
}

type sendFuture[T any] struct {
	core  *pipeCore[T]
	value T
	sent  bool
}

func (f *sendFuture[T]) Poll(h *Handle) (struct{}, error) {
	if f.sent {
		panic("fut: send polled after completion")
	}
	// Register before attempting: a dequeue landing between a failed
	// attempt and a later registration would be a lost wake.
	f.core.sendWaiter.Bind(&h.cell)
	f.core.sendSlot = f.value
	if err := f.core.ring.Enqueue(&f.core.sendSlot); err != nil {
		return struct{}{}, err
	}
	f.sent = true
	f.core.sendWaiter.Drop()
	f.core.wakeRecv()
	return struct{}{}, nil
}

type recvFuture[T any] struct {
	core     *pipeCore[T]
	received bool
}

func (f *recvFuture[T]) Poll(h *Handle) (T, error) {
	if f.received {
		panic("fut: recv polled after completion")
	}
	// Register before attempting, mirroring sendFuture.
	f.core.recvWaiter.Bind(&h.cell)
	v, err := f.core.ring.Dequeue()
	if err != nil {
		var zero T
		return zero, err
	}
	f.received = true
	f.core.recvWaiter.Drop()
	f.core.wakeSend()
	return v, nil
}
