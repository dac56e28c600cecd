// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fut

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// erasedFuture adapts Future[T] to the type-erased world the combinator
// cores operate in. Concrete types are recovered at the typed fronts.
type erasedFuture[T any] struct {
	future Future[T]
}

func (e erasedFuture[T]) Poll(h *Handle) (kont.Erased, error) {
	v, err := e.future.Poll(h)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// Erase converts a typed future to Future[kont.Erased].
func Erase[T any](f Future[T]) Future[kont.Erased] {
	return erasedFuture[T]{future: f}
}

// joinCore is the arity-generic AND-join state machine: one Memo and one
// wake slot per child, declaration-order-indexed.
type joinCore struct {
	slots     []*Memo[kont.Erased]
	wakes     *WakeArray
	completed bool
}

func newJoinCore(futures []Future[kont.Erased]) joinCore {
	slots := make([]*Memo[kont.Erased], len(futures))
	for i, f := range futures {
		slots[i] = Wrap(f)
	}
	return joinCore{slots: slots, wakes: NewWakeArray(len(futures))}
}

// poll runs one AND-join round. Children are visited strictly in
// declaration order and each is polled at most once: a woken slot is
// polled (Memo makes this a no-op if it already completed), an unwoken
// slot counts as ready only if it is Done. The round is Ready iff every
// slot is ready; the outputs then come back in declaration order no
// matter the completion order.
func (j *joinCore) poll(h *Handle) ([]kont.Erased, error) {
	if j.completed {
		panic("fut: join polled after completion")
	}
	j.wakes.RegisterParent(h)

	ready := true
	for i, m := range j.slots {
		if j.wakes.TakeWoken(i) {
			if m.Poll(j.wakes.ChildHandle(i)) != nil {
				ready = false
			}
		} else if !m.Done() {
			ready = false
		}
	}
	if !ready {
		return nil, iox.ErrWouldBlock
	}

	j.completed = true
	outputs := make([]kont.Erased, len(j.slots))
	for i, m := range j.slots {
		v, ok := m.TakeOutput()
		if !ok {
			// Structurally unreachable: every slot is Done on this path.
			panic("fut: join output missing on ready path")
		}
		outputs[i] = v
	}
	return outputs, nil
}

func (j *joinCore) drop() {
	j.wakes.Drop()
}

// Pair is the declaration-ordered output of Join2.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple is the declaration-ordered output of Join3.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

// Join2 waits for both children to complete and yields their outputs in
// declaration order, independent of completion order.
type Join2[A, B any] struct {
	core joinCore
}

// NewJoin2 returns the AND-join of a and b.
func NewJoin2[A, B any](a Future[A], b Future[B]) *Join2[A, B] {
	return &Join2[A, B]{
		core: newJoinCore([]Future[kont.Erased]{Erase(a), Erase(b)}),
	}
}

// Poll implements Future. Re-polling after Ready panics.
func (j *Join2[A, B]) Poll(h *Handle) (Pair[A, B], error) {
	outputs, err := j.core.poll(h)
	if err != nil {
		return Pair[A, B]{}, err
	}
	return Pair[A, B]{
		First:  outputs[0].(A),
		Second: outputs[1].(B),
	}, nil
}

// Drop releases the wake topology; late child wakes become no-ops.
func (j *Join2[A, B]) Drop() {
	j.core.drop()
}

// Join3 is the three-child AND-join.
type Join3[A, B, C any] struct {
	core joinCore
}

// NewJoin3 returns the AND-join of a, b and c.
func NewJoin3[A, B, C any](a Future[A], b Future[B], c Future[C]) *Join3[A, B, C] {
	return &Join3[A, B, C]{
		core: newJoinCore([]Future[kont.Erased]{Erase(a), Erase(b), Erase(c)}),
	}
}

// Poll implements Future. Re-polling after Ready panics.
func (j *Join3[A, B, C]) Poll(h *Handle) (Triple[A, B, C], error) {
	outputs, err := j.core.poll(h)
	if err != nil {
		return Triple[A, B, C]{}, err
	}
	return Triple[A, B, C]{
		First:  outputs[0].(A),
		Second: outputs[1].(B),
		Third:  outputs[2].(C),
	}, nil
}

// Drop releases the wake topology; late child wakes become no-ops.
func (j *Join3[A, B, C]) Drop() {
	j.core.drop()
}

// JoinAll is the homogeneous AND-join over a runtime-determined number of
// children.
type JoinAll[T any] struct {
	core joinCore
}

// NewJoinAll returns the AND-join of futures. Outputs preserve argument
// order.
func NewJoinAll[T any](futures ...Future[T]) *JoinAll[T] {
	erased := make([]Future[kont.Erased], len(futures))
	for i, f := range futures {
		erased[i] = Erase(f)
	}
	return &JoinAll[T]{core: newJoinCore(erased)}
}

// Poll implements Future. Re-polling after Ready panics.
func (j *JoinAll[T]) Poll(h *Handle) ([]T, error) {
	outputs, err := j.core.poll(h)
	if err != nil {
		return nil, err
	}
	values := make([]T, len(outputs))
	for i, v := range outputs {
		values[i] = v.(T)
	}
	return values, nil
}

// Drop releases the wake topology; late child wakes become no-ops.
func (j *JoinAll[T]) Drop() {
	j.core.drop()
}
