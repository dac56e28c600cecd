// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fut

import (
	"code.hybscloud.com/iox"
	"code.hybscloud.com/kont"
)

// raceCore is the arity-generic OR-join state machine. Children are raw
// futures, not Memos: a winner terminates the whole structure, so a loser
// is never polled again and nothing needs memoizing.
type raceCore struct {
	slots []Future[kont.Erased]
	wakes *WakeArray
	won   bool
}

func newRaceCore(futures []Future[kont.Erased]) raceCore {
	return raceCore{slots: futures, wakes: NewWakeArray(len(futures))}
}

// poll runs one OR-join round. Slots are scanned in declaration order and
// the first woken slot whose poll completes wins immediately; remaining
// slots are not examined that call. Ties within one call therefore resolve
// deterministically to the lowest declaration index. Losers receive no
// cancellation signal beyond the race's eventual Drop.
func (r *raceCore) poll(h *Handle) (int, kont.Erased, error) {
	if r.won {
		panic("fut: race polled after completion")
	}
	r.wakes.RegisterParent(h)

	for i, f := range r.slots {
		if !r.wakes.TakeWoken(i) {
			continue
		}
		v, err := f.Poll(r.wakes.ChildHandle(i))
		if err != nil {
			continue
		}
		r.won = true
		return i, v, nil
	}
	return -1, nil, iox.ErrWouldBlock
}

func (r *raceCore) drop() {
	r.wakes.Drop()
}

// Race2 waits for the first of two children to complete. The result is a
// closed tagged union: Left carries slot 0's output, Right slot 1's.
type Race2[A, B any] struct {
	core raceCore
}

// NewRace2 returns the OR-join of a and b. If both are ready within one
// poll call, a wins.
func NewRace2[A, B any](a Future[A], b Future[B]) *Race2[A, B] {
	return &Race2[A, B]{
		core: newRaceCore([]Future[kont.Erased]{Erase(a), Erase(b)}),
	}
}

// Poll implements Future. Re-polling after a winner panics.
func (r *Race2[A, B]) Poll(h *Handle) (kont.Either[A, B], error) {
	i, v, err := r.core.poll(h)
	if err != nil {
		var zero kont.Either[A, B]
		return zero, err
	}
	if i == 0 {
		return kont.Left[A, B](v.(A)), nil
	}
	return kont.Right[A](v.(B)), nil
}

// Drop releases the wake topology; late child wakes become no-ops.
func (r *Race2[A, B]) Drop() {
	r.core.drop()
}

// Winner tags a RaceAll result with the declaration index it came from.
type Winner[T any] struct {
	Index int
	Value T
}

// RaceAll is the homogeneous OR-join over a runtime-determined number of
// children.
type RaceAll[T any] struct {
	core raceCore
}

// NewRaceAll returns the OR-join of futures. Simultaneous readiness within
// one poll call resolves to the lowest argument index.
func NewRaceAll[T any](futures ...Future[T]) *RaceAll[T] {
	erased := make([]Future[kont.Erased], len(futures))
	for i, f := range futures {
		erased[i] = Erase(f)
	}
	return &RaceAll[T]{core: newRaceCore(erased)}
}

// Poll implements Future. Re-polling after a winner panics.
func (r *RaceAll[T]) Poll(h *Handle) (Winner[T], error) {
	i, v, err := r.core.poll(h)
	if err != nil {
		return Winner[T]{}, err
	}
	return Winner[T]{Index: i, Value: v.(T)}, nil
}

// Drop releases the wake topology; late child wakes become no-ops.
func (r *RaceAll[T]) Drop() {
	r.core.drop()
}
