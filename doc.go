// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fut provides composable pollable futures with an edge-triggered,
// invalidation-safe wake topology and no reference counting.
//
// Futures are combined into larger futures (AND-join, OR-join) over a
// fan-in bank of wake cells; a leaf's readiness bubbles to the root driver
// however deep the nesting.
//
// # Architecture
//
//   - Polling: [Future] is advanced one [Future.Poll] at a time and never blocks.
//     Pending is [code.hybscloud.com/iox.ErrWouldBlock], the family-wide "cannot make progress now" boundary.
//   - Waking: [Waker] is the one capability granted downward; [Handle] is the concrete
//     wake-handle representation passed to every Poll, nominally distinct from any foreign waker type.
//   - Guard pairs: [Cell] and [Weak] form a mutual weak reference with automatic link
//     invalidation on either side's Drop. Every parent link in the wake topology is a guard
//     pair, so a wake arriving after its target is gone is a safe no-op, never a stale call.
//     [AtomicCell]/[AtomicWeak] are the thread-safe variant.
//   - Transport: [NewPipe] creates a bounded SPSC pipe via [code.hybscloud.com/lfq] whose
//     ends produce Send/Recv futures with backpressure as Pending.
//
// # API Topologies
//
//   - Leaves: [Ready], [Never], [FutureFunc], [Sender.Send], [Receiver.Recv].
//   - Completion memoization: [Memo] wraps a future so a finished slot no-op polls.
//   - Combinators: [NewJoin2], [NewJoin3], [NewJoinAll] (all children; outputs in
//     declaration order), [NewRace2], [NewRaceAll] (first child; lowest index wins ties).
//     Race results are tagged: [code.hybscloud.com/kont.Either] for NewRace2, [Winner] for NewRaceAll.
//   - Driving: [Exec] re-polls the root only in response to a wake, waiting past quiet
//     periods with adaptive backoff.
//
// # Discipline
//
// Polling is edge-triggered: a future is polled only when a wake was
// delivered since its last poll. Misuse of the state machines (re-polling
// a consumed future, double-taking an output) is a programmer error and
// panics; link supersession ("last registration wins") is designed
// behavior and never an error.
//
// # Example
//
//	s, r := fut.NewPipe[int](4)
//	producer := s.Send(42)
//	consumer := r.Recv()
//	pair := fut.Exec[fut.Pair[struct{}, int]](fut.NewJoin2(producer, consumer))
//	// pair.Second == 42
package fut
