// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fut_test

import (
	"testing"

	"code.hybscloud.com/fut"
	"code.hybscloud.com/kont"
)

// BenchmarkJoin2 measures a two-child AND-join driven to completion.
func BenchmarkJoin2(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		join := fut.NewJoin2[int, int](
			&countFuture{ready: 4},
			&countFuture{ready: 5},
		)
		fut.Exec[fut.Pair[int, int]](join)
	}
}

// BenchmarkRace2 measures a two-child OR-join driven to completion.
func BenchmarkRace2(b *testing.B) {
	b.ReportAllocs()
	for b.Loop() {
		race := fut.NewRace2[int, int](
			fut.Never[int](),
			&countFuture{ready: 4},
		)
		fut.Exec[kont.Either[int, int]](race)
	}
}

// BenchmarkWakeForward measures one fan-in wake propagation.
func BenchmarkWakeForward(b *testing.B) {
	a := fut.NewWakeArray(4)
	a.RegisterParent(fut.NewHandle(&countWaker{}))
	child := a.ChildHandle(3)
	b.ReportAllocs()
	for b.Loop() {
		child.Wake()
		a.TakeWoken(3)
	}
}

// BenchmarkGuardBind measures guard-pair re-registration.
func BenchmarkGuardBind(b *testing.B) {
	cell := fut.NewCell(1)
	w1 := fut.NewWeak[int]()
	w2 := fut.NewWeak[int]()
	b.ReportAllocs()
	for b.Loop() {
		w1.Bind(cell)
		w2.Bind(cell)
	}
}

// BenchmarkPipeRoundTrip measures one send/recv pair through the ring.
func BenchmarkPipeRoundTrip(b *testing.B) {
	s, r := fut.NewPipe[int](4)
	b.ReportAllocs()
	for b.Loop() {
		pair := fut.Exec[fut.Pair[struct{}, int]](fut.NewJoin2(s.Send(1), r.Recv()))
		if pair.Second != 1 {
			b.Fatal("bad round trip")
		}
	}
}
