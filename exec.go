// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fut

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
)

// rootWaker is the driver-side end of the wake topology: a single atomic
// woken flag. The flag is atomic so wakes may arrive from other
// goroutines; everything below the root stays single-threaded.
type rootWaker struct {
	woken atomix.Uint32
}

// Wake implements Waker.
func (w *rootWaker) Wake() {
	w.woken.Store(1)
}

func (w *rootWaker) takeWoken() bool {
	return w.woken.Swap(0) != 0
}

// Exec drives f to completion on the calling goroutine and returns its
// output. Polling is edge-triggered: f is polled only when a wake has
// reached the root since its last poll, and Exec waits past quiet periods
// with adaptive backoff (iox.Backoff). No goroutines are spawned and no
// channels are created.
//
// A future that returns Pending without arranging any wake leaves Exec
// waiting forever; that is the future's contract violation, not a
// recoverable condition.
func Exec[R any](f Future[R]) R {
	var root rootWaker
	root.woken.Store(1)

	h := NewHandle(&root)
	defer h.Drop()

	var bo iox.Backoff
	for {
		if !root.takeWoken() {
			bo.Wait()
			continue
		}
		v, err := f.Poll(h)
		if err == nil {
			return v
		}
		bo.Reset()
	}
}
