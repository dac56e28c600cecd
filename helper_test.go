// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fut_test

import (
	"code.hybscloud.com/fut"
)

// sendAll is a future that feeds every item through the sender in order,
// completing once the last enqueue succeeds. While the ring is full it is
// Pending, resuming at the item the backpressure stopped on.
type sendAll[T any] struct {
	sender *fut.Sender[T]
	items  []T
	cur    fut.Future[struct{}]
}

func (f *sendAll[T]) Poll(h *fut.Handle) (struct{}, error) {
	for {
		if f.cur == nil {
			if len(f.items) == 0 {
				return struct{}{}, nil
			}
			f.cur = f.sender.Send(f.items[0])
			f.items = f.items[1:]
		}
		if _, err := f.cur.Poll(h); err != nil {
			return struct{}{}, err
		}
		f.cur = nil
	}
}

// recvAll is a future that collects n items from the receiver, completing
// with them in arrival order.
type recvAll[T any] struct {
	receiver  *fut.Receiver[T]
	remaining int
	collected []T
	cur       fut.Future[T]
}

func (f *recvAll[T]) Poll(h *fut.Handle) ([]T, error) {
	for f.remaining > 0 {
		if f.cur == nil {
			f.cur = f.receiver.Recv()
		}
		v, err := f.cur.Poll(h)
		if err != nil {
			return nil, err
		}
		f.collected = append(f.collected, v)
		f.cur = nil
		f.remaining--
	}
	return f.collected, nil
}
