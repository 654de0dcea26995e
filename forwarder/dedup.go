// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package forwarder

import (
	"container/list"
	"sync"

	"github.com/luxfi/consensus/utils/set"
	"github.com/luxfi/ids"
)

// slidingWindow suppresses duplicate transaction digests over the last
// capacity insertions, evicting the oldest entry once full. Plain
// set.Set has no eviction policy, so insertion order is tracked
// separately in a list.
type slidingWindow struct {
	mu       sync.Mutex
	capacity int
	order    *list.List
	seen     set.Set[ids.ID]
}

func newSlidingWindow(capacity int) *slidingWindow {
	return &slidingWindow{
		capacity: capacity,
		order:    list.New(),
		seen:     set.NewSet[ids.ID](capacity),
	}
}

// seenOrAdd reports whether digest was already present, inserting it if
// not.
func (w *slidingWindow) seenOrAdd(digest ids.ID) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.seen.Contains(digest) {
		return true
	}
	w.seen.Add(digest)
	w.order.PushBack(digest)
	if w.order.Len() > w.capacity {
		oldest := w.order.Front()
		w.order.Remove(oldest)
		w.seen.Remove(oldest.Value.(ids.ID))
	}
	return false
}
