package queue

import (
	"errors"
	"fmt"
	"math"
)

// ErrCapacityExceeded is returned by Insert when the heap is full.
var ErrCapacityExceeded = errors.New("wheel heap capacity exceeded")

// Never is the NextHit of the sentinel entry.
const Never uint64 = math.MaxUint64

// WheelEntry tracks the next odd multiple of one sieving prime.
type WheelEntry struct {
	NextHit uint64 // next odd composite produced by the prime
	Stride  uint64 // twice the prime
}

// Prime returns the prime tracked by the entry.
func (e WheelEntry) Prime() uint64 { return e.Stride / 2 }

// MinHeap is a capacity-checked min-heap of WheelEntry values.
// Value-based storage; no per-entry allocation.
type MinHeap struct {
	items []WheelEntry
}

// NewMinHeap creates a heap holding up to capacity entries, the sentinel
// included. Capacity values below 1 are raised to 1.
func NewMinHeap(capacity int) *MinHeap {
	capacity = max(capacity, 1)
	h := &MinHeap{
		items: make([]WheelEntry, 0, capacity),
	}
	h.items = append(h.items, WheelEntry{NextHit: Never})
	return h
}

// Insert adds e, restoring heap order.
func (h *MinHeap) Insert(e WheelEntry) error {
	if len(h.items) == cap(h.items) {
		return fmt.Errorf("%w: capacity %d", ErrCapacityExceeded, cap(h.items))
	}
	h.items = append(h.items, e)
	h.siftUp(len(h.items) - 1)
	return nil
}

// PeekMin returns the entry with the smallest NextHit without removing it.
func (h *MinHeap) PeekMin() WheelEntry {
	return h.items[0]
}

// ExtractMin removes and returns the entry with the smallest NextHit.
// Extracting the sentinel leaves it in place.
func (h *MinHeap) ExtractMin() WheelEntry {
	n := len(h.items)
	root := h.items[0]
	if n == 1 {
		return root
	}
	h.items[0] = h.items[n-1]
	h.items = h.items[:n-1]
	h.siftDown(0)
	return root
}

// Len returns the number of tracked entries, excluding the sentinel.
func (h *MinHeap) Len() int { return len(h.items) - 1 }

// Cap returns the configured capacity, sentinel included.
func (h *MinHeap) Cap() int { return cap(h.items) }

// Reset drops every entry except the sentinel.
func (h *MinHeap) Reset() {
	h.items = h.items[:1]
	h.items[0] = WheelEntry{NextHit: Never}
}

func (h *MinHeap) less(i, j int) bool {
	return h.items[i].NextHit < h.items[j].NextHit
}

func (h *MinHeap) siftUp(i int) {
	for i > 0 {
		p := (i - 1) / 2
		if !h.less(i, p) {
			return
		}
		h.items[i], h.items[p] = h.items[p], h.items[i]
		i = p
	}
}

func (h *MinHeap) siftDown(i int) {
	n := len(h.items)
	for {
		l := 2*i + 1
		if l >= n {
			return
		}
		best := l
		r := l + 1
		if r < n && h.less(r, l) {
			best = r
		}
		if !h.less(best, i) {
			return
		}
		h.items[i], h.items[best] = h.items[best], h.items[i]
		i = best
	}
}
