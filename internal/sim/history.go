package sim

import "sync"

// FrameHistory is a fixed-capacity ring buffer that keeps the most recent
// items. It is safe for concurrent use.
type FrameHistory[T any] struct {
	mu    sync.RWMutex
	items []T
	start int
	count int
}

func NewFrameHistory[T any](capacity int) *FrameHistory[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &FrameHistory[T]{items: make([]T, capacity)}
}

// HistoryCapacity is the number of frames needed to hold seconds of history
// at fps.
func HistoryCapacity(seconds, fps float64) int {
	if seconds <= 0 || fps <= 0 {
		return 0
	}
	return int(seconds * fps)
}

func (h *FrameHistory[T]) Push(item T) {
	h.mu.Lock()
	defer h.mu.Unlock()

	c := len(h.items)
	if c == 0 {
		return
	}
	if h.count < c {
		h.items[(h.start+h.count)%c] = item
		h.count++
		return
	}
	h.items[h.start] = item
	h.start = (h.start + 1) % c
}

func (h *FrameHistory[T]) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

func (h *FrameHistory[T]) Cap() int { return len(h.items) }

// Last returns the newest item.
func (h *FrameHistory[T]) Last() (T, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	var zero T
	if h.count == 0 {
		return zero, false
	}
	return h.items[(h.start+h.count-1)%len(h.items)], true
}

// Items returns the stored items, oldest first.
func (h *FrameHistory[T]) Items() []T {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]T, h.count)
	for i := range out {
		out[i] = h.items[(h.start+i)%len(h.items)]
	}
	return out
}

func (h *FrameHistory[T]) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()

	var zero T
	for i := range h.items {
		h.items[i] = zero
	}
	h.start = 0
	h.count = 0
}
