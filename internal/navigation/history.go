package navigation

import (
	"sync"

	"taskDashboard/internal/filter/query"
)

// History is an in-memory browsing session. It owns the current address and
// notifies subscribers after every change so readers can re-render.
type History struct {
	mtx       *sync.RWMutex
	entries   []query.Address
	index     int
	listeners map[int]func(query.Address)
	nextID    int
}

func NewHistory(start query.Address) *History {
	return &History{
		mtx:       &sync.RWMutex{},
		entries:   []query.Address{start},
		listeners: make(map[int]func(query.Address)),
	}
}

func (h *History) Current() query.Address {
	h.mtx.RLock()
	defer h.mtx.RUnlock()

	return h.entries[h.index]
}

// Navigate pushes or replaces the current entry. A push drops any entries
// ahead of the current one, as a browser does.
func (h *History) Navigate(addr query.Address, mode Mode) {
	h.mtx.Lock()
	if mode == ModePush {
		h.entries = append(h.entries[:h.index+1], addr)
		h.index++
	} else {
		h.entries[h.index] = addr
	}
	listeners := h.snapshotListeners()
	h.mtx.Unlock()

	notify(listeners, addr)
}

func (h *History) Back() bool {
	return h.move(-1)
}

func (h *History) Forward() bool {
	return h.move(1)
}

func (h *History) move(delta int) bool {
	h.mtx.Lock()
	target := h.index + delta
	if target < 0 || target >= len(h.entries) {
		h.mtx.Unlock()
		return false
	}
	h.index = target
	addr := h.entries[target]
	listeners := h.snapshotListeners()
	h.mtx.Unlock()

	notify(listeners, addr)
	return true
}

// Len is the number of entries in the session.
func (h *History) Len() int {
	h.mtx.RLock()
	defer h.mtx.RUnlock()

	return len(h.entries)
}

// Subscribe registers fn to run after each address change. The returned
// function removes it.
func (h *History) Subscribe(fn func(query.Address)) func() {
	h.mtx.Lock()
	defer h.mtx.Unlock()

	id := h.nextID
	h.nextID++
	h.listeners[id] = fn

	return func() {
		h.mtx.Lock()
		defer h.mtx.Unlock()
		delete(h.listeners, id)
	}
}

// must be called with the lock held
func (h *History) snapshotListeners() []func(query.Address) {
	listeners := make([]func(query.Address), 0, len(h.listeners))
	for id := 0; id < h.nextID; id++ {
		if fn, ok := h.listeners[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	return listeners
}

func notify(listeners []func(query.Address), addr query.Address) {
	for _, fn := range listeners {
		fn(addr)
	}
}
