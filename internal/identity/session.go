package identity

import "sync"

// Session is the live authenticated identity of the device user.
type Session struct {
	UID      string
	Email    string
	Username string
	PhotoURL string
}

// Holder is the single process-wide observable session slot. Only the
// identity provider writes to it; everything else reads or subscribes.
type Holder struct {
	mu      sync.RWMutex
	current *Session
	subs    map[int]func(*Session)
	nextSub int
}

func NewHolder() *Holder {
	return &Holder{subs: make(map[int]func(*Session))}
}

// Current returns the session, and false when nobody is signed in.
func (h *Holder) Current() (Session, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.current == nil {
		return Session{}, false
	}
	return *h.current, true
}

// Subscribe registers a listener invoked with the current session (or nil)
// immediately and again on every change. The returned func unsubscribes.
func (h *Holder) Subscribe(fn func(*Session)) func() {
	h.mu.Lock()
	id := h.nextSub
	h.nextSub++
	h.subs[id] = fn
	cur := h.current
	h.mu.Unlock()

	fn(cur)
	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

// set replaces the session and notifies subscribers. nil means signed out.
func (h *Holder) set(s *Session) {
	h.mu.Lock()
	h.current = s
	fns := make([]func(*Session), 0, len(h.subs))
	for _, fn := range h.subs {
		fns = append(fns, fn)
	}
	h.mu.Unlock()

	for _, fn := range fns {
		fn(s)
	}
}
