package bus

import "sync"

// Bus is an in-process data-changed signal. Publishers call Publish after a
// successful write; subscribers re-fetch on every tick. There is no payload,
// no deduplication, and no ordering guarantee between a publish and all
// subscribers having refreshed.
type Bus struct {
	mu   sync.Mutex
	subs map[*Subscription]bool
}

// Subscription delivers one tick per publish on C until cancelled.
type Subscription struct {
	C   chan struct{}
	bus *Bus
}

func New() *Bus {
	return &Bus{subs: make(map[*Subscription]bool)}
}

func (b *Bus) Subscribe() *Subscription {
	sub := &Subscription{C: make(chan struct{}, 8), bus: b}
	b.mu.Lock()
	b.subs[sub] = true
	b.mu.Unlock()
	return sub
}

// Publish signals every live subscriber. Slow subscribers with a full buffer
// miss the tick; a later tick still prompts a full re-fetch, so nothing is lost.
func (b *Bus) Publish() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for sub := range b.subs {
		select {
		case sub.C <- struct{}{}:
		default:
		}
	}
}

func (s *Subscription) Cancel() {
	s.bus.mu.Lock()
	if s.bus.subs[s] {
		delete(s.bus.subs, s)
		close(s.C)
	}
	s.bus.mu.Unlock()
}
