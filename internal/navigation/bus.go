package navigation

import "sync"

// EventKind identifies a UI event delivered through a Bus.
type EventKind string

const (
	EventOutsideClick EventKind = "outside_click"
	EventScroll       EventKind = "scroll"
)

// Event is one UI event.
type Event struct {
	Kind    EventKind
	OffsetY float64
}

// Bus delivers events to subscribed listeners.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]*Subscription
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[int]*Subscription)}
}

// Subscription is a listener registration. Close releases it exactly once.
type Subscription struct {
	bus  *Bus
	id   int
	kind EventKind
	fn   func(Event)
	once sync.Once
}

// Subscribe registers fn for events of kind.
func (b *Bus) Subscribe(kind EventKind, fn func(Event)) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	s := &Subscription{bus: b, id: b.nextID, kind: kind, fn: fn}
	b.subs[s.id] = s
	return s
}

// Close removes the subscription from its bus.
func (s *Subscription) Close() {
	s.once.Do(func() {
		s.bus.mu.Lock()
		delete(s.bus.subs, s.id)
		s.bus.mu.Unlock()
	})
}

// Publish delivers ev to every listener of its kind. Listeners run outside
// the bus lock so they may unsubscribe themselves.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	targets := make([]*Subscription, 0, len(b.subs))
	for _, s := range b.subs {
		if s.kind == ev.Kind {
			targets = append(targets, s)
		}
	}
	b.mu.Unlock()

	for _, s := range targets {
		s.fn(ev)
	}
}

// Len returns the number of live subscriptions.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// ScrollTracker keeps the scrolled flag in sync with scroll events while mounted.
type ScrollTracker struct {
	mu       sync.Mutex
	scrolled bool
	sub      *Subscription
}

// Mount starts listening for scroll events on bus.
func (t *ScrollTracker) Mount(bus *Bus) {
	t.Unmount()
	t.sub = bus.Subscribe(EventScroll, func(ev Event) {
		t.mu.Lock()
		t.scrolled = Scrolled(ev.OffsetY)
		t.mu.Unlock()
	})
}

// Unmount stops listening.
func (t *ScrollTracker) Unmount() {
	if t.sub != nil {
		t.sub.Close()
		t.sub = nil
	}
}

// Scrolled returns the current flag.
func (t *ScrollTracker) Scrolled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.scrolled
}
