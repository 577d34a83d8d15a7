package events

// Bus is a synchronous publish/subscribe hub. Handlers run inline on the
// emitting goroutine, in registration order. Like the rest of the engine the
// bus is single-writer: it must only be touched from the goroutine that owns
// the game state.
type Bus struct {
	subs   map[string][]*Subscription
	nextID uint64
}

// Handler receives the payload that was passed to Emit.
type Handler func(payload any)

// Subscription is the handle returned by On. Holding it lets a consumer
// cancel exactly its own registration during teardown instead of guessing at
// handler identity, which is how duplicate-listener accumulation starts.
type Subscription struct {
	bus     *Bus
	event   string
	id      uint64
	handler Handler
}

func NewBus() *Bus {
	return &Bus{subs: map[string][]*Subscription{}}
}

// On registers h for event and returns a cancelable handle.
func (b *Bus) On(event string, h Handler) *Subscription {
	b.nextID++
	s := &Subscription{bus: b, event: event, id: b.nextID, handler: h}
	b.subs[event] = append(b.subs[event], s)
	return s
}

// Off cancels a single registration. Unknown or already-canceled handles are
// a no-op. Canceling from inside a handler does not affect the emit in
// flight; the handler is skipped from the next Emit on.
func (b *Bus) Off(sub *Subscription) {
	if sub == nil || sub.bus != b {
		return
	}
	list := b.subs[sub.event]
	for i, s := range list {
		if s.id == sub.id {
			b.subs[sub.event] = append(list[:i], list[i+1:]...)
			sub.bus = nil
			return
		}
	}
}

// Cancel is shorthand for bus.Off(sub).
func (s *Subscription) Cancel() {
	if s != nil && s.bus != nil {
		s.bus.Off(s)
	}
}

// Emit invokes every handler registered for event, synchronously and in
// registration order. Handlers registered or canceled during delivery take
// effect from the next Emit.
func (b *Bus) Emit(event string, payload any) {
	list := b.subs[event]
	if len(list) == 0 {
		return
	}
	snapshot := make([]*Subscription, len(list))
	copy(snapshot, list)
	for _, s := range snapshot {
		s.handler(payload)
	}
}

// RemoveAllListeners drops every handler for event. With no event it drops
// everything; consumers use this to re-initialize without stacking duplicate
// subscriptions.
func (b *Bus) RemoveAllListeners(event ...string) {
	if len(event) == 0 {
		for k, list := range b.subs {
			for _, s := range list {
				s.bus = nil
			}
			delete(b.subs, k)
		}
		return
	}
	for _, ev := range event {
		for _, s := range b.subs[ev] {
			s.bus = nil
		}
		delete(b.subs, ev)
	}
}

// ListenerCount reports how many handlers are registered for event.
func (b *Bus) ListenerCount(event string) int {
	return len(b.subs[event])
}
