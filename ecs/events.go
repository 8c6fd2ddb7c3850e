package ecs

import "reflect"

// Collision is a pairwise event naming its two participant entities.
// It is constructed by the emitter and exposed read-only to scripts.
type Collision struct {
	A Entity `js:"a"`
	B Entity `js:"b"`
}

// EventBus delivers typed events synchronously to handlers in subscription
// order. Publish is re-entrant: handlers may publish further events or
// subscribe, though handlers added during delivery only see later events.
type EventBus struct {
	handlers map[reflect.Type][]*subscriber
	nextID   uint64
}

type subscriber struct {
	fn func(any) error
	id uint64
}

// NewEventBus creates an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{handlers: make(map[reflect.Type][]*subscriber)}
}

// Subscription identifies one handler registration and can close it.
type Subscription struct {
	bus *EventBus
	typ reflect.Type
	id  uint64
}

// Close removes the handler from the bus. Safe to call more than once.
func (s *Subscription) Close() {
	if s.bus == nil {
		return
	}
	hs := s.bus.handlers[s.typ]
	for i, h := range hs {
		if h.id == s.id {
			s.bus.handlers[s.typ] = append(hs[:i], hs[i+1:]...)
			break
		}
	}
	s.bus = nil
}

// Subscribe registers a handler called for every published event of type T.
func Subscribe[T any](bus *EventBus, handler func(T) error) *Subscription {
	t := reflect.TypeOf((*T)(nil)).Elem()
	bus.nextID++
	sub := &subscriber{
		id: bus.nextID,
		fn: func(ev any) error { return handler(ev.(T)) },
	}
	bus.handlers[t] = append(bus.handlers[t], sub)
	return &Subscription{bus: bus, typ: t, id: sub.id}
}

// Publish delivers the event to all handlers for T in subscription order.
// Delivery stops at the first handler error, which is returned to the
// emitter; the remaining handlers do not see the event.
func Publish[T any](bus *EventBus, event T) error {
	t := reflect.TypeOf((*T)(nil)).Elem()
	hs := bus.handlers[t]
	// snapshot: handlers may unsubscribe while delivering
	snap := make([]*subscriber, len(hs))
	copy(snap, hs)
	for _, h := range snap {
		if err := h.fn(event); err != nil {
			return err
		}
	}
	return nil
}
