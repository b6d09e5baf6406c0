package rigid2d

// EventName identifies one of the lifecycle notifications the core emits.
// The core never mandates a particular event system beyond this — it is a
// generic hook, not a message bus.
type EventName string

const (
	EventBeforeUpdate  EventName = "beforeUpdate"
	EventBeforeSolve   EventName = "beforeSolve"
	EventAfterUpdate   EventName = "afterUpdate"
	EventCollisionStart  EventName = "collisionStart"
	EventCollisionActive EventName = "collisionActive"
	EventCollisionEnd    EventName = "collisionEnd"
	EventSleepStart    EventName = "sleepStart"
	EventSleepEnd      EventName = "sleepEnd"
	EventBeforeAdd     EventName = "beforeAdd"
	EventAfterAdd      EventName = "afterAdd"
	EventBeforeRemove  EventName = "beforeRemove"
	EventAfterRemove   EventName = "afterRemove"
	EventWarning       EventName = "warning"
)

// Event is the payload delivered synchronously to every subscriber of Name.
// Source is whatever object emitted it (typically an *Engine); the
// remaining fields are populated per event — e.g. Pairs for the collision
// events, Bodies for sleep events, Message for warnings.
type Event struct {
	Name    EventName
	Source  interface{}
	Pairs   []*Pair
	Bodies  []*Body
	Message string
}

// EventHandler receives one Event at a time, in registration order.
type EventHandler func(Event)

// Emitter is a minimal publish/subscribe hook. It is embedded by every
// object that participates in the event system (Engine, Composite);
// callers needing their own ad-hoc emitter can embed it too.
type Emitter struct {
	handlers map[EventName][]EventHandler
}

// On subscribes handler to name. Returns a token that Off can later use to
// remove exactly this subscription.
func (e *Emitter) On(name EventName, handler EventHandler) int {
	if e.handlers == nil {
		e.handlers = make(map[EventName][]EventHandler)
	}
	e.handlers[name] = append(e.handlers[name], handler)
	return len(e.handlers[name]) - 1
}

// Off removes the subscription identified by the token On returned. No-op
// if token is out of range or already removed.
func (e *Emitter) Off(name EventName, token int) {
	handlers := e.handlers[name]
	if token < 0 || token >= len(handlers) {
		return
	}
	handlers[token] = nil
}

// Emit delivers ev to every live subscriber of ev.Name, in registration
// order, synchronously on the calling goroutine.
func (e *Emitter) Emit(ev Event) {
	for _, handler := range e.handlers[ev.Name] {
		if handler != nil {
			handler(ev)
		}
	}
}
