package eventbus

import (
	"context"
	"sync"
)

type envelope struct {
	event   Event
	payload any
}

// EventBus delivers events to subscribers on a single goroutine. Publishing
// never blocks; events published while the buffer is full are dropped.
type EventBus struct {
	ch    chan envelope
	hooks hooks

	mu   sync.RWMutex
	subs map[Event][]func(any)
}

// New creates a bus with the given buffer size.
func New(bufferSize int) *EventBus {
	if bufferSize < 1 {
		bufferSize = 1
	}
	return &EventBus{
		ch:   make(chan envelope, bufferSize),
		subs: make(map[Event][]func(any)),
	}
}

// Start dispatches events until ctx is cancelled. Events still buffered on
// cancellation are delivered before Start returns.
func (bus *EventBus) Start(ctx context.Context) {
	for {
		select {
		case env := <-bus.ch:
			bus.dispatch(env)
		case <-ctx.Done():
			for {
				select {
				case env := <-bus.ch:
					bus.dispatch(env)
				default:
					return
				}
			}
		}
	}
}

func (bus *EventBus) subscribe(event Event, fn func(any)) {
	bus.mu.Lock()
	bus.subs[event] = append(bus.subs[event], fn)
	bus.mu.Unlock()
	bus.runOnSubscribe(event)
}

func (bus *EventBus) dispatch(env envelope) {
	bus.mu.RLock()
	subs := make([]func(any), len(bus.subs[env.event]))
	copy(subs, bus.subs[env.event])
	bus.mu.RUnlock()

	for _, fn := range subs {
		bus.call(env, fn)
	}
}

func (bus *EventBus) call(env envelope, fn func(any)) {
	defer func() {
		if r := recover(); r != nil {
			bus.runOnPanic(env.event, env.payload, r)
		}
	}()
	fn(env.payload)
}

// PublishSheetPresented publishes a sheet.presented event.
func (bus *EventBus) PublishSheetPresented(p SheetPresentedPayload) {
	bus.send(EventSheetPresented, p)
}

// SubscribeSheetPresented registers fn for sheet.presented events.
func (bus *EventBus) SubscribeSheetPresented(fn func(SheetPresentedPayload)) {
	bus.subscribe(EventSheetPresented, func(p any) { fn(p.(SheetPresentedPayload)) })
}

// PublishSheetTransition publishes a sheet.transition event.
func (bus *EventBus) PublishSheetTransition(p SheetTransitionPayload) {
	bus.send(EventSheetTransition, p)
}

// SubscribeSheetTransition registers fn for sheet.transition events.
func (bus *EventBus) SubscribeSheetTransition(fn func(SheetTransitionPayload)) {
	bus.subscribe(EventSheetTransition, func(p any) { fn(p.(SheetTransitionPayload)) })
}

// PublishActionSelected publishes an action.selected event.
func (bus *EventBus) PublishActionSelected(p ActionSelectedPayload) {
	bus.send(EventActionSelected, p)
}

// SubscribeActionSelected registers fn for action.selected events.
func (bus *EventBus) SubscribeActionSelected(fn func(ActionSelectedPayload)) {
	bus.subscribe(EventActionSelected, func(p any) { fn(p.(ActionSelectedPayload)) })
}

// PublishSheetDismissed publishes a sheet.dismissed event.
func (bus *EventBus) PublishSheetDismissed(p SheetDismissedPayload) {
	bus.send(EventSheetDismissed, p)
}

// SubscribeSheetDismissed registers fn for sheet.dismissed events.
func (bus *EventBus) SubscribeSheetDismissed(fn func(SheetDismissedPayload)) {
	bus.subscribe(EventSheetDismissed, func(p any) { fn(p.(SheetDismissedPayload)) })
}
