// Package input routes keyboard-driven actions from whichever widget holds
// focus to the single handler that owns document history.
package input

// Action is a keyboard-level editing command.
type Action int

const (
	ActionUndo Action = iota
	ActionRedo
)

func (a Action) String() string {
	switch a {
	case ActionUndo:
		return "Undo"
	case ActionRedo:
		return "Redo"
	default:
		return "Unknown"
	}
}

// Bus fans actions out to subscribers. Dispatch happens on the interaction
// thread, so no locking.
type Bus struct {
	nextID int
	subs   map[int]func(Action)
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]func(Action))}
}

// Subscribe registers a handler and returns a function that removes it.
// Windows detach their handler on close so shortcuts never reach a dead view.
func (b *Bus) Subscribe(fn func(Action)) (unsubscribe func()) {
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	return func() {
		delete(b.subs, id)
	}
}

// Dispatch delivers the action to every live subscriber.
func (b *Bus) Dispatch(a Action) {
	for _, fn := range b.subs {
		fn(a)
	}
}
