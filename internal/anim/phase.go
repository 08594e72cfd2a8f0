package anim

import (
	"fmt"

	"github.com/san-kum/physlab/internal/dynamo"
)

type Event uint8

const (
	EventImpact Event = iota
	EventHoldElapsed
	EventCleared
	EventReset
)

var eventNames = [...]string{"impact", "hold-elapsed", "cleared", "reset"}

func (e Event) String() string {
	if int(e) < len(eventNames) {
		return eventNames[e]
	}
	return fmt.Sprintf("event(%d)", e)
}

// Transition returns the phase that follows from on ev.
func Transition(from dynamo.Phase, ev Event) (dynamo.Phase, error) {
	switch {
	case ev == EventReset:
		return dynamo.Before, nil
	case from == dynamo.Before && ev == EventImpact:
		return dynamo.During, nil
	case from == dynamo.During && ev == EventHoldElapsed:
		return dynamo.After, nil
	case from == dynamo.After && ev == EventCleared:
		return dynamo.Before, nil
	case from == dynamo.Before && ev == EventCleared:
		// nothing collided, the bodies just left
		return dynamo.Before, nil
	}
	return from, fmt.Errorf("%s on %s: %w", from, ev, dynamo.ErrInvalidTransition)
}
