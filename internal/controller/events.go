package controller

import (
	"errors"
	"fmt"
)

var ErrUnknownEvent = errors.New("unknown event")

type EventType int

const (
	SpeedUp EventType = iota
	SpeedDown
	SetSpeed
	SteerLeft
	SteerRight
	RequestAuto
)

func (t EventType) String() string {
	switch t {
	case SpeedUp:
		return "speed-up"
	case SpeedDown:
		return "speed-down"
	case SetSpeed:
		return "set-speed"
	case SteerLeft:
		return "steer-left"
	case SteerRight:
		return "steer-right"
	case RequestAuto:
		return "request-auto"
	default:
		return "unknown"
	}
}

// Event is an operator input, applied atomically within a single tick
type Event struct {
	Type EventType
	// Value is the speed setpoint (kph) of a SetSpeed event
	Value float64
	// Reply receives the result of the event if set, it must be buffered
	Reply chan error
}

func NewEvent(eventType EventType) Event {
	return Event{Type: eventType}
}

// WithReply returns a copy of the event with a buffered reply channel
func (e Event) WithReply() Event {
	e.Reply = make(chan error, 1)
	return e
}

func (e Event) reply(err error) {
	if e.Reply == nil {
		return
	}
	select {
	case e.Reply <- err:
	default:
	}
}

// ParseEventType is the inverse of EventType.String
func ParseEventType(text string) (EventType, error) {
	for _, t := range []EventType{SpeedUp, SpeedDown, SetSpeed, SteerLeft, SteerRight, RequestAuto} {
		if t.String() == text {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownEvent, text)
}
