package catalog

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is returned by Next for an event the current state does not accept.
var ErrInvalidTransition = errors.New("catalog: invalid lifecycle transition")

// Phase names the lifecycle position of a State.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseLoading Phase = "loading"
	PhaseLoaded  Phase = "loaded"
	PhaseFailed  Phase = "failed"
)

// State is one of Idle, Loading, Loaded or Failed.
type State interface {
	Phase() Phase
	state()
}

// Idle precedes the first mount.
type Idle struct{}

// Loading means exactly one request is outstanding. Retry is set when the
// request follows a failure.
type Loading struct {
	Retry bool
}

// Loaded holds the products in upstream order.
type Loaded struct {
	Products []Product
}

// Failed carries the message rendered on the error panel.
type Failed struct {
	Message string
}

func (Idle) Phase() Phase    { return PhaseIdle }
func (Loading) Phase() Phase { return PhaseLoading }
func (Loaded) Phase() Phase  { return PhaseLoaded }
func (Failed) Phase() Phase  { return PhaseFailed }

func (Idle) state()    {}
func (Loading) state() {}
func (Loaded) state()  {}
func (Failed) state()  {}

// Empty reports whether the catalog answered with no products.
func (l Loaded) Empty() bool { return len(l.Products) == 0 }

// Event drives a State forward.
type Event interface {
	event()
}

// Mounted fires once when the home page is first rendered.
type Mounted struct{}

// Retried fires when the visitor presses the retry control.
type Retried struct{}

// Succeeded delivers the fetched products.
type Succeeded struct {
	Products []Product
}

// Errored delivers the fetch failure.
type Errored struct {
	Err error
}

func (Mounted) event()   {}
func (Retried) event()   {}
func (Succeeded) event() {}
func (Errored) event()   {}

// Next applies e to s. Only idle→loading, loading→loaded|failed and
// failed→loading are accepted.
func Next(s State, e Event) (State, error) {
	switch s.(type) {
	case Idle:
		if _, ok := e.(Mounted); ok {
			return Loading{}, nil
		}
	case Loading:
		switch ev := e.(type) {
		case Succeeded:
			products := ev.Products
			if products == nil {
				products = []Product{}
			}
			return Loaded{Products: products}, nil
		case Errored:
			return Failed{Message: Message(ev.Err)}, nil
		}
	case Failed:
		if _, ok := e.(Retried); ok {
			return Loading{Retry: true}, nil
		}
	}
	return s, fmt.Errorf("%w: %s on %T", ErrInvalidTransition, phaseOf(s), e)
}

func phaseOf(s State) Phase {
	if s == nil {
		return ""
	}
	return s.Phase()
}
