package forecast

import (
	"fmt"

	"github.com/felixgeelhaar/statekit"
)

// Cache freshness states. A project's cached forecast is either fresh
// (exists and has not expired) or stale (absent, expired, or explicitly
// invalidated by a task/dependency/progress mutation).
const (
	StateFresh = "fresh"
	StateStale = "stale"
)

// Cache freshness events.
const (
	// EventRefresh fires when a successful computation writes the cache.
	EventRefresh = "refresh"
	// EventInvalidate fires when a mutation invalidates the project.
	EventInvalidate = "invalidate"
	// EventExpire fires when the entry's TTL elapses.
	EventExpire = "expire"
)

// FreshnessContext carries the project the machine tracks.
type FreshnessContext struct {
	ProjectID string
}

// FreshnessMachine tracks the cache lifecycle of a single project's forecast.
type FreshnessMachine struct {
	interpreter *statekit.Interpreter[FreshnessContext]
}

// NewFreshnessMachine builds a freshness machine starting in the stale state.
func NewFreshnessMachine(projectID string) (*FreshnessMachine, error) {
	builder := statekit.NewMachine[FreshnessContext]("forecast-freshness").
		WithInitial(statekit.StateID(StateStale)).
		WithContext(FreshnessContext{ProjectID: projectID})

	builder.State(StateStale).
		On(EventRefresh).Target(StateFresh).
		Done()

	builder.State(StateFresh).
		On(EventInvalidate).Target(StateStale).
		On(EventExpire).Target(StateStale).
		On(EventRefresh).Target(StateFresh).
		Done()

	machine, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("build freshness machine: %w", err)
	}

	interpreter := statekit.NewInterpreter(machine)
	interpreter.Start()

	return &FreshnessMachine{interpreter: interpreter}, nil
}

// Send dispatches an event to the machine.
func (m *FreshnessMachine) Send(event string) {
	m.interpreter.Send(statekit.Event{Type: statekit.EventType(event)})
}

// Current returns the current state name.
func (m *FreshnessMachine) Current() string {
	return string(m.interpreter.State().Value)
}

// IsFresh returns true when a cached forecast may be served.
func (m *FreshnessMachine) IsFresh() bool {
	return m.Current() == StateFresh
}
