// Package liveness tracks per-service reachability. State is binary once
// known; services start out unknown until the first request against them
// settles. Each service is independent: an orchestrator failure never marks
// the catalog offline.
package liveness

import (
	"sync"

	"libradesk/internal/transport"
)

// State of a single service.
type State string

const (
	StateUnknown State = "unknown"
	StateOnline  State = "online"
	StateOffline State = "offline"
)

// Monitor records request outcomes per service. It is written by the outcome
// handlers of in-flight requests and by the background watcher; both report
// the same binary fact, so last write wins.
type Monitor struct {
	mu       sync.Mutex
	states   map[transport.Service]State
	onChange func(transport.Service, State)
}

// NewMonitor builds a Monitor. onChange, when non-nil, is invoked outside the
// internal lock on every state transition, so the presenter can repaint the
// matching status dot.
func NewMonitor(onChange func(transport.Service, State)) *Monitor {
	return &Monitor{
		states:   make(map[transport.Service]State),
		onChange: onChange,
	}
}

// Report records the outcome of one request against svc: online on a nil
// error, offline otherwise.
func (m *Monitor) Report(svc transport.Service, err error) {
	next := StateOnline
	if err != nil {
		next = StateOffline
	}

	m.mu.Lock()
	prev, ok := m.states[svc]
	if ok && prev == next {
		m.mu.Unlock()
		return
	}
	m.states[svc] = next
	fn := m.onChange
	m.mu.Unlock()

	if fn != nil {
		fn(svc, next)
	}
}

// State is a side-effect-free read of the current state of svc.
func (m *Monitor) State(svc transport.Service) State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.states[svc]; ok {
		return s
	}
	return StateUnknown
}
