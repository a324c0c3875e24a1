package trade

import "context"

// Machine drives a Context through the trade protocol's states until
// ctx is canceled or a state returns an error.
type Machine struct {
	state State
	tc    *Context
}

// NewMachine builds a Machine starting in NotConnected.
func NewMachine(tc *Context) *Machine {
	return &Machine{state: NotConnected{}, tc: tc}
}

// State returns the machine's current state, mainly for logging.
func (m *Machine) State() State { return m.state }

// Run steps the machine until ctx is canceled or a step fails.
func (m *Machine) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		next, err := m.state.Run(ctx, m.tc)
		if err != nil {
			return err
		}
		if next.String() != m.state.String() {
			m.tc.logf("trade: %s -> %s", m.state, next)
		}
		m.state = next
	}
}
