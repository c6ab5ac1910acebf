package sdram

import (
	"github.com/cnbltyasar/sdramsim/sdram/signal"
)

// State is one of the command state machine states.
type State int

// A list of all controller states.
const (
	StateInit State = iota
	StateModeLoad
	StateIdle
	StateRowActive
	StateReading
	StateWriting
	StateRefreshing
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "Init"
	case StateModeLoad:
		return "ModeLoad"
	case StateIdle:
		return "Idle"
	case StateRowActive:
		return "RowActive"
	case StateReading:
		return "Reading"
	case StateWriting:
		return "Writing"
	case StateRefreshing:
		return "Refreshing"
	}

	return "Unknown"
}

// decision is the complete outcome of one cycle. It is computed from a frozen
// snapshot of the controller state and committed in a single step, so no
// partially updated state is ever observable.
type decision struct {
	nextState State
	cmd       signal.CommandKind

	// latch asks the datapath to capture the caller's request this cycle.
	latch bool

	// refreshDone resets the refresh counter.
	refreshDone bool

	// validPulse raises the read-valid output for exactly one cycle.
	validPulse bool
}

// nextCycle evaluates the transition table. Every (state, wait) combination
// not named by the table stays in state and issues no-op, so the machine can
// never reach an undefined configuration.
//
// Refresh always wins over a pending access at a decision point. An access
// that has reached RowActive completes its read or write before a refresh is
// considered, which bounds the worst-case refresh latency by one access.
func nextCycle(
	p *TimingProfile,
	s State,
	wait int,
	refreshDue, reqPending, writeFlag bool,
) decision {
	d := decision{nextState: s, cmd: signal.CmdKindNoOp}

	switch s {
	case StateInit:
		switch wait {
		case p.StartupWait - 1:
			d.cmd = signal.CmdKindPrecharge
		case p.StartupWait + p.PrechargeWait - 1:
			d.cmd = signal.CmdKindAutoRefresh
		case p.StartupWait + p.PrechargeWait + p.RefreshWait - 1:
			d.cmd = signal.CmdKindAutoRefresh
			d.refreshDone = true
		case p.StartupWait + p.PrechargeWait + 2*p.RefreshWait - 1:
			d.nextState = StateModeLoad
			d.cmd = signal.CmdKindLoadMode
			d.refreshDone = true
		}
	case StateModeLoad:
		if wait == p.ModeWait-1 {
			d.nextState = StateIdle
		}
	case StateIdle:
		if refreshDue {
			d.nextState = StateRefreshing
			d.cmd = signal.CmdKindAutoRefresh
		} else if reqPending {
			d.nextState = StateRowActive
			d.cmd = signal.CmdKindActivate
			d.latch = true
		}
	case StateRowActive:
		if wait == p.ActivateWait-1 {
			if writeFlag {
				d.nextState = StateWriting
				d.cmd = signal.CmdKindWrite
			} else {
				d.nextState = StateReading
				d.cmd = signal.CmdKindRead
			}
		}
	case StateReading:
		if wait == p.ReadWait-1 {
			d.validPulse = true
			d.settleAccess(refreshDue, reqPending)
		}
	case StateWriting:
		if wait == p.WriteWait-1 {
			d.settleAccess(refreshDue, reqPending)
		}
	case StateRefreshing:
		if wait == p.RefreshWait-1 {
			d.refreshDone = true
			if reqPending {
				d.nextState = StateRowActive
				d.cmd = signal.CmdKindActivate
				d.latch = true
			} else {
				d.nextState = StateIdle
			}
		}
	}

	return d
}

// settleAccess picks the successor of a finishing read or write.
func (d *decision) settleAccess(refreshDue, reqPending bool) {
	switch {
	case refreshDue:
		d.nextState = StateRefreshing
		d.cmd = signal.CmdKindAutoRefresh
	case reqPending:
		d.nextState = StateRowActive
		d.cmd = signal.CmdKindActivate
		d.latch = true
	default:
		d.nextState = StateIdle
	}
}
