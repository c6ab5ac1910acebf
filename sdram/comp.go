// Package sdram implements a synchronous memory controller that bridges a
// wide request/response interface to the narrow, protocol-heavy interface of
// an SDRAM device, hiding all device timing from the caller.
package sdram

import (
	"github.com/cnbltyasar/sdramsim/sdram/signal"
	"github.com/cnbltyasar/sdramsim/sim"
)

// HookPosCommandIssue is a hook position that triggers whenever the
// controller puts a command other than no-op on the device command bus. The
// hook item is a signal.CommandRecord.
var HookPosCommandIssue = &sim.HookPos{Name: "CommandIssue"}

type config struct {
	addrWidth       int
	dataWidth       int
	deviceAddrWidth int
	deviceDataWidth int
	colWidth        int
	rowWidth        int
	bankWidth       int
	casLatency      int
	burstLength     int
}

// Comp is the controller. It advances one clock cycle per Tick: the complete
// next state is computed from a frozen snapshot of the current state, then
// committed at once. Inputs for a cycle are set with SetRequest and SetDQ
// before the Tick; outputs for that cycle are readable afterwards.
type Comp struct {
	*sim.ComponentBase

	freq    sim.Freq
	cfg     config
	profile TimingProfile

	req  signal.Request
	dqIn signal.DQ

	state      State
	wait       int
	refreshCnt int
	latched    accessLatch
	readReg    uint32

	cycle uint64
	pins  signal.DevicePins
	rsp   signal.Response
}

// SetRequest drives the caller-facing input pins. The values stay on the
// pins until changed. The caller must keep the request asserted until the
// acknowledge output appears.
func (c *Comp) SetRequest(req signal.Request) {
	c.req = req
}

// SetDQ drives the device side of the data bus for the upcoming cycle.
func (c *Comp) SetDQ(dq signal.DQ) {
	c.dqIn = dq
}

// Response returns the caller-facing output pins of the current cycle.
func (c *Comp) Response() signal.Response {
	return c.rsp
}

// DevicePins returns the device-facing output pins of the current cycle.
func (c *Comp) DevicePins() signal.DevicePins {
	return c.pins
}

// State returns the current state of the command state machine.
func (c *Comp) State() State {
	return c.state
}

// Cycle returns the number of cycles since reset.
func (c *Comp) Cycle() uint64 {
	return c.cycle
}

// Profile returns the derived timing profile.
func (c *Comp) Profile() TimingProfile {
	return c.profile
}

// Freq returns the clock frequency the controller was built for.
func (c *Comp) Freq() sim.Freq {
	return c.freq
}

// Reset forces the machine back to the power-up state, discarding any
// in-progress operation. Reset has priority over all other transition logic.
func (c *Comp) Reset() {
	c.state = StateInit
	c.wait = 0
	c.refreshCnt = 0
	c.cycle = 0
	c.readReg = 0
	c.latched = accessLatch{}
	c.rsp = signal.Response{}

	// The reset cycle itself shows deselect with clock-enable low.
	c.pins = signal.DevicePins{
		Cmd:     signal.CmdKindDeselect,
		Address: prechargeAllPattern,
		DQ:      signal.ReleaseDQ(),
	}
}

func (c *Comp) refreshDue() bool {
	return c.refreshCnt >= c.profile.RefreshInterval-1
}

// Tick runs one clock cycle.
func (c *Comp) Tick() bool {
	d := nextCycle(
		&c.profile,
		c.state, c.wait,
		c.refreshDue(), c.req.Req, c.latched.write,
	)

	c.commit(d)

	return true
}

// commit applies a decision: counters, latches, the datapath registers, and
// the output pins all move to their next-cycle values in one step.
func (c *Comp) commit(d decision) {
	if d.latch {
		c.captureRequest()
	}

	if d.nextState == StateReading && c.state == StateRowActive {
		c.readReg = 0
	}

	if d.nextState != c.state {
		c.wait = 0
	} else {
		c.wait++
	}
	c.state = d.nextState

	c.refreshCnt++
	if d.refreshDone {
		c.refreshCnt = 0
	}

	c.cycle++

	if c.state == StateReading && c.wait >= c.cfg.casLatency {
		c.sampleReadWord(c.dqIn.Word())
	}

	c.rsp = signal.Response{
		Ack:   c.state == StateRowActive && c.wait == 0,
		Valid: d.validPulse,
		Data:  c.readReg,
	}

	c.pins = c.encodeOutputs(d.cmd)

	if d.cmd != signal.CmdKindNoOp && d.cmd != signal.CmdKindDeselect {
		c.InvokeHook(sim.HookCtx{
			Domain: c,
			Pos:    HookPosCommandIssue,
			Item: signal.CommandRecord{
				Cycle:   c.cycle,
				State:   c.state.String(),
				Command: d.cmd.String(),
				Bank:    c.pins.Bank,
				Address: c.pins.Address,
			},
		})
	}
}
