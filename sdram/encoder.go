package sdram

import (
	"github.com/cnbltyasar/sdramsim/sdram/signal"
)

// autoPrechargeBit is A10. Set during a read or write, it closes the
// activated row automatically at the end of the access.
const autoPrechargeBit = 1 << 10

// prechargeAllPattern is the address driven during Init. A10 high with a
// precharge command closes every bank regardless of the bank selects.
const prechargeAllPattern = 1 << 10

// encodeOutputs maps the committed state, the issued command, and the latched
// fields to the device-facing pins.
//
// The clock-enable line is deasserted only on the very first cycle out of
// reset. Both data-mask lines stay low; masking is not implemented.
func (c *Comp) encodeOutputs(cmd signal.CommandKind) signal.DevicePins {
	pins := signal.DevicePins{CKE: true, Cmd: cmd, DQ: signal.ReleaseDQ()}

	switch c.state {
	case StateInit:
		pins.Address = prechargeAllPattern
		if c.wait == 0 {
			pins.CKE = false
		}
	case StateModeLoad:
		pins.Address = c.profile.ModeRegister
	case StateRowActive:
		pins.Address = c.row()
		pins.Bank = c.bank()
	case StateReading:
		pins.Address = autoPrechargeBit | c.column()
		pins.Bank = c.bank()
	case StateWriting:
		pins.Address = autoPrechargeBit | c.column()
		pins.Bank = c.bank()
		pins.DQ = c.writeWord(c.wait)
	}

	return pins
}
