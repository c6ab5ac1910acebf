package sdram

import (
	"github.com/cnbltyasar/sdramsim/sdram/signal"
)

// accessLatch holds the request fields captured at the moment the controller
// is ready to start a new access. The fields stay stable for the whole access.
//
// The device address is the caller address doubled, which accounts for the
// device's narrower word granularity. Column, row, and bank are derived
// read-only views over the one stored address, never separate copies.
type accessLatch struct {
	addr  uint32
	data  uint32
	write bool
}

func (c *Comp) captureRequest() {
	c.latched = accessLatch{
		addr:  c.req.Address << 1,
		data:  c.req.Data,
		write: c.req.WriteEnable,
	}
}

func (c *Comp) column() uint16 {
	return uint16(c.latched.addr & (1<<c.cfg.colWidth - 1))
}

func (c *Comp) row() uint16 {
	return uint16(c.latched.addr >> c.cfg.colWidth & (1<<c.cfg.rowWidth - 1))
}

func (c *Comp) bank() uint8 {
	shift := c.cfg.colWidth + c.cfg.rowWidth
	return uint8(c.latched.addr >> shift & (1<<c.cfg.bankWidth - 1))
}

// writeWord selects the narrow slice of the latched wide word that goes onto
// the bus on the given cycle of Writing. The slice index is
// burstLength - wait, counted from the least significant end, so the most
// significant word is transferred first. Once the burst is over, the bus is
// released for the write-recovery cycles.
func (c *Comp) writeWord(wait int) signal.DQ {
	slice := c.cfg.burstLength - wait
	if slice <= 0 {
		return signal.ReleaseDQ()
	}

	shift := (slice - 1) * c.cfg.deviceDataWidth

	return signal.DriveDQ(uint16(c.latched.data >> shift))
}

// sampleReadWord shifts one narrow word from the device into the wide output
// register. The first word of a burst ends up in the upper half, the last in
// the lower half.
func (c *Comp) sampleReadWord(word uint16) {
	c.readReg = c.readReg<<c.cfg.deviceDataWidth | uint32(word)
}
