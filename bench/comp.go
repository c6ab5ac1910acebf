// Package bench provides a closed-loop testbench that clocks a controller
// and a device model in lockstep and replays a workload of reads and writes
// through the caller interface.
package bench

import (
	"log"

	"github.com/cnbltyasar/sdramsim/device"
	"github.com/cnbltyasar/sdramsim/sdram"
	"github.com/cnbltyasar/sdramsim/sdram/signal"
	"github.com/cnbltyasar/sdramsim/sim"
)

// An Access is one caller request in a workload.
type Access struct {
	Addr  uint32
	Data  uint32
	Write bool
}

// A Progress receives a notification for every completed access. A
// monitoring progress bar satisfies this interface.
type Progress interface {
	IncrementFinished(amount uint64)
}

// Stats summarizes a completed run.
type Stats struct {
	Cycles     uint64
	Reads      uint64
	Writes     uint64
	Mismatches uint64
}

// Comp replays a workload. Each tick is one clock cycle: the caller pins are
// driven, the controller and the device advance, and the response pins are
// checked. Tick returns false once the workload has drained, which lets the
// event engine run to completion.
type Comp struct {
	*sim.TickingComponent

	ctrl *sdram.Comp
	dev  *device.Comp

	workload     []Access
	cursor       int
	awaitingData bool

	nextDQ signal.DQ
	shadow map[uint32]uint32

	progress Progress
	stats    Stats
}

// Tick runs one clock cycle of the whole loop.
func (b *Comp) Tick() bool {
	b.presentRequest()

	b.ctrl.SetDQ(b.nextDQ)
	b.ctrl.Tick()
	b.nextDQ = b.dev.Tick(b.ctrl.DevicePins())

	b.consumeResponse()

	b.stats.Cycles++

	return !b.finished()
}

func (b *Comp) presentRequest() {
	if b.cursor >= len(b.workload) || b.awaitingData {
		return
	}

	a := b.workload[b.cursor]
	b.ctrl.SetRequest(signal.Request{
		Address:     a.Addr,
		Data:        a.Data,
		WriteEnable: a.Write,
		Req:         true,
	})
}

func (b *Comp) consumeResponse() {
	rsp := b.ctrl.Response()

	if rsp.Ack {
		b.ctrl.SetRequest(signal.Request{})

		a := b.workload[b.cursor]
		if a.Write {
			b.shadow[a.Addr] = a.Data
			b.stats.Writes++
			b.completeAccess()
		} else {
			b.awaitingData = true
		}
	}

	if rsp.Valid {
		if !b.awaitingData {
			log.Panicf("%s: data valid with no read in flight", b.Name())
		}

		a := b.workload[b.cursor]
		if rsp.Data != b.shadow[a.Addr] {
			b.stats.Mismatches++
			log.Printf("%s: read 0x%06x returned 0x%08x, want 0x%08x",
				b.Name(), a.Addr, rsp.Data, b.shadow[a.Addr])
		}

		b.stats.Reads++
		b.awaitingData = false
		b.completeAccess()
	}
}

func (b *Comp) completeAccess() {
	b.cursor++

	if b.progress != nil {
		b.progress.IncrementFinished(1)
	}
}

func (b *Comp) finished() bool {
	return b.cursor >= len(b.workload) && !b.awaitingData
}

// Stats returns the run statistics collected so far.
func (b *Comp) Stats() Stats {
	return b.stats
}
