// Package device provides a behavioural model of a synchronous DRAM chip.
// It decodes the pin-level command bus cycle by cycle, obeys the programmed
// CAS latency for reads, and captures write bursts from the shared data bus.
// It is the far end of the controller in closed-loop simulations and tests.
package device

import (
	"log"

	"github.com/cnbltyasar/sdramsim/sdram/signal"
	"github.com/cnbltyasar/sdramsim/sim"
)

type openRow struct {
	valid bool
	row   uint32
}

type pendingWord struct {
	delay int
	word  uint16
}

type writeBurst struct {
	remaining int
	nextAddr  uint64
}

// Comp is the device model. Tick consumes the controller pins of the current
// cycle and returns the value the device drives onto the data bus on the
// next cycle.
type Comp struct {
	*sim.ComponentBase

	colWidth  int
	rowWidth  int
	bankWidth int

	// Programmed by the load-mode command.
	casLatency  int
	burstLength int
	modeLoaded  bool

	storage *Storage
	rows    []openRow

	reads []pendingWord
	write writeBurst

	cmdCounts map[signal.CommandKind]uint64
}

// Tick processes one cycle worth of pins.
func (d *Comp) Tick(pins signal.DevicePins) signal.DQ {
	if pins.CKE {
		d.cmdCounts[pins.Cmd]++
		d.decode(pins)
	}

	d.captureWriteWord(pins.DQ)

	return d.advanceReadPipe()
}

func (d *Comp) decode(pins signal.DevicePins) {
	switch pins.Cmd {
	case signal.CmdKindLoadMode:
		d.loadMode(pins.Address)
	case signal.CmdKindActivate:
		d.rows[pins.Bank] = openRow{valid: true, row: uint32(pins.Address)}
	case signal.CmdKindRead:
		d.startRead(pins)
	case signal.CmdKindWrite:
		d.startWrite(pins)
	case signal.CmdKindPrecharge:
		d.precharge(pins)
	case signal.CmdKindAutoRefresh:
		d.refreshMustFindClosedRows()
	}
}

func (d *Comp) loadMode(pattern uint16) {
	d.burstLength = 1 << (pattern & 0x7)
	d.casLatency = int(pattern >> 4 & 0x7)
	d.modeLoaded = true
}

func (d *Comp) startRead(pins signal.DevicePins) {
	base := d.wordAddr(pins)

	for i := 0; i < d.burstLength; i++ {
		word, err := d.storage.ReadWord(base + uint64(i))
		if err != nil {
			log.Panic(err)
		}

		d.reads = append(d.reads, pendingWord{
			delay: d.casLatency - 1 + i,
			word:  word,
		})
	}

	d.autoPrecharge(pins)
}

func (d *Comp) startWrite(pins signal.DevicePins) {
	d.write = writeBurst{
		remaining: d.burstLength,
		nextAddr:  d.wordAddr(pins),
	}

	d.autoPrecharge(pins)
}

// captureWriteWord stores one word of an ongoing write burst. The first word
// arrives in the same cycle as the write command.
func (d *Comp) captureWriteWord(dq signal.DQ) {
	if d.write.remaining == 0 {
		return
	}

	if !dq.IsDriven() {
		log.Panic("write burst word expected but the data bus is not driven")
	}

	err := d.storage.WriteWord(d.write.nextAddr, dq.Word())
	if err != nil {
		log.Panic(err)
	}

	d.write.nextAddr++
	d.write.remaining--
}

// advanceReadPipe moves scheduled read words one cycle closer to the bus and
// returns the word due on the next cycle, if any.
func (d *Comp) advanceReadPipe() signal.DQ {
	out := signal.ReleaseDQ()
	remaining := d.reads[:0]

	for _, p := range d.reads {
		p.delay--
		if p.delay < 0 {
			out = signal.DriveDQ(p.word)
			continue
		}

		remaining = append(remaining, p)
	}

	d.reads = remaining

	return out
}

func (d *Comp) precharge(pins signal.DevicePins) {
	if pins.Address&1<<10 != 0 {
		for i := range d.rows {
			d.rows[i] = openRow{}
		}
		return
	}

	d.rows[pins.Bank] = openRow{}
}

func (d *Comp) autoPrecharge(pins signal.DevicePins) {
	if pins.Address&1<<10 != 0 {
		d.rows[pins.Bank] = openRow{}
	}
}

func (d *Comp) refreshMustFindClosedRows() {
	for bank, r := range d.rows {
		if r.valid {
			log.Panicf("auto-refresh while bank %d has an open row", bank)
		}
	}
}

// wordAddr flattens (bank, open row, column) into a word address.
func (d *Comp) wordAddr(pins signal.DevicePins) uint64 {
	if !d.modeLoaded {
		log.Panic("column access before the mode register is loaded")
	}

	r := d.rows[pins.Bank]
	if !r.valid {
		log.Panicf("column access to bank %d with no open row", pins.Bank)
	}

	col := uint64(pins.Address) & (1<<d.colWidth - 1)

	return (uint64(pins.Bank)<<d.rowWidth|uint64(r.row))<<d.colWidth | col
}

// CommandCount returns how many times a command has been observed.
func (d *Comp) CommandCount(kind signal.CommandKind) uint64 {
	return d.cmdCounts[kind]
}

// BurstLength returns the burst length programmed by the last load-mode
// command.
func (d *Comp) BurstLength() int {
	return d.burstLength
}

// CASLatency returns the CAS latency programmed by the last load-mode
// command.
func (d *Comp) CASLatency() int {
	return d.casLatency
}

// Storage exposes the backing store, for seeding and inspection in tests.
func (d *Comp) Storage() *Storage {
	return d.storage
}
