package device

import (
	"fmt"

	"github.com/cnbltyasar/sdramsim/sdram/signal"
	"github.com/cnbltyasar/sdramsim/sim"
)

// Builder can build device models.
type Builder struct {
	colWidth  int
	rowWidth  int
	bankWidth int
}

// MakeBuilder creates a builder with the default configuration, a 16Mx16
// organization with 9 column, 13 row, and 2 bank address bits.
func MakeBuilder() Builder {
	return Builder{
		colWidth:  9,
		rowWidth:  13,
		bankWidth: 2,
	}
}

// WithColWidth sets the number of column address bits.
func (b Builder) WithColWidth(n int) Builder {
	b.colWidth = n
	return b
}

// WithRowWidth sets the number of row address bits.
func (b Builder) WithRowWidth(n int) Builder {
	b.rowWidth = n
	return b
}

// WithBankWidth sets the number of bank select bits.
func (b Builder) WithBankWidth(n int) Builder {
	b.bankWidth = n
	return b
}

// Build builds a device model.
func (b Builder) Build(name string) *Comp {
	if b.colWidth <= 0 || b.rowWidth <= 0 || b.bankWidth <= 0 {
		panic(fmt.Sprintf(
			"address geometry %d/%d/%d must be positive",
			b.colWidth, b.rowWidth, b.bankWidth))
	}

	d := &Comp{
		ComponentBase: sim.NewComponentBase(name),
		colWidth:      b.colWidth,
		rowWidth:      b.rowWidth,
		bankWidth:     b.bankWidth,
		storage: NewStorage(
			1 << (b.colWidth + b.rowWidth + b.bankWidth)),
		rows:      make([]openRow, 1<<b.bankWidth),
		cmdCounts: make(map[signal.CommandKind]uint64),
	}

	return d
}
