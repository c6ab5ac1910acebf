// Package signal defines the pin-level values exchanged between the
// controller and the SDRAM device.
package signal

// CommandKind is one of the commands that can be driven on the device command
// bus.
type CommandKind int

// A list of all device commands.
const (
	CmdKindDeselect CommandKind = iota
	CmdKindNoOp
	CmdKindLoadMode
	CmdKindAutoRefresh
	CmdKindPrecharge
	CmdKindActivate
	CmdKindWrite
	CmdKindRead
)

func (k CommandKind) String() string {
	switch k {
	case CmdKindDeselect:
		return "Deselect"
	case CmdKindNoOp:
		return "NoOp"
	case CmdKindLoadMode:
		return "LoadMode"
	case CmdKindAutoRefresh:
		return "AutoRefresh"
	case CmdKindPrecharge:
		return "Precharge"
	case CmdKindActivate:
		return "Activate"
	case CmdKindWrite:
		return "Write"
	case CmdKindRead:
		return "Read"
	}

	return "Unknown"
}

// CommandPins is the four-bit command bus, decomposed into the chip-select,
// row-address-strobe, column-address-strobe, and write-enable lines. All four
// lines are active low; a true value means the line is high.
type CommandPins struct {
	CSn  bool
	RASn bool
	CASn bool
	WEn  bool
}

// Pins returns the level of the four command lines for the command.
func (k CommandKind) Pins() CommandPins {
	switch k {
	case CmdKindDeselect:
		return CommandPins{CSn: true, RASn: true, CASn: true, WEn: true}
	case CmdKindNoOp:
		return CommandPins{CSn: false, RASn: true, CASn: true, WEn: true}
	case CmdKindLoadMode:
		return CommandPins{CSn: false, RASn: false, CASn: false, WEn: false}
	case CmdKindAutoRefresh:
		return CommandPins{CSn: false, RASn: false, CASn: false, WEn: true}
	case CmdKindPrecharge:
		return CommandPins{CSn: false, RASn: false, CASn: true, WEn: false}
	case CmdKindActivate:
		return CommandPins{CSn: false, RASn: false, CASn: true, WEn: true}
	case CmdKindWrite:
		return CommandPins{CSn: false, RASn: true, CASn: false, WEn: false}
	case CmdKindRead:
		return CommandPins{CSn: false, RASn: true, CASn: false, WEn: true}
	}

	panic("unknown command kind")
}
