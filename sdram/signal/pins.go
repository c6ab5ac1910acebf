package signal

// Request is the caller-facing input pin group, sampled once per cycle.
// The caller must keep Req asserted, and the other fields stable, from the
// cycle a request is raised until the cycle Ack appears on the Response pins.
type Request struct {
	Address     uint32
	Data        uint32
	WriteEnable bool
	Req         bool
}

// Response is the caller-facing output pin group, driven once per cycle.
// Ack is high for exactly one cycle per accepted request. Valid is high for
// exactly one cycle per completed read, during which Data carries the
// assembled wide word.
type Response struct {
	Ack   bool
	Valid bool
	Data  uint32
}

// DevicePins is the device-facing output pin group, driven once per cycle.
type DevicePins struct {
	CKE     bool
	Cmd     CommandKind
	Address uint16
	Bank    uint8
	DQ      DQ

	// The two data-mask lines. The controller holds both low permanently.
	DQMH bool
	DQML bool
}

// CommandRecord describes one non-noop command issue. It is delivered as the
// hook item at the controller's command-issue hook position and is the row
// format used by trace recording.
type CommandRecord struct {
	Cycle   uint64
	State   string
	Command string
	Bank    uint8
	Address uint16
}
