package sdram

// TimingProfile is the set of integer cycle thresholds and the mode-register
// pattern derived once from the configuration. It is immutable after Build.
//
// All nanosecond-to-cycle conversions round up, so a threshold is never
// shorter than the device constraint it models. The refresh interval is the
// only exception: it rounds down and then subtracts a guard band, so refresh
// can never arrive a cycle late.
type TimingProfile struct {
	StartupWait     int
	ModeWait        int
	ActivateWait    int
	RefreshWait     int
	PrechargeWait   int
	ReadWait        int
	WriteWait       int
	RefreshInterval int

	ModeRegister uint16
}
