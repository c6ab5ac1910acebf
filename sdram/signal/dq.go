package signal

// DQ is the value of the bidirectional narrow data bus. The bus is either
// driven with a word or released (high impedance). Modeling the released
// level explicitly keeps "not driving" distinguishable from driving zero.
type DQ struct {
	word   uint16
	driven bool
}

// DriveDQ returns a DQ value that carries a word.
func DriveDQ(word uint16) DQ {
	return DQ{word: word, driven: true}
}

// ReleaseDQ returns a DQ value that drives nothing.
func ReleaseDQ() DQ {
	return DQ{}
}

// IsDriven returns true if some party drives the bus.
func (d DQ) IsDriven() bool {
	return d.driven
}

// Word returns the driven word. Sampling a released bus returns zero.
func (d DQ) Word() uint16 {
	if !d.driven {
		return 0
	}

	return d.word
}
