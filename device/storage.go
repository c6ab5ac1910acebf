package device

import "errors"

// A Storage keeps the contents of the device as 16-bit words.
//
// Words are organized in lazily allocated units, so regions that are never
// touched by a read or write cost no memory.
type Storage struct {
	unitSize uint64
	capacity uint64
	data     map[uint64][]uint16
}

// NewStorage creates a storage object with the given capacity in words.
func NewStorage(capacity uint64) *Storage {
	s := new(Storage)

	s.unitSize = 4096
	s.capacity = capacity
	s.data = make(map[uint64][]uint16)

	return s
}

func (s *Storage) unitFor(addr uint64) ([]uint16, uint64, error) {
	if addr >= s.capacity {
		return nil, 0, errors.New(
			"accessing a word address beyond the storage capacity")
	}

	inUnitAddr := addr % s.unitSize
	baseAddr := addr - inUnitAddr

	unit, ok := s.data[baseAddr]
	if !ok {
		unit = make([]uint16, s.unitSize)
		s.data[baseAddr] = unit
	}

	return unit, inUnitAddr, nil
}

// ReadWord returns the word at the given word address.
func (s *Storage) ReadWord(addr uint64) (uint16, error) {
	unit, inUnitAddr, err := s.unitFor(addr)
	if err != nil {
		return 0, err
	}

	return unit[inUnitAddr], nil
}

// WriteWord stores a word at the given word address.
func (s *Storage) WriteWord(addr uint64, word uint16) error {
	unit, inUnitAddr, err := s.unitFor(addr)
	if err != nil {
		return err
	}

	unit[inUnitAddr] = word

	return nil
}
