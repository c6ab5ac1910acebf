package bench

import "math/rand"

// RandomWorkload generates count write-then-read pairs over random addresses
// within the given caller address width. Reads always target addresses that
// were written earlier, so every read has a known expected value.
func RandomWorkload(count int, seed int64, addrWidth int) []Access {
	r := rand.New(rand.NewSource(seed))
	mask := uint32(1)<<addrWidth - 1

	accesses := make([]Access, 0, count*2)
	for i := 0; i < count; i++ {
		addr := r.Uint32() & mask
		data := r.Uint32()

		accesses = append(accesses,
			Access{Addr: addr, Data: data, Write: true},
			Access{Addr: addr},
		)
	}

	return accesses
}
