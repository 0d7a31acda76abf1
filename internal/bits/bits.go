// Package bits implements indexed bit get/set on a byte, the building
// block for the PPU's flag registers (the CPU's status flags use their
// own masks instead).
package bits

// Get returns whether bit index (0 is least-significant) is set in b.
// index must be in 0..7; anything else panics.
func Get(b uint8, index uint8) bool {
	if index > 7 {
		panic("bits.Get: index out of range")
	}
	return b&(1<<index) != 0
}

// Set returns b with bit index forced to val. index must be in 0..7.
func Set(b uint8, index uint8, val bool) uint8 {
	if index > 7 {
		panic("bits.Set: index out of range")
	}
	if val {
		return b | (1 << index)
	}
	return b &^ (1 << index)
}
