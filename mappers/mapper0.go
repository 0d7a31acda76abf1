package mappers

import "github.com/nescore/nesgo/cartridge"

// chrRAMSize is the CHR-RAM allocation for mapper 0 cartridges whose
// header declares zero CHR-ROM banks (chrSize == 0): they wire an 8
// KiB CHR-RAM chip instead, same as real NROM boards like Family Basic.
const chrRAMSize = 0x2000

func init() {
	register(0, func(c *cartridge.Cartridge) Mapper {
		if len(c.CHR) == 0 {
			c.CHR = make([]byte, chrRAMSize)
		}
		return &nrom{baseMapper: &baseMapper{cart: c}}
	})
}

// nrom implements mapper 0: 16 or 32 KiB PRG, 8 KiB CHR, no bank
// switching. A cartridge with only 16 KiB of PRG mirrors it into both
// halves of the CPU's $8000-$FFFF window.
type nrom struct {
	*baseMapper
}

func (m *nrom) PrgRead(addr uint16) uint8 {
	off := addr - 0x8000
	if len(m.cart.PRG) == 0x4000 {
		off %= 0x4000
	}
	return m.cart.PRG[off]
}

func (m *nrom) PrgWrite(addr uint16, val uint8) {
	// PRG-ROM is read-only for mapper 0; the Bus is responsible for
	// treating this as a fatal condition per the error-handling design.
}

// ChrRead/ChrWrite index into cart.CHR, which the constructor above
// backs with chrRAMSize bytes of CHR-RAM when the header declares no
// CHR-ROM, so this is always a live 8 KiB (or larger, for CHR-ROM)
// bank and never panics on valid iNES input.
func (m *nrom) ChrRead(addr uint16) uint8 {
	return m.cart.CHR[int(addr)%len(m.cart.CHR)]
}

func (m *nrom) ChrWrite(addr uint16, val uint8) {
	m.cart.CHR[int(addr)%len(m.cart.CHR)] = val
}
