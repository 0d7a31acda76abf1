package render

import (
	"testing"

	"github.com/nescore/nesgo/cartridge"
	"github.com/nescore/nesgo/ppu"
)

type fakeBus struct {
	chr [0x2000]uint8
}

func (b *fakeBus) ChrRead(addr uint16) uint8       { return b.chr[addr] }
func (b *fakeBus) ChrWrite(addr uint16, val uint8) { b.chr[addr] = val }

func TestRenderProducesFullFrame(t *testing.T) {
	p := ppu.New(&fakeBus{}, cartridge.MirrorHorizontal)
	r := New()
	r.Render(p)

	if got := len(r.Pixels()); got != Width*Height*4 {
		t.Errorf("len(Pixels()) = %d, want %d", got, Width*Height*4)
	}
}

func TestRenderPaintsUniversalBackgroundWhenTilesAreBlank(t *testing.T) {
	bus := &fakeBus{}
	p := ppu.New(bus, cartridge.MirrorHorizontal)

	// A solid color 1 in the universal background slot; every tile
	// index defaults to 0 and every pattern byte defaults to 0, so the
	// whole frame should come out as that one color.
	p.WritePPUAddr(0x3F)
	p.WritePPUAddr(0x00)
	p.WriteData(0x01)

	r := New()
	r.Render(p)

	wantRGB := ppu.SystemPalette[0x01]
	px := r.Pixels()
	if px[0] != wantRGB[0] || px[1] != wantRGB[1] || px[2] != wantRGB[2] {
		t.Errorf("pixel(0,0) = %v, want %v", px[0:3], wantRGB)
	}
	last := len(px) - 4
	if px[last] != wantRGB[0] || px[last+1] != wantRGB[1] || px[last+2] != wantRGB[2] {
		t.Errorf("last pixel = %v, want %v", px[last:last+3], wantRGB)
	}
}
