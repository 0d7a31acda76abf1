// Package render paints a coarse, tile-granularity background frame
// from PPU state: no sprite compositing, no fine scrolling, just the
// 32x30 nametable tiles through the selected pattern table and
// attribute-selected palette. Enough to prove the bus/PPU timing is
// right without a second cycle-accurate subsystem.
package render

import (
	"image"

	"github.com/nescore/nesgo/ppu"
)

const (
	Width      = 256
	Height     = 240
	tileCols   = 32
	tileRows   = 30
	tileSize   = 8
	attrOrigin = 0x23C0
)

// Renderer owns the RGBA frame buffer the host layer blits each frame.
type Renderer struct {
	img *image.RGBA
}

// New allocates a renderer sized to the NES's fixed 256x240 resolution.
func New() *Renderer {
	return &Renderer{img: image.NewRGBA(image.Rect(0, 0, Width, Height))}
}

// Render repaints the frame buffer from p's current nametable,
// pattern table and palette contents. Intended to be called on the
// NMI rising edge, mirroring when real hardware finishes a frame.
func (r *Renderer) Render(p *ppu.PPU) {
	patternBase := p.BackgroundPatternTable()

	for ty := 0; ty < tileRows; ty++ {
		for tx := 0; tx < tileCols; tx++ {
			tileIdx := p.PeekMem(uint16(0x2000 + ty*tileCols + tx))
			tileAddr := patternBase + uint16(tileIdx)*16
			palette := r.tilePalette(p, tx, ty)
			r.paintTile(p, tx, ty, tileAddr, palette)
		}
	}
}

// tilePalette resolves the 4-entry background palette a tile uses from
// its 2x2-tile attribute-table quadrant.
func (r *Renderer) tilePalette(p *ppu.PPU, tx, ty int) uint16 {
	attrAddr := uint16(attrOrigin + (ty/4)*8 + tx/4)
	attr := p.PeekMem(attrAddr)
	shift := uint((ty%4)/2*4 + (tx%4)/2*2)
	idx := (attr >> shift) & 0x03
	return 0x3F00 + uint16(idx)*4
}

func (r *Renderer) paintTile(p *ppu.PPU, tx, ty int, tileAddr, paletteBase uint16) {
	for row := 0; row < tileSize; row++ {
		lo := p.PeekMem(tileAddr + uint16(row))
		hi := p.PeekMem(tileAddr + 8 + uint16(row))
		for col := 0; col < tileSize; col++ {
			bit := uint(7 - col)
			colorIdx := ((hi>>bit)&1)<<1 | (lo>>bit)&1

			var paletteAddr uint16 = 0x3F00
			if colorIdx != 0 {
				paletteAddr = paletteBase + uint16(colorIdx)
			}
			rgb := ppu.SystemPalette[p.PeekMem(paletteAddr)&0x3F]
			r.setPixel(tx*tileSize+col, ty*tileSize+row, rgb)
		}
	}
}

func (r *Renderer) setPixel(x, y int, rgb [3]uint8) {
	off := r.img.PixOffset(x, y)
	px := r.img.Pix[off : off+4 : off+4]
	px[0], px[1], px[2], px[3] = rgb[0], rgb[1], rgb[2], 0xFF
}

// Pixels returns the frame buffer's raw RGBA bytes, row-major,
// Width*Height*4 long.
func (r *Renderer) Pixels() []byte {
	return r.img.Pix
}

// Image exposes the frame buffer directly for hosts that prefer to
// work with image.Image rather than raw bytes.
func (r *Renderer) Image() *image.RGBA {
	return r.img
}
