// Package host implements the ebiten.Game side of the emulator: a
// window that blits whatever the renderer last painted and feeds
// ebiten's keyboard state into the joypad. The emulator's own
// goroutine drives cycle timing; this package only presents it.
package host

import (
	"context"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/nescore/nesgo/bus"
	"github.com/nescore/nesgo/input"
	"github.com/nescore/nesgo/ppu"
	"github.com/nescore/nesgo/render"
)

// keys maps the eight NES buttons, in Button* bit order, onto ebiten
// key identifiers.
var keys = []ebiten.Key{
	ebiten.KeyA,     // A
	ebiten.KeyB,     // B
	ebiten.KeySpace, // Select
	ebiten.KeyEnter, // Start
	ebiten.KeyUp,    // Up
	ebiten.KeyDown,  // Down
	ebiten.KeyLeft,  // Left
	ebiten.KeyRight, // Right
}

// Host implements ebiten.Game over a Bus and Renderer pair.
type Host struct {
	bus    *bus.Bus
	render *render.Renderer
	cancel context.CancelFunc
}

// New wires a Host to b, installing b's gameloop callback so that
// every NMI rising edge repaints the frame and latches a fresh input
// snapshot, before ebiten ever sees either.
func New(b *bus.Bus, r *render.Renderer, cancel context.CancelFunc) *Host {
	h := &Host{bus: b, render: r, cancel: cancel}
	b.Callback = h.onFrame
	return h
}

func (h *Host) onFrame(p *ppu.PPU, j *input.Joypad) bus.Action {
	h.render.Render(p)
	j.SetButtons(pollButtons())
	return bus.NoAction
}

func pollButtons() uint8 {
	var snapshot uint8
	for i, key := range keys {
		if ebiten.IsKeyPressed(key) {
			snapshot |= 1 << i
		}
	}
	return snapshot
}

// Layout returns the NES's fixed resolution so ebiten scales the
// window rather than the emulator.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	return render.Width, render.Height
}

// Draw blits the renderer's current frame onto screen.
func (h *Host) Draw(screen *ebiten.Image) {
	img := h.render.Image()
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			screen.Set(x, y, img.At(x, y))
		}
	}
}

// Update is a no-op hook: the emulation goroutine owns cycle timing,
// not ebiten's 60Hz callback. It exists only to satisfy ebiten.Game,
// and to catch Escape; window-close ends ebiten.RunGame on its own.
func (h *Host) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		h.cancel()
		return ebiten.Termination
	}
	return nil
}
