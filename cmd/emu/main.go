// Command emu runs an iNES ROM against the CPU/PPU/bus core, either in
// an ebiten window or headless (for conformance/trace runs with no
// display available).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/nescore/nesgo/bus"
	"github.com/nescore/nesgo/cartridge"
	"github.com/nescore/nesgo/cpu"
	"github.com/nescore/nesgo/host"
	"github.com/nescore/nesgo/mappers"
	"github.com/nescore/nesgo/render"
)

var (
	romPath    = flag.String("rom", "", "Path to an iNES ROM to run.")
	headless   = flag.Bool("headless", false, "Run without an ebiten window; exits on BRK or context cancellation.")
	tracePath  = flag.String("trace", "", "If set, create (or truncate) this file and write one nestest-log-format line per instruction to it.")
	breakOnBRK = flag.Bool("break-on-brk", true, "Stop the CPU dispatcher when a BRK ($00) opcode executes.")
	repl       = flag.Bool("repl", false, "Drop into the debug REPL instead of running freely (implies -headless).")
)

func main() {
	flag.Parse()
	if *romPath == "" {
		glog.Fatalf("emu: -rom is required")
	}

	cart, err := cartridge.Load(*romPath)
	if err != nil {
		glog.Fatalf("emu: couldn't load %q: %v", *romPath, err)
	}

	m, err := mappers.Get(cart)
	if err != nil {
		glog.Fatalf("emu: %v", err)
	}

	b := bus.New(m)
	c := cpu.New(b)
	c.BreakOnBRK = *breakOnBRK

	traceFile, callback := openTrace(c)
	if traceFile != nil {
		defer traceFile.Close()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if *repl {
		bus.REPL(ctx, c, b)
		return
	}

	if *headless {
		runHeadless(ctx, c, callback)
		return
	}

	h := host.New(b, render.New(), cancel)
	go runForeground(ctx, c, callback, cancel)
	if err := ebiten.RunGame(h); err != nil {
		glog.Fatalf("emu: ebiten.RunGame: %v", err)
	}
}

// openTrace opens -trace's target file, if set, and returns a callback
// for cpu.Run that appends one trace line per instruction.
func openTrace(c *cpu.CPU) (*os.File, func()) {
	if *tracePath == "" {
		return nil, nil
	}
	f, err := os.Create(*tracePath)
	if err != nil {
		glog.Fatalf("emu: couldn't create trace file %q: %v", *tracePath, err)
	}
	return f, func() {
		fmt.Fprintln(f, c.Trace())
	}
}

func runHeadless(ctx context.Context, c *cpu.CPU, callback func()) {
	if err := c.Run(ctx, callback); err != nil {
		glog.Fatalf("emu: %v", err)
	}
}

func runForeground(ctx context.Context, c *cpu.CPU, callback func(), cancel context.CancelFunc) {
	if err := c.Run(ctx, callback); err != nil {
		glog.Errorf("emu: %v", err)
	}
	cancel()
}
