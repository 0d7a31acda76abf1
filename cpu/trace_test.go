package cpu

import "testing"

func TestTraceImmediate(t *testing.T) {
	b := &flatBus{}
	b.load(0x8000, 0xA9, 0x10) // LDA #$10
	b.setResetVector(0x8000)
	c := New(b)

	got := c.Trace()
	want := "8000  A9 10     LDA #$10                        A:00 X:00 Y:00 P:24 SP:FD"
	if got != want {
		t.Errorf("Trace() =\n%q\nwant\n%q", got, want)
	}
}

func TestTraceAccumulator(t *testing.T) {
	b := &flatBus{}
	b.load(0x8000, 0x0A) // ASL A
	b.setResetVector(0x8000)
	c := New(b)

	got := c.Trace()
	want := "8000  0A        ASL A                           A:00 X:00 Y:00 P:24 SP:FD"
	if got != want {
		t.Errorf("Trace() =\n%q\nwant\n%q", got, want)
	}
}

func TestTraceZeroPageShowsStoredValue(t *testing.T) {
	b := &flatBus{}
	b.load(0x8000, 0xA5, 0x10) // LDA $10
	b.mem[0x10] = 0x77
	b.setResetVector(0x8000)
	c := New(b)

	got := c.Trace()
	want := "8000  A5 10     LDA $10 = 77                    A:00 X:00 Y:00 P:24 SP:FD"
	if got != want {
		t.Errorf("Trace() =\n%q\nwant\n%q", got, want)
	}
}

func TestTraceAbsoluteJMP(t *testing.T) {
	b := &flatBus{}
	b.load(0x8000, 0x4C, 0x00, 0x90) // JMP $9000
	b.setResetVector(0x8000)
	c := New(b)

	got := c.Trace()
	want := "8000  4C 00 90  JMP $9000                       A:00 X:00 Y:00 P:24 SP:FD"
	if got != want {
		t.Errorf("Trace() =\n%q\nwant\n%q", got, want)
	}
}

func TestTraceDoesNotMutateCPUState(t *testing.T) {
	b := &flatBus{}
	b.load(0x8000, 0xB5, 0x10) // LDA $10,X
	b.setResetVector(0x8000)
	c := New(b)
	c.X = 0x05

	before := c.PC
	c.Trace()
	if c.PC != before {
		t.Errorf("Trace() mutated PC: got %#04x, want %#04x", c.PC, before)
	}
}
