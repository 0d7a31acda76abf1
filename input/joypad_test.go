package input

import "testing"

func TestJoypadStrobeAndShiftOut(t *testing.T) {
	var j Joypad
	j.SetButtons(ButtonA | ButtonStart)

	j.Write(1) // strobe high, idx reset to 0
	j.Write(0) // strobe low, freeze snapshot

	want := []uint8{1, 0, 0, 1, 0, 0, 0, 0}
	for i, w := range want {
		if got := j.Read(); got != w {
			t.Errorf("Read() #%d = %d, want %d", i, got, w)
		}
	}
}

func TestJoypadReadPastEightReturnsOne(t *testing.T) {
	var j Joypad
	j.SetButtons(0xFF)
	j.Write(1)
	j.Write(0)

	for i := 0; i < 8; i++ {
		j.Read()
	}
	if got := j.Read(); got != 1 {
		t.Errorf("Read() past 8 buttons = %d, want 1", got)
	}
}

func TestJoypadStrobeHighResetsIndex(t *testing.T) {
	var j Joypad
	j.SetButtons(ButtonA)
	j.Write(1)
	j.Write(0)
	j.Read()
	j.Read()

	j.Write(1) // strobe high again resets idx
	j.Write(0)
	if got := j.Read(); got != 1 {
		t.Errorf("Read() after re-strobe = %d, want 1 (button A)", got)
	}
}
