package bits

import "testing"

func TestGet(t *testing.T) {
	b := uint8(0b1001_1010)
	if got := Get(b, 0); got != false {
		t.Errorf("Get(%08b, 0) = %v, want false", b, got)
	}
	if got := Get(b, 1); got != true {
		t.Errorf("Get(%08b, 1) = %v, want true", b, got)
	}
	if got := Get(b, 7); got != true {
		t.Errorf("Get(%08b, 7) = %v, want true", b, got)
	}
}

func TestGetPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Get(b, 8) should have panicked")
		}
	}()
	Get(0xFF, 8)
}

func TestSet(t *testing.T) {
	tests := []struct {
		in    uint8
		index uint8
		val   bool
		want  uint8
	}{
		{0b1001_1010, 2, true, 0b1001_1110},
		{0b1001_1010, 7, false, 0b0001_1010},
		{0b1001_1010, 0, false, 0b1001_1010},
		{0b1001_1010, 1, true, 0b1001_1010},
	}

	for _, tc := range tests {
		if got := Set(tc.in, tc.index, tc.val); got != tc.want {
			t.Errorf("Set(%08b, %d, %v) = %08b, want %08b", tc.in, tc.index, tc.val, got, tc.want)
		}
	}
}

func TestSetPanicsOutOfRange(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Set(b, 16, true) should have panicked")
		}
	}()
	Set(0xFF, 16, true)
}
