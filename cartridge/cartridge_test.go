package cartridge

import "testing"

func buildROM(prgBlocks, chrBlocks int, flags6, flags7 byte) []byte {
	h := make([]byte, headerSize)
	copy(h, []byte(iNESMagic))
	h[4] = byte(prgBlocks)
	h[5] = byte(chrBlocks)
	h[6] = flags6
	h[7] = flags7

	buf := append([]byte{}, h...)
	buf = append(buf, make([]byte, prgBlocks*prgBlockSize)...)
	buf = append(buf, make([]byte, chrBlocks*chrBlockSize)...)
	return buf
}

func TestParseBadMagic(t *testing.T) {
	raw := buildROM(1, 1, 0, 0)
	raw[0] = 'X'
	if _, err := Parse(raw); err == nil {
		t.Fatal("expected error for bad magic")
	}
}

func TestParseNROM(t *testing.T) {
	raw := buildROM(2, 1, 0x01, 0x00) // vertical mirroring, mapper 0
	raw[16] = 0xAB                    // first PRG byte, for a sanity check below

	c, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(c.PRG) != 2*prgBlockSize {
		t.Errorf("PRG len = %d, want %d", len(c.PRG), 2*prgBlockSize)
	}
	if len(c.CHR) != chrBlockSize {
		t.Errorf("CHR len = %d, want %d", len(c.CHR), chrBlockSize)
	}
	if c.Mirroring != MirrorVertical {
		t.Errorf("Mirroring = %v, want Vertical", c.Mirroring)
	}
	if c.Mapper != 0 {
		t.Errorf("Mapper = %d, want 0", c.Mapper)
	}
	if c.PRG[0] != 0xAB {
		t.Errorf("PRG[0] = %#02x, want 0xAB", c.PRG[0])
	}
}

func TestParseFourScreenMirroring(t *testing.T) {
	raw := buildROM(1, 1, flag6FourScreen, 0x00)
	c, err := Parse(raw)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.Mirroring != MirrorFourScreen {
		t.Errorf("Mirroring = %v, want FourScreen", c.Mirroring)
	}
}

func TestParseUnsupportedMapper(t *testing.T) {
	raw := buildROM(1, 1, 0x10, 0x00) // mapper nibble 1
	if _, err := Parse(raw); err == nil {
		t.Fatal("expected error for unsupported mapper")
	}
}

func TestParseTruncated(t *testing.T) {
	raw := buildROM(2, 1, 0, 0)
	raw = raw[:len(raw)-100]
	if _, err := Parse(raw); err == nil {
		t.Fatal("expected error for truncated ROM")
	}
}

func TestParseTrainer(t *testing.T) {
	h := make([]byte, headerSize)
	copy(h, []byte(iNESMagic))
	h[4] = 1
	h[5] = 0
	h[6] = flag6Trainer

	buf := append([]byte{}, h...)
	buf = append(buf, make([]byte, trainerSize)...)
	buf = append(buf, make([]byte, prgBlockSize)...)
	buf[headerSize+trainerSize] = 0x42

	c, err := Parse(buf)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.PRG[0] != 0x42 {
		t.Errorf("PRG[0] = %#02x, want 0x42 (trainer should be skipped)", c.PRG[0])
	}
}
