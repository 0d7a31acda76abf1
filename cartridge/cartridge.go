// Package cartridge implements loading of iNES v1 ROM images, exposing
// the PRG/CHR banks and mirroring mode a Mapper needs.
// https://www.nesdev.org/wiki/INES
package cartridge

import (
	"errors"
	"fmt"
	"os"
)

// Loader errors, per the error-kind taxonomy: these are the only
// failures that propagate out of program startup.
var (
	ErrBadMagic           = errors.New("cartridge: bad iNES magic")
	ErrUnsupportedVersion = errors.New("cartridge: unsupported iNES version")
	ErrIO                 = errors.New("cartridge: i/o error")
	ErrUnsupportedMapper  = errors.New("cartridge: unsupported mapper")
)

// Cartridge holds the parsed contents of an iNES v1 ROM file.
type Cartridge struct {
	PRG       []byte
	CHR       []byte
	Mirroring Mirroring
	Mapper    uint8
	BatteryRAM bool
}

// Load reads and parses the iNES ROM at path.
func Load(path string) (*Cartridge, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cartridge: couldn't read %q: %w: %v", path, ErrIO, err)
	}
	return Parse(raw)
}

// Parse decodes an in-memory iNES image. Exported separately from Load
// so tests can build fixtures without touching a filesystem.
func Parse(raw []byte) (*Cartridge, error) {
	h, err := parseHeader(raw)
	if err != nil {
		return nil, err
	}

	off := headerSize
	if h.hasTrainer() {
		off += trainerSize
	}

	prgLen := int(h.prgSize) * prgBlockSize
	if prgLen == 0 {
		return nil, fmt.Errorf("cartridge: zero-size PRG ROM: %w", ErrIO)
	}
	if off+prgLen > len(raw) {
		return nil, fmt.Errorf("cartridge: truncated PRG ROM (need %d, have %d): %w", prgLen, len(raw)-off, ErrIO)
	}
	prg := raw[off : off+prgLen]
	off += prgLen

	chrLen := int(h.chrSize) * chrBlockSize
	chr := make([]byte, chrLen)
	if chrLen > 0 {
		if off+chrLen > len(raw) {
			return nil, fmt.Errorf("cartridge: truncated CHR ROM (need %d, have %d): %w", chrLen, len(raw)-off, ErrIO)
		}
		copy(chr, raw[off:off+chrLen])
	}

	mapper := h.mapperNum()
	if mapper != 0 {
		return nil, fmt.Errorf("cartridge: mapper %d: %w", mapper, ErrUnsupportedMapper)
	}

	return &Cartridge{
		PRG:        prg,
		CHR:        chr,
		Mirroring:  h.mirroring(),
		Mapper:     mapper,
		BatteryRAM: h.hasBatteryRAM(),
	}, nil
}
