// Package savestate serializes and restores emulator state to a
// self-describing binary envelope on disk, named save-state-<N>.
package savestate

import (
	"encoding/gob"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/nescore/nesgo/ppu"
)

// Snapshotter is the PPU's half of a save state.
type Snapshotter interface {
	Snapshot() ppu.Snapshot
	Restore(ppu.Snapshot)
}

// envelope is what actually gets gob-encoded.
type envelope struct {
	RAM [2048]byte
	PPU ppu.Snapshot
}

// Path returns the conventional filename for slot n (1..255).
func Path(n uint8) string {
	return fmt.Sprintf("save-state-%d", n)
}

// Save writes ram and ppu's snapshot to path. Errors are the caller's
// to log; callers that want the logged-and-ignored behavior described
// in the component design should use SaveSlot instead.
func Save(path string, ram *[2048]byte, p Snapshotter) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("savestate: create %q: %w", path, err)
	}
	defer f.Close()

	env := envelope{RAM: *ram, PPU: p.Snapshot()}
	if err := gob.NewEncoder(f).Encode(env); err != nil {
		return fmt.Errorf("savestate: encode %q: %w", path, err)
	}
	return nil
}

// Load reads path into ram and p, replacing both atomically: RAM and
// PPU are only mutated once the full envelope has decoded successfully.
func Load(path string, ram *[2048]byte, p Snapshotter) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("savestate: open %q: %w", path, err)
	}
	defer f.Close()

	var env envelope
	if err := gob.NewDecoder(f).Decode(&env); err != nil {
		return fmt.Errorf("savestate: decode %q: %w", path, err)
	}

	*ram = env.RAM
	p.Restore(env.PPU)
	return nil
}

// SaveSlot saves to slot n, logging and swallowing any failure rather
// than propagating it, per the "leaves emulator state untouched"
// contract: a save failure never disturbs what's already running.
func SaveSlot(n uint8, ram *[2048]byte, p Snapshotter) {
	if err := Save(Path(n), ram, p); err != nil {
		glog.Errorf("savestate: save slot %d failed: %v", n, err)
	}
}

// LoadSlot loads slot n, logging and swallowing any failure.
func LoadSlot(n uint8, ram *[2048]byte, p Snapshotter) {
	if err := Load(Path(n), ram, p); err != nil {
		glog.Errorf("savestate: load slot %d failed: %v", n, err)
	}
}
