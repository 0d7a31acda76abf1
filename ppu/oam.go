package ppu

// spriteAt decodes the 4-byte OAM record starting at index i*4 into
// its y/x coordinates, the only fields the sprite-0 hit test needs.
// Full attribute decoding (palette, priority, flip) belongs to the
// renderer, which this core doesn't implement beyond background tiles.
func spriteAt(oamData [oamSize]uint8, i int) (y, x uint8) {
	base := i * 4
	return oamData[base], oamData[base+3]
}
