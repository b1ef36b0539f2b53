// Package util holds small helpers shared by the VideoVault front-ends:
// size and duration formatting for file lists and job summaries, the status
// palette, offline password generation, and a read-buffer pool for hashing
// large video outputs.
//
// All helpers are stateless and safe for concurrent use.
package util

import "image/color"

// Size constants for byte calculations
const (
	KiB = 1 << 10
	MiB = 1 << 20
	GiB = 1 << 30
	TiB = 1 << 40
)

// Status palette, shared by the window theme and the strength meter.
var (
	RED         = color.RGBA{0xff, 0x00, 0x00, 0xff}
	GREEN       = color.RGBA{0x00, 0xff, 0x00, 0xff}
	YELLOW      = color.RGBA{0xcc, 0x70, 0x00, 0xff} // Dark amber for better readability
	TRANSPARENT = color.RGBA{0x00, 0x00, 0x00, 0x00}
)
