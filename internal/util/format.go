package util

import "fmt"

// Timeify converts seconds to "HH:MM:SS" format. Negative input is zero.
func Timeify(seconds int) string {
	seconds = max(seconds, 0)
	return fmt.Sprintf("%02d:%02d:%02d", seconds/3600, seconds%3600/60, seconds%60)
}

// Sizeify converts bytes to a human-readable string (B, KiB, MiB, GiB, TiB).
func Sizeify(size int64) string {
	switch {
	case size >= TiB:
		return fmt.Sprintf("%.2f TiB", float64(size)/TiB)
	case size >= GiB:
		return fmt.Sprintf("%.2f GiB", float64(size)/GiB)
	case size >= MiB:
		return fmt.Sprintf("%.2f MiB", float64(size)/MiB)
	case size >= KiB:
		return fmt.Sprintf("%.2f KiB", float64(size)/KiB)
	default:
		return fmt.Sprintf("%d B", size)
	}
}
