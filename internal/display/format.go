// Package display renders human-facing output: the banner, size and rate
// labels, and build progress.
package display

import (
	"fmt"
	"strconv"
)

var sizeUnits = []string{"KiB", "MiB", "GiB", "TiB"}

// FormatBytes renders an output file size with binary units ("3.4 MiB").
func FormatBytes(n int64) string {
	if n < 1024 {
		return strconv.FormatInt(n, 10) + " B"
	}
	v := float64(n) / 1024
	i := 0
	for v >= 1024 && i < len(sizeUnits)-1 {
		v /= 1024
		i++
	}
	return fmt.Sprintf("%.1f %s", v, sizeUnits[i])
}

// FormatBitrate renders an ffprobe bit_rate (bits per second) as kbps below
// one megabit and Mbps above. Zero means ffprobe did not report one.
func FormatBitrate(bps int64) string {
	switch {
	case bps <= 0:
		return "n/a"
	case bps < 1_000_000:
		return fmt.Sprintf("%d kbps", bps/1000)
	default:
		return fmt.Sprintf("%.1f Mbps", float64(bps)/1e6)
	}
}

// FormatSeconds renders a playback length with two decimals ("6.25 s").
func FormatSeconds(s float64) string {
	return fmt.Sprintf("%.2f s", s)
}
