package table

import (
	"fmt"
	"math"
	"strings"
)

// FormatHHMM renders fractional hours as HH:MM, truncating seconds.
// Negative input renders as "--:--".
func FormatHHMM(h float64) string {
	if h < 0 {
		return "--:--"
	}
	// Past midnight reads as the next day's clock.
	h = math.Mod(h, 24)
	hr := int(math.Floor(h))
	min := int(math.Floor((h - float64(hr)) * 60))
	return fmt.Sprintf("%02d:%02d", hr, min)
}

// FormatSignedHHMM renders a countdown. Time still ahead (diff >= 0) gets
// a "-" prefix and time already past gets "+".
func FormatSignedHHMM(diff float64) string {
	sign := "-"
	if diff < 0 {
		sign = "+"
	}
	abs := math.Abs(diff)
	hours := int(abs)
	mins := int((abs - float64(hours)) * 60)
	return fmt.Sprintf("%s%02d:%02d", sign, hours, mins)
}

// FormatAngle renders a sun angle with an explicit sign and a degree mark.
func FormatAngle(sunAngle float64) string {
	if sunAngle >= 0 {
		return fmt.Sprintf("+%.0f°", sunAngle)
	}
	return fmt.Sprintf("%.0f°", sunAngle)
}

// Humanize renders a duration in hours as "1 hour 5 minutes". The sign is
// dropped.
func Humanize(hours float64) string {
	abs := math.Abs(hours)
	h := int(abs)
	m := int((abs - float64(h)) * 60)

	var parts []string
	if h != 0 {
		parts = append(parts, plural(h, "hour"))
	}
	if m != 0 {
		parts = append(parts, plural(m, "minute"))
	}
	if len(parts) == 0 {
		return "0 minutes"
	}
	return strings.Join(parts, " ")
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
