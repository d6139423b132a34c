package geo

import "fmt"

// FormatDistance renders a distance in meters for display:
// meters below one kilometer, otherwise kilometers with one decimal.
func FormatDistance(meters int) string {
	if meters < 0 {
		meters = 0
	}
	if meters < 1000 {
		return fmt.Sprintf("%d m", meters)
	}
	return fmt.Sprintf("%.1f km", float64(meters)/1000)
}

// FormatDuration renders a duration in seconds for display:
// seconds below one minute, minutes below one hour, otherwise
// hours with zero-padded minutes.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	if seconds < 60 {
		return fmt.Sprintf("%d sec", seconds)
	}

	minutes := (seconds + 30) / 60
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	return fmt.Sprintf("%d hr %02d min", minutes/60, minutes%60)
}
