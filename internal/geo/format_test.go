package geo

import "testing"

func TestFormatDistance(t *testing.T) {
	tests := []struct {
		meters int
		want   string
	}{
		{0, "0 m"},
		{-5, "0 m"},
		{850, "850 m"},
		{999, "999 m"},
		{1000, "1.0 km"},
		{1234, "1.2 km"},
		{15678, "15.7 km"},
	}

	for _, tt := range tests {
		if got := FormatDistance(tt.meters); got != tt.want {
			t.Errorf("FormatDistance(%d) = %q, want %q", tt.meters, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{0, "0 sec"},
		{-10, "0 sec"},
		{45, "45 sec"},
		{60, "1 min"},
		{90, "2 min"},
		{900, "15 min"},
		{3599, "1 hr 00 min"},
		{3900, "1 hr 05 min"},
		{7500, "2 hr 05 min"},
	}

	for _, tt := range tests {
		if got := FormatDuration(tt.seconds); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
