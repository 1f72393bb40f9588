package utils

import "testing"

func TestZoneForX(t *testing.T) {
	tests := []struct {
		name  string
		x     int
		width float64
		want  TapZone
	}{
		{"最左侧", 0, 500, TapZoneLeft},
		{"左区边界内", 166, 500, TapZoneLeft},
		{"中间区起点", 167, 500, TapZoneCenter},
		{"正中间", 250, 500, TapZoneCenter},
		{"右区起点", 334, 500, TapZoneRight},
		{"最右侧", 499, 500, TapZoneRight},
		{"超出屏幕", 620, 500, TapZoneRight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ZoneForX(tt.x, tt.width); got != tt.want {
				t.Errorf("ZoneForX(%d, %v) = %v, want %v", tt.x, tt.width, got, tt.want)
			}
		})
	}
}
