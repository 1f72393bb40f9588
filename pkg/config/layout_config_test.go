package config

import "testing"

// TestFieldToScreen 测试战场坐标到屏幕坐标的转换
func TestFieldToScreen(t *testing.T) {
	tests := []struct {
		name         string
		x, y         float64
		wantX, wantY float64
	}{
		{"战场原点", 0, 0, 0, HeaderHeight},
		{"中间列导弹", 250, 104, 250, 104 + HeaderHeight},
		{"战场底部", 500, 600, 500, 600 + HeaderHeight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := FieldToScreen(tt.x, tt.y)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("FieldToScreen(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, x, y, tt.wantX, tt.wantY)
			}
		})
	}
}

// TestWindowMatchesDefaultField 测试窗口尺寸与默认战场一致
func TestWindowMatchesDefaultField(t *testing.T) {
	cfg := DefaultGameConfig()
	if float64(GameWindowWidth) != cfg.FieldWidth {
		t.Errorf("GameWindowWidth = %d, want field width %v", GameWindowWidth, cfg.FieldWidth)
	}
	if float64(GameWindowHeight-HeaderHeight) != cfg.FieldHeight {
		t.Errorf("window field area = %d, want field height %v", GameWindowHeight-HeaderHeight, cfg.FieldHeight)
	}
}
