// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// TapZone 屏幕横向点击区域
type TapZone int

const (
	TapZoneLeft TapZone = iota
	TapZoneCenter
	TapZoneRight
)

// IsJustTouchedOrClicked 检查是否刚刚发生点击或触摸
// 优先检测触摸，返回是否点击以及点击位置
func IsJustTouchedOrClicked() (bool, int, int) {
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return true, x, y
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return true, x, y
	}

	return false, 0, 0
}

// ZoneForX 将点击的 X 坐标映射到三等分区域
//
// 参数:
//   - x: 点击位置（逻辑屏幕坐标）
//   - width: 逻辑屏幕宽度
func ZoneForX(x int, width float64) TapZone {
	third := width / 3
	switch {
	case float64(x) < third:
		return TapZoneLeft
	case float64(x) >= 2*third:
		return TapZoneRight
	default:
		return TapZoneCenter
	}
}
