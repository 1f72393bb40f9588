package utils

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

var defaultFace = text.NewGoXFace(basicfont.Face7x13)

// DefaultFace 返回界面使用的位图字体（7x13）
func DefaultFace() text.Face {
	return defaultFace
}

// MeasureText 测量单行文本宽度
func MeasureText(textStr string, face text.Face) float64 {
	if textStr == "" || face == nil {
		return 0
	}
	width, _ := text.Measure(textStr, face, 0)
	return width
}

// DrawText 以左上角为锚点绘制文本
func DrawText(screen *ebiten.Image, textStr string, face text.Face, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, textStr, face, op)
}

// DrawCenteredText 以 (cx, y) 为上边中点绘制文本
func DrawCenteredText(screen *ebiten.Image, textStr string, face text.Face, cx, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(cx, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	text.Draw(screen, textStr, face, op)
}

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本
//   - face: 字体
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 换行规则:
//   - 在空格处断行
//   - 单词本身超过最大宽度时独占一行
func WrapText(textStr string, face text.Face, maxWidth float64) []string {
	if textStr == "" || face == nil || maxWidth <= 0 {
		return []string{textStr}
	}
	if MeasureText(textStr, face) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	currentLine := ""
	for _, word := range strings.Fields(textStr) {
		if currentLine == "" {
			currentLine = word
			continue
		}
		testLine := currentLine + " " + word
		if MeasureText(testLine, face) > maxWidth {
			lines = append(lines, currentLine)
			currentLine = word
			continue
		}
		currentLine = testLine
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	if len(lines) == 0 {
		lines = []string{textStr}
	}
	return lines
}
