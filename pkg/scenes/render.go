package scenes

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Palette
var (
	colorBackground = color.RGBA{R: 12, G: 16, B: 40, A: 255}
	colorHeader     = color.RGBA{R: 24, G: 32, B: 72, A: 255}
	colorHardcore   = color.RGBA{R: 90, G: 16, B: 24, A: 255}
	colorText       = color.RGBA{R: 235, G: 235, B: 245, A: 255}
	colorDim        = color.RGBA{R: 140, G: 150, B: 180, A: 255}
	colorAccent     = color.RGBA{R: 255, G: 210, B: 70, A: 255}
	colorDanger     = color.RGBA{R: 240, G: 70, B: 70, A: 255}
	colorHealth     = color.RGBA{R: 80, G: 210, B: 110, A: 255}
	colorBarTrack   = color.RGBA{R: 50, G: 56, B: 90, A: 255}
	colorExperience = color.RGBA{R: 90, G: 170, B: 255, A: 255}
	colorMissile    = color.RGBA{R: 200, G: 80, B: 60, A: 255}
	colorMissileRim = color.RGBA{R: 255, G: 160, B: 120, A: 255}
	colorShot       = color.RGBA{R: 255, G: 240, B: 120, A: 255}
	colorTank       = color.RGBA{R: 90, G: 180, B: 120, A: 255}
	colorExplosion  = color.RGBA{R: 255, G: 170, B: 40, A: 255}
	colorEscapeLine = color.RGBA{R: 120, G: 40, B: 50, A: 255}
	colorHighlight  = color.RGBA{R: 60, G: 70, B: 120, A: 255}
)

// fillRect draws a filled rectangle in screen coordinates.
func fillRect(screen *ebiten.Image, x, y, w, h float64, clr color.Color) {
	vector.DrawFilledRect(screen, float32(x), float32(y), float32(w), float32(h), clr, true)
}

// strokeRect draws a rectangle outline in screen coordinates.
func strokeRect(screen *ebiten.Image, x, y, w, h, width float64, clr color.Color) {
	vector.StrokeRect(screen, float32(x), float32(y), float32(w), float32(h), float32(width), clr, true)
}

// drawBar draws a progress bar; ratio is clamped to [0, 1].
func drawBar(screen *ebiten.Image, x, y, w, h, ratio float64, fill color.Color) {
	ratio = min(max(ratio, 0), 1)
	fillRect(screen, x, y, w, h, colorBarTrack)
	if ratio > 0 {
		fillRect(screen, x, y, w*ratio, h, fill)
	}
}

// fade returns clr with its alpha scaled by alpha (0-1).
func fade(clr color.RGBA, alpha float64) color.RGBA {
	alpha = min(max(alpha, 0), 1)
	return color.RGBA{
		R: uint8(float64(clr.R) * alpha),
		G: uint8(float64(clr.G) * alpha),
		B: uint8(float64(clr.B) * alpha),
		A: uint8(float64(clr.A) * alpha),
	}
}
