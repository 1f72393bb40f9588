package scenes

import (
	"fmt"

	"github.com/decker502/missilemath/pkg/config"
	"github.com/decker502/missilemath/pkg/game"
	"github.com/decker502/missilemath/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// TutorialScene shows the rules and controls.
type TutorialScene struct {
	deps     Deps
	username string
	lines    []string
}

// NewTutorialScene creates the help screen; username is kept for the way back.
func NewTutorialScene(deps Deps, username string) *TutorialScene {
	return &TutorialScene{
		deps:     deps,
		username: username,
		lines:    tutorialLines(deps.Config),
	}
}

// tutorialLines builds the help text from the configured rules.
func tutorialLines(cfg *config.GameConfig) []string {
	face := utils.DefaultFace()
	maxWidth := float64(config.GameWindowWidth) - 60

	paragraphs := []string{
		"Missiles fall in waves, each one carrying an arithmetic question.",
		"The header shows the TARGET answer. Move the tank under the missile whose question equals the target and fire.",
		fmt.Sprintf("A correct hit scores %d points and clears the wave.", cfg.PointsPerCorrect),
		fmt.Sprintf("A wrong hit costs %d points and %d health. So does every missile that gets past the line.", cfg.PenaltyIncorrect, cfg.DamagePerMiss),
		fmt.Sprintf("Every %d points is a new level with harder questions. From level %d on, missiles speed up on every hit.", cfg.PointsPerLevel, cfg.HardcoreLevel),
		"",
		"Left / A        move left",
		"Right / D       move right",
		"Up / W / Space  fire",
		"M               mute",
		"Esc             back to name entry",
		"R               restart",
	}
	if utils.IsMobile() {
		paragraphs = append(paragraphs, "", "Tap left or right to move, tap the middle to fire.")
	}

	var lines []string
	for _, p := range paragraphs {
		lines = append(lines, utils.WrapText(p, face, maxWidth)...)
	}
	return lines
}

// Update returns to name entry on Esc, Enter, F1 or a tap.
func (s *TutorialScene) Update(deltaTime float64) {
	back := inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEnter) ||
		inpututil.IsKeyJustPressed(ebiten.KeyF1)
	if pressed, _, _ := utils.IsJustTouchedOrClicked(); pressed {
		back = true
	}
	if back {
		s.deps.SceneManager.Show(game.SceneNameEntry, game.SceneParams{Username: s.username})
	}
}

// Draw renders the help text.
func (s *TutorialScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	face := utils.DefaultFace()
	cx := float64(config.GameWindowWidth) / 2

	utils.DrawCenteredText(screen, "HOW TO PLAY", face, cx, 50, colorAccent)
	for i, line := range s.lines {
		utils.DrawText(screen, line, face, 30, 90+float64(i)*scoreRowHeight, colorText)
	}
	utils.DrawCenteredText(screen, "Press Esc to go back", face, cx, float64(config.GameWindowHeight)-50, colorDim)
}
