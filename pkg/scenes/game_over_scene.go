package scenes

import (
	"fmt"
	"log"

	"github.com/decker502/missilemath/pkg/config"
	"github.com/decker502/missilemath/pkg/game"
	"github.com/decker502/missilemath/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const scoreRowHeight = 18.0

// GameOverScene shows the final score, the level reached and the top-10 table.
// R plays again with the same name, Enter or Esc returns to name entry.
type GameOverScene struct {
	deps    Deps
	params  game.SceneParams
	scores  []game.Score
	ownRank int // index of the finished session in scores, -1 if it did not place
}

// NewGameOverScene creates the game over screen for a finished session.
// The session's score has already been saved by the game loop.
func NewGameOverScene(deps Deps, params game.SceneParams) *GameOverScene {
	scores := deps.Scores.LoadScores()
	return &GameOverScene{
		deps:    deps,
		params:  params,
		scores:  scores,
		ownRank: findRank(scores, params.Username, params.FinalScore),
	}
}

// findRank returns the index of the first entry matching username and score, or -1.
func findRank(scores []game.Score, username string, score int) int {
	for i, entry := range scores {
		if entry.Username == username && entry.Score == score {
			return i
		}
	}
	return -1
}

// Update handles the restart and back actions.
func (s *GameOverScene) Update(deltaTime float64) {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyR):
		s.playAgain()
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		s.deps.SceneManager.Show(game.SceneNameEntry, game.SceneParams{Username: s.params.Username})
	}

	if pressed, _, _ := utils.IsJustTouchedOrClicked(); pressed {
		s.playAgain()
	}
}

func (s *GameOverScene) playAgain() {
	log.Printf("[GameOverScene] Restart for %q", s.params.Username)
	s.deps.SceneManager.Show(game.ScenePlay, game.SceneParams{Username: s.params.Username})
}

// Draw renders the summary and the scoreboard.
func (s *GameOverScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	face := utils.DefaultFace()
	cx := float64(config.GameWindowWidth) / 2

	utils.DrawCenteredText(screen, "GAME OVER", face, cx, 60, colorDanger)
	utils.DrawCenteredText(screen, s.params.Username, face, cx, 90, colorText)
	utils.DrawCenteredText(screen, fmt.Sprintf("Final score: %d", s.params.FinalScore), face, cx, 115, colorAccent)
	utils.DrawCenteredText(screen, fmt.Sprintf("Level reached: %d", s.params.FinalLevel), face, cx, 135, colorText)
	if s.ownRank == 0 && s.params.FinalScore > 0 {
		utils.DrawCenteredText(screen, "New high score!", face, cx, 160, colorAccent)
	}

	utils.DrawCenteredText(screen, "TOP 10", face, cx, 200, colorText)
	drawScoreTable(screen, s.scores, cx, 225, s.ownRank)

	hint := "R: play again   Enter: change player"
	if utils.IsMobile() {
		hint = "Tap to play again"
	}
	utils.DrawCenteredText(screen, hint, face, cx, float64(config.GameWindowHeight)-50, colorDim)
}

// drawScoreTable draws rank, name and score rows centered on cx; row highlight is skipped when < 0.
func drawScoreTable(screen *ebiten.Image, scores []game.Score, cx, y float64, highlight int) {
	face := utils.DefaultFace()
	const tableWidth = 300.0
	left := cx - tableWidth/2

	for i, entry := range scores {
		rowY := y + float64(i)*scoreRowHeight
		clr := colorText
		if i == highlight {
			fillRect(screen, left-6, rowY-3, tableWidth+12, scoreRowHeight, colorHighlight)
			clr = colorAccent
		}
		utils.DrawText(screen, fmt.Sprintf("%2d.", i+1), face, left, rowY, colorDim)
		utils.DrawText(screen, entry.Username, face, left+36, rowY, clr)
		scoreText := fmt.Sprintf("%d", entry.Score)
		utils.DrawText(screen, scoreText, face, left+tableWidth-utils.MeasureText(scoreText, face), rowY, clr)
	}
}
