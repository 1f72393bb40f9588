package scenes

import (
	"fmt"
	"log"
	"strings"
	"unicode"

	"github.com/decker502/missilemath/pkg/config"
	"github.com/decker502/missilemath/pkg/game"
	"github.com/decker502/missilemath/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// MaxUsernameLength is the maximum number of runes in a player name.
const MaxUsernameLength = 16

// defaultMobileUsername is used when a touch device starts without a keyboard.
const defaultMobileUsername = "Player"

// NameEntryScene asks for the player's name and shows the current scoreboard.
type NameEntryScene struct {
	deps    Deps
	name    []rune
	scores  []game.Score
	message string  // validation hint shown under the input box
	elapsed float64 // drives the caret blink
}

// NewNameEntryScene creates the name entry screen, pre-filled with username.
func NewNameEntryScene(deps Deps, username string) *NameEntryScene {
	s := &NameEntryScene{
		deps:   deps,
		scores: deps.Scores.LoadScores(),
	}
	s.name = appendNameRunes(nil, []rune(username))
	return s
}

// Name returns the name typed so far.
func (s *NameEntryScene) Name() string {
	return string(s.name)
}

// Update handles typing, submission and navigation.
func (s *NameEntryScene) Update(deltaTime float64) {
	s.elapsed += deltaTime

	s.name = appendNameRunes(s.name, ebiten.AppendInputChars(nil))
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) || repeatingKeyPressed(ebiten.KeyBackspace) {
		s.backspace()
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeyNumpadEnter):
		s.submit()
	case inpututil.IsKeyJustPressed(ebiten.KeyF1):
		s.deps.SceneManager.Show(game.SceneTutorial, game.SceneParams{Username: s.Name()})
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		log.Printf("[NameEntryScene] Exit requested")
		s.deps.SceneManager.RequestExit()
	}

	if utils.IsMobile() {
		if pressed, _, _ := utils.IsJustTouchedOrClicked(); pressed {
			if len(s.name) == 0 {
				s.name = []rune(defaultMobileUsername)
			}
			s.submit()
		}
	}
}

// submit starts a session when the trimmed name is non-empty.
func (s *NameEntryScene) submit() bool {
	username := strings.TrimSpace(s.Name())
	if username == "" {
		s.message = "Please enter a name"
		return false
	}
	s.message = ""
	log.Printf("[NameEntryScene] Starting session for %q", username)
	return s.deps.SceneManager.Show(game.ScenePlay, game.SceneParams{Username: username})
}

func (s *NameEntryScene) backspace() {
	if len(s.name) > 0 {
		s.name = s.name[:len(s.name)-1]
	}
}

// appendNameRunes appends the acceptable runes of input to name,
// stopping at MaxUsernameLength.
func appendNameRunes(name, input []rune) []rune {
	for _, r := range input {
		if len(name) >= MaxUsernameLength {
			break
		}
		if acceptNameRune(r) {
			name = append(name, r)
		}
	}
	return name
}

// acceptNameRune reports whether r may appear in a player name.
func acceptNameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == ' ' || r == '_' || r == '-'
}

// repeatingKeyPressed reports key repeat after a short hold.
func repeatingKeyPressed(key ebiten.Key) bool {
	const (
		delay    = 30
		interval = 3
	)
	d := inpututil.KeyPressDuration(key)
	return d >= delay && (d-delay)%interval == 0
}

// Draw renders the title, the input box and the scoreboard.
func (s *NameEntryScene) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	face := utils.DefaultFace()
	cx := float64(config.GameWindowWidth) / 2

	utils.DrawCenteredText(screen, "MISSILE MATH", face, cx, 70, colorAccent)
	utils.DrawCenteredText(screen, "Shoot the missile that carries the answer", face, cx, 92, colorDim)

	utils.DrawCenteredText(screen, "Enter your name:", face, cx, 150, colorText)
	boxW, boxH := 220.0, 26.0
	boxX, boxY := cx-boxW/2, 170.0
	fillRect(screen, boxX, boxY, boxW, boxH, colorHeader)
	strokeRect(screen, boxX, boxY, boxW, boxH, 1, colorDim)

	input := s.Name()
	if int(s.elapsed*2)%2 == 0 {
		input += "_"
	}
	utils.DrawText(screen, input, face, boxX+8, boxY+7, colorText)

	if s.message != "" {
		utils.DrawCenteredText(screen, s.message, face, cx, boxY+boxH+10, colorDanger)
	}

	hint := "Enter: start   F1: how to play   Esc: quit"
	if utils.IsMobile() {
		hint = "Tap to start"
	}
	utils.DrawCenteredText(screen, hint, face, cx, 240, colorDim)

	s.drawScoreboard(screen, cx, 300)
}

func (s *NameEntryScene) drawScoreboard(screen *ebiten.Image, cx, y float64) {
	face := utils.DefaultFace()
	highScore := 0
	if len(s.scores) > 0 {
		highScore = s.scores[0].Score
	}
	utils.DrawCenteredText(screen, fmt.Sprintf("High score: %d", highScore), face, cx, y, colorAccent)

	if len(s.scores) == 0 {
		utils.DrawCenteredText(screen, "No scores yet", face, cx, y+30, colorDim)
		return
	}
	drawScoreTable(screen, s.scores, cx, y+30, -1)
}
