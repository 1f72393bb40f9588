package scenes

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/decker502/missilemath/pkg/components"
	"github.com/decker502/missilemath/pkg/config"
	"github.com/decker502/missilemath/pkg/game"
	"github.com/decker502/missilemath/pkg/systems"
	"github.com/decker502/missilemath/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
)

// maxTicksPerFrame caps catch-up after a long frame.
const maxTicksPerFrame = 4

// The bitmap face only covers ASCII.
var questionLabel = strings.NewReplacer("×", "x", "÷", "/")

// PlayScene hosts one GameLoop and renders its snapshots.
//
// Ebiten calls Update at the display rate; the scene converts elapsed
// time into whole simulation ticks of cfg.TickInterval.
type PlayScene struct {
	deps        Deps
	loop        *systems.GameLoop
	accumulator time.Duration
	finished    bool // a scene switch happened inside the current frame
}

// NewPlayScene creates and starts a session for username.
func NewPlayScene(deps Deps, username string) *PlayScene {
	s := &PlayScene{deps: deps}
	s.loop = systems.NewGameLoop(deps.Config, username, deps.Audio, deps.Scores, deps.Rand)

	s.loop.SetOnGameOver(func(score, level int) {
		s.finished = true
		deps.SceneManager.Show(game.SceneGameOver, game.SceneParams{
			Username:   s.loop.Session().Username,
			FinalScore: score,
			FinalLevel: level,
		})
	})
	s.loop.SetOnExit(func() {
		s.finished = true
		deps.SceneManager.Show(game.SceneNameEntry, game.SceneParams{Username: s.loop.Session().Username})
	})

	s.loop.Start()
	return s
}

// Loop returns the underlying game loop.
func (s *PlayScene) Loop() *systems.GameLoop {
	return s.loop
}

// Update polls input and advances the simulation.
func (s *PlayScene) Update(deltaTime float64) {
	input := s.loop.Input()
	input.PollKeyboard()
	input.PollPointer()

	s.advance(time.Duration(deltaTime * float64(time.Second)))
}

// advance runs as many ticks as elapsed covers, carrying the remainder.
func (s *PlayScene) advance(elapsed time.Duration) {
	tick := s.deps.Config.TickInterval
	s.accumulator += elapsed

	for steps := 0; s.accumulator >= tick && !s.finished; steps++ {
		if steps == maxTicksPerFrame {
			log.Printf("[PlayScene] Dropping %v of simulation backlog", s.accumulator)
			s.accumulator = 0
			return
		}
		s.loop.Tick()
		s.accumulator -= tick
	}
}

// SaveOnExit records the running score when the window closes mid-session.
func (s *PlayScene) SaveOnExit() bool {
	session := s.loop.Session()
	if session.IsGameOver || session.Score <= 0 {
		return true
	}
	log.Printf("[PlayScene] Saving score %d for %q on exit", session.Score, session.Username)
	s.deps.Scores.SaveScore(session.Username, session.Score)
	return true
}

// Draw renders the field and the HUD.
func (s *PlayScene) Draw(screen *ebiten.Image) {
	snap := s.loop.Snapshot()
	cfg := s.deps.Config

	screen.Fill(colorBackground)
	s.drawField(screen, snap, cfg)
	s.drawHeader(screen, snap, cfg)
}

func (s *PlayScene) drawHeader(screen *ebiten.Image, snap systems.Snapshot, cfg *config.GameConfig) {
	face := utils.DefaultFace()
	session := snap.Session
	width := float64(config.GameWindowWidth)

	bg := colorHeader
	if snap.Hardcore {
		bg = colorHardcore
	}
	fillRect(screen, 0, 0, width, config.HeaderHeight, bg)

	utils.DrawText(screen, fmt.Sprintf("SCORE %d", session.Score), face, 12, 10, colorText)
	utils.DrawText(screen, fmt.Sprintf("BEST %d", max(session.HighScore, session.Score)), face, 12, 28, colorDim)
	utils.DrawText(screen, fmt.Sprintf("LEVEL %d", session.Level), face, 12, 46, colorText)

	barX := width - config.HealthBarWidth - 12
	utils.DrawText(screen, "HEALTH", face, barX, 10, colorText)
	healthRatio := float64(session.Health) / float64(cfg.HealthMax)
	healthColor := colorHealth
	if healthRatio <= 0.4 {
		healthColor = colorDanger
	}
	drawBar(screen, barX, 28, config.HealthBarWidth, config.HealthBarHeight, healthRatio, healthColor)

	if snap.Muted {
		utils.DrawText(screen, "MUTED", face, width-60, 46, colorDim)
	}

	target := "TARGET ?"
	if session.HasTarget {
		target = fmt.Sprintf("TARGET %d", session.TargetAnswer)
	}
	utils.DrawCenteredText(screen, target, face, width/2, 24, colorAccent)

	drawBar(screen, 0, config.HeaderHeight-config.ExperienceBarHeight, width, config.ExperienceBarHeight, snap.ExperienceProgress, colorExperience)
}

func (s *PlayScene) drawField(screen *ebiten.Image, snap systems.Snapshot, cfg *config.GameConfig) {
	face := utils.DefaultFace()

	// escape line at the missiles' bottom edge when they leave
	_, lineY := config.FieldToScreen(0, cfg.EscapeLine+cfg.MissileHeight)
	fillRect(screen, 0, lineY, cfg.FieldWidth, 1, colorEscapeLine)

	for _, m := range snap.Missiles {
		x, y := config.FieldToScreen(m.X, m.Y)
		left, top := x-cfg.MissileWidth/2, y-cfg.MissileHeight/2
		fillRect(screen, left, top, cfg.MissileWidth, cfg.MissileHeight, colorMissile)
		strokeRect(screen, left, top, cfg.MissileWidth, cfg.MissileHeight, 1, colorMissileRim)
		s.drawQuestion(screen, m.Question, x, y)
	}

	for _, shot := range snap.Shots {
		x, y := config.FieldToScreen(shot.X, shot.Y)
		fillRect(screen, x-cfg.ShotWidth/2, y-cfg.ShotHeight/2, cfg.ShotWidth, cfg.ShotHeight, colorShot)
	}

	s.drawTank(screen, snap.Session.TankColumn, cfg)

	for _, e := range snap.Effects {
		x, y := config.FieldToScreen(e.X, e.Y)
		switch e.Type {
		case components.EffectExplosion:
			radius := cfg.MissileWidth/4 + cfg.MissileWidth/2*e.Progress
			fillRect(screen, x-radius, y-radius, radius*2, radius*2, fade(colorExplosion, 1-e.Progress))
		case components.EffectPenalty:
			utils.DrawCenteredText(screen, e.Text, face, x, y-30*e.Progress, fade(colorDanger, 1-e.Progress))
		}
	}

	cx := cfg.FieldWidth / 2
	_, midY := config.FieldToScreen(0, cfg.FieldHeight/2)
	if snap.Session.LevelUpMessage != "" {
		utils.DrawCenteredText(screen, snap.Session.LevelUpMessage, face, cx, midY-40, colorAccent)
	}
	if snap.Session.IsGameOver {
		utils.DrawCenteredText(screen, "GAME OVER", face, cx, midY, colorDanger)
	}
}

// drawQuestion centers the question label on the missile; long labels are split on spaces.
func (s *PlayScene) drawQuestion(screen *ebiten.Image, question string, x, y float64) {
	face := utils.DefaultFace()
	lines := utils.WrapText(questionLabel.Replace(question), face, s.deps.Config.MissileWidth+16)
	top := y - float64(len(lines))*14/2
	for i, line := range lines {
		utils.DrawCenteredText(screen, line, face, x, top+float64(i)*14, colorText)
	}
}

func (s *PlayScene) drawTank(screen *ebiten.Image, column int, cfg *config.GameConfig) {
	if column < 0 || column >= len(cfg.TankPositions) {
		return
	}
	x, bottom := config.FieldToScreen(cfg.TankPositions[column], cfg.FieldHeight-config.TankBottomMargin)
	top := bottom - config.TankHeight
	fillRect(screen, x-config.TankWidth/2, top+config.TankHeight/3, config.TankWidth, config.TankHeight*2/3, colorTank)
	fillRect(screen, x-3, top, 6, config.TankHeight/3, colorTank)
}
