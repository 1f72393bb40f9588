package systems

import (
	"log"
	"time"

	"github.com/decker502/missilemath/pkg/config"
	"github.com/decker502/missilemath/pkg/ecs"
	"github.com/decker502/missilemath/pkg/entities"
	"github.com/decker502/missilemath/pkg/game"
	"github.com/decker502/missilemath/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Intent 玩家意图
type Intent int

const (
	IntentMoveLeft Intent = iota
	IntentMoveRight
	IntentFire
	IntentToggleMute
	IntentExit
	IntentRestart
)

func (i Intent) String() string {
	switch i {
	case IntentMoveLeft:
		return "move-left"
	case IntentMoveRight:
		return "move-right"
	case IntentFire:
		return "fire"
	case IntentToggleMute:
		return "toggle-mute"
	case IntentExit:
		return "exit"
	case IntentRestart:
		return "restart"
	default:
		return "unknown"
	}
}

// keyBindings 键位映射
var keyBindings = []struct {
	key    ebiten.Key
	intent Intent
}{
	{ebiten.KeyArrowLeft, IntentMoveLeft},
	{ebiten.KeyA, IntentMoveLeft},
	{ebiten.KeyArrowRight, IntentMoveRight},
	{ebiten.KeyD, IntentMoveRight},
	{ebiten.KeyArrowUp, IntentFire},
	{ebiten.KeyW, IntentFire},
	{ebiten.KeySpace, IntentFire},
	{ebiten.KeyM, IntentToggleMute},
	{ebiten.KeyEscape, IntentExit},
	{ebiten.KeyR, IntentRestart},
}

// InputSystem 处理玩家意图
//
// 意图在帧之间排队，在下一个 tick 开始时统一处理，
// 因此输入不会与 tick 内的读-改-写交错
type InputSystem struct {
	entityManager *ecs.EntityManager
	cfg           *config.GameConfig
	engine        *game.ScoringEngine
	audio         game.AudioPlayer
	queue         []Intent
}

// NewInputSystem 创建输入系统
//
// 参数:
//   - em: 实体管理器（创建炮弹）
//   - cfg: 游戏配置
//   - engine: 计分引擎（移动和开火都是会话事件）
//   - audio: 音频播放器（开火音效）
func NewInputSystem(em *ecs.EntityManager, cfg *config.GameConfig, engine *game.ScoringEngine, audio game.AudioPlayer) *InputSystem {
	return &InputSystem{
		entityManager: em,
		cfg:           cfg,
		engine:        engine,
		audio:         audio,
	}
}

// PollKeyboard 读取本帧刚按下的键并加入队列
func (s *InputSystem) PollKeyboard() {
	for _, binding := range keyBindings {
		if inpututil.IsKeyJustPressed(binding.key) {
			s.Push(binding.intent)
		}
	}
}

// PollPointer 读取本帧的点击或触摸
// 屏幕左三分之一左移，右三分之一右移，中间开火
func (s *InputSystem) PollPointer() {
	if pressed, x, _ := utils.IsJustTouchedOrClicked(); pressed {
		s.Push(TapIntent(x))
	}
}

// TapIntent 将点击位置映射为意图
func TapIntent(x int) Intent {
	switch utils.ZoneForX(x, config.GameWindowWidth) {
	case utils.TapZoneLeft:
		return IntentMoveLeft
	case utils.TapZoneRight:
		return IntentMoveRight
	default:
		return IntentFire
	}
}

// Push 加入一个意图
func (s *InputSystem) Push(intent Intent) {
	s.queue = append(s.queue, intent)
}

// Drain 取出所有排队的意图
func (s *InputSystem) Drain() []Intent {
	intents := s.queue
	s.queue = nil
	return intents
}

// Apply 应用移动或开火意图
//
// 参数:
//   - session: 当前会话
//   - intent: 意图
//   - now: 当前虚拟时间（开火冷却）
//
// 返回:
//   - game.Session: 新会话
//   - bool: 意图是否属于本系统（静音、退出、重开由调用方处理）
func (s *InputSystem) Apply(session game.Session, intent Intent, now time.Duration) (game.Session, bool) {
	switch intent {
	case IntentMoveLeft:
		session, _ = s.engine.Apply(session, game.TankMoved(-1))
		return session, true
	case IntentMoveRight:
		session, _ = s.engine.Apply(session, game.TankMoved(1))
		return session, true
	case IntentFire:
		return s.fire(session, now), true
	default:
		return session, false
	}
}

// fire 开火：游戏结束、没有目标或冷却中时拒绝
// 炮弹记录发射时刻的坦克列和目标答案
func (s *InputSystem) fire(session game.Session, now time.Duration) game.Session {
	next, out := s.engine.Apply(session, game.ShotFired(now))
	if !out.Applied {
		return session
	}

	if _, err := entities.NewPlayerShot(s.entityManager, s.cfg, next.TankColumn, next.TargetAnswer); err != nil {
		log.Printf("[InputSystem] Failed to create shot: %v", err)
		return session
	}
	s.audio.Play(game.SoundShoot)
	return next
}
