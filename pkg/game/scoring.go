package game

import (
	"fmt"
	"math"
	"time"

	"github.com/decker502/missilemath/pkg/config"
)

// EventType 会话事件类型
type EventType int

const (
	// EventCorrectHit 炮弹答案与被击中导弹答案相同
	EventCorrectHit EventType = iota
	// EventIncorrectHit 炮弹答案与被击中导弹答案不同
	EventIncorrectHit
	// EventMissileEscaped 导弹越过底线
	EventMissileEscaped
	// EventWaveSpawned 新一波导弹生成
	EventWaveSpawned
	// EventWaveCleared 场上导弹全部消失但没有正确命中（错误命中或逃逸）
	EventWaveCleared
	// EventTargetChanged 目标答案被重新选定
	EventTargetChanged
	// EventTankMoved 坦克左右移动
	EventTankMoved
	// EventShotFired 玩家尝试开火
	EventShotFired
	// EventBannerExpired 升级提示到期
	EventBannerExpired
)

// Event 会话事件
// 各字段只在对应类型下有意义
type Event struct {
	Type      EventType
	Question  string        // EventMissileEscaped
	Questions []string      // EventWaveSpawned
	Answer    int           // EventWaveSpawned / EventTargetChanged
	HasAnswer bool          // EventTargetChanged
	Delta     int           // EventTankMoved
	Now       time.Duration // EventShotFired
}

// CorrectHit 构造正确命中事件
func CorrectHit() Event { return Event{Type: EventCorrectHit} }

// IncorrectHit 构造错误命中事件
func IncorrectHit() Event { return Event{Type: EventIncorrectHit} }

// MissileEscaped 构造导弹逃逸事件
func MissileEscaped(question string) Event {
	return Event{Type: EventMissileEscaped, Question: question}
}

// WaveSpawned 构造新波次事件
func WaveSpawned(questions []string, target int) Event {
	return Event{Type: EventWaveSpawned, Questions: questions, Answer: target, HasAnswer: true}
}

// WaveCleared 构造波次耗尽事件
func WaveCleared() Event { return Event{Type: EventWaveCleared} }

// TargetChanged 构造目标变更事件，ok 为 false 表示当前没有目标
func TargetChanged(answer int, ok bool) Event {
	return Event{Type: EventTargetChanged, Answer: answer, HasAnswer: ok}
}

// TankMoved 构造坦克移动事件，delta 为 -1 或 +1
func TankMoved(delta int) Event { return Event{Type: EventTankMoved, Delta: delta} }

// ShotFired 构造开火事件
func ShotFired(now time.Duration) Event { return Event{Type: EventShotFired, Now: now} }

// BannerExpired 构造升级提示到期事件
func BannerExpired() Event { return Event{Type: EventBannerExpired} }

// Outcome 一次事件应用的附带结果
type Outcome struct {
	Applied      bool // false 表示事件被忽略（游戏已结束、冷却中等）
	LevelsGained int  // 本次事件导致的升级次数
	Terminated   bool // 本次事件使游戏结束（每局只会出现一次）
}

// ScoringEngine 计分与等级状态机
// Apply 是纯函数：同样的输入总是得到同样的输出
type ScoringEngine struct {
	cfg *config.GameConfig
}

// NewScoringEngine 创建计分引擎
func NewScoringEngine(cfg *config.GameConfig) *ScoringEngine {
	return &ScoringEngine{cfg: cfg}
}

// Apply 将事件应用到会话上
//
// 游戏结束后所有事件都是空操作
//
// 参数：
//   - s: 当前会话
//   - ev: 事件
//
// 返回：
//   - Session: 新会话
//   - Outcome: 升级、结束等附带结果
func (e *ScoringEngine) Apply(s Session, ev Event) (Session, Outcome) {
	if s.IsGameOver {
		return s, Outcome{}
	}

	out := Outcome{Applied: true}

	switch ev.Type {
	case EventCorrectHit:
		s = s.withQuestions()
		s.Score += e.cfg.PointsPerCorrect
		clear(s.Questions)
		s.HasTarget = false
		s.WavePending = true
		if s.Level < e.cfg.HardcoreLevel {
			s.MissileSpeed = math.Max(e.cfg.MinSpeed, s.MissileSpeed*e.cfg.SpeedDecayFactor)
		} else {
			s.MissileSpeed += e.cfg.HardcoreSpeedIncrement
		}
		s, out.LevelsGained = e.checkLevelUp(s)

	case EventIncorrectHit:
		s.Score = max(0, s.Score-e.cfg.PenaltyIncorrect)
		s, out.Terminated = e.damage(s)

	case EventMissileEscaped:
		s = s.withQuestions()
		if n := s.Questions[ev.Question]; n > 1 {
			s.Questions[ev.Question] = n - 1
		} else {
			delete(s.Questions, ev.Question)
		}
		s, out.Terminated = e.damage(s)

	case EventWaveSpawned:
		s = s.withQuestions()
		for _, q := range ev.Questions {
			s.Questions[q]++
		}
		s.TargetAnswer = ev.Answer
		s.HasTarget = true
		s.Wave++
		s.WavePending = false

	case EventWaveCleared:
		s = s.withQuestions()
		clear(s.Questions)
		s.HasTarget = false
		s.WavePending = true

	case EventTargetChanged:
		s.TargetAnswer = ev.Answer
		s.HasTarget = ev.HasAnswer

	case EventTankMoved:
		column := min(max(s.TankColumn+ev.Delta, 0), e.cfg.Columns()-1)
		if column == s.TankColumn {
			out.Applied = false
		}
		s.TankColumn = column

	case EventShotFired:
		if !s.HasTarget || ev.Now < s.CooldownUntil {
			return s, Outcome{}
		}
		s.CooldownUntil = ev.Now + e.cfg.FireCooldown

	case EventBannerExpired:
		s.LevelUpMessage = ""

	default:
		return s, Outcome{}
	}

	return s, out
}

// damage 扣血并检查游戏结束
func (e *ScoringEngine) damage(s Session) (Session, bool) {
	s.Health = max(0, s.Health-e.cfg.DamagePerMiss)
	if s.Health > 0 {
		return s, false
	}
	s.IsGameOver = true
	s.HasTarget = false
	s.LevelUpMessage = ""
	return s, true
}

// checkLevelUp 分数达到 level*PointsPerLevel 时升级，可连续升多级
// 硬核等级之前每级重新计算基准速度，到达硬核等级后保留当前速度，改为逐次递增
func (e *ScoringEngine) checkLevelUp(s Session) (Session, int) {
	gained := 0
	for s.Score >= s.Level*e.cfg.PointsPerLevel {
		s.Level++
		gained++
		if s.Level < e.cfg.HardcoreLevel {
			speed := e.cfg.BaseSpeed * math.Pow(e.cfg.LevelSpeedMultiplier, float64(s.Level-1))
			s.BaseLevelSpeed = speed
			s.MissileSpeed = speed
		}
	}
	if gained > 0 {
		s.LevelUpMessage = LevelUpMessage(s.Level, e.cfg.HardcoreLevel)
	}
	return s, gained
}

// LevelUpMessage 升级提示文本
func LevelUpMessage(level, hardcoreLevel int) string {
	if level >= hardcoreLevel {
		return fmt.Sprintf("LEVEL %d! CRITICAL SPEED!", level)
	}
	return fmt.Sprintf("Level %d!", level)
}
