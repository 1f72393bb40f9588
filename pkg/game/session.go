package game

import (
	"maps"
	"time"

	"github.com/decker502/missilemath/pkg/config"
)

// Session 一局游戏的全部可变状态
//
// Session 是值类型，所有状态转换都通过 ScoringEngine.Apply 产生新的 Session，
// 调用方持有的旧值不会被修改（Questions 在写入前复制）
type Session struct {
	Username  string
	Score     int
	HighScore int // 开局时已保存的最高分
	Health    int
	Level     int

	MissileSpeed   float64 // 当前速度状态（递减 / 硬核模式下递增）
	BaseLevelSpeed float64 // 当前等级的基准速度

	// Questions 当前仍在场上的题目及其数量
	// 重试次数耗尽时同一题目可能出现多次，按数量计
	Questions map[string]int

	TargetAnswer int
	HasTarget    bool

	TankColumn    int
	CooldownUntil time.Duration // 虚拟时间，在此之前不能开火

	Wave        int  // 已生成的波次数
	WavePending bool // 下一波已排期但尚未生成

	LevelUpMessage string
	IsGameOver     bool
}

// NewSession 创建一局新游戏
// 坦克位于中间列，生命值满，等级 1，第一波等待生成
func NewSession(cfg *config.GameConfig, username string, highScore int) Session {
	return Session{
		Username:       username,
		HighScore:      highScore,
		Health:         cfg.HealthMax,
		Level:          1,
		MissileSpeed:   cfg.BaseSpeed,
		BaseLevelSpeed: cfg.BaseSpeed,
		Questions:      make(map[string]int),
		TankColumn:     cfg.Columns() / 2,
		WavePending:    true,
	}
}

// InPlay 检查题目是否仍在场上
func (s Session) InPlay(question string) bool {
	return s.Questions[question] > 0
}

// QuestionSet 返回场上题目集合（用于生成下一波时排除）
func (s Session) QuestionSet() map[string]struct{} {
	set := make(map[string]struct{}, len(s.Questions))
	for q, n := range s.Questions {
		if n > 0 {
			set[q] = struct{}{}
		}
	}
	return set
}

// IsHardcore 是否处于硬核模式
func (s Session) IsHardcore(cfg *config.GameConfig) bool {
	return s.Level >= cfg.HardcoreLevel
}

// ExperienceProgress 当前等级内的进度 [0, 1)
func (s Session) ExperienceProgress(cfg *config.GameConfig) float64 {
	return float64(s.Score%cfg.PointsPerLevel) / float64(cfg.PointsPerLevel)
}

// withQuestions 复制题目表，保证旧 Session 不被修改
func (s Session) withQuestions() Session {
	s.Questions = maps.Clone(s.Questions)
	if s.Questions == nil {
		s.Questions = make(map[string]int)
	}
	return s
}
