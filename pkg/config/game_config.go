package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// GameConfig 游戏数值配置
// 所有数值在会话构造时注入，运行期间只读
//
// 坐标约定：
//   - 战场为逻辑坐标系，左上角为原点，Y 轴向下
//   - 敌方导弹的 Top 表示碰撞盒上边缘，玩家炮弹的 Bottom 表示距战场底部的距离
type GameConfig struct {
	// 坦克与列
	TankPositions []float64 `yaml:"tankPositions"` // 各列中心的 X 坐标（有序）
	WaveSize      int       `yaml:"waveSize"`      // 每波导弹数量

	// 计分与等级
	PointsPerLevel   int `yaml:"pointsPerLevel"`   // 每级所需分数
	PointsPerCorrect int `yaml:"pointsPerCorrect"` // 命中正确答案加分
	PenaltyIncorrect int `yaml:"penaltyIncorrect"` // 命中错误答案扣分
	HealthMax        int `yaml:"healthMax"`        // 最大生命值
	DamagePerMiss    int `yaml:"damagePerMiss"`    // 错误命中/导弹逃逸扣血
	HardcoreLevel    int `yaml:"hardcoreLevel"`    // 进入硬核模式的等级
	DuplicateRetries int `yaml:"duplicateRetries"` // 每个槽位避免重复题目的最大尝试次数

	// 速度状态（递减 / 硬核模式下递增）
	BaseSpeed              float64 `yaml:"baseSpeed"`
	LevelSpeedMultiplier   float64 `yaml:"levelSpeedMultiplier"`
	SpeedDecayFactor       float64 `yaml:"speedDecayFactor"`
	MinSpeed               float64 `yaml:"minSpeed"`
	HardcoreSpeedIncrement float64 `yaml:"hardcoreSpeedIncrement"`

	// 运动
	TickInterval        time.Duration `yaml:"tickInterval"`        // 固定 tick 周期
	EnemyStep           float64       `yaml:"enemyStep"`           // 1 级时敌方导弹每 tick 下落距离
	LevelMotionStep     float64       `yaml:"levelMotionStep"`     // 每升一级的下落速度增幅
	HardcoreMotionBoost float64       `yaml:"hardcoreMotionBoost"` // 硬核模式下落速度倍数
	ShotStep            float64       `yaml:"shotStep"`            // 玩家炮弹每 tick 上升距离

	// 战场几何
	FieldWidth    float64 `yaml:"fieldWidth"`
	FieldHeight   float64 `yaml:"fieldHeight"`
	MissileWidth  float64 `yaml:"missileWidth"`
	MissileHeight float64 `yaml:"missileHeight"`
	ShotWidth     float64 `yaml:"shotWidth"`
	ShotHeight    float64 `yaml:"shotHeight"`
	MissileTop    float64 `yaml:"missileTop"` // 导弹生成时的 Top
	EscapeLine    float64 `yaml:"escapeLine"` // Top 超过此值视为逃逸
	ShotBottom    float64 `yaml:"shotBottom"` // 炮弹生成时的 Bottom

	// 延迟
	FireCooldown      time.Duration `yaml:"fireCooldown"`
	SettleDelay       time.Duration `yaml:"settleDelay"`       // 波次清空后到下一波生成
	InitialSpawnDelay time.Duration `yaml:"initialSpawnDelay"` // 开局到第一波生成
	LevelUpBanner     time.Duration `yaml:"levelUpBanner"`
	GameOverDelay     time.Duration `yaml:"gameOverDelay"`
	ExplosionDuration time.Duration `yaml:"explosionDuration"`
	PenaltyDuration   time.Duration `yaml:"penaltyDuration"`
}

// DefaultGameConfig 返回默认配置
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		TankPositions:    []float64{50, 150, 250, 350, 450},
		WaveSize:         5,
		PointsPerLevel:   2500,
		PointsPerCorrect: 100,
		PenaltyIncorrect: 50,
		HealthMax:        100,
		DamagePerMiss:    20,
		HardcoreLevel:    10,
		DuplicateRetries: 10,

		BaseSpeed:              120,
		LevelSpeedMultiplier:   0.9,
		SpeedDecayFactor:       0.98,
		MinSpeed:               80,
		HardcoreSpeedIncrement: 1,

		TickInterval:        25 * time.Millisecond,
		EnemyStep:           0.8,
		LevelMotionStep:     0.15,
		HardcoreMotionBoost: 1.5,
		ShotStep:            18,

		FieldWidth:    500,
		FieldHeight:   600,
		MissileWidth:  48,
		MissileHeight: 48,
		ShotWidth:     4,
		ShotHeight:    16,
		MissileTop:    80,
		EscapeLine:    500,
		ShotBottom:    70,

		FireCooldown:      200 * time.Millisecond,
		SettleDelay:       1200 * time.Millisecond,
		InitialSpawnDelay: 800 * time.Millisecond,
		LevelUpBanner:     1500 * time.Millisecond,
		GameOverDelay:     2000 * time.Millisecond,
		ExplosionDuration: 500 * time.Millisecond,
		PenaltyDuration:   1000 * time.Millisecond,
	}
}

// LoadGameConfig 从 YAML 文件加载配置
// 文件中未出现的字段保留默认值
//
// 参数：
//   - path: 配置文件路径
//
// 返回：
//   - *GameConfig: 合并默认值后的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadGameConfig(path string) (*GameConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config %s: %w", path, err)
	}

	cfg := DefaultGameConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML from %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid game config in %s: %w", path, err)
	}

	return cfg, nil
}

// Validate 校验配置的合法性
func (c *GameConfig) Validate() error {
	if len(c.TankPositions) == 0 {
		return fmt.Errorf("tankPositions must not be empty")
	}
	for i := 1; i < len(c.TankPositions); i++ {
		if c.TankPositions[i] <= c.TankPositions[i-1] {
			return fmt.Errorf("tankPositions must be strictly increasing, got %v", c.TankPositions)
		}
	}
	if c.WaveSize < 1 || c.WaveSize > len(c.TankPositions) {
		return fmt.Errorf("waveSize must be in [1, %d], got %d", len(c.TankPositions), c.WaveSize)
	}
	if c.PointsPerLevel <= 0 {
		return fmt.Errorf("pointsPerLevel must be positive, got %d", c.PointsPerLevel)
	}
	if c.HealthMax <= 0 {
		return fmt.Errorf("healthMax must be positive, got %d", c.HealthMax)
	}
	if c.DamagePerMiss <= 0 {
		return fmt.Errorf("damagePerMiss must be positive, got %d", c.DamagePerMiss)
	}
	if c.HardcoreLevel < 2 {
		return fmt.Errorf("hardcoreLevel must be at least 2, got %d", c.HardcoreLevel)
	}
	if c.DuplicateRetries < 1 {
		return fmt.Errorf("duplicateRetries must be at least 1, got %d", c.DuplicateRetries)
	}
	if c.SpeedDecayFactor <= 0 || c.SpeedDecayFactor > 1 {
		return fmt.Errorf("speedDecayFactor must be in (0, 1], got %v", c.SpeedDecayFactor)
	}
	if c.MinSpeed < 0 || c.MinSpeed > c.BaseSpeed {
		return fmt.Errorf("minSpeed must be in [0, baseSpeed], got %v", c.MinSpeed)
	}
	if c.TickInterval <= 0 {
		return fmt.Errorf("tickInterval must be positive, got %v", c.TickInterval)
	}
	if c.EscapeLine <= c.MissileTop {
		return fmt.Errorf("escapeLine (%v) must be below missileTop (%v)", c.EscapeLine, c.MissileTop)
	}
	if c.FireCooldown < 0 {
		return fmt.Errorf("fireCooldown cannot be negative, got %v", c.FireCooldown)
	}
	return nil
}

// Columns 返回列数
func (c *GameConfig) Columns() int {
	return len(c.TankPositions)
}

// CollisionRadius 返回碰撞半径（敌方导弹宽度的一半）
func (c *GameConfig) CollisionRadius() float64 {
	return c.MissileWidth / 2
}

// EnemyStepForLevel 返回指定等级下敌方导弹每 tick 的下落距离
// 倍率为 1 + (level-1)*LevelMotionStep，硬核模式再乘以 HardcoreMotionBoost
func (c *GameConfig) EnemyStepForLevel(level int) float64 {
	step := c.EnemyStep * (1 + float64(level-1)*c.LevelMotionStep)
	if level >= c.HardcoreLevel {
		step *= c.HardcoreMotionBoost
	}
	return step
}
