package systems

import (
	"fmt"
	"log"
	"math/rand/v2"
	"slices"

	"github.com/decker502/missilemath/pkg/config"
	"github.com/decker502/missilemath/pkg/ecs"
	"github.com/decker502/missilemath/pkg/entities"
	"github.com/decker502/missilemath/pkg/game"
)

// Wave 一波导弹的生成结果
type Wave struct {
	Number       int
	Missiles     []ecs.EntityID
	Questions    []string
	TargetAnswer int
	Duplicates   int // 重试次数耗尽后接受的重复题目数
}

// SpawnSystem 生成导弹波次
//
// 职责：
//   - 按等级生成题目，同一波内以及与场上剩余题目不重复（有限次重试）
//   - 为每道题创建导弹实体
//   - 均匀随机选择一枚导弹的答案作为目标答案
type SpawnSystem struct {
	em        *ecs.EntityManager
	cfg       *config.GameConfig
	rng       *rand.Rand
	generator *game.QuestionGenerator
}

// NewSpawnSystem 创建波次生成系统
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置
//   - rng: 随机源，题目生成和目标选择共用
func NewSpawnSystem(em *ecs.EntityManager, cfg *config.GameConfig, rng *rand.Rand) *SpawnSystem {
	return &SpawnSystem{
		em:        em,
		cfg:       cfg,
		rng:       rng,
		generator: game.NewQuestionGenerator(rng, cfg.HardcoreLevel),
	}
}

// BuildQuestions 为一波生成 WaveSize 道题
//
// 每个槽位最多尝试 DuplicateRetries 次，题目与本波已有题目或 excluded 重复时重抽；
// 次数耗尽后接受最后一次的结果
//
// 返回:
//   - []game.Operation: 生成的题目
//   - int: 接受的重复题目数
func (s *SpawnSystem) BuildQuestions(level int, excluded map[string]struct{}) ([]game.Operation, int) {
	ops := make([]game.Operation, 0, s.cfg.WaveSize)
	used := make(map[string]struct{}, s.cfg.WaveSize)
	duplicates := 0

	for range s.cfg.WaveSize {
		var op game.Operation
		unique := false
		for attempt := 0; attempt < s.cfg.DuplicateRetries; attempt++ {
			op = s.generator.Generate(level)
			_, inWave := used[op.Question]
			_, inPlay := excluded[op.Question]
			if !inWave && !inPlay {
				unique = true
				break
			}
		}
		if !unique {
			duplicates++
		}
		used[op.Question] = struct{}{}
		ops = append(ops, op)
	}

	return ops, duplicates
}

// columns 返回本波使用的列（升序）
// 波次大小等于列数时每列一枚
func (s *SpawnSystem) columns() []int {
	n := s.cfg.Columns()
	if s.cfg.WaveSize >= n {
		cols := make([]int, n)
		for i := range cols {
			cols[i] = i
		}
		return cols
	}
	cols := s.rng.Perm(n)[:s.cfg.WaveSize]
	slices.Sort(cols)
	return cols
}

// SpawnWave 生成一波导弹实体并选择目标答案
//
// 参数:
//   - level: 当前等级
//   - number: 波次编号
//   - excluded: 仍在场上的题目
//
// 返回:
//   - Wave: 生成结果
//   - error: 实体创建失败时返回错误
func (s *SpawnSystem) SpawnWave(level, number int, excluded map[string]struct{}) (Wave, error) {
	ops, duplicates := s.BuildQuestions(level, excluded)
	cols := s.columns()

	wave := Wave{
		Number:     number,
		Missiles:   make([]ecs.EntityID, 0, len(ops)),
		Questions:  make([]string, 0, len(ops)),
		Duplicates: duplicates,
	}

	for i, op := range ops {
		id, err := entities.NewEnemyMissile(s.em, s.cfg, cols[i], op.Question, op.Answer, number)
		if err != nil {
			for _, created := range wave.Missiles {
				s.em.DestroyEntity(created)
			}
			return Wave{}, fmt.Errorf("failed to spawn missile %d of wave %d: %w", i, number, err)
		}
		wave.Missiles = append(wave.Missiles, id)
		wave.Questions = append(wave.Questions, op.Question)
	}

	wave.TargetAnswer = ops[s.rng.IntN(len(ops))].Answer

	if duplicates > 0 {
		log.Printf("[SpawnSystem] Wave %d accepted %d duplicate question(s)", number, duplicates)
	}
	log.Printf("[SpawnSystem] Wave %d spawned: level=%d questions=%v target=%d", number, level, wave.Questions, wave.TargetAnswer)

	return wave, nil
}
