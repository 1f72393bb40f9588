package entities

import (
	"fmt"

	"github.com/decker502/missilemath/pkg/components"
	"github.com/decker502/missilemath/pkg/config"
	"github.com/decker502/missilemath/pkg/ecs"
)

// NewEnemyMissile 创建敌方导弹实体
// 导弹在指定列的顶部生成，携带一道算术题，每 tick 向下移动
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置（列坐标、尺寸、生成高度）
//   - column: 所在列，必须在 [0, 列数) 内
//   - question: 题目文本
//   - answer: 题目答案
//   - wave: 所属波次编号
//
// 返回:
//   - ecs.EntityID: 创建的导弹实体ID，如果失败返回 0
//   - error: 如果创建失败返回错误信息
func NewEnemyMissile(em *ecs.EntityManager, cfg *config.GameConfig, column int, question string, answer int, wave int) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if column < 0 || column >= cfg.Columns() {
		return 0, fmt.Errorf("column %d out of range [0, %d)", column, cfg.Columns())
	}

	entityID := em.CreateEntity()

	// 位置为中心点，Top 对齐生成线
	em.AddComponent(entityID, &components.PositionComponent{
		X: cfg.TankPositions[column],
		Y: cfg.MissileTop + cfg.MissileHeight/2,
	})

	em.AddComponent(entityID, &components.CollisionComponent{
		Width:  cfg.MissileWidth,
		Height: cfg.MissileHeight,
	})

	em.AddComponent(entityID, &components.EnemyMissileComponent{
		Column:   column,
		Question: question,
		Answer:   answer,
		Wave:     wave,
	})

	return entityID, nil
}

// NewPlayerShot 创建玩家炮弹实体
// 炮弹从坦克所在列发射，以恒定速度向上移动，携带发射时刻的目标答案
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置
//   - column: 坦克所在列
//   - answer: 发射时刻的目标答案
//
// 返回:
//   - ecs.EntityID: 创建的炮弹实体ID，如果失败返回 0
//   - error: 如果创建失败返回错误信息
func NewPlayerShot(em *ecs.EntityManager, cfg *config.GameConfig, column int, answer int) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if column < 0 || column >= cfg.Columns() {
		return 0, fmt.Errorf("column %d out of range [0, %d)", column, cfg.Columns())
	}

	entityID := em.CreateEntity()

	em.AddComponent(entityID, &components.PositionComponent{
		X: cfg.TankPositions[column],
		Y: cfg.FieldHeight - cfg.ShotBottom - cfg.ShotHeight/2,
	})

	em.AddComponent(entityID, &components.VelocityComponent{
		VX: 0,
		VY: -cfg.ShotStep,
	})

	em.AddComponent(entityID, &components.CollisionComponent{
		Width:  cfg.ShotWidth,
		Height: cfg.ShotHeight,
	})

	em.AddComponent(entityID, &components.PlayerShotComponent{
		Column: column,
		Answer: answer,
	})

	return entityID, nil
}
