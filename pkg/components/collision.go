package components

// CollisionComponent 定义实体的逻辑尺寸
// 碰撞系统以中心距离判定命中，半径取敌方导弹宽度的一半
type CollisionComponent struct {
	Width  float64 // 逻辑宽度
	Height float64 // 逻辑高度
}
