package components

// PositionComponent 实体在战场中的逻辑中心坐标
// 碰撞判定只使用此坐标，与渲染层无关
type PositionComponent struct {
	X float64
	Y float64
}

// VelocityComponent 每 tick 的位移量
// 玩家炮弹向上移动，VY 为负值
type VelocityComponent struct {
	VX float64
	VY float64
}
