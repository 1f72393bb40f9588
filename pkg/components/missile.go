package components

// EnemyMissileComponent 敌方导弹
// 携带一道算术题，击中时按答案数值与炮弹比较
type EnemyMissileComponent struct {
	Column   int    // 所在列（0 ~ 列数-1）
	Question string // 题目文本，如 "3+4"
	Answer   int    // 题目答案
	Wave     int    // 所属波次编号
}

// PlayerShotComponent 玩家炮弹
// Column 和 Answer 均为发射时刻的快照
type PlayerShotComponent struct {
	Column int
	Answer int
}
