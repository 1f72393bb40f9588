package config

// 布局配置常量
// 本文件定义窗口与 HUD 的屏幕布局，战场内部使用 GameConfig 中的逻辑坐标

const (
	// GameWindowWidth 逻辑屏幕宽度，与默认战场宽度一致
	GameWindowWidth = 500

	// HeaderHeight HUD 区域高度（分数、生命、等级、经验条）
	HeaderHeight = 80

	// GameWindowHeight 逻辑屏幕高度 = HUD + 默认战场高度
	GameWindowHeight = HeaderHeight + 600

	// HealthBarWidth 生命条宽度
	HealthBarWidth = 120.0

	// HealthBarHeight 生命条高度
	HealthBarHeight = 10.0

	// ExperienceBarHeight 经验条高度（HUD 底部，横跨整个宽度）
	ExperienceBarHeight = 4.0

	// TankWidth 坦克宽度
	TankWidth = 48.0

	// TankHeight 坦克高度
	TankHeight = 40.0

	// TankBottomMargin 坦克底边距战场底部的距离
	TankBottomMargin = 20.0
)

// FieldToScreen 将战场逻辑坐标转换为屏幕坐标
// 战场位于 HUD 下方，X 不变
func FieldToScreen(x, y float64) (float64, float64) {
	return x, y + HeaderHeight
}
