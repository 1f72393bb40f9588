package components

// EffectType 视觉反馈类型
type EffectType int

const (
	// EffectExplosion 命中爆炸，位于被击中导弹的位置
	EffectExplosion EffectType = iota
	// EffectPenalty 错误命中的扣分提示，位于炮弹所在列
	EffectPenalty
)

// EffectComponent 短暂存在的视觉反馈
// 只供表现层读取，不参与模拟
type EffectComponent struct {
	Type EffectType
	Text string // 扣分提示文本，如 "-50"
}
