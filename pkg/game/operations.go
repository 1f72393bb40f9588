package game

import (
	"fmt"
	"math/rand/v2"
)

// Operation 一道算术题
type Operation struct {
	Question string
	Answer   int
}

// Tier 题目难度档位
type Tier int

const (
	// TierAddition 两个 [0,9] 的数相加
	TierAddition Tier = iota + 1
	// TierAddSub [0,19] 的加法或减法，运算符等概率
	TierAddSub
	// TierMultiplication [0,11] 的乘法
	TierMultiplication
	// TierHardcore 四则运算，第一个数 [0,99]，第二个数 [1,20]
	TierHardcore
)

// 运算符文本
const (
	opAdd = "+"
	opSub = "-"
	opMul = "×"
	opDiv = "÷"
)

var hardcoreOperators = [...]string{opAdd, opSub, opMul, opDiv}

// QuestionGenerator 按等级生成算术题
type QuestionGenerator struct {
	rng           *rand.Rand
	hardcoreLevel int
}

// NewQuestionGenerator 创建题目生成器
//
// 参数：
//   - rng: 随机源（测试时传入固定种子）
//   - hardcoreLevel: 进入四则运算档位的等级
func NewQuestionGenerator(rng *rand.Rand, hardcoreLevel int) *QuestionGenerator {
	return &QuestionGenerator{
		rng:           rng,
		hardcoreLevel: hardcoreLevel,
	}
}

// TierForLevel 返回等级对应的题目档位
// 1-2 级加法，3-4 级加减法，5 级到硬核等级之前为乘法，之后为四则运算
func (g *QuestionGenerator) TierForLevel(level int) Tier {
	switch {
	case level >= g.hardcoreLevel:
		return TierHardcore
	case level <= 2:
		return TierAddition
	case level <= 4:
		return TierAddSub
	default:
		return TierMultiplication
	}
}

// Generate 为指定等级生成一道题
func (g *QuestionGenerator) Generate(level int) Operation {
	switch g.TierForLevel(level) {
	case TierAddition:
		return binary(g.rng.IntN(10), opAdd, g.rng.IntN(10))
	case TierAddSub:
		a, b := g.rng.IntN(20), g.rng.IntN(20)
		if g.rng.IntN(2) == 0 {
			return binary(a, opAdd, b)
		}
		return binary(a, opSub, b)
	case TierMultiplication:
		return binary(g.rng.IntN(12), opMul, g.rng.IntN(12))
	default:
		// 第二个数从 1 开始，除法永远有定义
		a := g.rng.IntN(100)
		b := g.rng.IntN(20) + 1
		return binary(a, hardcoreOperators[g.rng.IntN(len(hardcoreOperators))], b)
	}
}

// binary 组装题目文本并计算答案
// 整数除法向零截断
func binary(a int, op string, b int) Operation {
	var answer int
	switch op {
	case opAdd:
		answer = a + b
	case opSub:
		answer = a - b
	case opMul:
		answer = a * b
	case opDiv:
		answer = a / b
	}
	return Operation{
		Question: fmt.Sprintf("%d%s%d", a, op, b),
		Answer:   answer,
	}
}
