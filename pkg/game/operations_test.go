package game

import (
	"math/rand/v2"
	"strconv"
	"strings"
	"testing"
)

func newTestGenerator(seed uint64) *QuestionGenerator {
	return NewQuestionGenerator(rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)), 10)
}

// parseQuestion 拆分题目文本，返回两个操作数和运算符
func parseQuestion(t *testing.T, q string) (int, string, int) {
	t.Helper()
	for _, op := range []string{opAdd, opMul, opDiv, opSub} {
		// 第一个数非负，从下标 1 开始查找避免误判
		idx := strings.Index(q[1:], op)
		if idx < 0 {
			continue
		}
		idx++
		a, errA := strconv.Atoi(q[:idx])
		b, errB := strconv.Atoi(q[idx+len(op):])
		if errA != nil || errB != nil {
			t.Fatalf("Malformed question %q", q)
		}
		return a, op, b
	}
	t.Fatalf("No operator in question %q", q)
	return 0, "", 0
}

// TestTierForLevel 等级与档位的对应关系
func TestTierForLevel(t *testing.T) {
	g := newTestGenerator(1)
	tests := []struct {
		level int
		want  Tier
	}{
		{1, TierAddition},
		{2, TierAddition},
		{3, TierAddSub},
		{4, TierAddSub},
		{5, TierMultiplication},
		{9, TierMultiplication},
		{10, TierHardcore},
		{25, TierHardcore},
	}

	for _, tt := range tests {
		if got := g.TierForLevel(tt.level); got != tt.want {
			t.Errorf("TierForLevel(%d) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

// TestGenerateRanges 每个档位的操作数范围和答案
func TestGenerateRanges(t *testing.T) {
	tests := []struct {
		name  string
		level int
		ops   string
		maxA  int
		minB  int
		maxB  int
	}{
		{"加法", 1, opAdd, 9, 0, 9},
		{"加减法", 3, opAdd + opSub, 19, 0, 19},
		{"乘法", 6, opMul, 11, 0, 11},
		{"硬核", 12, opAdd + opSub + opMul + opDiv, 99, 1, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGenerator(42)
			for range 500 {
				op := g.Generate(tt.level)
				a, sym, b := parseQuestion(t, op.Question)

				if !strings.Contains(tt.ops, sym) {
					t.Fatalf("Unexpected operator %q in %q", sym, op.Question)
				}
				if a < 0 || a > tt.maxA || b < tt.minB || b > tt.maxB {
					t.Fatalf("Operands out of range in %q", op.Question)
				}
				if want := binary(a, sym, b).Answer; op.Answer != want {
					t.Fatalf("Answer for %q: got %d, want %d", op.Question, op.Answer, want)
				}
			}
		})
	}
}

// TestLevelOneAnswers 1 级答案在 [0,18]
func TestLevelOneAnswers(t *testing.T) {
	g := newTestGenerator(7)
	for range 500 {
		op := g.Generate(1)
		if op.Answer < 0 || op.Answer > 18 {
			t.Fatalf("Answer out of range: %+v", op)
		}
	}
}

// TestBinary 运算结果，除法向零截断
func TestBinary(t *testing.T) {
	tests := []struct {
		a, b     int
		op       string
		question string
		answer   int
	}{
		{2, 3, opAdd, "2+3", 5},
		{3, 7, opSub, "3-7", -4},
		{4, 11, opMul, "4×11", 44},
		{17, 5, opDiv, "17÷5", 3},
		{0, 20, opDiv, "0÷20", 0},
	}

	for _, tt := range tests {
		got := binary(tt.a, tt.op, tt.b)
		if got.Question != tt.question || got.Answer != tt.answer {
			t.Errorf("binary(%d, %q, %d) = %+v, want {%s %d}", tt.a, tt.op, tt.b, got, tt.question, tt.answer)
		}
	}
}

// TestGenerateDeterministic 相同种子生成相同题目
func TestGenerateDeterministic(t *testing.T) {
	g1, g2 := newTestGenerator(99), newTestGenerator(99)
	for level := 1; level <= 12; level++ {
		if a, b := g1.Generate(level), g2.Generate(level); a != b {
			t.Fatalf("Level %d: %+v != %+v", level, a, b)
		}
	}
}
