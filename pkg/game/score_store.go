package game

import (
	"cmp"
	"fmt"
	"log"
	"slices"
	"strings"
	"time"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// MaxScores 排行榜保留的记录数
const MaxScores = 10

// 存储路径常量
const (
	scoresObject   = "scores"
	scoresProperty = "gameScores"
)

// Score 排行榜记录
type Score struct {
	Username  string `yaml:"username"`
	Score     int    `yaml:"score"`
	Timestamp int64  `yaml:"timestamp"` // Unix 毫秒
}

// ScoreStore 排行榜存储
//
// 职责：
//   - 按分数降序保存前 10 名
//   - 数据损坏或缺失时视为空列表
//   - gdataManager 为 nil 时降级为内存存储
type ScoreStore struct {
	gdataManager *gdata.Manager
	memory       []Score          // 降级模式下的内存列表
	now          func() time.Time // 时间源（测试时替换）
}

// NewScoreStore 创建排行榜存储
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式）
func NewScoreStore(gdataManager *gdata.Manager) *ScoreStore {
	return &ScoreStore{
		gdataManager: gdataManager,
		now:          time.Now,
	}
}

// LoadScores 加载排行榜
// 返回按分数降序的列表，最多 MaxScores 条
func (ss *ScoreStore) LoadScores() []Score {
	if ss.gdataManager == nil {
		return slices.Clone(ss.memory)
	}

	if !ss.gdataManager.ObjectPropExists(scoresObject, scoresProperty) {
		return []Score{}
	}

	data, err := ss.gdataManager.LoadObjectProp(scoresObject, scoresProperty)
	if err != nil {
		log.Printf("[ScoreStore] Error loading scores: %v", err)
		return []Score{}
	}

	var scores []Score
	if err := yaml.Unmarshal(data, &scores); err != nil {
		log.Printf("[ScoreStore] Malformed score data, treating as empty: %v", err)
		return []Score{}
	}

	return normalizeScores(scores)
}

// SaveScore 追加一条记录，重新排序并截断到前 MaxScores 名
// 用户名去除首尾空白后为空时不保存
func (ss *ScoreStore) SaveScore(username string, score int) {
	username = strings.TrimSpace(username)
	if username == "" {
		log.Printf("[ScoreStore] Username is empty, score will not be saved")
		return
	}

	scores := ss.LoadScores()
	entry := Score{
		Username:  username,
		Score:     score,
		Timestamp: ss.now().UnixMilli(),
	}
	scores = normalizeScores(append(scores, entry))

	if err := ss.store(scores); err != nil {
		log.Printf("[ScoreStore] Error saving score: %v", err)
		return
	}
	log.Printf("[ScoreStore] Score saved: %s %d", entry.Username, entry.Score)
}

// GetHighScore 返回最高分，没有记录时返回 0
func (ss *ScoreStore) GetHighScore() int {
	scores := ss.LoadScores()
	if len(scores) == 0 {
		return 0
	}
	return scores[0].Score
}

// ClearScores 清空排行榜
func (ss *ScoreStore) ClearScores() {
	if err := ss.store([]Score{}); err != nil {
		log.Printf("[ScoreStore] Error clearing scores: %v", err)
	}
}

func (ss *ScoreStore) store(scores []Score) error {
	if ss.gdataManager == nil {
		ss.memory = scores
		return nil
	}

	data, err := yaml.Marshal(scores)
	if err != nil {
		return fmt.Errorf("failed to marshal scores: %w", err)
	}
	if err := ss.gdataManager.SaveObjectProp(scoresObject, scoresProperty, data); err != nil {
		return fmt.Errorf("failed to save scores: %w", err)
	}
	return nil
}

// normalizeScores 按分数降序稳定排序并截断
// 同分时先保存的记录排在前面
func normalizeScores(scores []Score) []Score {
	slices.SortStableFunc(scores, func(a, b Score) int {
		return cmp.Compare(b.Score, a.Score)
	})
	if len(scores) > MaxScores {
		scores = scores[:MaxScores]
	}
	return scores
}
