// simulate 无窗口运行若干局自动驾驶游戏，输出得分与等级，用于调整数值配置
//
// 用法：
//
//	go run ./cmd/simulate -sessions 20 -accuracy 0.9 -config game.yaml
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"

	"github.com/decker502/missilemath/pkg/config"
	"github.com/decker502/missilemath/pkg/game"
	"github.com/decker502/missilemath/pkg/systems"
)

var (
	verbose    = flag.Bool("verbose", false, "显示详细调试信息")
	configPath = flag.String("config", "", "游戏数值 YAML 文件（为空使用默认配置）")
	sessions   = flag.Int("sessions", 10, "模拟局数")
	accuracy   = flag.Float64("accuracy", 0.9, "自动驾驶选中正确导弹的概率 [0, 1]")
	seed       = flag.Uint64("seed", 1, "随机种子")
	maxTicks   = flag.Int("max-ticks", 200000, "每局最多运行的 tick 数")
)

// silentAudio 无声音频
type silentAudio struct {
	muted bool
}

func (a *silentAudio) Play(game.SoundEvent) {}
func (a *silentAudio) PlayBackground() {}
func (a *silentAudio) StopBackground() {}
func (a *silentAudio) IsMuted() bool { return a.muted }
func (a *silentAudio) ToggleMute() bool {
	a.muted = !a.muted
	return a.muted
}

// Result 一局模拟结果
type Result struct {
	Username string
	Score    int
	Level    int
	Ticks    int
	Finished bool // false 表示达到 max-ticks 上限
}

// runSession 运行一局直到游戏结束交接或达到 tick 上限
func runSession(cfg *config.GameConfig, username string, store *game.ScoreStore, pilot *Autopilot, rng *rand.Rand, limit int) Result {
	loop := systems.NewGameLoop(cfg, username, &silentAudio{}, store, rng)

	result := Result{Username: username}
	loop.SetOnGameOver(func(score, level int) {
		result.Score, result.Level, result.Finished = score, level, true
	})
	loop.Start()

	for result.Ticks < limit && !result.Finished {
		for _, intent := range pilot.Decide(loop.Snapshot()) {
			loop.Input().Push(intent)
		}
		loop.Tick()
		result.Ticks++
	}

	if !result.Finished {
		session := loop.Session()
		result.Score, result.Level = session.Score, session.Level
	}
	return result
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg := config.DefaultGameConfig()
	if *configPath != "" {
		loaded, err := config.LoadGameConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *accuracy < 0 || *accuracy > 1 {
		fmt.Fprintf(os.Stderr, "Error: accuracy must be in [0, 1], got %v\n", *accuracy)
		os.Exit(1)
	}

	rng := rand.New(rand.NewPCG(*seed, *seed+1))
	store := game.NewScoreStore(nil)
	pilotRng := rand.New(rand.NewPCG(*seed+2, *seed+3))

	fmt.Printf("%-8s %8s %6s %8s  %s\n", "SESSION", "SCORE", "LEVEL", "TICKS", "STATUS")
	total, bestLevel := 0, 0
	for i := range *sessions {
		pilot := NewAutopilot(*accuracy, pilotRng)
		result := runSession(cfg, fmt.Sprintf("bot-%d", i+1), store, pilot, rng, *maxTicks)
		status := "game over"
		if !result.Finished {
			status = "capped"
		}
		fmt.Printf("%-8s %8d %6d %8d  %s\n", result.Username, result.Score, result.Level, result.Ticks, status)
		total += result.Score
		bestLevel = max(bestLevel, result.Level)
	}

	if *sessions > 0 {
		fmt.Printf("\nmean score %.1f, best level %d, high score %d\n",
			float64(total)/float64(*sessions), bestLevel, store.GetHighScore())
	}
}
