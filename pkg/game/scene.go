package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a game screen (name entry, gameplay, game over, tutorial).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	Draw(screen *ebiten.Image)
}

// Saveable 是一个可选接口，场景在窗口关闭时保存进行中的状态
//
// 实现此接口的场景会在以下时机被调用 SaveOnExit()：
//   - 游戏窗口关闭
//   - 玩家按 Esc 退出
type Saveable interface {
	// SaveOnExit 在场景退出时保存状态
	// 返回 true 表示保存成功或无需保存
	SaveOnExit() bool
}

// SceneID 场景标识
type SceneID int

const (
	SceneNameEntry SceneID = iota
	ScenePlay
	SceneGameOver
	SceneTutorial
)

func (id SceneID) String() string {
	switch id {
	case SceneNameEntry:
		return "name-entry"
	case ScenePlay:
		return "play"
	case SceneGameOver:
		return "game-over"
	case SceneTutorial:
		return "tutorial"
	default:
		return "unknown"
	}
}

// SceneParams 场景切换时传递的数据
type SceneParams struct {
	Username   string
	FinalScore int
	FinalLevel int
}
