package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 由 app 层注入，避免 game 包依赖 scenes 包
type SceneFactory func(id SceneID, params SceneParams) Scene

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene  Scene
	currentID     SceneID
	sceneFactory  SceneFactory
	exitRequested bool
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use Show or SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有活动场景时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// CurrentID 返回最近一次通过 Show 切换的场景 ID
func (sm *SceneManager) CurrentID() SceneID {
	return sm.currentID
}

// Show 通过工厂创建并切换到指定场景
//
// 返回：
//   - bool: 切换成功返回 true
func (sm *SceneManager) Show(id SceneID, params SceneParams) bool {
	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return false
	}

	newScene := sm.sceneFactory(id, params)
	if newScene == nil {
		log.Printf("[SceneManager] 错误: 无法创建场景: %s", id)
		return false
	}

	sm.SwitchTo(newScene)
	sm.currentID = id
	log.Printf("[SceneManager] 切换到场景: %s", id)
	return true
}

// RequestExit 请求退出游戏，下一帧由 app 层返回 ebiten.Termination
func (sm *SceneManager) RequestExit() {
	sm.exitRequested = true
}

// ExitRequested 是否已请求退出
func (sm *SceneManager) ExitRequested() bool {
	return sm.exitRequested
}

// SaveOnExit 如果当前场景实现了 Saveable，调用其保存方法
func (sm *SceneManager) SaveOnExit() {
	if saveable, ok := sm.currentScene.(Saveable); ok {
		if !saveable.SaveOnExit() {
			log.Printf("[SceneManager] Warning: 场景退出保存失败")
		}
	}
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
