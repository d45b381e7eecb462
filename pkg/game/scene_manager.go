package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 按效果名和属性名创建编辑场景，property 为空时创建属性列表场景
type SceneFactory func(effect, property string) Scene

// SceneManager manages the editor's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
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

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// Open 切换到指定效果和属性的场景
//
// 参数:
//
//	effect - 效果名
//	property - 属性名，为空时打开属性列表
//
// 返回:
//
//	bool - 场景是否创建成功
func (sm *SceneManager) Open(effect, property string) bool {
	log.Printf("[SceneManager] 打开: %s %s", effect, property)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] 错误: SceneFactory 未设置")
		return false
	}

	newScene := sm.sceneFactory(effect, property)
	if newScene == nil {
		log.Printf("[SceneManager] 错误: 无法创建场景: %s %s", effect, property)
		return false
	}
	sm.SwitchTo(newScene)
	return true
}

// RequestExit 询问当前场景是否可以退出
func (sm *SceneManager) RequestExit(exit func()) bool {
	if guard, ok := sm.currentScene.(ExitGuard); ok {
		return guard.RequestExit(exit)
	}
	return true
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
