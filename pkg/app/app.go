// Package app 提供编辑器应用的核心包装器
//
// 该包把窗口程序的初始化逻辑从 main 包中提取出来，
// 命令行的 edit 子命令通过 NewApp() 创建窗口程序。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/THDigi/ParticleEditor/pkg/editor"
	"github.com/THDigi/ParticleEditor/pkg/game"
	"github.com/THDigi/ParticleEditor/pkg/scenes"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// Effect 要打开的效果名，为空则打开最近编辑的效果
	Effect string
	// Kind 效果不存在时新建的类型
	Kind game.EffectKind
	// Property 直接打开的属性名，为空则显示属性列表
	Property string
}

// App 是编辑器应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	services     *Services
	sceneManager *game.SceneManager
	clipboard    *editor.Clipboard
	verbose      bool
	quit         bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化编辑器应用
//
// 调用此函数前，如需使用外部数据目录，先调用 embedded.Init()。
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	services, err := OpenServices()
	if err != nil {
		return nil, err
	}
	return newApp(cfg, services)
}

func newApp(cfg Config, services *Services) (*App, error) {
	settings := services.Settings.GetSettings()

	effectName := cfg.Effect
	if effectName == "" {
		effectName = settings.LastEffect
	}
	if effectName == "" {
		effectName = DefaultEffectName
	}
	if _, err := services.EnsureEffect(effectName, cfg.Kind); err != nil {
		return nil, err
	}

	clipboard := editor.NewClipboard(nil)
	if settings.MirrorClipboard {
		clipboard.SetMirror(game.OSClipboard{})
	}

	a := &App{
		services:     services,
		sceneManager: game.NewSceneManager(),
		clipboard:    clipboard,
		verbose:      cfg.Verbose,
	}
	a.sceneManager.SetSceneFactory(a.createScene)

	if !a.sceneManager.Open(effectName, cfg.Property) {
		if cfg.Property == "" || !a.sceneManager.Open(effectName, "") {
			return nil, fmt.Errorf("failed to open effect %s", effectName)
		}
	}
	log.Printf("[App] 打开效果 %s", effectName)
	return a, nil
}

// createScene 场景工厂：property 为空时创建属性列表，否则创建属性编辑场景
func (a *App) createScene(effectName, property string) game.Scene {
	effect, err := a.services.Store.Load(effectName)
	if err != nil {
		log.Printf("[App] 无法读取效果 %s: %v", effectName, err)
		return nil
	}
	a.rememberLastOpened(effectName, property)

	if property == "" {
		return scenes.NewPropertyListScene(scenes.PropertyListOptions{
			SceneManager: a.sceneManager,
			Config:       a.services.EditorConfig,
			Effect:       effect,
			Table:        a.services.Table,
		})
	}

	host, err := effect.Property(property)
	if err != nil {
		log.Printf("[App] %v", err)
		return nil
	}
	data := host.Data()
	info := a.services.Table.Lookup(effect.PropertyID(property), data.Type, data.Is2D())

	// 每次应用都把整个效果写回存储
	host.OnCommit = func() {
		if err := a.services.Store.Save(effect); err != nil {
			log.Printf("[App] 保存效果 %s 失败: %v", effect.Name, err)
		}
	}

	scene, err := scenes.NewEditorScene(scenes.EditorSceneOptions{
		SceneManager: a.sceneManager,
		Config:       a.services.EditorConfig,
		Effect:       effect.Name,
		Host:         host,
		Info:         info,
		Is2D:         data.Is2D(),
		Clipboard:    a.clipboard,
		Text:         game.OSClipboard{},
	})
	if err != nil {
		log.Printf("[App] 无法打开属性 %s: %v", property, err)
		return nil
	}
	return scene
}

func (a *App) rememberLastOpened(effect, property string) {
	a.services.Settings.SetLastOpened(effect, property)
	if err := a.services.Settings.Save(); err != nil {
		log.Printf("[App] 保存设置失败: %v", err)
	}
}

// Update 更新编辑器逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	if a.quit {
		return ebiten.Termination
	}

	// 关闭窗口前让当前场景确认未应用的修改
	if ebiten.IsWindowBeingClosed() {
		if a.sceneManager.RequestExit(a.requestQuit) {
			return ebiten.Termination
		}
	}

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			w, h := a.WindowSize()
			ebiten.SetWindowSize(w, h)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
			log.Printf("[App] Exit fullscreen, will reset window size in 3 frames")
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

func (a *App) requestQuit() {
	a.quit = true
}

// Draw 绘制编辑器画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回编辑器的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	w := a.services.EditorConfig.Window
	return w.Width, w.Height
}

// WindowSize 返回按用户缩放设置计算的窗口大小
func (a *App) WindowSize() (int, int) {
	w := a.services.EditorConfig.Window
	scale := a.services.Settings.GetSettings().WindowScale
	return int(float64(w.Width) * scale), int(float64(w.Height) * scale)
}

// Title 返回窗口标题
func (a *App) Title() string {
	return a.services.EditorConfig.Window.Title
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
