// Package app 提供游戏应用的核心包装器
//
// 该包将游戏初始化逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand/v2"
	"time"

	"github.com/decker502/missilemath/pkg/config"
	"github.com/decker502/missilemath/pkg/game"
	"github.com/decker502/missilemath/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

// AppName gdata 存储使用的应用名
const AppName = "missilemath"

// DefaultAssetDir 默认音频目录
const DefaultAssetDir = "assets/audio"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 游戏数值 YAML 文件，为空使用默认配置
	ConfigPath string
	// AssetDir 音频目录，为空使用 DefaultAssetDir
	AssetDir string
	// Seed 随机种子，0 表示使用当前时间
	Seed uint64
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager             *game.SceneManager
	audioManager             *game.AudioManager
	verbose                  bool
	shutdown                 bool
	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
//
// 存储不可用时降级为内存模式，音频文件缺失时使用合成音效，
// 只有配置文件错误会返回 error
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameConfig := config.DefaultGameConfig()
	if cfg.ConfigPath != "" {
		loaded, err := config.LoadGameConfig(cfg.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("游戏配置加载失败: %w", err)
		}
		gameConfig = loaded
		log.Printf("[Config] 加载游戏配置: %s", cfg.ConfigPath)
	}

	assetDir := cfg.AssetDir
	if assetDir == "" {
		assetDir = DefaultAssetDir
	}

	gdataManager := openStorage()
	settingsManager := game.NewSettingsManager(gdataManager)
	scoreStore := game.NewScoreStore(gdataManager)

	// 初始化音频上下文
	audioContext := audio.NewContext(48000)
	resourceManager := game.NewResourceManager(audioContext)
	audioManager := game.NewAudioManager(resourceManager, settingsManager, assetDir)
	audioManager.Preload()
	log.Printf("[App] AudioManager initialized")

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Printf("[App] Random seed: %d", seed)

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(scenes.NewSceneFactory(scenes.Deps{
		SceneManager: sceneManager,
		Config:       gameConfig,
		Audio:        audioManager,
		Scores:       scoreStore,
		Rand:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}))

	if !sceneManager.Show(game.SceneNameEntry, game.SceneParams{}) {
		return nil, fmt.Errorf("无法创建初始场景")
	}

	return &App{
		sceneManager: sceneManager,
		audioManager: audioManager,
		verbose:      cfg.Verbose,
	}, nil
}

// openStorage 打开 gdata 存储，失败时返回 nil（降级为内存模式）
func openStorage() *gdata.Manager {
	gdataManager, err := gdata.Open(gdata.Config{
		AppName: AppName,
	})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable, scores and settings will not persist: %v", err)
		return nil
	}
	return gdataManager
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
			log.Printf("[App] Delayed SetWindowSize(%d, %d)", config.GameWindowWidth, config.GameWindowHeight)
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

	deltaTime := 1.0 / float64(ebiten.TPS())
	a.sceneManager.Update(deltaTime)

	if a.sceneManager.ExitRequested() || ebiten.IsWindowBeingClosed() {
		a.Shutdown()
		return ebiten.Termination
	}
	return nil
}

// Shutdown 保存进行中的分数并释放音频
// 窗口关闭和 Esc 退出都会调用，可以重复调用
func (a *App) Shutdown() {
	if a.shutdown {
		return
	}
	a.shutdown = true
	a.sceneManager.SaveOnExit()
	a.audioManager.Close()
}

// Draw 绘制游戏画面
// 每帧调用一次
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

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
