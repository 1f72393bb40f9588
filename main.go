package main

import (
	"flag"
	"log"

	"github.com/decker502/missilemath/pkg/app"
	"github.com/decker502/missilemath/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	configPath := flag.String("config", "", "游戏数值 YAML 文件（为空使用默认配置）")
	assetDir := flag.String("assets", app.DefaultAssetDir, "音频目录（shoot.wav, correct.wav, wrong.wav, background.mp3）")
	seed := flag.Uint64("seed", 0, "随机种子（0 表示使用当前时间）")
	flag.Parse()

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		AssetDir:   *assetDir,
		Seed:       *seed,
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Missile Math")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	// 关闭窗口时先保存进行中的分数，由 App.Update 返回 ebiten.Termination
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
	gameApp.Shutdown()
}
