package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/shirubot/data"
	"github.com/decker502/shirubot/pkg/app"
	"github.com/decker502/shirubot/pkg/config"
	"github.com/decker502/shirubot/pkg/embedded"
)

var (
	verbose     = flag.Bool("verbose", false, "显示详细日志")
	storageFlag = flag.String("storage", "", "存储后端：gdata / sqlite / memory（覆盖 SHIRUBOT_STORAGE）")
	localeFlag  = flag.String("locale", "", "界面语言，如 ru-RU、en-US（覆盖 SHIRUBOT_LOCALE）")
)

func main() {
	flag.Parse()

	cfg, err := config.LoadAppConfig(config.DefaultEnvFiles()...)
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}
	if *verbose {
		cfg.Verbose = true
	}
	if *storageFlag != "" {
		cfg.Storage = *storageFlag
	}
	if *localeFlag != "" {
		cfg.Locale = *localeFlag
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("配置无效: %v", err)
	}

	embedded.Init(data.FS)

	dashboard, err := app.Setup(cfg)
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}
	defer dashboard.Close()

	ebiten.SetWindowSize(app.ScreenWidth, app.ScreenHeight)
	ebiten.SetWindowTitle("SHIRU BOT")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(dashboard); err != nil {
		log.Fatalf("运行失败: %v", err)
	}
}
