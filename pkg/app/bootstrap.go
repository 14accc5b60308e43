package app

import (
	"fmt"
	"log"

	"github.com/decker502/shirubot/pkg/config"
	"github.com/decker502/shirubot/pkg/game"
	"github.com/decker502/shirubot/pkg/locale"
	"github.com/decker502/shirubot/pkg/storage"
)

// Setup 按配置初始化完整的仪表盘应用
//
// 步骤：
//  1. 配置日志
//  2. 加载游戏目录（需已调用 embedded.Init）
//  3. 打开持久化后端（gdata 不可用时降级为内存）
//  4. 加载进度（数据损坏时使用默认进度，只记录警告）
//
// 调用方负责在退出时调用 Close()
func Setup(cfg config.AppConfig) (*App, error) {
	SetupLogging(cfg.Verbose)

	catalog, err := config.LoadGameCatalog(config.GameCatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load game catalog: %w", err)
	}
	log.Printf("[App] Loaded %d games", catalog.Len())

	backend, err := storage.Open(cfg)
	if err != nil {
		return nil, err
	}

	localizer := locale.NewLocalizer(cfg.Locale)
	log.Printf("[App] Locale: %s", localizer.Tag())

	store := game.NewProgressStore(backend, catalog)
	store.SetDateFormatter(localizer.FormatDate)
	if _, err := store.Load(); err != nil {
		log.Printf("[App] Warning: %v", err)
	}

	a := NewApp(store, localizer)
	a.closer = backend.Close
	if backend.Degraded {
		a.showStatus(localizer.GetString(locale.KeyProgressNotSaved))
	}
	return a, nil
}

// Close 释放持久化后端
func (a *App) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer()
}
