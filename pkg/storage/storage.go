// Package storage 根据应用配置打开进度持久化后端
package storage

import (
	"fmt"
	"log"

	"github.com/decker502/shirubot/pkg/config"
	"github.com/decker502/shirubot/pkg/game"
	"github.com/decker502/shirubot/pkg/storage/sqlitekv"
	"github.com/decker502/shirubot/pkg/utils"
	"github.com/quasilyte/gdata/v2"
)

// Backend 已打开的持久化后端
type Backend struct {
	game.Persistence

	// Name 实际使用的后端名（降级时为 memory）
	Name string
	// Degraded 为 true 表示请求的持久化后端不可用，进度只保存在内存中
	Degraded bool

	closer func() error
}

// Close 释放后端资源
func (b *Backend) Close() error {
	if b.closer == nil {
		return nil
	}
	return b.closer()
}

// Open 按配置打开持久化后端
//
// gdata 初始化失败不是致命错误：回退到内存持久化（降级模式），
// 界面仍可使用，只是进度不会保存。sqlite 打开失败则返回错误，
// 因为显式指定的数据库文件不可用通常是配置问题。
func Open(cfg config.AppConfig) (*Backend, error) {
	switch cfg.Storage {
	case config.StorageGdata:
		manager, err := openGdata(cfg.AppName)
		if err != nil {
			log.Printf("[Storage] Warning: gdata unavailable: %v (progress will not be saved)", err)
			return &Backend{Persistence: game.NewMemoryPersistence(), Name: config.StorageMemory, Degraded: true}, nil
		}
		log.Printf("[Storage] Using gdata storage (app %s)", cfg.AppName)
		return &Backend{Persistence: game.NewGdataPersistence(manager), Name: config.StorageGdata}, nil

	case config.StorageSQLite:
		store, err := sqlitekv.Open(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite storage: %w", err)
		}
		log.Printf("[Storage] Using sqlite storage at %s", cfg.SQLitePath)
		return &Backend{Persistence: store, Name: config.StorageSQLite, closer: store.Close}, nil

	case config.StorageMemory:
		log.Printf("[Storage] Using in-memory storage (progress will not be saved)")
		return &Backend{Persistence: game.NewMemoryPersistence(), Name: config.StorageMemory}, nil

	default:
		return nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}

// openGdata 打开 gdata Manager
func openGdata(appName string) (*gdata.Manager, error) {
	// Android 上需要预先创建存储目录
	if err := utils.EnsureStorageDir(); err != nil {
		return nil, err
	}

	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("failed to open gdata: %w", err)
	}
	if path := utils.GetStoragePath(); path != "" {
		log.Printf("[Storage] Android storage path: %s", path)
	}
	return manager, nil
}
