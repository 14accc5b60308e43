package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// 存储后端
const (
	StorageGdata  = "gdata"  // quasilyte/gdata 跨平台存储（默认）
	StorageSQLite = "sqlite" // 单文件 SQLite 键值表
	StorageMemory = "memory" // 仅内存，退出即丢失
)

// AppConfig 应用启动配置
//
// 从环境变量解析，可选地先从 .env 文件预加载。
// 命令行参数由入口程序在解析后覆盖。
type AppConfig struct {
	AppName    string `env:"SHIRUBOT_APP_NAME" envDefault:"shirubot"`       // gdata 应用名（决定存档目录）
	Storage    string `env:"SHIRUBOT_STORAGE" envDefault:"gdata"`           // 存储后端：gdata / sqlite / memory
	SQLitePath string `env:"SHIRUBOT_SQLITE_PATH" envDefault:"shirubot.db"` // sqlite 后端的数据库文件
	Locale     string `env:"SHIRUBOT_LOCALE" envDefault:"ru-RU"`            // 界面语言（BCP 47）
	Verbose    bool   `env:"SHIRUBOT_VERBOSE" envDefault:"false"`           // 详细日志
}

// LoadAppConfig 加载应用配置
//
// 参数：
//   - envFiles: 可选的 .env 文件路径；不存在的文件会被忽略，
//     已存在的环境变量不会被覆盖
//
// 返回：
//   - AppConfig: 解析并校验后的配置
//   - error: 如果 .env 文件格式错误、环境变量解析失败或校验失败
func LoadAppConfig(envFiles ...string) (AppConfig, error) {
	for _, path := range envFiles {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return AppConfig{}, fmt.Errorf("failed to load env file %s: %w", path, err)
		}
	}

	var cfg AppConfig
	if err := env.Parse(&cfg); err != nil {
		return AppConfig{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate 校验配置合法性
// 命令行覆盖配置后应再次调用
func (c *AppConfig) Validate() error {
	c.Storage = strings.ToLower(strings.TrimSpace(c.Storage))

	switch c.Storage {
	case StorageGdata:
		if strings.TrimSpace(c.AppName) == "" {
			return fmt.Errorf("app name is required for %s storage", StorageGdata)
		}
	case StorageSQLite:
		if strings.TrimSpace(c.SQLitePath) == "" {
			return fmt.Errorf("sqlite path is required for %s storage", StorageSQLite)
		}
	case StorageMemory:
	default:
		return fmt.Errorf("unknown storage %q (expected %s, %s or %s)", c.Storage, StorageGdata, StorageSQLite, StorageMemory)
	}

	if strings.TrimSpace(c.Locale) == "" {
		return fmt.Errorf("locale is required")
	}
	return nil
}

// DefaultEnvFiles 返回默认的 .env 文件搜索列表
// 当前目录的 .env 优先于用户配置目录下的 shirubot.env
func DefaultEnvFiles() []string {
	files := []string{".env"}
	if dir, err := os.UserConfigDir(); err == nil {
		files = append(files, filepath.Join(dir, "shirubot.env"))
	}
	return files
}
