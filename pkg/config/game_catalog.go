package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/decker502/shirubot/pkg/embedded"
	"github.com/gosimple/slug"
	"gopkg.in/yaml.v3"
)

// GameCatalogPath 嵌入的游戏目录文件路径
const GameCatalogPath = "data/games.yaml"

// GradientColor 卡片图标的渐变色（#rrggbb）
type GradientColor struct {
	From string `yaml:"from"` // 起始颜色
	To   string `yaml:"to"`   // 结束颜色
}

// GameEntry 单个小游戏的目录条目（只读参考数据）
type GameEntry struct {
	ID          string        `yaml:"id"`          // 唯一标识，小写 slug，如 "emoji-puzzle"
	Name        string        `yaml:"name"`        // 显示名称
	Description string        `yaml:"description"` // 简短描述
	Icon        string        `yaml:"icon"`        // 图标（emoji）
	Color       GradientColor `yaml:"color"`       // 卡片渐变色
}

// GameCatalog 游戏目录文件结构
//
// 目录在编译时嵌入，顺序即显示顺序；不持久化，用户不可编辑。
type GameCatalog struct {
	Games []GameEntry `yaml:"games"`
}

// LoadGameCatalog 从嵌入资源加载游戏目录
// 参数：
//
//	path - 资源路径（通常为 GameCatalogPath）
//
// 返回：
//
//	*GameCatalog - 解析并校验后的目录
//	error - 如果读取、解析或校验失败
func LoadGameCatalog(path string) (*GameCatalog, error) {
	data, err := embedded.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read game catalog %s: %w", path, err)
	}

	catalog, err := ParseGameCatalog(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return catalog, nil
}

// ParseGameCatalog 从 YAML 数据解析游戏目录
func ParseGameCatalog(data []byte) (*GameCatalog, error) {
	var catalog GameCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse game catalog YAML: %w", err)
	}

	if err := validateGameCatalog(&catalog); err != nil {
		return nil, fmt.Errorf("invalid game catalog: %w", err)
	}

	return &catalog, nil
}

// validateGameCatalog 验证目录的完整性和合法性
func validateGameCatalog(catalog *GameCatalog) error {
	if len(catalog.Games) == 0 {
		return fmt.Errorf("at least one game is required")
	}

	seen := make(map[string]bool, len(catalog.Games))
	for i, game := range catalog.Games {
		if game.ID == "" {
			return fmt.Errorf("game #%d: id is required", i)
		}
		if !slug.IsSlug(game.ID) {
			return fmt.Errorf("game %q: id must be a lowercase slug", game.ID)
		}
		if seen[game.ID] {
			return fmt.Errorf("game %q: duplicate id", game.ID)
		}
		seen[game.ID] = true

		if strings.TrimSpace(game.Name) == "" {
			return fmt.Errorf("game %q: name is required", game.ID)
		}
		if _, err := ParseHexColor(game.Color.From); err != nil {
			return fmt.Errorf("game %q: color.from: %w", game.ID, err)
		}
		if _, err := ParseHexColor(game.Color.To); err != nil {
			return fmt.Errorf("game %q: color.to: %w", game.ID, err)
		}
	}

	return nil
}

// Len 返回目录条目数
func (c *GameCatalog) Len() int {
	return len(c.Games)
}

// IDs 按目录顺序返回所有游戏 ID
func (c *GameCatalog) IDs() []string {
	ids := make([]string, len(c.Games))
	for i, game := range c.Games {
		ids[i] = game.ID
	}
	return ids
}

// Get 根据 ID 查找目录条目
// 如果不存在，返回 nil 和 false
func (c *GameCatalog) Get(id string) (*GameEntry, bool) {
	for i := range c.Games {
		if c.Games[i].ID == id {
			return &c.Games[i], true
		}
	}
	return nil, false
}

// Has 检查目录中是否存在指定 ID
func (c *GameCatalog) Has(id string) bool {
	_, ok := c.Get(id)
	return ok
}

// ParseHexColor 解析 "#rrggbb" 格式的颜色
func ParseHexColor(s string) (color.RGBA, error) {
	if len(s) != 7 || s[0] != '#' {
		return color.RGBA{}, fmt.Errorf("invalid color %q: expected #rrggbb", s)
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// FromRGBA 返回渐变起始颜色，解析失败时返回灰色
// 目录加载时已校验颜色格式，此处仅为兜底
func (g GradientColor) FromRGBA() color.RGBA {
	c, err := ParseHexColor(g.From)
	if err != nil {
		return color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	}
	return c
}

// ToRGBA 返回渐变结束颜色，解析失败时返回灰色
func (g GradientColor) ToRGBA() color.RGBA {
	c, err := ParseHexColor(g.To)
	if err != nil {
		return color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	}
	return c
}
