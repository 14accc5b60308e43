package app

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// fontCache 字体缓存
//
// 使用 Go 字体（覆盖 WGL4 字符集，包括西里尔字母），无需额外的字体资源文件。
// 按 粗细 + 字号 缓存 GoTextFace。
type fontCache struct {
	regular *text.GoTextFaceSource
	bold    *text.GoTextFaceSource
	faces   map[string]*text.GoTextFace
}

// newFontCache 解析内置字体
func newFontCache() (*fontCache, error) {
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to create regular font source: %w", err)
	}
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		return nil, fmt.Errorf("failed to create bold font source: %w", err)
	}

	return &fontCache{
		regular: regular,
		bold:    bold,
		faces:   make(map[string]*text.GoTextFace),
	}, nil
}

// face 获取指定粗细和字号的字体
func (fc *fontCache) face(bold bool, size float64) *text.GoTextFace {
	cacheKey := fmt.Sprintf("%v:%.1f", bold, size)
	if cached, ok := fc.faces[cacheKey]; ok {
		return cached
	}

	source := fc.regular
	if bold {
		source = fc.bold
	}
	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	fc.faces[cacheKey] = face
	return face
}
