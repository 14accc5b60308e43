// Package data 嵌入游戏目录与界面文本资源
//
// 桌面端、移动端和命令行工具共用同一份嵌入资源，
// 通过 embedded.Init(data.FS) 注册后以 "data/..." 路径访问。
package data

import "embed"

//go:embed games.yaml strings
var FS embed.FS
