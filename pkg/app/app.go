// Package app 提供进度仪表盘的 ebiten 应用包装器
//
// 该包将界面逻辑从 main 包提取出来，使其可以被桌面端和移动端共用。
// 桌面端通过 main.go 调用 NewApp()，移动端通过 mobile/mobile.go 调用。
//
// 应用只负责渲染进度集合和汇总统计，并把点击转换为
// ProgressStore 的 RecordInteraction / Reset 调用；进度逻辑全部在 game 包中。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/decker502/shirubot/pkg/config"
	"github.com/decker502/shirubot/pkg/game"
	"github.com/decker502/shirubot/pkg/locale"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 状态提示显示的帧数（约 3 秒）
const statusDisplayFrames = 180

// 配色
var (
	colorBackground = color.RGBA{R: 0x0f, G: 0x0f, B: 0x17, A: 0xff}
	colorCard       = color.RGBA{R: 0x1c, G: 0x1c, B: 0x28, A: 0xff}
	colorBorder     = color.RGBA{R: 0x2a, G: 0x2a, B: 0x3a, A: 0xff}
	colorTrack      = color.RGBA{R: 0x33, G: 0x33, B: 0x45, A: 0xff}
	colorPrimary    = color.RGBA{R: 0x8b, G: 0x5c, B: 0xf6, A: 0xff}
	colorForeground = color.RGBA{R: 0xf5, G: 0xf5, B: 0xf7, A: 0xff}
	colorMuted      = color.RGBA{R: 0x9c, G: 0xa3, B: 0xaf, A: 0xff}
	colorWarning    = color.RGBA{R: 0xf8, G: 0x71, B: 0x71, A: 0xff}
)

// SetupLogging 配置日志输出
// 非详细模式下丢弃所有日志
func SetupLogging(verbose bool) {
	if !verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}
}

// App 是仪表盘应用，实现 ebiten.Game 接口
type App struct {
	store     *game.ProgressStore
	localizer *locale.Localizer
	layout    dashboardLayout
	fonts     *fontCache // 首次绘制时创建
	closer    func() error

	statusMessage string // 临时状态提示（如"进度未保存"）
	statusFrames  int    // 状态提示剩余帧数

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建仪表盘应用
//
// 参数：
//   - store: 已加载的进度存储
//   - localizer: 界面本地化器
func NewApp(store *game.ProgressStore, localizer *locale.Localizer) *App {
	return &App{
		store:     store,
		localizer: localizer,
		layout:    newDashboardLayout(store.Catalog().Len()),
	}
}

// Update 更新界面逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.requestReset()
	}

	if x, y, ok := justPressedPointer(); ok {
		a.handleClick(x, y)
	}

	if a.statusFrames > 0 {
		a.statusFrames--
		if a.statusFrames == 0 {
			a.statusMessage = ""
		}
	}
	return nil
}

// justPressedPointer 返回本帧按下的触摸点或鼠标左键位置
func justPressedPointer() (int, int, bool) {
	touchIDs := inpututil.AppendJustPressedTouchIDs(nil)
	if len(touchIDs) > 0 {
		x, y := ebiten.TouchPosition(touchIDs[0])
		return x, y, true
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return x, y, true
	}
	return 0, 0, false
}

// handleClick 处理逻辑坐标上的一次点击
func (a *App) handleClick(x, y int) {
	switch h := a.layout.hitTest(x, y); h.kind {
	case hitCard:
		a.selectGame(a.store.Catalog().Games[h.index].ID)
	case hitReset:
		a.requestReset()
	}
}

// selectGame 对应 onGameSelected 事件
func (a *App) selectGame(gameID string) {
	log.Printf("[App] Game selected: %s", gameID)
	if _, err := a.store.RecordInteraction(gameID); err != nil {
		a.showStatus(a.localizer.GetString(locale.KeyProgressNotSaved))
	}
}

// requestReset 对应 onResetRequested 事件
func (a *App) requestReset() {
	log.Printf("[App] Reset requested")
	if _, err := a.store.Reset(); err != nil {
		a.showStatus(a.localizer.GetString(locale.KeyProgressNotSaved))
	}
}

func (a *App) showStatus(message string) {
	a.statusMessage = message
	a.statusFrames = statusDisplayFrames
}

// Draw 绘制仪表盘
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)

	if a.fonts == nil {
		fonts, err := newFontCache()
		if err != nil {
			ebitenutil.DebugPrint(screen, err.Error())
			return
		}
		a.fonts = fonts
	}

	progress := a.store.Progress()
	stats := a.store.Stats()

	a.drawHeader(screen)
	a.drawOverall(screen, stats)
	for i, entry := range a.store.Catalog().Games {
		record, ok := progress.Find(entry.ID)
		if !ok {
			record = game.GameProgress{ID: entry.ID, Name: entry.Name, LastPlayed: game.NeverPlayed}
		}
		a.drawCard(screen, a.layout.cards[i], entry, record)
	}
	a.drawStats(screen, stats)

	if a.statusMessage != "" {
		a.drawText(screen, a.statusMessage, false, 14, pagePadding, ScreenHeight-28, colorWarning)
	}
}

func (a *App) drawHeader(screen *ebiten.Image) {
	h := a.layout.header
	a.drawText(screen, a.localizer.GetString(locale.KeyAppTitle), true, 24, pagePadding, h.Y+16, colorPrimary)
	fillRect(screen, rect{X: 0, Y: h.Y + h.H - 1, W: h.W, H: 1}, colorBorder)

	btn := a.layout.resetButton
	vector.StrokeRect(screen, float32(btn.X), float32(btn.Y), float32(btn.W), float32(btn.H), 1, colorBorder, true)
	label := a.localizer.GetString(locale.KeyReset)
	w, _ := text.Measure(label, a.fonts.face(false, 14), 0)
	a.drawText(screen, label, false, 14, btn.X+(btn.W-w)/2, btn.Y+8, colorForeground)
}

func (a *App) drawOverall(screen *ebiten.Image, stats game.Stats) {
	o := a.layout.overall
	a.drawText(screen, a.localizer.GetString(locale.KeyTotalProgress), false, 14, pagePadding, o.Y+14, colorMuted)

	score := fmt.Sprintf("%s %s", a.localizer.FormatNumber(stats.TotalScore), a.localizer.GetString(locale.KeyPoints))
	w, _ := text.Measure(score, a.fonts.face(true, 14), 0)
	a.drawText(screen, score, true, 14, ScreenWidth-pagePadding-w, o.Y+14, colorPrimary)

	drawProgressBar(screen, a.layout.overallBar, stats.OverallPercent)
	fillRect(screen, rect{X: 0, Y: o.Y + o.H - 1, W: o.W, H: 1}, colorBorder)
}

func (a *App) drawCard(screen *ebiten.Image, r rect, entry config.GameEntry, record game.GameProgress) {
	fillRect(screen, r, colorCard)

	// 图标区域：渐变色块 + 名称首字母（emoji 无法用 Go 字体渲染）
	swatch := rect{X: r.X + 16, Y: r.Y + (r.H-swatchSize)/2, W: swatchSize, H: swatchSize}
	drawGradient(screen, swatch, entry.Color.FromRGBA(), entry.Color.ToRGBA())
	initial := firstRune(entry.Name)
	w, _ := text.Measure(initial, a.fonts.face(true, 28), 0)
	a.drawText(screen, initial, true, 28, swatch.X+(swatch.W-w)/2, swatch.Y+14, colorForeground)

	textX := swatch.X + swatch.W + 16
	a.drawText(screen, entry.Name, true, 18, textX, r.Y+12, colorForeground)
	a.drawText(screen, entry.Description, false, 13, textX, r.Y+38, colorMuted)

	bar := rect{X: textX, Y: r.Y + 70, W: 80, H: 4}
	drawProgressBar(screen, bar, record.Progress)
	a.drawText(screen, fmt.Sprintf("%d%%", record.Progress), false, 12, bar.X+bar.W+8, r.Y+63, colorMuted)

	lastPlayed := record.LastPlayed
	if lastPlayed == game.NeverPlayed {
		lastPlayed = a.localizer.GetString(locale.KeyNeverPlayed)
	}
	a.drawText(screen, lastPlayed, false, 12, bar.X+bar.W+52, r.Y+63, colorMuted)

	score := a.localizer.FormatNumber(record.Score)
	sw, _ := text.Measure(score, a.fonts.face(true, 14), 0)
	a.drawText(screen, score, true, 14, r.X+r.W-16-sw, r.Y+62, colorPrimary)
}

func (a *App) drawStats(screen *ebiten.Image, stats game.Stats) {
	s := a.layout.stats
	a.drawText(screen, a.localizer.GetString(locale.KeyStatistics), true, 18, pagePadding, s.Y+4, colorForeground)

	columns := []struct {
		value int
		label string
	}{
		{stats.Started, a.localizer.GetString(locale.KeyGamesStarted)},
		{stats.Completed, a.localizer.GetString(locale.KeyGamesCompleted)},
	}
	columnWidth := ScreenWidth / float64(len(columns))
	for i, col := range columns {
		center := columnWidth*float64(i) + columnWidth/2

		value := fmt.Sprintf("%d", col.value)
		vw, _ := text.Measure(value, a.fonts.face(true, 28), 0)
		a.drawText(screen, value, true, 28, center-vw/2, s.Y+34, colorPrimary)

		lw, _ := text.Measure(col.label, a.fonts.face(false, 13), 0)
		a.drawText(screen, col.label, false, 13, center-lw/2, s.Y+70, colorMuted)
	}
}

// drawText 在 (x, y) 处绘制文本（y 为文本顶部）
func (a *App) drawText(screen *ebiten.Image, s string, bold bool, size, x, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, a.fonts.face(bold, size), op)
}

// Layout 返回逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

func fillRect(screen *ebiten.Image, r rect, clr color.Color) {
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
}

// drawProgressBar 绘制进度条，percent 超出 [0, 100] 时截断
func drawProgressBar(screen *ebiten.Image, r rect, percent int) {
	fillRect(screen, r, colorTrack)
	filled := r
	filled.W = r.W * float64(min(max(percent, 0), 100)) / 100
	if filled.W > 0 {
		fillRect(screen, filled, colorPrimary)
	}
}

// 渐变色块的竖条数量
const gradientSteps = 16

// drawGradient 用竖条近似绘制从左到右的线性渐变
func drawGradient(screen *ebiten.Image, r rect, from, to color.RGBA) {
	stripWidth := r.W / gradientSteps
	for i := 0; i < gradientSteps; i++ {
		t := float64(i) / float64(gradientSteps-1)
		strip := rect{X: r.X + float64(i)*stripWidth, Y: r.Y, W: stripWidth + 0.5, H: r.H}
		fillRect(screen, strip, lerpColor(from, to, t))
	}
}

// lerpColor 线性插值两个颜色
func lerpColor(from, to color.RGBA, t float64) color.RGBA {
	lerp := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
	}
	return color.RGBA{
		R: lerp(from.R, to.R),
		G: lerp(from.G, to.G),
		B: lerp(from.B, to.B),
		A: 0xff,
	}
}

// firstRune 返回字符串的第一个字符
func firstRune(s string) string {
	for _, r := range s {
		return string(r)
	}
	return ""
}
