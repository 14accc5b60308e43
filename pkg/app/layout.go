package app

// 逻辑屏幕尺寸（竖屏，与手机网页版比例一致）
const (
	ScreenWidth  = 480
	ScreenHeight = 800
)

// 布局常量
const (
	pagePadding = 16.0

	headerHeight = 60.0

	resetButtonWidth  = 72.0
	resetButtonHeight = 32.0

	overallTop    = headerHeight
	overallHeight = 64.0
	overallBarY   = overallTop + 40.0
	barHeight     = 8.0

	cardsTop    = overallTop + overallHeight + 12.0
	cardHeight  = 96.0
	cardSpacing = 12.0

	swatchSize = 64.0

	statsHeight = 100.0
)

// rect 轴对齐矩形（逻辑坐标）
type rect struct {
	X, Y, W, H float64
}

// contains 检查点是否在矩形内（左上闭、右下开）
func (r rect) contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// dashboardLayout 仪表盘各区域的位置
//
// 布局只依赖游戏数量，与渲染无关，便于单独测试点击判定
type dashboardLayout struct {
	header      rect
	resetButton rect
	overall     rect
	overallBar  rect
	cards       []rect
	stats       rect
}

// newDashboardLayout 按游戏数量计算布局
func newDashboardLayout(gameCount int) dashboardLayout {
	contentWidth := ScreenWidth - 2*pagePadding

	l := dashboardLayout{
		header: rect{X: 0, Y: 0, W: ScreenWidth, H: headerHeight},
		resetButton: rect{
			X: ScreenWidth - pagePadding - resetButtonWidth,
			Y: (headerHeight - resetButtonHeight) / 2,
			W: resetButtonWidth,
			H: resetButtonHeight,
		},
		overall:    rect{X: 0, Y: overallTop, W: ScreenWidth, H: overallHeight},
		overallBar: rect{X: pagePadding, Y: overallBarY, W: contentWidth, H: barHeight},
		cards:      make([]rect, gameCount),
	}

	for i := range l.cards {
		l.cards[i] = rect{
			X: pagePadding,
			Y: cardsTop + float64(i)*(cardHeight+cardSpacing),
			W: contentWidth,
			H: cardHeight,
		}
	}

	statsTop := cardsTop + float64(gameCount)*(cardHeight+cardSpacing)
	l.stats = rect{X: 0, Y: statsTop, W: ScreenWidth, H: statsHeight}
	return l
}

// hitKind 点击命中的区域类型
type hitKind int

const (
	hitNone  hitKind = iota
	hitCard          // 游戏卡片，index 为目录下标
	hitReset         // 重置按钮
)

// hit 点击判定结果
type hit struct {
	kind  hitKind
	index int
}

// hitTest 判定逻辑坐标 (x, y) 命中的区域
func (l dashboardLayout) hitTest(x, y int) hit {
	fx, fy := float64(x), float64(y)

	if l.resetButton.contains(fx, fy) {
		return hit{kind: hitReset}
	}
	for i, card := range l.cards {
		if card.contains(fx, fy) {
			return hit{kind: hitCard, index: i}
		}
	}
	return hit{kind: hitNone}
}
