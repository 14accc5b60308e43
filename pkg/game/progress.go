package game

import "github.com/decker502/shirubot/pkg/config"

// NeverPlayed lastPlayed 的"从未玩过"占位值
//
// 与网页版存档保持一致，持久化时原样写入；界面显示时再做本地化
const NeverPlayed = "Никогда"

// 每次交互的进度与积分增量
const (
	ProgressStep = 10  // 每次交互增加的进度
	ScoreStep    = 10  // 每次交互增加的积分（不受进度上限影响）
	MaxProgress  = 100 // 进度上限
)

// GameProgress 单个小游戏的进度记录
//
// 字段名与网页版 localStorage 中的 JSON 保持一致，便于导入旧存档。
// Name 是创建记录时目录名称的副本，目录改名不会回溯更新已有记录。
type GameProgress struct {
	ID         string `yaml:"id"`         // 对应 GameEntry.ID
	Name       string `yaml:"name"`       // 创建时的目录名称
	Progress   int    `yaml:"progress"`   // 进度 0 ~ 100
	LastPlayed string `yaml:"lastPlayed"` // NeverPlayed 或本地化日期
	Score      int    `yaml:"score"`      // 累计积分
}

// IsStarted 是否已开始（进度大于 0）
func (p GameProgress) IsStarted() bool {
	return p.Progress > 0
}

// IsCompleted 是否已完成（进度达到上限）
func (p GameProgress) IsCompleted() bool {
	return p.Progress == MaxProgress
}

// ProgressList 全部小游戏的进度集合，顺序与目录一致
//
// 所有修改都返回新的集合，不修改原集合
type ProgressList []GameProgress

// NewDefaultProgress 为目录中的每个游戏生成默认进度记录
func NewDefaultProgress(catalog *config.GameCatalog) ProgressList {
	list := make(ProgressList, 0, catalog.Len())
	for _, game := range catalog.Games {
		list = append(list, defaultRecord(game))
	}
	return list
}

func defaultRecord(game config.GameEntry) GameProgress {
	return GameProgress{
		ID:         game.ID,
		Name:       game.Name,
		Progress:   0,
		LastPlayed: NeverPlayed,
		Score:      0,
	}
}

// Clone 返回集合的副本
func (l ProgressList) Clone() ProgressList {
	if l == nil {
		return nil
	}
	clone := make(ProgressList, len(l))
	copy(clone, l)
	return clone
}

// Find 根据 ID 查找记录
func (l ProgressList) Find(id string) (GameProgress, bool) {
	for _, p := range l {
		if p.ID == id {
			return p, true
		}
	}
	return GameProgress{}, false
}

// WithInteraction 返回记录一次交互后的新集合
//
// 目标记录：进度 +ProgressStep（不超过 MaxProgress），积分 +ScoreStep，
// lastPlayed 设为 playedAt。其它记录不变。
// 未知 ID 不匹配任何记录，返回内容相同的新集合。
func (l ProgressList) WithInteraction(id, playedAt string) ProgressList {
	next := l.Clone()
	for i := range next {
		if next[i].ID != id {
			continue
		}
		next[i].Progress = min(next[i].Progress+ProgressStep, MaxProgress)
		next[i].LastPlayed = playedAt
		next[i].Score += ScoreStep
	}
	return next
}

// TotalScore 所有记录的积分之和
func TotalScore(list ProgressList) int {
	total := 0
	for _, p := range list {
		total += p.Score
	}
	return total
}

// TotalScore 所有记录的积分之和
func (l ProgressList) TotalScore() int {
	return TotalScore(l)
}

// StartedCount 已开始的游戏数（进度 > 0）
func (l ProgressList) StartedCount() int {
	count := 0
	for _, p := range l {
		if p.IsStarted() {
			count++
		}
	}
	return count
}

// CompletedCount 已完成的游戏数（进度 == 100）
func (l ProgressList) CompletedCount() int {
	count := 0
	for _, p := range l {
		if p.IsCompleted() {
			count++
		}
	}
	return count
}

// Stats 汇总统计，由界面层只读使用
type Stats struct {
	TotalScore     int // 总积分
	Started        int // 已开始的游戏数
	Completed      int // 已完成的游戏数
	OverallPercent int // 总体进度百分比 0 ~ 100
}

// ComputeStats 计算汇总统计
//
// 总体进度 = 总积分 / (游戏数 * MaxProgress)，截断到 [0, 100]。
// 积分不设上限，因此总积分可能超过分母。
func ComputeStats(list ProgressList, gameCount int) Stats {
	stats := Stats{
		TotalScore: list.TotalScore(),
		Started:    list.StartedCount(),
		Completed:  list.CompletedCount(),
	}

	maxTotal := gameCount * MaxProgress
	if maxTotal > 0 {
		stats.OverallPercent = min(max(stats.TotalScore*100/maxTotal, 0), 100)
	}
	return stats
}
