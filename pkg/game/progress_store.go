package game

import (
	"fmt"
	"log"
	"time"

	"github.com/decker502/shirubot/pkg/config"
	"github.com/decker502/shirubot/pkg/locale"
)

// ProgressStore 进度存储
//
// 职责：
//   - 从持久化层加载进度集合，不存在时生成默认集合
//   - 记录游戏交互（进度 +10 封顶 100，积分 +10 不封顶）
//   - 重置全部进度
//   - 计算汇总统计
//
// 架构说明：
//   - 持久化层通过构造参数注入，测试中可使用 MemoryPersistence
//   - 每次修改都生成新集合，并在返回前同步写入持久化层
//   - 单线程使用（由 ebiten 的 Update 或命令行调用），不加锁
//   - persistence 为 nil 时进入降级模式：只在内存中保存，不报错
type ProgressStore struct {
	persistence Persistence
	catalog     *config.GameCatalog
	key         string

	now        func() time.Time       // 时钟，测试中可替换
	formatDate func(time.Time) string // lastPlayed 日期格式化

	progress ProgressList
}

// NewProgressStore 创建进度存储
//
// 创建时不读取持久化层，内存中为默认集合；调用 Load() 加载已保存的进度。
//
// 参数：
//   - persistence: 持久化层，可为 nil（降级模式）
//   - catalog: 游戏目录
func NewProgressStore(persistence Persistence, catalog *config.GameCatalog) *ProgressStore {
	return &ProgressStore{
		persistence: persistence,
		catalog:     catalog,
		key:         ProgressKey,
		now:         time.Now,
		formatDate:  locale.FormatDate,
		progress:    NewDefaultProgress(catalog),
	}
}

// SetClock 替换时钟（用于测试）
func (s *ProgressStore) SetClock(now func() time.Time) {
	s.now = now
}

// SetDateFormatter 设置 lastPlayed 的日期格式化函数
// 通常传入 Localizer.FormatDate
func (s *ProgressStore) SetDateFormatter(format func(time.Time) string) {
	s.formatDate = format
}

// Catalog 返回游戏目录
func (s *ProgressStore) Catalog() *config.GameCatalog {
	return s.catalog
}

// Load 从持久化层加载进度集合
//
// 行为：
//   - 键不存在：使用默认集合
//   - 数据损坏或结构不合法：使用默认集合，返回包装了 ErrCorruptProgress 的错误
//   - 读取失败：使用默认集合，返回错误
//   - 数据合法：与目录对齐后使用（补齐缺失的游戏，丢弃未知的记录）
//
// 无论是否返回错误，存储都处于可用状态。
func (s *ProgressStore) Load() (ProgressList, error) {
	s.progress = NewDefaultProgress(s.catalog)

	if s.persistence == nil {
		return s.Progress(), nil
	}

	data, found, err := s.persistence.Get(s.key)
	if err != nil {
		log.Printf("[ProgressStore] Warning: failed to read progress: %v (using defaults)", err)
		return s.Progress(), fmt.Errorf("failed to load progress: %w", err)
	}
	if !found {
		log.Printf("[ProgressStore] No saved progress, starting fresh")
		return s.Progress(), nil
	}

	list, err := DecodeProgress(data)
	if err != nil {
		log.Printf("[ProgressStore] Warning: %v (using defaults)", err)
		return s.Progress(), fmt.Errorf("failed to load progress: %w", err)
	}

	result := reconcileProgress(list, s.catalog)
	if result.modified {
		log.Printf("[ProgressStore] Reconciled saved progress with catalog: added=%v dropped=%v filled=%v", result.added, result.dropped, result.filled)
	}
	s.progress = result.list

	log.Printf("[ProgressStore] Progress loaded: %d games, total score %d", len(s.progress), s.progress.TotalScore())
	return s.Progress(), nil
}

// RecordInteraction 记录一次游戏交互
//
// 对 ID 匹配的记录：进度 +10（不超过 100），lastPlayed 设为今天，积分 +10。
// 未知 ID 不匹配任何记录，集合不变（仍会写入持久化层）。
//
// 返回：
//   - ProgressList: 更新后的集合
//   - error: 写入失败时返回错误；内存中的集合仍已更新
func (s *ProgressStore) RecordInteraction(gameID string) (ProgressList, error) {
	if !s.catalog.Has(gameID) {
		log.Printf("[ProgressStore] Ignoring interaction for unknown game %q", gameID)
	}

	s.progress = s.progress.WithInteraction(gameID, s.formatDate(s.now()))

	if err := s.save(); err != nil {
		return s.Progress(), err
	}
	return s.Progress(), nil
}

// Reset 将所有游戏恢复为默认进度并写入持久化层
func (s *ProgressStore) Reset() (ProgressList, error) {
	s.progress = NewDefaultProgress(s.catalog)
	log.Printf("[ProgressStore] Progress reset")

	if err := s.save(); err != nil {
		return s.Progress(), err
	}
	return s.Progress(), nil
}

// Progress 返回当前集合的副本
func (s *ProgressStore) Progress() ProgressList {
	return s.progress.Clone()
}

// TotalScore 当前总积分
func (s *ProgressStore) TotalScore() int {
	return s.progress.TotalScore()
}

// Stats 当前汇总统计
func (s *ProgressStore) Stats() Stats {
	return ComputeStats(s.progress, s.catalog.Len())
}

// Export 序列化当前集合
func (s *ProgressStore) Export() ([]byte, error) {
	return EncodeProgress(s.progress)
}

// Import 用外部数据替换当前集合并写入持久化层
//
// 接受 Export 的 YAML 输出或网页版导出的 JSON。
// 数据不合法时返回包装了 ErrCorruptProgress 的错误，当前集合保持不变。
func (s *ProgressStore) Import(data []byte) (ProgressList, error) {
	list, err := DecodeProgress(data)
	if err != nil {
		return s.Progress(), err
	}

	result := reconcileProgress(list, s.catalog)
	if result.modified {
		log.Printf("[ProgressStore] Reconciled imported progress with catalog: added=%v dropped=%v filled=%v", result.added, result.dropped, result.filled)
	}
	s.progress = result.list

	if err := s.save(); err != nil {
		return s.Progress(), err
	}
	return s.Progress(), nil
}

// save 将当前集合写入持久化层
func (s *ProgressStore) save() error {
	if s.persistence == nil {
		return nil
	}

	data, err := EncodeProgress(s.progress)
	if err != nil {
		return err
	}

	if err := s.persistence.Set(s.key, data); err != nil {
		log.Printf("[ProgressStore] Warning: progress not saved: %v", err)
		return fmt.Errorf("failed to save progress: %w", err)
	}
	return nil
}
