package game

import (
	"errors"
	"fmt"

	"github.com/quasilyte/gdata/v2"
)

// ProgressKey 进度集合在持久化层中的固定键（与网页版 localStorage 键一致）
const ProgressKey = "shirubot-progress"

// Persistence 键值持久化层
//
// 值是不透明的字节串，由 ProgressStore 负责序列化
type Persistence interface {
	// Get 读取键对应的值；键不存在时 found 为 false 且 err 为 nil
	Get(key string) (data []byte, found bool, err error)
	// Set 写入键对应的值，覆盖旧值
	Set(key string, data []byte) error
}

// gdata 存储对象名，键作为对象的属性名
const gdataObject = "shirubot"

// GdataPersistence 基于 gdata 的跨平台持久化
//
// gdata 在桌面端写入用户数据目录，在 Android 上写入应用私有目录，
// 在浏览器中写入 localStorage
type GdataPersistence struct {
	manager *gdata.Manager
}

// NewGdataPersistence 创建 gdata 持久化
//
// 参数：
//   - manager: 已打开的 gdata Manager，不能为 nil
func NewGdataPersistence(manager *gdata.Manager) *GdataPersistence {
	return &GdataPersistence{manager: manager}
}

// Get 从 gdata 读取
func (p *GdataPersistence) Get(key string) ([]byte, bool, error) {
	if !p.manager.ObjectPropExists(gdataObject, key) {
		return nil, false, nil
	}

	data, err := p.manager.LoadObjectProp(gdataObject, key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return data, true, nil
}

// Set 写入 gdata
func (p *GdataPersistence) Set(key string, data []byte) error {
	if err := p.manager.SaveObjectProp(gdataObject, key, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}

// ErrWriteFailed MemoryPersistence 被设置为写入失败时返回的错误
var ErrWriteFailed = errors.New("write failed")

// MemoryPersistence 仅内存的持久化
//
// 用于测试，以及 gdata 无法初始化时的降级模式（进度仅在本次运行中保留）
type MemoryPersistence struct {
	values map[string][]byte

	// FailWrites 为 true 时 Set 返回 ErrWriteFailed，用于模拟磁盘故障
	FailWrites bool
	// Writes 成功写入的次数
	Writes int
}

// NewMemoryPersistence 创建空的内存持久化
func NewMemoryPersistence() *MemoryPersistence {
	return &MemoryPersistence{values: make(map[string][]byte)}
}

// Get 读取内存中的值（返回副本）
func (p *MemoryPersistence) Get(key string) ([]byte, bool, error) {
	data, ok := p.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), data...), true, nil
}

// Set 写入内存（保存副本）
func (p *MemoryPersistence) Set(key string, data []byte) error {
	if p.FailWrites {
		return ErrWriteFailed
	}
	p.values[key] = append([]byte(nil), data...)
	p.Writes++
	return nil
}
