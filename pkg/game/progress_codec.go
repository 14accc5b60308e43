package game

import (
	"errors"
	"fmt"

	"github.com/decker502/shirubot/pkg/config"
	"gopkg.in/yaml.v3"
)

// ErrCorruptProgress 持久化的进度数据无法解析或结构不合法
var ErrCorruptProgress = errors.New("corrupt progress data")

// EncodeProgress 将进度集合序列化为 YAML
func EncodeProgress(list ProgressList) ([]byte, error) {
	if list == nil {
		list = ProgressList{}
	}
	data, err := yaml.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal progress: %w", err)
	}
	return data, nil
}

// DecodeProgress 解析进度集合
//
// JSON 是 YAML 的子集，因此网页版 localStorage 导出的 JSON 数组也能直接解析。
// 解析或校验失败时返回包装了 ErrCorruptProgress 的错误。
// progress 和 score 必须是整数，5.5 之类的小数视为损坏而不是截断。
func DecodeProgress(data []byte) (ProgressList, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptProgress, err)
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}
	if err := checkIntegerFields(doc.Content[0]); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptProgress, err)
	}

	var list ProgressList
	if err := doc.Decode(&list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptProgress, err)
	}
	if err := validateProgress(list); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptProgress, err)
	}
	return list, nil
}

// 必须为整数的记录字段
var integerFields = map[string]bool{"progress": true, "score": true}

// checkIntegerFields 检查每条记录的整数字段是否为 !!int 标量
// 非序列或非映射的结构交给 Decode 报错
func checkIntegerFields(root *yaml.Node) error {
	if root.Kind != yaml.SequenceNode {
		return nil
	}
	for i, item := range root.Content {
		if item.Kind != yaml.MappingNode {
			continue
		}
		for j := 0; j+1 < len(item.Content); j += 2 {
			key, value := item.Content[j], item.Content[j+1]
			if !integerFields[key.Value] {
				continue
			}
			if value.Kind != yaml.ScalarNode || value.ShortTag() != "!!int" {
				return fmt.Errorf("record #%d: %s must be an integer, got %q", i, key.Value, value.Value)
			}
		}
	}
	return nil
}

// validateProgress 校验记录结构：ID 非空且唯一，进度在 [0, 100]，积分非负
func validateProgress(list ProgressList) error {
	seen := make(map[string]bool, len(list))
	for i, p := range list {
		if p.ID == "" {
			return fmt.Errorf("record #%d: id is required", i)
		}
		if seen[p.ID] {
			return fmt.Errorf("record %q: duplicate id", p.ID)
		}
		seen[p.ID] = true

		if p.Progress < 0 || p.Progress > MaxProgress {
			return fmt.Errorf("record %q: progress %d out of range [0, %d]", p.ID, p.Progress, MaxProgress)
		}
		if p.Score < 0 {
			return fmt.Errorf("record %q: negative score %d", p.ID, p.Score)
		}
	}
	return nil
}

// reconcileResult 集合与目录对齐的结果
type reconcileResult struct {
	list     ProgressList
	added    []string // 补齐的目录 ID
	dropped  []string // 丢弃的未知 ID
	filled   []string // 补全了缺失字段的 ID
	modified bool
}

// reconcileProgress 将解析出的集合与目录对齐
//
// 已知记录保持原有顺序和取值，缺失的 name / lastPlayed 用目录名称和 NeverPlayed 补全；
// 目录中缺失的游戏按目录顺序追加默认记录；不在目录中的记录被丢弃。
// 已与目录一致的完整集合原样返回。
func reconcileProgress(list ProgressList, catalog *config.GameCatalog) reconcileResult {
	result := reconcileResult{list: make(ProgressList, 0, catalog.Len())}

	present := make(map[string]bool, len(list))
	for _, p := range list {
		if !catalog.Has(p.ID) {
			result.dropped = append(result.dropped, p.ID)
			continue
		}
		present[p.ID] = true

		if p.Name == "" || p.LastPlayed == "" {
			if p.Name == "" {
				entry, _ := catalog.Get(p.ID)
				p.Name = entry.Name
			}
			if p.LastPlayed == "" {
				p.LastPlayed = NeverPlayed
			}
			result.filled = append(result.filled, p.ID)
		}
		result.list = append(result.list, p)
	}

	for _, game := range catalog.Games {
		if present[game.ID] {
			continue
		}
		result.added = append(result.added, game.ID)
		result.list = append(result.list, defaultRecord(game))
	}

	result.modified = len(result.added) > 0 || len(result.dropped) > 0 || len(result.filled) > 0
	return result
}
