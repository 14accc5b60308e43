package locale

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/decker502/shirubot/pkg/embedded"
)

// 界面文本键
const (
	KeyAppTitle         = "APP_TITLE"
	KeyTotalProgress    = "TOTAL_PROGRESS"
	KeyPoints           = "POINTS"
	KeyStatistics       = "STATISTICS"
	KeyGamesStarted     = "GAMES_STARTED"
	KeyGamesCompleted   = "GAMES_COMPLETED"
	KeyNeverPlayed      = "NEVER_PLAYED"
	KeyLastPlayed       = "LAST_PLAYED"
	KeyReset            = "RESET"
	KeyProgressNotSaved = "PROGRESS_NOT_SAVED"
)

// Strings 界面文本表
// 从 data/strings/<locale>.txt 加载，支持通过键快速查询
type Strings struct {
	strings map[string]string // 键 -> 文本映射
}

func emptyStrings() *Strings {
	return &Strings{strings: make(map[string]string)}
}

// LoadStrings 从嵌入资源加载界面文本表
//
// 文件格式：
//
//	[KEY]
//	文本内容
//
// 示例：
//
//	[NEVER_PLAYED]
//	Никогда
func LoadStrings(path string) (*Strings, error) {
	file, err := embedded.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open strings file %s: %w", path, err)
	}
	defer file.Close()

	s, err := ParseStrings(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read strings file %s: %w", path, err)
	}
	return s, nil
}

// ParseStrings 解析界面文本表
func ParseStrings(r io.Reader) (*Strings, error) {
	s := emptyStrings()

	scanner := bufio.NewScanner(r)
	var currentKey string
	for scanner.Scan() {
		line := scanner.Text()

		if strings.TrimSpace(line) == "" {
			continue
		}

		// 键定义（格式：[KEY]）
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			currentKey = strings.TrimSpace(line[1 : len(line)-1])
			continue
		}

		// 键之后的第一行为值，其余行忽略
		if currentKey != "" {
			s.strings[currentKey] = line
			currentKey = ""
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return s, nil
}

// Len 返回已加载的文本条数
func (s *Strings) Len() int {
	return len(s.strings)
}

// GetString 根据键获取文本
// 键不存在时返回带方括号的键名（调试用）
func (s *Strings) GetString(key string) string {
	if text, ok := s.strings[key]; ok {
		return text
	}
	return "[" + key + "]"
}
