// Package locale 提供界面本地化：语言匹配、日期与数字格式化、界面文本表
//
// 支持的语言：ru-RU（默认，与网页版一致）和 en-US。
// 其它语言标签会匹配到最接近的受支持语言。
package locale

import (
	"fmt"
	"log"
	"path"
	"strings"
	"time"

	"github.com/decker502/shirubot/pkg/embedded"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultLocale 默认界面语言
const DefaultLocale = "ru-RU"

// 有日期格式的语言，第一个为匹配失败时的回退语言
// 实际可选的语言还要求嵌入资源中存在对应的文本表，见 AvailableLocales
var supported = []language.Tag{
	language.MustParse("ru-RU"),
	language.AmericanEnglish,
}

var matcher = language.NewMatcher(supported)

// 各语言的短日期格式（与浏览器 toLocaleDateString 的输出一致）
var dateLayouts = map[string]string{
	"ru-RU": "02.01.2006",
	"en-US": "1/2/2006",
}

// Match 将任意 BCP 47 标签匹配到受支持的语言
// 无法解析的标签回退到 DefaultLocale
func Match(requested string) language.Tag {
	tag, err := language.Parse(requested)
	if err != nil {
		return supported[0]
	}
	_, index, _ := matcher.Match(tag)
	return supported[index]
}

// AvailableLocales 返回嵌入资源中有文本表且有日期格式的语言
//
// 扫描 data/strings/*.txt，默认语言（若存在）排在第一位。
// embedded 未初始化或扫描失败时返回 nil。
func AvailableLocales() []string {
	if !embedded.IsInitialized() {
		return nil
	}

	matches, err := embedded.Glob(StringsPath("*"))
	if err != nil {
		log.Printf("[Locale] Warning: failed to list string tables: %v", err)
		return nil
	}

	var locales []string
	for _, m := range matches {
		name := strings.TrimSuffix(path.Base(m), ".txt")
		if _, ok := dateLayouts[name]; !ok {
			continue
		}
		if name == DefaultLocale {
			locales = append([]string{name}, locales...)
		} else {
			locales = append(locales, name)
		}
	}
	return locales
}

// matchAvailable 在可用语言中匹配请求的标签
// 没有可用语言时退回到 Match
func matchAvailable(requested string, available []string) language.Tag {
	if len(available) == 0 {
		return Match(requested)
	}

	tags := make([]language.Tag, 0, len(available))
	for _, name := range available {
		tags = append(tags, language.MustParse(name))
	}

	tag, err := language.Parse(requested)
	if err != nil {
		return tags[0]
	}
	_, index, _ := language.NewMatcher(tags).Match(tag)
	return tags[index]
}

// Localizer 单一语言的本地化器
type Localizer struct {
	tag        language.Tag
	dateLayout string
	printer    *message.Printer
	strings    *Strings
}

// NewLocalizer 创建本地化器
//
// 参数：
//   - requested: 请求的语言标签，如 "ru", "en-GB"
//
// 只在嵌入了文本表的语言中匹配（见 AvailableLocales）。
// 界面文本从 data/strings/<locale>.txt 加载；
// 加载失败不是致命错误，GetString 会返回 "[KEY]" 形式的占位文本
func NewLocalizer(requested string) *Localizer {
	tag := matchAvailable(requested, AvailableLocales())
	l := &Localizer{
		tag:        tag,
		dateLayout: dateLayouts[tag.String()],
		printer:    message.NewPrinter(tag),
		strings:    emptyStrings(),
	}

	stringsPath := StringsPath(tag.String())
	if !embedded.Exists(stringsPath) {
		log.Printf("[Locale] Warning: no strings for %s (%s)", tag, stringsPath)
		return l
	}

	s, err := LoadStrings(stringsPath)
	if err != nil {
		log.Printf("[Locale] Warning: failed to load strings for %s: %v", tag, err)
	} else {
		l.strings = s
	}
	return l
}

// StringsPath 返回指定语言的界面文本资源路径
func StringsPath(locale string) string {
	return fmt.Sprintf("data/strings/%s.txt", locale)
}

// Tag 返回匹配后的语言标签，如 "ru-RU"
func (l *Localizer) Tag() string {
	return l.tag.String()
}

// FormatDate 按当前语言格式化日期（不含时间）
func (l *Localizer) FormatDate(t time.Time) string {
	return t.Format(l.dateLayout)
}

// FormatNumber 按当前语言格式化整数（千位分隔符）
func (l *Localizer) FormatNumber(n int) string {
	return l.printer.Sprintf("%d", n)
}

// GetString 获取界面文本
func (l *Localizer) GetString(key string) string {
	return l.strings.GetString(key)
}

// FormatDate 使用默认语言格式化日期
// 供不关心界面语言的调用方使用
func FormatDate(t time.Time) string {
	return t.Format(dateLayouts[DefaultLocale])
}
