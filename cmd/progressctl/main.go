// progressctl 在命令行中查看和修改小游戏进度
//
// 与仪表盘共用同一份配置和持久化后端，便于在没有窗口的环境下
// 检查存档、模拟游戏交互、备份和恢复进度。
//
// 用法：
//
//	progressctl [flags] show
//	progressctl [flags] play <game-id>
//	progressctl [flags] reset
//	progressctl [flags] export > backup.yaml
//	progressctl [flags] import backup.yaml
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/decker502/shirubot/data"
	"github.com/decker502/shirubot/pkg/config"
	"github.com/decker502/shirubot/pkg/embedded"
	"github.com/decker502/shirubot/pkg/game"
	"github.com/decker502/shirubot/pkg/locale"
	"github.com/decker502/shirubot/pkg/storage"
)

// errUsage 命令行参数错误
var errUsage = errors.New("usage: progressctl [flags] show | play <game-id> | reset | export | import <file>")

func main() {
	os.Exit(exitCode(run(os.Args[1:], os.Stdout, os.Stderr), os.Stderr))
}

// exitCode 将 run 的结果转换为退出码
// -h / -help 已由 flag 包打印用法，视为正常退出
func exitCode(err error, stderr io.Writer) int {
	if err == nil || errors.Is(err, flag.ErrHelp) {
		return 0
	}
	fmt.Fprintf(stderr, "progressctl: %v\n", err)
	return 1
}

// run 解析参数并执行命令
func run(args []string, stdout, stderr io.Writer) error {
	flags := flag.NewFlagSet("progressctl", flag.ContinueOnError)
	flags.SetOutput(stderr)
	verbose := flags.Bool("verbose", false, "显示详细日志")
	storageName := flags.String("storage", "", "存储后端：gdata / sqlite / memory（覆盖 SHIRUBOT_STORAGE）")
	sqlitePath := flags.String("sqlite-path", "", "sqlite 数据库文件（覆盖 SHIRUBOT_SQLITE_PATH）")
	localeTag := flags.String("locale", "", "输出语言，如 ru-RU、en-US（覆盖 SHIRUBOT_LOCALE）")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		return errUsage
	}

	cfg, err := config.LoadAppConfig(config.DefaultEnvFiles()...)
	if err != nil {
		return err
	}
	if *verbose {
		cfg.Verbose = true
	}
	if *storageName != "" {
		cfg.Storage = *storageName
	}
	if *sqlitePath != "" {
		cfg.SQLitePath = *sqlitePath
	}
	if *localeTag != "" {
		cfg.Locale = *localeTag
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if cfg.Verbose {
		log.SetOutput(stderr)
	} else {
		log.SetOutput(io.Discard)
	}

	embedded.Init(data.FS)
	catalog, err := config.LoadGameCatalog(config.GameCatalogPath)
	if err != nil {
		return err
	}

	backend, err := storage.Open(cfg)
	if err != nil {
		return err
	}
	defer backend.Close()
	if backend.Degraded {
		fmt.Fprintf(stderr, "warning: %s storage unavailable, changes will not be saved\n", cfg.Storage)
	}

	localizer := locale.NewLocalizer(cfg.Locale)
	store := game.NewProgressStore(backend, catalog)
	store.SetDateFormatter(localizer.FormatDate)

	// 损坏的存档不阻止命令执行，reset / import 正是修复手段
	if _, err := store.Load(); err != nil {
		fmt.Fprintf(stderr, "warning: %v\n", err)
	}

	cmd := &command{store: store, localizer: localizer, stdout: stdout}
	rest := flags.Args()[1:]
	switch name := flags.Arg(0); name {
	case "show":
		return cmd.show()
	case "play":
		if len(rest) != 1 {
			return errUsage
		}
		return cmd.play(rest[0])
	case "reset":
		return cmd.reset()
	case "export":
		return cmd.export()
	case "import":
		if len(rest) != 1 {
			return errUsage
		}
		return cmd.importFile(rest[0])
	default:
		return fmt.Errorf("unknown command %q\n%w", name, errUsage)
	}
}

// command 命令执行上下文
type command struct {
	store     *game.ProgressStore
	localizer *locale.Localizer
	stdout    io.Writer
}

// show 以表格形式输出全部进度和汇总统计
func (c *command) show() error {
	l := c.localizer
	w := tabwriter.NewWriter(c.stdout, 0, 0, 2, ' ', 0)

	// 图标放在最后一列：emoji 的显示宽度与 tabwriter 计算的宽度不一致
	fmt.Fprintf(w, "ID\t\t%%\t%s\t%s\t\n", l.GetString(locale.KeyPoints), l.GetString(locale.KeyLastPlayed))
	for _, p := range c.store.Progress() {
		icon := ""
		if entry, ok := c.store.Catalog().Get(p.ID); ok {
			icon = entry.Icon
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n", p.ID, p.Name, p.Progress, l.FormatNumber(p.Score), c.lastPlayed(p), icon)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	stats := c.store.Stats()
	fmt.Fprintf(c.stdout, "\n%s: %s %s (%d%%)\n",
		l.GetString(locale.KeyTotalProgress), l.FormatNumber(stats.TotalScore), l.GetString(locale.KeyPoints), stats.OverallPercent)
	fmt.Fprintf(c.stdout, "%s: %d\n", l.GetString(locale.KeyGamesStarted), stats.Started)
	fmt.Fprintf(c.stdout, "%s: %d\n", l.GetString(locale.KeyGamesCompleted), stats.Completed)
	return nil
}

// play 记录一次游戏交互
// 与仪表盘不同，命令行拒绝目录中不存在的游戏 ID
func (c *command) play(gameID string) error {
	catalog := c.store.Catalog()
	if !catalog.Has(gameID) {
		return fmt.Errorf("unknown game %q (known: %s)", gameID, strings.Join(catalog.IDs(), ", "))
	}

	list, err := c.store.RecordInteraction(gameID)
	if err != nil {
		return err
	}

	p, _ := list.Find(gameID)
	fmt.Fprintf(c.stdout, "%s: %d%%, %s %s, %s\n",
		p.Name, p.Progress, c.localizer.FormatNumber(p.Score), c.localizer.GetString(locale.KeyPoints), c.lastPlayed(p))
	return nil
}

// reset 重置全部进度
func (c *command) reset() error {
	if _, err := c.store.Reset(); err != nil {
		return err
	}
	fmt.Fprintln(c.stdout, "progress reset")
	return nil
}

// export 将当前进度写到标准输出
func (c *command) export() error {
	out, err := c.store.Export()
	if err != nil {
		return err
	}
	_, err = c.stdout.Write(out)
	return err
}

// importFile 从文件恢复进度（Export 的 YAML 或网页版的 JSON）
func (c *command) importFile(path string) error {
	in, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	list, err := c.store.Import(in)
	if err != nil {
		return err
	}
	fmt.Fprintf(c.stdout, "imported %d games, total score %s\n", len(list), c.localizer.FormatNumber(list.TotalScore()))
	return nil
}

func (c *command) lastPlayed(p game.GameProgress) string {
	if p.LastPlayed == game.NeverPlayed {
		return c.localizer.GetString(locale.KeyNeverPlayed)
	}
	return p.LastPlayed
}
