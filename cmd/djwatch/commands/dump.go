package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/zoeyai/djwatch/internal/logger"
	"github.com/zoeyai/djwatch/pkg/auto/window"
	"github.com/zoeyai/djwatch/pkg/radiodj"
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "输出 RadioDJ 主窗口的子窗口树",
	Long: `按深度优先输出 RadioDJ 主窗口的全部子窗口：句柄与实时文本。

为新版本 RadioDJ 编写 layouts 配置时，用它找出指纹文本与偏移。`,
	RunE: runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	desktop := window.NewDesktop()
	s, err := newSession(cfg, desktop, false)
	if err != nil {
		return err
	}

	if err := s.Locate(); err != nil {
		if errors.Is(err, radiodj.ErrTargetNotFound) {
			hintProcess(s.Target())
		}
		return err
	}
	if err := s.Capture(); err != nil {
		if s.Snapshot() == nil {
			return err
		}
		// 输出树正是为了排查指纹不匹配
		logger.Warn("%v", err)
	}

	return s.Snapshot().Dump(cmd.OutOrStdout(), desktop)
}
