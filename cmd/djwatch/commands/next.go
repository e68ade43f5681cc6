package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zoeyai/djwatch/pkg/auto/window"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "点击“播放下一首”按钮",
	Long: `将 RadioDJ 窗口置于前台并点击播出区的“播放下一首”按钮。

点击期间会移动鼠标；无法确认 RadioDJ 是否响应了点击。`,
	RunE: runNext,
}

func init() {
	rootCmd.AddCommand(nextCmd)
}

func runNext(cmd *cobra.Command, args []string) error {
	s, err := newSession(cfg, window.NewDesktop(), true)
	if err != nil {
		return err
	}
	if err := refresh(s); err != nil {
		return err
	}

	if err := s.PlayNext(cmd.Context()); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "已点击播放下一首")
	return nil
}
