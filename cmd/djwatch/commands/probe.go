package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zoeyai/djwatch/pkg/auto/window"
)

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "检查 RadioDJ 是否仍在刷新界面",
	Long: `在数秒内多次读取剩余时间，全部相同则认为 RadioDJ 已挂起或停止播放。

退出码: 0 存活, 1 出错, 2 无响应`,
	RunE: runProbe,
}

func init() {
	rootCmd.AddCommand(probeCmd)
}

func runProbe(cmd *cobra.Command, args []string) error {
	s, err := newSession(cfg, window.NewDesktop(), false)
	if err != nil {
		return err
	}
	if err := refresh(s); err != nil {
		return err
	}

	dead, err := s.IsDead(cmd.Context())
	if err != nil {
		return err
	}
	if dead {
		return &exitError{code: 2, msg: fmt.Sprintf("%s 无响应: 剩余时间未变化", s.Target().Station)}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s 存活\n", s.Target().Station)
	return nil
}
