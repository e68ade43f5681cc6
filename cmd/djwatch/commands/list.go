package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/zoeyai/djwatch/pkg/auto/window"
)

var listCmd = &cobra.Command{
	Use:   "list [FILTER]",
	Short: "列出顶级窗口",
	Long:  `列出标题包含 FILTER 的顶级窗口 (不区分大小写)，FILTER 默认为产品名。`,
	Example: `  # 列出所有 RadioDJ 窗口
  djwatch list

  # 列出所有有标题的窗口
  djwatch list --all`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

var (
	listAll    bool
	listFormat string
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVarP(&listAll, "all", "a", false, "列出全部窗口")
	listCmd.Flags().StringVarP(&listFormat, "format", "f", "table", "输出格式 (table 或 json)")
}

func runList(cmd *cobra.Command, args []string) error {
	filter := cfg.Product
	if len(args) > 0 {
		filter = args[0]
	}
	if listAll {
		filter = ""
	}

	windows, err := window.ListWindows(window.NewDesktop(), filter)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch listFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(windows)
	case "table":
		return writeWindows(out, windows)
	default:
		return fmt.Errorf("不支持的输出格式: %s (table 或 json)", listFormat)
	}
}

func writeWindows(out io.Writer, windows []window.WindowInfo) error {
	if len(windows) == 0 {
		_, err := fmt.Fprintln(out, "没有匹配的窗口")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "句柄\tPID\t标题")
	for _, info := range windows {
		fmt.Fprintf(w, "%#x\t%d\t%s\n", uintptr(info.Handle), info.PID, info.Title)
	}
	return w.Flush()
}
