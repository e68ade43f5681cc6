package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/zoeyai/djwatch/pkg/auto"
	"github.com/zoeyai/djwatch/pkg/auto/window"
	"github.com/zoeyai/djwatch/pkg/radiodj"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "显示剩余时间、当前歌曲与待播队列",
	Example: `  # 按标题 "Funky24 - <口号> - RadioDJ v..." 查找
  djwatch status --station Funky24

  # 输出 JSON
  djwatch status -s Funky24 --format json`,
	RunE: runStatus,
}

var (
	statusFormat   string
	statusSamples  int
	statusInterval time.Duration
)

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringVarP(&statusFormat, "format", "f", "table", "输出格式 (table 或 json)")
	statusCmd.Flags().IntVar(&statusSamples, "samples", 3, "剩余时间读取次数")
	statusCmd.Flags().DurationVar(&statusInterval, "interval", time.Second, "剩余时间读取间隔")
}

func runStatus(cmd *cobra.Command, args []string) error {
	if statusFormat != "table" && statusFormat != "json" {
		return fmt.Errorf("不支持的输出格式: %s (table 或 json)", statusFormat)
	}

	s, err := newSession(cfg, window.NewDesktop(), false)
	if err != nil {
		return err
	}
	if err := refresh(s); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if statusFormat == "json" {
		np, err := s.Read()
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(np)
	}

	t := s.Target()
	fmt.Fprintf(out, "%s v%s\n", t.Product, t.Version)
	fmt.Fprintf(out, "%s - %s\n\n", t.Station, t.Slogan)

	for i := 0; i < statusSamples; i++ {
		if i > 0 {
			if err := auto.SleepContext(cmd.Context(), statusInterval); err != nil {
				return err
			}
		}
		remaining, err := s.Remaining()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "剩余时间: %s\n", remaining)
	}

	song, err := s.CurrentSong()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\n正在播放: %s - %s\n\n", song.Artist, song.Title)

	tracks, err := s.NextTracks()
	if err != nil {
		return err
	}
	return writeTracks(out, tracks)
}

// writeTracks 以表格输出待播队列
func writeTracks(out io.Writer, tracks []radiodj.Track) error {
	if len(tracks) == 0 {
		_, err := fmt.Fprintln(out, "待播队列为空")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "#\t开始\t时长\t艺术家\t标题")
	for _, t := range tracks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.Slot, t.StartTime, t.Duration, t.Artist, t.Title)
	}
	return w.Flush()
}
