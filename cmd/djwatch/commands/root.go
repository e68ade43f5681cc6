// Package commands djwatch 命令行
package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zoeyai/djwatch/internal/logger"
	"github.com/zoeyai/djwatch/pkg/config"
)

// 版本信息 (可通过 ldflags 注入)
var (
	Version   = "1.0.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

var (
	cfgFile string
	cfg     *config.Config

	rootCmd = &cobra.Command{
		Use:   "djwatch",
		Short: "djwatch - RadioDJ 播放状态监视工具",
		Long: `djwatch 通过遍历 RadioDJ 主窗口的子窗口树读取播放状态：
剩余时间、当前歌曲与待播队列，并可点击“播放下一首”按钮。

目标窗口按标题识别：
  <电台名> - <口号> - RadioDJ v<major.minor.build.revision>

命令行参数优先级高于环境变量 (DJWATCH_STATION 等)，环境变量高于配置文件。`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}
)

// exitError 以指定退出码结束进程
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "配置文件 (默认 $HOME/.djwatch/config.yaml)")
	flags.StringP("station", "s", "", "电台名称 (窗口标题第一段)")
	flags.String("slogan", "", "电台口号 (为空时从窗口标题解析)")
	flags.String("product", "", "标题中的产品名 (默认 RadioDJ)")
	flags.String("log-level", "", "日志级别 (debug, info, warn, error)")
	flags.String("log-file", "", "日志文件 (JSON 行)")

	viper.BindPFlag("station", flags.Lookup("station"))
	viper.BindPFlag("slogan", flags.Lookup("slogan"))
	viper.BindPFlag("product", flags.Lookup("product"))
	viper.BindPFlag("log_level", flags.Lookup("log-level"))
	viper.BindPFlag("log_file", flags.Lookup("log-file"))

	viper.SetEnvPrefix("DJWATCH")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// configManager --config 指定时使用该文件，否则使用默认位置
func configManager() *config.Manager {
	if cfgFile != "" {
		return config.NewManagerWithFile(cfgFile)
	}
	return config.GetDefaultManager()
}

// setup 加载配置、叠加参数与环境变量、初始化日志
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := configManager().Load()
	if err != nil {
		return err
	}
	applyOverrides(loaded)
	cfg = loaded

	log := logger.Default()
	log.SetLevel(logger.ParseLevel(cfg.LogLevel))
	if cfg.LogFile != "" {
		if err := log.SetFile(true, cfg.LogFile); err != nil {
			return err
		}
	}
	return nil
}

// applyOverrides 用非空的参数或环境变量覆盖配置
func applyOverrides(c *config.Config) {
	for key, dst := range map[string]*string{
		"station":   &c.Station,
		"slogan":    &c.Slogan,
		"product":   &c.Product,
		"log_level": &c.LogLevel,
		"log_file":  &c.LogFile,
	} {
		if v := viper.GetString(key); v != "" {
			*dst = v
		}
	}
}

// Execute 执行根命令，Ctrl+C 取消正在等待的操作
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	logger.Default().Close()

	if err == nil {
		return
	}
	var exit *exitError
	if errors.As(err, &exit) {
		if exit.msg != "" {
			fmt.Fprintln(os.Stderr, exit.msg)
		}
		os.Exit(exit.code)
	}
	fmt.Fprintf(os.Stderr, "错误: %v\n", err)
	os.Exit(1)
}
