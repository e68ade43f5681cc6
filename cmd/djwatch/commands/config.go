package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/zoeyai/djwatch/pkg/config"
	"github.com/zoeyai/djwatch/pkg/radiodj"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "管理 djwatch 配置",
	// 配置文件无效时也要能查看路径或重新生成
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "显示当前配置 (含参数与环境变量覆盖)",
	Example: `  djwatch config show
  djwatch config show --format json`,
	RunE: runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "显示配置文件路径",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), configManager().GetConfigFile())
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "生成默认配置文件",
	Example: `  # 生成配置，电台名取自参数
  djwatch config init --station Funky24

  # 同时写入内置界面指纹，便于为其他版本修改
  djwatch config init -s Funky24 --with-layout`,
	RunE: runConfigInit,
}

var (
	configFormat     string
	configForce      bool
	configWithLayout bool
)

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd, configPathCmd, configInitCmd)

	configShowCmd.Flags().StringVarP(&configFormat, "format", "f", "yaml", "输出格式 (yaml 或 json)")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "覆盖已有配置文件")
	configInitCmd.Flags().BoolVar(&configWithLayout, "with-layout", false, "写入内置界面指纹")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	c, err := configManager().Load()
	if err != nil {
		return err
	}
	applyOverrides(c)

	out := cmd.OutOrStdout()
	switch configFormat {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(c)
	default:
		return fmt.Errorf("不支持的输出格式: %s (yaml 或 json)", configFormat)
	}
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	m := configManager()
	if m.Exists() && !configForce {
		return fmt.Errorf("配置文件已存在: %s (使用 --force 覆盖)", m.GetConfigFile())
	}

	c := config.DefaultConfig()
	applyOverrides(c)
	if configWithLayout {
		c.Layouts = []radiodj.Layout{radiodj.DefaultLayout()}
	}

	if err := m.Save(c); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "配置已保存到 %s\n", m.GetConfigFile())
	return nil
}
