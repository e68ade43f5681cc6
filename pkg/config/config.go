// Package config 管理 djwatch 的 YAML 配置文件
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/zoeyai/djwatch/pkg/auto"
	"github.com/zoeyai/djwatch/pkg/radiodj"
)

// ProbeConfig 存活探测配置
type ProbeConfig struct {
	Samples  int           `yaml:"samples" json:"samples"`
	Interval time.Duration `yaml:"interval" json:"interval"`
}

// Config djwatch 配置
type Config struct {
	Station string `yaml:"station" json:"station"`
	Slogan  string `yaml:"slogan,omitempty" json:"slogan,omitempty"`
	Product string `yaml:"product" json:"product"`

	LogLevel string `yaml:"log_level" json:"log_level"`
	LogFile  string `yaml:"log_file,omitempty" json:"log_file,omitempty"`

	// PollInterval watch 轮询间隔
	PollInterval time.Duration `yaml:"poll_interval" json:"poll_interval"`
	// ProbeEvery 每隔多少次轮询做一次存活探测，0 表示不探测
	ProbeEvery int         `yaml:"probe_every" json:"probe_every"`
	Probe      ProbeConfig `yaml:"probe" json:"probe"`

	ClickDelay  time.Duration `yaml:"click_delay" json:"click_delay"`
	ClickOffset auto.Point    `yaml:"click_offset" json:"click_offset"`

	// HealthAddr gRPC 健康检查监听地址，空表示不启动
	HealthAddr string `yaml:"health_addr,omitempty" json:"health_addr,omitempty"`
	// FeedAddr 读数 HTTP/WebSocket 服务监听地址，空表示不启动
	FeedAddr string `yaml:"feed_addr,omitempty" json:"feed_addr,omitempty"`

	// Layouts 按 RadioDJ 版本选择的界面指纹，空表示只用内置指纹
	Layouts []radiodj.Layout `yaml:"layouts,omitempty" json:"layouts,omitempty"`
}

// DefaultConfig 默认配置
func DefaultConfig() *Config {
	return &Config{
		Product:      radiodj.DefaultProduct,
		LogLevel:     "info",
		PollInterval: auto.DefaultPollInterval,
		ProbeEvery:   30,
		Probe: ProbeConfig{
			Samples:  auto.DefaultProbeSamples,
			Interval: auto.DefaultProbeInterval,
		},
		ClickDelay: auto.DefaultClickDelay,
	}
}

// Validate 校验配置
func (c *Config) Validate() error {
	var errs []error

	if c.PollInterval <= 0 {
		errs = append(errs, fmt.Errorf("poll_interval 必须大于 0: %s", c.PollInterval))
	}
	if c.ProbeEvery < 0 {
		errs = append(errs, fmt.Errorf("probe_every 不能为负数: %d", c.ProbeEvery))
	}
	if c.Probe.Samples < 2 {
		errs = append(errs, fmt.Errorf("probe.samples 至少为 2: %d", c.Probe.Samples))
	}
	if c.Probe.Interval < 0 || c.ClickDelay < 0 {
		errs = append(errs, errors.New("probe.interval 与 click_delay 不能为负数"))
	}
	for _, l := range c.Layouts {
		if err := l.Validate(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// TimingOptions 转换为自动化时序选项
func (c *Config) TimingOptions() []auto.Option {
	return []auto.Option{
		auto.WithClickDelay(c.ClickDelay),
		auto.WithClickOffset(c.ClickOffset.X, c.ClickOffset.Y),
		auto.WithProbe(c.Probe.Samples, c.Probe.Interval),
	}
}

// Manager 配置管理器
type Manager struct {
	configDir  string
	configFile string
	mu         sync.RWMutex
}

// NewManager 创建配置管理器
func NewManager() *Manager {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return NewManagerWithDir(filepath.Join(homeDir, ".djwatch"))
}

// NewManagerWithDir 使用指定目录创建配置管理器
func NewManagerWithDir(configDir string) *Manager {
	return &Manager{
		configDir:  configDir,
		configFile: filepath.Join(configDir, "config.yaml"),
	}
}

// NewManagerWithFile 使用指定配置文件创建配置管理器
func NewManagerWithFile(configFile string) *Manager {
	return &Manager{
		configDir:  filepath.Dir(configFile),
		configFile: configFile,
	}
}

// ensureDir 确保配置目录存在
func (m *Manager) ensureDir() error {
	return os.MkdirAll(m.configDir, 0755)
}

// Load 加载配置，文件不存在时返回默认配置；文件中缺省的字段保持默认值
func (m *Manager) Load() (*Config, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, err := os.ReadFile(m.configFile)
	if errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return DefaultConfig(), fmt.Errorf("读取配置文件失败: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return DefaultConfig(), fmt.Errorf("解析配置文件失败: %w", err)
	}
	if err := config.Validate(); err != nil {
		return config, fmt.Errorf("配置无效 %s: %w", m.configFile, err)
	}

	return config, nil
}

// Save 保存配置
func (m *Manager) Save(config *Config) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureDir(); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("序列化配置失败: %w", err)
	}

	if err := os.WriteFile(m.configFile, data, 0600); err != nil {
		return fmt.Errorf("写入配置文件失败: %w", err)
	}

	return nil
}

// Clear 清除配置
func (m *Manager) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, err := os.Stat(m.configFile); os.IsNotExist(err) {
		return nil
	}

	return os.Remove(m.configFile)
}

// GetConfigDir 获取配置目录
func (m *Manager) GetConfigDir() string {
	return m.configDir
}

// GetConfigFile 获取配置文件路径
func (m *Manager) GetConfigFile() string {
	return m.configFile
}

// Exists 检查配置文件是否存在
func (m *Manager) Exists() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, err := os.Stat(m.configFile)
	return err == nil
}

// 全局配置管理器
var defaultManager = NewManager()

// GetDefaultManager 获取默认配置管理器
func GetDefaultManager() *Manager {
	return defaultManager
}

// Load 使用默认管理器加载配置
func Load() (*Config, error) {
	return defaultManager.Load()
}

// Save 使用默认管理器保存配置
func Save(config *Config) error {
	return defaultManager.Save(config)
}

// Clear 使用默认管理器清除配置
func Clear() error {
	return defaultManager.Clear()
}
