package auto

import (
	"context"
	"time"
)

// Option 配置选项函数类型
type Option func(*Options)

// SleepFunc 可注入的等待函数，测试中替换为不真实等待的实现
type SleepFunc func(ctx context.Context, d time.Duration) error

// Options 自动化操作配置
type Options struct {
	// ClickOffset 点击偏移量（相对控件左上角）
	ClickOffset Point
	// ClickDelay 激活窗口后到点击之间的等待
	ClickDelay time.Duration
	// ProbeSamples 存活探测采样次数
	ProbeSamples int
	// ProbeInterval 存活探测采样间隔
	ProbeInterval time.Duration
	// Sleep 等待实现
	Sleep SleepFunc
}

// Point 表示二维坐标点
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Region 表示矩形区域
type Region struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// 默认时序，与 RadioDJ 界面刷新节奏一致
const (
	DefaultClickDelay    = 200 * time.Millisecond
	DefaultProbeSamples  = 4
	DefaultProbeInterval = 1100 * time.Millisecond
)

// DefaultOptions 默认配置
func DefaultOptions() *Options {
	return &Options{
		ClickOffset:   Point{X: 0, Y: 0},
		ClickDelay:    DefaultClickDelay,
		ProbeSamples:  DefaultProbeSamples,
		ProbeInterval: DefaultProbeInterval,
		Sleep:         SleepContext,
	}
}

// ApplyOptions 应用配置选项
func ApplyOptions(opts ...Option) *Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithClickOffset 设置点击偏移量
func WithClickOffset(x, y int) Option {
	return func(o *Options) {
		o.ClickOffset = Point{X: x, Y: y}
	}
}

// WithClickDelay 设置点击前等待
func WithClickDelay(d time.Duration) Option {
	return func(o *Options) {
		o.ClickDelay = d
	}
}

// WithProbe 设置存活探测采样次数与间隔
func WithProbe(samples int, interval time.Duration) Option {
	return func(o *Options) {
		if samples >= 2 {
			o.ProbeSamples = samples
		}
		o.ProbeInterval = interval
	}
}

// WithSleep 替换等待实现
func WithSleep(fn SleepFunc) Option {
	return func(o *Options) {
		if fn != nil {
			o.Sleep = fn
		}
	}
}

// DefaultPollInterval 默认轮询间隔
const DefaultPollInterval = time.Second
