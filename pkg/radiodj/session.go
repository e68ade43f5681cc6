// Package radiodj 读取 RadioDJ 播放器的界面状态：定位主窗口、快照子窗口树、
// 按指纹解析锚点，再按固定偏移读取倒计时、当前歌曲与待播队列。
package radiodj

import (
	"errors"
	"fmt"

	"github.com/zoeyai/djwatch/internal/logger"
	"github.com/zoeyai/djwatch/pkg/auto"
	"github.com/zoeyai/djwatch/pkg/auto/window"
)

// Clicker 在屏幕坐标处单击左键
type Clicker interface {
	ClickAt(x, y int) error
}

// ProcessInspector 查询进程启动时间，用于识别进程重启
type ProcessInspector interface {
	StartTime(pid int) (int64, error)
}

// Song 当前播放歌曲
type Song struct {
	Artist string `json:"artist"`
	Title  string `json:"title"`
}

// Track 待播队列中的一首
type Track struct {
	Slot      string `json:"slot"`
	Artist    string `json:"artist"`
	Title     string `json:"title"`
	StartTime string `json:"start_time"`
	Duration  string `json:"duration"`
}

// NowPlaying 一次完整读取
type NowPlaying struct {
	Station   string  `json:"station"`
	Version   string  `json:"version"`
	Remaining string  `json:"remaining"`
	Song      Song    `json:"song"`
	Next      []Track `json:"next"`
}

// Session 一个 RadioDJ 实例的抓取会话。
// 状态顺序：未定位 → 已定位 → 已快照 → 锚点已解析；只能通过 Refresh 从头重来。
type Session struct {
	desktop window.Desktop
	focuser window.Focuser
	clicker Clicker
	procs   ProcessInspector
	log     *logger.Logger
	opts    *auto.Options

	target  *Target
	layout  Layout
	layouts []Layout

	snap    *Snapshot
	anchors Anchors
}

// Option 会话配置选项
type Option func(*Session)

// WithFocuser 设置窗口激活实现（PlayNext 需要）
func WithFocuser(f window.Focuser) Option {
	return func(s *Session) { s.focuser = f }
}

// WithClicker 设置鼠标点击实现（PlayNext 需要）
func WithClicker(c Clicker) Option {
	return func(s *Session) { s.clicker = c }
}

// WithProcessInspector 设置进程检查，用于识别进程重启
func WithProcessInspector(p ProcessInspector) Option {
	return func(s *Session) { s.procs = p }
}

// WithLayouts 设置按版本选择的 Layout 集合，定位后按版本号选用
func WithLayouts(layouts []Layout) Option {
	return func(s *Session) { s.layouts = layouts }
}

// WithLogger 设置日志
func WithLogger(l *logger.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// WithTiming 设置等待、采样与点击参数
func WithTiming(opts ...auto.Option) Option {
	return func(s *Session) {
		for _, opt := range opts {
			opt(s.opts)
		}
	}
}

// NewSession 创建会话，layout 为未配置 Layout 集合时使用的指纹
func NewSession(d window.Desktop, t *Target, layout Layout, opts ...Option) (*Session, error) {
	if d == nil || t == nil {
		return nil, errors.New("desktop 与 target 不能为空")
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		desktop: d,
		target:  t,
		layout:  layout,
		opts:    auto.DefaultOptions(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = logger.Default().Component("radiodj")
	}
	for _, l := range s.layouts {
		if err := l.Validate(); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Target 当前目标
func (s *Session) Target() *Target { return s.target }

// Layout 当前使用的界面指纹
func (s *Session) Layout() Layout { return s.layout }

// Snapshot 最近一次快照，未快照时为 nil
func (s *Session) Snapshot() *Snapshot { return s.snap }

// Anchors 最近一次解析出的锚点
func (s *Session) Anchors() Anchors { return s.anchors }

// Locate 定位目标窗口，旧快照与锚点随之失效
func (s *Session) Locate() error {
	s.snap = nil
	s.anchors = Anchors{}

	h, err := s.target.Locate(s.desktop)
	if err != nil {
		return err
	}

	if s.procs != nil && s.target.PID != 0 {
		started, err := s.procs.StartTime(s.target.PID)
		if err != nil {
			s.log.Warn("无法获取 RadioDJ 进程启动时间 PID=%d: %v", s.target.PID, err)
		} else {
			s.target.StartTime = started
		}
	}

	if len(s.layouts) > 0 {
		s.layout = SelectLayout(s.layouts, s.target.Version)
	}

	s.log.Info("已定位 %s v%s 电台=%q 口号=%q 句柄=%#x PID=%d",
		s.target.Product, s.target.Version, s.target.Station, s.target.Slogan, uintptr(h), s.target.PID)
	return nil
}

// Capture 重新快照整棵子窗口树并解析锚点。
// 锚点解析失败时快照仍然保留，已解析的锚点可以继续读取。
func (s *Session) Capture() error {
	if !s.target.Located() {
		return ErrTargetNotFound
	}

	snap, err := TakeSnapshot(s.desktop, s.target.Handle)
	if err != nil {
		return err
	}
	s.snap = snap
	if n := snap.Orphans(); n > 0 {
		s.log.Debug("快照中有 %d 个子窗口的父窗口未先出现，按深度 1 处理", n)
	}

	anchors, err := ResolveAnchors(snap, s.layout)
	s.anchors = anchors
	s.log.Debug("快照完成: %d 个子窗口, 播出区=%#x 歌曲区=%#x 待播=%d",
		snap.Len(), uintptr(anchors.OnAir), uintptr(anchors.Song), len(anchors.Next))
	if err != nil {
		return fmt.Errorf("锚点解析失败: %w", err)
	}
	return nil
}

// Refresh 定位、快照、解析锚点
func (s *Session) Refresh() error {
	if err := s.Locate(); err != nil {
		return err
	}
	return s.Capture()
}

// Stale 目标窗口已销毁或进程已重启时返回 ErrStale
func (s *Session) Stale() error {
	if !s.target.Located() {
		return ErrTargetNotFound
	}
	if !s.desktop.IsWindow(s.target.Handle) {
		return fmt.Errorf("%w: 窗口 %#x 已不存在", ErrStale, uintptr(s.target.Handle))
	}

	if s.procs != nil && s.target.PID != 0 && s.target.StartTime != 0 {
		started, err := s.procs.StartTime(s.target.PID)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrStale, err)
		}
		if started != s.target.StartTime {
			return fmt.Errorf("%w: 进程 PID=%d 已重启", ErrStale, s.target.PID)
		}
	}
	return nil
}

// field 返回锚点下第 offset 个子窗口
func (s *Session) field(anchor window.Handle, name string, offset int) (window.Handle, error) {
	if s.snap == nil {
		return 0, ErrNotSnapshotted
	}
	if anchor == 0 {
		return 0, fmt.Errorf("%w: 字段 %s", ErrAnchorUnresolved, name)
	}
	if !s.desktop.IsWindow(anchor) {
		return 0, fmt.Errorf("%w: 锚点 %#x 已不存在", ErrStale, uintptr(anchor))
	}

	nodes := s.snap.Children(anchor)
	if offset < 0 || offset >= len(nodes) {
		return 0, &LayoutMismatchError{Field: name, Anchor: anchor, Offset: offset, Children: len(nodes)}
	}
	return nodes[offset].Handle, nil
}

// read 实时读取锚点下第 offset 个子窗口的文本
func (s *Session) read(anchor window.Handle, name string, offset int) (string, error) {
	h, err := s.field(anchor, name, offset)
	if err != nil {
		return "", err
	}

	text, err := s.desktop.Text(h)
	if err != nil {
		return "", fmt.Errorf("读取字段 %s 失败: %w", name, err)
	}
	return text, nil
}

// Remaining 播出区倒计时
func (s *Session) Remaining() (string, error) {
	return s.read(s.anchors.OnAir, "on_air.remaining", s.layout.OnAir.Remaining)
}

// CurrentSong 当前歌曲（艺术家，标题）
func (s *Session) CurrentSong() (Song, error) {
	artist, err := s.read(s.anchors.Song, "song.artist", s.layout.Song.Artist)
	if err != nil {
		return Song{}, err
	}
	title, err := s.read(s.anchors.Song, "song.title", s.layout.Song.Title)
	if err != nil {
		return Song{}, err
	}
	return Song{Artist: artist, Title: title}, nil
}

// NextTracks 待播队列，顺序与 cart 锚点一致
func (s *Session) NextTracks() ([]Track, error) {
	if s.snap == nil {
		return nil, ErrNotSnapshotted
	}

	c := s.layout.Cart
	tracks := make([]Track, 0, len(s.anchors.Next))

	for _, anchor := range s.anchors.Next {
		var (
			t   Track
			err error
		)
		fields := []struct {
			name   string
			offset int
			dst    *string
		}{
			{"cart.number", c.Number, &t.Slot},
			{"cart.start_time", c.StartTime, &t.StartTime},
			{"cart.duration", c.Duration, &t.Duration},
			{"cart.artist", c.Artist, &t.Artist},
			{"cart.title", c.Title, &t.Title},
		}
		for _, f := range fields {
			if *f.dst, err = s.read(anchor, f.name, f.offset); err != nil {
				return nil, err
			}
		}
		tracks = append(tracks, t)
	}

	return tracks, nil
}

// Read 一次性读取倒计时、当前歌曲与待播队列
func (s *Session) Read() (NowPlaying, error) {
	np := NowPlaying{Station: s.target.Station, Version: s.target.Version}

	var err error
	if np.Remaining, err = s.Remaining(); err != nil {
		return np, err
	}
	if np.Song, err = s.CurrentSong(); err != nil {
		return np, err
	}
	if np.Next, err = s.NextTracks(); err != nil {
		return np, err
	}
	return np, nil
}
