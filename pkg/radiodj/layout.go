package radiodj

import (
	"errors"
	"fmt"
	"strings"
)

// OnAirLayout 播出区：倒计时与“播放下一首”按钮
type OnAirLayout struct {
	Fingerprint string `yaml:"fingerprint" json:"fingerprint"`
	Remaining   int    `yaml:"remaining" json:"remaining"`
	PlayNext    int    `yaml:"play_next" json:"play_next"`
}

// SongLayout 当前歌曲信息区
type SongLayout struct {
	Fingerprint string `yaml:"fingerprint" json:"fingerprint"`
	Artist      int    `yaml:"artist" json:"artist"`
	Title       int    `yaml:"title" json:"title"`
}

// CartLayout 待播队列中单个 cart 块
type CartLayout struct {
	// Fingerprints 前两个子窗口的文本，第三个子窗口文本为空
	Fingerprints []string `yaml:"fingerprints" json:"fingerprints"`
	Number       int      `yaml:"number" json:"number"`
	StartTime    int      `yaml:"start_time" json:"start_time"`
	Duration     int      `yaml:"duration" json:"duration"`
	Artist       int      `yaml:"artist" json:"artist"`
	Title        int      `yaml:"title" json:"title"`
}

// Layout 某个 RadioDJ 版本的界面指纹：锚点文本加子窗口偏移。
// 不同版本控件顺序可能变化，新版本只需新增一份 Layout。
type Layout struct {
	// Version 适用的版本前缀（按点分段匹配），空表示任意版本
	Version string      `yaml:"version" json:"version"`
	OnAir   OnAirLayout `yaml:"on_air" json:"on_air"`
	Song    SongLayout  `yaml:"song" json:"song"`
	Cart    CartLayout  `yaml:"cart" json:"cart"`
	// FirstMatch 指纹重复时取枚举顺序中的第一个，而不是报错
	FirstMatch bool `yaml:"first_match" json:"first_match"`
}

// DefaultLayout RadioDJ v1.8 以来的界面指纹
func DefaultLayout() Layout {
	return Layout{
		OnAir: OnAirLayout{
			Fingerprint: "CLOCK",
			Remaining:   11,
			PlayNext:    15,
		},
		Song: SongLayout{
			Fingerprint: "Copyright:",
			Artist:      16,
			Title:       17,
		},
		Cart: CartLayout{
			Fingerprints: []string{"S", "V"},
			Number:       9,
			StartTime:    4,
			Duration:     5,
			Artist:       7,
			Title:        10,
		},
	}
}

// Validate 校验指纹与偏移
func (l Layout) Validate() error {
	var errs []error

	if l.OnAir.Fingerprint == "" {
		errs = append(errs, errors.New("on_air.fingerprint 不能为空"))
	}
	if l.Song.Fingerprint == "" {
		errs = append(errs, errors.New("song.fingerprint 不能为空"))
	}
	if len(l.Cart.Fingerprints) != 2 {
		errs = append(errs, fmt.Errorf("cart.fingerprints 需要 2 项, 实际 %d", len(l.Cart.Fingerprints)))
	} else if l.Cart.Fingerprints[0] == "" || l.Cart.Fingerprints[1] == "" {
		errs = append(errs, errors.New("cart.fingerprints 不能为空"))
	}

	offsets := map[string]int{
		"on_air.remaining": l.OnAir.Remaining,
		"on_air.play_next": l.OnAir.PlayNext,
		"song.artist":      l.Song.Artist,
		"song.title":       l.Song.Title,
		"cart.number":      l.Cart.Number,
		"cart.start_time":  l.Cart.StartTime,
		"cart.duration":    l.Cart.Duration,
		"cart.artist":      l.Cart.Artist,
		"cart.title":       l.Cart.Title,
	}
	for name, offset := range offsets {
		if offset < 0 {
			errs = append(errs, fmt.Errorf("%s 偏移不能为负数: %d", name, offset))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("界面指纹配置无效 (version=%q): %w", l.Version, errors.Join(errs...))
	}
	return nil
}

// matchesVersion 版本前缀按点分段匹配："9.2" 匹配 "9.2.1.40"，不匹配 "9.20.1.0"
func (l Layout) matchesVersion(version string) bool {
	if l.Version == "" {
		return true
	}
	return version == l.Version || strings.HasPrefix(version, l.Version+".")
}

// SelectLayout 选择版本前缀最长的匹配项，没有匹配时返回 DefaultLayout
func SelectLayout(layouts []Layout, version string) Layout {
	best := -1
	for i, l := range layouts {
		if !l.matchesVersion(version) {
			continue
		}
		if best < 0 || len(l.Version) > len(layouts[best].Version) {
			best = i
		}
	}

	if best < 0 {
		return DefaultLayout()
	}
	return layouts[best]
}
