package radiodj

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/zoeyai/djwatch/pkg/auto/window"
)

// DefaultProduct 窗口标题中的产品名
const DefaultProduct = "RadioDJ"

const versionPattern = `v(\d+\.\d+\.\d+\.\d+)`

// Target 某个电台的 RadioDJ 实例
// 窗口标题格式: "<电台名> - <口号> - RadioDJ v<major.minor.build.revision>"
type Target struct {
	Station string `json:"station"`
	Slogan  string `json:"slogan"`
	Product string `json:"product"`

	// 以下字段由 Locate 填充
	Version   string        `json:"version"`
	Title     string        `json:"title"`
	Handle    window.Handle `json:"handle"`
	PID       int           `json:"pid"`
	StartTime int64         `json:"start_time"`

	sloganGiven bool
	pattern     *regexp.Regexp
}

// TargetOption 目标配置选项
type TargetOption func(*Target)

// WithProduct 设置标题中的产品名
func WithProduct(product string) TargetOption {
	return func(t *Target) {
		if product != "" {
			t.Product = product
		}
	}
}

// NewTarget 创建目标，slogan 为空时从窗口标题中解析
func NewTarget(station, slogan string, opts ...TargetOption) (*Target, error) {
	if strings.TrimSpace(station) == "" {
		return nil, errors.New("电台名称不能为空")
	}

	t := &Target{
		Station:     station,
		Slogan:      slogan,
		Product:     DefaultProduct,
		sloganGiven: slogan != "",
	}
	for _, opt := range opts {
		opt(t)
	}

	pattern, err := regexp.Compile(t.Pattern())
	if err != nil {
		return nil, fmt.Errorf("标题匹配表达式无效: %w", err)
	}
	t.pattern = pattern

	return t, nil
}

// Pattern 标题匹配表达式（不区分大小写，锚定标题开头）
func (t *Target) Pattern() string {
	station := regexp.QuoteMeta(t.Station)
	product := regexp.QuoteMeta(t.Product)
	if t.sloganGiven {
		return fmt.Sprintf(`(?i)^%s - %s - %s %s`, station, regexp.QuoteMeta(t.Slogan), product, versionPattern)
	}
	return fmt.Sprintf(`(?i)^%s - ([^-]*)- %s %s`, station, product, versionPattern)
}

// Match 匹配窗口标题，返回版本号与口号
func (t *Target) Match(title string) (version, slogan string, ok bool) {
	m := t.pattern.FindStringSubmatch(title)
	if m == nil {
		return "", "", false
	}
	if t.sloganGiven {
		return m[1], t.Slogan, true
	}
	return m[2], strings.TrimSpace(m[1]), true
}

// Located 是否已定位到窗口
func (t *Target) Located() bool {
	return t.Handle != 0
}

// Locate 单次枚举顶级窗口，首个标题匹配的窗口即为目标
func (t *Target) Locate(d window.Desktop) (window.Handle, error) {
	t.Version = ""
	t.Title = ""
	t.Handle = 0
	t.PID = 0
	t.StartTime = 0
	if !t.sloganGiven {
		t.Slogan = ""
	}

	handles, err := d.TopWindows()
	if err != nil {
		return 0, fmt.Errorf("枚举顶级窗口失败: %w", err)
	}

	for _, h := range handles {
		title, err := d.Text(h)
		if err != nil || title == "" {
			continue
		}

		version, slogan, ok := t.Match(title)
		if !ok {
			continue
		}

		t.Version = version
		t.Slogan = slogan
		t.Title = title
		t.Handle = h
		if pid, err := d.ProcessID(h); err == nil {
			t.PID = pid
		}
		return h, nil
	}

	return 0, fmt.Errorf("%w: 电台 %q", ErrTargetNotFound, t.Station)
}
