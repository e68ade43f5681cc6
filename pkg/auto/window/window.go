// Package window 提供窗口系统边界：枚举顶级窗口与子窗口树、读取文本与矩形、激活窗口
package window

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zoeyai/djwatch/pkg/auto"
)

// ErrUnsupported 当前平台没有原生窗口树实现
var ErrUnsupported = errors.New("当前平台不支持原生窗口操作")

// Handle 原生窗口句柄（Windows 下为 HWND）
type Handle uintptr

// Relation 子窗口及其直接父窗口
type Relation struct {
	Handle Handle
	Parent Handle
}

// Desktop 只读的窗口系统访问
type Desktop interface {
	// TopWindows 按系统枚举顺序返回所有顶级窗口
	TopWindows() ([]Handle, error)
	// Descendants 返回 root 下的全部后代窗口（深度优先，父窗口先于子窗口）
	Descendants(root Handle) ([]Relation, error)
	// Text 读取窗口当前可见文本
	Text(h Handle) (string, error)
	// Rect 读取窗口屏幕矩形
	Rect(h Handle) (auto.Region, error)
	// IsWindow 句柄是否仍然有效
	IsWindow(h Handle) bool
	// ProcessID 窗口所属进程
	ProcessID(h Handle) (int, error)
}

// Focuser 窗口激活能力
type Focuser interface {
	IsMinimized(h Handle) bool
	Restore(h Handle) error
	IsForeground(h Handle) bool
	// BringToFront 将窗口置于前台（必要时关联输入线程）
	BringToFront(h Handle) error
}

// WindowInfo 窗口信息
type WindowInfo struct {
	Handle Handle      `json:"handle"`
	PID    int         `json:"pid"`
	Title  string      `json:"title"`
	Bounds auto.Region `json:"bounds"`
}

// ListWindows 列出有标题的顶级窗口，filter 为标题的部分匹配（不区分大小写）
func ListWindows(d Desktop, filter string) ([]WindowInfo, error) {
	handles, err := d.TopWindows()
	if err != nil {
		return nil, fmt.Errorf("枚举顶级窗口失败: %w", err)
	}

	filter = strings.ToLower(filter)
	var windows []WindowInfo

	for _, h := range handles {
		title, err := d.Text(h)
		if err != nil || title == "" {
			continue
		}
		if filter != "" && !strings.Contains(strings.ToLower(title), filter) {
			continue
		}

		pid, _ := d.ProcessID(h)
		bounds, _ := d.Rect(h)

		windows = append(windows, WindowInfo{
			Handle: h,
			PID:    pid,
			Title:  title,
			Bounds: bounds,
		})
	}

	return windows, nil
}
