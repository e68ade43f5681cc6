// Package windowtest 提供内存中的窗口树，实现 window.Desktop 与 window.Focuser，用于测试
package windowtest

import (
	"fmt"
	"sync"

	"github.com/zoeyai/djwatch/pkg/auto"
	"github.com/zoeyai/djwatch/pkg/auto/window"
)

// Window 模拟窗口
type Window struct {
	Handle   window.Handle
	Text     string
	Rect     auto.Region
	PID      int
	Parent   *Window
	Children []*Window

	desktop *Desktop
}

// Desktop 模拟桌面
type Desktop struct {
	mu        sync.Mutex
	tops      []*Window
	byHandle  map[window.Handle]*Window
	next      window.Handle
	minimized map[window.Handle]bool

	// Foreground 当前前台窗口
	Foreground window.Handle
	// RefuseForeground 为 true 时 BringToFront 不生效（模拟系统拒绝切换前台）
	RefuseForeground bool
	// Restored 记录 Restore 调用
	Restored []window.Handle
	// TextReads 记录 Text 调用次数
	TextReads int
}

// New 创建空桌面
func New() *Desktop {
	return &Desktop{
		byHandle:  make(map[window.Handle]*Window),
		next:      0x1000,
		minimized: make(map[window.Handle]bool),
	}
}

func (d *Desktop) register(w *Window) {
	d.next += 0x10
	w.Handle = d.next
	w.desktop = d
	d.byHandle[w.Handle] = w
}

// AddTop 添加顶级窗口
func (d *Desktop) AddTop(title string, pid int) *Window {
	d.mu.Lock()
	defer d.mu.Unlock()

	w := &Window{Text: title, PID: pid}
	d.register(w)
	d.tops = append(d.tops, w)
	return w
}

// Add 添加子窗口
func (w *Window) Add(text string) *Window {
	d := w.desktop
	d.mu.Lock()
	defer d.mu.Unlock()

	c := &Window{Text: text, PID: w.PID, Parent: w}
	d.register(c)
	w.Children = append(w.Children, c)
	return c
}

// AddN 按顺序添加多个子窗口
func (w *Window) AddN(texts ...string) []*Window {
	children := make([]*Window, 0, len(texts))
	for _, text := range texts {
		children = append(children, w.Add(text))
	}
	return children
}

// SetText 修改窗口文本
func (d *Desktop) SetText(h window.Handle, text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if w, ok := d.byHandle[h]; ok {
		w.Text = text
	}
}

// Destroy 销毁窗口及其后代
func (d *Desktop) Destroy(h window.Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, ok := d.byHandle[h]
	if !ok {
		return
	}
	var drop func(*Window)
	drop = func(x *Window) {
		delete(d.byHandle, x.Handle)
		for _, c := range x.Children {
			drop(c)
		}
	}
	drop(w)

	for i, top := range d.tops {
		if top == w {
			d.tops = append(d.tops[:i], d.tops[i+1:]...)
			break
		}
	}
}

// Minimize 标记窗口为最小化
func (d *Desktop) Minimize(h window.Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.minimized[h] = true
}

// TopWindows 实现 window.Desktop
func (d *Desktop) TopWindows() ([]window.Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	handles := make([]window.Handle, 0, len(d.tops))
	for _, w := range d.tops {
		handles = append(handles, w.Handle)
	}
	return handles, nil
}

// Descendants 深度优先先序遍历，与 EnumChildWindows 顺序一致
func (d *Desktop) Descendants(root window.Handle) ([]window.Relation, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, ok := d.byHandle[root]
	if !ok {
		return nil, fmt.Errorf("无效的窗口句柄: %#x", uintptr(root))
	}

	var relations []window.Relation
	var walk func(*Window)
	walk = func(p *Window) {
		for _, c := range p.Children {
			relations = append(relations, window.Relation{Handle: c.Handle, Parent: p.Handle})
			walk(c)
		}
	}
	walk(w)
	return relations, nil
}

// Text 实现 window.Desktop
func (d *Desktop) Text(h window.Handle) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.TextReads++
	w, ok := d.byHandle[h]
	if !ok {
		return "", nil
	}
	return w.Text, nil
}

// Rect 实现 window.Desktop
func (d *Desktop) Rect(h window.Handle) (auto.Region, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, ok := d.byHandle[h]
	if !ok {
		return auto.Region{}, fmt.Errorf("无效的窗口句柄: %#x", uintptr(h))
	}
	return w.Rect, nil
}

// IsWindow 实现 window.Desktop
func (d *Desktop) IsWindow(h window.Handle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.byHandle[h]
	return ok
}

// ProcessID 实现 window.Desktop
func (d *Desktop) ProcessID(h window.Handle) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	w, ok := d.byHandle[h]
	if !ok {
		return 0, fmt.Errorf("无效的窗口句柄: %#x", uintptr(h))
	}
	return w.PID, nil
}

// IsMinimized 实现 window.Focuser
func (d *Desktop) IsMinimized(h window.Handle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.minimized[h]
}

// Restore 实现 window.Focuser
func (d *Desktop) Restore(h window.Handle) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.minimized, h)
	d.Restored = append(d.Restored, h)
	return nil
}

// IsForeground 实现 window.Focuser
func (d *Desktop) IsForeground(h window.Handle) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.Foreground == h
}

// BringToFront 实现 window.Focuser
func (d *Desktop) BringToFront(h window.Handle) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.byHandle[h]; !ok {
		return fmt.Errorf("无效的窗口句柄: %#x", uintptr(h))
	}
	if !d.RefuseForeground {
		d.Foreground = h
	}
	return nil
}

// Clicker 记录点击位置
type Clicker struct {
	Clicks []auto.Point
	Err    error
}

// ClickAt 记录一次点击
func (c *Clicker) ClickAt(x, y int) error {
	if c.Err != nil {
		return c.Err
	}
	c.Clicks = append(c.Clicks, auto.Point{X: x, Y: y})
	return nil
}
