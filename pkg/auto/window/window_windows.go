//go:build windows

package window

import (
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	"github.com/zoeyai/djwatch/pkg/auto"
)

var (
	user32                       = syscall.NewLazyDLL("user32.dll")
	procEnumWindows              = user32.NewProc("EnumWindows")
	procEnumChildWindows         = user32.NewProc("EnumChildWindows")
	procGetParent                = user32.NewProc("GetParent")
	procGetWindowTextW           = user32.NewProc("GetWindowTextW")
	procGetWindowTextLengthW     = user32.NewProc("GetWindowTextLengthW")
	procGetWindowThreadProcessId = user32.NewProc("GetWindowThreadProcessId")
	procGetWindowRect            = user32.NewProc("GetWindowRect")
	procIsWindow                 = user32.NewProc("IsWindow")
	procIsIconic                 = user32.NewProc("IsIconic")
	procShowWindow               = user32.NewProc("ShowWindow")
	procBringWindowToTop         = user32.NewProc("BringWindowToTop")
	procSetForegroundWindow      = user32.NewProc("SetForegroundWindow")
	procGetForegroundWindow      = user32.NewProc("GetForegroundWindow")
	procAttachThreadInput        = user32.NewProc("AttachThreadInput")
)

const swShowNormal = 1

// RECT Windows 矩形结构
type RECT struct {
	Left, Top, Right, Bottom int32
}

// syscall.NewCallback 的数量有上限且不会释放，枚举回调只创建一次，
// 通过 enumVisit 分发到当前调用方。
var (
	enumMu    sync.Mutex
	enumVisit func(hwnd syscall.Handle) bool
	enumProc  = syscall.NewCallback(func(hwnd syscall.Handle, _ uintptr) uintptr {
		if enumVisit != nil && !enumVisit(hwnd) {
			return 0
		}
		return 1
	})
)

// enumerate 串行执行一次枚举
func enumerate(proc *syscall.LazyProc, visit func(hwnd syscall.Handle) bool, args ...uintptr) {
	enumMu.Lock()
	defer enumMu.Unlock()

	enumVisit = visit
	defer func() { enumVisit = nil }()

	proc.Call(append(args, enumProc, 0)...)
}

// NewDesktop 创建基于 user32 的窗口访问
func NewDesktop() Desktop {
	return &nativeDesktop{}
}

// NewFocuser 创建基于 user32 的窗口激活
func NewFocuser() Focuser {
	return &nativeDesktop{}
}

type nativeDesktop struct{}

// TopWindows 使用 EnumWindows 枚举所有顶级窗口
func (d *nativeDesktop) TopWindows() ([]Handle, error) {
	handles := make([]Handle, 0, 128)
	enumerate(procEnumWindows, func(hwnd syscall.Handle) bool {
		handles = append(handles, Handle(hwnd))
		return true
	})
	return handles, nil
}

// Descendants 使用 EnumChildWindows 枚举全部后代，GetParent 取直接父窗口
func (d *nativeDesktop) Descendants(root Handle) ([]Relation, error) {
	if !d.IsWindow(root) {
		return nil, fmt.Errorf("无效的窗口句柄: %#x", uintptr(root))
	}

	relations := make([]Relation, 0, 256)
	enumerate(procEnumChildWindows, func(hwnd syscall.Handle) bool {
		parent, _, _ := procGetParent.Call(uintptr(hwnd))
		relations = append(relations, Relation{Handle: Handle(hwnd), Parent: Handle(parent)})
		return true
	}, uintptr(root))

	return relations, nil
}

// Text 读取窗口文本（UTF-16）
func (d *nativeDesktop) Text(h Handle) (string, error) {
	length, _, _ := procGetWindowTextLengthW.Call(uintptr(h))
	if length == 0 {
		return "", nil
	}

	buf := make([]uint16, length+1)
	procGetWindowTextW.Call(uintptr(h), uintptr(unsafe.Pointer(&buf[0])), uintptr(length+1))
	return syscall.UTF16ToString(buf), nil
}

// Rect 读取窗口屏幕矩形
func (d *nativeDesktop) Rect(h Handle) (auto.Region, error) {
	var rect RECT
	ret, _, err := procGetWindowRect.Call(uintptr(h), uintptr(unsafe.Pointer(&rect)))
	if ret == 0 {
		return auto.Region{}, fmt.Errorf("GetWindowRect 失败: %v", err)
	}

	return auto.Region{
		X:      int(rect.Left),
		Y:      int(rect.Top),
		Width:  int(rect.Right - rect.Left),
		Height: int(rect.Bottom - rect.Top),
	}, nil
}

// IsWindow 句柄是否仍指向存在的窗口
func (d *nativeDesktop) IsWindow(h Handle) bool {
	if h == 0 {
		return false
	}
	ret, _, _ := procIsWindow.Call(uintptr(h))
	return ret != 0
}

// ProcessID 窗口所属进程 ID
func (d *nativeDesktop) ProcessID(h Handle) (int, error) {
	var pid uint32
	procGetWindowThreadProcessId.Call(uintptr(h), uintptr(unsafe.Pointer(&pid)))
	if pid == 0 {
		return 0, fmt.Errorf("无法获取窗口进程: %#x", uintptr(h))
	}
	return int(pid), nil
}

// IsMinimized 窗口是否最小化
func (d *nativeDesktop) IsMinimized(h Handle) bool {
	ret, _, _ := procIsIconic.Call(uintptr(h))
	return ret != 0
}

// Restore 还原并显示窗口（锁屏时同样有效）
func (d *nativeDesktop) Restore(h Handle) error {
	procShowWindow.Call(uintptr(h), swShowNormal)
	return nil
}

// IsForeground 窗口是否为当前前台窗口
func (d *nativeDesktop) IsForeground(h Handle) bool {
	fg, _, _ := procGetForegroundWindow.Call()
	return Handle(fg) == h
}

// BringToFront 将窗口置于前台
// 前台窗口属于其他输入线程时，先关联两个线程的输入状态再切换，完成后解除关联
func (d *nativeDesktop) BringToFront(h Handle) error {
	foregroundHwnd, _, _ := procGetForegroundWindow.Call()
	if Handle(foregroundHwnd) == h {
		return nil
	}

	var foregroundThreadId uintptr
	if foregroundHwnd != 0 {
		foregroundThreadId, _, _ = procGetWindowThreadProcessId.Call(foregroundHwnd, 0)
	}
	targetThreadId, _, _ := procGetWindowThreadProcessId.Call(uintptr(h), 0)

	if foregroundThreadId != 0 && targetThreadId != 0 && foregroundThreadId != targetThreadId {
		procAttachThreadInput.Call(foregroundThreadId, targetThreadId, 1)
		defer procAttachThreadInput.Call(foregroundThreadId, targetThreadId, 0)
	}

	procBringWindowToTop.Call(uintptr(h))

	ret, _, _ := procSetForegroundWindow.Call(uintptr(h))
	if ret == 0 {
		return fmt.Errorf("SetForegroundWindow 失败: %#x", uintptr(h))
	}

	return nil
}
