package radiodj

import (
	"errors"
	"fmt"

	"github.com/zoeyai/djwatch/pkg/auto/window"
)

var (
	// ErrTargetNotFound 没有标题匹配的 RadioDJ 顶级窗口
	ErrTargetNotFound = errors.New("未找到 RadioDJ 窗口")
	// ErrAnchorNotFound 快照中没有指纹文本
	ErrAnchorNotFound = errors.New("未找到锚点")
	// ErrAnchorAmbiguous 指纹文本出现在多个父窗口下
	ErrAnchorAmbiguous = errors.New("锚点匹配不唯一")
	// ErrAnchorUnresolved 通过未解析的锚点读取字段
	ErrAnchorUnresolved = errors.New("锚点未解析")
	// ErrLayoutMismatch 偏移超出锚点子窗口数量
	ErrLayoutMismatch = errors.New("界面布局不匹配")
	// ErrStale 目标窗口已销毁或进程已重启，需要重新定位与快照
	ErrStale = errors.New("窗口快照已过期")
	// ErrNotForeground 激活后窗口仍不在前台，放弃点击
	ErrNotForeground = errors.New("窗口未能置于前台")
	// ErrNotSnapshotted 尚未获取窗口树快照
	ErrNotSnapshotted = errors.New("尚未获取窗口快照")
)

// LayoutMismatchError 偏移越界的详细信息
type LayoutMismatchError struct {
	Field    string
	Anchor   window.Handle
	Offset   int
	Children int
}

func (e *LayoutMismatchError) Error() string {
	return fmt.Sprintf("%v: 字段 %s 偏移 %d 超出锚点 %#x 的子窗口数 %d",
		ErrLayoutMismatch, e.Field, e.Offset, uintptr(e.Anchor), e.Children)
}

// Unwrap 使 errors.Is(err, ErrLayoutMismatch) 成立
func (e *LayoutMismatchError) Unwrap() error {
	return ErrLayoutMismatch
}
