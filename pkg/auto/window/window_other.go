//go:build !windows

package window

import "github.com/zoeyai/djwatch/pkg/auto"

// NewDesktop 非 Windows 平台返回不支持的实现
func NewDesktop() Desktop {
	return unsupported{}
}

// NewFocuser 非 Windows 平台返回不支持的实现
func NewFocuser() Focuser {
	return unsupported{}
}

type unsupported struct{}

func (unsupported) TopWindows() ([]Handle, error)          { return nil, ErrUnsupported }
func (unsupported) Descendants(Handle) ([]Relation, error) { return nil, ErrUnsupported }
func (unsupported) Text(Handle) (string, error)            { return "", ErrUnsupported }
func (unsupported) Rect(Handle) (auto.Region, error)       { return auto.Region{}, ErrUnsupported }
func (unsupported) IsWindow(Handle) bool                   { return false }
func (unsupported) ProcessID(Handle) (int, error)          { return 0, ErrUnsupported }
func (unsupported) IsMinimized(Handle) bool                { return false }
func (unsupported) Restore(Handle) error                   { return ErrUnsupported }
func (unsupported) IsForeground(Handle) bool               { return false }
func (unsupported) BringToFront(Handle) error              { return ErrUnsupported }
