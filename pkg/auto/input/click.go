package input

import (
	"time"
)

// settleDelay 移动后等待鼠标到位
const settleDelay = 50 * time.Millisecond

// Mouse 基于 robotgo 的点击实现，满足 radiodj.Clicker
type Mouse struct{}

// NewMouse 创建鼠标输入
func NewMouse() *Mouse {
	return &Mouse{}
}

// ClickAt 移动到屏幕坐标（物理像素）并单击左键
func (m *Mouse) ClickAt(x, y int) error {
	MoveTo(x, y)
	time.Sleep(settleDelay)
	Click("left")
	return nil
}
