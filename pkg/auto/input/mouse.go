// Package input 提供鼠标输入（移动、左键按下与释放）
package input

import (
	"github.com/go-vgo/robotgo"
)

// MoveTo 移动鼠标到指定屏幕位置（物理像素）
func MoveTo(x, y int) {
	inputX, inputY := NormalizePointForInput(x, y)
	robotgo.Move(inputX, inputY)
}

// Click 在当前位置单击
func Click(button ...string) {
	btn := "left"
	if len(button) > 0 {
		btn = button[0]
	}
	robotgo.Click(btn, false)
}
