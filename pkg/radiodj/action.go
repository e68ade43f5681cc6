package radiodj

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// PlayNext 点击播出区的“播放下一首”按钮。
// 先确认窗口仍有效，必要时还原并置于前台，等待 ClickDelay 后确认窗口在前台，
// 再点击按钮左上角（加 ClickOffset）。点击是否生效无法确认。
func (s *Session) PlayNext(ctx context.Context) error {
	start := time.Now()
	x, y, err := s.playNext(ctx)

	elapsed := float64(time.Since(start).Microseconds()) / 1000
	if err != nil {
		s.log.LogEvent("NEXT", false, elapsed, err.Error())
		return err
	}
	s.log.LogEvent("NEXT", true, elapsed, fmt.Sprintf("点击 (%d, %d)", x, y))
	return nil
}

func (s *Session) playNext(ctx context.Context) (int, int, error) {
	if s.focuser == nil || s.clicker == nil {
		return 0, 0, errors.New("未配置窗口激活或鼠标输入")
	}
	if err := s.Stale(); err != nil {
		return 0, 0, err
	}

	button, err := s.field(s.anchors.OnAir, "on_air.play_next", s.layout.OnAir.PlayNext)
	if err != nil {
		return 0, 0, err
	}

	h := s.target.Handle
	if s.focuser.IsMinimized(h) {
		if err := s.focuser.Restore(h); err != nil {
			return 0, 0, fmt.Errorf("还原窗口失败: %w", err)
		}
	}
	if err := s.focuser.BringToFront(h); err != nil {
		return 0, 0, fmt.Errorf("激活窗口失败: %w", err)
	}

	if err := s.opts.Sleep(ctx, s.opts.ClickDelay); err != nil {
		return 0, 0, err
	}

	if !s.desktop.IsWindow(h) {
		return 0, 0, fmt.Errorf("%w: 窗口 %#x 已不存在", ErrStale, uintptr(h))
	}
	if !s.focuser.IsForeground(h) {
		return 0, 0, ErrNotForeground
	}

	rect, err := s.desktop.Rect(button)
	if err != nil {
		return 0, 0, fmt.Errorf("获取按钮位置失败: %w", err)
	}
	if rect.Empty() {
		return 0, 0, fmt.Errorf("按钮 %#x 不可见", uintptr(button))
	}

	x := rect.X + s.opts.ClickOffset.X
	y := rect.Y + s.opts.ClickOffset.Y
	if err := s.clicker.ClickAt(x, y); err != nil {
		return 0, 0, fmt.Errorf("点击失败: %w", err)
	}
	return x, y, nil
}
