// Package auto 提供 UI 自动化功能的共享类型和工具函数。
// 具体功能分布在子包中：input（鼠标）、window（窗口枚举与激活）。
package auto

import (
	"context"
	"time"
)

// SleepContext 可取消的休眠，ctx 结束时提前返回 ctx.Err()
func SleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Empty 区域宽或高为 0
func (r Region) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}
