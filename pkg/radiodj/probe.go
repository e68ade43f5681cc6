package radiodj

import (
	"context"
	"fmt"
)

// IsDead 以固定间隔多次采样倒计时，全部相同说明 RadioDJ 已停止刷新界面
// （挂起或崩溃）。默认 4 次采样、间隔 1.1 秒，共阻塞约 3.3 秒。
func (s *Session) IsDead(ctx context.Context) (bool, error) {
	samples := s.opts.ProbeSamples
	if samples < 2 {
		samples = 2
	}

	first, err := s.Remaining()
	if err != nil {
		return false, err
	}

	dead := true
	for i := 1; i < samples; i++ {
		if err := s.opts.Sleep(ctx, s.opts.ProbeInterval); err != nil {
			return false, fmt.Errorf("存活探测被中断: %w", err)
		}

		sample, err := s.Remaining()
		if err != nil {
			return false, err
		}
		if sample != first {
			dead = false
		}
	}

	s.log.Debug("存活探测: 采样 %d 次, 倒计时=%q, dead=%v", samples, first, dead)
	return dead, nil
}
