package commands

import (
	"errors"
	"strings"

	"github.com/zoeyai/djwatch/internal/logger"
	"github.com/zoeyai/djwatch/pkg/auto/input"
	"github.com/zoeyai/djwatch/pkg/auto/window"
	"github.com/zoeyai/djwatch/pkg/config"
	"github.com/zoeyai/djwatch/pkg/process"
	"github.com/zoeyai/djwatch/pkg/radiodj"
)

// newSession 按配置创建本机会话，withInput 为 true 时配置窗口激活与鼠标输入
func newSession(c *config.Config, desktop window.Desktop, withInput bool) (*radiodj.Session, error) {
	if strings.TrimSpace(c.Station) == "" {
		return nil, errors.New("未指定电台名称，请使用 --station 或在配置文件中设置 station")
	}

	target, err := radiodj.NewTarget(c.Station, c.Slogan, radiodj.WithProduct(c.Product))
	if err != nil {
		return nil, err
	}

	opts := []radiodj.Option{
		radiodj.WithLogger(logger.Default().Component("radiodj")),
		radiodj.WithProcessInspector(process.NewInspector()),
		radiodj.WithLayouts(c.Layouts),
		radiodj.WithTiming(c.TimingOptions()...),
	}
	if withInput {
		opts = append(opts,
			radiodj.WithFocuser(window.NewFocuser()),
			radiodj.WithClicker(input.NewMouse()),
		)
	}

	return radiodj.NewSession(desktop, target, radiodj.DefaultLayout(), opts...)
}

// refresh 定位并快照；快照已建立但锚点不全时只记录警告
func refresh(s *radiodj.Session) error {
	err := s.Refresh()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, radiodj.ErrTargetNotFound):
		hintProcess(s.Target())
		return err
	case s.Snapshot() != nil:
		logger.Warn("%v", err)
		return nil
	default:
		return err
	}
}

// hintProcess 找不到窗口时检查进程是否在运行，帮助区分“未启动”与“标题不匹配”
func hintProcess(t *radiodj.Target) {
	procs, err := process.FindProcess(t.Product)
	if err != nil || len(procs) == 0 {
		logger.Warn("未发现 %s 进程，请确认程序已启动", t.Product)
		return
	}
	for _, p := range procs {
		logger.Warn("发现进程 %s (PID=%d)，但没有窗口标题匹配: %s", p.Name, p.PID, t.Pattern())
	}
}
