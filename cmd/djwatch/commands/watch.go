package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/zoeyai/djwatch/internal/logger"
	"github.com/zoeyai/djwatch/pkg/auto/window"
	"github.com/zoeyai/djwatch/pkg/feed"
	"github.com/zoeyai/djwatch/pkg/health"
	"github.com/zoeyai/djwatch/pkg/radiodj"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "持续监视 RadioDJ 播放状态",
	Long: `按 poll_interval 轮询 RadioDJ：记录歌曲切换，每 probe_every 次轮询做一次存活探测。
窗口关闭或进程重启后在下一次轮询时重新定位。

配置 health_addr 时提供 gRPC 健康检查 (服务名 djwatch.RadioDJ)；
配置 feed_addr 时提供 HTTP/WebSocket 读数 (/api/now, /api/stream)。`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().Duration("interval", 0, "轮询间隔 (覆盖 poll_interval)")
	watchCmd.Flags().String("health-addr", "", "gRPC 健康检查监听地址 (覆盖 health_addr)")
	watchCmd.Flags().String("feed-addr", "", "读数服务监听地址 (覆盖 feed_addr)")
}

// watcher 单个 RadioDJ 实例的轮询状态
type watcher struct {
	session    *radiodj.Session
	log        *logger.Logger
	probeEvery int
	health     *health.Server
	hub        *feed.Hub
	now        func() time.Time

	ready    bool
	alive    bool
	frozen   bool
	polls    int
	lastSong radiodj.Song
	lastErr  string
}

func runWatch(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	if d, _ := flags.GetDuration("interval"); d > 0 {
		cfg.PollInterval = d
	}
	if addr, _ := flags.GetString("health-addr"); addr != "" {
		cfg.HealthAddr = addr
	}
	if addr, _ := flags.GetString("feed-addr"); addr != "" {
		cfg.FeedAddr = addr
	}

	s, err := newSession(cfg, window.NewDesktop(), false)
	if err != nil {
		return err
	}

	w := &watcher{
		session:    s,
		log:        logger.Default().Component("watch"),
		probeEvery: cfg.ProbeEvery,
		now:        time.Now,
	}

	if cfg.HealthAddr != "" {
		hs := health.NewServer(logger.Default().Component("health"))
		if err := hs.Start(cfg.HealthAddr); err != nil {
			return err
		}
		defer hs.Stop()
		w.health = hs
	}

	if cfg.FeedAddr != "" {
		hub := feed.NewHub()
		srv := feed.NewServer(hub, logger.Default().Component("feed"))
		if _, err := srv.Start(cfg.FeedAddr); err != nil {
			return err
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			srv.Shutdown(ctx)
		}()
		w.hub = hub
	}

	w.log.Info("开始监视电台 %q, 间隔 %s, 每 %d 次轮询探测一次", cfg.Station, cfg.PollInterval, cfg.ProbeEvery)
	return w.run(cmd.Context(), cfg.PollInterval)
}

func (w *watcher) run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		w.tick(ctx)

		select {
		case <-ctx.Done():
			w.log.Info("停止监视")
			return nil
		case <-ticker.C:
		}
	}
}

// tick 一次轮询：必要时重新定位，读取状态，按周期探测存活
func (w *watcher) tick(ctx context.Context) {
	u := feed.Update{Time: w.now()}
	defer func() {
		u.Alive = w.alive
		if w.hub != nil {
			w.hub.Publish(u)
		}
	}()

	if !w.ready {
		if err := w.session.Refresh(); err != nil {
			if w.session.Snapshot() == nil {
				w.setAlive(false)
				w.report(err)
				u.Error = err.Error()
				return
			}
			w.log.Warn("%v", err)
		}
		w.ready = true
		w.frozen = false
		w.polls = 0
		w.lastErr = ""
	}

	if err := w.session.Stale(); err != nil {
		w.log.Warn("RadioDJ 窗口已失效，下次轮询重新定位: %v", err)
		w.ready = false
		w.setAlive(false)
		u.Error = err.Error()
		return
	}

	np, err := w.session.Read()
	if err != nil {
		// 界面可能尚未加载完成，下次轮询重新快照
		w.ready = false
		w.setAlive(false)
		w.report(err)
		u.Error = err.Error()
		return
	}
	u.Reading = &np
	// 剩余时间读不到或已冻结时不算可用
	w.setAlive(!w.frozen)
	if np.Song != w.lastSong {
		w.lastSong = np.Song
		w.log.Info("正在播放: %s - %s (剩余 %s, 待播 %d 首)", np.Song.Artist, np.Song.Title, np.Remaining, len(np.Next))
	}

	w.polls++
	if w.probeEvery > 0 && w.polls%w.probeEvery == 0 {
		dead, err := w.session.IsDead(ctx)
		switch {
		case err != nil:
			w.report(err)
		case dead:
			w.log.Warn("剩余时间停止刷新，RadioDJ 可能已无响应")
			w.frozen = true
			w.setAlive(false)
		default:
			w.frozen = false
			w.setAlive(true)
		}
	}
}

// setAlive 更新存活状态与健康检查，状态变化时记录日志
func (w *watcher) setAlive(alive bool) {
	if alive != w.alive {
		if alive {
			w.log.Info("RadioDJ 可用: %s", w.session.Target().Title)
		} else {
			w.log.Warn("RadioDJ 不可用")
		}
	}
	w.alive = alive
	if w.health != nil {
		w.health.SetServing(alive)
	}
}

// report 同一错误连续出现时只记录一次
func (w *watcher) report(err error) {
	if msg := err.Error(); msg != w.lastErr {
		w.lastErr = msg
		w.log.Warn("%v", err)
	}
}
