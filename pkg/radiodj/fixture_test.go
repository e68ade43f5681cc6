package radiodj

import (
	"context"
	"testing"
	"time"

	"github.com/zoeyai/djwatch/internal/logger"
	"github.com/zoeyai/djwatch/pkg/auto"
	"github.com/zoeyai/djwatch/pkg/auto/window/windowtest"
)

const mainTitle = "Funky24 - Chill Mix - RadioDJ v9.2.1.40"

// fixture 按 RadioDJ 9.2 主窗口结构搭建的窗口树
type fixture struct {
	desktop   *windowtest.Desktop
	main      *windowtest.Window
	onAir     *windowtest.Window
	remaining *windowtest.Window
	button    *windowtest.Window
	song      *windowtest.Window
	carts     []*windowtest.Window
}

type cartTrack struct {
	slot, start, duration, artist, title string
}

var fixtureTracks = []cartTrack{
	{"1", "14:03:12", "03:41", "Artist A", "Track A"},
	{"2", "14:06:53", "04:02", "Artist B", "Track B"},
}

// panel 生成 n 个子窗口文本，set 中给出的下标填入对应文本
func panel(n int, set map[int]string) []string {
	texts := make([]string, n)
	for i, text := range set {
		texts[i] = text
	}
	return texts
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	d := windowtest.New()
	d.AddTop("Untitled - Notepad", 100)
	main := d.AddTop(mainTitle, 4242)
	f := &fixture{desktop: d, main: main}

	f.onAir = main.Add("")
	onAir := f.onAir.AddN(panel(16, map[int]string{0: "CLOCK", 11: "00:03:12", 15: "Play Next"})...)
	f.remaining = onAir[11]
	f.button = onAir[15]
	f.button.Rect = auto.Region{X: 640, Y: 480, Width: 80, Height: 24}

	f.song = main.Add("")
	f.song.AddN(panel(18, map[int]string{0: "Copyright:", 16: "Artist X", 17: "Track Y"})...)

	for _, tr := range fixtureTracks {
		cart := main.Add("")
		cart.AddN(panel(11, map[int]string{
			0: "S", 1: "V",
			4: tr.start, 5: tr.duration, 7: tr.artist, 9: tr.slot, 10: tr.title,
		})...)
		f.carts = append(f.carts, cart)
	}

	return f
}

func quietLogger() *logger.Logger {
	l := logger.New()
	l.SetEnabled(false)
	return l
}

// sleepRecorder 记录等待时长，不真实等待
type sleepRecorder struct {
	calls []time.Duration
	hook  func(n int)
}

func (r *sleepRecorder) sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.calls = append(r.calls, d)
	if r.hook != nil {
		r.hook(len(r.calls))
	}
	return nil
}

// fakeInspector 返回可修改的进程启动时间
type fakeInspector struct {
	start map[int]int64
	err   error
}

func (p *fakeInspector) StartTime(pid int) (int64, error) {
	if p.err != nil {
		return 0, p.err
	}
	return p.start[pid], nil
}

func (f *fixture) session(t *testing.T, opts ...Option) (*Session, *windowtest.Clicker, *sleepRecorder) {
	t.Helper()

	target, err := NewTarget("Funky24", "")
	if err != nil {
		t.Fatalf("NewTarget() 失败: %v", err)
	}

	clicker := &windowtest.Clicker{}
	sleeper := &sleepRecorder{}
	base := []Option{
		WithLogger(quietLogger()),
		WithFocuser(f.desktop),
		WithClicker(clicker),
		WithTiming(auto.WithSleep(sleeper.sleep)),
	}

	s, err := NewSession(f.desktop, target, DefaultLayout(), append(base, opts...)...)
	if err != nil {
		t.Fatalf("NewSession() 失败: %v", err)
	}
	return s, clicker, sleeper
}

func (f *fixture) captured(t *testing.T, opts ...Option) (*Session, *windowtest.Clicker, *sleepRecorder) {
	t.Helper()

	s, clicker, sleeper := f.session(t, opts...)
	if err := s.Refresh(); err != nil {
		t.Fatalf("Refresh() 失败: %v", err)
	}
	return s, clicker, sleeper
}
