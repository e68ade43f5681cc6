package radiodj

import (
	"errors"
	"testing"

	"github.com/zoeyai/djwatch/pkg/auto/window/windowtest"
)

func snapshotOf(t *testing.T, f *fixture) *Snapshot {
	t.Helper()
	s, err := TakeSnapshot(f.desktop, f.main.Handle)
	if err != nil {
		t.Fatalf("TakeSnapshot() 失败: %v", err)
	}
	return s
}

func TestResolveAnchors(t *testing.T) {
	f := newFixture(t)

	a, err := ResolveAnchors(snapshotOf(t, f), DefaultLayout())
	if err != nil {
		t.Fatalf("ResolveAnchors() 失败: %v", err)
	}
	if a.OnAir != f.onAir.Handle {
		t.Errorf("OnAir 实际为 %#x, 应为 %#x", a.OnAir, f.onAir.Handle)
	}
	if a.Song != f.song.Handle {
		t.Errorf("Song 实际为 %#x, 应为 %#x", a.Song, f.song.Handle)
	}
	if len(a.Next) != len(f.carts) {
		t.Fatalf("Next 锚点数量实际为 %d, 应为 %d", len(a.Next), len(f.carts))
	}
	for i, cart := range f.carts {
		if a.Next[i] != cart.Handle {
			t.Errorf("Next[%d] 实际为 %#x, 应为 %#x", i, a.Next[i], cart.Handle)
		}
	}
}

func TestResolveAnchorsSiblingOrder(t *testing.T) {
	d := windowtest.New()
	main := d.AddTop(mainTitle, 1)
	song := main.Add("")
	song.AddN(panel(18, map[int]string{0: "Copyright:"})...)
	onAir := main.Add("")
	onAir.AddN(panel(16, map[int]string{5: "CLOCK"})...)

	s, err := TakeSnapshot(d, main.Handle)
	if err != nil {
		t.Fatalf("TakeSnapshot() 失败: %v", err)
	}
	a, err := ResolveAnchors(s, DefaultLayout())
	if err != nil {
		t.Fatalf("ResolveAnchors() 失败: %v", err)
	}
	if a.OnAir != onAir.Handle || a.Song != song.Handle {
		t.Errorf("锚点实际为 %+v, 应为 on_air %#x song %#x", a, onAir.Handle, song.Handle)
	}
	if len(a.Next) != 0 {
		t.Errorf("Next 实际为 %v, 应为空", a.Next)
	}
}

func TestResolveAnchorsCartRequiresEmptyThird(t *testing.T) {
	f := newFixture(t)
	f.desktop.SetText(f.carts[1].Children[2].Handle, "x")

	a, err := ResolveAnchors(snapshotOf(t, f), DefaultLayout())
	if err != nil {
		t.Fatalf("ResolveAnchors() 失败: %v", err)
	}
	if len(a.Next) != 1 || a.Next[0] != f.carts[0].Handle {
		t.Errorf("Next 实际为 %v, 应只有第一个 cart", a.Next)
	}
}

func TestResolveAnchorsAmbiguous(t *testing.T) {
	f := newFixture(t)
	dup := f.main.Add("")
	dup.AddN("CLOCK", "00:00:00")

	s := snapshotOf(t, f)

	a, err := ResolveAnchors(s, DefaultLayout())
	if !errors.Is(err, ErrAnchorAmbiguous) {
		t.Fatalf("ResolveAnchors() 应返回 ErrAnchorAmbiguous, 实际为 %v", err)
	}
	if a.OnAir != 0 {
		t.Errorf("OnAir 实际为 %#x, 应为未解析", a.OnAir)
	}
	if a.Song != f.song.Handle {
		t.Errorf("Song 锚点仍应解析, 实际为 %#x", a.Song)
	}

	l := DefaultLayout()
	l.FirstMatch = true
	a, err = ResolveAnchors(s, l)
	if err != nil {
		t.Fatalf("ResolveAnchors(FirstMatch) 失败: %v", err)
	}
	if a.OnAir != f.onAir.Handle {
		t.Errorf("FirstMatch OnAir 实际为 %#x, 应为 %#x", a.OnAir, f.onAir.Handle)
	}
}

func TestResolveAnchorsNotFound(t *testing.T) {
	f := newFixture(t)
	f.desktop.SetText(f.onAir.Children[0].Handle, "")

	a, err := ResolveAnchors(snapshotOf(t, f), DefaultLayout())
	if !errors.Is(err, ErrAnchorNotFound) {
		t.Fatalf("ResolveAnchors() 应返回 ErrAnchorNotFound, 实际为 %v", err)
	}
	if a.OnAir != 0 || a.Song != f.song.Handle || len(a.Next) != 2 {
		t.Errorf("部分解析的锚点不符: %+v", a)
	}
}

func TestResolveAnchorsNilSnapshot(t *testing.T) {
	if _, err := ResolveAnchors(nil, DefaultLayout()); !errors.Is(err, ErrNotSnapshotted) {
		t.Fatalf("ResolveAnchors(nil) 应返回 ErrNotSnapshotted, 实际为 %v", err)
	}
}
