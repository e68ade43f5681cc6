package window_test

import (
	"testing"

	"github.com/zoeyai/djwatch/pkg/auto"
	"github.com/zoeyai/djwatch/pkg/auto/window"
	"github.com/zoeyai/djwatch/pkg/auto/window/windowtest"
)

func TestListWindows(t *testing.T) {
	d := windowtest.New()
	a := d.AddTop("Funky24 - Chill Mix - RadioDJ v9.2.1.40", 100)
	a.Rect = auto.Region{X: 10, Y: 20, Width: 800, Height: 600}
	d.AddTop("", 200)
	d.AddTop("Notepad", 300)

	all, err := window.ListWindows(d, "")
	if err != nil {
		t.Fatalf("ListWindows 失败: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("应跳过无标题窗口, 期望 2 个, 实际 %d", len(all))
	}

	filtered, err := window.ListWindows(d, "radiodj")
	if err != nil {
		t.Fatalf("ListWindows 失败: %v", err)
	}
	if len(filtered) != 1 {
		t.Fatalf("过滤后期望 1 个窗口, 实际 %d", len(filtered))
	}
	got := filtered[0]
	if got.Handle != a.Handle || got.PID != 100 || got.Bounds != a.Rect {
		t.Errorf("窗口信息不匹配: %+v", got)
	}
}

func TestFakeDescendantsOrder(t *testing.T) {
	d := windowtest.New()
	top := d.AddTop("root", 1)
	a := top.Add("a")
	a1 := a.Add("a1")
	b := top.Add("b")

	rels, err := d.Descendants(top.Handle)
	if err != nil {
		t.Fatalf("Descendants 失败: %v", err)
	}

	want := []window.Relation{
		{Handle: a.Handle, Parent: top.Handle},
		{Handle: a1.Handle, Parent: a.Handle},
		{Handle: b.Handle, Parent: top.Handle},
	}
	if len(rels) != len(want) {
		t.Fatalf("期望 %d 个后代, 实际 %d", len(want), len(rels))
	}
	for i := range want {
		if rels[i] != want[i] {
			t.Errorf("第 %d 项: 期望 %+v, 实际 %+v", i, want[i], rels[i])
		}
	}
}
