package radiodj

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/zoeyai/djwatch/pkg/auto"
)

func TestIsDeadFrozen(t *testing.T) {
	f := newFixture(t)
	s, _, sleeper := f.captured(t)

	dead, err := s.IsDead(context.Background())
	if err != nil {
		t.Fatalf("IsDead() 失败: %v", err)
	}
	if !dead {
		t.Error("剩余时间冻结时 IsDead() 应为 true")
	}

	if len(sleeper.calls) != auto.DefaultProbeSamples-1 {
		t.Errorf("等待次数实际为 %d, 应为 %d", len(sleeper.calls), auto.DefaultProbeSamples-1)
	}
	for _, d := range sleeper.calls {
		if d != auto.DefaultProbeInterval {
			t.Errorf("等待时长实际为 %v, 应为 %v", d, auto.DefaultProbeInterval)
		}
	}
}

func TestIsDeadTicking(t *testing.T) {
	f := newFixture(t)
	s, _, sleeper := f.captured(t)
	sleeper.hook = func(n int) {
		f.desktop.SetText(f.remaining.Handle, fmt.Sprintf("00:03:%02d", 12-n))
	}

	dead, err := s.IsDead(context.Background())
	if err != nil {
		t.Fatalf("IsDead() 失败: %v", err)
	}
	if dead {
		t.Error("剩余时间在走时 IsDead() 应为 false")
	}
}

func TestIsDeadSingleChange(t *testing.T) {
	f := newFixture(t)
	s, _, sleeper := f.captured(t)
	// 只有最后一次采样变化也算存活
	sleeper.hook = func(n int) {
		if n == auto.DefaultProbeSamples-1 {
			f.desktop.SetText(f.remaining.Handle, "00:03:11")
		}
	}

	dead, err := s.IsDead(context.Background())
	if err != nil {
		t.Fatalf("IsDead() 失败: %v", err)
	}
	if dead {
		t.Error("最后一次采样有变化时 IsDead() 应为 false")
	}
}

func TestIsDeadCanceled(t *testing.T) {
	f := newFixture(t)
	s, _, _ := f.captured(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.IsDead(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("IsDead() 应返回 context.Canceled, 实际为 %v", err)
	}
}

func TestIsDeadUnresolved(t *testing.T) {
	f := newFixture(t)
	f.desktop.SetText(f.onAir.Children[0].Handle, "")
	s, _, sleeper := f.session(t)
	_ = s.Refresh()

	if _, err := s.IsDead(context.Background()); !errors.Is(err, ErrAnchorUnresolved) {
		t.Fatalf("IsDead() 应返回 ErrAnchorUnresolved, 实际为 %v", err)
	}
	if len(sleeper.calls) != 0 {
		t.Errorf("字段无法读取时 IsDead() 不应等待")
	}
}
