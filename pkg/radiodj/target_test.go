package radiodj

import (
	"errors"
	"testing"

	"github.com/zoeyai/djwatch/pkg/auto/window/windowtest"
)

func TestNewTargetEmptyStation(t *testing.T) {
	if _, err := NewTarget("  ", ""); err == nil {
		t.Fatal("电台名为空时 NewTarget() 应返回错误")
	}
}

func TestTargetMatch(t *testing.T) {
	tests := []struct {
		name        string
		station     string
		slogan      string
		title       string
		wantOK      bool
		wantVersion string
		wantSlogan  string
	}{
		{
			name:        "slogan discovered",
			station:     "Funky24",
			title:       mainTitle,
			wantOK:      true,
			wantVersion: "9.2.1.40",
			wantSlogan:  "Chill Mix",
		},
		{
			name:        "case insensitive",
			station:     "FUNKY24",
			title:       "funky24 - chill mix - radiodj v2.0.0.5",
			wantOK:      true,
			wantVersion: "2.0.0.5",
			wantSlogan:  "chill mix",
		},
		{
			name:        "slogan supplied",
			station:     "Funky24",
			slogan:      "Chill Mix",
			title:       mainTitle,
			wantOK:      true,
			wantVersion: "9.2.1.40",
			wantSlogan:  "Chill Mix",
		},
		{
			name:    "slogan supplied mismatch",
			station: "Funky24",
			slogan:  "Night Shift",
			title:   mainTitle,
		},
		{
			name:    "station prefix only",
			station: "Funky",
			title:   mainTitle,
		},
		{
			name:    "anchored at start",
			station: "Funky24",
			title:   "Re: " + mainTitle,
		},
		{
			name:    "short version",
			station: "Funky24",
			title:   "Funky24 - Chill Mix - RadioDJ v9.2",
		},
		{
			name:        "station with regexp metacharacters",
			station:     "Radio (1)+",
			title:       "Radio (1)+ - Hits - RadioDJ v1.8.3.0",
			wantOK:      true,
			wantVersion: "1.8.3.0",
			wantSlogan:  "Hits",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := NewTarget(tt.station, tt.slogan)
			if err != nil {
				t.Fatalf("NewTarget() 失败: %v", err)
			}

			version, slogan, ok := target.Match(tt.title)
			if ok != tt.wantOK {
				t.Fatalf("Match(%q) ok 实际为 %v, 应为 %v (模式 %s)", tt.title, ok, tt.wantOK, target.Pattern())
			}
			if !ok {
				return
			}
			if version != tt.wantVersion {
				t.Errorf("version 实际为 %q, 应为 %q", version, tt.wantVersion)
			}
			if slogan != tt.wantSlogan {
				t.Errorf("slogan 实际为 %q, 应为 %q", slogan, tt.wantSlogan)
			}
		})
	}
}

func TestTargetLocate(t *testing.T) {
	f := newFixture(t)

	target, _ := NewTarget("Funky24", "")
	h, err := target.Locate(f.desktop)
	if err != nil {
		t.Fatalf("Locate() 失败: %v", err)
	}
	if h != f.main.Handle || target.Handle != f.main.Handle {
		t.Errorf("Locate() 实际为 %#x, 应为 %#x", h, f.main.Handle)
	}
	if target.Slogan != "Chill Mix" {
		t.Errorf("Slogan 实际为 %q, 应为 %q", target.Slogan, "Chill Mix")
	}
	if target.Version != "9.2.1.40" {
		t.Errorf("Version 实际为 %q, 应为 %q", target.Version, "9.2.1.40")
	}
	if target.PID != 4242 {
		t.Errorf("PID 实际为 %d, 应为 4242", target.PID)
	}
	if target.Title != mainTitle {
		t.Errorf("Title 不符: %q", target.Title)
	}
}

func TestTargetLocateFirstMatchWins(t *testing.T) {
	d := windowtest.New()
	first := d.AddTop("Funky24 - Morning - RadioDJ v2.0.0.5", 1)
	d.AddTop("Funky24 - Evening - RadioDJ v2.0.0.5", 2)

	target, _ := NewTarget("Funky24", "")
	h, err := target.Locate(d)
	if err != nil {
		t.Fatalf("Locate() 失败: %v", err)
	}
	if h != first.Handle || target.Slogan != "Morning" {
		t.Errorf("Locate() 实际为 %#x 口号 %q, 应为第一个匹配窗口", h, target.Slogan)
	}
}

func TestTargetLocateNotFound(t *testing.T) {
	f := newFixture(t)

	target, _ := NewTarget("Funky24", "Night Shift")
	if _, err := target.Locate(f.desktop); !errors.Is(err, ErrTargetNotFound) {
		t.Fatalf("Locate() 应返回 ErrTargetNotFound, 实际为 %v", err)
	}
	if target.Located() {
		t.Error("不应定位到目标")
	}
}

func TestTargetLocateResets(t *testing.T) {
	f := newFixture(t)

	target, _ := NewTarget("Funky24", "")
	if _, err := target.Locate(f.desktop); err != nil {
		t.Fatalf("Locate() 失败: %v", err)
	}

	f.desktop.Destroy(f.main.Handle)
	if _, err := target.Locate(f.desktop); !errors.Is(err, ErrTargetNotFound) {
		t.Fatalf("Locate() 应返回 ErrTargetNotFound, 实际为 %v", err)
	}
	if target.Handle != 0 || target.Version != "" || target.Slogan != "" || target.PID != 0 {
		t.Errorf("目标未重置: %+v", target)
	}
}
