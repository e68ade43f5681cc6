package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/zoeyai/djwatch/pkg/auto/window"
	"github.com/zoeyai/djwatch/pkg/config"
	"github.com/zoeyai/djwatch/pkg/radiodj"
)

func TestWriteTracks(t *testing.T) {
	var buf bytes.Buffer
	tracks := []radiodj.Track{
		{Slot: "1", StartTime: "14:03:12", Duration: "03:41", Artist: "Artist A", Title: "Track A"},
		{Slot: "2", StartTime: "14:06:53", Duration: "04:02", Artist: "Artist B", Title: "Track B"},
	}
	if err := writeTracks(&buf, tracks); err != nil {
		t.Fatalf("writeTracks 失败: %v", err)
	}

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("应输出表头加 2 行, 实际:\n%s", buf.String())
	}
	if !strings.Contains(lines[1], "Artist A") || !strings.Contains(lines[2], "Track B") {
		t.Errorf("表格内容不匹配:\n%s", buf.String())
	}

	buf.Reset()
	writeTracks(&buf, nil)
	if !strings.Contains(buf.String(), "为空") {
		t.Errorf("空队列输出不匹配: %q", buf.String())
	}
}

func TestWriteWindows(t *testing.T) {
	var buf bytes.Buffer
	windows := []window.WindowInfo{{Handle: 0x1010, PID: 42, Title: "Funky24 - Chill Mix - RadioDJ v9.2.1.40"}}
	if err := writeWindows(&buf, windows); err != nil {
		t.Fatalf("writeWindows 失败: %v", err)
	}
	if !strings.Contains(buf.String(), "0x1010") || !strings.Contains(buf.String(), "42") {
		t.Errorf("输出不匹配:\n%s", buf.String())
	}
}

func TestNewSessionRequiresStation(t *testing.T) {
	if _, err := newSession(config.DefaultConfig(), window.NewDesktop(), false); err == nil {
		t.Error("未指定电台时应返回错误")
	}
}
