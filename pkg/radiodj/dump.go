package radiodj

import (
	"fmt"
	"io"
	"strings"

	"github.com/zoeyai/djwatch/pkg/auto/window"
)

// Dump 按深度优先输出窗口树，文本为实时读取，多行文本按 \r\n 拆分。
// 输出用于为新版本 RadioDJ 编写 Layout。
// 父窗口不在树中的子窗口接在根树之后，各自以其父窗口为顶层输出。
//
//	+- 0x1010 ["Funky24 - Chill Mix - RadioDJ v9.2.1.40"]
//	| +- 0x1020 ["CLOCK"]
func (s *Snapshot) Dump(w io.Writer, d window.Desktop) error {
	var walk func(h window.Handle, level int) error
	walk = func(h window.Handle, level int) error {
		text, err := d.Text(h)
		if err != nil {
			return fmt.Errorf("读取窗口文本失败 %#x: %w", uintptr(h), err)
		}
		lines := strings.Split(text, "\r\n")

		if _, err := fmt.Fprintf(w, "%s+- %#x %q\n", strings.Repeat("| ", level), uintptr(h), lines); err != nil {
			return err
		}

		for _, n := range s.children[h] {
			if err := walk(n.Handle, level+1); err != nil {
				return err
			}
		}
		return nil
	}

	if err := walk(s.Root, 0); err != nil {
		return err
	}

	for _, p := range s.parents {
		if _, inTree := s.depth[p]; inTree {
			continue
		}
		if _, err := fmt.Fprintf(w, "+- %#x (父窗口不在树中)\n", uintptr(p)); err != nil {
			return err
		}
		for _, n := range s.children[p] {
			if err := walk(n.Handle, 1); err != nil {
				return err
			}
		}
	}
	return nil
}
