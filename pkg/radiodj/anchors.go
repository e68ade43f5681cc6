package radiodj

import (
	"errors"
	"fmt"

	"github.com/zoeyai/djwatch/pkg/auto/window"
)

// Anchors 通过指纹文本解析出的锚点窗口
type Anchors struct {
	OnAir window.Handle   `json:"on_air"`
	Song  window.Handle   `json:"song"`
	Next  []window.Handle `json:"next"`
}

// ResolveAnchors 在快照中解析播出区、歌曲信息区与全部待播 cart 块。
// 未解析的锚点保持为 0，错误中列出全部失败项。
func ResolveAnchors(s *Snapshot, l Layout) (Anchors, error) {
	if s == nil {
		return Anchors{}, ErrNotSnapshotted
	}

	var (
		a    Anchors
		errs []error
		err  error
	)

	if a.OnAir, err = parentOfText(s, l.OnAir.Fingerprint, l.FirstMatch); err != nil {
		errs = append(errs, fmt.Errorf("播出区: %w", err))
	}
	if a.Song, err = parentOfText(s, l.Song.Fingerprint, l.FirstMatch); err != nil {
		errs = append(errs, fmt.Errorf("歌曲信息区: %w", err))
	}
	a.Next = cartParents(s, l.Cart)

	return a, errors.Join(errs...)
}

// parentOfText 找到含有指定文本子窗口的父窗口
func parentOfText(s *Snapshot, text string, firstMatch bool) (window.Handle, error) {
	var matches []window.Handle

	for _, parent := range s.parents {
		for _, n := range s.children[parent] {
			if n.Text == text {
				matches = append(matches, parent)
				break
			}
		}
		if firstMatch && len(matches) > 0 {
			break
		}
	}

	switch len(matches) {
	case 0:
		return 0, fmt.Errorf("%w: 文本 %q", ErrAnchorNotFound, text)
	case 1:
		return matches[0], nil
	default:
		return 0, fmt.Errorf("%w: 文本 %q 出现在 %d 个父窗口下", ErrAnchorAmbiguous, text, len(matches))
	}
}

// cartParents 前两个子窗口文本为 cart 指纹、第三个为空的父窗口
func cartParents(s *Snapshot, c CartLayout) []window.Handle {
	if len(c.Fingerprints) < 2 {
		return nil
	}

	var next []window.Handle
	for _, parent := range s.parents {
		nodes := s.children[parent]
		if len(nodes) < 3 {
			continue
		}
		if nodes[0].Text == c.Fingerprints[0] && nodes[1].Text == c.Fingerprints[1] && nodes[2].Text == "" {
			next = append(next, parent)
		}
	}
	return next
}
