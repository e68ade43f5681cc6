package radiodj

import (
	"fmt"

	"github.com/zoeyai/djwatch/pkg/auto/window"
)

// Node 快照中的一个子窗口
type Node struct {
	Handle window.Handle
	Depth  int
	Text   string
}

// Snapshot 某一时刻目标窗口整棵子窗口树：父窗口 → 有序子窗口，句柄 → 深度。
// 快照只会整体重建，不做局部更新。
type Snapshot struct {
	Root window.Handle

	children map[window.Handle][]Node
	depth    map[window.Handle]int
	// parents 按首次出现的顺序记录父窗口，保证锚点搜索顺序确定
	parents []window.Handle
	// orphans 父窗口未先出现的子窗口数量
	orphans int
}

// TakeSnapshot 枚举 root 的全部后代并建立索引，root 深度为 0
func TakeSnapshot(d window.Desktop, root window.Handle) (*Snapshot, error) {
	if root == 0 {
		return nil, fmt.Errorf("%w: 根窗口句柄为空", ErrTargetNotFound)
	}

	relations, err := d.Descendants(root)
	if err != nil {
		return nil, fmt.Errorf("枚举子窗口失败: %w", err)
	}

	s := &Snapshot{
		Root:     root,
		children: map[window.Handle][]Node{root: {}},
		depth:    map[window.Handle]int{root: 0},
		parents:  []window.Handle{root},
	}

	for _, rel := range relations {
		text, err := d.Text(rel.Handle)
		if err != nil {
			return nil, fmt.Errorf("读取窗口文本失败 %#x: %w", uintptr(rel.Handle), err)
		}
		s.add(rel, text)
	}

	return s, nil
}

func (s *Snapshot) add(rel window.Relation, text string) {
	parentDepth, ok := s.depth[rel.Parent]
	if !ok {
		s.orphans++
		parentDepth = 0
	}

	depth := parentDepth + 1
	if _, seen := s.depth[rel.Handle]; !seen {
		s.depth[rel.Handle] = depth
	}

	if _, seen := s.children[rel.Parent]; !seen {
		s.parents = append(s.parents, rel.Parent)
	}
	s.children[rel.Parent] = append(s.children[rel.Parent], Node{
		Handle: rel.Handle,
		Depth:  depth,
		Text:   text,
	})
}

// Children 父窗口的有序子窗口
func (s *Snapshot) Children(parent window.Handle) []Node {
	return s.children[parent]
}

// Depth 窗口深度
func (s *Snapshot) Depth(h window.Handle) (int, bool) {
	d, ok := s.depth[h]
	return d, ok
}

// Parents 拥有子窗口的父窗口（含根），按首次出现顺序
func (s *Snapshot) Parents() []window.Handle {
	out := make([]window.Handle, len(s.parents))
	copy(out, s.parents)
	return out
}

// Len 后代窗口数量（不含根）
func (s *Snapshot) Len() int {
	return len(s.depth) - 1
}

// Orphans 父窗口未先于自身出现的子窗口数量
func (s *Snapshot) Orphans() int {
	return s.orphans
}
