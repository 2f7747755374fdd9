// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxon

import (
	"strconv"
	"strings"
)

// Newick returns the tree in newick (parenthetical) format.
// Taxa are labeled by their IDs,
// internal taxa are labeled after the closing parenthesis,
// for example:
//
//	((562,561)543,1224)2;
func (t *Tree) Newick() string {
	var b strings.Builder
	t.writeNewick(&b, t.root, func(id int64) []int64 {
		return t.nodes[id].children
	})
	b.WriteByte(';')
	return b.String()
}

// Condensed returns the tree in newick format
// with each chain of taxa with a single child
// collapsed into the last taxon of the chain.
// The root of the condensed tree
// is the first taxon with more than one child.
func (t *Tree) Condensed() string {
	root := t.collapse(t.root)

	var b strings.Builder
	t.writeNewick(&b, root, func(id int64) []int64 {
		n := t.nodes[id]
		children := make([]int64, 0, len(n.children))
		for _, c := range n.children {
			children = append(children, t.collapse(c))
		}
		return children
	})
	b.WriteByte(';')
	return b.String()
}

// Collapse returns the first descendant of a taxon
// that does not have exactly one child.
func (t *Tree) collapse(id int64) int64 {
	for {
		n := t.nodes[id]
		if len(n.children) != 1 {
			return id
		}
		id = n.children[0]
	}
}

type frame struct {
	id       int64
	children []int64
	next     int
}

func (t *Tree) writeNewick(b *strings.Builder, root int64, children func(int64) []int64) {
	stack := []*frame{{id: root, children: children(root)}}
	if len(stack[0].children) > 0 {
		b.WriteByte('(')
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		if f.next == len(f.children) {
			if len(f.children) > 0 {
				b.WriteByte(')')
			}
			b.WriteString(strconv.FormatInt(f.id, 10))
			stack = stack[:len(stack)-1]
			continue
		}

		if f.next > 0 {
			b.WriteByte(',')
		}
		c := f.children[f.next]
		f.next++

		nf := &frame{id: c, children: children(c)}
		if len(nf.children) > 0 {
			b.WriteByte('(')
		}
		stack = append(stack, nf)
	}
}
