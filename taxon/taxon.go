// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package taxon implements an in-memory taxonomy
// built from the reports of k-mer based
// metagenomic classifiers.
//
// A taxonomy is a single rooted tree
// in which each taxon is identified by an integer ID.
// Besides the list of children,
// the tree keeps an index of the parent of each taxon,
// so lineages are resolved in time proportional
// to the depth of the taxon.
package taxon

import (
	"errors"
	"fmt"
	"slices"
)

// Tree errors.
var (
	ErrNodeNotFound   = errors.New("taxon not found")
	ErrParentNotFound = errors.New("parent taxon not found")
	ErrDuplicateNode  = errors.New("taxon already in tree")
	ErrConflict       = errors.New("conflicting parent")
)

// A Tree is a taxonomy.
//
// A Tree must be built before it is queried:
// it is safe to read a tree from multiple goroutines
// only if no AppendChild or Merge calls are in flight.
type Tree struct {
	root   int64
	nodes  map[int64]*Node
	parent map[int64]int64
	names  map[string]int64
	order  []int64
}

// New creates a new tree
// with the given root ID.
func New(root int64) *Tree {
	t := &Tree{
		root:   root,
		nodes:  make(map[int64]*Node),
		parent: make(map[int64]int64),
		names:  make(map[string]int64),
	}
	t.nodes[root] = &Node{id: root}
	t.order = append(t.order, root)
	return t
}

// AppendChild adds a new taxon as the last child
// of the given parent.
// Rank and name are optional
// and can be nil.
func (t *Tree) AppendChild(parent, id int64, rank, name *string) error {
	p, ok := t.nodes[parent]
	if !ok {
		return fmt.Errorf("%w: %d", ErrParentNotFound, parent)
	}
	if _, dup := t.nodes[id]; dup {
		return fmt.Errorf("%w: %d", ErrDuplicateNode, id)
	}

	n := &Node{id: id}
	if rank != nil {
		n.rank = *rank
		n.hasRank = true
	}
	if name != nil {
		n.name = *name
		n.hasName = true
		if _, ok := t.names[n.name]; !ok {
			t.names[n.name] = id
		}
	}

	t.nodes[id] = n
	t.parent[id] = parent
	p.children = append(p.children, id)
	t.order = append(t.order, id)
	return nil
}

// Root returns the ID of the root of the tree.
func (t *Tree) Root() int64 {
	return t.root
}

// Len returns the number of taxa in the tree,
// including the root.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Node returns the node with the given ID.
func (t *Tree) Node(id int64) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Parent returns the parent ID of a taxon.
// It returns false if the taxon is the root
// or it is not in the tree.
func (t *Tree) Parent(id int64) (int64, bool) {
	p, ok := t.parent[id]
	return p, ok
}

// Children returns the IDs of the children of a taxon
// in insertion order.
func (t *Tree) Children(id int64) []int64 {
	n, ok := t.nodes[id]
	if !ok {
		return nil
	}
	return slices.Clone(n.children)
}

// IDs returns the IDs of all the taxa
// in insertion order.
func (t *Tree) IDs() []int64 {
	return slices.Clone(t.order)
}

// Depth returns the number of ancestors of a taxon.
// The depth of the root is 0.
func (t *Tree) Depth(id int64) (int, error) {
	if _, ok := t.nodes[id]; !ok {
		return 0, fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}
	d := 0
	for id != t.root {
		id = t.parent[id]
		d++
	}
	return d, nil
}

// Lineage returns the IDs of the taxa from the root
// to the given taxon
// (both included).
func (t *Tree) Lineage(id int64) ([]int64, error) {
	if _, ok := t.nodes[id]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}

	lin := []int64{id}
	for id != t.root {
		id = t.parent[id]
		lin = append(lin, id)
	}
	slices.Reverse(lin)
	return lin, nil
}

// Descendants returns the IDs of all the taxa
// in the subtree of the given taxon
// (excluding the taxon itself)
// in pre-order.
func (t *Tree) Descendants(id int64) ([]int64, error) {
	n, ok := t.nodes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}

	var desc []int64
	stack := reversed(n.children)
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		desc = append(desc, c)

		cn := t.nodes[c]
		for i := len(cn.children) - 1; i >= 0; i-- {
			stack = append(stack, cn.children[i])
		}
	}
	return desc, nil
}

// FindByName returns the ID of the first taxon
// added to the tree
// with the given name.
func (t *Tree) FindByName(name string) (int64, bool) {
	id, ok := t.names[name]
	return id, ok
}

// LCA returns the least common ancestor
// of a set of taxa.
// If the set is empty,
// it returns false.
func (t *Tree) LCA(ids []int64) (int64, bool, error) {
	if len(ids) == 0 {
		return 0, false, nil
	}

	first, err := t.Lineage(ids[0])
	if err != nil {
		return 0, false, err
	}
	common := make(map[int64]bool, len(first))
	for _, id := range first {
		common[id] = true
	}

	for _, id := range ids[1:] {
		lin, err := t.Lineage(id)
		if err != nil {
			return 0, false, err
		}
		in := make(map[int64]bool, len(lin))
		for _, a := range lin {
			in[a] = true
		}
		for a := range common {
			if !in[a] {
				delete(common, a)
			}
		}
	}

	lca := first[0]
	for _, id := range first {
		if !common[id] {
			break
		}
		lca = id
	}
	return lca, true, nil
}

// Merge adds the taxa of another tree.
//
// Taxa already in the tree must have the same parent
// in both trees.
// The root of the other tree must be a taxon
// already in the tree.
func (t *Tree) Merge(o *Tree) error {
	if _, ok := t.nodes[o.root]; !ok {
		return fmt.Errorf("%w: %d", ErrParentNotFound, o.root)
	}

	for _, id := range o.order {
		if id == o.root {
			continue
		}
		p := o.parent[id]
		if _, ok := t.nodes[id]; ok {
			if id == t.root {
				return fmt.Errorf("%w: taxon %d: parent %d, but it is the root of the tree", ErrConflict, id, p)
			}
			if tp := t.parent[id]; tp != p {
				return fmt.Errorf("%w: taxon %d: parent %d, want %d", ErrConflict, id, p, tp)
			}
			continue
		}

		on := o.nodes[id]
		var rank, name *string
		if r, ok := on.Rank(); ok {
			rank = &r
		}
		if nm, ok := on.Name(); ok {
			name = &nm
		}
		if err := t.AppendChild(p, id, rank, name); err != nil {
			return err
		}
	}
	return nil
}

func reversed(ids []int64) []int64 {
	r := slices.Clone(ids)
	slices.Reverse(r)
	return r
}
