// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxon

import (
	"fmt"
	"slices"

	"github.com/js-arias/gbifer/taxonomy"
)

// A Node is a taxon in a taxonomy.
type Node struct {
	id       int64
	rank     string
	name     string
	hasRank  bool
	hasName  bool
	children []int64
}

// ID returns the ID of the taxon.
func (n *Node) ID() int64 {
	return n.id
}

// Rank returns the rank code of the taxon
// (for example "S" or "G1").
// It returns false if the taxon has no rank.
func (n *Node) Rank() (string, bool) {
	return n.rank, n.hasRank
}

// Name returns the name of the taxon.
// It returns false if the taxon has no name.
func (n *Node) Name() (string, bool) {
	return n.name, n.hasName
}

// Children returns the IDs of the children
// of the taxon.
func (n *Node) Children() []int64 {
	return slices.Clone(n.children)
}

// Linnean returns the linnean rank of the taxon.
// Rank codes with a numeric suffix
// (intermediate ranks)
// as well as ranks without a linnean equivalent
// are unranked.
func (n *Node) Linnean() taxonomy.Rank {
	if !n.hasRank {
		return taxonomy.Unranked
	}
	return Linnean(n.rank)
}

func (n *Node) String() string {
	s := fmt.Sprintf("%d", n.id)
	if n.hasRank {
		s += ":" + n.rank
	}
	if n.hasName {
		s += ":" + n.name
	}
	return fmt.Sprintf("%s (%d children)", s, len(n.children))
}

// linnean maps the rank codes of a report
// to linnean ranks.
var linnean = map[string]taxonomy.Rank{
	"K": taxonomy.Kingdom,
	"P": taxonomy.Phylum,
	"C": taxonomy.Class,
	"O": taxonomy.Order,
	"F": taxonomy.Family,
	"G": taxonomy.Genus,
	"S": taxonomy.Species,
}

// Linnean returns the linnean rank
// of a rank code.
func Linnean(code string) taxonomy.Rank {
	if r, ok := linnean[code]; ok {
		return r
	}
	return taxonomy.Unranked
}

// Ancestor returns the closest taxon in the lineage of a taxon
// (including the taxon itself)
// with the given linnean rank.
// It returns false if there is no taxon with that rank.
func (t *Tree) Ancestor(id int64, rank taxonomy.Rank) (int64, bool, error) {
	if _, ok := t.nodes[id]; !ok {
		return 0, false, fmt.Errorf("%w: %d", ErrNodeNotFound, id)
	}

	for {
		n := t.nodes[id]
		if n.Linnean() == rank && rank != taxonomy.Unranked {
			return id, true, nil
		}
		if id == t.root {
			return 0, false, nil
		}
		id = t.parent[id]
	}
}
