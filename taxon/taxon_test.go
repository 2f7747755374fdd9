// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package taxon_test

import (
	"errors"
	"reflect"
	"slices"
	"strings"
	"testing"

	"github.com/js-arias/gbifer/taxonomy"
	"github.com/js-arias/krakentax/taxon"
)

type entry struct {
	parent int64
	id     int64
	rank   string
	name   string
}

var entries = []entry{
	{1, 131567, "R1", "cellular organisms"},
	{131567, 2, "D", "Bacteria"},
	{2, 1224, "P", "Proteobacteria"},
	{1224, 1236, "C", "Gammaproteobacteria"},
	{1236, 91347, "O", "Enterobacterales"},
	{91347, 543, "F", "Enterobacteriaceae"},
	{543, 561, "G", "Escherichia"},
	{561, 562, "S", "Escherichia coli"},
	{543, 620, "G", "Shigella"},
	{2, 1239, "P", "Firmicutes"},
	{1239, 1386, "G", "Bacillus"},
	{131567, 2759, "D", "Eukaryota"},
	{1, 10239, "D", "Viruses"},
}

func newTree(t testing.TB) *taxon.Tree {
	t.Helper()

	tr := taxon.New(1)
	for _, e := range entries {
		rank, name := e.rank, e.name
		if err := tr.AppendChild(e.parent, e.id, &rank, &name); err != nil {
			t.Fatalf("append %d to %d: %v", e.id, e.parent, err)
		}
	}
	return tr
}

func TestAppendChild(t *testing.T) {
	tr := newTree(t)

	if n := tr.Len(); n != len(entries)+1 {
		t.Errorf("len: got %d, want %d", n, len(entries)+1)
	}

	if err := tr.AppendChild(99, 100, nil, nil); !errors.Is(err, taxon.ErrParentNotFound) {
		t.Errorf("append to absent parent: got error %v, want %v", err, taxon.ErrParentNotFound)
	}
	if err := tr.AppendChild(2, 562, nil, nil); !errors.Is(err, taxon.ErrDuplicateNode) {
		t.Errorf("append duplicated taxon: got error %v, want %v", err, taxon.ErrDuplicateNode)
	}
	if err := tr.AppendChild(1, 1, nil, nil); !errors.Is(err, taxon.ErrDuplicateNode) {
		t.Errorf("append root: got error %v, want %v", err, taxon.ErrDuplicateNode)
	}
	if p, _ := tr.Parent(562); p != 561 {
		t.Errorf("parent of 562 after duplicate: got %d, want %d", p, 561)
	}

	want := []int64{131567, 10239}
	if got := tr.Children(1); !reflect.DeepEqual(got, want) {
		t.Errorf("children of root: got %v, want %v", got, want)
	}

	if err := tr.AppendChild(10239, 11000, nil, nil); err != nil {
		t.Fatalf("append unnamed taxon: %v", err)
	}
	n, ok := tr.Node(11000)
	if !ok {
		t.Fatalf("taxon %d: not found", 11000)
	}
	if _, ok := n.Rank(); ok {
		t.Errorf("taxon %d: unexpected rank", 11000)
	}
	if _, ok := n.Name(); ok {
		t.Errorf("taxon %d: unexpected name", 11000)
	}

	n, _ = tr.Node(562)
	if name, ok := n.Name(); !ok || name != "Escherichia coli" {
		t.Errorf("taxon %d: got name %q, want %q", 562, name, "Escherichia coli")
	}
	if r := n.Linnean(); r != taxonomy.Species {
		t.Errorf("taxon %d: got rank %v, want %v", 562, r, taxonomy.Species)
	}
}

func TestLineage(t *testing.T) {
	tr := newTree(t)

	tests := map[int64][]int64{
		1:     {1},
		10239: {1, 10239},
		562:   {1, 131567, 2, 1224, 1236, 91347, 543, 561, 562},
		620:   {1, 131567, 2, 1224, 1236, 91347, 543, 620},
		1386:  {1, 131567, 2, 1239, 1386},
	}
	for id, want := range tests {
		got, err := tr.Lineage(id)
		if err != nil {
			t.Errorf("lineage %d: %v", id, err)
			continue
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("lineage %d: got %v, want %v", id, got, want)
		}
	}

	for _, id := range tr.IDs() {
		lin, err := tr.Lineage(id)
		if err != nil {
			t.Fatalf("lineage %d: %v", id, err)
		}
		d, err := tr.Depth(id)
		if err != nil {
			t.Fatalf("depth %d: %v", id, err)
		}
		if len(lin) != d+1 {
			t.Errorf("lineage %d: got length %d, want %d", id, len(lin), d+1)
		}
		if lin[0] != tr.Root() {
			t.Errorf("lineage %d: starts with %d, want %d", id, lin[0], tr.Root())
		}
		if lin[len(lin)-1] != id {
			t.Errorf("lineage %d: ends with %d", id, lin[len(lin)-1])
		}
	}

	if _, err := tr.Lineage(7); !errors.Is(err, taxon.ErrNodeNotFound) {
		t.Errorf("lineage of absent taxon: got error %v, want %v", err, taxon.ErrNodeNotFound)
	}
}

func TestDescendants(t *testing.T) {
	tr := newTree(t)

	tests := map[int64][]int64{
		562:   nil,
		543:   {561, 562, 620},
		2:     {1224, 1236, 91347, 543, 561, 562, 620, 1239, 1386},
		10239: nil,
	}
	for id, want := range tests {
		got, err := tr.Descendants(id)
		if err != nil {
			t.Errorf("descendants %d: %v", id, err)
			continue
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("descendants %d: got %v, want %v", id, got, want)
		}
	}

	all, err := tr.Descendants(tr.Root())
	if err != nil {
		t.Fatalf("descendants of root: %v", err)
	}
	if len(all) != tr.Len()-1 {
		t.Errorf("descendants of root: got %d taxa, want %d", len(all), tr.Len()-1)
	}

	for _, id := range tr.IDs() {
		desc, _ := tr.Descendants(id)
		for _, d := range desc {
			lin, _ := tr.Lineage(d)
			if !slices.Contains(lin, id) {
				t.Errorf("descendant %d of %d: lineage %v", d, id, lin)
			}
		}
	}

	if _, err := tr.Descendants(7); !errors.Is(err, taxon.ErrNodeNotFound) {
		t.Errorf("descendants of absent taxon: got error %v, want %v", err, taxon.ErrNodeNotFound)
	}
}

func TestDeepTree(t *testing.T) {
	const depth = 100_000
	tr := taxon.New(0)
	for i := int64(1); i <= depth; i++ {
		if err := tr.AppendChild(i-1, i, nil, nil); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	desc, err := tr.Descendants(0)
	if err != nil {
		t.Fatalf("descendants: %v", err)
	}
	if len(desc) != depth {
		t.Errorf("descendants: got %d, want %d", len(desc), depth)
	}
	if nw := tr.Newick(); len(nw) == 0 {
		t.Errorf("newick: empty string")
	}
	if nw := tr.Condensed(); nw != "100000;" {
		t.Errorf("condensed: got %q, want %q", nw, "100000;")
	}
}

func TestFindByName(t *testing.T) {
	tr := newTree(t)

	if id, ok := tr.FindByName("Escherichia coli"); !ok || id != 562 {
		t.Errorf("find %q: got %d (%v), want %d", "Escherichia coli", id, ok, 562)
	}
	if id, ok := tr.FindByName("Homo sapiens"); ok {
		t.Errorf("find %q: got %d, want no match", "Homo sapiens", id)
	}

	// first inserted taxon wins
	name := "Bacillus"
	if err := tr.AppendChild(2759, 55087, nil, &name); err != nil {
		t.Fatalf("append: %v", err)
	}
	if id, _ := tr.FindByName(name); id != 1386 {
		t.Errorf("find %q: got %d, want %d", name, id, 1386)
	}
}

func TestLCA(t *testing.T) {
	tr := newTree(t)

	tests := []struct {
		ids  []int64
		want int64
	}{
		{[]int64{562, 620}, 543},
		{[]int64{620, 562}, 543},
		{[]int64{562, 562, 620, 620}, 543},
		{[]int64{562, 561}, 561},
		{[]int64{562, 1386}, 2},
		{[]int64{562, 1386, 2759}, 131567},
		{[]int64{562, 10239}, 1},
		{[]int64{1, 562}, 1},
	}
	for _, tt := range tests {
		got, ok, err := tr.LCA(tt.ids)
		if err != nil {
			t.Errorf("lca %v: %v", tt.ids, err)
			continue
		}
		if !ok || got != tt.want {
			t.Errorf("lca %v: got %d (%v), want %d", tt.ids, got, ok, tt.want)
		}
	}

	for _, id := range tr.IDs() {
		if got, _, _ := tr.LCA([]int64{id}); got != id {
			t.Errorf("lca {%d}: got %d", id, got)
		}
	}

	if _, ok, err := tr.LCA(nil); ok || err != nil {
		t.Errorf("lca of empty set: got %v, %v", ok, err)
	}
	if _, _, err := tr.LCA([]int64{562, 7}); !errors.Is(err, taxon.ErrNodeNotFound) {
		t.Errorf("lca with absent taxon: got error %v, want %v", err, taxon.ErrNodeNotFound)
	}
}

func TestAncestor(t *testing.T) {
	tr := newTree(t)

	tests := []struct {
		id   int64
		rank taxonomy.Rank
		want int64
		ok   bool
	}{
		{562, taxonomy.Genus, 561, true},
		{562, taxonomy.Species, 562, true},
		{562, taxonomy.Family, 543, true},
		{620, taxonomy.Phylum, 1224, true},
		{1386, taxonomy.Class, 0, false},
		{10239, taxonomy.Kingdom, 0, false},
		{562, taxonomy.Unranked, 0, false},
	}
	for _, tt := range tests {
		got, ok, err := tr.Ancestor(tt.id, tt.rank)
		if err != nil {
			t.Errorf("ancestor %d at %v: %v", tt.id, tt.rank, err)
			continue
		}
		if ok != tt.ok || got != tt.want {
			t.Errorf("ancestor %d at %v: got %d (%v), want %d (%v)", tt.id, tt.rank, got, ok, tt.want, tt.ok)
		}
	}
}

func TestLinnean(t *testing.T) {
	tests := map[string]taxonomy.Rank{
		"S":  taxonomy.Species,
		"G":  taxonomy.Genus,
		"K":  taxonomy.Kingdom,
		"G1": taxonomy.Unranked,
		"D":  taxonomy.Unranked,
		"R":  taxonomy.Unranked,
		"":   taxonomy.Unranked,
	}
	for code, want := range tests {
		if got := taxon.Linnean(code); got != want {
			t.Errorf("rank %q: got %v, want %v", code, got, want)
		}
	}
}

func TestMerge(t *testing.T) {
	tr := newTree(t)

	shard := taxon.New(2)
	name := "Pseudomonadota"
	if err := shard.AppendChild(2, 1224, nil, &name); err != nil {
		t.Fatalf("shard: %v", err)
	}
	name = "Betaproteobacteria"
	if err := shard.AppendChild(1224, 28216, nil, &name); err != nil {
		t.Fatalf("shard: %v", err)
	}
	if err := shard.AppendChild(28216, 80840, nil, nil); err != nil {
		t.Fatalf("shard: %v", err)
	}

	if err := tr.Merge(shard); err != nil {
		t.Fatalf("merge: %v", err)
	}
	want := []int64{1, 131567, 2, 1224, 28216, 80840}
	if got, _ := tr.Lineage(80840); !reflect.DeepEqual(got, want) {
		t.Errorf("lineage of merged taxon: got %v, want %v", got, want)
	}
	if id, ok := tr.FindByName("Betaproteobacteria"); !ok || id != 28216 {
		t.Errorf("merged name: got %d (%v), want %d", id, ok, 28216)
	}

	bad := taxon.New(1)
	if err := bad.AppendChild(1, 562, nil, nil); err != nil {
		t.Fatalf("shard: %v", err)
	}
	if err := tr.Merge(bad); !errors.Is(err, taxon.ErrConflict) {
		t.Errorf("merge conflicting shard: got error %v, want %v", err, taxon.ErrConflict)
	}

	cycle := taxon.New(2)
	if err := cycle.AppendChild(2, 1, nil, nil); err != nil {
		t.Fatalf("shard: %v", err)
	}
	err := tr.Merge(cycle)
	if !errors.Is(err, taxon.ErrConflict) {
		t.Errorf("merge shard with the root as a child: got error %v, want %v", err, taxon.ErrConflict)
	}
	if err != nil && !strings.Contains(err.Error(), "root") {
		t.Errorf("merge shard with the root as a child: got error %q, want root conflict", err)
	}

	orphan := taxon.New(4000)
	if err := tr.Merge(orphan); !errors.Is(err, taxon.ErrParentNotFound) {
		t.Errorf("merge detached shard: got error %v, want %v", err, taxon.ErrParentNotFound)
	}
}
