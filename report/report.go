// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package report implements reading of taxonomy reports
// of k-mer based classifiers
// (for example the output of kraken2-inspect,
// or a Kraken 2 report).
//
// A report is a tab-delimited file with the following fields:
//
//   - percentage of reads (or minimizers) in the clade
//   - number of reads in the clade
//   - number of reads assigned directly to the taxon
//   - rank code
//   - taxon ID
//   - taxon name, indented by two spaces per level
//
// Here is an example file:
//
//	# Database options: nucleotide db, k = 35, l = 31
//	100.00	1205	0	R	1	root
//	 99.10	1194	0	R1	131567	  cellular organisms
//	 99.10	1194	2	D	2	    Bacteria
//	 60.00	723	723	S	562	      Escherichia coli
//
// Only the rank code,
// the taxon ID,
// and the indented name
// are used.
package report

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/js-arias/krakentax/taxon"
)

// Report errors.
var (
	ErrMalformedRecord = errors.New("malformed record")
	ErrOrphanDepth     = errors.New("no parent at previous depth")
	ErrEmpty           = errors.New("empty report")
)

// A Record is a taxon read from a report.
type Record struct {
	Line  int    // line number in the report
	Depth int    // depth of the taxon (in the report indentation)
	ID    int64  // taxon ID
	Rank  string // rank code
	Name  string // taxon name
}

// Unclassified is the rank code
// of the unclassified bucket of a report.
const Unclassified = "U"

// number of fields of a record
const numFields = 6

// ParseLine parses a single line of a report.
func ParseLine(line string) (Record, error) {
	line = strings.TrimRight(line, "\r\n")
	fields := strings.Split(line, "\t")
	if len(fields) < numFields {
		return Record{}, fmt.Errorf("%w: got %d fields, want %d", ErrMalformedRecord, len(fields), numFields)
	}

	id, err := strconv.ParseInt(strings.TrimSpace(fields[4]), 10, 64)
	if err != nil {
		return Record{}, fmt.Errorf("%w: taxon ID %q: %v", ErrMalformedRecord, fields[4], err)
	}
	if id < 0 {
		return Record{}, fmt.Errorf("%w: taxon ID %q: negative value", ErrMalformedRecord, fields[4])
	}

	name := fields[5]
	spaces := len(name) - len(strings.TrimLeft(name, " "))

	return Record{
		Depth: spaces / 2,
		ID:    id,
		Rank:  strings.TrimSpace(fields[3]),
		Name:  strings.TrimSpace(name),
	}, nil
}

// Parse reads the records of a report
// in the order in which they are found.
//
// Empty lines,
// and lines starting with '#'
// are ignored.
func Parse(r io.Reader) ([]Record, error) {
	var recs []Record
	err := scan(r, func(rec Record) error {
		recs = append(recs, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// Read reads a report
// and returns the taxonomy tree.
func Read(r io.Reader) (*taxon.Tree, error) {
	b := NewBuilder()
	if err := scan(r, b.Add); err != nil {
		return nil, err
	}
	return b.Tree()
}

// Build builds a taxonomy tree
// from a list of records.
func Build(recs []Record) (*taxon.Tree, error) {
	b := NewBuilder()
	for _, rec := range recs {
		if err := b.Add(rec); err != nil {
			return nil, err
		}
	}
	return b.Tree()
}

func scan(r io.Reader, fn func(Record) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for ln := 1; sc.Scan(); ln++ {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			continue
		}

		rec, err := ParseLine(line)
		if err != nil {
			return fmt.Errorf("on line %d: %w", ln, err)
		}
		rec.Line = ln
		if err := fn(rec); err != nil {
			return err
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("while reading report: %w", err)
	}
	return nil
}

// A Builder builds a taxonomy tree
// from a sequence of report records.
//
// The first added record is the root of the tree.
// Any other record is added as a child
// of the last record seen at the previous depth,
// even if that record is in a branch
// already closed by a shallower record,
// so records must be given in the order
// they have in the report.
type Builder struct {
	tree *taxon.Tree
	last map[int]int64
}

// NewBuilder returns a new empty builder.
func NewBuilder() *Builder {
	return &Builder{
		last: make(map[int]int64),
	}
}

// Add adds a record to the tree.
// Records of the unclassified bucket
// are ignored.
//
// If an error is found,
// the tree keeps the records added before the error.
func (b *Builder) Add(rec Record) error {
	if rec.Rank == Unclassified {
		return nil
	}

	if b.tree == nil {
		b.tree = taxon.New(rec.ID)
		b.set(rec.Depth, rec.ID)
		return nil
	}

	parent, ok := b.last[rec.Depth-1]
	if !ok {
		return fmt.Errorf("on line %d: %w: taxon %d at depth %d", rec.Line, ErrOrphanDepth, rec.ID, rec.Depth)
	}
	rank, name := rec.Rank, rec.Name
	if err := b.tree.AppendChild(parent, rec.ID, &rank, &name); err != nil {
		return fmt.Errorf("on line %d: %w", rec.Line, err)
	}
	b.set(rec.Depth, rec.ID)
	return nil
}

// Set sets the last seen taxon at a depth.
func (b *Builder) set(depth int, id int64) {
	b.last[depth] = id
}

// Tree returns the built tree.
func (b *Builder) Tree() (*taxon.Tree, error) {
	if b.tree == nil {
		return nil, ErrEmpty
	}
	return b.tree, nil
}
