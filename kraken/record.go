// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package kraken implements reading of the per-read output
// of Kraken 2 and related classifiers,
// and tables of read counts per taxon
// for a set of samples.
package kraken

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Output errors.
var (
	ErrRecordFormat   = errors.New("invalid classifier record")
	ErrTaxonomyFormat = errors.New("invalid taxonomy string")
)

// Classification status of a read.
const (
	Classified   = "C"
	Unclassified = "U"
)

// A Record is a line of the per-read output
// of a classifier.
//
// The line is a tab-delimited record with the following fields:
//
//   - classification status, either "C" or "U"
//   - read identifier
//   - taxon ID (or a taxonomy string, e.g. "Bacteria (taxid 3)")
//   - sequence length, in paired reads,
//     the length of each mate separated by "|"
//   - k-mer classification string
//
// Here is an example line:
//
//	C	M00967:43:000000000-A3JHG:1:1101:17549:1611	1102	251|250	3:179 1102:5 |:| 3:9 307:1
type Record struct {
	Status string
	Read   string
	Taxon  int64
	Name   string // taxon name, if given in the taxonomy string
	Length string
	Kmers  string

	line string
}

// number of fields of a record
const numFields = 5

// ParseRecord parses a line of the per-read output.
func ParseRecord(line string) (Record, error) {
	line = strings.TrimRight(line, "\r\n")
	fields := strings.Split(line, "\t")
	if len(fields) != numFields {
		return Record{}, fmt.Errorf("%w: got %d fields, want %d", ErrRecordFormat, len(fields), numFields)
	}

	st := fields[0]
	if st != Classified && st != Unclassified {
		return Record{}, fmt.Errorf("%w: status %q: must be %q or %q", ErrRecordFormat, st, Classified, Unclassified)
	}

	id, name, err := SplitTaxonomy(fields[2])
	if err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrRecordFormat, err)
	}

	return Record{
		Status: st,
		Read:   fields[1],
		Taxon:  id,
		Name:   name,
		Length: fields[3],
		Kmers:  fields[4],
		line:   line,
	}, nil
}

// IsClassified returns true if the read was classified.
func (r Record) IsClassified() bool {
	return r.Status == Classified
}

// Len returns the length of the sequence
// (the sum of the mates in paired reads).
// It returns 0 if the length field
// is not valid.
func (r Record) Len() int {
	var sum int
	for _, f := range strings.Split(r.Length, "|") {
		v, err := strconv.Atoi(f)
		if err != nil || v < 0 {
			return 0
		}
		sum += v
	}
	return sum
}

// String returns the record as a line
// of the per-read output.
func (r Record) String() string {
	if r.line != "" {
		return r.line
	}
	tax := strconv.FormatInt(r.Taxon, 10)
	if r.Name != "" {
		tax = fmt.Sprintf("%s (taxid %d)", r.Name, r.Taxon)
	}
	return strings.Join([]string{r.Status, r.Read, tax, r.Length, r.Kmers}, "\t")
}

const taxidPrefix = " (taxid "

// SplitTaxonomy splits a taxonomy string
// in the form "<name> (taxid <ID>)"
// into its taxon ID and name.
// A bare taxon ID is also accepted
// and returns an empty name.
func SplitTaxonomy(s string) (int64, string, error) {
	s = strings.TrimSpace(s)
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id, "", nil
	}

	if !strings.HasSuffix(s, ")") {
		return 0, "", fmt.Errorf("%w: %q: expecting ')' at the end", ErrTaxonomyFormat, s)
	}
	name, tax, ok := strings.Cut(strings.TrimSuffix(s, ")"), taxidPrefix)
	if !ok {
		return 0, "", fmt.Errorf("%w: %q: expecting %q", ErrTaxonomyFormat, s, strings.TrimSpace(taxidPrefix))
	}
	id, err := strconv.ParseInt(tax, 10, 64)
	if err != nil {
		return 0, "", fmt.Errorf("%w: %q: taxid %q is not an integer", ErrTaxonomyFormat, s, tax)
	}
	return id, name, nil
}
