// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package kraken

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
)

// A Table is a collection of read counts
// per taxon
// in a set of samples.
type Table struct {
	samples []string
	taxa    map[int64]map[string]int
}

// NewTable creates a new empty table.
func NewTable() *Table {
	return &Table{
		taxa: make(map[int64]map[string]int),
	}
}

// Add adds the counts of a sample to the table.
// If the sample is already in the table,
// the counts are added to the previous ones.
func (t *Table) Add(s *Sample) {
	t.addSample(s.name)
	for id, c := range s.counts {
		t.set(id, s.name, t.Count(id, s.name)+c)
	}
}

func (t *Table) addSample(name string) {
	if !slices.Contains(t.samples, name) {
		t.samples = append(t.samples, name)
	}
}

func (t *Table) set(taxon int64, sample string, c int) {
	tx, ok := t.taxa[taxon]
	if !ok {
		tx = make(map[string]int)
		t.taxa[taxon] = tx
	}
	tx[sample] = c
}

// Count returns the number of reads of a taxon
// in a given sample.
func (t *Table) Count(taxon int64, sample string) int {
	return t.taxa[taxon][sample]
}

// Samples returns the names of the samples,
// in the order in which they were added.
func (t *Table) Samples() []string {
	return slices.Clone(t.samples)
}

// Taxa returns the sorted IDs of the taxa in the table.
func (t *Table) Taxa() []int64 {
	ids := make([]int64, 0, len(t.taxa))
	for id := range t.taxa {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// TSV writes the table as a TSV file.
// The first column is the taxon ID,
// and there is a column for each sample.
// Taxa not found in a sample
// have a count of 0.
func (t *Table) TSV(w io.Writer) error {
	tab := csv.NewWriter(w)
	tab.Comma = '\t'
	tab.UseCRLF = true

	header := append([]string{"taxon"}, t.samples...)
	if err := tab.Write(header); err != nil {
		return fmt.Errorf("unable to write header: %v", err)
	}

	for _, id := range t.Taxa() {
		row := make([]string, 0, len(header))
		row = append(row, strconv.FormatInt(id, 10))
		for _, s := range t.samples {
			row = append(row, strconv.Itoa(t.Count(id, s)))
		}
		if err := tab.Write(row); err != nil {
			return fmt.Errorf("when writing data: %v", err)
		}
	}

	tab.Flush()
	if err := tab.Error(); err != nil {
		return fmt.Errorf("when writing data: %v", err)
	}
	return nil
}

// ReadTable reads a table from a TSV file.
//
// The TSV file must contain a "taxon" field
// with the taxon ID;
// any other field is a sample.
// Taxa are kept
// even if all their counts are 0.
//
// Here is an example file:
//
//	taxon	gut-01	gut-02
//	0	12	4
//	562	1203	877
//	620	0	15
func ReadTable(r io.Reader) (*Table, error) {
	tab := csv.NewReader(r)
	tab.Comma = '\t'
	tab.Comment = '#'

	head, err := tab.Read()
	if err != nil {
		return nil, fmt.Errorf("while reading header: %v", err)
	}
	taxCol := -1
	for i, h := range head {
		if strings.ToLower(h) == "taxon" {
			taxCol = i
			break
		}
	}
	if taxCol < 0 {
		return nil, fmt.Errorf("expecting field %q", "taxon")
	}

	t := NewTable()
	for i, h := range head {
		if i == taxCol {
			continue
		}
		t.addSample(h)
	}

	for {
		row, err := tab.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tab.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		id, err := strconv.ParseInt(row[taxCol], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("on row %d: field %q: %v", ln, "taxon", err)
		}
		if _, ok := t.taxa[id]; !ok {
			t.taxa[id] = make(map[string]int)
		}
		for i, v := range row {
			if i == taxCol {
				continue
			}
			c, err := strconv.Atoi(v)
			if err != nil {
				return nil, fmt.Errorf("on row %d: field %q: %v", ln, head[i], err)
			}
			if c == 0 {
				continue
			}
			t.set(id, head[i], c)
		}
	}
	return t, nil
}
