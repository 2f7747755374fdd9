// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package kraken

import (
	"bufio"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/js-arias/krakentax/kmers"
)

// Scan reads the records of a per-read output
// and calls fn with each record.
// Empty lines are ignored.
func Scan(r io.Reader, fn func(Record) error) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for ln := 1; sc.Scan(); ln++ {
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		rec, err := ParseRecord(line)
		if err != nil {
			return fmt.Errorf("on line %d: %w", ln, err)
		}
		if err := fn(rec); err != nil {
			return fmt.Errorf("on line %d: %w", ln, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("while reading classifier output: %w", err)
	}
	return nil
}

// A Filter defines the reads
// that are counted in a sample.
type Filter struct {
	// If true,
	// unclassified reads are counted
	// (with the taxon ID 0).
	Unclassified bool

	// Minimum confidence of a read
	// (as returned by kmers.Confidence).
	// Reads below this value are ignored.
	MinConfidence float64
}

// Keep returns true if a record passes the filter.
func (f Filter) Keep(rec Record) (bool, error) {
	if !rec.IsClassified() && !f.Unclassified {
		return false, nil
	}
	if f.MinConfidence <= 0 {
		return true, nil
	}
	c, err := kmers.Confidence(rec.Kmers)
	if err != nil {
		return false, fmt.Errorf("read %q: %w", rec.Read, err)
	}
	return c >= f.MinConfidence, nil
}

// A Sample is the number of reads
// assigned to each taxon
// in a classifier output.
type Sample struct {
	name   string
	reads  int
	counts map[int64]int
}

// NewSample creates a new empty sample.
func NewSample(name string) *Sample {
	return &Sample{
		name:   name,
		counts: make(map[int64]int),
	}
}

// ReadOutput reads a per-read classifier output
// and counts the reads assigned to each taxon
// that pass the filter.
func ReadOutput(r io.Reader, name string, f Filter) (*Sample, error) {
	s := NewSample(name)
	err := Scan(r, func(rec Record) error {
		s.reads++
		ok, err := f.Keep(rec)
		if err != nil {
			return err
		}
		if ok {
			s.counts[rec.Taxon]++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Add adds reads to a taxon.
func (s *Sample) Add(taxon int64, reads int) {
	s.reads += reads
	s.counts[taxon] += reads
}

// Name returns the name of the sample.
func (s *Sample) Name() string {
	return s.name
}

// Count returns the number of reads
// assigned to a taxon.
func (s *Sample) Count(taxon int64) int {
	return s.counts[taxon]
}

// Reads returns the number of reads
// read from the sample
// (including the filtered reads).
func (s *Sample) Reads() int {
	return s.reads
}

// Kept returns the number of counted reads.
func (s *Sample) Kept() int {
	var sum int
	for _, c := range s.counts {
		sum += c
	}
	return sum
}

// Taxa returns the sorted IDs of the taxa
// with counted reads.
func (s *Sample) Taxa() []int64 {
	ids := make([]int64, 0, len(s.counts))
	for id := range s.counts {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
