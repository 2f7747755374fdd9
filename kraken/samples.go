// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package kraken

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// A SamplePath is the path of the classifier output
// of a sample.
type SamplePath struct {
	Sample string
	Path   string
}

var sampleHeader = []string{
	"sample",
	"path",
}

// ReadSamples reads a sample sheet from a TSV file.
//
// The TSV must contain the following fields:
//
//   - sample, the name of the sample
//   - path, the path of the classifier output of the sample
//
// Here is an example file:
//
//	# krakentax samples
//	sample	path
//	gut-01	gut-01.kraken.gz
//	gut-02	gut-02.kraken.gz
//
// Relative paths are returned as they are found in the file.
func ReadSamples(r io.Reader) ([]SamplePath, error) {
	tsv := csv.NewReader(r)
	tsv.Comma = '\t'
	tsv.Comment = '#'

	head, err := tsv.Read()
	if err != nil {
		return nil, fmt.Errorf("header: %v", err)
	}
	fields := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.ToLower(h)
		fields[h] = i
	}
	for _, h := range sampleHeader {
		if _, ok := fields[h]; !ok {
			return nil, fmt.Errorf("expecting field %q", h)
		}
	}

	var ls []SamplePath
	seen := make(map[string]bool)
	for {
		row, err := tsv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		ln, _ := tsv.FieldPos(0)
		if err != nil {
			return nil, fmt.Errorf("on row %d: %v", ln, err)
		}

		f := "sample"
		s := strings.TrimSpace(row[fields[f]])
		if s == "" {
			return nil, fmt.Errorf("on row %d: empty field %q", ln, f)
		}
		if seen[s] {
			return nil, fmt.Errorf("on row %d: repeated sample %q", ln, s)
		}
		seen[s] = true

		f = "path"
		path := strings.TrimSpace(row[fields[f]])
		if path == "" {
			return nil, fmt.Errorf("on row %d: empty field %q", ln, f)
		}
		ls = append(ls, SamplePath{Sample: s, Path: path})
	}
	return ls, nil
}

// SampleName returns the default name of a sample
// from the path of its classifier output:
// the base name of the file without its extensions
// (for example "gut-01.kraken.gz" is "gut-01").
func SampleName(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, ".gz")
	base = strings.TrimSuffix(base, ".xz")
	for _, ext := range []string{".kraken2", ".kraken", ".tsv", ".txt", ".out"} {
		base = strings.TrimSuffix(base, ext)
	}
	if base == "" || base == "." {
		return "sample"
	}
	return base
}
