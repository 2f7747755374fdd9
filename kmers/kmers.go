// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package kmers implements the quantification
// of the k-mer classification strings
// produced by k-mer based classifiers.
//
// A classification string is a space separated list
// of key:count pairs,
// in which key is the taxon ID assigned to a run of k-mers
// and count is the number of k-mers in the run.
// The key "A" indicates k-mers with an ambiguous nucleotide,
// and the key "0" indicates k-mers not found in the database.
// In paired reads,
// the k-mers of each mate are separated by "|:|".
// For example:
//
//	3:83 52:11 0:11 3:81 |:| 3:3 0:3 52:6 3:81
package kmers

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/js-arias/krakentax/taxon"
)

// Quantification errors.
var (
	ErrTokenFormat = errors.New("invalid k-mer token")
	ErrDivByZero   = errors.New("no k-mers to quantify")
)

// Kind is the kind of k-mer run
// defined by a token.
type Kind int

// Valid token kinds.
const (
	// K-mers assigned to a taxon.
	Mapped Kind = iota

	// K-mers with an ambiguous nucleotide.
	Ambiguous

	// K-mers not found in the database.
	NotInDB
)

// Special keys.
const (
	ambiguousKey = "A"
	separator    = "|"
	pairSep      = "|:|"
)

// A Token is a run of k-mers
// in a classification string.
type Token struct {
	Kind  Kind
	Taxon int64 // taxon ID, 0 if the kind is not Mapped
	Count int64
}

// Parse returns the tokens of a classification string.
// Pair separators are not tokens.
func Parse(s string) ([]Token, error) {
	fields := strings.Fields(s)
	tokens := make([]Token, 0, len(fields))
	for _, f := range fields {
		if f == separator || f == pairSep {
			continue
		}
		tk, err := parseToken(f)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tk)
	}
	return tokens, nil
}

func parseToken(s string) (Token, error) {
	key, count, ok := strings.Cut(s, ":")
	if !ok {
		return Token{}, fmt.Errorf("%w: %q: expecting key:count", ErrTokenFormat, s)
	}

	c, err := strconv.ParseInt(count, 10, 64)
	if err != nil || c < 0 {
		return Token{}, fmt.Errorf("%w: %q: invalid count %q", ErrTokenFormat, s, count)
	}

	if key == ambiguousKey {
		return Token{Kind: Ambiguous, Count: c}, nil
	}
	id, err := strconv.ParseInt(key, 10, 64)
	if err != nil || id < 0 {
		return Token{}, fmt.Errorf("%w: %q: invalid key %q", ErrTokenFormat, s, key)
	}
	if id == 0 {
		return Token{Kind: NotInDB, Count: c}, nil
	}
	return Token{Kind: Mapped, Taxon: id, Count: c}, nil
}

// Aggregate returns the number of k-mers
// assigned to each taxon
// in a classification string.
// K-mers of both mates of a pair are added together.
//
// Ambiguous k-mers are ignored.
// K-mers not found in the database
// are counted with the taxon ID 0,
// unless excludeUnknown is true.
func Aggregate(s string, excludeUnknown bool) (map[int64]int64, error) {
	tokens, err := Parse(s)
	if err != nil {
		return nil, err
	}

	counts := make(map[int64]int64)
	for _, tk := range tokens {
		switch tk.Kind {
		case Ambiguous:
			continue
		case NotInDB:
			if excludeUnknown {
				continue
			}
		}
		counts[tk.Taxon] += tk.Count
	}
	return counts, nil
}

// Confidence returns the proportion of tokens
// of a classification string
// that are found in the database.
//
// The proportion is calculated over tokens
// (not over k-mers).
// Only tokens with the key "0" are undefined,
// so tokens of ambiguous k-mers are counted as defined.
func Confidence(s string) (float64, error) {
	tokens, err := Parse(s)
	if err != nil {
		return 0, err
	}
	if len(tokens) == 0 {
		return 0, ErrDivByZero
	}

	var defined int
	for _, tk := range tokens {
		if tk.Kind == NotInDB {
			continue
		}
		defined++
	}
	return float64(defined) / float64(len(tokens)), nil
}

// Score returns the score of a taxon
// used as the label of a classification string.
//
// The score is the fraction C/Q,
// in which C is the number of k-mers
// assigned to taxa in the clade rooted at the label,
// and Q is the number of k-mers
// without ambiguous nucleotides.
// K-mers assigned to taxa not present in the tree
// are only counted in Q.
func Score(s string, t *taxon.Tree, label int64) (float64, error) {
	if _, ok := t.Node(label); !ok {
		return 0, fmt.Errorf("%w: %d", taxon.ErrNodeNotFound, label)
	}
	tokens, err := Parse(s)
	if err != nil {
		return 0, err
	}

	inClade := make(map[int64]bool)
	var c, q int64
	for _, tk := range tokens {
		if tk.Kind == Ambiguous {
			continue
		}
		q += tk.Count
		if tk.Kind != Mapped {
			continue
		}

		in, ok := inClade[tk.Taxon]
		if !ok {
			lin, err := t.Lineage(tk.Taxon)
			if err == nil {
				in = slices.Contains(lin, label)
			}
			inClade[tk.Taxon] = in
		}
		if in {
			c += tk.Count
		}
	}
	if q == 0 {
		return 0, ErrDivByZero
	}
	return float64(c) / float64(q), nil
}

// Taxa returns the sorted IDs of the taxa
// with assigned k-mers.
// The ID 0 (k-mers not in the database)
// is ignored.
func Taxa(counts map[int64]int64) []int64 {
	ids := make([]int64, 0, len(counts))
	for id := range counts {
		if id == 0 {
			continue
		}
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
