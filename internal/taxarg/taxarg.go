// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package taxarg implements the interpretation
// of taxa given as command arguments.
package taxarg

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/js-arias/krakentax/taxon"
)

// Resolve returns the ID of a taxon
// given either as a taxon ID
// or as a taxon name.
func Resolve(t *taxon.Tree, arg string) (int64, error) {
	arg = strings.TrimSpace(arg)
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		if _, ok := t.Node(id); !ok {
			return 0, fmt.Errorf("%w: %d", taxon.ErrNodeNotFound, id)
		}
		return id, nil
	}
	name := strings.Join(strings.Fields(arg), " ")
	id, ok := t.FindByName(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", taxon.ErrNodeNotFound, name)
	}
	return id, nil
}

// Row returns the ID,
// rank code,
// and name of a taxon,
// formatted as a tab-delimited row.
// Absent values are printed as "-".
func Row(t *taxon.Tree, id int64) string {
	rank, name := "-", "-"
	if n, ok := t.Node(id); ok {
		if r, ok := n.Rank(); ok && r != "" {
			rank = r
		}
		if nm, ok := n.Name(); ok && nm != "" {
			name = nm
		}
	}
	return fmt.Sprintf("%d\t%s\t%s", id, rank, name)
}
