// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package lca implements a command to print
// the least common ancestor of a set of taxa.
package lca

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/krakentax/internal/applog"
	"github.com/js-arias/krakentax/internal/files"
	"github.com/js-arias/krakentax/internal/taxarg"
)

var Command = &command.Command{
	Usage: `lca [-r|--report <file>] [--progress] [--verbose]
	<taxon>...`,
	Short: "print the least common ancestor of a set of taxa",
	Long: `
Command lca reads a taxonomy report and prints the least common ancestor of a
set of taxa, that is, the deepest taxon that is shared by the lineages of all
the taxa.

The arguments of the command are the taxa, either as taxon IDs or as taxon
names.

By default the report is read from the standard input. Use the flag --report,
or -r, to define a report file. Use the flag --progress to show the progress
of the reading.

The output is the ID, rank code, and name of the ancestor.

Use the flag --verbose to report the steps of the command in the standard
error.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var reportFile string
var progress bool
var verbose bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&reportFile, "report", "", "")
	c.Flags().StringVar(&reportFile, "r", "", "")
	c.Flags().BoolVar(&progress, "progress", false, "")
	c.Flags().BoolVar(&verbose, "verbose", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting one or more taxa")
	}

	log := applog.New(verbose)
	defer log.Sync()

	t, err := files.ReadReport(reportFile, c.Stdin(), files.Progress(c.Stderr(), progress))
	if err != nil {
		return err
	}
	log.Infow("taxonomy read", "taxa", t.Len(), "root", t.Root())

	ids := make([]int64, 0, len(args))
	for _, a := range args {
		id, err := taxarg.Resolve(t, a)
		if err != nil {
			return err
		}
		ids = append(ids, id)
	}

	anc, _, err := t.LCA(ids)
	if err != nil {
		return err
	}
	log.Debugw("least common ancestor", "taxa", ids, "ancestor", anc)

	fmt.Fprintf(c.Stdout(), "%s\n", taxarg.Row(t, anc))
	return nil
}
