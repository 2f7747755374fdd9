// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package desc implements a command to print
// the descendants of a taxon.
package desc

import (
	"fmt"

	"github.com/js-arias/command"
	"github.com/js-arias/gbifer/taxonomy"
	"github.com/js-arias/krakentax/internal/applog"
	"github.com/js-arias/krakentax/internal/files"
	"github.com/js-arias/krakentax/internal/taxarg"
)

var Command = &command.Command{
	Usage: `desc [-r|--report <file>] [--count] [--species]
	[--progress] [--verbose] <taxon>`,
	Short: "print the descendants of a taxon",
	Long: `
Command desc reads a taxonomy report and prints all the descendants of a
taxon.

The argument of the command is the taxon, either as a taxon ID or as a taxon
name.

By default the report is read from the standard input. Use the flag --report,
or -r, to define a report file. Use the flag --progress to show the progress
of the reading.

The output is a tab-delimited table with the ID, rank code, and name of each
descendant, in pre-order. If the flag --species is set, only the descendants
with the species rank will be printed. If the flag --count is set, only the
number of descendants will be printed.

Use the flag --verbose to report the steps of the command in the standard
error.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var reportFile string
var countFlag bool
var speciesFlag bool
var progress bool
var verbose bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&reportFile, "report", "", "")
	c.Flags().StringVar(&reportFile, "r", "", "")
	c.Flags().BoolVar(&countFlag, "count", false, "")
	c.Flags().BoolVar(&speciesFlag, "species", false, "")
	c.Flags().BoolVar(&progress, "progress", false, "")
	c.Flags().BoolVar(&verbose, "verbose", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting taxon")
	}

	log := applog.New(verbose)
	defer log.Sync()

	t, err := files.ReadReport(reportFile, c.Stdin(), files.Progress(c.Stderr(), progress))
	if err != nil {
		return err
	}
	log.Infow("taxonomy read", "taxa", t.Len(), "root", t.Root())

	id, err := taxarg.Resolve(t, args[0])
	if err != nil {
		return err
	}
	desc, err := t.Descendants(id)
	if err != nil {
		return err
	}

	if speciesFlag {
		sp := desc[:0]
		for _, d := range desc {
			n, _ := t.Node(d)
			if n.Linnean() == taxonomy.Species {
				sp = append(sp, d)
			}
		}
		desc = sp
	}

	if countFlag {
		fmt.Fprintf(c.Stdout(), "%d\n", len(desc))
		return nil
	}

	fmt.Fprintf(c.Stdout(), "id\trank\tname\n")
	for _, d := range desc {
		fmt.Fprintf(c.Stdout(), "%s\n", taxarg.Row(t, d))
	}
	return nil
}
