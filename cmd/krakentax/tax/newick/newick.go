// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package newick implements a command to export
// a taxonomy as a tree.
package newick

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/krakentax/internal/applog"
	"github.com/js-arias/krakentax/internal/files"
	"github.com/js-arias/timetree"
)

var Command = &command.Command{
	Usage: `newick [-r|--report <file>] [--condensed] [--tsv <tree-name>]
	[-o|--output <file>] [--progress] [--verbose]`,
	Short: "export a taxonomy as a tree",
	Long: `
Command newick reads a taxonomy report and writes the taxonomy as a tree in
Newick format. Each node of the tree is labeled with its taxon ID.

By default the report is read from the standard input. Use the flag --report,
or -r, to define a report file. Use the flag --progress to show the progress
of the reading.

If the flag --condensed is set, chains of taxa with a single child are
collapsed into its deepest taxon, so every internal node of the output tree
has at least two descendants.

If the flag --tsv is defined, the tree will be written as a tree collection
in TSV format (the format used by PhyGeo and other tools based on the timetree
package), using the value of the flag as the name of the tree. As a tree
collection requires a fully resolved tree, the tree is always condensed, and
all nodes have an age of 0.

By default the output is written in the standard output. Use the flag
--output, or -o, to define an output file.

Use the flag --verbose to report the steps of the command in the standard
error.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var reportFile string
var output string
var treeName string
var condensed bool
var progress bool
var verbose bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&reportFile, "report", "", "")
	c.Flags().StringVar(&reportFile, "r", "", "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().StringVar(&treeName, "tsv", "", "")
	c.Flags().BoolVar(&condensed, "condensed", false, "")
	c.Flags().BoolVar(&progress, "progress", false, "")
	c.Flags().BoolVar(&verbose, "verbose", false, "")
}

func run(c *command.Command, args []string) (err error) {
	log := applog.New(verbose)
	defer log.Sync()

	t, err := files.ReadReport(reportFile, c.Stdin(), files.Progress(c.Stderr(), progress))
	if err != nil {
		return err
	}
	log.Infow("taxonomy read", "taxa", t.Len(), "root", t.Root())

	var w io.Writer = c.Stdout()
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer func() {
			e := f.Close()
			if e != nil && err == nil {
				err = e
			}
		}()
		w = f
	}

	if treeName != "" {
		tc, err := collection(t.Condensed())
		if err != nil {
			return err
		}
		if err := tc.TSV(w); err != nil {
			return fmt.Errorf("while writing tree %q: %v", treeName, err)
		}
		return nil
	}

	nw := t.Newick()
	if condensed {
		nw = t.Condensed()
	}
	if _, err := fmt.Fprintf(w, "%s\n", nw); err != nil {
		return err
	}
	return nil
}

func collection(nw string) (*timetree.Collection, error) {
	tc, err := timetree.Newick(strings.NewReader(nw), treeName, 0)
	if err != nil {
		return nil, fmt.Errorf("while building tree %q: %v", treeName, err)
	}
	return tc, nil
}
