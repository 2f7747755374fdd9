// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package kmerscmd implements a command to count
// the k-mers of a classification string.
package kmerscmd

import (
	"fmt"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/krakentax/internal/applog"
	"github.com/js-arias/krakentax/internal/files"
	"github.com/js-arias/krakentax/internal/taxarg"
	"github.com/js-arias/krakentax/kmers"
	"github.com/js-arias/krakentax/taxon"
)

var Command = &command.Command{
	Usage: `kmers [-r|--report <file>] [--unknown] [--lca]
	[--progress] [--verbose] <classification-string>`,
	Short: "count the k-mers of a classification string",
	Long: `
Command kmers reads the classification string of a read, that is, the last
field of the per-read output of a classifier (for example
"562:13 561:4 A:31 0:1 562:3"), and prints the number of k-mers assigned to
each taxon. K-mers of both mates of a read pair are added together. As the
string contains spaces, it can be given as a single quoted argument, or as
several arguments.

The output is a tab-delimited table with the taxon ID and the number of
k-mers assigned to the taxon. Ambiguous k-mers ("A") are ignored. By default
k-mers not found in the database are counted with the taxon ID 0; use the
flag --unknown to ignore them.

If a taxonomy report is given with the flag --report, or -r, the taxa will be
printed with their rank code and name, as well as the score of the taxon,
the fraction of the non-ambiguous k-mers of the read that are assigned to the
clade of the taxon. Use the flag --progress to show the progress of the
reading of the report.

If the flag --lca is set, only the least common ancestor of the taxa of the
classification string will be printed. This flag requires a report.

Use the flag --verbose to report the steps of the command in the standard
error.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var reportFile string
var unknown bool
var lcaFlag bool
var progress bool
var verbose bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&reportFile, "report", "", "")
	c.Flags().StringVar(&reportFile, "r", "", "")
	c.Flags().BoolVar(&unknown, "unknown", false, "")
	c.Flags().BoolVar(&lcaFlag, "lca", false, "")
	c.Flags().BoolVar(&progress, "progress", false, "")
	c.Flags().BoolVar(&verbose, "verbose", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting classification string")
	}
	if lcaFlag && reportFile == "" {
		return c.UsageError("flag --lca requires flag --report")
	}
	s := strings.Join(args, " ")

	log := applog.New(verbose)
	defer log.Sync()

	counts, err := kmers.Aggregate(s, unknown)
	if err != nil {
		return err
	}
	ids := kmers.Taxa(counts)
	if _, ok := counts[0]; ok {
		ids = append([]int64{0}, ids...)
	}
	log.Debugw("classification string", "taxa", len(ids))

	if reportFile == "" {
		fmt.Fprintf(c.Stdout(), "taxon\tkmers\n")
		for _, id := range ids {
			fmt.Fprintf(c.Stdout(), "%d\t%d\n", id, counts[id])
		}
		return nil
	}

	t, err := files.ReadReport(reportFile, c.Stdin(), files.Progress(c.Stderr(), progress))
	if err != nil {
		return err
	}
	log.Infow("taxonomy read", "taxa", t.Len(), "root", t.Root())

	if lcaFlag {
		return printLCA(c, t, kmers.Taxa(counts))
	}

	fmt.Fprintf(c.Stdout(), "taxon\trank\tname\tkmers\tscore\n")
	for _, id := range ids {
		if _, ok := t.Node(id); !ok {
			fmt.Fprintf(c.Stdout(), "%d\t-\t-\t%d\t-\n", id, counts[id])
			continue
		}
		sc, err := kmers.Score(s, t, id)
		if err != nil {
			return err
		}
		fmt.Fprintf(c.Stdout(), "%s\t%d\t%.6f\n", taxarg.Row(t, id), counts[id], sc)
	}
	return nil
}

func printLCA(c *command.Command, t *taxon.Tree, ids []int64) error {
	in := ids[:0]
	for _, id := range ids {
		if _, ok := t.Node(id); ok {
			in = append(in, id)
		}
	}

	anc, ok, err := t.LCA(in)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("classification string without taxa in the taxonomy")
	}
	fmt.Fprintf(c.Stdout(), "%s\n", taxarg.Row(t, anc))
	return nil
}
