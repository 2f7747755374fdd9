// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package lineage implements a command to print
// the lineage of a taxon.
package lineage

import (
	"fmt"
	"io"
	"strings"

	"github.com/js-arias/command"
	"github.com/js-arias/gbifer/taxonomy"
	"github.com/js-arias/krakentax/internal/applog"
	"github.com/js-arias/krakentax/internal/files"
	"github.com/js-arias/krakentax/internal/taxarg"
	"github.com/js-arias/krakentax/kmers"
	"github.com/js-arias/krakentax/taxon"
)

var Command = &command.Command{
	Usage: `lineage [-r|--report <file>] [--rank <rank>]
	[--progress] [--verbose] <taxon>...`,
	Short: "print the lineage of a taxon",
	Long: `
Command lineage reads a taxonomy report and prints the lineage of one or more
taxa, from the root of the taxonomy to the taxon.

The arguments of the command are the taxa, either as taxon IDs or as taxon
names. An argument can also be a classification string of a read (for example
"562:13 561:4 A:31 0:1"), in which case the lineage of each taxon with
assigned k-mers will be printed. Taxa of the classification string that are
not in the taxonomy are reported and ignored.

By default the report is read from the standard input. Use the flag --report,
or -r, to define a report file. Use the flag --progress to show the progress
of the reading.

The output is a tab-delimited table with the queried taxon, and the ID, rank
code, and name of each taxon in the lineage.

If the flag --rank is defined, only the taxon of the lineage with the given
linnean rank will be printed. Valid ranks are: kingdom, phylum, class, order,
family, genus, and species.

Use the flag --verbose to report the steps of the command in the standard
error.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var reportFile string
var rankFlag string
var progress bool
var verbose bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&reportFile, "report", "", "")
	c.Flags().StringVar(&reportFile, "r", "", "")
	c.Flags().StringVar(&rankFlag, "rank", "", "")
	c.Flags().BoolVar(&progress, "progress", false, "")
	c.Flags().BoolVar(&verbose, "verbose", false, "")
}

func run(c *command.Command, args []string) error {
	if len(args) < 1 {
		return c.UsageError("expecting one or more taxa")
	}

	var rank taxonomy.Rank
	if rankFlag != "" {
		r, ok := getRank(rankFlag)
		if !ok {
			return c.UsageError(fmt.Sprintf("flag --rank: invalid rank %q", rankFlag))
		}
		rank = r
	}

	log := applog.New(verbose)
	defer log.Sync()

	t, err := files.ReadReport(reportFile, c.Stdin(), files.Progress(c.Stderr(), progress))
	if err != nil {
		return err
	}
	log.Infow("taxonomy read", "taxa", t.Len(), "root", t.Root())

	fmt.Fprintf(c.Stdout(), "taxon\tid\trank\tname\n")
	for _, a := range args {
		ids, err := queryTaxa(t, a)
		if err != nil {
			return err
		}
		for _, id := range ids {
			if _, ok := t.Node(id); !ok {
				log.Warnw("taxon not in taxonomy", "taxon", id)
				continue
			}
			if err := printLineage(c.Stdout(), t, id, rank); err != nil {
				return err
			}
		}
	}
	return nil
}

func queryTaxa(t *taxon.Tree, arg string) ([]int64, error) {
	if !strings.Contains(arg, ":") {
		id, err := taxarg.Resolve(t, arg)
		if err != nil {
			return nil, err
		}
		return []int64{id}, nil
	}

	counts, err := kmers.Aggregate(arg, true)
	if err != nil {
		return nil, err
	}
	return kmers.Taxa(counts), nil
}

func printLineage(w io.Writer, t *taxon.Tree, id int64, rank taxonomy.Rank) error {
	if rank != taxonomy.Unranked {
		anc, ok, err := t.Ancestor(id, rank)
		if err != nil {
			return err
		}
		if ok {
			fmt.Fprintf(w, "%d\t%s\n", id, taxarg.Row(t, anc))
		}
		return nil
	}

	lin, err := t.Lineage(id)
	if err != nil {
		return err
	}
	for _, l := range lin {
		fmt.Fprintf(w, "%d\t%s\n", id, taxarg.Row(t, l))
	}
	return nil
}

func getRank(s string) (taxonomy.Rank, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for r := taxonomy.Kingdom; r <= taxonomy.Species; r++ {
		if r.String() == s {
			return r, true
		}
	}
	return taxonomy.Unranked, false
}
