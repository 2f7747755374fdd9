// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package conf implements a command to calculate
// the confidence of classified reads.
package conf

import (
	"errors"
	"fmt"
	"slices"

	"github.com/js-arias/command"
	"github.com/js-arias/krakentax/internal/applog"
	"github.com/js-arias/krakentax/internal/files"
	"github.com/js-arias/krakentax/kmers"
	"github.com/js-arias/krakentax/kraken"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
)

var Command = &command.Command{
	Usage: `conf [--min <value>] [--unclassified] [--summary]
	[--plot <file>] [--progress] [--verbose] [<output-file>...]`,
	Short: "calculate the confidence of classified reads",
	Long: `
Command conf reads the per-read output of a classifier and prints the
confidence of each read, that is, the proportion of the k-mer tokens of the
read that are found in the database.

The arguments of the command are the files with the per-read output. If no
file is given, the output is read from the standard input. Files ending in
".gz" or ".xz" are decompressed. Use the flag --progress to show the progress
of the reading.

By default, only classified reads are used. Use the flag --unclassified to
include unclassified reads.

The output is a tab-delimited table with the read identifier, the assigned
taxon, the length of the read, and its confidence. Use the flag --min to
print only the reads with a confidence equal or greater than the indicated
value.

If the flag --summary is set, instead of the reads, a summary of the
confidence of all the reads will be printed: the number of reads, the mean,
the standard deviation, and the 5%, 50% and 95% quantiles.

If the flag --plot is defined, a histogram of the confidence of the reads
will be written in the indicated file (for example "conf.png").

Use the flag --verbose to report the steps of the command in the standard
error.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var minConf float64
var unclassified bool
var summary bool
var plotFile string
var progress bool
var verbose bool

func setFlags(c *command.Command) {
	c.Flags().Float64Var(&minConf, "min", 0, "")
	c.Flags().BoolVar(&unclassified, "unclassified", false, "")
	c.Flags().BoolVar(&summary, "summary", false, "")
	c.Flags().StringVar(&plotFile, "plot", "", "")
	c.Flags().BoolVar(&progress, "progress", false, "")
	c.Flags().BoolVar(&verbose, "verbose", false, "")
}

func run(c *command.Command, args []string) error {
	if minConf < 0 || minConf > 1 {
		return c.UsageError("flag --min: value must be between 0 and 1")
	}

	log := applog.New(verbose)
	defer log.Sync()

	if len(args) == 0 {
		args = append(args, "-")
	}

	if !summary {
		fmt.Fprintf(c.Stdout(), "read\ttaxon\tlength\tconfidence\n")
	}
	var vals []float64
	for _, a := range args {
		v, err := readConfidence(c, a, log)
		if err != nil {
			return err
		}
		vals = append(vals, v...)
	}

	if len(vals) == 0 {
		log.Warnw("no reads with defined confidence")
		return nil
	}
	slices.Sort(vals)

	if summary {
		mean, sd := stat.MeanStdDev(vals, nil)
		fmt.Fprintf(c.Stdout(), "reads\tmean\tsd\tq05\tmedian\tq95\n")
		fmt.Fprintf(c.Stdout(), "%d\t%.6f\t%.6f\t%.6f\t%.6f\t%.6f\n", len(vals), mean, sd,
			stat.Quantile(0.05, stat.Empirical, vals, nil),
			stat.Quantile(0.5, stat.Empirical, vals, nil),
			stat.Quantile(0.95, stat.Empirical, vals, nil),
		)
	}

	if plotFile != "" {
		if err := histogram(vals, plotFile); err != nil {
			return fmt.Errorf("while writing plot %q: %v", plotFile, err)
		}
		log.Infow("histogram written", "file", plotFile)
	}
	return nil
}

func readConfidence(c *command.Command, name string, log *zap.SugaredLogger) ([]float64, error) {
	in, err := files.Open(name, c.Stdin(), files.Progress(c.Stderr(), progress))
	if err != nil {
		return nil, err
	}
	defer in.Close()

	var vals []float64
	var reads, skipped int
	err = kraken.Scan(in, func(rec kraken.Record) error {
		reads++
		if !rec.IsClassified() && !unclassified {
			return nil
		}
		v, err := kmers.Confidence(rec.Kmers)
		if errors.Is(err, kmers.ErrDivByZero) {
			skipped++
			return nil
		}
		if err != nil {
			return fmt.Errorf("read %q: %w", rec.Read, err)
		}
		vals = append(vals, v)
		if summary || v < minConf {
			return nil
		}
		fmt.Fprintf(c.Stdout(), "%s\t%d\t%d\t%.6f\n", rec.Read, rec.Taxon, rec.Len(), v)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", in.Name(), err)
	}
	if skipped > 0 {
		log.Warnw("reads without k-mers", "file", in.Name(), "reads", skipped)
	}
	log.Infow("output read", "file", in.Name(), "reads", reads, "used", len(vals))
	return vals, nil
}
