// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package merge implements a command to merge
// the per-read output of several samples
// into a table of read counts.
package merge

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/js-arias/command"
	"github.com/js-arias/krakentax/internal/applog"
	"github.com/js-arias/krakentax/internal/files"
	"github.com/js-arias/krakentax/kraken"
	"go.uber.org/zap"
)

var Command = &command.Command{
	Usage: `merge [-s|--samples <file>] [--add <table-file>]
	[-c|--confidence <value>] [--unclassified]
	[-o|--output <file>] [--progress] [--verbose] [<output-file>...]`,
	Short: "merge classified reads into a count table",
	Long: `
Command merge reads the per-read output of a classifier for a set of samples,
and writes a table with the number of reads assigned to each taxon in each
sample.

The arguments of the command are the files with the per-read output of each
sample. The name of the sample is the name of the file without its
extensions (for example, the sample of the file "gut-01.kraken.gz" is
"gut-01"). If two files have the same sample name, their counts will be added
together. Files ending in ".gz" or ".xz" are decompressed. Use the flag
--progress to show the progress of the reading.

Use the flag --samples, or -s, to read the samples and their files from a
sample sheet. Relative paths in the sample sheet are relative to the folder
of the sample sheet. See 'krakentax help sample-files' for the format of the
sample sheet.

Use the flag --add to add the new samples to a previous table.

By default only classified reads are counted. Use the flag --unclassified to
count unclassified reads (as taxon 0). Use the flag --confidence, or -c, to
set the minimum confidence of a read (the proportion of its k-mer tokens
found in the database) to be counted.

The output is a tab-delimited table with a "taxon" column with the taxon ID,
and a column for each sample. By default the table is written in the
standard output. Use the flag --output, or -o, to define an output file.

Use the flag --verbose to report the steps of the command in the standard
error.
	`,
	SetFlags: setFlags,
	Run:      run,
}

var samplesFile string
var addFile string
var output string
var minConf float64
var unclassified bool
var progress bool
var verbose bool

func setFlags(c *command.Command) {
	c.Flags().StringVar(&samplesFile, "samples", "", "")
	c.Flags().StringVar(&samplesFile, "s", "", "")
	c.Flags().StringVar(&addFile, "add", "", "")
	c.Flags().StringVar(&output, "output", "", "")
	c.Flags().StringVar(&output, "o", "", "")
	c.Flags().Float64Var(&minConf, "confidence", 0, "")
	c.Flags().Float64Var(&minConf, "c", 0, "")
	c.Flags().BoolVar(&unclassified, "unclassified", false, "")
	c.Flags().BoolVar(&progress, "progress", false, "")
	c.Flags().BoolVar(&verbose, "verbose", false, "")
}

func run(c *command.Command, args []string) (err error) {
	if minConf < 0 || minConf > 1 {
		return c.UsageError("flag --confidence: value must be between 0 and 1")
	}

	var samples []kraken.SamplePath
	if samplesFile != "" {
		samples, err = readSamples(samplesFile)
		if err != nil {
			return err
		}
	}
	for _, a := range args {
		samples = append(samples, kraken.SamplePath{
			Sample: kraken.SampleName(a),
			Path:   a,
		})
	}
	if len(samples) == 0 {
		return c.UsageError("expecting classifier output files")
	}

	log := applog.New(verbose)
	defer log.Sync()

	tb := kraken.NewTable()
	if addFile != "" {
		tb, err = readTable(addFile)
		if err != nil {
			return err
		}
		log.Infow("table read", "file", addFile, "samples", len(tb.Samples()), "taxa", len(tb.Taxa()))
	}

	f := kraken.Filter{
		Unclassified:  unclassified,
		MinConfidence: minConf,
	}
	for _, sp := range samples {
		s, err := readSample(c, sp, f, log)
		if err != nil {
			return err
		}
		tb.Add(s)
	}

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

	if err := tb.TSV(w); err != nil {
		return fmt.Errorf("while writing table: %v", err)
	}
	return nil
}

func readSample(c *command.Command, sp kraken.SamplePath, f kraken.Filter, log *zap.SugaredLogger) (*kraken.Sample, error) {
	in, err := files.Open(sp.Path, c.Stdin(), files.Progress(c.Stderr(), progress))
	if err != nil {
		return nil, err
	}
	defer in.Close()

	s, err := kraken.ReadOutput(in, sp.Sample, f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", in.Name(), err)
	}
	log.Infow("sample read",
		"sample", sp.Sample,
		"file", in.Name(),
		"reads", s.Reads(),
		"counted", s.Kept(),
		"taxa", len(s.Taxa()),
	)
	if s.Kept() == 0 {
		log.Warnw("sample without counted reads", "sample", sp.Sample, "file", in.Name())
	}
	return s, nil
}

func readSamples(name string) ([]kraken.SamplePath, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	samples, err := kraken.ReadSamples(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}

	dir := filepath.Dir(name)
	for i, sp := range samples {
		if filepath.IsAbs(sp.Path) {
			continue
		}
		samples[i].Path = filepath.Join(dir, sp.Path)
	}
	return samples, nil
}

func readTable(name string) (*kraken.Table, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tb, err := kraken.ReadTable(f)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", name, err)
	}
	return tb, nil
}
