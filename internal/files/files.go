// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Package files implements opening of input files
// used by krakentax commands.
package files

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/js-arias/krakentax/report"
	"github.com/js-arias/krakentax/taxon"
	"github.com/klauspost/pgzip"
	"github.com/schollz/progressbar/v3"
	"github.com/ulikunitz/xz"
)

// An Input is an opened input file.
type Input struct {
	name string
	r    io.Reader
	bar  *progressbar.ProgressBar

	closers []io.Closer
}

// Open opens an input file.
// If the name is empty or "-",
// the input is read from stdin.
// Files with the ".gz" or ".xz" extensions
// are decompressed.
// If progress is not nil,
// a spinner with the number of read bytes
// is written on it.
func Open(name string, stdin io.Reader, progress io.Writer) (*Input, error) {
	in := &Input{name: name}
	if name == "" || name == "-" {
		in.name = "stdin"
		in.r = stdin
	} else {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		in.r = f
		in.closers = append(in.closers, f)
	}

	switch {
	case strings.HasSuffix(name, ".gz"):
		gz, err := pgzip.NewReader(in.r)
		if err != nil {
			in.Close()
			return nil, fmt.Errorf("on file %q: %v", in.name, err)
		}
		in.r = gz
		in.closers = append([]io.Closer{gz}, in.closers...)
	case strings.HasSuffix(name, ".xz"):
		xr, err := xz.NewReader(in.r)
		if err != nil {
			in.Close()
			return nil, fmt.Errorf("on file %q: %v", in.name, err)
		}
		in.r = xr
	}

	if progress != nil {
		in.bar = progressbar.NewOptions64(-1,
			progressbar.OptionSetWriter(progress),
			progressbar.OptionSetDescription(in.name),
			progressbar.OptionThrottle(250*time.Millisecond),
			progressbar.OptionSpinnerType(14),
			progressbar.OptionShowBytes(true),
			progressbar.OptionClearOnFinish(),
		)
		in.r = io.TeeReader(in.r, in.bar)
	}
	return in, nil
}

// Progress returns w if show is true,
// and nil otherwise.
// It is used to set the progress writer.
func Progress(w io.Writer, show bool) io.Writer {
	if !show {
		return nil
	}
	return w
}

// Name returns the name of the input.
func (in *Input) Name() string {
	return in.name
}

// Read implements the io.Reader interface.
func (in *Input) Read(p []byte) (int, error) {
	return in.r.Read(p)
}

// Close closes the input.
func (in *Input) Close() error {
	if in.bar != nil {
		_ = in.bar.Finish()
	}
	var err error
	for _, c := range in.closers {
		if e := c.Close(); e != nil && err == nil {
			err = e
		}
	}
	return err
}

// ReadReport reads a taxonomy tree
// from a report file.
// Several report files can be given
// separated by commas,
// and their taxonomies are merged
// into the taxonomy of the first file.
func ReadReport(name string, stdin io.Reader, progress io.Writer) (*taxon.Tree, error) {
	names := strings.Split(name, ",")
	t, err := readReport(names[0], stdin, progress)
	if err != nil {
		return nil, err
	}
	for _, nm := range names[1:] {
		o, err := readReport(nm, stdin, progress)
		if err != nil {
			return nil, err
		}
		if err := t.Merge(o); err != nil {
			return nil, fmt.Errorf("while merging file %q: %v", nm, err)
		}
	}
	return t, nil
}

func readReport(name string, stdin io.Reader, progress io.Writer) (*taxon.Tree, error) {
	in, err := Open(strings.TrimSpace(name), stdin, progress)
	if err != nil {
		return nil, err
	}
	defer in.Close()

	t, err := report.Read(in)
	if err != nil {
		return nil, fmt.Errorf("on file %q: %v", in.Name(), err)
	}
	return t, nil
}
