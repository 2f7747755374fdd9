// Copyright © 2024 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

package files_test

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/js-arias/krakentax/internal/files"
	"github.com/klauspost/pgzip"
	"github.com/ulikunitz/xz"
)

const reportData = "100.00\t10\t0\tR\t1\troot\n" +
	" 90.00\t9\t0\tD\t2\t  Bacteria\n" +
	" 50.00\t5\t5\tS\t562\t    Escherichia coli\n"

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	plain := filepath.Join(dir, "report.txt")
	if err := os.WriteFile(plain, []byte(reportData), 0o644); err != nil {
		t.Fatalf("write %q: %v", plain, err)
	}

	gzName := filepath.Join(dir, "report.txt.gz")
	f, err := os.Create(gzName)
	if err != nil {
		t.Fatalf("create %q: %v", gzName, err)
	}
	gz := pgzip.NewWriter(f)
	if _, err := io.WriteString(gz, reportData); err != nil {
		t.Fatalf("write %q: %v", gzName, err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("close %q: %v", gzName, err)
	}
	f.Close()

	xzName := filepath.Join(dir, "report.txt.xz")
	f, err = os.Create(xzName)
	if err != nil {
		t.Fatalf("create %q: %v", xzName, err)
	}
	xw, err := xz.NewWriter(f)
	if err != nil {
		t.Fatalf("xz writer: %v", err)
	}
	if _, err := io.WriteString(xw, reportData); err != nil {
		t.Fatalf("write %q: %v", xzName, err)
	}
	if err := xw.Close(); err != nil {
		t.Fatalf("close %q: %v", xzName, err)
	}
	f.Close()

	for _, name := range []string{plain, gzName, xzName} {
		testOpen(t, name, name, nil)
	}
	testOpen(t, "stdin", "-", strings.NewReader(reportData))
	testOpen(t, "stdin", "", strings.NewReader(reportData))

	if _, err := files.Open(filepath.Join(dir, "missing.txt"), nil, nil); err == nil {
		t.Errorf("open missing file: expecting error")
	}
}

func testOpen(t testing.TB, want, name string, stdin io.Reader) {
	t.Helper()

	in, err := files.Open(name, stdin, nil)
	if err != nil {
		t.Fatalf("open %q: %v", name, err)
	}
	defer in.Close()

	if in.Name() != want {
		t.Errorf("open %q: got name %q, want %q", name, in.Name(), want)
	}
	data, err := io.ReadAll(in)
	if err != nil {
		t.Fatalf("read %q: %v", name, err)
	}
	if string(data) != reportData {
		t.Errorf("read %q: got %q, want %q", name, data, reportData)
	}
}

func TestReadReport(t *testing.T) {
	tr, err := files.ReadReport("-", strings.NewReader(reportData), nil)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if tr.Len() != 3 {
		t.Errorf("read report: got %d taxa, want %d", tr.Len(), 3)
	}
	if nw := tr.Newick(); nw != "((562)2)1;" {
		t.Errorf("read report: got tree %q, want %q", nw, "((562)2)1;")
	}

	if _, err := files.ReadReport("-", strings.NewReader("bad\n"), nil); err == nil {
		t.Errorf("read invalid report: expecting error")
	}
}

func TestReadReportShards(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	shard := "100.00\t10\t0\tR\t1\troot\n" +
		" 10.00\t1\t1\tD\t10239\t  Viruses\n"
	if err := os.WriteFile(a, []byte(reportData), 0o644); err != nil {
		t.Fatalf("write %q: %v", a, err)
	}
	if err := os.WriteFile(b, []byte(shard), 0o644); err != nil {
		t.Fatalf("write %q: %v", b, err)
	}

	tr, err := files.ReadReport(a+","+b, nil, nil)
	if err != nil {
		t.Fatalf("read report shards: %v", err)
	}
	if nw := tr.Newick(); nw != "((562)2,10239)1;" {
		t.Errorf("read report shards: got tree %q, want %q", nw, "((562)2,10239)1;")
	}
}

func TestProgress(t *testing.T) {
	if w := files.Progress(&bytes.Buffer{}, false); w != nil {
		t.Errorf("progress without show: got %v, want nil", w)
	}

	var bar bytes.Buffer
	in, err := files.Open("-", strings.NewReader(reportData), files.Progress(&bar, true))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	data, err := io.ReadAll(in)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if err := in.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if string(data) != reportData {
		t.Errorf("read with progress: got %q, want %q", data, reportData)
	}
	if bar.Len() == 0 {
		t.Errorf("progress: expecting output in the progress writer")
	}
}
