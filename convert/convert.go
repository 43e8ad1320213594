// Package convert turns a MediaWiki SQL dump into a tabular file.
package convert

import (
	"io"
	"os"
	"runtime"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"badc0de.net/pkg/go-wikisql/mmap"
	"badc0de.net/pkg/go-wikisql/paths"
	"badc0de.net/pkg/go-wikisql/schemas"
	"badc0de.net/pkg/go-wikisql/sqldump"
	"badc0de.net/pkg/go-wikisql/tabular"
)

// Options describes one conversion.
type Options struct {
	// Input is the path of the dump.
	Input string
	// Output is the path to write to. Empty means Input with its extension
	// replaced by the format's.
	Output string

	Kind   schemas.Kind
	Layout schemas.Layout
	Format tabular.Format

	// ProgressEvery is how many rows pass between progress reports. Zero
	// means tabular.DefaultProgressEvery; negative disables the reports.
	ProgressEvery int
	// Stdout receives progress reports. Nil means os.Stdout.
	Stdout io.Writer
}

// Stats summarizes a finished conversion.
type Stats struct {
	Rows       int
	Statements int
	Output     string
}

// Run converts opts.Input to opts.Output. Rows are written in the order they
// appear in the dump.
//
// On error, rows written before the failing one are left in the output.
func Run(opts Options) (Stats, error) {
	out := opts.Output
	if out == "" {
		out = paths.Output(opts.Input, opts.Format.Extension())
	}
	stats := Stats{Output: out}

	every := opts.ProgressEvery
	if every == 0 {
		every = tabular.DefaultProgressEvery
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	region, err := mmap.Open(opts.Input)
	if err != nil {
		return stats, errors.Wrap(err, "convert: opening input")
	}
	defer region.Close()

	// Truncating the mapped input would fault on the next read.
	if same, err := sameFile(opts.Input, out); err != nil {
		return stats, err
	} else if same {
		return stats, errors.Errorf("convert: output %q is the input", out)
	}

	w, err := tabular.Create(out, opts.Format, opts.Kind)
	if err != nil {
		return stats, errors.Wrap(err, "convert: opening output")
	}
	glog.Infof("converting %s rows from %s (%d bytes) to %s as %v", opts.Kind, opts.Input, region.Len(), out, opts.Format)

	progress := tabular.NewProgress(stdout, every)
	r := schemas.NewReader(region.Bytes(), opts.Kind, opts.Layout)
	for r.Next() {
		if err := w.Write(r.Record()); err != nil {
			w.Close()
			stats.Rows, stats.Statements = progress.Rows(), r.Statements()
			return stats, errors.Wrapf(err, "convert: writing row %d to %s", progress.Rows(), out)
		}
		progress.Add()
	}
	stats.Rows, stats.Statements = progress.Rows(), r.Statements()

	if err := r.Err(); err != nil {
		if cerr := w.Close(); cerr != nil {
			glog.Errorf("closing %s after failed read: %v", out, cerr)
		}
		return stats, errors.Wrapf(err, "convert: reading %s", opts.Input)
	}
	if err := w.Close(); err != nil {
		return stats, errors.Wrapf(err, "convert: closing %s", out)
	}
	progress.Done(out)
	glog.Infof("wrote %d rows from %d statements to %s", stats.Rows, stats.Statements, out)
	return stats, nil
}

func sameFile(input, output string) (bool, error) {
	ofi, err := os.Stat(output)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "convert: stat output %q", output)
	}
	ifi, err := os.Stat(input)
	if err != nil {
		return false, errors.Wrapf(err, "convert: stat input %q", input)
	}
	return os.SameFile(ifi, ofi), nil
}

// Count returns the number of rows of kind in the dump at input. The dump is
// split into sections that are decoded concurrently by up to workers
// goroutines; zero workers means runtime.NumCPU.
//
// If several sections fail, the error of the earliest one is returned.
func Count(input string, kind schemas.Kind, layout schemas.Layout, workers int) (int, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	region, err := mmap.Open(input)
	if err != nil {
		return 0, errors.Wrap(err, "convert: opening input")
	}
	defer region.Close()

	data := region.Bytes()
	sections := sqldump.Sections(data, kind.Table(), workers)
	glog.V(1).Infof("counting %s rows in %s using %d sections", kind, input, len(sections))

	counts := make([]int, len(sections))
	errs := make([]error, len(sections))
	var g errgroup.Group
	base := 0
	for i, sec := range sections {
		i, sec, off := i, sec, base
		base += len(sec)
		g.Go(func() error {
			r := schemas.NewReader(sec, kind, layout)
			for r.Next() {
			}
			counts[i] = r.Count()
			if err := r.Err(); err != nil {
				errs[i] = errors.Wrapf(err, "convert: section %d starting at byte %d of %s", i, off, input)
			}
			return errs[i]
		})
	}
	if g.Wait() != nil {
		for _, err := range errs {
			if err != nil {
				return 0, err
			}
		}
	}

	total := 0
	for _, n := range counts {
		total += n
	}
	return total, nil
}
