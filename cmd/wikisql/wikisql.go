// Binary wikisql converts MediaWiki SQL dumps, as published on
// dumps.wikimedia.org, into CSV and other tabular formats.
//
//	wikisql -i simplewiki-latest-page.sql page
//	wikisql -i enwiki-latest-categorylinks.sql -layout mediawiki -format sqlite categorylinks
//	wikisql -i enwiki-latest-langlinks.sql -count_kind langlinks count
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"badc0de.net/pkg/flagutil/v1"
	"github.com/golang/glog"

	"badc0de.net/pkg/go-wikisql/convert"
	"badc0de.net/pkg/go-wikisql/paths"
	"badc0de.net/pkg/go-wikisql/schemas"
	"badc0de.net/pkg/go-wikisql/tabular"
)

const (
	exitFailure = 1
	exitUsage   = 2
)

type config struct {
	inputPath     string
	outputPath    string
	formatName    string
	layoutName    string
	progressEvery int
	countKind     string
	workers       int
	dumpDirs      string
}

func (c *config) register(fs *flag.FlagSet) {
	fs.StringVar(&c.inputPath, "input", "", "path to the SQL dump (required)")
	fs.StringVar(&c.inputPath, "i", "", "shorthand for -input")
	fs.StringVar(&c.outputPath, "output", "", "path of the output file; defaults to the input path with the format's extension")
	fs.StringVar(&c.outputPath, "o", "", "shorthand for -output")
	fs.StringVar(&c.formatName, "format", "csv", "output format: csv, tsv, jsonl or sqlite")
	fs.StringVar(&c.layoutName, "layout", "compact", "column layout of the dump: compact (only the converted columns) or mediawiki (full MediaWiki schema)")
	fs.IntVar(&c.progressEvery, "progress_every", tabular.DefaultProgressEvery, "print progress every this many rows; 0 or less disables it")
	fs.StringVar(&c.countKind, "count_kind", "page", "table kind counted by the count command")
	fs.IntVar(&c.workers, "workers", 0, "goroutines used by the count command; 0 means one per CPU")
	fs.StringVar(&c.dumpDirs, "dump_dirs", os.Getenv("WIKISQL_DUMP_DIRS"), "list of directories, separated like $PATH, searched for -input when it is not found as given")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: %s [flags] <%s|count>\n", fs.Name(), strings.Join(kindNames(), "|"))
		fs.PrintDefaults()
	}
}

func kindNames() []string {
	var names []string
	for _, k := range schemas.Kinds() {
		names = append(names, k.String())
	}
	return names
}

// run executes the command in args and returns the process exit status.
func run(c *config, args []string, stdout, stderr io.Writer, usage func()) int {
	usageError := func(format string, a ...interface{}) int {
		fmt.Fprintf(stderr, format+"\n", a...)
		usage()
		return exitUsage
	}
	fail := func(err error) int {
		glog.Errorf("%+v", err)
		fmt.Fprintln(stderr, err)
		return exitFailure
	}

	if len(args) != 1 {
		return usageError("expected exactly one command, got %d", len(args))
	}
	if c.inputPath == "" {
		return usageError("-input is required")
	}
	layout, err := schemas.ParseLayout(c.layoutName)
	if err != nil {
		return usageError("%v", err)
	}
	input := paths.Find(c.inputPath, paths.SplitDirs(c.dumpDirs)...)

	if args[0] == "count" {
		kind, err := schemas.ParseKind(c.countKind)
		if err != nil {
			return usageError("%v", err)
		}
		n, err := convert.Count(input, kind, layout, c.workers)
		if err != nil {
			return fail(err)
		}
		fmt.Fprintln(stdout, n)
		return 0
	}

	kind, err := schemas.ParseKind(args[0])
	if err != nil {
		return usageError("%v", err)
	}
	format, err := tabular.ParseFormat(c.formatName)
	if err != nil {
		return usageError("%v", err)
	}
	every := c.progressEvery
	if every <= 0 {
		every = -1
	}
	stats, err := convert.Run(convert.Options{
		Input:         input,
		Output:        c.outputPath,
		Kind:          kind,
		Layout:        layout,
		Format:        format,
		ProgressEvery: every,
		Stdout:        stdout,
	})
	if err != nil {
		return fail(err)
	}
	glog.V(1).Infof("%+v", stats)
	return 0
}

func main() {
	var c config
	c.register(flag.CommandLine)
	flagutil.Parse()

	code := run(&c, flag.Args(), os.Stdout, os.Stderr, flag.Usage)
	glog.Flush()
	os.Exit(code)
}
