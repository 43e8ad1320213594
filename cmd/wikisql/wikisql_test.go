package main

import (
	"bytes"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"badc0de.net/pkg/go-wikisql/datafiles"
	"badc0de.net/pkg/go-wikisql/ttesting"
)

func TestKindNames(t *testing.T) {
	ttesting.AssertEqualStrings(t, "names", kindNames(), []string{"langlinks", "iwlinks", "category", "categorylinks", "page"})
}

// parse registers the flags on a fresh FlagSet and parses args.
func parse(t *testing.T, args ...string) (*config, *flag.FlagSet) {
	t.Helper()
	var c config
	fs := flag.NewFlagSet("wikisql", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	c.register(fs)
	require.NoError(t, fs.Parse(args))
	return &c, fs
}

// invoke parses args and runs the command, returning its exit status and output.
func invoke(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	c, fs := parse(t, args...)
	var stdout, stderr bytes.Buffer
	code := run(c, fs.Args(), &stdout, &stderr, func() {})
	return code, stdout.String(), stderr.String()
}

func dump(t *testing.T, name string) string {
	t.Helper()
	data, err := datafiles.ReadFile(name)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestFlagShorthands(t *testing.T) {
	c, _ := parse(t, "-i", "a.sql", "-o", "b.csv", "page")
	ttesting.AssertEqualString(t, "-i", c.inputPath, "a.sql")
	ttesting.AssertEqualString(t, "-o", c.outputPath, "b.csv")

	c, _ = parse(t, "-input", "c.sql", "-output", "d.csv", "page")
	ttesting.AssertEqualString(t, "-input", c.inputPath, "c.sql")
	ttesting.AssertEqualString(t, "-output", c.outputPath, "d.csv")

	c, fs := parse(t, "-i", "a.sql")
	ttesting.AssertEqualString(t, "default format", c.formatName, "csv")
	ttesting.AssertEqualString(t, "default layout", c.layoutName, "compact")
	ttesting.AssertEqualInt(t, "default progress", c.progressEvery, 1000000)
	ttesting.AssertEqualInt(t, "no command", fs.NArg(), 0)
}

func TestUsageErrors(t *testing.T) {
	in := dump(t, "page.sql")
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no command", []string{"-i", in}, "expected exactly one command, got 0"},
		{"two commands", []string{"-i", in, "page", "category"}, "got 2"},
		{"no input", []string{"page"}, "-input is required"},
		{"unknown command", []string{"-i", in, "revision"}, "revision"},
		{"unknown format", []string{"-i", in, "-format", "xlsx", "page"}, "xlsx"},
		{"unknown layout", []string{"-i", in, "-layout", "full", "page"}, "full"},
		{"unknown count kind", []string{"-i", in, "-count_kind", "pages", "count"}, "pages"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			usage := false
			c, fs := parse(t, tt.args...)
			var stderr bytes.Buffer
			code := run(c, fs.Args(), io.Discard, &stderr, func() { usage = true })
			ttesting.AssertEqualInt(t, "exit status", code, exitUsage)
			ttesting.AssertEqualBool(t, "usage printed", usage, true)
			require.Contains(t, stderr.String(), tt.want)
		})
	}
}

func TestConvertCommand(t *testing.T) {
	in := dump(t, "langlinks.sql")
	code, stdout, stderr := invoke(t, "-i", in, "-format", "tsv", "langlinks")
	ttesting.AssertEqualInt(t, "exit status", code, 0)
	ttesting.AssertEqualString(t, "stderr", stderr, "")

	out := strings.TrimSuffix(in, ".sql") + ".tsv"
	ttesting.AssertEqualString(t, "stdout", stdout, "done: "+out+"\n")
	got, err := os.ReadFile(out)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(got), "from\tlang\ttitle\n1\tde\tHauptseite\n"), "got %q", got)
}

func TestCountCommand(t *testing.T) {
	in := dump(t, "categorylinks_mediawiki.sql")
	code, stdout, _ := invoke(t, "-input", in, "-layout", "mediawiki", "-count_kind", "categorylinks", "-workers", "2", "count")
	ttesting.AssertEqualInt(t, "exit status", code, 0)
	ttesting.AssertEqualString(t, "stdout", stdout, "2\n")
}

func TestDumpDirs(t *testing.T) {
	in := dump(t, "iwlinks.sql")
	code, stdout, _ := invoke(t, "-i", "iwlinks.sql", "-dump_dirs", filepath.Dir(in), "-count_kind", "iwlinks", "count")
	ttesting.AssertEqualInt(t, "exit status", code, 0)
	ttesting.AssertEqualString(t, "stdout", stdout, "3\n")
}

func TestCommandFailure(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.sql")
	code, _, stderr := invoke(t, "-i", missing, "page")
	ttesting.AssertEqualInt(t, "missing input", code, exitFailure)
	require.Contains(t, stderr, missing)

	in := dump(t, "page.sql")
	code, _, stderr = invoke(t, "-i", in, "-layout", "mediawiki", "page")
	ttesting.AssertEqualInt(t, "wrong layout", code, exitFailure)
	require.Contains(t, stderr, "expected 13 or 12 fields")
}
