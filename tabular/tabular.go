// Package tabular writes decoded dump rows out as delimited text, JSON lines
// or an SQLite table.
package tabular

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"badc0de.net/pkg/go-wikisql/schemas"
)

// Format selects the output encoding.
type Format uint8

const (
	CSV Format = iota
	TSV
	JSONL
	SQLite
)

var formatNames = [...]struct{ name, ext string }{
	CSV:    {"csv", ".csv"},
	TSV:    {"tsv", ".tsv"},
	JSONL:  {"jsonl", ".jsonl"},
	SQLite: {"sqlite", ".sqlite"},
}

func (f Format) String() string {
	if int(f) < len(formatNames) {
		return formatNames[f].name
	}
	return "unknown"
}

// Extension returns the file name extension for the format, including the dot.
func (f Format) Extension() string {
	if int(f) < len(formatNames) {
		return formatNames[f].ext
	}
	return ""
}

// ParseFormat returns the format named s.
func ParseFormat(s string) (Format, error) {
	for i, n := range formatNames {
		if n.name == s {
			return Format(i), nil
		}
	}
	return 0, errors.Errorf("tabular: unknown format %q; want csv, tsv, jsonl or sqlite", s)
}

// ErrKindMismatch is returned by Write for a record of a different table kind
// than the Writer was created for.
var ErrKindMismatch = errors.New("tabular: record kind does not match writer")

// Writer emits records of a single table kind. The header, if the format has
// one, is written when the Writer is created.
type Writer interface {
	Write(rec schemas.Record) error
	// Close flushes buffered rows and releases the destination.
	Close() error
}

// NewWriter returns a Writer encoding to w. SQLite needs a file and is not
// supported here; use Create. Close flushes but does not close w.
func NewWriter(w io.Writer, format Format, kind schemas.Kind) (Writer, error) {
	switch format {
	case CSV:
		return newCSVWriter(w, ',', kind, nil)
	case TSV:
		return newCSVWriter(w, '\t', kind, nil)
	case JSONL:
		return newJSONLWriter(w, kind, nil), nil
	}
	return nil, errors.Errorf("tabular: format %v cannot be written to a stream", format)
}

// Create creates or truncates the file at path and returns a Writer for it.
func Create(path string, format Format, kind schemas.Kind) (Writer, error) {
	if format == SQLite {
		return createSQLite(path, kind)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "tabular: creating %q", path)
	}
	var w Writer
	switch format {
	case CSV:
		w, err = newCSVWriter(f, ',', kind, f)
	case TSV:
		w, err = newCSVWriter(f, '\t', kind, f)
	case JSONL:
		w = newJSONLWriter(f, kind, f)
	default:
		err = errors.Errorf("tabular: unknown format %v", format)
	}
	if err != nil {
		f.Close()
		return nil, err
	}
	return w, nil
}

func checkKind(want schemas.Kind, rec schemas.Record) error {
	if rec.Kind() != want {
		return errors.Wrapf(ErrKindMismatch, "got %v, want %v", rec.Kind(), want)
	}
	return nil
}
