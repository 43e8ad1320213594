package tabular

import (
	"bufio"
	"encoding/csv"
	"io"

	"github.com/pkg/errors"

	"badc0de.net/pkg/go-wikisql/schemas"
)

const bufferSize = 1 << 20

type csvWriter struct {
	kind   schemas.Kind
	buf    *bufio.Writer
	w      *csv.Writer
	fields []string
	closer io.Closer
}

func newCSVWriter(w io.Writer, comma rune, kind schemas.Kind, closer io.Closer) (*csvWriter, error) {
	buf := bufio.NewWriterSize(w, bufferSize)
	cw := csv.NewWriter(buf)
	cw.Comma = comma
	if err := cw.Write(kind.Header()); err != nil {
		return nil, errors.Wrap(err, "tabular: writing header")
	}
	return &csvWriter{
		kind:   kind,
		buf:    buf,
		w:      cw,
		fields: make([]string, 0, len(kind.Header())),
		closer: closer,
	}, nil
}

func (w *csvWriter) Write(rec schemas.Record) error {
	if err := checkKind(w.kind, rec); err != nil {
		return err
	}
	w.fields = rec.AppendFields(w.fields[:0])
	return w.w.Write(w.fields)
}

func (w *csvWriter) Close() error {
	w.w.Flush()
	err := w.w.Error()
	if err == nil {
		err = w.buf.Flush()
	}
	if w.closer != nil {
		if cerr := w.closer.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return errors.Wrap(err, "tabular: flushing")
	}
	return nil
}
