package tabular

import (
	"bufio"
	"io"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"

	"badc0de.net/pkg/go-wikisql/schemas"
)

// jsonlWriter writes one JSON object per record, keyed by the header names.
type jsonlWriter struct {
	kind   schemas.Kind
	buf    *bufio.Writer
	enc    *json.Encoder
	closer io.Closer
}

func newJSONLWriter(w io.Writer, kind schemas.Kind, closer io.Closer) *jsonlWriter {
	buf := bufio.NewWriterSize(w, bufferSize)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	return &jsonlWriter{kind: kind, buf: buf, enc: enc, closer: closer}
}

func (w *jsonlWriter) Write(rec schemas.Record) error {
	if err := checkKind(w.kind, rec); err != nil {
		return err
	}
	return w.enc.Encode(rec)
}

func (w *jsonlWriter) Close() error {
	err := w.buf.Flush()
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
