package schemas

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Sentinels wrapped by DecodeError; test with errors.Is.
var (
	ErrArity      = errors.New("wrong number of fields")
	ErrFieldKind  = errors.New("wrong value kind")
	ErrFieldRange = errors.New("value out of range")
	ErrEnum       = errors.New("unknown enum value")

	ErrUnknownKind = errors.New("unknown table kind")
)

// DecodeError reports a syntactically valid tuple that does not fit the
// selected table kind.
type DecodeError struct {
	Table    string // table kind, e.g. "categorylinks"
	Field    string // record field name; empty for arity errors
	Position int    // position of the offending value in the tuple; -1 for arity errors
	Tuple    int    // index of the tuple in the scan
	Offset   int    // byte offset of the tuple
	Err      error  // one of the sentinels above
	Msg      string
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "schemas: %s tuple %d at byte %d: ", e.Table, e.Tuple, e.Offset)
	if e.Field != "" {
		fmt.Fprintf(&b, "field %s (position %d): ", e.Field, e.Position)
	}
	b.WriteString(e.Msg)
	return b.String()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}
