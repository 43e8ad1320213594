package schemas

import (
	"badc0de.net/pkg/go-wikisql/sqldump"
)

// Reader decodes the rows of one table kind from a dump, one at a time and in
// the order they appear in the dump.
//
//	r := schemas.NewReader(data, schemas.Pages, schemas.Compact)
//	for r.Next() {
//		p := r.Record().(schemas.Page)
//		...
//	}
//	if err := r.Err(); err != nil {
//		...
//	}
//
// A Reader cannot be rewound; create a new one to scan again.
type Reader struct {
	sc     *sqldump.Scanner
	kind   Kind
	layout Layout

	rec   Record
	count int
	err   error
}

// NewReader returns a Reader over data for rows of kind, laid out as layout.
func NewReader(data []byte, kind Kind, layout Layout) *Reader {
	return &Reader{
		sc:     sqldump.NewScanner(data, kind.Table()),
		kind:   kind,
		layout: layout,
	}
}

// Next decodes the next row. It returns false at the end of the dump or at
// the first syntax or decode error.
func (r *Reader) Next() bool {
	if r.err != nil {
		return false
	}
	if !r.sc.Scan() {
		r.err = r.sc.Err()
		r.rec = nil
		return false
	}
	rec, err := Decode(r.kind, r.layout, r.sc.Tuple())
	if err != nil {
		r.err = err
		r.rec = nil
		return false
	}
	r.rec = rec
	r.count++
	return true
}

// Record returns the row decoded by the last successful Next.
func (r *Reader) Record() Record {
	return r.rec
}

// Err returns the *sqldump.SyntaxError or *DecodeError that stopped the
// Reader, or nil if it reached the end of the dump.
func (r *Reader) Err() error {
	return r.err
}

// Count returns the number of rows decoded so far.
func (r *Reader) Count() int {
	return r.count
}

// Statements returns the number of INSERT statements seen so far.
func (r *Reader) Statements() int {
	return r.sc.Statements()
}

func (r *Reader) Kind() Kind {
	return r.kind
}
