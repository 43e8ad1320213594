package sqldump

import (
	"strconv"
)

// ValueKind is the lexical kind of a scalar in a VALUES tuple.
type ValueKind uint8

const (
	Null ValueKind = iota
	Int
	Float
	String
	Bool
)

func (k ValueKind) String() string {
	switch k {
	case Null:
		return "NULL"
	case Int:
		return "integer"
	case Float:
		return "float"
	case String:
		return "string"
	case Bool:
		return "boolean"
	}
	return "ValueKind(" + strconv.Itoa(int(k)) + ")"
}

// Str is the content of a string literal. It is either borrowed, a view into
// the scanned data, or owned, a buffer built because the literal contained
// escape sequences.
//
// A borrowed Str is only valid as long as the scanned data is; for a memory
// mapped dump that means until the mapping is closed.
type Str struct {
	b     []byte
	owned bool
}

// Borrowed wraps a view into data that is owned elsewhere.
func Borrowed(b []byte) Str {
	return Str{b: b}
}

// Owned wraps a freshly allocated buffer.
func Owned(b []byte) Str {
	return Str{b: b, owned: true}
}

// IsOwned reports whether the literal had to be unescaped into its own buffer.
func (s Str) IsOwned() bool {
	return s.owned
}

// Bytes returns the unescaped content without copying it.
func (s Str) Bytes() []byte {
	return s.b
}

// String returns a copy of the unescaped content.
func (s Str) String() string {
	return string(s.b)
}

func (s Str) Len() int {
	return len(s.b)
}

// Value is one scalar of a tuple. Only the field matching Kind is meaningful.
type Value struct {
	Kind   ValueKind
	Int    int64
	Float  float64
	Bool   bool
	Str    Str
	Offset int
}

// String renders the value for diagnostics.
func (v Value) String() string {
	switch v.Kind {
	case Null:
		return "NULL"
	case Int:
		return strconv.FormatInt(v.Int, 10)
	case Float:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case String:
		return strconv.Quote(v.Str.String())
	case Bool:
		if v.Bool {
			return "TRUE"
		}
		return "FALSE"
	}
	return "?"
}

// Tuple is one parenthesized group of a VALUES list.
//
// Values is reused by the next call to Scanner.Scan; a Tuple must be consumed
// before scanning on.
type Tuple struct {
	Values    []Value
	Index     int // position among all tuples returned by the Scanner
	Offset    int // byte offset of the opening parenthesis
	Statement int // zero-based index of the INSERT statement holding the tuple
}

// Len returns the number of values (the arity) of the tuple.
func (t Tuple) Len() int {
	return len(t.Values)
}
