package sqldump

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/golang/glog"
)

var (
	insertPrefix  = []byte("INSERT INTO ")
	valuesKeyword = []byte("VALUES")
	nullKeyword   = []byte("NULL")
	trueKeyword   = []byte("TRUE")
	falseKeyword  = []byte("FALSE")
)

// insertMarker returns the text that starts every INSERT statement for table.
func insertMarker(table string) []byte {
	m := make([]byte, 0, len(insertPrefix)+len(table)+2)
	m = append(m, insertPrefix...)
	m = append(m, '`')
	m = append(m, table...)
	return append(m, '`')
}

// Scanner reads the tuples inserted into one table, in the order they appear
// in the data. It is used like bufio.Scanner:
//
//	s := sqldump.NewScanner(data, "page")
//	for s.Scan() {
//		t := s.Tuple()
//		...
//	}
//	if err := s.Err(); err != nil {
//		...
//	}
//
// Reaching the end of data outside of a VALUES list is the normal end of the
// scan. Anything malformed inside a VALUES list stops the scan with a
// *SyntaxError.
type Scanner struct {
	data   []byte
	table  string
	marker []byte

	pos        int
	inList     bool
	expectSep  bool
	stmtOffset int

	vals   []Value
	tuple  Tuple
	tuples int
	stmts  int

	err  error
	done bool
}

// NewScanner returns a Scanner for the tuples of table in data. The table name
// is matched exactly, as mysqldump quotes it with backticks. Outside of VALUES
// lists the data is assumed not to contain the INSERT text for table, e.g.
// inside a comment or another table's string literal.
func NewScanner(data []byte, table string) *Scanner {
	return &Scanner{
		data:   data,
		table:  table,
		marker: insertMarker(table),
	}
}

// Scan advances to the next tuple. It returns false at the end of data or on
// error; Err tells the two apart.
func (s *Scanner) Scan() bool {
	if s.done {
		return false
	}
	for {
		if !s.inList && !s.locate() {
			return false
		}
		s.skipSpace()
		if s.pos >= len(s.data) {
			return s.fail(s.pos, "unexpected end of input in VALUES list of `%s` started at byte %d", s.table, s.stmtOffset)
		}
		switch c := s.data[s.pos]; {
		case c == ';':
			s.pos++
			s.inList = false
			continue
		case s.expectSep:
			if c != ',' {
				return s.fail(s.pos, "expected ',' or ';' after tuple, got %q", c)
			}
			s.pos++
			s.skipSpace()
		}
		if !s.readTuple() {
			return false
		}
		s.expectSep = true
		return true
	}
}

// Tuple returns the tuple read by the last successful Scan.
func (s *Scanner) Tuple() Tuple {
	return s.tuple
}

// Err returns the first error encountered, or nil if the scan ended cleanly.
func (s *Scanner) Err() error {
	return s.err
}

// Offset returns the current byte offset into the data.
func (s *Scanner) Offset() int {
	return s.pos
}

// Statements returns the number of INSERT statements located so far.
func (s *Scanner) Statements() int {
	return s.stmts
}

// Tuples returns the number of tuples returned so far.
func (s *Scanner) Tuples() int {
	return s.tuples
}

// Table returns the name of the table being scanned.
func (s *Scanner) Table() string {
	return s.table
}

func (s *Scanner) fail(offset int, format string, args ...interface{}) bool {
	s.err = &SyntaxError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
	s.done = true
	return false
}

// locate moves past the next INSERT marker and its VALUES keyword.
func (s *Scanner) locate() bool {
	i := bytes.Index(s.data[s.pos:], s.marker)
	if i < 0 {
		s.pos = len(s.data)
		s.done = true
		return false
	}
	start := s.pos + i
	rest := s.data[start+len(s.marker):]
	end := bytes.IndexByte(rest, ';')
	if end < 0 {
		end = len(rest)
	}
	// An optional column list may sit between the table name and VALUES.
	j := bytes.Index(rest[:end], valuesKeyword)
	if j < 0 {
		return s.fail(start, "INSERT INTO `%s` without VALUES", s.table)
	}
	s.pos = start + len(s.marker) + j + len(valuesKeyword)
	s.stmtOffset = start
	s.stmts++
	s.inList = true
	s.expectSep = false
	glog.V(2).Infof("sqldump: statement %d for `%s` at byte %d", s.stmts-1, s.table, start)
	return true
}

func (s *Scanner) skipSpace() {
	for s.pos < len(s.data) {
		switch s.data[s.pos] {
		case ' ', '\t', '\n', '\r':
			s.pos++
		default:
			return
		}
	}
}

func (s *Scanner) readTuple() bool {
	start := s.pos
	if s.pos >= len(s.data) {
		return s.fail(s.pos, "unexpected end of input, expected '('")
	}
	if c := s.data[s.pos]; c != '(' {
		return s.fail(s.pos, "expected '(', got %q", c)
	}
	s.pos++

	s.vals = s.vals[:0]
	for {
		s.skipSpace()
		v, ok := s.readValue()
		if !ok {
			return false
		}
		s.vals = append(s.vals, v)
		s.skipSpace()
		if s.pos >= len(s.data) {
			return s.fail(start, "unbalanced parenthesis: tuple not closed before end of input")
		}
		c := s.data[s.pos]
		s.pos++
		if c == ')' {
			break
		}
		if c != ',' {
			return s.fail(s.pos-1, "expected ',' or ')' in tuple, got %q", c)
		}
	}

	s.tuple = Tuple{
		Values:    s.vals,
		Index:     s.tuples,
		Offset:    start,
		Statement: s.stmts - 1,
	}
	s.tuples++
	if glog.V(3) {
		glog.Infof("sqldump: tuple %d at byte %d with %d values", s.tuple.Index, start, len(s.vals))
	}
	return true
}

func (s *Scanner) readValue() (Value, bool) {
	if s.pos >= len(s.data) {
		return Value{}, s.fail(s.pos, "unexpected end of input, expected value")
	}
	start := s.pos
	c := s.data[start]
	switch {
	case c == '\'':
		str, ok := s.readString()
		return Value{Kind: String, Str: str, Offset: start}, ok
	case c == '-' || c == '+' || isDigit(c):
		return s.readNumber()
	case isLetter(c):
		end := start
		for end < len(s.data) && isLetter(s.data[end]) {
			end++
		}
		word := s.data[start:end]
		s.pos = end
		switch {
		case bytes.EqualFold(word, nullKeyword):
			return Value{Kind: Null, Offset: start}, true
		case bytes.EqualFold(word, trueKeyword):
			return Value{Kind: Bool, Bool: true, Offset: start}, true
		case bytes.EqualFold(word, falseKeyword):
			return Value{Kind: Bool, Offset: start}, true
		}
		return Value{}, s.fail(start, "unexpected keyword %q", word)
	}
	return Value{}, s.fail(start, "unexpected character %q", c)
}

func (s *Scanner) readNumber() (Value, bool) {
	start := s.pos
	i := start
	neg := false
	if c := s.data[i]; c == '-' || c == '+' {
		neg = c == '-'
		i++
	}

	digits := i
	var n uint64
	overflow := false
	for i < len(s.data) && isDigit(s.data[i]) {
		d := uint64(s.data[i] - '0')
		if n > (math.MaxUint64-d)/10 {
			overflow = true
		} else {
			n = n*10 + d
		}
		i++
	}
	if i == digits {
		return Value{}, s.fail(start, "expected digits after sign")
	}

	isFloat := false
	if i < len(s.data) && s.data[i] == '.' {
		isFloat = true
		i++
		for i < len(s.data) && isDigit(s.data[i]) {
			i++
		}
	}
	if i < len(s.data) && (s.data[i] == 'e' || s.data[i] == 'E') {
		isFloat = true
		i++
		if i < len(s.data) && (s.data[i] == '-' || s.data[i] == '+') {
			i++
		}
		exp := i
		for i < len(s.data) && isDigit(s.data[i]) {
			i++
		}
		if i == exp {
			return Value{}, s.fail(start, "malformed exponent in %q", s.data[start:i])
		}
	}
	s.pos = i

	if isFloat {
		f, err := strconv.ParseFloat(string(s.data[start:i]), 64)
		if err != nil {
			return Value{}, s.fail(start, "malformed number %q: %v", s.data[start:i], err)
		}
		return Value{Kind: Float, Float: f, Offset: start}, true
	}

	limit := uint64(math.MaxInt64)
	if neg {
		limit++
	}
	if overflow || n > limit {
		return Value{}, s.fail(start, "integer %s out of range", s.data[start:i])
	}
	v := int64(n)
	if neg {
		v = -v
	}
	return Value{Kind: Int, Int: v, Offset: start}, true
}

// readString reads a quoted literal starting at the opening quote. The common
// case, a literal without escapes, is returned as a view into the data.
func (s *Scanner) readString() (Str, bool) {
	start := s.pos
	j := bytes.IndexAny(s.data[start+1:], `'\`)
	if j < 0 {
		return Str{}, s.fail(start, "unterminated string literal")
	}
	i := start + 1 + j
	if s.data[i] == '\\' || (i+1 < len(s.data) && s.data[i+1] == '\'') {
		return s.readEscapedString(start, i)
	}
	s.pos = i + 1
	return Borrowed(s.data[start+1 : i]), true
}

// readEscapedString finishes reading the literal opened at start, given that
// the first escape sequence begins at i.
func (s *Scanner) readEscapedString(start, i int) (Str, bool) {
	buf := make([]byte, 0, i-start+16)
	buf = append(buf, s.data[start+1:i]...)
	for i < len(s.data) {
		switch s.data[i] {
		case '\'':
			if i+1 < len(s.data) && s.data[i+1] == '\'' {
				buf = append(buf, '\'')
				i += 2
				continue
			}
			s.pos = i + 1
			return Owned(buf), true
		case '\\':
			if i+1 >= len(s.data) {
				return Str{}, s.fail(start, "unterminated string literal")
			}
			buf = appendUnescaped(buf, s.data[i+1])
			i += 2
		default:
			j := bytes.IndexAny(s.data[i:], `'\`)
			if j < 0 {
				i = len(s.data)
				continue
			}
			buf = append(buf, s.data[i:i+j]...)
			i += j
		}
	}
	return Str{}, s.fail(start, "unterminated string literal")
}

// appendUnescaped appends the character denoted by the escape sequence \c.
func appendUnescaped(buf []byte, c byte) []byte {
	switch c {
	case '0':
		return append(buf, 0)
	case 'b':
		return append(buf, '\b')
	case 'n':
		return append(buf, '\n')
	case 'r':
		return append(buf, '\r')
	case 't':
		return append(buf, '\t')
	case 'Z':
		return append(buf, 0x1A)
	case '%', '_':
		// MySQL keeps the backslash for these, they only matter in LIKE patterns.
		return append(buf, '\\', c)
	}
	return append(buf, c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
