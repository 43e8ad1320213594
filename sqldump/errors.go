package sqldump

import (
	"fmt"
)

// SyntaxError reports malformed SQL in the VALUES list of a statement the
// Scanner was interpreting. Scanning stops at the first SyntaxError.
type SyntaxError struct {
	Offset int // byte offset into the scanned data
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("sqldump: syntax error at byte %d: %s", e.Offset, e.Msg)
}
