// Package schemas decodes the tuples of MediaWiki dump tables into typed
// records.
//
// The set of tables is closed: Kind enumerates the five supported tables and
// Record is implemented only by the record types of this package.
package schemas

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Kind selects one of the supported dump tables.
type Kind uint8

const (
	LangLinks Kind = iota
	InterwikiLinks
	Categories
	CategoryLinks
	Pages
)

var kindInfo = [...]struct {
	name   string
	table  string
	header []string
}{
	LangLinks:      {"langlinks", "langlinks", []string{"from", "lang", "title"}},
	InterwikiLinks: {"iwlinks", "iwlinks", []string{"from", "prefix", "title"}},
	Categories:     {"category", "category", []string{"id", "title", "pages", "subcats", "files"}},
	CategoryLinks:  {"categorylinks", "categorylinks", []string{"from", "to", "collation", "type"}},
	Pages:          {"page", "page", []string{"id", "namespace", "title", "is_redirect", "lang"}},
}

// Kinds returns all table kinds in declaration order.
func Kinds() []Kind {
	return []Kind{LangLinks, InterwikiLinks, Categories, CategoryLinks, Pages}
}

func (k Kind) valid() bool {
	return int(k) < len(kindInfo)
}

// String returns the command name of the kind, e.g. "iwlinks".
func (k Kind) String() string {
	if !k.valid() {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindInfo[k].name
}

// Table returns the name of the SQL table holding rows of this kind.
func (k Kind) Table() string {
	if !k.valid() {
		return ""
	}
	return kindInfo[k].table
}

// Header returns the output column names for this kind, in field order.
func (k Kind) Header() []string {
	if !k.valid() {
		return nil
	}
	return append([]string(nil), kindInfo[k].header...)
}

// ParseKind returns the kind whose command name is s.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if kindInfo[k].name == s {
			return k, nil
		}
	}
	names := make([]string, 0, len(kindInfo))
	for _, k := range Kinds() {
		names = append(names, k.String())
	}
	return 0, errors.Errorf("schemas: unknown table kind %q; want one of %s", s, strings.Join(names, ", "))
}
