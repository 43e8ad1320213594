// Package datafiles embeds small MediaWiki SQL dumps used by tests and
// examples across the module.
//
// The *_mediawiki.sql dumps follow the full MediaWiki column layout; the
// others hold exactly the columns of the output records.
package datafiles

import (
	"embed"
	"io/fs"
)

//go:embed *.sql
var dumpsEmbed embed.FS

// Dumps returns the embedded dumps.
func Dumps() fs.FS {
	return dumpsEmbed
}

// ReadFile returns the content of the named embedded dump, e.g. "page.sql".
func ReadFile(name string) ([]byte, error) {
	return dumpsEmbed.ReadFile(name)
}
