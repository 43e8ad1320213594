package schemas

import (
	"github.com/pkg/errors"
)

// Layout names the column order the dump was written with.
type Layout uint8

const (
	// Compact tables hold exactly the record fields, in header order.
	Compact Layout = iota
	// MediaWiki tables hold the full columns of the MediaWiki schema, for
	// example cl_sortkey and cl_timestamp in categorylinks, or page_touched
	// and page_len in page. Columns without a record field are skipped.
	MediaWiki
)

func (l Layout) String() string {
	switch l {
	case Compact:
		return "compact"
	case MediaWiki:
		return "mediawiki"
	}
	return "unknown"
}

// ParseLayout returns the layout named s.
func ParseLayout(s string) (Layout, error) {
	switch s {
	case "compact":
		return Compact, nil
	case "mediawiki":
		return MediaWiki, nil
	}
	return 0, errors.Errorf("schemas: unknown layout %q; want compact or mediawiki", s)
}

// shape maps record fields onto tuple positions for one arity.
type shape struct {
	arity int
	pos   []int
}

func identity(n int) shape {
	s := shape{arity: n, pos: make([]int, n)}
	for i := range s.pos {
		s.pos[i] = i
	}
	return s
}

var shapes = [...][2][]shape{
	LangLinks:      {Compact: {identity(3)}, MediaWiki: {identity(3)}},
	InterwikiLinks: {Compact: {identity(3)}, MediaWiki: {identity(3)}},
	Categories:     {Compact: {identity(5)}, MediaWiki: {identity(5)}},
	CategoryLinks: {
		Compact: {identity(4)},
		// cl_from, cl_to, cl_sortkey, cl_timestamp, cl_sortkey_prefix, cl_collation, cl_type
		MediaWiki: {{arity: 7, pos: []int{0, 1, 5, 6}}},
	},
	Pages: {
		Compact: {identity(5)},
		MediaWiki: {
			// page_id, page_namespace, page_title, page_restrictions, page_is_redirect,
			// page_is_new, page_random, page_touched, page_links_updated, page_latest,
			// page_len, page_content_model, page_lang
			{arity: 13, pos: []int{0, 1, 2, 4, 12}},
			// Since MediaWiki 1.38 page_restrictions is gone.
			{arity: 12, pos: []int{0, 1, 2, 3, 11}},
		},
	},
}

func shapesFor(kind Kind, layout Layout) []shape {
	if !kind.valid() || int(layout) >= len(shapes[kind]) {
		return nil
	}
	return shapes[kind][layout]
}
