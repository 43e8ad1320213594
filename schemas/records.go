package schemas

import (
	"strconv"
)

// Record is one decoded table row. It is implemented by LanguageLink,
// InterwikiLink, Category, CategoryLink and Page only.
type Record interface {
	// Kind returns the table kind the record belongs to.
	Kind() Kind
	// AppendFields appends the textual form of each field, in Kind().Header()
	// order, to dst.
	AppendFields(dst []string) []string
	// AppendValues appends each field as an int64, bool or string, in
	// Kind().Header() order, to dst.
	AppendValues(dst []interface{}) []interface{}

	isRecord()
}

// PageType is the kind of page a category link points from.
type PageType uint8

const (
	PageTypePage PageType = iota
	PageTypeSubcat
	PageTypeFile
)

var pageTypeNames = [...]string{
	PageTypePage:   "page",
	PageTypeSubcat: "subcat",
	PageTypeFile:   "file",
}

func (t PageType) String() string {
	if int(t) < len(pageTypeNames) {
		return pageTypeNames[t]
	}
	return "PageType(" + strconv.Itoa(int(t)) + ")"
}

// MarshalText encodes the type by name.
func (t PageType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func parsePageType(b []byte) (PageType, bool) {
	for i, name := range pageTypeNames {
		if string(b) == name {
			return PageType(i), true
		}
	}
	return 0, false
}

// LanguageLink is a row of the langlinks table: page From links to Title on
// the wiki for language Lang.
type LanguageLink struct {
	From  uint64 `json:"from"`
	Lang  string `json:"lang"`
	Title string `json:"title"`
}

func (LanguageLink) Kind() Kind { return LangLinks }
func (LanguageLink) isRecord() {}

func (l LanguageLink) AppendFields(dst []string) []string {
	return append(dst, strconv.FormatUint(l.From, 10), l.Lang, l.Title)
}

func (l LanguageLink) AppendValues(dst []interface{}) []interface{} {
	return append(dst, int64(l.From), l.Lang, l.Title)
}

// InterwikiLink is a row of the iwlinks table.
type InterwikiLink struct {
	From   uint64 `json:"from"`
	Prefix string `json:"prefix"`
	Title  string `json:"title"`
}

func (InterwikiLink) Kind() Kind { return InterwikiLinks }
func (InterwikiLink) isRecord() {}

func (l InterwikiLink) AppendFields(dst []string) []string {
	return append(dst, strconv.FormatUint(l.From, 10), l.Prefix, l.Title)
}

func (l InterwikiLink) AppendValues(dst []interface{}) []interface{} {
	return append(dst, int64(l.From), l.Prefix, l.Title)
}

// Category is a row of the category table. The counts are maintained
// incrementally by MediaWiki and may be off, even negative.
type Category struct {
	ID      uint64 `json:"id"`
	Title   string `json:"title"`
	Pages   int64  `json:"pages"`
	Subcats int64  `json:"subcats"`
	Files   int64  `json:"files"`
}

func (Category) Kind() Kind { return Categories }
func (Category) isRecord() {}

func (c Category) AppendFields(dst []string) []string {
	return append(dst,
		strconv.FormatUint(c.ID, 10),
		c.Title,
		strconv.FormatInt(c.Pages, 10),
		strconv.FormatInt(c.Subcats, 10),
		strconv.FormatInt(c.Files, 10),
	)
}

func (c Category) AppendValues(dst []interface{}) []interface{} {
	return append(dst, int64(c.ID), c.Title, c.Pages, c.Subcats, c.Files)
}

// CategoryLink is a row of the categorylinks table: page From is a member of
// category To.
type CategoryLink struct {
	From      uint64   `json:"from"`
	To        string   `json:"to"`
	Collation string   `json:"collation"`
	Type      PageType `json:"type"`
}

func (CategoryLink) Kind() Kind { return CategoryLinks }
func (CategoryLink) isRecord() {}

func (l CategoryLink) AppendFields(dst []string) []string {
	return append(dst, strconv.FormatUint(l.From, 10), l.To, l.Collation, l.Type.String())
}

func (l CategoryLink) AppendValues(dst []interface{}) []interface{} {
	return append(dst, int64(l.From), l.To, l.Collation, l.Type.String())
}

// Page is a row of the page table. Lang is empty when the page has no
// explicit content language; NULL and '' are not told apart.
type Page struct {
	ID         uint64 `json:"id"`
	Namespace  int32  `json:"namespace"`
	Title      string `json:"title"`
	IsRedirect bool   `json:"is_redirect"`
	Lang       string `json:"lang"`
}

func (Page) Kind() Kind { return Pages }
func (Page) isRecord() {}

func (p Page) AppendFields(dst []string) []string {
	return append(dst,
		strconv.FormatUint(p.ID, 10),
		strconv.FormatInt(int64(p.Namespace), 10),
		p.Title,
		strconv.FormatBool(p.IsRedirect),
		p.Lang,
	)
}

func (p Page) AppendValues(dst []interface{}) []interface{} {
	return append(dst, int64(p.ID), int64(p.Namespace), p.Title, p.IsRedirect, p.Lang)
}
