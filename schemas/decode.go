package schemas

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"badc0de.net/pkg/go-wikisql/sqldump"
)

// decoder reads record fields out of one tuple. The first failure sticks:
// later reads return zero values and Err keeps reporting the first error.
type decoder struct {
	kind  Kind
	tuple sqldump.Tuple
	pos   []int
	err   error
}

func newDecoder(kind Kind, layout Layout, t sqldump.Tuple) (decoder, error) {
	d := decoder{kind: kind, tuple: t}
	candidates := shapesFor(kind, layout)
	for _, s := range candidates {
		if s.arity == t.Len() {
			d.pos = s.pos
			return d, nil
		}
	}
	want := make([]string, len(candidates))
	for i, s := range candidates {
		want[i] = strconv.Itoa(s.arity)
	}
	return d, &DecodeError{
		Table:    kind.String(),
		Position: -1,
		Tuple:    t.Index,
		Offset:   t.Offset,
		Err:      ErrArity,
		Msg:      "expected " + strings.Join(want, " or ") + " fields, got " + strconv.Itoa(t.Len()),
	}
}

func (d *decoder) value(field int) sqldump.Value {
	return d.tuple.Values[d.pos[field]]
}

func (d *decoder) fail(field int, sentinel error, msg string) {
	if d.err != nil {
		return
	}
	v := d.value(field)
	d.err = &DecodeError{
		Table:    d.kind.String(),
		Field:    kindInfo[d.kind].header[field],
		Position: d.pos[field],
		Tuple:    d.tuple.Index,
		Offset:   d.tuple.Offset,
		Err:      sentinel,
		Msg:      msg + ", got " + v.Kind.String() + " " + v.String(),
	}
}

// expect reports whether the field has the wanted kind, failing otherwise.
func (d *decoder) expect(field int, kind sqldump.ValueKind) bool {
	if d.err != nil {
		return false
	}
	if d.value(field).Kind != kind {
		d.fail(field, ErrFieldKind, "expected "+kind.String())
		return false
	}
	return true
}

// id reads a non-negative integer identifier.
func (d *decoder) id(field int) uint64 {
	if !d.expect(field, sqldump.Int) {
		return 0
	}
	v := d.value(field).Int
	if v < 0 {
		d.fail(field, ErrFieldRange, "expected non-negative integer")
		return 0
	}
	return uint64(v)
}

func (d *decoder) namespace(field int) int32 {
	if !d.expect(field, sqldump.Int) {
		return 0
	}
	v := d.value(field).Int
	if v < 0 || v > math.MaxInt32 {
		d.fail(field, ErrFieldRange, "expected namespace in [0, 2147483647]")
		return 0
	}
	return int32(v)
}

func (d *decoder) count(field int) int64 {
	if !d.expect(field, sqldump.Int) {
		return 0
	}
	return d.value(field).Int
}

func (d *decoder) str(field int) string {
	if !d.expect(field, sqldump.String) {
		return ""
	}
	return d.value(field).Str.String()
}

// optStr reads a nullable string; NULL reads as "".
func (d *decoder) optStr(field int) string {
	if d.err != nil {
		return ""
	}
	switch v := d.value(field); v.Kind {
	case sqldump.Null:
		return ""
	case sqldump.String:
		return v.Str.String()
	}
	d.fail(field, ErrFieldKind, "expected string or NULL")
	return ""
}

// boolean reads TRUE/FALSE or the integers 0 and 1.
func (d *decoder) boolean(field int) bool {
	if d.err != nil {
		return false
	}
	switch v := d.value(field); v.Kind {
	case sqldump.Bool:
		return v.Bool
	case sqldump.Int:
		switch v.Int {
		case 0:
			return false
		case 1:
			return true
		}
		d.fail(field, ErrFieldRange, "expected 0 or 1")
		return false
	}
	d.fail(field, ErrFieldKind, "expected boolean")
	return false
}

func (d *decoder) pageType(field int) PageType {
	if !d.expect(field, sqldump.String) {
		return 0
	}
	t, ok := parsePageType(d.value(field).Str.Bytes())
	if !ok {
		d.fail(field, ErrEnum, "expected one of page, subcat, file")
	}
	return t
}

// DecodeLanguageLink decodes a langlinks tuple (ll_from, ll_lang, ll_title).
func DecodeLanguageLink(t sqldump.Tuple, layout Layout) (LanguageLink, error) {
	d, err := newDecoder(LangLinks, layout, t)
	if err != nil {
		return LanguageLink{}, err
	}
	l := LanguageLink{
		From:  d.id(0),
		Lang:  d.str(1),
		Title: d.str(2),
	}
	if d.err != nil {
		return LanguageLink{}, d.err
	}
	return l, nil
}

// DecodeInterwikiLink decodes an iwlinks tuple (iwl_from, iwl_prefix, iwl_title).
func DecodeInterwikiLink(t sqldump.Tuple, layout Layout) (InterwikiLink, error) {
	d, err := newDecoder(InterwikiLinks, layout, t)
	if err != nil {
		return InterwikiLink{}, err
	}
	l := InterwikiLink{
		From:   d.id(0),
		Prefix: d.str(1),
		Title:  d.str(2),
	}
	if d.err != nil {
		return InterwikiLink{}, d.err
	}
	return l, nil
}

// DecodeCategory decodes a category tuple (cat_id, cat_title, cat_pages,
// cat_subcats, cat_files).
func DecodeCategory(t sqldump.Tuple, layout Layout) (Category, error) {
	d, err := newDecoder(Categories, layout, t)
	if err != nil {
		return Category{}, err
	}
	c := Category{
		ID:      d.id(0),
		Title:   d.str(1),
		Pages:   d.count(2),
		Subcats: d.count(3),
		Files:   d.count(4),
	}
	if d.err != nil {
		return Category{}, d.err
	}
	return c, nil
}

// DecodeCategoryLink decodes a categorylinks tuple.
func DecodeCategoryLink(t sqldump.Tuple, layout Layout) (CategoryLink, error) {
	d, err := newDecoder(CategoryLinks, layout, t)
	if err != nil {
		return CategoryLink{}, err
	}
	l := CategoryLink{
		From:      d.id(0),
		To:        d.str(1),
		Collation: d.str(2),
		Type:      d.pageType(3),
	}
	if d.err != nil {
		return CategoryLink{}, d.err
	}
	return l, nil
}

// DecodePage decodes a page tuple.
func DecodePage(t sqldump.Tuple, layout Layout) (Page, error) {
	d, err := newDecoder(Pages, layout, t)
	if err != nil {
		return Page{}, err
	}
	p := Page{
		ID:         d.id(0),
		Namespace:  d.namespace(1),
		Title:      d.str(2),
		IsRedirect: d.boolean(3),
		Lang:       d.optStr(4),
	}
	if d.err != nil {
		return Page{}, d.err
	}
	return p, nil
}

// Decode decodes t as a row of the given kind.
func Decode(kind Kind, layout Layout, t sqldump.Tuple) (Record, error) {
	var (
		rec Record
		err error
	)
	switch kind {
	case LangLinks:
		rec, err = DecodeLanguageLink(t, layout)
	case InterwikiLinks:
		rec, err = DecodeInterwikiLink(t, layout)
	case Categories:
		rec, err = DecodeCategory(t, layout)
	case CategoryLinks:
		rec, err = DecodeCategoryLink(t, layout)
	case Pages:
		rec, err = DecodePage(t, layout)
	default:
		return nil, errors.Wrapf(ErrUnknownKind, "schemas: decoding %v", kind)
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}
