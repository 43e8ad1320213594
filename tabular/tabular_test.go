package tabular

import (
	"bufio"
	"bytes"
	"database/sql"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"badc0de.net/pkg/go-wikisql/schemas"
	"badc0de.net/pkg/go-wikisql/ttesting"
)

var pages = []schemas.Record{
	schemas.Page{ID: 7, Namespace: 0, Title: "Main_Page", IsRedirect: true},
	schemas.Page{ID: 8, Namespace: 14, Title: `Quote"d, with comma`, Lang: "en"},
	schemas.Page{ID: 9, Namespace: 0, Title: "Line\nbreak\tand tab"},
}

func writeAll(t *testing.T, w Writer, recs []schemas.Record) {
	t.Helper()
	for _, rec := range recs {
		require.NoError(t, w.Write(rec))
	}
	require.NoError(t, w.Close())
}

func TestCSVPageLine(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, CSV, schemas.Pages)
	require.NoError(t, err)
	writeAll(t, w, pages[:1])
	ttesting.AssertEqualString(t, "output", buf.String(), "id,namespace,title,is_redirect,lang\n7,0,Main_Page,true,\n")
}

func TestDelimitedRoundTrip(t *testing.T) {
	for _, f := range []struct {
		format Format
		comma  rune
	}{{CSV, ','}, {TSV, '\t'}} {
		t.Run(f.format.String(), func(t *testing.T) {
			var buf bytes.Buffer
			w, err := NewWriter(&buf, f.format, schemas.Pages)
			require.NoError(t, err)
			writeAll(t, w, pages)

			r := csv.NewReader(&buf)
			r.Comma = f.comma
			lines, err := r.ReadAll()
			require.NoError(t, err)
			require.Len(t, lines, len(pages)+1)
			ttesting.AssertEqualStrings(t, "header", lines[0], schemas.Pages.Header())
			for i, rec := range pages {
				ttesting.AssertEqualStrings(t, rec.(schemas.Page).Title, lines[i+1], rec.AppendFields(nil))
			}
		})
	}
}

func TestJSONL(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, JSONL, schemas.CategoryLinks)
	require.NoError(t, err)
	writeAll(t, w, []schemas.Record{
		schemas.CategoryLink{From: 5, To: "Animals", Collation: "uca-default", Type: schemas.PageTypeSubcat},
		schemas.CategoryLink{From: 6, To: "R&B", Collation: "uppercase", Type: schemas.PageTypeFile},
	})

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	ttesting.AssertEqualString(t, "first line", lines[0], `{"from":5,"to":"Animals","collation":"uca-default","type":"subcat"}`)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &got))
	require.Equal(t, map[string]interface{}{
		"from":      float64(6),
		"to":        "R&B",
		"collation": "uppercase",
		"type":      "file",
	}, got)
}

func TestKindMismatch(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, CSV, schemas.LangLinks)
	require.NoError(t, err)
	err = w.Write(schemas.Page{ID: 1})
	require.True(t, errors.Is(err, ErrKindMismatch), "got %v", err)
}

func TestNewWriterSQLite(t *testing.T) {
	_, err := NewWriter(&bytes.Buffer{}, SQLite, schemas.Pages)
	require.Error(t, err)
}

func TestCreateOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer than the output\n"), 0644))

	w, err := Create(path, CSV, schemas.LangLinks)
	require.NoError(t, err)
	writeAll(t, w, []schemas.Record{schemas.LanguageLink{From: 1, Lang: "de", Title: "Hauptseite"}})

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	ttesting.AssertEqualString(t, "content", string(got), "from,lang,title\n1,de,Hauptseite\n")
}

func TestCreateUnwritable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.csv")
	_, err := Create(path, CSV, schemas.Pages)
	require.Error(t, err)
	require.Contains(t, err.Error(), path)
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "page.sqlite")
	require.NoError(t, os.WriteFile(path, []byte("not a database"), 0644))

	w, err := Create(path, SQLite, schemas.Pages)
	require.NoError(t, err)
	writeAll(t, w, pages)

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM "page"`).Scan(&n))
	ttesting.AssertEqualInt(t, "rows", n, len(pages))

	rows, err := db.Query(`SELECT "id", "namespace", "title", "is_redirect", "lang" FROM "page" ORDER BY rowid`)
	require.NoError(t, err)
	defer rows.Close()
	var got []schemas.Record
	for rows.Next() {
		var p schemas.Page
		var redirect int
		require.NoError(t, rows.Scan(&p.ID, &p.Namespace, &p.Title, &redirect, &p.Lang))
		p.IsRedirect = redirect != 0
		got = append(got, p)
	}
	require.NoError(t, rows.Err())
	require.Equal(t, pages, got)
}

func TestSQLiteStatements(t *testing.T) {
	create, insert := sqliteStatements(schemas.CategoryLinks)
	ttesting.AssertEqualString(t, "create", create, `CREATE TABLE "categorylinks" ("from" INTEGER NOT NULL, "to" TEXT NOT NULL, "collation" TEXT NOT NULL, "type" TEXT NOT NULL)`)
	ttesting.AssertEqualString(t, "insert", insert, `INSERT INTO "categorylinks" ("from", "to", "collation", "type") VALUES (?, ?, ?, ?)`)
}

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 2)
	for i := 0; i < 5; i++ {
		p.Add()
	}
	p.Done("out.csv")
	ttesting.AssertEqualInt(t, "rows", p.Rows(), 5)

	var lines []string
	sc := bufio.NewScanner(&buf)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	ttesting.AssertEqualStrings(t, "lines", lines, []string{"wrote 2 rows", "wrote 4 rows", "done: out.csv"})
}

func TestProgressDisabled(t *testing.T) {
	var buf bytes.Buffer
	p := NewProgress(&buf, 0)
	p.Add()
	ttesting.AssertEqualString(t, "output", buf.String(), "")
}

func TestFormats(t *testing.T) {
	for _, f := range []Format{CSV, TSV, JSONL, SQLite} {
		parsed, err := ParseFormat(f.String())
		require.NoError(t, err)
		require.Equal(t, f, parsed)
		require.True(t, strings.HasPrefix(f.Extension(), "."))
	}
	ttesting.AssertEqualString(t, "csv extension", CSV.Extension(), ".csv")
	_, err := ParseFormat("xlsx")
	require.Error(t, err)
}
