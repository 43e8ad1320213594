package tabular

import (
	"database/sql"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"badc0de.net/pkg/go-wikisql/schemas"
)

// sqliteBatch is the number of rows inserted per transaction.
const sqliteBatch = 100000

var sqliteTypes = [...][]string{
	schemas.LangLinks:      {"INTEGER NOT NULL", "TEXT NOT NULL", "TEXT NOT NULL"},
	schemas.InterwikiLinks: {"INTEGER NOT NULL", "TEXT NOT NULL", "TEXT NOT NULL"},
	schemas.Categories:     {"INTEGER NOT NULL", "TEXT NOT NULL", "INTEGER NOT NULL", "INTEGER NOT NULL", "INTEGER NOT NULL"},
	schemas.CategoryLinks:  {"INTEGER NOT NULL", "TEXT NOT NULL", "TEXT NOT NULL", "TEXT NOT NULL"},
	schemas.Pages:          {"INTEGER NOT NULL", "INTEGER NOT NULL", "TEXT NOT NULL", "INTEGER NOT NULL", "TEXT NOT NULL"},
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// sqliteStatements returns the CREATE TABLE and INSERT statements for kind.
func sqliteStatements(kind schemas.Kind) (create, insert string) {
	header := kind.Header()
	cols := make([]string, len(header))
	names := make([]string, len(header))
	marks := make([]string, len(header))
	for i, h := range header {
		cols[i] = quoteIdent(h) + " " + sqliteTypes[kind][i]
		names[i] = quoteIdent(h)
		marks[i] = "?"
	}
	table := quoteIdent(kind.Table())
	create = "CREATE TABLE " + table + " (" + strings.Join(cols, ", ") + ")"
	insert = "INSERT INTO " + table + " (" + strings.Join(names, ", ") + ") VALUES (" + strings.Join(marks, ", ") + ")"
	return create, insert
}

// sqliteWriter inserts records into a fresh SQLite database, one table named
// after the dump table.
type sqliteWriter struct {
	kind   schemas.Kind
	path   string
	db     *sql.DB
	tx     *sql.Tx
	stmt   *sql.Stmt
	insert string
	args   []interface{}
	rows   int
}

func createSQLite(path string, kind schemas.Kind) (*sqliteWriter, error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "tabular: removing old %q", path)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrapf(err, "tabular: opening sqlite %q", path)
	}
	db.SetMaxOpenConns(1)

	create, insert := sqliteStatements(kind)
	for _, q := range []string{"PRAGMA journal_mode=OFF", "PRAGMA synchronous=OFF", create} {
		if _, err := db.Exec(q); err != nil {
			db.Close()
			return nil, errors.Wrapf(err, "tabular: %s on %q", q, path)
		}
	}
	glog.V(1).Infof("tabular: created %q with %s", path, create)

	w := &sqliteWriter{
		kind:   kind,
		path:   path,
		db:     db,
		insert: insert,
		args:   make([]interface{}, 0, len(kind.Header())),
	}
	if err := w.begin(); err != nil {
		db.Close()
		return nil, err
	}
	return w, nil
}

func (w *sqliteWriter) begin() error {
	tx, err := w.db.Begin()
	if err != nil {
		return errors.Wrapf(err, "tabular: beginning transaction on %q", w.path)
	}
	stmt, err := tx.Prepare(w.insert)
	if err != nil {
		tx.Rollback()
		return errors.Wrapf(err, "tabular: preparing insert on %q", w.path)
	}
	w.tx, w.stmt = tx, stmt
	return nil
}

func (w *sqliteWriter) commit() error {
	w.stmt.Close()
	err := w.tx.Commit()
	w.tx, w.stmt = nil, nil
	if err != nil {
		return errors.Wrapf(err, "tabular: committing to %q", w.path)
	}
	return nil
}

func (w *sqliteWriter) Write(rec schemas.Record) error {
	if err := checkKind(w.kind, rec); err != nil {
		return err
	}
	if w.tx == nil {
		return errors.Errorf("tabular: write to closed sqlite writer for %q", w.path)
	}
	w.args = rec.AppendValues(w.args[:0])
	if _, err := w.stmt.Exec(w.args...); err != nil {
		return errors.Wrapf(err, "tabular: inserting into %q", w.path)
	}
	w.rows++
	if w.rows%sqliteBatch == 0 {
		if err := w.commit(); err != nil {
			return err
		}
		return w.begin()
	}
	return nil
}

func (w *sqliteWriter) Close() error {
	var err error
	if w.tx != nil {
		err = w.commit()
	}
	if cerr := w.db.Close(); err == nil && cerr != nil {
		err = errors.Wrapf(cerr, "tabular: closing %q", w.path)
	}
	return err
}
