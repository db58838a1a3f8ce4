// Package sqlite stores notes and users in SQLite. It backs local runs and
// the test suites.
package sqlite

import (
	"errors"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/Dmitry-Bulhin/ya-note/pkg/sqlitedb"
)

type Repo struct {
	db  sqlitedb.Tx
	now func() time.Time
}

func New(db sqlitedb.Tx) *Repo {
	return &Repo{db: db, now: time.Now}
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

// uniqueViolation reports whether err is a UNIQUE constraint failure on the
// given "table.column".
func uniqueViolation(err error, column string) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}

	code := sqliteErr.Code()
	if code != sqlite3lib.SQLITE_CONSTRAINT && code != sqlite3lib.SQLITE_CONSTRAINT_UNIQUE {
		return false
	}

	return strings.Contains(sqliteErr.Error(), column)
}
