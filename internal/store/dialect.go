package store

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const (
	mysqlDupEntry = 1062
)

type dialect struct {
	name string
	// lockShared turns a SELECT into a locking read so it sees rows
	// committed after the transaction's snapshot was taken.
	lockShared string
}

func dialectFor(driver string) dialect {
	switch driver {
	case "mysql":
		return dialect{name: "mysql", lockShared: " LOCK IN SHARE MODE"}
	default:
		// SQLite serializes writers, so a plain read already sees the winner.
		return dialect{name: driver}
	}
}

// isDuplicate reports whether err is a unique or primary key violation.
func isDuplicate(err error) bool {
	if err == nil {
		return false
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDupEntry
	}
	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}
	return false
}
