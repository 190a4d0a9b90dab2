package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
)

var sqlitePragmas = []string{"foreign_keys(1)", "busy_timeout(5000)", "journal_mode(WAL)"}

// Open connects to the database behind dsn and sizes the pool for driver.
func Open(driver, dsn string) (*sqlx.DB, error) {
	switch driver {
	case "mysql":
		db, err := sqlx.Open("mysql", dsn)
		if err != nil {
			return nil, err
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
		return db, nil
	case "sqlite":
		db, err := sqlx.Open("sqlite", SQLiteDSN(dsn))
		if err != nil {
			return nil, err
		}
		// one writer at a time; sharing a single connection avoids SQLITE_BUSY
		db.SetMaxOpenConns(1)
		return db, nil
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}
}

// SQLiteDSN adds the pragmas the store relies on unless dsn already sets them.
func SQLiteDSN(dsn string) string {
	for _, p := range sqlitePragmas {
		name := p[:strings.Index(p, "(")]
		if strings.Contains(dsn, "_pragma="+name) {
			continue
		}
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		dsn += sep + "_pragma=" + p
	}
	return dsn
}
