package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"
)

// FS holds one directory of migrations per supported driver.
//
//go:embed mysql/*.sql sqlite/*.sql
var FS embed.FS

func Up(driver, dsn string) error {
	m, err := migrator(driver, dsn)
	if err != nil {
		return err
	}
	defer m.Close()
	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

func Down(driver, dsn string) error {
	m, err := migrator(driver, dsn)
	if err != nil {
		return err
	}
	defer m.Close()
	err = m.Down()
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

func migrator(driver, dsn string) (*migrate.Migrate, error) {
	switch driver {
	case "mysql", "sqlite":
	default:
		return nil, fmt.Errorf("unsupported driver: %s", driver)
	}
	src, err := iofs.New(FS, driver)
	if err != nil {
		return nil, fmt.Errorf("create migration source: %w", err)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	var dbDriver database.Driver
	if driver == "mysql" {
		dbDriver, err = migratemysql.WithInstance(db, &migratemysql.Config{})
	} else {
		dbDriver, err = migratesqlite.WithInstance(db, &migratesqlite.Config{})
	}
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, driver, dbDriver)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return m, nil
}
