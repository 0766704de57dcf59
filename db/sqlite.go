package db

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

// ConnectSQLite opens the database at path and stores it in DB. SQLite
// allows a single writer, so the pool is capped at one connection.
func ConnectSQLite(path string) error {
	var err error
	DB, err = sql.Open("sqlite", path)
	if err != nil {
		return err
	}

	DB.SetMaxOpenConns(1)

	return DB.Ping()
}
