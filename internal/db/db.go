package db

import (
	"database/sql"
	"fmt"
	"net/url"

	_ "modernc.org/sqlite"
)

const memoryPath = ":memory:"

// dsnParams are applied by the driver to every pooled connection. Transactions start with
// BEGIN IMMEDIATE so concurrent writers wait on busy_timeout instead of failing a lock upgrade.
var dsnParams = url.Values{
	"_pragma": {"journal_mode(WAL)", "foreign_keys(1)", "busy_timeout(5000)"},
	"_txlock": {"immediate"},
}

// Open opens a SQLite database, sets recommended pragmas, and validates connectivity.
// An in-memory database is pinned to one connection, since every new connection would see an empty database.
func Open(dbPath string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dbPath+"?"+dsnParams.Encode())
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if dbPath == memoryPath {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	return db, nil
}
