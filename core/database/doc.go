// Package database opens the SQL database backing the sql storage medium.
//
// It wraps GORM and supports MySQL for shared deployments and SQLite for single
// node setups and tests.
//
// # Schema Inspection
//
// GetTableColumns reads column definitions through SHOW COLUMNS on MySQL and
// PRAGMA table_info on SQLite. The storage medium uses it to verify its table
// after migrating.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//
//	columns, err := database.GetTableColumns(db, "storage_entries")
package database
