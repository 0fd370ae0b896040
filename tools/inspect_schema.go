//go:build ignore

// inspect_schema prints the DDL that AutoMigrate produces on the embedded store.
// Run with: go run tools/inspect_schema.go
package main

import (
	"fmt"
	"os"

	"github.com/glebarez/sqlite"
	"github.com/localnerve/rentdb/internal/database"
	"gorm.io/gorm"
)

func main() {
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := database.AutoMigrate(db); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	var tables []string
	db.Raw("SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name").Scan(&tables)

	for _, table := range tables {
		fmt.Printf("\n=== Table: %s ===\n", table)

		var ddl string
		db.Raw("SELECT sql FROM sqlite_master WHERE type = 'table' AND name = ?", table).Scan(&ddl)
		fmt.Println(ddl)

		var indexes []string
		db.Raw("SELECT sql FROM sqlite_master WHERE type = 'index' AND tbl_name = ? AND sql IS NOT NULL", table).Scan(&indexes)
		for _, idx := range indexes {
			fmt.Println(idx)
		}
	}
}
