// Package store exports a cleaned table into a SQLite file for ad-hoc SQL
// exploration.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/miku/cordex/table"
)

// integerColumns get an INTEGER affinity, everything else is TEXT.
var integerColumns = map[string]bool{
	"year":                true,
	"abstract_word_count": true,
	"title_word_count":    true,
}

// WriteSQLite writes all rows into a fresh metadata table at path. An
// existing file is replaced.
func WriteSQLite(path string, t *table.Table) error {
	if len(t.Columns) == 0 {
		return fmt.Errorf("no columns to export")
	}
	_ = os.Remove(path)
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	defs := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		affinity := "TEXT"
		if integerColumns[c] {
			affinity = "INTEGER"
		}
		defs = append(defs, fmt.Sprintf("%q %s", c, affinity))
	}
	ddl := fmt.Sprintf("CREATE TABLE metadata (%s)", strings.Join(defs, ", "))
	if _, err := db.Exec(ddl); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return err
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(t.Columns)), ",")
	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO metadata VALUES (%s)", placeholders))
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	for _, row := range t.Rows {
		args := make([]any, len(row))
		for i, v := range row {
			if v == "" && integerColumns[t.Columns[i]] {
				args[i] = nil
				continue
			}
			args[i] = v
		}
		if _, err := stmt.Exec(args...); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert: %w", err)
		}
	}
	return tx.Commit()
}
