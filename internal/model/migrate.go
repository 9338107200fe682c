package model

import (
	"fmt"

	"gorm.io/gorm"
)

// SearchVectorColumn is the generated tsvector column backing indexed search.
const SearchVectorColumn = "search_tsv"

func All() []interface{} {
	return []interface{}{
		&Workspace{},
		&Table{},
		&TableColumn{},
		&TableRow{},
		&TableCell{},
		&DocsPage{},
		&DocsBlock{},
		&Calendar{},
		&Event{},
		&File{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}

// FullTextStatements adds the generated search vectors and their GIN indexes.
// Postgres only, and idempotent.
func FullTextStatements() []string {
	vector := func(table, expr string) []string {
		return []string{
			fmt.Sprintf(`ALTER TABLE %s ADD COLUMN IF NOT EXISTS %s tsvector GENERATED ALWAYS AS (to_tsvector('simple', %s)) STORED;`, table, SearchVectorColumn, expr),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s USING GIN (%s);`, table, SearchVectorColumn, table, SearchVectorColumn),
		}
	}

	var stmts []string
	stmts = append(stmts, vector("docs_pages", "coalesce(title, '')")...)
	stmts = append(stmts, vector("docs_blocks", "coalesce(search_text, '')")...)
	stmts = append(stmts, vector("events", "coalesce(title, '') || ' ' || coalesce(description, '')")...)
	stmts = append(stmts, vector("tables", "coalesce(name, '')")...)
	// the default parser keeps "report.pdf" as one file token, so split on punctuation first
	stmts = append(stmts, vector("files", "regexp_replace(coalesce(filename, ''), '[^[:alnum:]]+', ' ', 'g')")...)
	return stmts
}

// FullTextTables lists the tables that carry a search vector once migrated.
func FullTextTables() []string {
	return []string{"docs_pages", "docs_blocks", "events", "tables", "files"}
}
