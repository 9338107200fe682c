package specification

import (
	"fmt"
	"strings"

	"workspace-be/pkg/search"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FullTextMatch matches a generated tsvector column against a tsquery built
// with the 'simple' configuration.
type FullTextMatch struct {
	Column  string
	TSQuery string
}

func (s FullTextMatch) Apply(db *gorm.DB) *gorm.DB {
	return db.Where(fmt.Sprintf("%s @@ to_tsquery('simple', ?)", s.Column), s.TSQuery)
}

// SubstringMatch matches a pattern against any of the fields, ignoring case.
// Postgres uses ILIKE; SQLite's LIKE is already case-insensitive. Pattern must
// be escaped with search.LikeEscape.
type SubstringMatch struct {
	Fields  []string
	Pattern string
}

func (s SubstringMatch) Apply(db *gorm.DB) *gorm.DB {
	op := "LIKE"
	if db.Dialector.Name() == "postgres" {
		op = "ILIKE"
	}
	clauses := make([]string, len(s.Fields))
	args := make([]interface{}, len(s.Fields))
	for i, f := range s.Fields {
		clauses[i] = fmt.Sprintf("%s %s ? ESCAPE '%s'", f, op, search.LikeEscape)
		args[i] = s.Pattern
	}
	return db.Where("("+strings.Join(clauses, " OR ")+")", args...)
}

// InWorkspace scopes a search lookup when a workspace is given; column is the
// qualified workspace_id column of the lookup's driving table.
type InWorkspace struct {
	Column      string
	WorkspaceID *uuid.UUID
}

func (s InWorkspace) Apply(db *gorm.DB) *gorm.DB {
	if s.WorkspaceID == nil {
		return db
	}
	return db.Where(fmt.Sprintf("%s = ?", s.Column), *s.WorkspaceID)
}
