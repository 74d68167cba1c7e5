// Package models holds the gorm models persisted by the services.
package models

import (
	"github.com/google/uuid"
)

// newID fills an unset primary key. Postgres and SQLite both store the
// value as text, so ids are generated here rather than by the database.
func newID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

// All lists every model for auto-migration.
func All() []interface{} {
	return []interface{}{
		&Feedback{},
		&PromptLog{},
		&ChatLog{},
		&RecipeLog{},
	}
}
