// Package settings implements the application settings domain.
// Settings are named key/value records with service-layer name uniqueness.
package settings

import (
	"time"

	"github.com/google/uuid"
)

// Setting represents a named configuration value. Names are unique
// across records.
type Setting struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	Value     string     `json:"value"`
	CreatedBy string     `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedBy *string    `json:"updated_by"`
	UpdatedAt *time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to create a new setting.
type CreateCommand struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// UpdateCommand carries a partial update for an existing setting.
// Nil fields are left unchanged.
type UpdateCommand struct {
	Name  *string `json:"name,omitempty"`
	Value *string `json:"value,omitempty"`
}

// Empty reports whether the command carries no changes.
func (c UpdateCommand) Empty() bool {
	return c.Name == nil && c.Value == nil
}
