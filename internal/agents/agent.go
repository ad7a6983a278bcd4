// Package agents implements the review agent administration domain.
// It provides types, data access, and HTTP handlers for managing the
// guideline prompt records that drive document review tasks.
package agents

import (
	"time"

	"github.com/google/uuid"
)

// Agent represents a named guideline prompt record for a review type.
// The (Name, Type) pair is unique across records.
type Agent struct {
	ID              uuid.UUID  `json:"id"`
	Name            string     `json:"name"`
	Type            string     `json:"type"`
	GuidelinePrompt string     `json:"guideline_prompt"`
	CreatedBy       string     `json:"created_by"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedBy       *string    `json:"updated_by"`
	UpdatedAt       *time.Time `json:"updated_at"`
}

// CreateCommand carries the data needed to create a new agent.
type CreateCommand struct {
	Name            string `json:"name"`
	Type            string `json:"type"`
	GuidelinePrompt string `json:"guideline_prompt"`
}

// UpdateCommand carries a partial update for an existing agent.
// Nil fields are left unchanged.
type UpdateCommand struct {
	Name            *string `json:"name,omitempty"`
	Type            *string `json:"type,omitempty"`
	GuidelinePrompt *string `json:"guideline_prompt,omitempty"`
}

// Empty reports whether the command carries no changes.
func (c UpdateCommand) Empty() bool {
	return c.Name == nil && c.Type == nil && c.GuidelinePrompt == nil
}
