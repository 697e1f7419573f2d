package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/meditation-api/internal/domain"
)

// ScriptStore defines the interface for script persistence. Every read or
// write is scoped by the owning user in the same predicate as the id.
type ScriptStore interface {
	// Create saves a new script to the store.
	// Returns validation errors from the domain Script if data is invalid.
	Create(ctx context.Context, script *domain.Script) error

	// GetOwned retrieves the script with id owned by ownerID.
	// Returns ErrScriptNotFound if it does not exist or belongs to another user.
	GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*domain.Script, error)

	// UpdateFields writes the provided fields of update and refreshes
	// updated_at. Returns ErrScriptNotFound if no owned row matched.
	UpdateFields(ctx context.Context, id, ownerID uuid.UUID, update domain.ScriptUpdate) error

	// ListOwned returns every script of ownerID passing filter, in
	// creation order. Returns an empty slice when nothing matches.
	ListOwned(ctx context.Context, ownerID uuid.UUID, filter domain.ScriptFilter) ([]*domain.Script, error)
}
