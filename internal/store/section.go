package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/meditation-api/internal/domain"
)

// SectionStore defines the interface for section persistence.
// It performs no ownership checks: callers resolve the parent script first.
type SectionStore interface {
	// GetByID retrieves a section by its ID.
	// Returns ErrSectionNotFound if the section does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Section, error)

	// ListByScript returns all sections of scriptID in store order.
	ListByScript(ctx context.Context, scriptID uuid.UUID) ([]*domain.Section, error)

	// Upsert inserts section, or overwrites the row with the same ID.
	Upsert(ctx context.Context, section *domain.Section) error

	// UpdateFields overwrites order and body and any provided optional fields.
	// Returns ErrSectionNotFound if the section does not exist.
	UpdateFields(ctx context.Context, id uuid.UUID, update domain.SectionUpdate) error

	// Delete removes the section with id.
	// Returns ErrSectionNotFound if the section does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
