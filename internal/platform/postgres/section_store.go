package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/phrazzld/meditation-api/internal/domain"
	"github.com/phrazzld/meditation-api/internal/platform/logger"
	"github.com/phrazzld/meditation-api/internal/store"
)

const sectionColumns = `id, script_id, order_index, section_type, title, body,
	suggested_duration_minutes, created_at`

// PostgresSectionStore implements the store.SectionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSectionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSectionStore creates a new PostgreSQL implementation of the SectionStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresSectionStore(db store.DBTX, logger *slog.Logger) *PostgresSectionStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSectionStore{
		db:     db,
		logger: logger.With(slog.String("component", "section_store")),
	}
}

// Ensure PostgresSectionStore implements store.SectionStore interface
var _ store.SectionStore = (*PostgresSectionStore)(nil)

// GetByID implements store.SectionStore.GetByID
func (s *PostgresSectionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Section, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + sectionColumns + ` FROM script_sections WHERE id = $1`

	section, err := scanSection(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("section not found", slog.String("section_id", id.String()))
			return nil, store.ErrSectionNotFound
		}
		log.Error("failed to get section",
			slog.String("error", err.Error()),
			slog.String("section_id", id.String()))
		return nil, wrapError("section", "get", err)
	}

	return section, nil
}

// ListByScript implements store.SectionStore.ListByScript
// Rows come back in insertion order; ordering by order_index is the
// service's job.
func (s *PostgresSectionStore) ListByScript(ctx context.Context, scriptID uuid.UUID) ([]*domain.Section, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + sectionColumns + ` FROM script_sections
		WHERE script_id = $1
		ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, scriptID)
	if err != nil {
		log.Error("failed to query sections",
			slog.String("error", err.Error()),
			slog.String("script_id", scriptID.String()))
		return nil, wrapError("section", "list", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	sections := []*domain.Section{}
	for rows.Next() {
		section, err := scanSection(rows)
		if err != nil {
			log.Error("failed to scan section row", slog.String("error", err.Error()))
			return nil, err
		}
		sections = append(sections, section)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	return sections, nil
}

// Upsert implements store.SectionStore.Upsert
// created_at and script_id are kept on conflict.
func (s *PostgresSectionStore) Upsert(ctx context.Context, section *domain.Section) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := section.Validate(); err != nil {
		log.Warn("section validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("section_id", section.ID.String()))
		return err
	}

	query := `INSERT INTO script_sections (` + sectionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			order_index = EXCLUDED.order_index,
			section_type = EXCLUDED.section_type,
			title = EXCLUDED.title,
			body = EXCLUDED.body,
			suggested_duration_minutes = EXCLUDED.suggested_duration_minutes`

	_, err := s.db.ExecContext(ctx, query,
		section.ID,
		section.ScriptID,
		section.OrderIndex,
		section.SectionType,
		section.Title,
		section.Body,
		section.SuggestedDurationMinutes,
		section.CreatedAt,
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			log.Warn("section references a missing script",
				slog.String("section_id", section.ID.String()),
				slog.String("script_id", section.ScriptID.String()))
			return fmt.Errorf("%w: script %s not found", store.ErrInvalidEntity, section.ScriptID)
		}
		log.Error("failed to upsert section",
			slog.String("error", err.Error()),
			slog.String("section_id", section.ID.String()))
		return wrapError("section", "upsert", err)
	}

	log.Info("section saved successfully",
		slog.String("section_id", section.ID.String()),
		slog.String("script_id", section.ScriptID.String()),
		slog.Int("order_index", section.OrderIndex))
	return nil
}

// UpdateFields implements store.SectionStore.UpdateFields
func (s *PostgresSectionStore) UpdateFields(ctx context.Context, id uuid.UUID, update domain.SectionUpdate) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := update.Validate(); err != nil {
		log.Warn("section update validation failed",
			slog.String("error", err.Error()),
			slog.String("section_id", id.String()))
		return err
	}

	sets := []string{"order_index = $1", "body = $2"}
	args := []any{update.OrderIndex, update.Body}
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}
	if update.SectionType.Set {
		set("section_type", update.SectionType.Ptr())
	}
	if update.Title.Set {
		set("title", update.Title.Ptr())
	}
	if update.SuggestedDurationMinutes.Set {
		set("suggested_duration_minutes", update.SuggestedDurationMinutes.Ptr())
	}

	args = append(args, id)
	query := fmt.Sprintf(`UPDATE script_sections SET %s WHERE id = $%d`,
		strings.Join(sets, ", "), len(args))

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update section",
			slog.String("error", err.Error()),
			slog.String("section_id", id.String()))
		return wrapError("section", "update", err)
	}

	if err := CheckRowsAffected(result, store.ErrSectionNotFound); err != nil {
		return err
	}

	log.Info("section updated successfully",
		slog.String("section_id", id.String()),
		slog.Int("order_index", update.OrderIndex))
	return nil
}

// Delete implements store.SectionStore.Delete
func (s *PostgresSectionStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM script_sections WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete section",
			slog.String("error", err.Error()),
			slog.String("section_id", id.String()))
		return wrapError("section", "delete", err)
	}

	if err := CheckRowsAffected(result, store.ErrSectionNotFound); err != nil {
		return err
	}

	log.Info("section deleted successfully", slog.String("section_id", id.String()))
	return nil
}

func scanSection(row rowScanner) (*domain.Section, error) {
	var section domain.Section
	err := row.Scan(
		&section.ID,
		&section.ScriptID,
		&section.OrderIndex,
		&section.SectionType,
		&section.Title,
		&section.Body,
		&section.SuggestedDurationMinutes,
		&section.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	section.CreatedAt = section.CreatedAt.UTC()
	return &section, nil
}
