package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/meditation-api/internal/domain"
	"github.com/phrazzld/meditation-api/internal/platform/logger"
	"github.com/phrazzld/meditation-api/internal/store"
)

const scriptColumns = `id, owner_id, title, description, meditation_type, focus_area,
	difficulty, language, target_duration_minutes, full_script, notes,
	is_favorite, created_at, updated_at`

// PostgresScriptStore implements the store.ScriptStore interface
// using a PostgreSQL database as the storage backend.
type PostgresScriptStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresScriptStore creates a new PostgreSQL implementation of the ScriptStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresScriptStore(db store.DBTX, logger *slog.Logger) *PostgresScriptStore {
	if db == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresScriptStore{
		db:     db,
		logger: logger.With(slog.String("component", "script_store")),
	}
}

// Ensure PostgresScriptStore implements store.ScriptStore interface
var _ store.ScriptStore = (*PostgresScriptStore)(nil)

// Create implements store.ScriptStore.Create
func (s *PostgresScriptStore) Create(ctx context.Context, script *domain.Script) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := script.Validate(); err != nil {
		log.Warn("script validation failed during create",
			slog.String("error", err.Error()),
			slog.String("script_id", script.ID.String()))
		return err
	}

	query := `INSERT INTO scripts (` + scriptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	_, err := s.db.ExecContext(ctx, query,
		script.ID,
		script.OwnerID,
		script.Title,
		script.Description,
		script.MeditationType,
		script.FocusArea,
		script.Difficulty,
		script.Language,
		script.TargetDurationMinutes,
		script.FullScript,
		script.Notes,
		script.IsFavorite,
		script.CreatedAt,
		script.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create script",
			slog.String("error", err.Error()),
			slog.String("script_id", script.ID.String()),
			slog.String("owner_id", script.OwnerID.String()))
		return wrapError("script", "create", err)
	}

	log.Info("script created successfully",
		slog.String("script_id", script.ID.String()),
		slog.String("owner_id", script.OwnerID.String()))
	return nil
}

// GetOwned implements store.ScriptStore.GetOwned
// The owner filter is part of the query predicate, so a foreign script is
// indistinguishable from a missing one.
func (s *PostgresScriptStore) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*domain.Script, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + scriptColumns + ` FROM scripts WHERE id = $1 AND owner_id = $2`

	script, err := scanScript(s.db.QueryRowContext(ctx, query, id, ownerID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("script not found",
				slog.String("script_id", id.String()),
				slog.String("owner_id", ownerID.String()))
			return nil, store.ErrScriptNotFound
		}
		log.Error("failed to get script",
			slog.String("error", err.Error()),
			slog.String("script_id", id.String()))
		return nil, wrapError("script", "get", err)
	}

	return script, nil
}

// UpdateFields implements store.ScriptStore.UpdateFields
// Only provided fields appear in the SET clause. updated_at takes the later
// of its stored value and now.
func (s *PostgresScriptStore) UpdateFields(
	ctx context.Context,
	id, ownerID uuid.UUID,
	update domain.ScriptUpdate,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := update.Validate(); err != nil {
		log.Warn("script update validation failed",
			slog.String("error", err.Error()),
			slog.String("script_id", id.String()))
		return err
	}

	var (
		sets []string
		args []any
	)
	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if update.Title.Set {
		set("title", update.Title.Value)
	}
	if update.Description.Set {
		set("description", update.Description.Ptr())
	}
	if update.MeditationType.Set {
		set("meditation_type", update.MeditationType.Ptr())
	}
	if update.FocusArea.Set {
		set("focus_area", update.FocusArea.Ptr())
	}
	if update.Difficulty.Set {
		set("difficulty", update.Difficulty.Ptr())
	}
	if update.Language.Set {
		set("language", update.Language.Ptr())
	}
	if update.TargetDurationMinutes.Set {
		set("target_duration_minutes", update.TargetDurationMinutes.Ptr())
	}
	if update.FullScript.Set {
		set("full_script", update.FullScript.Ptr())
	}
	if update.Notes.Set {
		set("notes", update.Notes.Ptr())
	}
	if update.IsFavorite.Set {
		set("is_favorite", update.IsFavorite.Value)
	}

	args = append(args, time.Now().UTC())
	sets = append(sets, fmt.Sprintf("updated_at = GREATEST(updated_at, $%d)", len(args)))

	args = append(args, id, ownerID)
	query := fmt.Sprintf(`UPDATE scripts SET %s WHERE id = $%d AND owner_id = $%d`,
		strings.Join(sets, ", "), len(args)-1, len(args))

	result, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to update script",
			slog.String("error", err.Error()),
			slog.String("script_id", id.String()))
		return wrapError("script", "update", err)
	}

	if err := CheckRowsAffected(result, store.ErrScriptNotFound); err != nil {
		if errors.Is(err, store.ErrScriptNotFound) {
			log.Debug("script not found for update", slog.String("script_id", id.String()))
		}
		return err
	}

	log.Info("script updated successfully",
		slog.String("script_id", id.String()),
		slog.Int("fields", len(sets)-1))
	return nil
}

// ListOwned implements store.ScriptStore.ListOwned
func (s *PostgresScriptStore) ListOwned(
	ctx context.Context,
	ownerID uuid.UUID,
	filter domain.ScriptFilter,
) ([]*domain.Script, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	conditions := []string{"owner_id = $1"}
	args := []any{ownerID}
	if filter.FocusArea != nil {
		args = append(args, *filter.FocusArea)
		conditions = append(conditions, fmt.Sprintf("focus_area = $%d", len(args)))
	}
	if filter.IsFavorite != nil {
		args = append(args, *filter.IsFavorite)
		conditions = append(conditions, fmt.Sprintf("is_favorite = $%d", len(args)))
	}

	query := `SELECT ` + scriptColumns + ` FROM scripts WHERE ` +
		strings.Join(conditions, " AND ") + ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query scripts",
			slog.String("error", err.Error()),
			slog.String("owner_id", ownerID.String()))
		return nil, wrapError("script", "list", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	scripts := []*domain.Script{}
	for rows.Next() {
		script, err := scanScript(rows)
		if err != nil {
			log.Error("failed to scan script row", slog.String("error", err.Error()))
			return nil, err
		}
		scripts = append(scripts, script)
	}
	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed scripts",
		slog.String("owner_id", ownerID.String()),
		slog.Int("count", len(scripts)))
	return scripts, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanScript(row rowScanner) (*domain.Script, error) {
	var script domain.Script
	err := row.Scan(
		&script.ID,
		&script.OwnerID,
		&script.Title,
		&script.Description,
		&script.MeditationType,
		&script.FocusArea,
		&script.Difficulty,
		&script.Language,
		&script.TargetDurationMinutes,
		&script.FullScript,
		&script.Notes,
		&script.IsFavorite,
		&script.CreatedAt,
		&script.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	script.CreatedAt = script.CreatedAt.UTC()
	script.UpdatedAt = script.UpdatedAt.UTC()
	return &script, nil
}
