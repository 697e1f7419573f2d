package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/meditation-api/internal/domain"
	"github.com/phrazzld/meditation-api/internal/platform/logger"
	"github.com/phrazzld/meditation-api/internal/store"
)

// Pagination bounds for ListScripts.
const (
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// ScriptService provides the user-scoped script and section operations.
// Every method takes the caller's user ID; uuid.Nil fails with
// ErrUnauthenticated before any store access.
type ScriptService interface {
	// CreateScript stores a new script owned by userID and returns its ID.
	CreateScript(ctx context.Context, userID uuid.UUID, input domain.ScriptInput) (uuid.UUID, error)

	// UpdateScript applies the provided fields of update to the owned script.
	UpdateScript(ctx context.Context, userID, scriptID uuid.UUID, update domain.ScriptUpdate) (uuid.UUID, error)

	// ListScripts returns one page of the caller's scripts matching params.
	ListScripts(ctx context.Context, userID uuid.UUID, params ListScriptsParams) (*ScriptPage, error)

	// GetScriptWithSections returns the owned script and its sections
	// ordered by ascending OrderIndex.
	GetScriptWithSections(ctx context.Context, userID, scriptID uuid.UUID) (*ScriptWithSections, error)

	// UpsertSection creates a section when input.ID is nil, otherwise
	// overwrites the existing one. Returns the section ID.
	UpsertSection(ctx context.Context, userID uuid.UUID, input SectionInput) (uuid.UUID, error)

	// DeleteSection removes a section of one of the caller's scripts.
	DeleteSection(ctx context.Context, userID, sectionID uuid.UUID) (uuid.UUID, error)
}

// ListScriptsParams holds pagination and filters for ListScripts.
// Zero Page and PageSize select the defaults.
type ListScriptsParams struct {
	Page       int
	PageSize   int
	FocusArea  *string
	IsFavorite *bool
}

// ScriptPage is one page of scripts. Total counts every match, not just Items.
type ScriptPage struct {
	Items []*domain.Script `json:"items"`
	Total int              `json:"total"`
}

// ScriptWithSections is a script together with its ordered sections.
type ScriptWithSections struct {
	Script   *domain.Script    `json:"script"`
	Sections []*domain.Section `json:"sections"`
}

// SectionInput is the payload of UpsertSection.
type SectionInput struct {
	ID       *uuid.UUID
	ScriptID uuid.UUID
	domain.SectionUpdate
}

// scriptServiceImpl implements the ScriptService interface
type scriptServiceImpl struct {
	scripts  store.ScriptStore
	sections store.SectionStore
	logger   *slog.Logger
}

// NewScriptService creates a new ScriptService.
// It returns an error if any of the required dependencies are nil.
func NewScriptService(
	scripts store.ScriptStore,
	sections store.SectionStore,
	logger *slog.Logger,
) (ScriptService, error) {
	if scripts == nil {
		return nil, &ScriptServiceError{Operation: "create_service", Message: "scripts store cannot be nil"}
	}
	if sections == nil {
		return nil, &ScriptServiceError{Operation: "create_service", Message: "sections store cannot be nil"}
	}
	if logger == nil {
		return nil, &ScriptServiceError{Operation: "create_service", Message: "logger cannot be nil"}
	}

	return &scriptServiceImpl{
		scripts:  scripts,
		sections: sections,
		logger:   logger.With(slog.String("component", "script_service")),
	}, nil
}

// CreateScript implements ScriptService.CreateScript
func (s *scriptServiceImpl) CreateScript(
	ctx context.Context,
	userID uuid.UUID,
	input domain.ScriptInput,
) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if userID == uuid.Nil {
		return uuid.Nil, ErrUnauthenticated
	}

	script, err := domain.NewScript(userID, input)
	if err != nil {
		log.Debug("rejected script input", slog.String("error", err.Error()))
		return uuid.Nil, NewScriptServiceError("create_script", "invalid script", err)
	}

	if err := s.scripts.Create(ctx, script); err != nil {
		return uuid.Nil, NewScriptServiceError("create_script", "failed to save script", err)
	}

	log.Info("script created",
		slog.String("script_id", script.ID.String()),
		slog.String("user_id", userID.String()))
	return script.ID, nil
}

// UpdateScript implements ScriptService.UpdateScript
func (s *scriptServiceImpl) UpdateScript(
	ctx context.Context,
	userID, scriptID uuid.UUID,
	update domain.ScriptUpdate,
) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if userID == uuid.Nil {
		return uuid.Nil, ErrUnauthenticated
	}

	if err := update.Validate(); err != nil {
		return uuid.Nil, invalidInput(err)
	}

	if err := s.scripts.UpdateFields(ctx, scriptID, userID, update); err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("script not found for update",
				slog.String("script_id", scriptID.String()),
				slog.String("user_id", userID.String()))
		}
		return uuid.Nil, NewScriptServiceError("update_script", "failed to update script", err)
	}

	log.Info("script updated",
		slog.String("script_id", scriptID.String()),
		slog.String("user_id", userID.String()))
	return scriptID, nil
}

// ListScripts implements ScriptService.ListScripts
// The store returns every match; the page is cut here.
func (s *scriptServiceImpl) ListScripts(
	ctx context.Context,
	userID uuid.UUID,
	params ListScriptsParams,
) (*ScriptPage, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}

	page, pageSize, err := normalizePaging(params.Page, params.PageSize)
	if err != nil {
		return nil, err
	}

	filter := domain.ScriptFilter{FocusArea: params.FocusArea, IsFavorite: params.IsFavorite}
	scripts, err := s.scripts.ListOwned(ctx, userID, filter)
	if err != nil {
		return nil, NewScriptServiceError("list_scripts", "failed to list scripts", err)
	}

	total := len(scripts)
	// Compare page numbers before multiplying so huge pages cannot overflow.
	start := total
	if lastPage := (total + pageSize - 1) / pageSize; page <= lastPage {
		start = (page - 1) * pageSize
	}
	end := min(start+pageSize, total)

	items := make([]*domain.Script, 0, end-start)
	items = append(items, scripts[start:end]...)

	return &ScriptPage{Items: items, Total: total}, nil
}

// normalizePaging applies defaults to zero values and rejects anything
// outside the allowed range.
func normalizePaging(page, pageSize int) (int, int, error) {
	if page == 0 {
		page = DefaultPage
	}
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	if page < 1 {
		return 0, 0, invalidInput(domain.NewValidationError("page", "must be at least 1", domain.ErrNotPositive))
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return 0, 0, invalidInput(domain.NewValidationError(
			"pageSize", fmt.Sprintf("must be between 1 and %d", MaxPageSize), nil))
	}
	return page, pageSize, nil
}

// GetScriptWithSections implements ScriptService.GetScriptWithSections
func (s *scriptServiceImpl) GetScriptWithSections(
	ctx context.Context,
	userID, scriptID uuid.UUID,
) (*ScriptWithSections, error) {
	if userID == uuid.Nil {
		return nil, ErrUnauthenticated
	}

	script, err := s.scripts.GetOwned(ctx, scriptID, userID)
	if err != nil {
		return nil, NewScriptServiceError("get_script", "failed to get script", err)
	}

	sections, err := s.sections.ListByScript(ctx, script.ID)
	if err != nil {
		return nil, NewScriptServiceError("get_script", "failed to list sections", err)
	}
	if sections == nil {
		sections = []*domain.Section{}
	}
	domain.SortSections(sections)

	return &ScriptWithSections{Script: script, Sections: sections}, nil
}

// UpsertSection implements ScriptService.UpsertSection
// The parent script is resolved before any section lookup, so nothing about
// sections of a foreign script is ever revealed.
func (s *scriptServiceImpl) UpsertSection(
	ctx context.Context,
	userID uuid.UUID,
	input SectionInput,
) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if userID == uuid.Nil {
		return uuid.Nil, ErrUnauthenticated
	}

	if err := input.SectionUpdate.Validate(); err != nil {
		return uuid.Nil, invalidInput(err)
	}

	script, err := s.scripts.GetOwned(ctx, input.ScriptID, userID)
	if err != nil {
		return uuid.Nil, NewScriptServiceError("upsert_section", "failed to resolve script", err)
	}

	if input.ID == nil {
		section, err := domain.NewSection(script.ID, input.SectionUpdate)
		if err != nil {
			return uuid.Nil, NewScriptServiceError("upsert_section", "invalid section", err)
		}
		if err := s.sections.Upsert(ctx, section); err != nil {
			return uuid.Nil, NewScriptServiceError("upsert_section", "failed to create section", err)
		}
		log.Info("section created",
			slog.String("section_id", section.ID.String()),
			slog.String("script_id", script.ID.String()))
		return section.ID, nil
	}

	existing, err := s.sections.GetByID(ctx, *input.ID)
	if err != nil {
		return uuid.Nil, NewScriptServiceError("upsert_section", "failed to get section", err)
	}
	if existing.ScriptID != script.ID {
		log.Warn("section addressed through a different script",
			slog.String("section_id", existing.ID.String()),
			slog.String("script_id", script.ID.String()),
			slog.String("user_id", userID.String()))
		return uuid.Nil, ErrForbidden
	}

	if err := s.sections.UpdateFields(ctx, existing.ID, input.SectionUpdate); err != nil {
		return uuid.Nil, NewScriptServiceError("upsert_section", "failed to update section", err)
	}

	log.Info("section updated",
		slog.String("section_id", existing.ID.String()),
		slog.String("script_id", script.ID.String()))
	return existing.ID, nil
}

// DeleteSection implements ScriptService.DeleteSection
// A section under a foreign script reports ErrNotFound, not ErrForbidden.
func (s *scriptServiceImpl) DeleteSection(
	ctx context.Context,
	userID, sectionID uuid.UUID,
) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if userID == uuid.Nil {
		return uuid.Nil, ErrUnauthenticated
	}

	section, err := s.sections.GetByID(ctx, sectionID)
	if err != nil {
		return uuid.Nil, NewScriptServiceError("delete_section", "failed to get section", err)
	}

	if _, err := s.scripts.GetOwned(ctx, section.ScriptID, userID); err != nil {
		if errors.Is(err, store.ErrScriptNotFound) {
			log.Debug("section belongs to a script the caller does not own",
				slog.String("section_id", sectionID.String()),
				slog.String("user_id", userID.String()))
		}
		return uuid.Nil, NewScriptServiceError("delete_section", "failed to resolve script", err)
	}

	if err := s.sections.Delete(ctx, sectionID); err != nil {
		return uuid.Nil, NewScriptServiceError("delete_section", "failed to delete section", err)
	}

	log.Info("section deleted",
		slog.String("section_id", sectionID.String()),
		slog.String("user_id", userID.String()))
	return sectionID, nil
}
