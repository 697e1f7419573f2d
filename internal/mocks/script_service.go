package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/meditation-api/internal/domain"
	"github.com/phrazzld/meditation-api/internal/service"
)

// MockScriptService implements service.ScriptService for testing
type MockScriptService struct {
	CreateScriptFn          func(ctx context.Context, userID uuid.UUID, input domain.ScriptInput) (uuid.UUID, error)
	UpdateScriptFn          func(ctx context.Context, userID, scriptID uuid.UUID, update domain.ScriptUpdate) (uuid.UUID, error)
	ListScriptsFn           func(ctx context.Context, userID uuid.UUID, params service.ListScriptsParams) (*service.ScriptPage, error)
	GetScriptWithSectionsFn func(ctx context.Context, userID, scriptID uuid.UUID) (*service.ScriptWithSections, error)
	UpsertSectionFn         func(ctx context.Context, userID uuid.UUID, input service.SectionInput) (uuid.UUID, error)
	DeleteSectionFn         func(ctx context.Context, userID, sectionID uuid.UUID) (uuid.UUID, error)

	// Default return values
	ID           uuid.UUID
	Page         *service.ScriptPage
	Detail       *service.ScriptWithSections
	DefaultError error
}

var _ service.ScriptService = (*MockScriptService)(nil)

// CreateScript implements service.ScriptService
func (m *MockScriptService) CreateScript(
	ctx context.Context,
	userID uuid.UUID,
	input domain.ScriptInput,
) (uuid.UUID, error) {
	if m.CreateScriptFn != nil {
		return m.CreateScriptFn(ctx, userID, input)
	}
	return m.ID, m.DefaultError
}

// UpdateScript implements service.ScriptService
func (m *MockScriptService) UpdateScript(
	ctx context.Context,
	userID, scriptID uuid.UUID,
	update domain.ScriptUpdate,
) (uuid.UUID, error) {
	if m.UpdateScriptFn != nil {
		return m.UpdateScriptFn(ctx, userID, scriptID, update)
	}
	return m.ID, m.DefaultError
}

// ListScripts implements service.ScriptService
func (m *MockScriptService) ListScripts(
	ctx context.Context,
	userID uuid.UUID,
	params service.ListScriptsParams,
) (*service.ScriptPage, error) {
	if m.ListScriptsFn != nil {
		return m.ListScriptsFn(ctx, userID, params)
	}
	return m.Page, m.DefaultError
}

// GetScriptWithSections implements service.ScriptService
func (m *MockScriptService) GetScriptWithSections(
	ctx context.Context,
	userID, scriptID uuid.UUID,
) (*service.ScriptWithSections, error) {
	if m.GetScriptWithSectionsFn != nil {
		return m.GetScriptWithSectionsFn(ctx, userID, scriptID)
	}
	return m.Detail, m.DefaultError
}

// UpsertSection implements service.ScriptService
func (m *MockScriptService) UpsertSection(
	ctx context.Context,
	userID uuid.UUID,
	input service.SectionInput,
) (uuid.UUID, error) {
	if m.UpsertSectionFn != nil {
		return m.UpsertSectionFn(ctx, userID, input)
	}
	return m.ID, m.DefaultError
}

// DeleteSection implements service.ScriptService
func (m *MockScriptService) DeleteSection(ctx context.Context, userID, sectionID uuid.UUID) (uuid.UUID, error) {
	if m.DeleteSectionFn != nil {
		return m.DeleteSectionFn(ctx, userID, sectionID)
	}
	return m.ID, m.DefaultError
}
