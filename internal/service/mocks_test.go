package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/meditation-api/internal/domain"
	"github.com/phrazzld/meditation-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockScriptStore mocks the store.ScriptStore interface
type MockScriptStore struct {
	mock.Mock
}

func (m *MockScriptStore) Create(ctx context.Context, script *domain.Script) error {
	args := m.Called(ctx, script)
	return args.Error(0)
}

func (m *MockScriptStore) GetOwned(ctx context.Context, id, ownerID uuid.UUID) (*domain.Script, error) {
	args := m.Called(ctx, id, ownerID)
	script, _ := args.Get(0).(*domain.Script)
	return script, args.Error(1)
}

func (m *MockScriptStore) UpdateFields(
	ctx context.Context,
	id, ownerID uuid.UUID,
	update domain.ScriptUpdate,
) error {
	args := m.Called(ctx, id, ownerID, update)
	return args.Error(0)
}

func (m *MockScriptStore) ListOwned(
	ctx context.Context,
	ownerID uuid.UUID,
	filter domain.ScriptFilter,
) ([]*domain.Script, error) {
	args := m.Called(ctx, ownerID, filter)
	scripts, _ := args.Get(0).([]*domain.Script)
	return scripts, args.Error(1)
}

// MockSectionStore mocks the store.SectionStore interface
type MockSectionStore struct {
	mock.Mock
}

func (m *MockSectionStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Section, error) {
	args := m.Called(ctx, id)
	section, _ := args.Get(0).(*domain.Section)
	return section, args.Error(1)
}

func (m *MockSectionStore) ListByScript(ctx context.Context, scriptID uuid.UUID) ([]*domain.Section, error) {
	args := m.Called(ctx, scriptID)
	sections, _ := args.Get(0).([]*domain.Section)
	return sections, args.Error(1)
}

func (m *MockSectionStore) Upsert(ctx context.Context, section *domain.Section) error {
	args := m.Called(ctx, section)
	return args.Error(0)
}

func (m *MockSectionStore) UpdateFields(ctx context.Context, id uuid.UUID, update domain.SectionUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockSectionStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// memStore is an in-memory ScriptStore and SectionStore that keeps
// insertion order, standing in for Postgres in behavioural tests.
type memStore struct {
	mu            sync.Mutex
	scripts       map[uuid.UUID]*domain.Script
	scriptOrder   []uuid.UUID
	sections      map[uuid.UUID]*domain.Section
	sectionOrder  []uuid.UUID
	listOwnedHits int
}

func newMemStore() *memStore {
	return &memStore{
		scripts:  make(map[uuid.UUID]*domain.Script),
		sections: make(map[uuid.UUID]*domain.Section),
	}
}

func cloneScript(s *domain.Script) *domain.Script {
	c := *s
	return &c
}

func cloneSection(s *domain.Section) *domain.Section {
	c := *s
	return &c
}

func (m *memStore) Create(_ context.Context, script *domain.Script) error {
	if err := script.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.scripts[script.ID]; ok {
		return store.ErrDuplicate
	}
	m.scripts[script.ID] = cloneScript(script)
	m.scriptOrder = append(m.scriptOrder, script.ID)
	return nil
}

func (m *memStore) GetOwned(_ context.Context, id, ownerID uuid.UUID) (*domain.Script, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.scripts[id]
	if !ok || s.OwnerID != ownerID {
		return nil, store.ErrScriptNotFound
	}
	return cloneScript(s), nil
}

func (m *memStore) UpdateFields(_ context.Context, id, ownerID uuid.UUID, update domain.ScriptUpdate) error {
	if err := update.Validate(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.scripts[id]
	if !ok || s.OwnerID != ownerID {
		return store.ErrScriptNotFound
	}
	applyScriptUpdate(s, update, time.Now().UTC())
	return nil
}

func (m *memStore) ListOwned(_ context.Context, ownerID uuid.UUID, filter domain.ScriptFilter) ([]*domain.Script, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listOwnedHits++
	out := []*domain.Script{}
	for _, id := range m.scriptOrder {
		s := m.scripts[id]
		if s.OwnerID == ownerID && matchesFilter(filter, s) {
			out = append(out, cloneScript(s))
		}
	}
	return out, nil
}

// applyScriptUpdate mirrors the store's UPDATE: provided fields are written,
// null clears, and UpdatedAt never moves backwards.
func applyScriptUpdate(s *domain.Script, u domain.ScriptUpdate, at time.Time) {
	if u.Title.Set {
		s.Title = u.Title.Value
	}
	setString := func(dst **string, o domain.Optional[string]) {
		if o.Set {
			*dst = o.Ptr()
		}
	}
	setString(&s.Description, u.Description)
	setString(&s.MeditationType, u.MeditationType)
	setString(&s.FocusArea, u.FocusArea)
	setString(&s.Difficulty, u.Difficulty)
	setString(&s.Language, u.Language)
	if u.TargetDurationMinutes.Set {
		s.TargetDurationMinutes = u.TargetDurationMinutes.Ptr()
	}
	setString(&s.FullScript, u.FullScript)
	setString(&s.Notes, u.Notes)
	if u.IsFavorite.Set {
		s.IsFavorite = u.IsFavorite.Value
	}
	if at.After(s.UpdatedAt) {
		s.UpdatedAt = at
	}
}

// matchesFilter mirrors the store's ANDed WHERE clause.
func matchesFilter(f domain.ScriptFilter, s *domain.Script) bool {
	if f.FocusArea != nil && (s.FocusArea == nil || *s.FocusArea != *f.FocusArea) {
		return false
	}
	if f.IsFavorite != nil && s.IsFavorite != *f.IsFavorite {
		return false
	}
	return true
}

// sectionView exposes the section half of memStore as a store.SectionStore.
type sectionView struct{ *memStore }

func (v sectionView) GetByID(_ context.Context, id uuid.UUID) (*domain.Section, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	s, ok := v.sections[id]
	if !ok {
		return nil, store.ErrSectionNotFound
	}
	return cloneSection(s), nil
}

func (v sectionView) ListByScript(_ context.Context, scriptID uuid.UUID) ([]*domain.Section, error) {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := []*domain.Section{}
	for _, id := range v.sectionOrder {
		if s, ok := v.sections[id]; ok && s.ScriptID == scriptID {
			out = append(out, cloneSection(s))
		}
	}
	return out, nil
}

func (v sectionView) Upsert(_ context.Context, section *domain.Section) error {
	if err := section.Validate(); err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.scripts[section.ScriptID]; !ok {
		return store.ErrInvalidEntity
	}
	if _, ok := v.sections[section.ID]; !ok {
		v.sectionOrder = append(v.sectionOrder, section.ID)
	}
	v.sections[section.ID] = cloneSection(section)
	return nil
}

func (v sectionView) UpdateFields(_ context.Context, id uuid.UUID, update domain.SectionUpdate) error {
	if err := update.Validate(); err != nil {
		return err
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	s, ok := v.sections[id]
	if !ok {
		return store.ErrSectionNotFound
	}
	update.Apply(s)
	return nil
}

func (v sectionView) Delete(_ context.Context, id uuid.UUID) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.sections[id]; !ok {
		return store.ErrSectionNotFound
	}
	delete(v.sections, id)
	return nil
}

var (
	_ store.ScriptStore  = (*memStore)(nil)
	_ store.SectionStore = sectionView{}
	_ store.ScriptStore  = (*MockScriptStore)(nil)
	_ store.SectionStore = (*MockSectionStore)(nil)
)
