package domain

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Section
var (
	ErrEmptySectionID       = errors.New("section ID cannot be empty")
	ErrEmptySectionScriptID = errors.New("section script ID cannot be empty")
	ErrEmptySectionBody     = errors.New("section body cannot be empty")
	ErrInvalidOrderIndex    = errors.New("order index must be positive")
)

// Section is one ordered unit of a Script's spoken content. Sections are
// never edited in place by callers; an upsert overwrites them.
type Section struct {
	ID                       uuid.UUID `json:"id"`
	ScriptID                 uuid.UUID `json:"scriptId"`
	OrderIndex               int       `json:"orderIndex"`
	SectionType              *string   `json:"sectionType"`
	Title                    *string   `json:"title"`
	Body                     string    `json:"body"`
	SuggestedDurationMinutes *int      `json:"suggestedDurationMinutes"`
	CreatedAt                time.Time `json:"createdAt"`
}

// NewSection creates a Section under scriptID with a fresh ID and
// CreatedAt. The optional fields of upd are applied when provided.
func NewSection(scriptID uuid.UUID, upd SectionUpdate) (*Section, error) {
	section := &Section{
		ID:        uuid.New(),
		ScriptID:  scriptID,
		CreatedAt: time.Now().UTC(),
	}
	upd.Apply(section)

	if err := section.Validate(); err != nil {
		return nil, err
	}
	return section, nil
}

// Validate checks if the Section has valid data.
func (s *Section) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptySectionID
	}
	if s.ScriptID == uuid.Nil {
		return ErrEmptySectionScriptID
	}
	if s.OrderIndex <= 0 {
		return NewValidationError("orderIndex", "must be positive", ErrInvalidOrderIndex)
	}
	if strings.TrimSpace(s.Body) == "" {
		return NewValidationError("body", "is required", ErrEmptySectionBody)
	}
	if s.SuggestedDurationMinutes != nil && *s.SuggestedDurationMinutes <= 0 {
		return NewValidationError("suggestedDurationMinutes", "must be positive", ErrInvalidDuration)
	}
	return nil
}

// SectionUpdate is the payload of an upsert. OrderIndex and Body are always
// written; the optional fields only when provided.
type SectionUpdate struct {
	OrderIndex               int
	Body                     string
	SectionType              Optional[string]
	Title                    Optional[string]
	SuggestedDurationMinutes Optional[int]
}

// Validate checks the always-written fields and any provided duration.
func (u SectionUpdate) Validate() error {
	if u.OrderIndex <= 0 {
		return NewValidationError("orderIndex", "must be positive", ErrInvalidOrderIndex)
	}
	if strings.TrimSpace(u.Body) == "" {
		return NewValidationError("body", "is required", ErrEmptySectionBody)
	}
	if u.SuggestedDurationMinutes.Set && !u.SuggestedDurationMinutes.Null && u.SuggestedDurationMinutes.Value <= 0 {
		return NewValidationError("suggestedDurationMinutes", "must be positive", ErrInvalidDuration)
	}
	return nil
}

// Apply writes the update onto s.
func (u SectionUpdate) Apply(s *Section) {
	s.OrderIndex = u.OrderIndex
	s.Body = u.Body
	applyString(&s.SectionType, u.SectionType)
	applyString(&s.Title, u.Title)
	if u.SuggestedDurationMinutes.Set {
		s.SuggestedDurationMinutes = u.SuggestedDurationMinutes.Ptr()
	}
}

// SortSections orders sections by ascending OrderIndex. Equal indexes keep
// their relative order.
func SortSections(sections []*Section) {
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].OrderIndex < sections[j].OrderIndex
	})
}
