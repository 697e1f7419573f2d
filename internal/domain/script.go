package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Script
var (
	ErrEmptyScriptID      = errors.New("script ID cannot be empty")
	ErrEmptyScriptOwnerID = errors.New("script owner ID cannot be empty")
	ErrEmptyScriptTitle   = errors.New("script title cannot be empty")
	ErrInvalidDuration    = errors.New("target duration must be a positive number of minutes")
	ErrNoFieldsToUpdate   = errors.New("no fields to update")
)

// Script is a guided-meditation script owned by a single user. Optional text
// fields are nil when unset.
type Script struct {
	ID                    uuid.UUID `json:"id"`
	OwnerID               uuid.UUID `json:"ownerId"`
	Title                 string    `json:"title"`
	Description           *string   `json:"description"`
	MeditationType        *string   `json:"meditationType"`
	FocusArea             *string   `json:"focusArea"`
	Difficulty            *string   `json:"difficulty"`
	Language              *string   `json:"language"`
	TargetDurationMinutes *int      `json:"targetDurationMinutes"`
	FullScript            *string   `json:"fullScript"`
	Notes                 *string   `json:"notes"`
	IsFavorite            bool      `json:"isFavorite"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// ScriptInput holds the caller-supplied fields of a new script.
type ScriptInput struct {
	Title                 string
	Description           *string
	MeditationType        *string
	FocusArea             *string
	Difficulty            *string
	Language              *string
	TargetDurationMinutes *int
	FullScript            *string
	Notes                 *string
	IsFavorite            *bool
}

// NewScript creates a Script for ownerID from input. It generates the ID,
// stamps CreatedAt and UpdatedAt with the same instant and defaults
// IsFavorite to false.
func NewScript(ownerID uuid.UUID, input ScriptInput) (*Script, error) {
	now := time.Now().UTC()
	script := &Script{
		ID:                    uuid.New(),
		OwnerID:               ownerID,
		Title:                 input.Title,
		Description:           input.Description,
		MeditationType:        input.MeditationType,
		FocusArea:             input.FocusArea,
		Difficulty:            input.Difficulty,
		Language:              input.Language,
		TargetDurationMinutes: input.TargetDurationMinutes,
		FullScript:            input.FullScript,
		Notes:                 input.Notes,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if input.IsFavorite != nil {
		script.IsFavorite = *input.IsFavorite
	}

	if err := script.Validate(); err != nil {
		return nil, err
	}

	return script, nil
}

// Validate checks if the Script has valid data.
func (s *Script) Validate() error {
	if s.ID == uuid.Nil {
		return ErrEmptyScriptID
	}
	if s.OwnerID == uuid.Nil {
		return ErrEmptyScriptOwnerID
	}
	if strings.TrimSpace(s.Title) == "" {
		return NewValidationError("title", "is required", ErrEmptyScriptTitle)
	}
	if s.TargetDurationMinutes != nil && *s.TargetDurationMinutes <= 0 {
		return NewValidationError("targetDurationMinutes", "must be positive", ErrInvalidDuration)
	}
	return nil
}

// ScriptUpdate is a partial update of a Script. Only fields with Set are
// written; id, owner and creation time are immutable.
type ScriptUpdate struct {
	Title                 Optional[string] `json:"title"`
	Description           Optional[string] `json:"description"`
	MeditationType        Optional[string] `json:"meditationType"`
	FocusArea             Optional[string] `json:"focusArea"`
	Difficulty            Optional[string] `json:"difficulty"`
	Language              Optional[string] `json:"language"`
	TargetDurationMinutes Optional[int]    `json:"targetDurationMinutes"`
	FullScript            Optional[string] `json:"fullScript"`
	Notes                 Optional[string] `json:"notes"`
	IsFavorite            Optional[bool]   `json:"isFavorite"`
}

// HasChanges reports whether at least one field was provided.
func (u ScriptUpdate) HasChanges() bool {
	return u.Title.Set || u.Description.Set || u.MeditationType.Set ||
		u.FocusArea.Set || u.Difficulty.Set || u.Language.Set ||
		u.TargetDurationMinutes.Set || u.FullScript.Set || u.Notes.Set ||
		u.IsFavorite.Set
}

// Validate rejects empty updates and provided values that would break a
// Script invariant. Title and IsFavorite cannot be cleared.
func (u ScriptUpdate) Validate() error {
	if !u.HasChanges() {
		return NewValidationError("", ErrNoFieldsToUpdate.Error(), ErrNoFieldsToUpdate)
	}
	if u.Title.Set && (u.Title.Null || strings.TrimSpace(u.Title.Value) == "") {
		return NewValidationError("title", "cannot be empty", ErrEmptyScriptTitle)
	}
	if u.TargetDurationMinutes.Set && !u.TargetDurationMinutes.Null && u.TargetDurationMinutes.Value <= 0 {
		return NewValidationError("targetDurationMinutes", "must be positive", ErrInvalidDuration)
	}
	if u.IsFavorite.Set && u.IsFavorite.Null {
		return NewValidationError("isFavorite", "cannot be null", ErrValidation)
	}
	return nil
}

func applyString(dst **string, o Optional[string]) {
	if o.Set {
		*dst = o.Ptr()
	}
}

// ScriptFilter restricts ListOwned results. Nil fields do not filter;
// provided filters are ANDed.
type ScriptFilter struct {
	FocusArea  *string
	IsFavorite *bool
}
