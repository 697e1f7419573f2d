package api

import (
	"github.com/google/uuid"
	"github.com/phrazzld/meditation-api/internal/domain"
)

// CreateScriptRequest defines the payload for POST /api/scripts.
// Blank titles pass the struct tags and are rejected by the domain.
type CreateScriptRequest struct {
	Title                 string  `json:"title"                 validate:"required"`
	Description           *string `json:"description"`
	MeditationType        *string `json:"meditationType"`
	FocusArea             *string `json:"focusArea"`
	Difficulty            *string `json:"difficulty"`
	Language              *string `json:"language"`
	TargetDurationMinutes *int    `json:"targetDurationMinutes" validate:"omitempty,gt=0"`
	FullScript            *string `json:"fullScript"`
	Notes                 *string `json:"notes"`
	IsFavorite            *bool   `json:"isFavorite"`
}

// ToInput converts the request into the service input.
func (r CreateScriptRequest) ToInput() domain.ScriptInput {
	return domain.ScriptInput{
		Title:                 r.Title,
		Description:           r.Description,
		MeditationType:        r.MeditationType,
		FocusArea:             r.FocusArea,
		Difficulty:            r.Difficulty,
		Language:              r.Language,
		TargetDurationMinutes: r.TargetDurationMinutes,
		FullScript:            r.FullScript,
		Notes:                 r.Notes,
		IsFavorite:            r.IsFavorite,
	}
}

// UpdateScriptRequest defines the payload for PATCH /api/scripts/{id}.
// Absent keys are left untouched and null clears optional fields.
type UpdateScriptRequest = domain.ScriptUpdate

// UpsertSectionRequest defines the payload for PUT /api/scripts/{scriptId}/sections.
// Without an id a new section is created. ScriptID is optional and must match
// the path when present.
type UpsertSectionRequest struct {
	ID                       *uuid.UUID              `json:"id"`
	ScriptID                 *uuid.UUID              `json:"scriptId"`
	OrderIndex               int                     `json:"orderIndex" validate:"gt=0"`
	Body                     string                  `json:"body"       validate:"required"`
	SectionType              domain.Optional[string] `json:"sectionType"`
	Title                    domain.Optional[string] `json:"title"`
	SuggestedDurationMinutes domain.Optional[int]    `json:"suggestedDurationMinutes"`
}

// ToUpdate converts the request into the domain section update.
func (r UpsertSectionRequest) ToUpdate() domain.SectionUpdate {
	return domain.SectionUpdate{
		OrderIndex:               r.OrderIndex,
		Body:                     r.Body,
		SectionType:              r.SectionType,
		Title:                    r.Title,
		SuggestedDurationMinutes: r.SuggestedDurationMinutes,
	}
}

// IDResponse is the data of createScript, updateScript and deleteSection.
type IDResponse struct {
	ID uuid.UUID `json:"id"`
}

// SectionIDResponse is the data of upsertSection.
type SectionIDResponse struct {
	SectionID uuid.UUID `json:"sectionId"`
}
