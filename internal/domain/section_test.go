package domain

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewSection(t *testing.T) {
	t.Parallel()
	scriptID := uuid.New()

	section, err := NewSection(scriptID, SectionUpdate{
		OrderIndex: 1,
		Body:       "Breathe in.",
		Title:      Some("Intro"),
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if section.ID == uuid.Nil {
		t.Error("Expected non-nil UUID")
	}
	if section.ScriptID != scriptID {
		t.Errorf("Expected script ID %s, got %s", scriptID, section.ScriptID)
	}
	if section.Title == nil || *section.Title != "Intro" {
		t.Errorf("Expected title Intro, got %v", section.Title)
	}
	if section.SectionType != nil {
		t.Error("Expected section type unset")
	}
	if section.CreatedAt.IsZero() {
		t.Error("Expected non-zero CreatedAt")
	}
}

func TestSectionUpdateValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		update  SectionUpdate
		wantErr error
	}{
		{"valid", SectionUpdate{OrderIndex: 1, Body: "b"}, nil},
		{"zero order", SectionUpdate{OrderIndex: 0, Body: "b"}, ErrInvalidOrderIndex},
		{"empty body", SectionUpdate{OrderIndex: 1, Body: " "}, ErrEmptySectionBody},
		{"bad duration", SectionUpdate{OrderIndex: 1, Body: "b", SuggestedDurationMinutes: Some(-1)}, ErrInvalidDuration},
		{"cleared duration", SectionUpdate{OrderIndex: 1, Body: "b", SuggestedDurationMinutes: Null[int]()}, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.update.Validate()
			if tc.wantErr == nil && err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Errorf("Expected error %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestSectionUpdateApplyKeepsUnsetFields(t *testing.T) {
	t.Parallel()
	section := &Section{
		ID:          uuid.New(),
		ScriptID:    uuid.New(),
		OrderIndex:  1,
		Body:        "Breathe in.",
		SectionType: strPtr("breathing"),
		Title:       strPtr("Start"),
	}

	SectionUpdate{OrderIndex: 2, Body: "Breathe out.", Title: Null[string]()}.Apply(section)

	if section.OrderIndex != 2 || section.Body != "Breathe out." {
		t.Errorf("Expected order 2 and new body, got %d %q", section.OrderIndex, section.Body)
	}
	if section.SectionType == nil || *section.SectionType != "breathing" {
		t.Error("Expected section type untouched")
	}
	if section.Title != nil {
		t.Error("Expected title cleared")
	}
}

func TestSortSectionsIsStable(t *testing.T) {
	t.Parallel()
	a := &Section{OrderIndex: 3, Body: "a"}
	b := &Section{OrderIndex: 1, Body: "b"}
	c := &Section{OrderIndex: 2, Body: "c"}
	d := &Section{OrderIndex: 1, Body: "d"}
	sections := []*Section{a, b, c, d}

	SortSections(sections)

	want := []*Section{b, d, c, a}
	for i := range want {
		if sections[i] != want[i] {
			t.Fatalf("Expected %q at %d, got %q", want[i].Body, i, sections[i].Body)
		}
	}
}
