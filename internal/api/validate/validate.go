// Package validate checks request fields at the transport boundary before
// they reach the service layer.
package validate

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/notewell/notewell/internal/model"
)

// maxTitleLen and maxDescriptionLen bound what a single note may carry;
// this is a personal tool, not a document store.
const (
	maxTitleLen       = 200
	maxDescriptionLen = 10000
)

func NonEmpty(field, v string) error {
	if v == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

// NoteID checks that an id path parameter parses as a UUID.
func NoteID(v string) error {
	if err := NonEmpty("noteId", v); err != nil {
		return err
	}
	if _, err := uuid.Parse(v); err != nil {
		return fmt.Errorf("noteId %q is not a valid UUID", v)
	}
	return nil
}

// ListID checks that a list id path parameter parses as a UUID.
func ListID(v string) error {
	if err := NonEmpty("listId", v); err != nil {
		return err
	}
	if _, err := uuid.Parse(v); err != nil {
		return fmt.Errorf("listId %q is not a valid UUID", v)
	}
	return nil
}

// CreateNote validates a create request body.
func CreateNote(req model.CreateNoteRequest) error {
	if err := NonEmpty("title", req.Title); err != nil {
		return err
	}
	if len(req.Title) > maxTitleLen {
		return fmt.Errorf("title exceeds %d characters", maxTitleLen)
	}
	if err := NonEmpty("owner", req.Owner); err != nil {
		return err
	}
	if len(req.Description) > maxDescriptionLen {
		return fmt.Errorf("description exceeds %d characters", maxDescriptionLen)
	}
	return model.ValidateTagSet(req.Tags)
}

// UpdateNote validates an update request body. Absent fields are fine;
// present ones must hold acceptable values.
func UpdateNote(req model.UpdateNoteRequest) error {
	if err := NoteID(req.NoteID); err != nil {
		return err
	}
	if req.Title != nil {
		if err := NonEmpty("title", *req.Title); err != nil {
			return err
		}
		if len(*req.Title) > maxTitleLen {
			return fmt.Errorf("title exceeds %d characters", maxTitleLen)
		}
	}
	if req.Description != nil && len(*req.Description) > maxDescriptionLen {
		return fmt.Errorf("description exceeds %d characters", maxDescriptionLen)
	}
	if req.Tags != nil {
		return model.ValidateTagSet(*req.Tags)
	}
	return nil
}

// StoreList validates a list body before the wholesale upsert.
func StoreList(l *model.List) error {
	if l == nil {
		return fmt.Errorf("list is required")
	}
	if err := NonEmpty("title", l.Title); err != nil {
		return err
	}
	if err := NonEmpty("owner", l.Owner); err != nil {
		return err
	}
	for _, id := range l.NoteIDs {
		if _, err := uuid.Parse(id); err != nil {
			return fmt.Errorf("list references invalid note id %q", id)
		}
	}
	return nil
}
