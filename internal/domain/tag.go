package domain

import (
	"errors"

	"github.com/google/uuid"
)

// Tag-specific validation errors
var (
	// ErrTagIDEmpty is returned when a tag ID is empty or nil.
	ErrTagIDEmpty = errors.New("tag ID cannot be empty")

	// ErrTagNameEmpty is returned when a tag name is empty.
	ErrTagNameEmpty = errors.New("tag name cannot be empty")
)

// Tag is a label attached to words. Tags relate to words many-to-many and
// carry no ordering.
type Tag struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// NewTag creates a new Tag with the given name.
// Returns an error if validation fails.
func NewTag(name string) (*Tag, error) {
	tag := &Tag{
		ID:   uuid.New(),
		Name: name,
	}

	if err := tag.Validate(); err != nil {
		return nil, err
	}

	return tag, nil
}

// Validate checks if the Tag has valid data.
func (t *Tag) Validate() error {
	if t.ID == uuid.Nil {
		return ErrTagIDEmpty
	}

	if t.Name == "" {
		return ErrTagNameEmpty
	}

	return nil
}
