package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	MessageSuccessGetTags      = "success get tags"
	MessageSuccessGetTagDetail = "success get tag detail"

	MessageFailedGetTags      = "failed to get tags"
	MessageFailedGetTagDetail = "failed to get tag detail"

	ErrTagNotFound      = errors.New("tag not found")
	ErrTagAlreadyExists = errors.New("tag with the same name, color or slug already exists")
)

type TagResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

// TagNotFoundError reports a recipe payload referencing a tag id that is
// not present in the catalog.
type TagNotFoundError struct {
	ID uuid.UUID
}

func (e *TagNotFoundError) Error() string {
	return fmt.Sprintf("tag %s does not exist", e.ID)
}
