package router

import (
	"fmt"

	"github.com/civilian-dev/civilian/internal/errors"
)

// DuplicateMappingError reports two declarations that map different
// handlers to the same resource.
type DuplicateMappingError struct {
	// Path is the path pattern of the resource.
	Path string

	// Existing is the handler id mapped first.
	Existing string

	// Duplicate is the handler id of the rejected declaration.
	Duplicate string
}

func (e *DuplicateMappingError) Error() string {
	return e.Unwrap().Error()
}

// Unwrap returns the coded E105 error, so errors.Is matches it by code.
func (e *DuplicateMappingError) Unwrap() error {
	return errors.New("E105").
		WithDetail(fmt.Sprintf("resource %s is mapped to %q and %q", e.Path, e.Existing, e.Duplicate)).
		WithSuggestion("Remove one of the two declarations")
}
