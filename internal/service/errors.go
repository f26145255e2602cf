package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"go-portfolio-app/internal/data"
)

var (
	ErrNotFound    = errors.New("not found")
	ErrSlugExists  = errors.New("slug already exists")
	ErrEmailExists = errors.New("email already subscribed")
	ErrInvalidSlug = errors.New("a slug could not be derived from the title")
	ErrMissingID   = errors.New("id is required")
)

// ValidationError carries per-field failures for a rejected input.
type ValidationError struct {
	Details map[string]string
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Details))
	for f, tag := range e.Details {
		fields = append(fields, fmt.Sprintf("%s (%s)", f, tag))
	}
	sort.Strings(fields)
	return "invalid input: " + strings.Join(fields, ", ")
}

// mapRepoErr translates repository sentinels into service sentinels.
func mapRepoErr(err error, duplicate error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, data.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, data.ErrDuplicate):
		return duplicate
	default:
		return err
	}
}
