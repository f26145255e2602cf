package service

import (
	"strings"

	"go-portfolio-app/internal/validation"
)

// normalizeSlug lowercases an explicit slug or derives one from the title.
// The result is empty only when neither yields any slug characters.
func normalizeSlug(slug, title string) string {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		slug = validation.Slugify(title)
	}
	return slug
}

// cleanList trims every element and drops blanks. The result is never nil.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// trimPtr trims an optional string, mapping blank to nil.
func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func validate(v *validation.Validator, in interface{}) error {
	if err := v.Struct(in); err != nil {
		if details := validation.Details(err); details != nil {
			return &ValidationError{Details: details}
		}
		return err
	}
	return nil
}
