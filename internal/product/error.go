package product

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrValidation     = errors.New("invalid product form")
	ErrNegativePrice  = errors.New("price must be positive")
	ErrMalformedPrice = errors.New("price must be a number")
)

// ValidationErrors maps a form field to its message.
type ValidationErrors map[string]string

// Fields returns the failing field names in order.
func (v ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

func (v ValidationErrors) Error() string {
	fields := v.Fields()
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+v[f])
	}
	return "invalid product form: " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Is(target error) bool {
	return target == ErrValidation
}
