package types

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Domain specific errors for the planner core.
var (
	ErrNotFound   = errors.New("requested item not found")
	ErrForbidden  = errors.New("action forbidden")
	ErrBadRequest = errors.New("bad request")
)

// ValidationErrors maps a field name to the reason it was rejected. It is
// returned whole so the caller can render every failing field at once.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, v[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}
