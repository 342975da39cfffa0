package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrValidation   = errors.New("validation failed")
	ErrConsistency  = errors.New("consistency check failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)

// Violations collects field-level validation messages keyed by field name.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

// Add records msg for field unless the field already has a message.
func (v Violations) Add(field, msg string) {
	if _, ok := v[field]; !ok {
		v[field] = msg
	}
}

// Err returns nil when no violation was recorded.
func (v Violations) Err() error {
	if v.Empty() {
		return nil
	}
	return &ValidationError{Fields: v}
}

type ValidationError struct {
	Fields Violations
}

func NewValidationError(field, msg string) *ValidationError {
	return &ValidationError{Fields: Violations{field: msg}}
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// ReferenceError reports a missing entity, or one that belongs to another organization.
type ReferenceError struct {
	Entity string
	ID     int32
}

func NewReferenceError(entity string, id int32) *ReferenceError {
	return &ReferenceError{Entity: entity, ID: id}
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *ReferenceError) Is(target error) bool { return target == ErrNotFound }

// ConsistencyError is raised before any installment expansion starts.
type ConsistencyError struct {
	Reason string
}

func (e *ConsistencyError) Error() string {
	return "consistency check failed: " + e.Reason
}

func (e *ConsistencyError) Is(target error) bool { return target == ErrConsistency }
