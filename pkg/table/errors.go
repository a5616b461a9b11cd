package table

import "errors"

// Operation errors. Verbs return these wrapped with the offending column or
// assignment name; match with errors.Is.
var (
	ErrColumnNotFound   = errors.New("column not found")
	ErrTypeMismatch     = errors.New("type mismatch")
	ErrAmbiguousJoinKey = errors.New("ambiguous join key")
	ErrGroupKeyMissing  = errors.New("group key column not found")
	ErrDuplicateColumn  = errors.New("duplicate column name")
	ErrRaggedRow        = errors.New("row width does not match column count")
	ErrInvalidName      = errors.New("invalid column name")
)
