package collection

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"tableflip.dev/bizdesk/pkg/record"
)

var (
	// ErrWriteFailed matches every WriteError.
	ErrWriteFailed = errors.New("collection write failed")
	// ErrCorrupt marks stored contents that are not an array of records.
	ErrCorrupt = errors.New("collection data corrupt")
	// ErrNotFound is returned when a record id is not in the collection.
	ErrNotFound = errors.New("record not found")
)

// WriteError reports a failed durable write. The in-memory collection the
// caller received still reflects the attempted change.
type WriteError struct {
	Key string
	Err error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("collection %q: write failed: %v", e.Key, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

func (e *WriteError) Is(target error) bool { return target == ErrWriteFailed }

// MissingFieldsError lists required fields left empty.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "Please fill in: " + strings.Join(e.Fields, ", ")
}

// Require fails with a MissingFieldsError when any field is blank.
func Require(r record.Record, fields ...string) error {
	if missing := r.Missing(fields...); len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}
