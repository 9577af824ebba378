package service

import (
	"errors"
	"fmt"

	"github.com/mattsolo1/grove-routes/pkg/tree"
)

var (
	// ErrNotFound is returned when an operation targets an id that is not in the tree.
	ErrNotFound = errors.New("node not found")
	// ErrReservedName is returned when a rename targets a well-known directory name.
	ErrReservedName = errors.New("name is reserved")
	// ErrNotDirectory is returned when creating below a file.
	ErrNotDirectory = errors.New("parent is not a directory")
)

// RestrictionError reports a mutation refused by the rule tables.
type RestrictionError struct {
	Op      string
	Kind    tree.Kind
	Message string
}

func (e *RestrictionError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Kind, e.Message)
}

func newRestrictionError(op string, kind tree.Kind, msg string) *RestrictionError {
	return &RestrictionError{Op: op, Kind: kind, Message: msg}
}
