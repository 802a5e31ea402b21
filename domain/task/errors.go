package task

import (
	"errors"
	"fmt"
)

// ErrNotFound matches any *NotFoundError via errors.Is.
var ErrNotFound = errors.New("task not found")

// ErrUnknownID is returned by Store.Save for a non-zero id that is not stored.
var ErrUnknownID = errors.New("task id is not stored")

// NotFoundError is returned when no task exists for the given id.
type NotFoundError struct {
	ID int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task not found with id: %d", e.ID)
}

// Is lets errors.Is(err, ErrNotFound) succeed for every NotFoundError.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
