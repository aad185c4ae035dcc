// Package repository provides Postgres-backed access to the lessons and
// orders collections. Sentinel errors defined here let handlers map store
// failures to the right HTTP status without inspecting messages.
package repository

import (
	"errors"
	"fmt"
)

// ErrLessonNotFound is returned when a lesson id does not exist.
var ErrLessonNotFound = errors.New("Lesson not found")

// ErrInsufficientSpace is the target for errors.Is checks against
// InsufficientSpaceError.
var ErrInsufficientSpace = errors.New("not enough space")

// ErrUnknownField is returned when a lesson patch references a field that is
// not part of the lesson record.
var ErrUnknownField = errors.New("unknown lesson field")

// InsufficientSpaceError reports a line item whose quantity exceeds the
// remaining space of the named lesson.
type InsufficientSpaceError struct {
	LessonName string
}

func (e *InsufficientSpaceError) Error() string {
	return fmt.Sprintf("Not enough space for %s.", e.LessonName)
}

func (e *InsufficientSpaceError) Is(target error) bool {
	return target == ErrInsufficientSpace
}
