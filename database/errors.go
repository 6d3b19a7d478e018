package database

import (
	"errors"
	"fmt"
)

var (
	ErrCollectionNotFound = errors.New("collection not found")
	ErrItemNotFound       = errors.New("item not found")
	ErrPersistence        = errors.New("persistence failure")
	ErrIDOverflow         = errors.New("no id left after the highest one")
)

// NotFoundError carries the message shown to clients, it unwraps to
// ErrCollectionNotFound or ErrItemNotFound.
type NotFoundError struct {
	kind    error
	message string
}

func (e *NotFoundError) Error() string {
	return e.message
}

func (e *NotFoundError) Unwrap() error {
	return e.kind
}

func CollectionNotFound(name string) error {
	return &NotFoundError{
		kind:    ErrCollectionNotFound,
		message: fmt.Sprintf("Resource %s not found", name),
	}
}

func ItemNotFound(id string) error {
	return &NotFoundError{
		kind:    ErrItemNotFound,
		message: fmt.Sprintf("Item with ID %s not found", id),
	}
}
