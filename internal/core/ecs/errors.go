package ecs

import "errors"

var (
	// ErrUnknownComponentType means an entry references a type id with no
	// registered factory. Fatal for the reconciliation pass.
	ErrUnknownComponentType = errors.New("unknown component type")

	// ErrDuplicateComponentType is returned when a type id is registered twice.
	ErrDuplicateComponentType = errors.New("component type already registered")

	// ErrServiceNotFound means no entity in the world exposes the requested
	// singleton component. Callers are expected to tolerate it.
	ErrServiceNotFound = errors.New("service not found")

	ErrEntityNotFound = errors.New("entity not found")
)
