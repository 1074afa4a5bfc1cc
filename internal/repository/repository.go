package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.

import "errors"

// ErrInsufficientCredits is returned by any debiting operation when the
// authoritative balance is below the requested amount. No mutation happens.
var ErrInsufficientCredits = errors.New("insufficient credits")

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
