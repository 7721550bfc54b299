// Package domain provides shared domain-level sentinel errors.
package domain

import "errors"

// ErrNotFound indicates the requested entity does not exist.
var ErrNotFound = errors.New("not found")

// ErrValidation indicates the caller supplied invalid input.
var ErrValidation = errors.New("validation failed")

// ErrGeneration indicates the LLM provider failed while producing content.
var ErrGeneration = errors.New("generation failed")
