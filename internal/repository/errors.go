// Package repository contains data access logic separated from HTTP
// handlers. This file defines sentinel errors shared across repositories so
// handlers can translate failures into the right HTTP status without
// inspecting driver error types.
package repository

import "errors"

// ErrInvalidLessonID is returned when a lesson identifier is not a valid
// ObjectID hex string. Handlers translate this into an HTTP 400 response.
var ErrInvalidLessonID = errors.New("invalid lesson id")

// ErrEmptySearchTerm is returned when a search is attempted with an empty
// term. Handlers reject the request before reaching the repository, so this
// is a second line of defense for other callers.
var ErrEmptySearchTerm = errors.New("search term must not be empty")
