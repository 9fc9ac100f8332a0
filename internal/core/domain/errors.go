package domain

import (
	"errors"
	"fmt"
)

// Base sentinels. Handlers map these to HTTP status codes with errors.Is,
// so every domain error wraps exactly one of them.
var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrForbidden        = errors.New("forbidden")
	ErrConflict         = errors.New("conflict")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Not-found variants.
var (
	ErrUserNotFound       = fmt.Errorf("user %w", ErrNotFound)
	ErrEditorNotFound     = fmt.Errorf("editor %w", ErrNotFound)
	ErrSubmissionNotFound = fmt.Errorf("submission %w", ErrNotFound)
	ErrRequestNotFound    = fmt.Errorf("role request %w", ErrNotFound)
	ErrArticleNotFound    = fmt.Errorf("article %w", ErrNotFound)
)

// Conflict variants: the stored state no longer matches what the caller saw.
var (
	ErrAlreadyReviewed  = fmt.Errorf("already reviewed: %w", ErrConflict)
	ErrDuplicatePending = fmt.Errorf("pending request already exists: %w", ErrConflict)
	ErrAlreadyHasRole   = fmt.Errorf("user already holds the role: %w", ErrConflict)
	ErrRoleMismatch     = fmt.Errorf("stored role changed: %w", ErrConflict)
	ErrCannotDelete     = fmt.Errorf("role must be revoked first: %w", ErrConflict)
)

// ErrNoEditorsAvailable means auto-assignment found work but no editors.
var ErrNoEditorsAvailable = errors.New("no editors available")

// ErrCascadeIncomplete reports that the primary write of a two-document
// transition succeeded but the follow-up write failed. The caller decides
// whether that is fatal; the stored state is internally valid either way.
var ErrCascadeIncomplete = errors.New("cascade incomplete")

// Auth errors.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = fmt.Errorf("email already registered: %w", ErrConflict)
)
