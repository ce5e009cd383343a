package domain

import "errors"

// Error message string constants - single source of truth for error messages.
// Use these in assert.Contains() checks when testing error messages.
const (
	// Ledger errors
	ErrMsgInsufficientResource = "insufficient resource"
	ErrMsgInvalidAmount        = "amount must be positive"

	// Catalog errors
	ErrMsgEraNotFound     = "era not found"
	ErrMsgCropNotFound    = "crop not found"
	ErrMsgUpgradeNotFound = "upgrade not found"
	ErrMsgVisitorNotFound = "visitor not found"
	ErrMsgQuestNotFound   = "quest not found"
	ErrMsgInvalidCatalog  = "invalid catalog"

	// Snapshot errors
	ErrMsgInvalidSnapshot  = "invalid snapshot"
	ErrMsgSnapshotNotFound = "snapshot not found"

	// Collaborator errors
	ErrMsgCollaboratorUnavailable = "collaborator unavailable"
)

// Common domain errors.
// Wrap these with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional
// context. Action rejections are NOT errors; they are ResultCode values (see
// result.go) so callers can render precise messages without unwinding.
var (
	ErrInsufficientResource = errors.New(ErrMsgInsufficientResource)
	ErrInvalidAmount        = errors.New(ErrMsgInvalidAmount)

	ErrEraNotFound     = errors.New(ErrMsgEraNotFound)
	ErrCropNotFound    = errors.New(ErrMsgCropNotFound)
	ErrUpgradeNotFound = errors.New(ErrMsgUpgradeNotFound)
	ErrVisitorNotFound = errors.New(ErrMsgVisitorNotFound)
	ErrQuestNotFound   = errors.New(ErrMsgQuestNotFound)
	ErrInvalidCatalog  = errors.New(ErrMsgInvalidCatalog)

	ErrInvalidSnapshot  = errors.New(ErrMsgInvalidSnapshot)
	ErrSnapshotNotFound = errors.New(ErrMsgSnapshotNotFound)

	ErrCollaboratorUnavailable = errors.New(ErrMsgCollaboratorUnavailable)
)
