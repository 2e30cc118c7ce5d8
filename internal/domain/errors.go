package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Catalog errors
	ErrMsgInvalidCatalog      = "invalid catalog"
	ErrMsgPropertyOutOfRange  = "property id out of range"
	ErrMsgDuplicateName       = "duplicate name"
	ErrMsgDanglingPropertyRef = "reference to unknown property"
	ErrMsgNegativePrice       = "negative price"

	// Name resolution errors
	ErrMsgUnknownBaseItem = "unknown base item"
	ErrMsgUnknownModifier = "unknown modifier"
	ErrMsgUnknownProperty = "unknown property"
	ErrMsgUnknownTier     = "unknown tier"
	ErrMsgUnknownTarget   = "unknown optimize target"

	// Filter errors
	ErrMsgNoOptimizeTargets   = "at least one optimize target is required"
	ErrMsgInvalidMaxModifiers = "max modifiers must not be negative"

	// Profile errors
	ErrMsgProfileNotFound = "profile not found"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Catalog errors
	ErrInvalidCatalog      = errors.New(ErrMsgInvalidCatalog)
	ErrPropertyOutOfRange  = errors.New(ErrMsgPropertyOutOfRange)
	ErrDuplicateName       = errors.New(ErrMsgDuplicateName)
	ErrDanglingPropertyRef = errors.New(ErrMsgDanglingPropertyRef)
	ErrNegativePrice       = errors.New(ErrMsgNegativePrice)

	// Name resolution errors
	ErrUnknownBaseItem = errors.New(ErrMsgUnknownBaseItem)
	ErrUnknownModifier = errors.New(ErrMsgUnknownModifier)
	ErrUnknownProperty = errors.New(ErrMsgUnknownProperty)
	ErrUnknownTier     = errors.New(ErrMsgUnknownTier)
	ErrUnknownTarget   = errors.New(ErrMsgUnknownTarget)

	// Filter errors
	ErrNoOptimizeTargets   = errors.New(ErrMsgNoOptimizeTargets)
	ErrInvalidMaxModifiers = errors.New(ErrMsgInvalidMaxModifiers)

	// Profile errors
	ErrProfileNotFound = errors.New(ErrMsgProfileNotFound)

	// Input errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
