package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgSearchCancelled       = "Search was cancelled before it finished"
	ErrMsgMissingPathParam      = "Missing %s path parameter"

	ErrMsgUnknownBaseItem   = "Unknown base item"
	ErrMsgUnknownModifier   = "Unknown modifier"
	ErrMsgUnknownProperty   = "Unknown property"
	ErrMsgUnknownTier       = "Unknown tier"
	ErrMsgUnknownTarget     = "Unknown optimize target"
	ErrMsgNoOptimizeTargets = "At least one optimize target is required"
	ErrMsgInvalidMaxMods    = "max_modifiers must not be negative"
	ErrMsgProfileNotFound   = "Profile not found"
)

// Health responses
const (
	HealthStatusOK          = "ok"
	HealthStatusUnavailable = "unavailable"
	HealthMsgCatalogEmpty   = "catalog has no base items or modifiers"
)

// Log messages
const (
	LogMsgDecodeFailed     = "Failed to decode request"
	LogMsgValidationFailed = "Request validation failed"
	LogMsgRequestDecoded   = "Request decoded"
	LogMsgEncodeFailed     = "Failed to encode JSON response"
	LogMsgWriteFailed      = "Failed to write response buffer"
	LogMsgServiceError     = "Service error"
	LogMsgReadinessFailed  = "Readiness check failed"
	LogMsgSearchRequested  = "Search requested"
	LogMsgMixRequested     = "Mix evaluation requested"
	LogMsgProfileRequested = "Profile search requested"
)

// Request limits
const (
	// MaxMixModifiers bounds the sequence accepted by the mix endpoint.
	MaxMixModifiers = 32
	// MaxNamesPerList bounds every name list in a search request.
	MaxNamesPerList = 256
)

// Header and content type names
const (
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json"
)
