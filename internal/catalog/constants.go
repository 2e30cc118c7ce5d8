package catalog

// ==================== Schema ====================

// SchemaName is the name the embedded catalog schema is registered under
const SchemaName = "catalog.schema.json"

// ==================== Error Messages ====================

// File operation error messages
const (
	ErrMsgReadCatalogFailed  = "failed to read catalog file: %w"
	ErrMsgParseCatalogFailed = "failed to parse catalog: %w"
	ErrMsgSchemaFailed       = "schema validation failed for %s: %w"
	ErrMsgRegisterSchema     = "failed to register catalog schema: %w"
)

// Validation error formats, used with a wrapped domain sentinel
const (
	ErrFmtKeyMismatch       = "%w: %s key %q does not match id %d"
	ErrFmtIDOutOfRange      = "%w: %s %q has id %d"
	ErrFmtDuplicateID       = "%w: duplicate %s id %d"
	ErrFmtDuplicateName     = "%w: %s %q"
	ErrFmtDanglingReference = "%w: %s %q references property %d"
	ErrFmtNegativePrice     = "%w: %s %q"
	ErrFmtNoProperties      = "%w: no properties defined"
)

// Entity kinds used in error messages
const (
	kindProperty = "property"
	kindBaseItem = "base item"
	kindModifier = "modifier"
	kindTier     = "tier"
)

// ==================== Log Messages ====================

const (
	LogMsgCatalogLoaded = "Catalog loaded"
)
