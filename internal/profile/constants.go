package profile

// Wildcard selects every base item or modifier in the catalog
const Wildcard = "*"

// Profile file extensions
var fileExtensions = []string{".yaml", ".yml"}

// Error messages
const (
	ErrMsgReadProfileFailed  = "failed to read profile %s: %w"
	ErrMsgParseProfileFailed = "failed to parse profile: %w"
	ErrMsgInvalidProfile     = "invalid profile %q: %s"
	ErrMsgReadDirFailed      = "failed to read profile directory: %w"
	ErrMsgDuplicateProfile   = "duplicate profile name %q in %s"
)

// Log messages
const (
	LogMsgProfilesLoaded = "Search profiles loaded"
)
