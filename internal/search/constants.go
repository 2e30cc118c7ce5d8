package search

// ==================== Optimize Targets ====================

// Optimize target names as accepted by ParseTarget
const (
	TargetNameProfit        = "profit"
	TargetNameSellPrice     = "sell_price"
	TargetNameCost          = "cost"
	TargetNameFewestEffects = "fewest_effects"
	TargetNameMostEffects   = "most_effects"
	TargetNameMultiplier    = "multiplier"
	TargetNameIngredients   = "ingredients"
)

// ==================== Cache ====================

// Cache defaults
const (
	DefaultCacheSize = 256
)

// ==================== Log Messages ====================

// Engine log messages
const (
	LogMsgSearchStarted     = "Search started"
	LogMsgSearchCompleted   = "Search completed"
	LogMsgSearchNoCandidate = "Search found no admissible candidate"
	LogMsgSearchAborted     = "Search aborted"
)

// Service log messages
const (
	LogMsgCacheHit     = "Search result served from cache"
	LogMsgSearchShared = "Search result shared with concurrent caller"
	LogMsgMixEvaluated = "Mix evaluated"
)
