package sse

import "github.com/osse101/MixOptimizer_Go/internal/report"

// SearchStartedPayload describes a search the service is about to run
type SearchStartedPayload struct {
	RequestID    string   `json:"request_id,omitempty"`
	Filter       string   `json:"filter"`
	BaseItems    int      `json:"base_items"`
	Modifiers    int      `json:"modifiers"`
	MaxModifiers int      `json:"max_modifiers"`
	Ranking      []string `json:"ranking"`
}

// SearchProgressPayload reports how far the running searches have got
type SearchProgressPayload struct {
	Evaluated  uint64  `json:"evaluated"`
	Candidates uint64  `json:"candidates"`
	Percent    float64 `json:"percent"`
}

// SearchFinishedPayload carries the outcome of a search run. Exactly one of
// Result and Error is set.
type SearchFinishedPayload struct {
	RequestID string       `json:"request_id,omitempty"`
	Filter    string       `json:"filter"`
	Result    *report.View `json:"result,omitempty"`
	Error     string       `json:"error,omitempty"`
}
