package handler

import (
	"net/http"

	"github.com/osse101/MixOptimizer_Go/internal/logger"
	"github.com/osse101/MixOptimizer_Go/internal/profile"
	"github.com/osse101/MixOptimizer_Go/internal/report"
	"github.com/osse101/MixOptimizer_Go/internal/search"
)

// SearchRequest is an ad-hoc search. "*" in base_items or modifiers selects
// every catalog entry.
type SearchRequest struct {
	BaseItems    []string `json:"base_items" validate:"required,min=1,max=256,dive,required,max=64"`
	Modifiers    []string `json:"modifiers" validate:"required,min=1,max=256,dive,required,max=64"`
	Required     []string `json:"required,omitempty" validate:"max=256,dive,required,max=64"`
	Blocked      []string `json:"blocked,omitempty" validate:"max=256,dive,required,max=64"`
	Targets      []string `json:"targets,omitempty" validate:"max=16,dive,target"`
	MaxModifiers *int     `json:"max_modifiers,omitempty" validate:"omitempty,gte=0,lte=16"`
	MaxTier      string   `json:"max_tier,omitempty" validate:"max=64"`
}

func (req SearchRequest) profile() *profile.Profile {
	return &profile.Profile{
		BaseItems:    req.BaseItems,
		Modifiers:    req.Modifiers,
		Required:     req.Required,
		Blocked:      req.Blocked,
		Targets:      req.Targets,
		MaxModifiers: req.MaxModifiers,
		MaxTier:      req.MaxTier,
	}
}

// HandleSearch runs an ad-hoc search and returns the best mix. A search
// with no admissible candidate answers 200 with found=false.
func HandleSearch(svc search.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SearchRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Search"); err != nil {
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgSearchRequested,
			"base_items", len(req.BaseItems),
			"modifiers", len(req.Modifiers),
			"targets", req.Targets)

		f, err := req.profile().Apply(svc.NewFilterBuilder()).Build()
		if err != nil {
			respondServiceError(w, r, "Search", err)
			return
		}
		runSearch(w, r, svc, f, "Search")
	}
}

func runSearch(w http.ResponseWriter, r *http.Request, svc search.Service, f *search.Filter, op string) {
	res, err := svc.Search(r.Context(), f)
	if err != nil {
		respondServiceError(w, r, op, err)
		return
	}
	respondJSON(w, http.StatusOK, report.NewView(res))
}
