package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/osse101/MixOptimizer_Go/internal/domain"
	"github.com/osse101/MixOptimizer_Go/internal/logger"
	"github.com/osse101/MixOptimizer_Go/internal/report"
	"github.com/osse101/MixOptimizer_Go/internal/search"
)

// MixRequest names one base item and the modifiers applied to it, in order
type MixRequest struct {
	BaseItem  string   `json:"base_item" validate:"required,max=64"`
	Modifiers []string `json:"modifiers" validate:"max=32,dive,required,max=64"`
}

// HandleEvaluateMix prices a given mix without searching
func HandleEvaluateMix(svc search.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req MixRequest
		if err := DecodeAndValidateRequest(r, w, &req, "Evaluate mix"); err != nil {
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgMixRequested,
			"base_item", req.BaseItem,
			"modifiers", len(req.Modifiers))

		base, mods, err := resolveMix(svc.Catalog(), req)
		if err != nil {
			respondServiceError(w, r, "Evaluate mix", err)
			return
		}

		respondJSON(w, http.StatusOK, report.NewView(svc.Evaluate(r.Context(), base, mods)))
	}
}

// resolveMix looks up every name in req, reporting all unknown names
func resolveMix(c search.Catalog, req MixRequest) (domain.BaseItem, []domain.Modifier, error) {
	var errs []error

	base, ok := c.BaseItemByName(req.BaseItem)
	if !ok {
		errs = append(errs, fmt.Errorf("%w: %q", domain.ErrUnknownBaseItem, req.BaseItem))
	}

	mods := make([]domain.Modifier, 0, len(req.Modifiers))
	for _, name := range req.Modifiers {
		m, ok := c.ModifierByName(name)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %q", domain.ErrUnknownModifier, name))
			continue
		}
		mods = append(mods, m)
	}

	if len(errs) > 0 {
		return domain.BaseItem{}, nil, errors.Join(errs...)
	}
	return base, mods, nil
}
