package handler

import (
	"net/http"

	"github.com/osse101/MixOptimizer_Go/internal/domain"
	"github.com/osse101/MixOptimizer_Go/internal/search"
)

// CatalogResponse lists the reference data searches run against
type CatalogResponse struct {
	Fingerprint string            `json:"fingerprint,omitempty"`
	Properties  []domain.Property `json:"properties"`
	BaseItems   []domain.BaseItem `json:"base_items"`
	Modifiers   []domain.Modifier `json:"modifiers"`
	Tiers       []domain.Tier     `json:"tiers,omitempty"`
}

// tierLister is implemented by catalogs that carry unlock tiers
type tierLister interface {
	Tiers() []domain.Tier
}

// HandleGetCatalog returns the loaded catalog
func HandleGetCatalog(svc search.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := svc.Catalog()
		resp := CatalogResponse{
			Properties: c.Properties(),
			BaseItems:  c.BaseItems(),
			Modifiers:  c.Modifiers(),
		}
		if fp, ok := c.(search.Fingerprinter); ok {
			resp.Fingerprint = fp.Fingerprint()
		}
		if tl, ok := c.(tierLister); ok {
			resp.Tiers = tl.Tiers()
		}
		respondJSON(w, http.StatusOK, resp)
	}
}
