package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/osse101/MixOptimizer_Go/internal/logger"
	"github.com/osse101/MixOptimizer_Go/internal/profile"
	"github.com/osse101/MixOptimizer_Go/internal/search"
)

// ProfileSource looks up saved searches. *profile.Registry implements it.
type ProfileSource interface {
	Get(name string) (*profile.Profile, error)
	List() []*profile.Profile
}

// ProfilesResponse lists the saved searches
type ProfilesResponse struct {
	Profiles []*profile.Profile `json:"profiles"`
}

// HandleListProfiles returns every loaded profile
func HandleListProfiles(profiles ProfileSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list := profiles.List()
		if list == nil {
			list = []*profile.Profile{}
		}
		respondJSON(w, http.StatusOK, ProfilesResponse{Profiles: list})
	}
}

// HandleProfileSearch runs the profile named in the path
func HandleProfileSearch(svc search.Service, profiles ProfileSource) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		if name == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingPathParam, "name"))
			return
		}

		logger.FromContext(r.Context()).Info(LogMsgProfileRequested, "profile", name)

		p, err := profiles.Get(name)
		if err != nil {
			respondServiceError(w, r, "Profile search", err)
			return
		}

		f, err := p.Filter(svc.NewFilterBuilder())
		if err != nil {
			respondServiceError(w, r, "Profile search", err)
			return
		}
		runSearch(w, r, svc, f, "Profile search")
	}
}
