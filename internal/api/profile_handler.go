package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rillka/wordbank-api/internal/api/shared"
	"github.com/rillka/wordbank-api/internal/domain"
	"github.com/rillka/wordbank-api/internal/service/stats"
	"github.com/rillka/wordbank-api/internal/store"
)

// ProfileHandler handles learner profile API requests.
type ProfileHandler struct {
	profileStore store.ProfileStore
	statsService stats.Service
	validator    *validator.Validate
	timeFunc     func() time.Time
	logger       *slog.Logger
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileStore store.ProfileStore, statsService stats.Service, log *slog.Logger) *ProfileHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ProfileHandler{
		profileStore: profileStore,
		statsService: statsService,
		validator:    validator.New(),
		timeFunc:     time.Now,
		logger:       log.With(slog.String("component", "profile_handler")),
	}
}

// GetProfile handles GET /profile. The profile's streak fields are a cache
// over the progress ledger, so they are recomputed before the read; a failed
// refresh logs and serves the stale copy rather than failing the request.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}

	if err := h.statsService.RefreshProfileCache(r.Context(), userID, h.timeFunc()); err != nil {
		h.logger.Warn("failed to refresh profile streak cache",
			slog.String("user_id", userID.String()),
			slog.String("error", err.Error()))
	}

	profile, err := h.profileStore.GetByUserID(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}

// UpdateProfile handles PUT /profile. Only the fields present in the request
// change; the cached streak fields are managed by the stats service.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	profile, err := h.profileStore.GetByUserID(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if req.DailyGoal != nil {
		profile.DailyGoal = *req.DailyGoal
	}
	if req.ProficiencyTier != nil {
		profile.ProficiencyTier = domain.ProficiencyTier(*req.ProficiencyTier)
	}
	if err := profile.Validate(); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid profile data: "+err.Error())
		return
	}

	if err := h.profileStore.Update(r.Context(), profile); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, profile)
}
