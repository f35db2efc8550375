package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/rillka/wordbank-api/internal/api/shared"
	"github.com/rillka/wordbank-api/internal/service/stats"
)

// StatsHandler serves study statistics.
type StatsHandler struct {
	statsService stats.Service
	timeFunc     func() time.Time
	logger       *slog.Logger
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService stats.Service, log *slog.Logger) *StatsHandler {
	if log == nil {
		log = slog.Default()
	}
	return &StatsHandler{
		statsService: statsService,
		timeFunc:     time.Now,
		logger:       log.With(slog.String("component", "stats_handler")),
	}
}

// DailyStatus handles GET /stats/daily. The optional date query parameter
// (YYYY-MM-DD, interpreted as UTC) pins the computation to a specific day.
func (h *StatsHandler) DailyStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}

	today := h.timeFunc()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Date must be in YYYY-MM-DD format")
			return
		}
		today = parsed
	}

	status, err := h.statsService.Status(r.Context(), userID, today)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, status)
}
