package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/rillka/wordbank-api/internal/api/shared"
	"github.com/rillka/wordbank-api/internal/domain"
	"github.com/rillka/wordbank-api/internal/service/practice"
	"github.com/samber/lo"
)

const defaultCandidateLimit = 20

// PracticeHandler serves practice candidate listings.
type PracticeHandler struct {
	practiceService practice.Service
	logger          *slog.Logger
}

// NewPracticeHandler creates a new PracticeHandler.
func NewPracticeHandler(practiceService practice.Service, log *slog.Logger) *PracticeHandler {
	if log == nil {
		log = slog.Default()
	}
	return &PracticeHandler{
		practiceService: practiceService,
		logger:          log.With(slog.String("component", "practice_handler")),
	}
}

// Candidates handles GET /practice/candidates?mode=<mode>&limit=<n>.
// Optional language and tag query parameters narrow the result after
// selection; filtered-out words are not replaced.
func (h *PracticeHandler) Candidates(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}

	mode := practice.Mode(r.URL.Query().Get("mode"))
	limit := defaultCandidateLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Limit must be a positive integer")
			return
		}
		limit = parsed
	}

	var tagID *uuid.UUID
	if raw := r.URL.Query().Get("tag"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Tag must be a valid UUID")
			return
		}
		tagID = &parsed
	}
	language := r.URL.Query().Get("language")

	words, err := h.practiceService.Candidates(r.Context(), userID, mode, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	if language != "" {
		words = lo.Filter(words, func(w *domain.Word, _ int) bool {
			return w.Language == language
		})
	}
	if tagID != nil {
		words = lo.Filter(words, func(w *domain.Word, _ int) bool {
			return w.HasTag(*tagID)
		})
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CandidatesResponse{
		Mode:  string(mode),
		Words: words,
		Count: len(words),
	})
}
