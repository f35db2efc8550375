package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rillka/wordbank-api/internal/api/shared"
	"github.com/rillka/wordbank-api/internal/grading"
	"github.com/rillka/wordbank-api/internal/service/review"
	"github.com/rillka/wordbank-api/internal/store"
)

// WritingHandler grades free-written sentences against a word and records the
// outcome as a non-scheduling attempt.
type WritingHandler struct {
	grader        grading.Grader
	reviewService review.Service
	wordStore     store.WordStore
	validator     *validator.Validate
	logger        *slog.Logger
}

// NewWritingHandler creates a new WritingHandler. A nil grader disables the
// endpoint; requests then fail with 503 instead of panicking at startup.
func NewWritingHandler(grader grading.Grader, reviewService review.Service, wordStore store.WordStore, log *slog.Logger) *WritingHandler {
	if log == nil {
		log = slog.Default()
	}
	return &WritingHandler{
		grader:        grader,
		reviewService: reviewService,
		wordStore:     wordStore,
		validator:     validator.New(),
		logger:        log.With(slog.String("component", "writing_handler")),
	}
}

// Feedback handles POST /writing/feedback.
func (h *WritingHandler) Feedback(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}

	if h.grader == nil {
		shared.RespondWithError(w, r, http.StatusServiceUnavailable, "Writing feedback is not configured")
		return
	}

	var req WritingFeedbackRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	word, err := h.wordStore.GetByID(r.Context(), req.WordID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	if !word.VisibleTo(userID) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Word not found")
		return
	}

	verdict, err := h.grader.Grade(r.Context(), grading.Submission{
		Word:        word.Text,
		Translation: word.Translation,
		Sentence:    req.Sentence,
		Language:    word.Language,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	entry, err := h.reviewService.RecordAttempt(r.Context(), userID, word.ID, review.Answer{
		IsCorrect: verdict.IsCorrect,
		Answer:    req.Sentence,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, WritingFeedbackResponse{
		Verdict:  verdict,
		Progress: entry,
	})
}
