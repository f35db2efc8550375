package api

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/rillka/wordbank-api/internal/api/shared"
	"github.com/rillka/wordbank-api/internal/service/review"
	"github.com/rillka/wordbank-api/internal/store"
)

const defaultDueLimit = 20

// ReviewHandler handles review scheduling API requests.
type ReviewHandler struct {
	reviewService review.Service
	wordStore     store.WordStore
	validator     *validator.Validate
	logger        *slog.Logger
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(reviewService review.Service, wordStore store.WordStore, log *slog.Logger) *ReviewHandler {
	if log == nil {
		log = slog.Default()
	}
	return &ReviewHandler{
		reviewService: reviewService,
		wordStore:     wordStore,
		validator:     validator.New(),
		logger:        log.With(slog.String("component", "review_handler")),
	}
}

// DueWords handles GET /reviews/due?limit=<n>.
func (h *ReviewHandler) DueWords(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}

	limit := defaultDueLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			shared.RespondWithError(w, r, http.StatusBadRequest, "Limit must be a positive integer")
			return
		}
		limit = parsed
	}

	words, err := h.reviewService.DueWords(r.Context(), userID, limit)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, CandidatesResponse{
		Mode:  "due",
		Words: words,
		Count: len(words),
	})
}

// SubmitReview handles POST /words/{id}/review. The word must be owned by the
// caller; its schedule moves and the answer lands in the progress ledger.
func (h *ReviewHandler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}

	wordID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid word ID")
		return
	}

	answer, ok := h.decodeAnswer(w, r)
	if !ok {
		return
	}

	result, err := h.reviewService.SubmitReview(r.Context(), userID, wordID, answer)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, ReviewResponse{
		Word:         result.Word,
		Progress:     result.Entry,
		IntervalDays: result.IntervalDays,
	})
}

// RecordAttempt handles POST /words/{id}/attempt. The word only needs to be
// visible to the caller; nothing about its schedule changes.
func (h *ReviewHandler) RecordAttempt(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}

	wordID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid word ID")
		return
	}

	answer, ok := h.decodeAnswer(w, r)
	if !ok {
		return
	}

	entry, err := h.reviewService.RecordAttempt(r.Context(), userID, wordID, answer)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	word, err := h.wordStore.GetByID(r.Context(), wordID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AttemptResponse{
		Progress:      entry,
		CorrectAnswer: word.Translation,
	})
}

func (h *ReviewHandler) decodeAnswer(w http.ResponseWriter, r *http.Request) (review.Answer, bool) {
	var req SubmitAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return review.Answer{}, false
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return review.Answer{}, false
	}
	return review.Answer{
		IsCorrect: *req.IsCorrect,
		Answer:    req.Answer,
		ElapsedMs: req.ElapsedMs,
	}, true
}
