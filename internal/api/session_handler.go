package api

import (
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rillka/wordbank-api/internal/api/shared"
	"github.com/rillka/wordbank-api/internal/service/review"
	"github.com/rillka/wordbank-api/internal/service/session"
)

// SessionHandler assembles practice decks and records session answers.
type SessionHandler struct {
	sessionService session.Service
	validator      *validator.Validate
	logger         *slog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService session.Service, log *slog.Logger) *SessionHandler {
	if log == nil {
		log = slog.Default()
	}
	return &SessionHandler{
		sessionService: sessionService,
		validator:      validator.New(),
		logger:         log.With(slog.String("component", "session_handler")),
	}
}

// StartSession handles POST /sessions.
func (h *SessionHandler) StartSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}

	var req StartSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	deck, err := h.sessionService.Start(r.Context(), userID, session.StartRequest{
		Mode:     req.Mode,
		Limit:    req.Limit,
		Language: req.Language,
		TagID:    req.TagID,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, SessionResponse{
		Mode:  deck.Mode,
		Words: deck.Words,
		Count: len(deck.Words),
	})
}

// SubmitAnswer handles POST /sessions/answers/{id}. Owned words move through
// the scheduler; foreign approved words only land in the progress ledger.
func (h *SessionHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}

	wordID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid word ID")
		return
	}

	var req SessionAnswerRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	result, err := h.sessionService.SubmitAnswer(r.Context(), userID, wordID, review.Answer{
		IsCorrect: *req.IsCorrect,
		Answer:    req.Answer,
		ElapsedMs: req.ElapsedMs,
	}, req.Counters)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, AnswerResponse{
		Word:          result.Word,
		Progress:      result.Entry,
		CorrectAnswer: result.CorrectAnswer,
		Scheduled:     result.Scheduled,
		Counters:      result.Counters,
	})
}
