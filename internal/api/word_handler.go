package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rillka/wordbank-api/internal/api/shared"
	"github.com/rillka/wordbank-api/internal/domain"
	"github.com/rillka/wordbank-api/internal/store"
)

// WordHandler handles word catalog API requests.
type WordHandler struct {
	wordStore store.WordStore
	tagStore  store.TagStore
	validator *validator.Validate
	logger    *slog.Logger
}

// NewWordHandler creates a new WordHandler with the given dependencies.
func NewWordHandler(wordStore store.WordStore, tagStore store.TagStore, log *slog.Logger) *WordHandler {
	if log == nil {
		log = slog.Default()
	}
	return &WordHandler{
		wordStore: wordStore,
		tagStore:  tagStore,
		validator: validator.New(),
		logger:    log.With(slog.String("component", "word_handler")),
	}
}

// CreateWord handles POST /words.
func (h *WordHandler) CreateWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}

	var req CreateWordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	word, err := domain.NewWord(userID, req.Text, req.Translation, req.Example, req.Language)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid word data: "+err.Error())
		return
	}

	tags, err := h.resolveTags(r.Context(), req.Tags)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to resolve tags", err)
		return
	}
	word.Tags = tags

	if err := h.wordStore.Create(r.Context(), word); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, word)
}

// GetWord handles GET /words/{id}.
func (h *WordHandler) GetWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}

	wordID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid word ID")
		return
	}

	word, err := h.wordStore.GetByID(r.Context(), wordID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	// A foreign pending word is indistinguishable from a missing one.
	if !word.VisibleTo(userID) {
		shared.RespondWithError(w, r, http.StatusNotFound, "Word not found")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, word)
}

// ListWords handles GET /words.
func (h *WordHandler) ListWords(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}

	words, err := h.wordStore.ListByOwner(r.Context(), userID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, words)
}

// UpdateWord handles PUT /words/{id}. Only catalog fields are editable;
// level and the review timestamps move exclusively through the review path.
func (h *WordHandler) UpdateWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}

	wordID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid word ID")
		return
	}

	var req UpdateWordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	word, err := h.wordStore.GetByID(r.Context(), wordID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	if word.OwnerID != userID {
		shared.RespondWithError(w, r, http.StatusForbidden, "You do not own this word")
		return
	}

	tags, err := h.resolveTags(r.Context(), req.Tags)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError, "Failed to resolve tags", err)
		return
	}

	word.Text = req.Text
	word.Translation = req.Translation
	word.Example = req.Example
	word.Language = req.Language
	word.Tags = tags

	if err := h.wordStore.Update(r.Context(), word); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, word)
}

// DeleteWord handles DELETE /words/{id}.
func (h *WordHandler) DeleteWord(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(w, r)
	if !ok {
		return
	}

	wordID, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid word ID")
		return
	}

	word, err := h.wordStore.GetByID(r.Context(), wordID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}
	if word.OwnerID != userID {
		shared.RespondWithError(w, r, http.StatusForbidden, "You do not own this word")
		return
	}

	if err := h.wordStore.Delete(r.Context(), wordID); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListTags handles GET /tags.
func (h *WordHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAuth(w, r); !ok {
		return
	}

	tags, err := h.tagStore.List(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, tags)
}

// resolveTags maps tag names onto tags, creating any that do not exist yet.
func (h *WordHandler) resolveTags(ctx context.Context, names []string) ([]domain.Tag, error) {
	if len(names) == 0 {
		return nil, nil
	}

	tags := make([]domain.Tag, 0, len(names))
	for _, name := range names {
		tag, err := h.tagStore.GetByName(ctx, name)
		if err == nil {
			tags = append(tags, *tag)
			continue
		}
		if !errors.Is(err, store.ErrTagNotFound) {
			return nil, err
		}

		created, err := domain.NewTag(name)
		if err != nil {
			return nil, err
		}
		if err := h.tagStore.Create(ctx, created); err != nil {
			// Lost a race with a concurrent create; re-read.
			if errors.Is(err, store.ErrDuplicate) {
				tag, err = h.tagStore.GetByName(ctx, name)
				if err != nil {
					return nil, err
				}
				tags = append(tags, *tag)
				continue
			}
			return nil, err
		}
		tags = append(tags, *created)
	}
	return tags, nil
}
