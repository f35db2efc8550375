package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rillka/wordbank-api/internal/api/shared"
	"github.com/rillka/wordbank-api/internal/domain"
	"github.com/rillka/wordbank-api/internal/mocks"
	"github.com/rillka/wordbank-api/internal/service/review"
)

// mockReviewService is a mock implementation of the review.Service interface.
type mockReviewService struct {
	dueWordsFn      func(ctx context.Context, ownerID uuid.UUID, limit int) ([]*domain.Word, error)
	submitReviewFn  func(ctx context.Context, ownerID, wordID uuid.UUID, answer review.Answer) (*review.Result, error)
	recordAttemptFn func(ctx context.Context, ownerID, wordID uuid.UUID, answer review.Answer) (*domain.ProgressEntry, error)
}

func (m *mockReviewService) DueWords(ctx context.Context, ownerID uuid.UUID, limit int) ([]*domain.Word, error) {
	return m.dueWordsFn(ctx, ownerID, limit)
}

func (m *mockReviewService) SubmitReview(
	ctx context.Context,
	ownerID, wordID uuid.UUID,
	answer review.Answer,
) (*review.Result, error) {
	return m.submitReviewFn(ctx, ownerID, wordID, answer)
}

func (m *mockReviewService) RecordAttempt(
	ctx context.Context,
	ownerID, wordID uuid.UUID,
	answer review.Answer,
) (*domain.ProgressEntry, error) {
	return m.recordAttemptFn(ctx, ownerID, wordID, answer)
}

func authedRequest(t *testing.T, method, target string, body []byte, userID uuid.UUID) *http.Request {
	t.Helper()

	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader([]byte{})
	} else {
		reader = bytes.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if userID != uuid.Nil {
		req = req.WithContext(context.WithValue(req.Context(), shared.UserIDContextKey, userID))
	}
	return req
}

func withPathID(req *http.Request, id uuid.UUID) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id.String())
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func testWord(t *testing.T, ownerID uuid.UUID) *domain.Word {
	t.Helper()
	word, err := domain.NewWord(ownerID, "laufen", "to run", "Ich laufe jeden Tag.", "de")
	if err != nil {
		t.Fatalf("failed to create test word: %v", err)
	}
	return word
}

func TestDueWords(t *testing.T) {
	userID := uuid.New()
	word := testWord(t, userID)

	tests := []struct {
		name           string
		target         string
		userIDInCtx    uuid.UUID
		serviceResult  []*domain.Word
		serviceError   error
		expectedStatus int
		expectedCount  int
	}{
		{
			name:           "Success",
			target:         "/reviews/due",
			userIDInCtx:    userID,
			serviceResult:  []*domain.Word{word},
			expectedStatus: http.StatusOK,
			expectedCount:  1,
		},
		{
			name:           "Empty Due Set",
			target:         "/reviews/due",
			userIDInCtx:    userID,
			serviceResult:  nil,
			expectedStatus: http.StatusOK,
			expectedCount:  0,
		},
		{
			name:           "Invalid Limit",
			target:         "/reviews/due?limit=zero",
			userIDInCtx:    userID,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Negative Limit",
			target:         "/reviews/due?limit=-3",
			userIDInCtx:    userID,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing User ID",
			target:         "/reviews/due",
			userIDInCtx:    uuid.Nil,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Store Failure",
			target:         "/reviews/due",
			userIDInCtx:    userID,
			serviceError:   errors.New("database error"),
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockReviewService{
				dueWordsFn: func(ctx context.Context, ownerID uuid.UUID, limit int) ([]*domain.Word, error) {
					return tc.serviceResult, tc.serviceError
				},
			}
			handler := NewReviewHandler(svc, mocks.NewMockWordStore(), nil)

			req := authedRequest(t, "GET", tc.target, nil, tc.userIDInCtx)
			rr := httptest.NewRecorder()
			handler.DueWords(rr, req)

			if rr.Code != tc.expectedStatus {
				t.Errorf("wrong status code: got %v want %v", rr.Code, tc.expectedStatus)
			}

			if tc.expectedStatus == http.StatusOK {
				var resp CandidatesResponse
				if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.Count != tc.expectedCount {
					t.Errorf("wrong count: got %d want %d", resp.Count, tc.expectedCount)
				}
				if resp.Mode != "due" {
					t.Errorf("wrong mode: got %q want %q", resp.Mode, "due")
				}
			}
		})
	}
}

func TestSubmitReviewEndpoint(t *testing.T) {
	userID := uuid.New()
	word := testWord(t, userID)
	word.Level = 3
	due := time.Now().UTC().Add(7 * 24 * time.Hour)
	word.NextReviewAt = &due

	entry, err := domain.NewProgressEntry(userID, word.ID, true, "to run", 1500, time.Now().UTC())
	if err != nil {
		t.Fatalf("failed to create test entry: %v", err)
	}

	validBody, _ := json.Marshal(SubmitAnswerRequest{
		IsCorrect: boolPtr(true),
		Answer:    "to run",
		ElapsedMs: 1500,
	})

	tests := []struct {
		name           string
		body           []byte
		userIDInCtx    uuid.UUID
		serviceResult  *review.Result
		serviceError   error
		expectedStatus int
	}{
		{
			name:        "Success",
			body:        validBody,
			userIDInCtx: userID,
			serviceResult: &review.Result{
				Word:         word,
				Entry:        entry,
				IntervalDays: 7,
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Word Not Found",
			body:           validBody,
			userIDInCtx:    userID,
			serviceError:   review.ErrWordNotFound,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "Not Owned",
			body:           validBody,
			userIDInCtx:    userID,
			serviceError:   review.ErrWordNotOwned,
			expectedStatus: http.StatusForbidden,
		},
		{
			name:           "Missing IsCorrect",
			body:           []byte(`{"answer":"to run"}`),
			userIDInCtx:    userID,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Malformed JSON",
			body:           []byte(`{not json`),
			userIDInCtx:    userID,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing User ID",
			body:           validBody,
			userIDInCtx:    uuid.Nil,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockReviewService{
				submitReviewFn: func(ctx context.Context, ownerID, wordID uuid.UUID, answer review.Answer) (*review.Result, error) {
					return tc.serviceResult, tc.serviceError
				},
			}
			handler := NewReviewHandler(svc, mocks.NewMockWordStore(), nil)

			req := withPathID(authedRequest(t, "POST", "/words/"+word.ID.String()+"/review", tc.body, tc.userIDInCtx), word.ID)
			rr := httptest.NewRecorder()
			handler.SubmitReview(rr, req)

			if rr.Code != tc.expectedStatus {
				t.Errorf("wrong status code: got %v want %v (body: %s)", rr.Code, tc.expectedStatus, rr.Body.String())
			}

			if tc.expectedStatus == http.StatusOK {
				var resp ReviewResponse
				if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.IntervalDays != 7 {
					t.Errorf("wrong interval: got %d want 7", resp.IntervalDays)
				}
				if resp.Word == nil || resp.Word.Level != 3 {
					t.Errorf("expected word at level 3 in response")
				}
				if resp.Progress == nil {
					t.Errorf("expected progress entry in response")
				}
			}
		})
	}
}

func TestRecordAttemptEndpoint(t *testing.T) {
	userID := uuid.New()
	owner := uuid.New()
	word := testWord(t, owner)
	word.ApprovalStatus = domain.ApprovalStatusApproved

	entry, err := domain.NewProgressEntry(userID, word.ID, false, "guess", 900, time.Now().UTC())
	if err != nil {
		t.Fatalf("failed to create test entry: %v", err)
	}

	wordStore := mocks.NewMockWordStore()
	wordStore.Add(word)

	svc := &mockReviewService{
		recordAttemptFn: func(ctx context.Context, ownerID, wordID uuid.UUID, answer review.Answer) (*domain.ProgressEntry, error) {
			if answer.IsCorrect {
				t.Errorf("expected incorrect answer to pass through")
			}
			return entry, nil
		},
	}
	handler := NewReviewHandler(svc, wordStore, nil)

	body, _ := json.Marshal(SubmitAnswerRequest{
		IsCorrect: boolPtr(false),
		Answer:    "guess",
		ElapsedMs: 900,
	})
	req := withPathID(authedRequest(t, "POST", "/words/"+word.ID.String()+"/attempt", body, userID), word.ID)
	rr := httptest.NewRecorder()
	handler.RecordAttempt(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("wrong status code: got %v want %v (body: %s)", rr.Code, http.StatusOK, rr.Body.String())
	}

	var resp AttemptResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.CorrectAnswer != "to run" {
		t.Errorf("wrong correct answer: got %q want %q", resp.CorrectAnswer, "to run")
	}
	if resp.Progress == nil {
		t.Errorf("expected progress entry in response")
	}
}

func boolPtr(b bool) *bool {
	return &b
}
