package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rillka/wordbank-api/internal/domain"
	"github.com/rillka/wordbank-api/internal/service/practice"
)

// mockPracticeService is a mock implementation of the practice.Service interface.
type mockPracticeService struct {
	candidatesFn func(ctx context.Context, ownerID uuid.UUID, mode practice.Mode, limit int) ([]*domain.Word, error)
}

func (m *mockPracticeService) Candidates(
	ctx context.Context,
	ownerID uuid.UUID,
	mode practice.Mode,
	limit int,
) ([]*domain.Word, error) {
	return m.candidatesFn(ctx, ownerID, mode, limit)
}

func TestPracticeCandidates(t *testing.T) {
	userID := uuid.New()
	german := testWord(t, userID)
	spanish := testWord(t, userID)
	spanish.Language = "es"

	tag, err := domain.NewTag("verbs")
	if err != nil {
		t.Fatalf("failed to create tag: %v", err)
	}
	german.Tags = []domain.Tag{*tag}

	tests := []struct {
		name           string
		target         string
		serviceError   error
		expectedStatus int
		expectedCount  int
		expectedLimit  int
	}{
		{
			name:           "Default Limit",
			target:         "/practice/candidates?mode=new-words",
			expectedStatus: http.StatusOK,
			expectedCount:  2,
			expectedLimit:  defaultCandidateLimit,
		},
		{
			name:           "Explicit Limit",
			target:         "/practice/candidates?mode=week&limit=5",
			expectedStatus: http.StatusOK,
			expectedCount:  2,
			expectedLimit:  5,
		},
		{
			name:           "Language Filter",
			target:         "/practice/candidates?mode=new-words&language=es",
			expectedStatus: http.StatusOK,
			expectedCount:  1,
			expectedLimit:  defaultCandidateLimit,
		},
		{
			name:           "Tag Filter",
			target:         "/practice/candidates?mode=new-words&tag=" + tag.ID.String(),
			expectedStatus: http.StatusOK,
			expectedCount:  1,
			expectedLimit:  defaultCandidateLimit,
		},
		{
			name:           "Bad Tag",
			target:         "/practice/candidates?mode=new-words&tag=not-a-uuid",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Bad Limit",
			target:         "/practice/candidates?mode=new-words&limit=nope",
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Unknown Mode",
			target:         "/practice/candidates?mode=bogus",
			serviceError:   practice.ErrUnknownMode,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var capturedLimit int
			svc := &mockPracticeService{
				candidatesFn: func(ctx context.Context, ownerID uuid.UUID, mode practice.Mode, limit int) ([]*domain.Word, error) {
					capturedLimit = limit
					if tc.serviceError != nil {
						return nil, tc.serviceError
					}
					return []*domain.Word{german, spanish}, nil
				},
			}
			handler := NewPracticeHandler(svc, nil)

			req := authedRequest(t, "GET", tc.target, nil, userID)
			rr := httptest.NewRecorder()
			handler.Candidates(rr, req)

			if rr.Code != tc.expectedStatus {
				t.Errorf("wrong status code: got %v want %v (body: %s)", rr.Code, tc.expectedStatus, rr.Body.String())
			}

			if tc.expectedStatus == http.StatusOK {
				if capturedLimit != tc.expectedLimit {
					t.Errorf("wrong limit passed to service: got %d want %d", capturedLimit, tc.expectedLimit)
				}
				var resp CandidatesResponse
				if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.Count != tc.expectedCount {
					t.Errorf("wrong count: got %d want %d", resp.Count, tc.expectedCount)
				}
			}
		})
	}
}
