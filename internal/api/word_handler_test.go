package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/rillka/wordbank-api/internal/domain"
	"github.com/rillka/wordbank-api/internal/mocks"
)

func newWordHandlerFixture() (*WordHandler, *mocks.MockWordStore, *mocks.MockTagStore) {
	wordStore := mocks.NewMockWordStore()
	tagStore := mocks.NewMockTagStore()
	return NewWordHandler(wordStore, tagStore, nil), wordStore, tagStore
}

func TestCreateWord(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		body           string
		userIDInCtx    uuid.UUID
		expectedStatus int
	}{
		{
			name:           "Success",
			body:           `{"text":"Haus","translation":"house","example":"Das Haus ist alt.","language":"de"}`,
			userIDInCtx:    userID,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "With Tags",
			body:           `{"text":"Baum","translation":"tree","language":"de","tags":["nature","nouns"]}`,
			userIDInCtx:    userID,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing Text",
			body:           `{"translation":"house","language":"de"}`,
			userIDInCtx:    userID,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Malformed JSON",
			body:           `{"text":`,
			userIDInCtx:    userID,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing User ID",
			body:           `{"text":"Haus","translation":"house","language":"de"}`,
			userIDInCtx:    uuid.Nil,
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler, wordStore, _ := newWordHandlerFixture()

			req := authedRequest(t, "POST", "/words", []byte(tc.body), tc.userIDInCtx)
			rr := httptest.NewRecorder()
			handler.CreateWord(rr, req)

			if rr.Code != tc.expectedStatus {
				t.Errorf("wrong status code: got %v want %v (body: %s)", rr.Code, tc.expectedStatus, rr.Body.String())
			}

			if tc.expectedStatus == http.StatusCreated {
				var created domain.Word
				if err := json.NewDecoder(rr.Body).Decode(&created); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if created.OwnerID != tc.userIDInCtx {
					t.Errorf("wrong owner: got %v want %v", created.OwnerID, tc.userIDInCtx)
				}
				if created.Level != domain.MinLevel {
					t.Errorf("new word should start at level %d, got %d", domain.MinLevel, created.Level)
				}
				if created.NextReviewAt != nil {
					t.Errorf("new word should have no scheduled review")
				}
				if _, ok := wordStore.Words[created.ID]; !ok {
					t.Errorf("word was not persisted")
				}
			}
		})
	}
}

func TestCreateWordResolvesNewTags(t *testing.T) {
	userID := uuid.New()
	handler, _, tagStore := newWordHandlerFixture()

	body := `{"text":"Baum","translation":"tree","language":"de","tags":["nature"]}`
	req := authedRequest(t, "POST", "/words", []byte(body), userID)
	rr := httptest.NewRecorder()
	handler.CreateWord(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("wrong status code: got %v (body: %s)", rr.Code, rr.Body.String())
	}

	var created domain.Word
	if err := json.NewDecoder(rr.Body).Decode(&created); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(created.Tags) != 1 || created.Tags[0].Name != "nature" {
		t.Fatalf("expected the nature tag on the word, got %+v", created.Tags)
	}

	// A second word reuses the already-created tag.
	body = `{"text":"Blume","translation":"flower","language":"de","tags":["nature"]}`
	req = authedRequest(t, "POST", "/words", []byte(body), userID)
	rr = httptest.NewRecorder()
	handler.CreateWord(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("wrong status code: got %v (body: %s)", rr.Code, rr.Body.String())
	}
	var second domain.Word
	if err := json.NewDecoder(rr.Body).Decode(&second); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if second.Tags[0].ID != created.Tags[0].ID {
		t.Errorf("expected tag reuse, got two distinct IDs")
	}
	if len(tagStore.Tags) != 1 {
		t.Errorf("expected exactly one stored tag, got %d", len(tagStore.Tags))
	}
}

func TestGetWordVisibility(t *testing.T) {
	userID := uuid.New()
	stranger := uuid.New()

	owned := testWord(t, userID)
	foreignPending := testWord(t, stranger)
	foreignApproved := testWord(t, stranger)
	foreignApproved.ApprovalStatus = domain.ApprovalStatusApproved

	handler, wordStore, _ := newWordHandlerFixture()
	wordStore.Add(owned, foreignPending, foreignApproved)

	tests := []struct {
		name           string
		wordID         uuid.UUID
		expectedStatus int
	}{
		{name: "Owned", wordID: owned.ID, expectedStatus: http.StatusOK},
		{name: "Foreign Pending Hidden", wordID: foreignPending.ID, expectedStatus: http.StatusNotFound},
		{name: "Foreign Approved Visible", wordID: foreignApproved.ID, expectedStatus: http.StatusOK},
		{name: "Unknown", wordID: uuid.New(), expectedStatus: http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := withPathID(authedRequest(t, "GET", "/words/"+tc.wordID.String(), nil, userID), tc.wordID)
			rr := httptest.NewRecorder()
			handler.GetWord(rr, req)

			if rr.Code != tc.expectedStatus {
				t.Errorf("wrong status code: got %v want %v", rr.Code, tc.expectedStatus)
			}
		})
	}
}

func TestUpdateWordOwnership(t *testing.T) {
	userID := uuid.New()
	stranger := uuid.New()

	foreign := testWord(t, stranger)
	foreign.ApprovalStatus = domain.ApprovalStatusApproved

	handler, wordStore, _ := newWordHandlerFixture()
	wordStore.Add(foreign)

	body := `{"text":"laufen","translation":"to walk","language":"de"}`
	req := withPathID(authedRequest(t, "PUT", "/words/"+foreign.ID.String(), []byte(body), userID), foreign.ID)
	rr := httptest.NewRecorder()
	handler.UpdateWord(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("wrong status code: got %v want %v", rr.Code, http.StatusForbidden)
	}
	if wordStore.Words[foreign.ID].Translation != "to run" {
		t.Errorf("foreign word must not be mutated")
	}
}

func TestUpdateWordKeepsSchedule(t *testing.T) {
	userID := uuid.New()
	word := testWord(t, userID)
	word.Level = 4

	handler, wordStore, _ := newWordHandlerFixture()
	wordStore.Add(word)

	body := `{"text":"laufen","translation":"to run, to walk","language":"de"}`
	req := withPathID(authedRequest(t, "PUT", "/words/"+word.ID.String(), []byte(body), userID), word.ID)
	rr := httptest.NewRecorder()
	handler.UpdateWord(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("wrong status code: got %v (body: %s)", rr.Code, rr.Body.String())
	}

	var updated domain.Word
	if err := json.NewDecoder(rr.Body).Decode(&updated); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if updated.Translation != "to run, to walk" {
		t.Errorf("translation was not updated")
	}
	if updated.Level != 4 {
		t.Errorf("level must survive a catalog edit: got %d want 4", updated.Level)
	}
}

func TestDeleteWord(t *testing.T) {
	userID := uuid.New()
	stranger := uuid.New()

	owned := testWord(t, userID)
	foreign := testWord(t, stranger)
	foreign.ApprovalStatus = domain.ApprovalStatusApproved

	handler, wordStore, _ := newWordHandlerFixture()
	wordStore.Add(owned, foreign)

	req := withPathID(authedRequest(t, "DELETE", "/words/"+owned.ID.String(), nil, userID), owned.ID)
	rr := httptest.NewRecorder()
	handler.DeleteWord(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("wrong status code: got %v want %v", rr.Code, http.StatusNoContent)
	}
	if _, ok := wordStore.Words[owned.ID]; ok {
		t.Errorf("word was not deleted")
	}

	req = withPathID(authedRequest(t, "DELETE", "/words/"+foreign.ID.String(), nil, userID), foreign.ID)
	rr = httptest.NewRecorder()
	handler.DeleteWord(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("wrong status code for foreign delete: got %v want %v", rr.Code, http.StatusForbidden)
	}
	if _, ok := wordStore.Words[foreign.ID]; !ok {
		t.Errorf("foreign word must not be deleted")
	}
}
