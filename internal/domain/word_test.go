package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestNewWord(t *testing.T) {
	t.Parallel() // Enable parallel execution
	ownerID := uuid.New()

	t.Run("valid word starts at level 1 with no review scheduled", func(t *testing.T) {
		word, err := NewWord(ownerID, "aprender", "to learn", "Quiero aprender español.", "es")
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		if word.Level != MinLevel {
			t.Errorf("Expected level %d, got %d", MinLevel, word.Level)
		}
		if word.NextReviewAt != nil {
			t.Errorf("Expected nil next review, got %v", word.NextReviewAt)
		}
		if word.ReviewCount != 0 {
			t.Errorf("Expected review count 0, got %d", word.ReviewCount)
		}
		if word.ApprovalStatus != ApprovalStatusPending {
			t.Errorf("Expected pending approval, got %s", word.ApprovalStatus)
		}
	})

	t.Run("missing text is rejected", func(t *testing.T) {
		_, err := NewWord(ownerID, "", "to learn", "", "es")
		if err != ErrWordTextEmpty {
			t.Errorf("Expected ErrWordTextEmpty, got %v", err)
		}
	})

	t.Run("missing translation is rejected", func(t *testing.T) {
		_, err := NewWord(ownerID, "aprender", "", "", "es")
		if err != ErrWordTranslationEmpty {
			t.Errorf("Expected ErrWordTranslationEmpty, got %v", err)
		}
	})

	t.Run("missing owner is rejected", func(t *testing.T) {
		_, err := NewWord(uuid.Nil, "aprender", "to learn", "", "es")
		if err != ErrWordOwnerIDEmpty {
			t.Errorf("Expected ErrWordOwnerIDEmpty, got %v", err)
		}
	})
}

func TestWordValidateLevel(t *testing.T) {
	t.Parallel() // Enable parallel execution

	word, err := NewWord(uuid.New(), "hund", "dog", "", "de")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	word.Level = 6
	if err := word.Validate(); err != ErrInvalidLevel {
		t.Errorf("Expected ErrInvalidLevel for level 6, got %v", err)
	}

	word.Level = 0
	if err := word.Validate(); err != ErrInvalidLevel {
		t.Errorf("Expected ErrInvalidLevel for level 0, got %v", err)
	}
}

func TestWordVisibleTo(t *testing.T) {
	t.Parallel() // Enable parallel execution
	owner := uuid.New()
	stranger := uuid.New()

	word, err := NewWord(owner, "katt", "cat", "", "sv")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if !word.VisibleTo(owner) {
		t.Error("Expected owner to see their own pending word")
	}
	if word.VisibleTo(stranger) {
		t.Error("Expected stranger not to see a pending word")
	}

	word.ApprovalStatus = ApprovalStatusApproved
	if !word.VisibleTo(stranger) {
		t.Error("Expected stranger to see an approved word")
	}

	word.ApprovalStatus = ApprovalStatusRejected
	if word.VisibleTo(stranger) {
		t.Error("Expected stranger not to see a rejected word")
	}
	if !word.VisibleTo(owner) {
		t.Error("Expected owner to still see their rejected word")
	}
}

func TestWordHasTag(t *testing.T) {
	t.Parallel() // Enable parallel execution

	tagID := uuid.New()
	word := &Word{Tags: []Tag{{ID: tagID, Name: "verbs"}}}

	if !word.HasTag(tagID) {
		t.Error("Expected word to hold its tag")
	}
	if word.HasTag(uuid.New()) {
		t.Error("Expected word not to hold an unrelated tag")
	}
}
