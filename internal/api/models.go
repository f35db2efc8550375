package api

import (
	"github.com/google/uuid"
	"github.com/rillka/wordbank-api/internal/domain"
	"github.com/rillka/wordbank-api/internal/grading"
	"github.com/rillka/wordbank-api/internal/service/session"
)

// Common request/response structures

// RegisterRequest defines the payload for the user registration endpoint.
// The proficiency tier seeds the learner profile; it defaults to the lowest
// tier when omitted.
type RegisterRequest struct {
	Email           string `json:"email"            validate:"required,email"`
	Password        string `json:"password"         validate:"required,min=12,max=72"`
	ProficiencyTier int    `json:"proficiency_tier" validate:"omitempty,gte=1,lte=6"`
}

// LoginRequest defines the payload for the user login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for authentication endpoints.
type AuthResponse struct {
	UserID uuid.UUID `json:"user_id"`

	// AccessToken is the JWT token used for API authorization
	AccessToken string `json:"token"`

	// RefreshToken is the JWT token used to obtain new access tokens
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RefreshTokenRequest defines the payload for the token refresh endpoint.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// RefreshTokenResponse defines the successful response for the token refresh endpoint.
type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// CreateWordRequest defines the payload for adding a word to the catalog.
type CreateWordRequest struct {
	Text        string   `json:"text"        validate:"required,max=200"`
	Translation string   `json:"translation" validate:"required,max=500"`
	Example     string   `json:"example"     validate:"max=1000"`
	Language    string   `json:"language"    validate:"required,max=32"`
	Tags        []string `json:"tags"        validate:"max=16,dive,required,max=64"`
}

// UpdateWordRequest defines the payload for editing a word's catalog fields.
// Scheduling fields are never editable through this endpoint.
type UpdateWordRequest struct {
	Text        string   `json:"text"        validate:"required,max=200"`
	Translation string   `json:"translation" validate:"required,max=500"`
	Example     string   `json:"example"     validate:"max=1000"`
	Language    string   `json:"language"    validate:"required,max=32"`
	Tags        []string `json:"tags"        validate:"max=16,dive,required,max=64"`
}

// SubmitAnswerRequest defines the payload for answering a word.
type SubmitAnswerRequest struct {
	IsCorrect *bool  `json:"is_correct" validate:"required"`
	Answer    string `json:"answer"     validate:"max=1000"`
	ElapsedMs int64  `json:"elapsed_ms" validate:"gte=0"`
}

// ReviewResponse is returned after a scheduling review: the word with its
// new level and due date, plus the ledger entry that recorded the answer.
type ReviewResponse struct {
	Word         *domain.Word          `json:"word"`
	Progress     *domain.ProgressEntry `json:"progress"`
	IntervalDays int                   `json:"interval_days"`
}

// AttemptResponse is returned after a non-scheduling attempt.
type AttemptResponse struct {
	Progress      *domain.ProgressEntry `json:"progress"`
	CorrectAnswer string                `json:"correct_answer"`
}

// StartSessionRequest defines the payload for starting a practice session.
type StartSessionRequest struct {
	Mode     string     `json:"mode"     validate:"required"`
	Limit    int        `json:"limit"    validate:"required,gte=1,lte=100"`
	Language string     `json:"language" validate:"max=32"`
	TagID    *uuid.UUID `json:"tag_id"`
}

// CandidatesResponse lists the words a practice mode produced.
type CandidatesResponse struct {
	Mode  string         `json:"mode"`
	Words []*domain.Word `json:"words"`
	Count int            `json:"count"`
}

// SessionResponse is the assembled deck for one session.
type SessionResponse struct {
	Mode  string         `json:"mode"`
	Words []*domain.Word `json:"words"`
	Count int            `json:"count"`
}

// SessionAnswerRequest defines the payload for answering within a session.
// The session walk is client-driven, so the client sends its counters as
// they stood before this answer.
type SessionAnswerRequest struct {
	IsCorrect *bool            `json:"is_correct" validate:"required"`
	Answer    string           `json:"answer"     validate:"max=1000"`
	ElapsedMs int64            `json:"elapsed_ms" validate:"gte=0"`
	Counters  session.Counters `json:"counters"`
}

// AnswerResponse is returned after persisting one session answer. Counters
// are the session tallies advanced by this answer.
type AnswerResponse struct {
	Word          *domain.Word          `json:"word"`
	Progress      *domain.ProgressEntry `json:"progress"`
	CorrectAnswer string                `json:"correct_answer"`
	Scheduled     bool                  `json:"scheduled"`
	Counters      session.Counters      `json:"counters"`
}

// UpdateProfileRequest defines the payload for editing learner settings.
type UpdateProfileRequest struct {
	DailyGoal       *int `json:"daily_goal"       validate:"omitempty,gte=1,lte=500"`
	ProficiencyTier *int `json:"proficiency_tier" validate:"omitempty,gte=1,lte=6"`
}

// WritingFeedbackRequest defines the payload for grading a written sentence.
type WritingFeedbackRequest struct {
	WordID   uuid.UUID `json:"word_id"  validate:"required"`
	Sentence string    `json:"sentence" validate:"required,max=2000"`
}

// WritingFeedbackResponse carries the grader's verdict and the ledger entry
// the attempt produced.
type WritingFeedbackResponse struct {
	Verdict  *grading.Verdict      `json:"verdict"`
	Progress *domain.ProgressEntry `json:"progress"`
}
