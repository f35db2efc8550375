package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/rillka/wordbank-api/internal/domain"
	"github.com/rillka/wordbank-api/internal/mocks"
	"github.com/rillka/wordbank-api/internal/service/auth"
)

// stubJWTService issues fixed tokens and validates by lookup.
type stubJWTService struct {
	userID       uuid.UUID
	validateErr  error
	accessToken  string
	refreshToken string
}

func (s *stubJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.accessToken, nil
}

func (s *stubJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if s.validateErr != nil {
		return nil, s.validateErr
	}
	return &auth.Claims{UserID: s.userID, TokenType: "access"}, nil
}

func (s *stubJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return s.refreshToken, nil
}

func (s *stubJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if s.validateErr != nil {
		return nil, s.validateErr
	}
	return &auth.Claims{UserID: s.userID, TokenType: "refresh"}, nil
}

// stubPasswordVerifier accepts a single known password.
type stubPasswordVerifier struct {
	knownPassword string
}

func (v *stubPasswordVerifier) HashPassword(ctx context.Context, password string) (string, error) {
	return "hashed:" + password, nil
}

func (v *stubPasswordVerifier) Compare(ctx context.Context, hashedPassword, password string) error {
	if password != v.knownPassword {
		return auth.ErrInvalidCredentials
	}
	return nil
}

func newAuthHandlerFixture(t *testing.T, userID uuid.UUID) (*AuthHandler, *mocks.MockUserStore) {
	t.Helper()

	userStore := mocks.NewMockUserStore()
	profileStore := mocks.NewMockProfileStore()
	jwtService := &stubJWTService{
		userID:       userID,
		accessToken:  "access-token",
		refreshToken: "refresh-token",
	}
	verifier := &stubPasswordVerifier{knownPassword: "correct-horse-battery"}

	return NewAuthHandler(nil, userStore, profileStore, jwtService, verifier), userStore
}

func seedUser(t *testing.T, userStore *mocks.MockUserStore, email string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(email, "correct-horse-battery")
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	user.HashedPassword = "hashed:correct-horse-battery"
	userStore.Users[user.Email] = user
	return user
}

func TestLogin(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "Success",
			body:           `{"email":"learner@example.com","password":"correct-horse-battery"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Wrong Password",
			body:           `{"email":"learner@example.com","password":"wrong-password-here"}`,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Unknown Email",
			body:           `{"email":"nobody@example.com","password":"correct-horse-battery"}`,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid Email Format",
			body:           `{"email":"not-an-email","password":"correct-horse-battery"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Malformed JSON",
			body:           `{"email":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler, userStore := newAuthHandlerFixture(t, userID)
			seedUser(t, userStore, "learner@example.com")

			req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			handler.Login(rr, req)

			if rr.Code != tc.expectedStatus {
				t.Errorf("wrong status code: got %v want %v (body: %s)", rr.Code, tc.expectedStatus, rr.Body.String())
			}

			if tc.expectedStatus == http.StatusOK {
				var resp AuthResponse
				if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				if resp.AccessToken != "access-token" || resp.RefreshToken != "refresh-token" {
					t.Errorf("unexpected token pair: %+v", resp)
				}
			}
		})
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "Short Password", body: `{"email":"a@example.com","password":"short"}`},
		{name: "Bad Email", body: `{"email":"nope","password":"long-enough-password"}`},
		{name: "Tier Out Of Range", body: `{"email":"a@example.com","password":"long-enough-password","proficiency_tier":9}`},
		{name: "Malformed JSON", body: `{"email":`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			handler, userStore := newAuthHandlerFixture(t, uuid.New())

			req := httptest.NewRequest("POST", "/auth/register", strings.NewReader(tc.body))
			rr := httptest.NewRecorder()
			handler.Register(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("wrong status code: got %v want %v (body: %s)", rr.Code, http.StatusBadRequest, rr.Body.String())
			}
			if len(userStore.Users) != 0 {
				t.Errorf("rejected registration must not create a user")
			}
		})
	}
}

func TestRefreshTokenEndpoint(t *testing.T) {
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		handler, _ := newAuthHandlerFixture(t, userID)

		body := `{"refresh_token":"refresh-token"}`
		req := httptest.NewRequest("POST", "/auth/refresh", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.RefreshToken(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("wrong status code: got %v (body: %s)", rr.Code, rr.Body.String())
		}
		var resp RefreshTokenResponse
		if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		if resp.AccessToken != "access-token" || resp.RefreshToken != "refresh-token" {
			t.Errorf("unexpected token pair: %+v", resp)
		}
	})

	t.Run("Expired Token", func(t *testing.T) {
		handler, _ := newAuthHandlerFixture(t, userID)
		handler.jwtService = &stubJWTService{validateErr: auth.ErrExpiredToken}

		body := `{"refresh_token":"stale"}`
		req := httptest.NewRequest("POST", "/auth/refresh", strings.NewReader(body))
		rr := httptest.NewRecorder()
		handler.RefreshToken(rr, req)

		if rr.Code != http.StatusUnauthorized {
			t.Errorf("wrong status code: got %v want %v", rr.Code, http.StatusUnauthorized)
		}
	})
}
