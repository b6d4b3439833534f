package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tubeautomator/backend/internal/auth"
	"github.com/tubeautomator/backend/internal/billing"
	"github.com/tubeautomator/backend/internal/logging"
	"github.com/tubeautomator/backend/internal/mailer"
	"github.com/tubeautomator/backend/internal/models"
	"github.com/tubeautomator/backend/internal/repositories"
)

// OAuthService builds authorization redirect URLs for identity providers.
type OAuthService interface {
	AuthorizationURL(provider string) (string, error)
}

// AuthHandler implements the authentication gateway.
type AuthHandler struct {
	Users         UserStore
	Sessions      SessionManager
	Subscriptions SubscriptionStore
	OAuth         OAuthService
	Mail          Mailer

	RequireEmailConfirmation bool
	DemoEmail                string
	DemoPassword             string
	NowFunc                  func() time.Time
}

type authRequest struct {
	Action       string `json:"action"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	FullName     string `json:"fullName"`
	RefreshToken string `json:"refreshToken"`
}

// Handle dispatches POST /api/v1/auth and GET /api/v1/auth?action=session.
func (h AuthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	switch r.Method {
	case http.MethodGet:
		if r.URL.Query().Get("action") != "session" {
			respondError(ctx, w, http.StatusBadRequest, msgInvalidAction, CodeBadRequest)
			return
		}
		h.session(ctx, w, r)
	case http.MethodPost:
		var req authRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(ctx, w, http.StatusBadRequest, "Invalid request body", CodeBadRequest)
			return
		}

		req.Email = strings.TrimSpace(strings.ToLower(req.Email))

		switch req.Action {
		case "":
			respondError(ctx, w, http.StatusBadRequest, msgActionRequired, CodeBadRequest)
		case "signup":
			h.signUp(ctx, w, req)
		case "signin":
			h.signIn(ctx, w, req.Email, req.Password)
		case "demo":
			h.signIn(ctx, w, h.DemoEmail, h.DemoPassword)
		case "signout":
			h.signOut(ctx, w, req)
		case "refresh":
			h.refresh(ctx, w, req)
		case "google", "github":
			h.oauthRedirect(ctx, w, req.Action)
		case "update-profile":
			h.updateProfile(ctx, w, r, req)
		default:
			respondError(ctx, w, http.StatusBadRequest, msgInvalidAction, CodeBadRequest)
		}
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h AuthHandler) signUp(ctx context.Context, w http.ResponseWriter, req authRequest) {
	logger := logging.FromContext(ctx)

	if req.Email == "" || req.Password == "" {
		respondError(ctx, w, http.StatusBadRequest, "Email and password are required", CodeBadRequest)
		return
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "Invalid email address", CodeBadRequest)
		return
	}
	if err := auth.ValidatePassword(req.Password); err != nil {
		respondError(ctx, w, http.StatusBadRequest, capitalize(err.Error()), CodeBadRequest)
		return
	}

	if _, err := h.Users.FindByEmail(ctx, req.Email); err == nil {
		respondError(ctx, w, http.StatusConflict, "An account with this email already exists", CodeBadRequest)
		return
	} else if !errors.Is(err, repositories.ErrNotFound) {
		respondInternal(ctx, w, fmt.Errorf("signup lookup: %w", err))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondInternal(ctx, w, fmt.Errorf("hash password: %w", err))
		return
	}

	now := h.now()
	user := models.User{
		ID:             uuid.NewString(),
		Email:          req.Email,
		Password:       string(hashed),
		FullName:       strings.TrimSpace(req.FullName),
		EmailConfirmed: !h.RequireEmailConfirmation,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if user.EmailConfirmed {
		confirmed := now
		user.ConfirmedAt = &confirmed
	}

	if err := h.Users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			respondError(ctx, w, http.StatusConflict, "An account with this email already exists", CodeBadRequest)
			return
		}
		respondInternal(ctx, w, fmt.Errorf("create user: %w", err))
		return
	}

	// Every account starts on the free tier until checkout completes.
	if err := h.Subscriptions.Upsert(ctx, models.Subscription{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		PlanID:    billing.PlanFree,
		Status:    models.SubscriptionStatusActive,
		PeriodEnd: now.AddDate(0, 1, 0),
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		logger.Error("create default subscription", "userId", user.ID, "error", err)
	}

	h.sendWelcome(ctx, user)

	// With confirmation pending the user exists but holds no session yet;
	// that is a success outcome, not an error.
	if h.RequireEmailConfirmation {
		respondSuccess(ctx, w, map[string]any{
			"user":                 user,
			"session":              nil,
			"confirmationRequired": true,
		})
		return
	}

	tokens, err := h.Sessions.Issue(ctx, user.ID)
	if err != nil {
		respondInternal(ctx, w, fmt.Errorf("issue session: %w", err))
		return
	}

	respondSuccess(ctx, w, map[string]any{
		"user":    user,
		"session": tokens,
	})
}

func (h AuthHandler) signIn(ctx context.Context, w http.ResponseWriter, email, password string) {
	logger := logging.FromContext(ctx)

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		respondError(ctx, w, http.StatusBadRequest, "Email and password are required", CodeBadRequest)
		return
	}

	user, err := h.Users.FindByEmail(ctx, email)
	if err != nil {
		logger.Warn("signin user lookup failed", "email", email, "error", err)
		respondError(ctx, w, http.StatusUnauthorized, "Invalid credentials", CodeUnauthorized)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		logger.Warn("signin password mismatch", "userId", user.ID)
		respondError(ctx, w, http.StatusUnauthorized, "Invalid credentials", CodeUnauthorized)
		return
	}

	tokens, err := h.Sessions.Issue(ctx, user.ID)
	if err != nil {
		respondInternal(ctx, w, fmt.Errorf("issue session: %w", err))
		return
	}

	respondSuccess(ctx, w, map[string]any{
		"user":    user,
		"session": tokens,
	})
}

func (h AuthHandler) signOut(ctx context.Context, w http.ResponseWriter, req authRequest) {
	refreshToken := strings.TrimSpace(req.RefreshToken)
	if refreshToken == "" {
		respondError(ctx, w, http.StatusBadRequest, "Refresh token is required", CodeBadRequest)
		return
	}

	h.Sessions.Revoke(ctx, refreshToken)
	respondSuccess(ctx, w, nil)
}

func (h AuthHandler) refresh(ctx context.Context, w http.ResponseWriter, req authRequest) {
	refreshToken := strings.TrimSpace(req.RefreshToken)
	if refreshToken == "" {
		respondError(ctx, w, http.StatusBadRequest, "Refresh token is required", CodeBadRequest)
		return
	}

	tokens, err := h.Sessions.Refresh(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrRefreshTokenExpired) || errors.Is(err, auth.ErrSessionNotFound) {
			respondError(ctx, w, http.StatusUnauthorized, "Unable to refresh session", CodeUnauthorized)
			return
		}
		respondInternal(ctx, w, fmt.Errorf("refresh session: %w", err))
		return
	}

	respondSuccess(ctx, w, map[string]any{"session": tokens})
}

func (h AuthHandler) oauthRedirect(ctx context.Context, w http.ResponseWriter, provider string) {
	if h.OAuth == nil {
		respondError(ctx, w, http.StatusBadRequest, fmt.Sprintf("OAuth provider %s is not configured", provider), CodeNotConfigured)
		return
	}

	redirectURL, err := h.OAuth.AuthorizationURL(provider)
	if err != nil {
		respondError(ctx, w, http.StatusBadRequest, fmt.Sprintf("OAuth provider %s is not configured", provider), CodeNotConfigured)
		return
	}

	respondSuccess(ctx, w, map[string]any{"url": redirectURL})
}

// session resolves the bearer token to the current user. An absent or invalid
// token is answered with null user and session so consuming code always
// receives the same shape.
func (h AuthHandler) session(ctx context.Context, w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		respondSuccess(ctx, w, map[string]any{"user": nil, "session": nil})
		return
	}

	userID, err := h.Sessions.Resolve(ctx, token)
	if err != nil {
		respondSuccess(ctx, w, map[string]any{"user": nil, "session": nil})
		return
	}

	user, err := h.Users.FindByID(ctx, userID)
	if err != nil {
		respondSuccess(ctx, w, map[string]any{"user": nil, "session": nil})
		return
	}

	respondSuccess(ctx, w, map[string]any{
		"user":    user,
		"session": map[string]any{"userId": userID, "accessToken": token},
	})
}

func (h AuthHandler) updateProfile(ctx context.Context, w http.ResponseWriter, r *http.Request, req authRequest) {
	token := bearerToken(r)
	if token == "" {
		respondError(ctx, w, http.StatusUnauthorized, "Authentication required", CodeUnauthorized)
		return
	}

	userID, err := h.Sessions.Resolve(ctx, token)
	if err != nil {
		respondError(ctx, w, http.StatusUnauthorized, "Authentication required", CodeUnauthorized)
		return
	}

	user, err := h.Users.FindByID(ctx, userID)
	if err != nil {
		respondInternal(ctx, w, fmt.Errorf("load profile: %w", err))
		return
	}

	fullName := strings.TrimSpace(req.FullName)
	if fullName == "" {
		respondError(ctx, w, http.StatusBadRequest, "Full name is required", CodeBadRequest)
		return
	}

	user.FullName = fullName
	user.UpdatedAt = h.now()

	if err := h.Users.Update(ctx, user); err != nil {
		respondInternal(ctx, w, fmt.Errorf("update profile: %w", err))
		return
	}

	respondSuccess(ctx, w, map[string]any{"user": user})
}

func (h AuthHandler) sendWelcome(ctx context.Context, user models.User) {
	if h.Mail == nil {
		return
	}

	msg := mailer.Message{
		ToEmail:   user.Email,
		ToName:    user.FullName,
		Subject:   "Welcome to TubeAutomator",
		PlainBody: "Your TubeAutomator account is ready. Head to the dashboard to generate your first script.",
		HTMLBody:  "<p>Your TubeAutomator account is ready. Head to the dashboard to generate your first script.</p>",
	}
	if err := h.Mail.Send(ctx, msg); err != nil {
		logging.FromContext(ctx).Warn("welcome email failed", "userId", user.ID, "error", err)
	}
}

func (h AuthHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, prefix))
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
