package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tubeautomator/backend/internal/auth"
	"github.com/tubeautomator/backend/internal/mailer"
	"github.com/tubeautomator/backend/internal/models"
	"github.com/tubeautomator/backend/internal/repositories"
)

type fakeUserStore struct {
	users map[string]models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]models.User)}
}

func (s *fakeUserStore) Create(_ context.Context, user models.User) error {
	if _, exists := s.users[user.Email]; exists {
		return repositories.ErrConflict
	}
	s.users[user.Email] = user
	return nil
}

func (s *fakeUserStore) FindByEmail(_ context.Context, email string) (models.User, error) {
	user, ok := s.users[email]
	if !ok {
		return models.User{}, repositories.ErrNotFound
	}
	return user, nil
}

func (s *fakeUserStore) FindByID(_ context.Context, id string) (models.User, error) {
	for _, user := range s.users {
		if user.ID == id {
			return user, nil
		}
	}
	return models.User{}, repositories.ErrNotFound
}

func (s *fakeUserStore) Update(_ context.Context, user models.User) error {
	for email, existing := range s.users {
		if existing.ID == user.ID {
			s.users[email] = user
			return nil
		}
	}
	return repositories.ErrNotFound
}

type fakeSubscriptionStore struct {
	subs map[string]models.Subscription
}

func newFakeSubscriptionStore() *fakeSubscriptionStore {
	return &fakeSubscriptionStore{subs: make(map[string]models.Subscription)}
}

func (s *fakeSubscriptionStore) Upsert(_ context.Context, sub models.Subscription) error {
	s.subs[sub.UserID] = sub
	return nil
}

func (s *fakeSubscriptionStore) FindByUser(_ context.Context, userID string) (models.Subscription, error) {
	sub, ok := s.subs[userID]
	if !ok {
		return models.Subscription{}, repositories.ErrNotFound
	}
	return sub, nil
}

func newTestSessionManager() *auth.Manager {
	return auth.NewManager(time.Minute, time.Hour, auth.NewMemorySessionStore())
}

func newAuthHandler(users *fakeUserStore, subs *fakeSubscriptionStore) AuthHandler {
	return AuthHandler{
		Users:         users,
		Sessions:      newTestSessionManager(),
		Subscriptions: subs,
		Mail:          mailer.NewMockMailer(),
		DemoEmail:     "test@example.com",
		DemoPassword:  "password123",
	}
}

func jsonBody(t *testing.T, payload any) *bytes.Reader {
	t.Helper()

	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	return bytes.NewReader(body)
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, jsonBody(t, payload))
	rec := httptest.NewRecorder()
	handler(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope
}

func TestAuthHandlerMissingAction(t *testing.T) {
	handler := newAuthHandler(newFakeUserStore(), newFakeSubscriptionStore())

	rec := postJSON(t, handler.Handle, "/api/v1/auth", map[string]any{})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d got %d", http.StatusBadRequest, rec.Code)
	}

	envelope := decodeEnvelope(t, rec)
	if envelope["success"] != false {
		t.Fatalf("expected success=false, got %v", envelope["success"])
	}
	if msg, _ := envelope["error"].(string); !strings.Contains(msg, "Action is required") {
		t.Fatalf("expected error to mention the missing action, got %q", msg)
	}
}

func TestAuthHandlerInvalidAction(t *testing.T) {
	handler := newAuthHandler(newFakeUserStore(), newFakeSubscriptionStore())

	rec := postJSON(t, handler.Handle, "/api/v1/auth", map[string]any{"action": "teleport"})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d got %d", http.StatusBadRequest, rec.Code)
	}

	envelope := decodeEnvelope(t, rec)
	if msg, _ := envelope["error"].(string); msg != "Invalid action" {
		t.Fatalf("expected invalid action error, got %q", msg)
	}
}

func TestAuthHandlerSignUp(t *testing.T) {
	users := newFakeUserStore()
	subs := newFakeSubscriptionStore()
	handler := newAuthHandler(users, subs)

	rec := postJSON(t, handler.Handle, "/api/v1/auth", map[string]any{
		"action":   "signup",
		"email":    "creator@example.com",
		"password": "sup3rsafe!",
		"fullName": "New Creator",
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	envelope := decodeEnvelope(t, rec)
	if envelope["success"] != true {
		t.Fatalf("expected success=true, got %v", envelope["success"])
	}

	session, ok := envelope["session"].(map[string]any)
	if !ok {
		t.Fatalf("expected session object, got %v", envelope["session"])
	}
	if session["accessToken"] == "" || session["refreshToken"] == "" {
		t.Fatalf("expected tokens to be issued, got %v", session)
	}

	stored, err := users.FindByEmail(context.Background(), "creator@example.com")
	if err != nil {
		t.Fatalf("expected user to be stored: %v", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("sup3rsafe!")) != nil {
		t.Fatal("stored password is not hashed")
	}

	sub, err := subs.FindByUser(context.Background(), stored.ID)
	if err != nil {
		t.Fatalf("expected default subscription: %v", err)
	}
	if sub.PlanID != "free" {
		t.Fatalf("expected free plan, got %q", sub.PlanID)
	}
}

func TestAuthHandlerSignUpRejectsWeakPassword(t *testing.T) {
	handler := newAuthHandler(newFakeUserStore(), newFakeSubscriptionStore())

	cases := []struct {
		name     string
		password string
	}{
		{name: "too short", password: "a1!"},
		{name: "no digit", password: "superbase!"},
		{name: "no special", password: "superbase1"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, handler.Handle, "/api/v1/auth", map[string]any{
				"action":   "signup",
				"email":    "weak@example.com",
				"password": tc.password,
			})

			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected status %d got %d", http.StatusBadRequest, rec.Code)
			}
			envelope := decodeEnvelope(t, rec)
			if envelope["success"] != false {
				t.Fatalf("expected success=false, got %v", envelope["success"])
			}
		})
	}
}

func TestAuthHandlerDemoSignIn(t *testing.T) {
	users := newFakeUserStore()
	subs := newFakeSubscriptionStore()
	handler := newAuthHandler(users, subs)

	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	users.users["test@example.com"] = models.User{
		ID:       "demo-user",
		Email:    "test@example.com",
		Password: string(hashed),
		FullName: "Demo Creator",
	}

	rec := postJSON(t, handler.Handle, "/api/v1/auth", map[string]any{"action": "demo"})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	envelope := decodeEnvelope(t, rec)
	if envelope["success"] != true {
		t.Fatalf("expected success=true, got %v", envelope["success"])
	}

	user, ok := envelope["user"].(map[string]any)
	if !ok || user["email"] != "test@example.com" {
		t.Fatalf("expected demo user in response, got %v", envelope["user"])
	}
	if _, ok := envelope["session"].(map[string]any); !ok {
		t.Fatalf("expected session in response, got %v", envelope["session"])
	}
}

func TestAuthHandlerSignInWrongPassword(t *testing.T) {
	users := newFakeUserStore()
	handler := newAuthHandler(users, newFakeSubscriptionStore())

	hashed, err := bcrypt.GenerateFromPassword([]byte("rightpass1!"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	users.users["login@example.com"] = models.User{ID: "user-1", Email: "login@example.com", Password: string(hashed)}

	rec := postJSON(t, handler.Handle, "/api/v1/auth", map[string]any{
		"action":   "signin",
		"email":    "login@example.com",
		"password": "wrongpass1!",
	})

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected status %d got %d", http.StatusUnauthorized, rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if envelope["code"] != CodeUnauthorized {
		t.Fatalf("expected code %q, got %v", CodeUnauthorized, envelope["code"])
	}
}

func TestAuthHandlerRefresh(t *testing.T) {
	users := newFakeUserStore()
	handler := newAuthHandler(users, newFakeSubscriptionStore())

	tokens, err := handler.Sessions.Issue(context.Background(), "user-42")
	if err != nil {
		t.Fatalf("issue tokens: %v", err)
	}

	rec := postJSON(t, handler.Handle, "/api/v1/auth", map[string]any{
		"action":       "refresh",
		"refreshToken": tokens.RefreshToken,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
	}

	envelope := decodeEnvelope(t, rec)
	session, ok := envelope["session"].(map[string]any)
	if !ok {
		t.Fatalf("expected session, got %v", envelope["session"])
	}
	if session["refreshToken"] == tokens.RefreshToken {
		t.Fatal("expected the refresh token to rotate")
	}
}

func TestAuthHandlerSessionWithoutToken(t *testing.T) {
	handler := newAuthHandler(newFakeUserStore(), newFakeSubscriptionStore())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth?action=session", nil)
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status %d got %d", http.StatusOK, rec.Code)
	}

	envelope := decodeEnvelope(t, rec)
	if envelope["success"] != true {
		t.Fatalf("expected success=true, got %v", envelope["success"])
	}
	if envelope["user"] != nil || envelope["session"] != nil {
		t.Fatalf("expected null user and session, got %v / %v", envelope["user"], envelope["session"])
	}
}

func TestAuthHandlerSessionWithToken(t *testing.T) {
	users := newFakeUserStore()
	handler := newAuthHandler(users, newFakeSubscriptionStore())

	users.users["who@example.com"] = models.User{ID: "user-7", Email: "who@example.com"}

	tokens, err := handler.Sessions.Issue(context.Background(), "user-7")
	if err != nil {
		t.Fatalf("issue tokens: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/auth?action=session", nil)
	req.Header.Set("Authorization", "Bearer "+tokens.AccessToken)
	rec := httptest.NewRecorder()
	handler.Handle(rec, req)

	envelope := decodeEnvelope(t, rec)
	user, ok := envelope["user"].(map[string]any)
	if !ok || user["id"] != "user-7" {
		t.Fatalf("expected resolved user, got %v", envelope["user"])
	}
}
