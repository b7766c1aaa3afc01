package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"auth-bridge/internal/auth"
	"auth-bridge/internal/flow"
	"auth-bridge/internal/handler"
	"auth-bridge/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubProvider implements provider.Provider with scriptable results and
// call counters, so validation tests can prove the coordinator was never
// reached.
type stubProvider struct {
	signInSession *auth.Session
	signInErr     error
	signUpResult  *auth.SignupResult
	signUpErr     error
	getUserErr    error

	signInCalls int
	signUpCalls int
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) SignInWithPassword(context.Context, string, string) (*auth.Session, error) {
	s.signInCalls++
	return s.signInSession, s.signInErr
}

func (s *stubProvider) SignUp(context.Context, string, string) (*auth.SignupResult, error) {
	s.signUpCalls++
	return s.signUpResult, s.signUpErr
}

func (s *stubProvider) SignOut(context.Context, string) error { return nil }

func (s *stubProvider) GetUser(context.Context, string) (*auth.UserRecord, error) {
	if s.getUserErr != nil {
		return nil, s.getUserErr
	}
	return &auth.UserRecord{ID: "5f1c3a09-9097-4b11-9312-16b33d5b3f0e"}, nil
}

type env struct {
	router *gin.Engine
	store  *session.MemoryStore
	idp    *stubProvider
}

func setup(t *testing.T, opts handler.Options) *env {
	t.Helper()

	store := session.NewMemoryStore()
	idp := &stubProvider{}
	coordinator := flow.New(idp, session.NewIssuer(store, time.Hour))

	h := handler.NewHandler(coordinator, store, idp, opts)

	router := gin.New()
	h.RegisterRoutes(router)

	return &env{router: router, store: store, idp: idp}
}

func (e *env) post(t *testing.T, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func confirmedUser() *auth.UserRecord {
	confirmed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	return &auth.UserRecord{
		ID:               "5f1c3a09-9097-4b11-9312-16b33d5b3f0e",
		Email:            "a@b.com",
		Aud:              "authenticated",
		EmailConfirmedAt: &confirmed,
	}
}

func TestLogin_EmptyFieldsNeverReachCoordinator(t *testing.T) {
	cases := []map[string]string{
		{"email": "", "password": "secret"},
		{"email": "a@b.com", "password": ""},
		{"email": "", "password": ""},
	}

	for _, body := range cases {
		e := setup(t, handler.Options{})
		rec := e.post(t, "/auth/login", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, 0, e.idp.signInCalls, "validation must short-circuit")

		parsed := decodeBody(t, rec)
		assert.Equal(t, "error", parsed["severity"])
	}
}

func TestLogin_SuccessSetsCookieAndRedirects(t *testing.T) {
	e := setup(t, handler.Options{CookieSecure: true})
	e.idp.signInSession = &auth.Session{AccessToken: "token-1", User: confirmedUser()}

	rec := e.post(t, "/auth/login", map[string]string{
		"email":    "a@b.com",
		"password": "secret",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	parsed := decodeBody(t, rec)
	assert.Equal(t, "/dashboard", parsed["redirect"])

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, session.CookieName, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
}

func TestLogin_ProviderRejectionIsAMessage(t *testing.T) {
	e := setup(t, handler.Options{})
	e.idp.signInErr = &auth.ProviderError{Status: 400, Message: "Invalid login credentials"}

	rec := e.post(t, "/auth/login", map[string]string{
		"email":    "a@b.com",
		"password": "wrong",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	parsed := decodeBody(t, rec)
	assert.Equal(t, flow.MsgLoginInvalidCredentials, parsed["message"])
	assert.Equal(t, "error", parsed["severity"])
	assert.Empty(t, rec.Result().Cookies())
}

func TestSignup_ValidationShortCircuits(t *testing.T) {
	cases := []struct {
		name    string
		body    map[string]string
		message string
	}{
		{
			"missing fields",
			map[string]string{"email": "a@b.com", "password": "secret1", "confirm_password": ""},
			"Please fill in all fields.",
		},
		{
			"mismatch",
			map[string]string{"email": "a@b.com", "password": "secret1", "confirm_password": "secret2"},
			"Passwords do not match.",
		},
		{
			"too short",
			map[string]string{"email": "a@b.com", "password": "abc", "confirm_password": "abc"},
			flow.MsgSignupPasswordTooShort,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := setup(t, handler.Options{})
			rec := e.post(t, "/auth/signup", tc.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, 0, e.idp.signUpCalls)

			parsed := decodeBody(t, rec)
			assert.Equal(t, tc.message, parsed["message"])
			assert.Equal(t, "error", parsed["severity"])
		})
	}
}

func TestSignup_ConfirmationPendingMessage(t *testing.T) {
	e := setup(t, handler.Options{})
	e.idp.signUpResult = &auth.SignupResult{
		User: &auth.UserRecord{ID: "u1", Email: "new@b.com"},
	}

	rec := e.post(t, "/auth/signup", map[string]string{
		"email":            "new@b.com",
		"password":         "secret1",
		"confirm_password": "secret1",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	parsed := decodeBody(t, rec)
	assert.Equal(t, flow.MsgSignupConfirmEmail, parsed["message"])
	assert.Equal(t, "success", parsed["severity"])
}

func TestSetSession_MissingData(t *testing.T) {
	e := setup(t, handler.Options{})

	rec := e.post(t, "/set-session", map[string]any{"access_token": "", "user": nil})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	parsed := decodeBody(t, rec)
	assert.Equal(t, "Missing token or user data", parsed["error"])
}

func TestSetSession_InvalidUserID(t *testing.T) {
	e := setup(t, handler.Options{})

	rec := e.post(t, "/set-session", map[string]any{
		"access_token": "token-1",
		"user":         map[string]string{"id": "not-a-uuid", "email": "a@b.com"},
	})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetSession_EstablishesSession(t *testing.T) {
	e := setup(t, handler.Options{CookieSecure: true})

	rec := e.post(t, "/set-session", map[string]any{
		"access_token": "token-1",
		"user":         confirmedUser(),
	})

	require.Equal(t, http.StatusOK, rec.Code)
	parsed := decodeBody(t, rec)
	assert.Equal(t, "Session created successfully", parsed["message"])

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	stored, err := e.store.Get(context.Background(), cookies[0].Value)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, "a@b.com", stored.Email)
	assert.Equal(t, "token-1", stored.AccessToken)
}

func TestSetSession_VerifyTokenRejectsInvalid(t *testing.T) {
	e := setup(t, handler.Options{VerifyToken: true})
	e.idp.getUserErr = errors.New("invalid JWT")

	rec := e.post(t, "/set-session", map[string]any{
		"access_token": "bad-token",
		"user":         confirmedUser(),
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	parsed := decodeBody(t, rec)
	assert.Equal(t, "Invalid token", parsed["error"])
}

func TestLogout_DeletesSessionAndClearsCookie(t *testing.T) {
	e := setup(t, handler.Options{})

	now := time.Now()
	require.NoError(t, e.store.Create(context.Background(), session.Session{
		SessionID: "sid-1",
		UserID:    "u1",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}))

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "sid-1"})

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)

	stored, err := e.store.Get(context.Background(), "sid-1")
	require.NoError(t, err)
	assert.Nil(t, stored)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, -1, cookies[0].MaxAge)
}

func TestLogout_WithoutSessionIsIdempotent(t *testing.T) {
	e := setup(t, handler.Options{})

	req := httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}
