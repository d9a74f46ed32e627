package auth_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/gradetrack-lambda/internal/auth"
	"github.com/saulo-duarte/gradetrack-lambda/internal/errs"
)

const testSecret = "a-long-enough-secret-for-signing-tests"
const testRole = "user"

func TestInit(t *testing.T) {
	t.Run("MissingSecret", func(t *testing.T) {
		os.Unsetenv("JWT_SECRET")
		assert.Panics(t, auth.Init)
	})

	t.Run("ValidSecret", func(t *testing.T) {
		os.Setenv("JWT_SECRET", testSecret)
		assert.NotPanics(t, auth.Init)
	})
}

func TestGenerateAndValidateJWT(t *testing.T) {
	os.Setenv("JWT_SECRET", testSecret)
	auth.Init()
	userID := uuid.NewString()

	t.Run("ValidToken", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(userID, testRole, 5*time.Minute)
		require.NoError(t, err)

		claims, err := auth.ValidateJWT(tokenStr)
		require.NoError(t, err)
		assert.Equal(t, userID, claims.UserID)
		assert.Equal(t, testRole, claims.Role)
	})

	t.Run("ExpiredToken", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(userID, testRole, -time.Minute)
		require.NoError(t, err)

		_, err = auth.ValidateJWT(tokenStr)
		require.Error(t, err)
		assert.True(t, errors.Is(err, jwt.ErrTokenExpired))
	})

	t.Run("InvalidSignature", func(t *testing.T) {
		os.Setenv("JWT_SECRET", "another-secret-used-by-someone-else")
		auth.Init()
		tokenStr, err := auth.GenerateJWT(userID, testRole, time.Minute)
		require.NoError(t, err)

		os.Setenv("JWT_SECRET", testSecret)
		auth.Init()

		_, err = auth.ValidateJWT(tokenStr)
		require.Error(t, err)
		assert.True(t, errors.Is(err, jwt.ErrTokenSignatureInvalid))
	})
}

func TestAuthMiddleware(t *testing.T) {
	os.Setenv("JWT_SECRET", testSecret)
	auth.Init()
	userID := uuid.New()

	var seen uuid.UUID
	h := auth.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := auth.UserIDFromContext(r.Context())
		require.NoError(t, err)
		seen = id
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("NoToken", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/courses", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("BearerToken", func(t *testing.T) {
		tokenStr, err := auth.GenerateJWT(userID.String(), testRole, time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/courses", nil)
		req.Header.Set("Authorization", "Bearer "+tokenStr)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, userID, seen)
	})
}

func TestUserIDFromContextWithoutClaims(t *testing.T) {
	_, err := auth.UserIDFromContext(context.Background())
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestRefreshTokensAreNotAccessTokens(t *testing.T) {
	os.Setenv("JWT_SECRET", testSecret)
	auth.Init()
	userID := uuid.NewString()

	refresh, err := auth.GenerateRefreshJWT(userID, testRole, time.Hour)
	require.NoError(t, err)

	_, err = auth.ValidateJWT(refresh)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	claims, err := auth.ValidateRefreshJWT(refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestLogoutClearsSessionCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	auth.NewHandler().Logout(rec, httptest.NewRequest(http.MethodPost, "/auth/logout", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, auth.SessionCookie, cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestAuthMiddlewareReadsSessionCookie(t *testing.T) {
	os.Setenv("JWT_SECRET", testSecret)
	auth.Init()
	userID := uuid.New()
	token, err := auth.GenerateJWT(userID.String(), testRole, time.Minute)
	require.NoError(t, err)

	var got uuid.UUID
	h := auth.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.UserIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/courses", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: token})
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, userID, got)
}
