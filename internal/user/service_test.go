package user

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saulo-duarte/gradetrack-lambda/internal/auth"
	"github.com/saulo-duarte/gradetrack-lambda/internal/errs"
)

type memoryRepo struct {
	users map[uuid.UUID]*User
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{users: map[uuid.UUID]*User{}}
}

func (m *memoryRepo) Create(u *User) error {
	m.users[u.ID] = u
	return nil
}

func (m *memoryRepo) GetByID(id string) (*User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	return m.users[uid], nil
}

func (m *memoryRepo) GetByEmail(email string) (*User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memoryRepo) Update(u *User) error {
	m.users[u.ID] = u
	return nil
}

func newTestService(t *testing.T) (UserService, *memoryRepo) {
	t.Helper()
	os.Setenv("JWT_SECRET", "a-long-enough-secret-for-signing-tests")
	auth.Init()

	repo := newMemoryRepo()
	return NewService(repo, nil, TokenTTL{Access: time.Hour, Refresh: 24 * time.Hour}), repo
}

func TestRegisterAndLogin(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Register(ctx, RegisterDTO{Email: "Ana@Example.com", Name: "Ana", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, "ana@example.com", resp.User.Email)
	require.Len(t, repo.users, 1)

	_, err = svc.Register(ctx, RegisterDTO{Email: "ana@example.com", Name: "Ana", Password: "correct-horse"})
	assert.ErrorIs(t, err, errs.ErrConflict)

	login, err := svc.Login(ctx, LoginDTO{Email: "ana@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, login.User.ID)

	_, err = svc.Login(ctx, LoginDTO{Email: "ana@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, errs.ErrUnauthorized)

	_, err = svc.Login(ctx, LoginDTO{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestRegisterValidation(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(context.Background(), RegisterDTO{Email: "not-an-email", Name: "X", Password: "long-enough"})
	assert.True(t, errs.IsValidation(err))

	_, err = svc.Register(context.Background(), RegisterDTO{Email: "x@example.com", Name: "X", Password: "short"})
	assert.True(t, errs.IsValidation(err))
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	svc, _ := newTestService(t)
	resp, err := svc.Register(context.Background(), RegisterDTO{Email: "b@example.com", Name: "B", Password: "long-enough"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), resp.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, refreshed.User.ID)

	_, err = svc.Refresh(context.Background(), resp.AccessToken)
	assert.ErrorIs(t, err, errs.ErrUnauthorized)
}

func TestMe(t *testing.T) {
	svc, _ := newTestService(t)
	resp, err := svc.Register(context.Background(), RegisterDTO{Email: "c@example.com", Name: "C", Password: "long-enough"})
	require.NoError(t, err)

	me, err := svc.Me(auth.ContextWithUser(context.Background(), resp.User.ID))
	require.NoError(t, err)
	assert.Equal(t, "c@example.com", me.Email)
	assert.False(t, me.GoogleCalendar)

	_, err = svc.Me(auth.ContextWithUser(context.Background(), uuid.New()))
	assert.True(t, errs.IsNotFound(err))
}

func TestConnectGoogleWithoutOAuthConfig(t *testing.T) {
	svc, _ := newTestService(t)
	resp, err := svc.Register(context.Background(), RegisterDTO{Email: "d@example.com", Name: "D", Password: "long-enough"})
	require.NoError(t, err)

	_, err = svc.ConnectGoogle(auth.ContextWithUser(context.Background(), resp.User.ID), "code")
	assert.True(t, errs.IsValidation(err))
}

func TestRegisterHandler(t *testing.T) {
	svc, _ := newTestService(t)
	h := NewHandler(svc)

	body, _ := json.Marshal(RegisterDTO{Email: "e@example.com", Name: "E", Password: "long-enough"})
	rec := httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body)))

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp TokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "e@example.com", resp.User.Email)
	require.NotEmpty(t, rec.Result().Cookies())
	assert.Equal(t, "jwt", rec.Result().Cookies()[0].Name)

	rec = httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body)))
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = httptest.NewRecorder()
	h.Register(rec, httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader("{")))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUserHandlerRequiresAuth(t *testing.T) {
	svc, _ := newTestService(t)
	rec := httptest.NewRecorder()

	NewHandler(svc).GetUser(rec, httptest.NewRequest(http.MethodGet, "/users/me", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
