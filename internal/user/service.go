package user

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"

	"github.com/saulo-duarte/gradetrack-lambda/internal/auth"
	"github.com/saulo-duarte/gradetrack-lambda/internal/config"
	"github.com/saulo-duarte/gradetrack-lambda/internal/errs"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type UserService interface {
	Register(ctx context.Context, dto RegisterDTO) (*TokenResponse, error)
	Login(ctx context.Context, dto LoginDTO) (*TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error)
	Me(ctx context.Context) (*UserResponse, error)
	ConnectGoogle(ctx context.Context, code string) (*UserResponse, error)
}

type TokenTTL struct {
	Access  time.Duration
	Refresh time.Duration
}

type userService struct {
	repo        UserRepository
	oauthConfig *oauth2.Config
	ttl         TokenTTL
}

func NewService(repo UserRepository, oauthConfig *oauth2.Config, ttl TokenTTL) UserService {
	return &userService{repo: repo, oauthConfig: oauthConfig, ttl: ttl}
}

func (s *userService) Register(ctx context.Context, dto RegisterDTO) (*TokenResponse, error) {
	log := config.WithContext(ctx)
	if err := config.Validate(dto); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByEmail(dto.Email)
	if err != nil {
		log.WithError(err).Error("Failed to look up user by email")
		return nil, err
	}
	if existing != nil {
		return nil, errs.ErrConflict
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	u := &User{
		ID:           uuid.New(),
		Email:        strings.ToLower(strings.TrimSpace(dto.Email)),
		Name:         strings.TrimSpace(dto.Name),
		PasswordHash: string(hash),
		Role:         "user",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(u); err != nil {
		log.WithError(err).Error("Failed to create user")
		return nil, err
	}

	log.WithField("user_id", u.ID).Info("User registered")
	return s.issueTokens(u)
}

func (s *userService) Login(ctx context.Context, dto LoginDTO) (*TokenResponse, error) {
	log := config.WithContext(ctx)
	if err := config.Validate(dto); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByEmail(dto.Email)
	if err != nil {
		log.WithError(err).Error("Failed to look up user by email")
		return nil, err
	}
	if u == nil {
		return nil, errs.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(dto.Password)); err != nil {
		log.WithField("user_id", u.ID).Warn("Login with wrong password")
		return nil, errs.ErrUnauthorized
	}

	return s.issueTokens(u)
}

func (s *userService) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	claims, err := auth.ValidateRefreshJWT(refreshToken)
	if err != nil {
		config.WithContext(ctx).WithError(err).Warn("Invalid refresh token")
		return nil, errs.ErrUnauthorized
	}

	u, err := s.repo.GetByID(claims.UserID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errs.ErrUnauthorized
	}
	return s.issueTokens(u)
}

func (s *userService) Me(ctx context.Context) (*UserResponse, error) {
	u, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	return toResponse(u), nil
}

// ConnectGoogle exchanges an OAuth authorization code and stores the encrypted tokens.
func (s *userService) ConnectGoogle(ctx context.Context, code string) (*UserResponse, error) {
	log := config.WithContext(ctx)
	u, err := s.current(ctx)
	if err != nil {
		return nil, err
	}
	if s.oauthConfig == nil || s.oauthConfig.ClientID == "" {
		return nil, errs.NewValidation("code", "google integration is not configured")
	}

	token, err := s.oauthConfig.Exchange(ctx, code, oauth2.AccessTypeOffline)
	if err != nil {
		log.WithError(err).Warn("Failed to exchange Google authorization code")
		return nil, errs.NewValidation("code", "invalid authorization code")
	}

	access, err := config.Encrypt(token.AccessToken)
	if err != nil {
		return nil, err
	}
	u.EncryptedGoogleAccessToken = access
	if token.RefreshToken != "" {
		refresh, err := config.Encrypt(token.RefreshToken)
		if err != nil {
			return nil, err
		}
		u.EncryptedGoogleRefreshToken = refresh
	}
	u.UpdatedAt = time.Now()

	if err := s.repo.Update(u); err != nil {
		log.WithError(err).Error("Failed to store Google tokens")
		return nil, err
	}

	log.WithField("user_id", u.ID).Info("Google Calendar connected")
	return toResponse(u), nil
}

func (s *userService) current(ctx context.Context) (*User, error) {
	userID, err := auth.UserIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	u, err := s.repo.GetByID(userID.String())
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, errs.NewNotFound("user", userID)
	}
	return u, nil
}

func (s *userService) issueTokens(u *User) (*TokenResponse, error) {
	access, err := auth.GenerateJWT(u.ID.String(), u.Role, s.ttl.Access)
	if err != nil {
		return nil, err
	}
	refresh, err := auth.GenerateRefreshJWT(u.ID.String(), u.Role, s.ttl.Refresh)
	if err != nil {
		return nil, err
	}
	return &TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(s.ttl.Access.Seconds()),
		User:         toResponse(u),
	}, nil
}
