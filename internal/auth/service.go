package auth

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"careerconnect/internal/apperr"
	"careerconnect/internal/models"
	"careerconnect/internal/store"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	nameRe  = regexp.MustCompile(`^[A-Za-z\s]+$`)
)

type Service struct {
	users  store.UserStore
	tokens *TokenProvider
	mailer Mailer
	logger *zap.Logger
}

func NewService(users store.UserStore, tokens *TokenProvider, mailer Mailer, logger *zap.Logger) *Service {
	return &Service{users: users, tokens: tokens, mailer: mailer, logger: logger}
}

type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Register creates a profile record with an immutable role claim and signs
// the new principal in. A verification email is sent best-effort.
func (s *Service) Register(ctx context.Context, name, email, password, roleStr string) (*Session, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || !nameRe.MatchString(name) {
		return nil, apperr.New(apperr.CodeValidation, "invalid name", nil)
	}
	if !emailRe.MatchString(email) {
		return nil, apperr.New(apperr.CodeValidation, "invalid email", nil)
	}
	if len(password) < 6 {
		return nil, apperr.New(apperr.CodeValidation, "password must be at least 6 characters", nil)
	}
	role, err := models.ParseRole(roleStr)
	if err != nil {
		return nil, apperr.New(apperr.CodeValidation, "unknown role", err)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperr.New(apperr.CodeConflict, "email already registered", nil)
	} else if !apperr.Is(err, apperr.CodeNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.New(apperr.CodeInternal, "failed to hash password", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		Name:         name,
		Role:         role,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := s.mailer.SendVerification(ctx, email, name); err != nil {
		s.logger.Warn("verification email failed", zap.String("email", email), zap.Error(err))
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperr.New(apperr.CodeInternal, "failed to issue token", err)
	}
	return &Session{Token: token, User: user}, nil
}

// SignIn checks credentials and issues a session token. The distinct error
// messages mirror the auth provider contract: user-not-found, wrong-password,
// invalid-email.
func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !emailRe.MatchString(email) {
		return nil, apperr.New(apperr.CodeUnauthorized, "invalid email", nil)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperr.Is(err, apperr.CodeNotFound) {
			return nil, apperr.New(apperr.CodeUnauthorized, "user not found", nil)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperr.New(apperr.CodeUnauthorized, "wrong password", nil)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperr.New(apperr.CodeInternal, "failed to issue token", err)
	}
	return &Session{Token: token, User: user}, nil
}

// Me returns the profile record for an authenticated principal.
func (s *Service) Me(ctx context.Context, userID string) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}
