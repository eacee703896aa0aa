package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Rechidesigns/RechiGPT/internal/server/config"
	"github.com/Rechidesigns/RechiGPT/internal/server/repository"
	"github.com/Rechidesigns/RechiGPT/internal/shared/models"
	"github.com/Rechidesigns/RechiGPT/internal/shared/passhash"
)

type Repository interface {
	CreateUser(ctx context.Context, email string, passwordHash []byte) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, []byte, error)

	AppendExchange(ctx context.Context, ex models.Exchange) (models.Exchange, error)
	ListRecentExchanges(ctx context.Context, userID string, limit int) ([]models.Exchange, error)
}

// CompletionProvider is the external LLM endpoint the relay forwards to.
type CompletionProvider interface {
	Configured() bool
	Complete(ctx context.Context, message string) (string, error)
}

type Services struct {
	Auth  *AuthService
	Relay *RelayService
}

func NewServices(repo Repository, provider CompletionProvider, cfg config.Config) *Services {
	return &Services{
		Auth:  &AuthService{repo: repo, jwtSecret: []byte(cfg.JWTSecret), tokenTTL: cfg.TokenTTL},
		Relay: &RelayService{repo: repo, provider: provider},
	}
}

// AuthService implements registration, password verification and stateless
// JWT access tokens. There is no server-side session table: the token itself
// is the credential, and it cannot be revoked before it expires.
type AuthService struct {
	repo      Repository
	jwtSecret []byte
	tokenTTL  time.Duration
}

func (a *AuthService) Register(ctx context.Context, email, password string) (string, error) {
	if err := validateEmail(email); err != nil {
		return "", err
	}
	if password == "" {
		return "", ErrPasswordRequired
	}
	phc, err := passhash.HashPassword(password)
	if err != nil {
		return "", err
	}
	user, err := a.repo.CreateUser(ctx, email, []byte(phc))
	if err != nil {
		return "", err
	}
	return a.IssueToken(user.Email)
}

func (a *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, hash, err := a.repo.GetUserByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return "", ErrInvalidCredentials
	}
	if err != nil {
		return "", fmt.Errorf("load user: %w", err)
	}
	ok, err := passhash.VerifyPassword(string(hash), password)
	if err != nil || !ok {
		return "", ErrInvalidCredentials
	}
	return a.IssueToken(user.Email)
}

// IssueToken signs an HS256 access token whose subject is the user's email.
func (a *AuthService) IssueToken(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(a.tokenTTL)),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(a.jwtSecret)
}

// VerifyToken validates signature and expiry and returns the embedded
// subject. Any defect yields ErrInvalidToken.
func (a *AuthService) VerifyToken(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.jwtSecret, nil
	})
	if err != nil || !parsed.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}

// ResolveToken verifies the token and looks up its subject. A valid token
// for an unknown user fails exactly like a bad token.
func (a *AuthService) ResolveToken(ctx context.Context, token string) (models.User, error) {
	subject, err := a.VerifyToken(token)
	if err != nil {
		return models.User{}, ErrInvalidToken
	}
	user, _, err := a.repo.GetUserByEmail(ctx, subject)
	if err != nil {
		return models.User{}, ErrInvalidToken
	}
	return user, nil
}

func validateEmail(email string) error {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	return nil
}

const defaultHistoryLimit = 50

// RelayService forwards an authenticated user's message to the completion
// provider and persists the exchange. Exactly one upstream attempt per call;
// a timed-out or failed attempt is never persisted.
type RelayService struct {
	repo     Repository
	provider CompletionProvider
}

func (s *RelayService) Relay(ctx context.Context, user models.User, message string) (models.Exchange, error) {
	if strings.TrimSpace(message) == "" {
		return models.Exchange{}, errors.New("message required")
	}
	if !s.provider.Configured() {
		return models.Exchange{}, ErrProviderNotConfigured
	}
	text, err := s.provider.Complete(ctx, message)
	if err != nil {
		return models.Exchange{}, err
	}
	ex, err := s.repo.AppendExchange(ctx, models.Exchange{UserID: user.ID, Message: message, Response: text})
	if err != nil {
		return models.Exchange{}, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return ex, nil
}

func (s *RelayService) History(ctx context.Context, userID string, limit int) ([]models.Exchange, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return s.repo.ListRecentExchanges(ctx, userID, limit)
}
