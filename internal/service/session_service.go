package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/noah-isme/faculty-dashboard-api/internal/models"
	appErrors "github.com/noah-isme/faculty-dashboard-api/pkg/errors"
)

const sessionKeyPrefix = "session:"

type sessionKV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// SessionConfig defines the demo account and token settings.
type SessionConfig struct {
	DemoEmail        string
	DemoName         string
	DemoPasswordHash string
	TokenSecret      string
	TokenExpiry      time.Duration
	Issuer           string
}

// SessionService signs the demo faculty in and keeps per-faculty UI state.
type SessionService struct {
	kv        sessionKV
	notices   noticeStore
	validator *validator.Validate
	logger    *zap.Logger
	config    SessionConfig
	clock     clock

	mu sync.Mutex
}

// NewSessionService constructs a SessionService instance.
func NewSessionService(kv sessionKV, notices noticeStore, validate *validator.Validate, logger *zap.Logger, config SessionConfig) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = NewValidator()
	}
	if config.TokenExpiry <= 0 {
		config.TokenExpiry = 24 * time.Hour
	}
	if config.Issuer == "" {
		config.Issuer = "faculty-dashboard-api"
	}
	return &SessionService{kv: kv, notices: notices, validator: validate, logger: logger, config: config}
}

// Login checks the demo credentials, issues an access token and opens the session.
func (s *SessionService) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid login payload")
	}
	if !strings.EqualFold(strings.TrimSpace(req.Email), s.config.DemoEmail) {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
	}
	if s.config.DemoPasswordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(s.config.DemoPasswordHash), []byte(req.Password)); err != nil {
			return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid email or password")
		}
	}

	notices, err := s.notices.List(ctx)
	if err != nil {
		return nil, internalError(err, "failed to count notices")
	}

	issuedAt := s.clock.now().UTC()
	session := models.Session{
		Email:         s.config.DemoEmail,
		Name:          s.config.DemoName,
		LoggedIn:      true,
		UnseenNotices: len(notices),
		LoginAt:       issuedAt,
	}

	s.mu.Lock()
	err = s.save(ctx, session)
	s.mu.Unlock()
	if err != nil {
		return nil, internalError(err, "failed to open session")
	}

	token, err := s.generateAccessToken(session, issuedAt)
	if err != nil {
		return nil, internalError(err, "failed to create access token")
	}

	s.logger.Info("faculty logged in", zap.String("email", session.Email))

	return &models.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.config.TokenExpiry.Seconds()),
		IssuedAt:    issuedAt,
		Faculty:     models.FacultyInfo{Email: session.Email, Name: session.Name},
	}, nil
}

// Logout closes the session; tokens issued before stop authenticating.
func (s *SessionService) Logout(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.kv.Delete(ctx, sessionKey(email)); err != nil {
		return internalError(err, "failed to close session")
	}
	s.logger.Info("faculty logged out", zap.String("email", email))
	return nil
}

// Get returns the open session for email.
func (s *SessionService) Get(ctx context.Context, email string) (*models.Session, error) {
	session, found, err := s.load(ctx, email)
	if err != nil {
		return nil, internalError(err, "failed to load session")
	}
	if !found || !session.LoggedIn {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "no active session")
	}
	return session, nil
}

// ValidateToken parses and validates an access token returning the claims.
func (s *SessionService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.TokenSecret), nil
	}, jwt.WithTimeFunc(s.clock.now))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

// Authenticate validates the token and requires its session to still be open.
func (s *SessionService) Authenticate(ctx context.Context, tokenString string) (*models.JWTClaims, error) {
	claims, err := s.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if _, err := s.Get(ctx, claims.Email); err != nil {
		return nil, err
	}
	return claims, nil
}

// ResetUnseen marks every notice as seen.
func (s *SessionService) ResetUnseen(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, found, err := s.load(ctx, email)
	if err != nil {
		return internalError(err, "failed to load session")
	}
	if !found || session.UnseenNotices == 0 {
		return nil
	}
	session.UnseenNotices = 0
	if err := s.save(ctx, *session); err != nil {
		return internalError(err, "failed to update session")
	}
	return nil
}

// UnseenNotices returns the badge count for email; 0 without a session.
func (s *SessionService) UnseenNotices(ctx context.Context, email string) (int, error) {
	session, found, err := s.load(ctx, email)
	if err != nil {
		return 0, internalError(err, "failed to load session")
	}
	if !found {
		return 0, nil
	}
	return session.UnseenNotices, nil
}

func (s *SessionService) load(ctx context.Context, email string) (*models.Session, bool, error) {
	raw, found, err := s.kv.Get(ctx, sessionKey(email))
	if err != nil || !found {
		return nil, false, err
	}
	var session models.Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, false, fmt.Errorf("decode session: %w", err)
	}
	return &session, true, nil
}

func (s *SessionService) save(ctx context.Context, session models.Session) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.kv.Set(ctx, sessionKey(session.Email), string(payload))
}

func (s *SessionService) generateAccessToken(session models.Session, issuedAt time.Time) (string, error) {
	claims := &models.JWTClaims{
		Email: session.Email,
		Name:  session.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   session.Email,
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.config.TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.TokenSecret))
}

func sessionKey(email string) string {
	return sessionKeyPrefix + strings.ToLower(strings.TrimSpace(email))
}
