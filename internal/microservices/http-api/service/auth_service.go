package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"yamdb/internal/config"
	domainerrors "yamdb/internal/errors"
	"yamdb/internal/mail"
	"yamdb/internal/metrics"
	"yamdb/internal/microservices/http-api/dto"
	"yamdb/internal/microservices/http-api/models"
	"yamdb/internal/microservices/http-api/repository"
	"yamdb/internal/middleware/auth"
	"yamdb/internal/validation"
)

const signupSubject = "YaMDb registration"

// ErrInvalidCode covers a missing, expired or wrong confirmation code alike.
var ErrInvalidCode = domainerrors.Validation("invalid confirmation code")

// SignupThrottle limits how often one email may request a code.
type SignupThrottle interface {
	Allow(ctx context.Context, email string) (bool, error)
}

type AuthService interface {
	Register(ctx context.Context, req dto.SignupRequest) (*dto.SignupResponse, error)
	ExchangeCode(ctx context.Context, req dto.TokenRequest) (*dto.TokenResponse, error)
	// Authenticate resolves a bearer token to the current user record.
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

type authService struct {
	userRepo    repository.UserRepository
	pendingRepo repository.PendingAuthRepository
	tokens      *auth.TokenIssuer
	mailer      mail.Sender
	throttle    SignupThrottle
	validator   *validation.Validator
	metrics     *metrics.Metrics
	logger      *slog.Logger
	codeTTL     time.Duration
	now         func() time.Time
}

// NewAuthService wires the signup flow. throttle and m may be nil.
func NewAuthService(
	userRepo repository.UserRepository,
	pendingRepo repository.PendingAuthRepository,
	tokens *auth.TokenIssuer,
	mailer mail.Sender,
	throttle SignupThrottle,
	cfg *config.Config,
	logger *slog.Logger,
	m *metrics.Metrics,
) AuthService {
	return &authService{
		userRepo:    userRepo,
		pendingRepo: pendingRepo,
		tokens:      tokens,
		mailer:      mailer,
		throttle:    throttle,
		validator:   validation.New(),
		metrics:     m,
		logger:      logger,
		codeTTL:     cfg.ConfirmationCodeTTL,
		now:         time.Now,
	}
}

// Register creates the account on first use and mails a fresh confirmation code.
// Repeating it with the same username and email only re-issues the code.
func (s *authService) Register(ctx context.Context, req dto.SignupRequest) (*dto.SignupResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		s.metrics.Signup(metrics.SignupRejected)
		return nil, err
	}

	user, err := s.resolveSignupUser(ctx, req)
	if err != nil {
		s.metrics.Signup(metrics.SignupRejected)
		return nil, err
	}

	if s.throttle != nil {
		ok, err := s.throttle.Allow(ctx, req.Email)
		if err != nil {
			// a broken throttle must not block signups
			s.logger.Warn("signup throttle unavailable", "error", err)
		} else if !ok {
			s.metrics.Signup(metrics.SignupThrottled)
			return nil, domainerrors.RateLimited("too many confirmation codes requested, try again later")
		}
	}

	if user.ID == "" {
		if err := s.userRepo.Create(ctx, user); err != nil {
			return nil, err
		}
		s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	}

	code, err := auth.GenerateCode()
	if err != nil {
		return nil, domainerrors.Internal("generate confirmation code", err)
	}
	hash, err := auth.HashCode(code)
	if err != nil {
		return nil, domainerrors.Internal("hash confirmation code", err)
	}

	now := s.now()
	pending := &models.PendingAuth{
		UserID:    user.ID,
		CodeHash:  hash,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.codeTTL),
	}
	if err := s.pendingRepo.Upsert(ctx, pending); err != nil {
		return nil, err
	}

	body := fmt.Sprintf("Dear %s, your confirmation code is %s", user.Username, code)
	if err := s.mailer.Send(ctx, user.Email, signupSubject, body); err != nil {
		s.metrics.Signup(metrics.SignupMailFailed)
		if delErr := s.pendingRepo.Delete(ctx, user.ID); delErr != nil {
			s.logger.Error("failed to discard undelivered code", "user_id", user.ID, "error", delErr)
		}
		return nil, domainerrors.Transport("failed to send confirmation email", err)
	}

	s.metrics.Signup(metrics.SignupIssued)
	return &dto.SignupResponse{Username: user.Username, Email: user.Email}, nil
}

// resolveSignupUser returns the existing account for a repeat signup, or an unsaved
// user (empty ID) for a new one.
func (s *authService) resolveSignupUser(ctx context.Context, req dto.SignupRequest) (*models.User, error) {
	existing, err := s.userRepo.FindByUsername(ctx, req.Username)
	switch {
	case err == nil:
		if !strings.EqualFold(existing.Email, req.Email) {
			return nil, domainerrors.ConflictOn("username", "a user with this username already exists")
		}
		return existing, nil
	case !domainerrors.Is(err, domainerrors.ErrNotFound):
		return nil, err
	}

	if _, err := s.userRepo.FindByEmail(ctx, req.Email); err == nil {
		return nil, domainerrors.ConflictOn("email", "a user with this email already exists")
	} else if !domainerrors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	return &models.User{
		Username: req.Username,
		Email:    req.Email,
		Role:     models.RoleUser,
	}, nil
}

// ExchangeCode trades a valid confirmation code for an access token.
func (s *authService) ExchangeCode(ctx context.Context, req dto.TokenRequest) (*dto.TokenResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}

	pending, err := s.pendingRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		if domainerrors.Is(err, domainerrors.ErrNotFound) {
			s.metrics.TokenRejected()
			return nil, ErrInvalidCode
		}
		return nil, err
	}

	now := s.now()
	if pending.Expired(now) {
		s.metrics.TokenRejected()
		return nil, ErrInvalidCode
	}

	ok, err := auth.VerifyCode(pending.CodeHash, req.ConfirmationCode)
	if err != nil {
		return nil, domainerrors.Internal("verify confirmation code", err)
	}
	if !ok {
		s.metrics.TokenRejected()
		return nil, ErrInvalidCode
	}

	if !user.Verified() {
		if err := s.userRepo.MarkConfirmed(ctx, user.ID, now); err != nil {
			return nil, err
		}
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, domainerrors.Internal("issue access token", err)
	}

	s.metrics.TokenIssued()
	return &dto.TokenResponse{Token: token}, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, domainerrors.Wrap(domainerrors.CodeUnauthorized, "invalid token", err)
	}

	user, err := s.userRepo.FindByID(ctx, claims.UserID())
	if err != nil {
		if domainerrors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.Unauthorized("user not found")
		}
		return nil, err
	}
	return user, nil
}
