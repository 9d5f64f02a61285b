package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/constants"
	apperrors "github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/errors"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/model"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/internal/repository"
	ctxutil "github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/context"
	"github.com/MoonManEnt/mavro-pro-ai-marketing-os-sub004/pkg/logger"
	"github.com/google/uuid"
)

// DefaultTrialDuration is how long a new account's trial lasts.
const DefaultTrialDuration = 14 * 24 * time.Hour

type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AuthResult is returned by Register and Login.
type AuthResult struct {
	User  *model.User
	Token string
}

// Hasher hashes and verifies passwords.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// AuthService composes hashing, tokens and sessions into account flows.
type AuthService struct {
	users         repository.UserRepository
	sessions      *SessionStore
	tokens        *TokenService
	hasher        Hasher
	dummyHash     string
	trialDuration time.Duration
	now           func() time.Time
}

func NewAuthService(users repository.UserRepository, sessions *SessionStore, tokens *TokenService, hasher Hasher) *AuthService {
	// Compared against on unknown-email logins so both failure paths pay one bcrypt check.
	dummyHash, err := hasher.Hash(uuid.NewString())
	if err != nil {
		logger.ErrorWithContext(context.Background(), "Failed to prepare login dummy hash").
			Err(err).
			Log()
	}

	return &AuthService{
		users:         users,
		sessions:      sessions,
		tokens:        tokens,
		hasher:        hasher,
		dummyHash:     dummyHash,
		trialDuration: DefaultTrialDuration,
		now:           time.Now,
	}
}

// WithTrialDuration overrides the trial length given to new accounts.
func (s *AuthService) WithTrialDuration(d time.Duration) *AuthService {
	if d > 0 {
		s.trialDuration = d
	}
	return s
}

// NormalizeEmail trims and lowercases an address before any lookup or insert.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Register")

	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, apperrors.ErrInvalidInput
	}

	logger.InfoWithContext(ctx, "Registering new user").
		String("email", email).
		Log()

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		if errors.Is(err, ErrPasswordTooLong) {
			return nil, apperrors.WrapError(apperrors.ErrInvalidInput, err)
		}
		logger.ErrorWithContext(ctx, "Failed to hash password").
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	now := s.now()
	user := &model.User{
		ID:                  uuid.NewString(),
		Email:               email,
		PasswordHash:        hash,
		FirstName:           strings.TrimSpace(in.FirstName),
		LastName:            strings.TrimSpace(in.LastName),
		EmailVerified:       false,
		AccountType:         constants.DefaultAccountType,
		SubscriptionStatus:  constants.DefaultSubscriptionStatus,
		TrialEndsAt:         now.Add(s.trialDuration),
		IsActive:            true,
		OnboardingCompleted: false,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			logger.WarnWithContext(ctx, "Email already registered").
				String("email", email).
				Log()
			return nil, apperrors.ErrDuplicateEmail
		}
		logger.ErrorWithContext(ctx, "Failed to create user").
			String("email", email).
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrStorageFailure, err)
	}

	token, err := s.startSession(ctx, user.ID)
	if err != nil {
		// Roll back so a retry with the same email can succeed.
		if delErr := s.users.Delete(ctx, user.ID); delErr != nil {
			logger.ErrorWithContext(ctx, "Failed to remove user after session failure").
				String("user_id", user.ID).
				Err(delErr).
				Log()
		}
		return nil, err
	}

	logger.InfoWithContext(ctx, "User registered successfully").
		String("user_id", user.ID).
		Log()

	return &AuthResult{User: user, Token: token}, nil
}

// Login checks credentials. Unknown email and wrong password fail identically.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "Login")
	email = NormalizeEmail(email)

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			logger.WarnWithContext(ctx, "Login failed").
				String("reason", "unknown_email").
				Log()
			return nil, apperrors.ErrInvalidCredentials
		}
		logger.ErrorWithContext(ctx, "Failed to load user for login").
			Err(err).
			Log()
		return nil, apperrors.WrapError(apperrors.ErrStorageFailure, err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		logger.WarnWithContext(ctx, "Login failed").
			String("reason", "wrong_password").
			String("user_id", user.ID).
			Log()
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		logger.WarnWithContext(ctx, "Login refused for deactivated account").
			String("user_id", user.ID).
			Log()
		return nil, apperrors.ErrAccountDeactivated
	}

	token, err := s.startSession(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		logger.WarnWithContext(ctx, "Failed to record last login").
			String("user_id", user.ID).
			Err(err).
			Log()
	} else {
		user.LastLoginAt = &now
	}

	logger.InfoWithContext(ctx, "User logged in").
		String("user_id", user.ID).
		Log()

	return &AuthResult{User: user, Token: token}, nil
}

// Logout revokes token. Absent or unknown tokens succeed.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	ctx = ctxutil.WithFunction(ctx, "service", "Logout")
	if token == "" {
		return nil
	}
	return s.sessions.Revoke(ctx, token)
}

// GetUserForToken resolves a bearer token to its user. The token must verify,
// its session must be live and bound to the claimed user, and the user must exist.
func (s *AuthService) GetUserForToken(ctx context.Context, token string) (*model.User, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "GetUserForToken")

	userID, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Validate(ctx, token, userID); err != nil {
		return nil, err
	}

	return s.loadUser(ctx, userID)
}

func (s *AuthService) GetProfile(ctx context.Context, userID string) (*model.User, error) {
	return s.loadUser(ctxutil.WithFunction(ctx, "service", "GetProfile"), userID)
}

// UpdateProfile changes only the whitelisted profile fields.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, update model.ProfileUpdate) (*model.User, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "UpdateProfile")

	if update.IsEmpty() {
		return s.loadUser(ctx, userID)
	}

	user, err := s.users.UpdateProfile(ctx, userID, update, s.now())
	if err != nil {
		return nil, s.userError(ctx, userID, err)
	}

	logger.InfoWithContext(ctx, "Profile updated").
		String("user_id", userID).
		Log()
	return user, nil
}

// CompleteOnboarding marks onboarding done. Repeating it is harmless.
func (s *AuthService) CompleteOnboarding(ctx context.Context, userID string) (*model.User, error) {
	ctx = ctxutil.WithFunction(ctx, "service", "CompleteOnboarding")

	user, err := s.users.MarkOnboardingCompleted(ctx, userID, s.now())
	if err != nil {
		return nil, s.userError(ctx, userID, err)
	}

	logger.InfoWithContext(ctx, "Onboarding completed").
		String("user_id", userID).
		Log()
	return user, nil
}

func (s *AuthService) startSession(ctx context.Context, userID string) (string, error) {
	token, err := s.tokens.Issue(userID)
	if err != nil {
		logger.ErrorWithContext(ctx, "Failed to issue token").
			String("user_id", userID).
			Err(err).
			Log()
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if _, err := s.sessions.Create(ctx, userID, token, s.tokens.TTL()); err != nil {
		return "", err
	}
	return token, nil
}

func (s *AuthService) loadUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, s.userError(ctx, userID, err)
	}
	return user, nil
}

func (s *AuthService) userError(ctx context.Context, userID string, err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.ErrUserNotFound
	}
	logger.ErrorWithContext(ctx, "User store failure").
		String("user_id", userID).
		Err(err).
		Log()
	return apperrors.WrapError(apperrors.ErrStorageFailure, err)
}
