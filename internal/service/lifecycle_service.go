package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gorm.io/gorm"

	"rsvp/internal/auth"
	"rsvp/internal/cache"
	apperrors "rsvp/internal/errors"
	"rsvp/internal/model"
	"rsvp/internal/repository"
)

// Registration is the outcome of a successful Register call.
// VerificationToken is the plaintext token to deliver by email; only its fingerprint is stored.
type Registration struct {
	User              *model.User
	VerificationToken string
}

// PasswordResetTicket carries a plaintext reset token for out-of-band delivery.
type PasswordResetTicket struct {
	Email string
	Token string
}

// LifecycleService drives an invitation from first use to a verified, password-protected account.
type LifecycleService interface {
	Register(ctx context.Context, invitationToken, email, password string) (*Registration, error)
	VerifyEmail(ctx context.Context, token string) (accessToken string, err error)
	Login(ctx context.Context, email, password string) (accessToken string, err error)
	// ForgetPassword returns a nil ticket and nil error for unknown or unverified emails.
	ForgetPassword(ctx context.Context, email string) (*PasswordResetTicket, error)
	ResetPassword(ctx context.Context, token, password string) error
	// CurrentUser resolves an authenticated session subject to a verified user.
	CurrentUser(ctx context.Context, email string) (*model.User, error)
}

type lifecycleService struct {
	users     repository.UserRepository
	tokens    *auth.TokenCodec
	passwords *auth.PasswordHasher
	sessions  *auth.JWTService
	cache     *cache.Client
	logger    *slog.Logger
	now       func() time.Time
}

// NewLifecycleService creates a new lifecycle service.
func NewLifecycleService(
	users repository.UserRepository,
	tokens *auth.TokenCodec,
	passwords *auth.PasswordHasher,
	sessions *auth.JWTService,
	cache *cache.Client,
	logger *slog.Logger,
) LifecycleService {
	if logger == nil {
		logger = slog.Default()
	}
	return &lifecycleService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		sessions:  sessions,
		cache:     cache,
		logger:    logger,
		now:       time.Now,
	}
}

// NormalizeEmail trims and lower-cases an address before it is stored or looked up.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register binds an email and password to an unused or unverified invitation.
// Re-registering an unverified invitation overwrites the previous verification fingerprint,
// so older verification tokens stop resolving.
func (s *lifecycleService) Register(ctx context.Context, invitationToken, email, password string) (*Registration, error) {
	email = NormalizeEmail(email)
	if invitationToken == "" || email == "" {
		return nil, apperrors.ErrInvalidArgument
	}

	var reg *Registration
	err := s.users.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		user, err := repo.FindByInvitationFingerprint(ctx, s.tokens.Fingerprint(invitationToken))
		if err != nil {
			return lookupError(err, apperrors.ErrRegistrationFailed)
		}
		if !user.Status.CanRegister() {
			return apperrors.ErrInvalidState
		}

		verificationToken, err := s.tokens.Generate()
		if err != nil {
			return apperrors.Wrap(apperrors.ErrRegistrationFailed, err)
		}
		digest, err := s.passwords.Hash(password)
		if err != nil {
			return passwordError(err, apperrors.ErrRegistrationFailed)
		}
		fingerprint := s.tokens.Fingerprint(verificationToken)

		user.Email = &email
		user.PasswordDigest = &digest
		user.EmailVerificationFingerprint = &fingerprint
		user.Status = model.UserStatusUnverified

		if err := repo.Update(ctx, user); err != nil {
			return apperrors.Wrap(apperrors.ErrRegistrationFailed, err)
		}
		reg = &Registration{User: user, VerificationToken: verificationToken}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, "register", err)
		return nil, err
	}

	// the household now has an email, so it may appear in the contact list
	_ = s.cache.Delete(ctx, cache.ContactsKey)
	return reg, nil
}

// VerifyEmail confirms the address of an unverified user and opens a session.
func (s *lifecycleService) VerifyEmail(ctx context.Context, token string) (string, error) {
	var accessToken string
	err := s.users.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		user, err := repo.FindByVerificationFingerprint(ctx, s.tokens.Fingerprint(token))
		if err != nil {
			return lookupError(err, apperrors.ErrVerificationFailed)
		}
		if user.Status != model.UserStatusUnverified {
			return apperrors.ErrInvalidState
		}

		user.Status = model.UserStatusVerified
		if err := repo.Update(ctx, user); err != nil {
			return apperrors.Wrap(apperrors.ErrVerificationFailed, err)
		}

		accessToken, err = s.sessions.Issue(user.EmailAddress())
		if err != nil {
			return apperrors.Wrap(apperrors.ErrVerificationFailed, err)
		}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, "verify_email", err)
		return "", err
	}
	return accessToken, nil
}

// Login checks the password of a verified user and records the login time.
func (s *lifecycleService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		err = lookupError(err, apperrors.ErrLoginFailed)
		s.logFailure(ctx, "login", err)
		return "", err
	}
	if user.Status != model.UserStatusVerified || user.PasswordDigest == nil {
		return "", apperrors.ErrInvalidState
	}
	if !s.passwords.Verify(password, *user.PasswordDigest) {
		return "", apperrors.ErrNotFound
	}

	now := s.now()
	user.LastLogin = &now
	if err := s.users.Update(ctx, user); err != nil {
		err = apperrors.Wrap(apperrors.ErrLoginFailed, err)
		s.logFailure(ctx, "login", err)
		return "", err
	}

	accessToken, err := s.sessions.Issue(user.EmailAddress())
	if err != nil {
		err = apperrors.Wrap(apperrors.ErrLoginFailed, err)
		s.logFailure(ctx, "login", err)
		return "", err
	}
	return accessToken, nil
}

// ForgetPassword issues a reset token for a verified user.
// Unknown and unverified addresses yield (nil, nil) so callers respond identically.
func (s *lifecycleService) ForgetPassword(ctx context.Context, email string) (*PasswordResetTicket, error) {
	user, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		err = apperrors.Wrap(apperrors.ErrResetFailed, err)
		s.logFailure(ctx, "forget_password", err)
		return nil, err
	}
	if user.Status != model.UserStatusVerified {
		return nil, nil
	}

	token, err := s.tokens.Generate()
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrResetFailed, err)
	}
	fingerprint := s.tokens.Fingerprint(token)
	user.PasswordResetFingerprint = &fingerprint

	if err := s.users.Update(ctx, user); err != nil {
		err = apperrors.Wrap(apperrors.ErrResetFailed, err)
		s.logFailure(ctx, "forget_password", err)
		return nil, err
	}
	return &PasswordResetTicket{Email: user.EmailAddress(), Token: token}, nil
}

// ResetPassword replaces the password and clears the reset fingerprint, making the token single-use.
func (s *lifecycleService) ResetPassword(ctx context.Context, token, password string) error {
	err := s.users.WithTransaction(ctx, func(ctx context.Context, repo repository.UserRepository) error {
		user, err := repo.FindByResetFingerprint(ctx, s.tokens.Fingerprint(token))
		if err != nil {
			return lookupError(err, apperrors.ErrResetFailed)
		}

		digest, err := s.passwords.Hash(password)
		if err != nil {
			return passwordError(err, apperrors.ErrResetFailed)
		}
		user.PasswordDigest = &digest
		user.PasswordResetFingerprint = nil

		if err := repo.Update(ctx, user); err != nil {
			return apperrors.Wrap(apperrors.ErrResetFailed, err)
		}
		return nil
	})
	if err != nil {
		s.logFailure(ctx, "reset_password", err)
	}
	return err
}

func (s *lifecycleService) CurrentUser(ctx context.Context, email string) (*model.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrLoginFailed)
	}
	if user.Status != model.UserStatusVerified {
		return nil, apperrors.ErrInvalidState
	}
	return user, nil
}

// logFailure records persistence failures; rejected tokens and credentials are expected traffic.
func (s *lifecycleService) logFailure(ctx context.Context, op string, err error) {
	if apperrors.KindOf(err) != apperrors.KindPersistenceFailure {
		return
	}
	s.logger.ErrorContext(ctx, "lifecycle operation failed", "op", op, "error", err)
}

// lookupError maps a repository lookup failure to NotFound or to the operation's failure sentinel.
func lookupError(err error, failure *apperrors.Error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	return apperrors.Wrap(failure, err)
}

func passwordError(err error, failure *apperrors.Error) error {
	if errors.Is(err, auth.ErrEmptyPassword) {
		return apperrors.ErrInvalidArgument
	}
	return apperrors.Wrap(failure, err)
}
