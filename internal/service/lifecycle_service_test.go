package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"rsvp/internal/auth"
	apperrors "rsvp/internal/errors"
	"rsvp/internal/model"
)

type lifecycleFixture struct {
	repo      *MockUserRepository
	tokens    *auth.TokenCodec
	passwords *auth.PasswordHasher
	sessions  *auth.JWTService
	svc       *lifecycleService
}

func newLifecycleFixture() *lifecycleFixture {
	f := &lifecycleFixture{
		repo:      new(MockUserRepository),
		tokens:    auth.NewTokenCodec(auth.DefaultTokenSize, ""),
		passwords: auth.NewPasswordHasher(bcrypt.MinCost),
		sessions:  auth.NewJWTService("test-secret", time.Minute),
	}
	svc := NewLifecycleService(f.repo, f.tokens, f.passwords, f.sessions, nil, discardLogger())
	f.svc = svc.(*lifecycleService)
	return f
}

func (f *lifecycleFixture) digest(t *testing.T, password string) *string {
	t.Helper()
	d, err := f.passwords.Hash(password)
	require.NoError(t, err)
	return &d
}

func TestLifecycleService_Register(t *testing.T) {
	tests := []struct {
		name          string
		status        model.UserStatus
		expectedError error
	}{
		{name: "unseen invitation", status: model.UserStatusUnseen},
		{name: "re-registration while unverified", status: model.UserStatusUnverified},
		{name: "verified", status: model.UserStatusVerified, expectedError: apperrors.ErrInvalidState},
		{name: "disabled", status: model.UserStatusDisabled, expectedError: apperrors.ErrInvalidState},
		{name: "deleted", status: model.UserStatusDeleted, expectedError: apperrors.ErrInvalidState},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLifecycleFixture()
			user := &model.User{ID: 1, InvitationFingerprint: f.tokens.Fingerprint("invite"), Status: tt.status}
			if tt.status == model.UserStatusUnverified {
				user.EmailVerificationFingerprint = strPtr("old-fingerprint")
			}
			f.repo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
			f.repo.On("FindByInvitationFingerprint", mock.Anything, f.tokens.Fingerprint("invite")).Return(user, nil)
			if tt.expectedError == nil {
				f.repo.On("Update", mock.Anything, user).Return(nil)
			}

			reg, err := f.svc.Register(context.Background(), "invite", " Anna@Example.COM ", "secret")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, reg)
				assert.Equal(t, tt.status, user.Status)
			} else {
				require.NoError(t, err)
				require.NotNil(t, reg)
				assert.Len(t, reg.VerificationToken, 2*auth.DefaultTokenSize)
				assert.Equal(t, model.UserStatusUnverified, user.Status)
				assert.Equal(t, "anna@example.com", user.EmailAddress())
				require.NotNil(t, user.EmailVerificationFingerprint)
				assert.Equal(t, f.tokens.Fingerprint(reg.VerificationToken), *user.EmailVerificationFingerprint)
				assert.True(t, f.passwords.Verify("secret", *user.PasswordDigest))
			}
			f.repo.AssertExpectations(t)
		})
	}
}

func TestLifecycleService_RegisterFailures(t *testing.T) {
	t.Run("unknown invitation", func(t *testing.T) {
		f := newLifecycleFixture()
		f.repo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
		f.repo.On("FindByInvitationFingerprint", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

		_, err := f.svc.Register(context.Background(), "nope", "anna@example.com", "secret")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("empty password", func(t *testing.T) {
		f := newLifecycleFixture()
		f.repo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
		f.repo.On("FindByInvitationFingerprint", mock.Anything, mock.Anything).Return(&model.User{ID: 1}, nil)

		_, err := f.svc.Register(context.Background(), "invite", "anna@example.com", "")
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
		f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("missing email", func(t *testing.T) {
		f := newLifecycleFixture()

		_, err := f.svc.Register(context.Background(), "invite", "  ", "secret")
		assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)
		f.repo.AssertNotCalled(t, "WithTransaction", mock.Anything, mock.Anything)
	})

	t.Run("persistence failure", func(t *testing.T) {
		f := newLifecycleFixture()
		f.repo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
		f.repo.On("FindByInvitationFingerprint", mock.Anything, mock.Anything).Return(&model.User{ID: 1}, nil)
		f.repo.On("Update", mock.Anything, mock.Anything).Return(errors.New("disk full"))

		_, err := f.svc.Register(context.Background(), "invite", "anna@example.com", "secret")
		assert.ErrorIs(t, err, apperrors.ErrRegistrationFailed)
		assert.Equal(t, apperrors.KindPersistenceFailure, apperrors.KindOf(err))
	})
}

func TestLifecycleService_VerifyEmail(t *testing.T) {
	tests := []struct {
		name          string
		user          *model.User
		lookupErr     error
		expectedError error
	}{
		{
			name: "unverified user",
			user: &model.User{ID: 1, Email: strPtr("anna@example.com"), Status: model.UserStatusUnverified},
		},
		{
			name:          "already verified",
			user:          &model.User{ID: 1, Email: strPtr("anna@example.com"), Status: model.UserStatusVerified},
			expectedError: apperrors.ErrInvalidState,
		},
		{
			name:          "unknown token",
			lookupErr:     gorm.ErrRecordNotFound,
			expectedError: apperrors.ErrNotFound,
		},
		{
			name:          "store failure",
			lookupErr:     errors.New("connection reset"),
			expectedError: apperrors.ErrVerificationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newLifecycleFixture()
			f.repo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
			if tt.user != nil {
				f.repo.On("FindByVerificationFingerprint", mock.Anything, f.tokens.Fingerprint("verify")).Return(tt.user, nil)
			} else {
				f.repo.On("FindByVerificationFingerprint", mock.Anything, f.tokens.Fingerprint("verify")).Return(nil, tt.lookupErr)
			}
			if tt.expectedError == nil {
				f.repo.On("Update", mock.Anything, tt.user).Return(nil)
			}

			token, err := f.svc.VerifyEmail(context.Background(), "verify")

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, model.UserStatusVerified, tt.user.Status)
			claims, err := f.sessions.Validate(token)
			require.NoError(t, err)
			assert.Equal(t, "anna@example.com", claims.Email())
		})
	}
}

func TestLifecycleService_Login(t *testing.T) {
	f := newLifecycleFixture()
	verified := &model.User{ID: 1, Email: strPtr("anna@example.com"), PasswordDigest: f.digest(t, "secret"), Status: model.UserStatusVerified}
	unverified := &model.User{ID: 2, Email: strPtr("bob@example.com"), PasswordDigest: f.digest(t, "secret"), Status: model.UserStatusUnverified}

	tests := []struct {
		name          string
		email         string
		password      string
		setupMock     func(*MockUserRepository)
		expectedError error
	}{
		{
			name:     "successful login",
			email:    "Anna@example.com",
			password: "secret",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "anna@example.com").Return(verified, nil)
				m.On("Update", mock.Anything, verified).Return(nil)
			},
		},
		{
			name:     "wrong password",
			email:    "anna@example.com",
			password: "guess",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "anna@example.com").Return(verified, nil)
			},
			expectedError: apperrors.ErrNotFound,
		},
		{
			name:     "unverified account",
			email:    "bob@example.com",
			password: "secret",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "bob@example.com").Return(unverified, nil)
			},
			expectedError: apperrors.ErrInvalidState,
		},
		{
			name:     "unknown email",
			email:    "nobody@example.com",
			password: "secret",
			setupMock: func(m *MockUserRepository) {
				m.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			tt.setupMock(repo)
			svc := NewLifecycleService(repo, f.tokens, f.passwords, f.sessions, nil, discardLogger()).(*lifecycleService)
			loginAt := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
			svc.now = func() time.Time { return loginAt }

			token, err := svc.Login(context.Background(), tt.email, tt.password)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Empty(t, token)
			} else {
				require.NoError(t, err)
				assert.NotEmpty(t, token)
				require.NotNil(t, verified.LastLogin)
				assert.Equal(t, loginAt, *verified.LastLogin)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestLifecycleService_ForgetPassword(t *testing.T) {
	t.Run("unknown email yields no ticket", func(t *testing.T) {
		f := newLifecycleFixture()
		f.repo.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, gorm.ErrRecordNotFound)

		ticket, err := f.svc.ForgetPassword(context.Background(), "nobody@example.com")
		assert.NoError(t, err)
		assert.Nil(t, ticket)
	})

	t.Run("unverified account yields no ticket", func(t *testing.T) {
		f := newLifecycleFixture()
		user := &model.User{ID: 1, Email: strPtr("anna@example.com"), Status: model.UserStatusUnverified}
		f.repo.On("FindByEmail", mock.Anything, "anna@example.com").Return(user, nil)

		ticket, err := f.svc.ForgetPassword(context.Background(), "anna@example.com")
		assert.NoError(t, err)
		assert.Nil(t, ticket)
		assert.Nil(t, user.PasswordResetFingerprint)
		f.repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("verified account gets a ticket", func(t *testing.T) {
		f := newLifecycleFixture()
		user := &model.User{ID: 1, Email: strPtr("anna@example.com"), Status: model.UserStatusVerified}
		f.repo.On("FindByEmail", mock.Anything, "anna@example.com").Return(user, nil)
		f.repo.On("Update", mock.Anything, user).Return(nil)

		ticket, err := f.svc.ForgetPassword(context.Background(), "anna@example.com")
		require.NoError(t, err)
		require.NotNil(t, ticket)
		assert.Equal(t, "anna@example.com", ticket.Email)
		require.NotNil(t, user.PasswordResetFingerprint)
		assert.Equal(t, f.tokens.Fingerprint(ticket.Token), *user.PasswordResetFingerprint)
	})
}

func TestLifecycleService_ResetPassword(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		f := newLifecycleFixture()
		user := &model.User{
			ID:                       1,
			Email:                    strPtr("anna@example.com"),
			PasswordDigest:           f.digest(t, "old"),
			PasswordResetFingerprint: strPtr(f.tokens.Fingerprint("reset")),
			Status:                   model.UserStatusVerified,
		}
		f.repo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
		f.repo.On("FindByResetFingerprint", mock.Anything, f.tokens.Fingerprint("reset")).Return(user, nil)
		f.repo.On("Update", mock.Anything, user).Return(nil)

		require.NoError(t, f.svc.ResetPassword(context.Background(), "reset", "new"))
		assert.Nil(t, user.PasswordResetFingerprint)
		assert.True(t, f.passwords.Verify("new", *user.PasswordDigest))
		assert.False(t, f.passwords.Verify("old", *user.PasswordDigest))
	})

	t.Run("unknown token", func(t *testing.T) {
		f := newLifecycleFixture()
		f.repo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
		f.repo.On("FindByResetFingerprint", mock.Anything, mock.Anything).Return(nil, gorm.ErrRecordNotFound)

		err := f.svc.ResetPassword(context.Background(), "reset", "new")
		assert.ErrorIs(t, err, apperrors.ErrNotFound)
	})

	t.Run("persistence failure", func(t *testing.T) {
		f := newLifecycleFixture()
		f.repo.On("WithTransaction", mock.Anything, mock.Anything).Return(nil)
		f.repo.On("FindByResetFingerprint", mock.Anything, mock.Anything).Return(&model.User{ID: 1}, nil)
		f.repo.On("Update", mock.Anything, mock.Anything).Return(errors.New("locked"))

		err := f.svc.ResetPassword(context.Background(), "reset", "new")
		assert.ErrorIs(t, err, apperrors.ErrResetFailed)
	})
}

func TestLifecycleService_CurrentUser(t *testing.T) {
	f := newLifecycleFixture()
	f.repo.On("FindByEmail", mock.Anything, "anna@example.com").
		Return(&model.User{ID: 1, Status: model.UserStatusVerified}, nil)
	f.repo.On("FindByEmail", mock.Anything, "bob@example.com").
		Return(&model.User{ID: 2, Status: model.UserStatusDisabled}, nil)

	user, err := f.svc.CurrentUser(context.Background(), "anna@example.com")
	require.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)

	assert.Empty(t, user.Guests, "guests are loaded by the guest service")

	_, err = f.svc.CurrentUser(context.Background(), "bob@example.com")
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
	f.repo.AssertExpectations(t)
}
