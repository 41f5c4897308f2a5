package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/stretchr/testify/mock"

	"rsvp/internal/model"
	"rsvp/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	return m.user(m.Called(ctx, id))
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return m.user(m.Called(ctx, email))
}

func (m *MockUserRepository) FindByInvitationFingerprint(ctx context.Context, fingerprint string) (*model.User, error) {
	return m.user(m.Called(ctx, fingerprint))
}

func (m *MockUserRepository) FindByVerificationFingerprint(ctx context.Context, fingerprint string) (*model.User, error) {
	return m.user(m.Called(ctx, fingerprint))
}

func (m *MockUserRepository) FindByResetFingerprint(ctx context.Context, fingerprint string) (*model.User, error) {
	return m.user(m.Called(ctx, fingerprint))
}

// WithTransaction runs fn against the mock itself unless an error is configured.
func (m *MockUserRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.UserRepository) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m)
}

func (m *MockUserRepository) user(args mock.Arguments) (*model.User, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockGuestRepository is a mock implementation of GuestRepository.
type MockGuestRepository struct {
	mock.Mock
}

func (m *MockGuestRepository) ListByUser(ctx context.Context, userID uint) ([]model.Guest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Guest), args.Error(1)
}

func (m *MockGuestRepository) FindContact(ctx context.Context, guestID uint) (*model.Guest, error) {
	args := m.Called(ctx, guestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Guest), args.Error(1)
}

func (m *MockGuestRepository) ListContacts(ctx context.Context) ([]model.Guest, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Guest), args.Error(1)
}

func (m *MockGuestRepository) UpdatePreferences(ctx context.Context, guest *model.Guest) error {
	args := m.Called(ctx, guest)
	return args.Error(0)
}

func (m *MockGuestRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.GuestRepository) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func strPtr(s string) *string { return &s }
