package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"rsvp/internal/model"
)

// UserRepository defines persistence operations for invitation accounts.
// Lookups return gorm.ErrRecordNotFound when nothing matches.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	FindByID(ctx context.Context, id uint) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	FindByInvitationFingerprint(ctx context.Context, fingerprint string) (*model.User, error)
	FindByVerificationFingerprint(ctx context.Context, fingerprint string) (*model.User, error)
	FindByResetFingerprint(ctx context.Context, fingerprint string) (*model.User, error)
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo UserRepository) error) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository builds a GORM-backed repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a user together with its guests and their role links.
func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Update saves the user's own columns. Guests are never written through this path.
func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(user).Error
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(r.db.WithContext(ctx), "email = ?", email)
}

func (r *userRepository) FindByInvitationFingerprint(ctx context.Context, fingerprint string) (*model.User, error) {
	return r.findOne(r.db.WithContext(ctx), "invitation_fingerprint = ?", fingerprint)
}

func (r *userRepository) FindByVerificationFingerprint(ctx context.Context, fingerprint string) (*model.User, error) {
	return r.findOne(r.db.WithContext(ctx), "email_verification_fingerprint = ?", fingerprint)
}

func (r *userRepository) FindByResetFingerprint(ctx context.Context, fingerprint string) (*model.User, error) {
	return r.findOne(r.db.WithContext(ctx), "password_reset_fingerprint = ?", fingerprint)
}

func (r *userRepository) findOne(q *gorm.DB, where string, arg any) (*model.User, error) {
	if s, ok := arg.(string); ok && s == "" {
		return nil, gorm.ErrRecordNotFound
	}
	var user model.User
	if err := q.Where(where, arg).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// WithTransaction executes a function within a database transaction.
func (r *userRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo UserRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &userRepository{db: tx}
		return fn(ctx, txRepo)
	})
}
