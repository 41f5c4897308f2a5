package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"rsvp/internal/model"
)

// preferenceColumns is the complete set of guest columns writable through the guest API.
// updated_at is always written so a matched row counts as affected even when nothing changed.
var preferenceColumns = []string{
	"attendance_status",
	"food_option",
	"dessert_option",
	"allergies",
	"favorite_fairy_tale_character",
	"favorite_tool",
	"updated_at",
}

// GuestRepository defines guest persistence operations.
type GuestRepository interface {
	ListByUser(ctx context.Context, userID uint) ([]model.Guest, error)
	FindContact(ctx context.Context, guestID uint) (*model.Guest, error)
	ListContacts(ctx context.Context) ([]model.Guest, error)
	UpdatePreferences(ctx context.Context, guest *model.Guest) error
	// Transaction methods
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo GuestRepository) error) error
}

type guestRepository struct {
	db *gorm.DB
}

// NewGuestRepository creates a new guest repository.
func NewGuestRepository(db *gorm.DB) GuestRepository {
	return &guestRepository{db: db}
}

// ListByUser returns the user's guests with roles, ordered by id.
func (r *guestRepository) ListByUser(ctx context.Context, userID uint) ([]model.Guest, error) {
	var guests []model.Guest
	if err := r.db.WithContext(ctx).Preload("Roles").
		Where("user_id = ?", userID).
		Order("id").
		Find(&guests).Error; err != nil {
		return nil, err
	}
	return guests, nil
}

// FindContact loads a guest with roles and owning user.
func (r *guestRepository) FindContact(ctx context.Context, guestID uint) (*model.Guest, error) {
	var guest model.Guest
	if err := r.db.WithContext(ctx).Preload("Roles").Preload("User").
		Where("id = ?", guestID).
		First(&guest).Error; err != nil {
		return nil, err
	}
	return &guest, nil
}

// ListContacts returns guests holding a contact role whose owner registered an email.
func (r *guestRepository) ListContacts(ctx context.Context) ([]model.Guest, error) {
	db := r.db.WithContext(ctx)
	withRole := db.Table("guest_roles").
		Select("guest_roles.guest_id").
		Joins("JOIN roles ON roles.id = guest_roles.role_id").
		Where("roles.name IN ?", roleValues(model.ContactRoles))

	var guests []model.Guest
	if err := db.Model(&model.Guest{}).
		Joins("JOIN users ON users.id = guests.user_id").
		Where("users.email IS NOT NULL").
		Where("guests.id IN (?)", withRole).
		Order("guests.id").
		Find(&guests).Error; err != nil {
		return nil, err
	}
	return guests, nil
}

// UpdatePreferences writes only the whitelisted preference columns; names and roles are untouched.
func (r *guestRepository) UpdatePreferences(ctx context.Context, guest *model.Guest) error {
	res := r.db.WithContext(ctx).Model(&model.Guest{}).
		Where("id = ? AND user_id = ?", guest.ID, guest.UserID).
		Select(preferenceColumns).
		Updates(map[string]any{
			"attendance_status":             guest.AttendanceStatus,
			"food_option":                   guest.FoodOption,
			"dessert_option":                guest.DessertOption,
			"allergies":                     guest.Allergies,
			"favorite_fairy_tale_character": guest.FavoriteFairyTaleCharacter,
			"favorite_tool":                 guest.FavoriteTool,
			"updated_at":                    time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// WithTransaction executes a function within a database transaction.
func (r *guestRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo GuestRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := &guestRepository{db: tx}
		return fn(ctx, txRepo)
	})
}

func roleValues(names []model.RoleName) []int {
	values := make([]int, 0, len(names))
	for _, n := range names {
		values = append(values, int(n))
	}
	return values
}
