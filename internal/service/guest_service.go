package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"

	"rsvp/internal/cache"
	apperrors "rsvp/internal/errors"
	"rsvp/internal/model"
	"rsvp/internal/repository"
)

const guestCacheTTL = 5 * time.Minute

// GuestView is the read projection of a guest shown to its owning user.
type GuestView struct {
	ID                         uint                `json:"id"`
	FirstName                  string              `json:"first_name"`
	LastName                   string              `json:"last_name"`
	Roles                      []model.RoleName    `json:"roles"`
	Joins                      bool                `json:"joins"`
	FoodOption                 model.FoodOption    `json:"food_option"`
	DessertOption              model.DessertOption `json:"dessert_option"`
	Allergies                  string              `json:"allergies"`
	FavoriteFairyTaleCharacter string              `json:"favorite_fairy_tale_character"`
	FavoriteTool               string              `json:"favorite_tool"`
}

// GuestUpdate holds the fields a user may change on one of their guests.
// Names and roles are deliberately absent.
type GuestUpdate struct {
	ID                         uint
	Joins                      bool
	FoodOption                 int
	DessertOption              int
	Allergies                  string
	FavoriteFairyTaleCharacter string
	FavoriteTool               string
}

// GuestService handles the guest-info operations of an authenticated user.
type GuestService interface {
	GetGuests(ctx context.Context, user *model.User) ([]GuestView, error)
	UpdateGuests(ctx context.Context, user *model.User, updates []GuestUpdate) (int, error)
}

type guestService struct {
	repo   repository.GuestRepository
	cache  *cache.Client
	logger *slog.Logger
}

// NewGuestService creates a new guest service.
func NewGuestService(repo repository.GuestRepository, cache *cache.Client, logger *slog.Logger) GuestService {
	if logger == nil {
		logger = slog.Default()
	}
	return &guestService{repo: repo, cache: cache, logger: logger}
}

// NewGuestView projects a guest. Only EXCUSED guests are reported as not joining.
func NewGuestView(g model.Guest) GuestView {
	return GuestView{
		ID:                         g.ID,
		FirstName:                  g.FirstName,
		LastName:                   g.LastName,
		Roles:                      g.RoleNames(),
		Joins:                      g.Joins(),
		FoodOption:                 g.FoodOption,
		DessertOption:              g.DessertOption,
		Allergies:                  g.Allergies,
		FavoriteFairyTaleCharacter: g.FavoriteFairyTaleCharacter,
		FavoriteTool:               g.FavoriteTool,
	}
}

// GetGuests returns the user's guests, served from cache when possible.
func (s *guestService) GetGuests(ctx context.Context, user *model.User) ([]GuestView, error) {
	key := cache.GuestsKey(user.ID)
	var cached []GuestView
	if s.cache.GetJSON(ctx, key, &cached) {
		return cached, nil
	}

	guests, err := s.repo.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	views := make([]GuestView, 0, len(guests))
	for _, g := range guests {
		views = append(views, NewGuestView(g))
	}
	s.cache.SetJSON(ctx, key, views, guestCacheTTL)
	return views, nil
}

// UpdateGuests applies updates to guests owned by user in a single transaction.
// A foreign guest id rejects the whole request before anything is written.
func (s *guestService) UpdateGuests(ctx context.Context, user *model.User, updates []GuestUpdate) (int, error) {
	for _, u := range updates {
		if !model.FoodOption(u.FoodOption).Valid() || !model.DessertOption(u.DessertOption).Valid() {
			return 0, apperrors.ErrInvalidArgument
		}
	}
	if len(updates) == 0 {
		return 0, nil
	}

	count := 0
	err := s.repo.WithTransaction(ctx, func(ctx context.Context, repo repository.GuestRepository) error {
		owned, err := repo.ListByUser(ctx, user.ID)
		if err != nil {
			return apperrors.Wrap(apperrors.ErrUpdateFailed, err)
		}
		byID := make(map[uint]model.Guest, len(owned))
		for _, g := range owned {
			byID[g.ID] = g
		}
		for _, u := range updates {
			if _, ok := byID[u.ID]; !ok {
				return apperrors.ErrNotFound
			}
		}

		for _, u := range updates {
			guest := byID[u.ID]
			applyUpdate(&guest, u)
			if err := repo.UpdatePreferences(ctx, &guest); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.ErrNotFound
				}
				return apperrors.Wrap(apperrors.ErrUpdateFailed, err)
			}
			count++
		}
		return nil
	})
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindPersistenceFailure {
			s.logger.ErrorContext(ctx, "guest update failed", "user_id", user.ID, "error", err)
		}
		return 0, err
	}

	_ = s.cache.Delete(ctx, cache.GuestsKey(user.ID))
	return count, nil
}

func applyUpdate(g *model.Guest, u GuestUpdate) {
	if u.Joins {
		g.AttendanceStatus = model.AttendanceRegistered
	} else {
		g.AttendanceStatus = model.AttendanceExcused
	}
	g.FoodOption = model.FoodOption(u.FoodOption)
	g.DessertOption = model.DessertOption(u.DessertOption)
	g.Allergies = u.Allergies
	g.FavoriteFairyTaleCharacter = u.FavoriteFairyTaleCharacter
	g.FavoriteTool = u.FavoriteTool
}
