package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"
	"gorm.io/gorm"

	"rsvp/internal/cache"
	apperrors "rsvp/internal/errors"
	"rsvp/internal/model"
	"rsvp/internal/repository"
)

const contactCacheTTL = 5 * time.Minute

// ContactView is the public projection of a contactable guest. The owner's email is never exposed.
type ContactView struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Message is a visitor's note to a contact.
type Message struct {
	ReceiverID  uint
	Subject     string
	Body        string
	SenderEmail string
	SenderPhone string
}

// Delivery is a resolved message ready to hand to the mailer.
type Delivery struct {
	To        string
	Recipient ContactView
	Message   Message
}

// ContactService exposes the contact directory and the message relay.
type ContactService interface {
	GetContacts(ctx context.Context) ([]ContactView, error)
	SendMessage(ctx context.Context, msg Message) (*Delivery, error)
}

type contactService struct {
	repo        repository.GuestRepository
	cache       *cache.Client
	phoneRegion string
	logger      *slog.Logger
}

// NewContactService creates a new contact service. phoneRegion is the ISO region used
// for sender numbers written without an international prefix.
func NewContactService(repo repository.GuestRepository, cache *cache.Client, phoneRegion string, logger *slog.Logger) ContactService {
	if logger == nil {
		logger = slog.Default()
	}
	return &contactService{
		repo:        repo,
		cache:       cache,
		phoneRegion: strings.ToUpper(phoneRegion),
		logger:      logger,
	}
}

// GetContacts lists witnesses and admins whose household has registered an email.
func (s *contactService) GetContacts(ctx context.Context) ([]ContactView, error) {
	var cached []ContactView
	if s.cache.GetJSON(ctx, cache.ContactsKey, &cached) {
		return cached, nil
	}

	guests, err := s.repo.ListContacts(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "list contacts failed", "error", err)
		return nil, err
	}
	views := make([]ContactView, 0, len(guests))
	for _, g := range guests {
		views = append(views, ContactView{ID: g.ID, FirstName: g.FirstName, LastName: g.LastName})
	}
	s.cache.SetJSON(ctx, cache.ContactsKey, views, contactCacheTTL)
	return views, nil
}

// SendMessage resolves the receiver's address. Sender phone numbers are normalized to E.164.
func (s *contactService) SendMessage(ctx context.Context, msg Message) (*Delivery, error) {
	phone, err := s.normalizePhone(msg.SenderPhone)
	if err != nil {
		return nil, apperrors.ErrInvalidArgument
	}
	msg.SenderPhone = phone
	msg.SenderEmail = NormalizeEmail(msg.SenderEmail)

	guest, err := s.repo.FindContact(ctx, msg.ReceiverID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		s.logger.ErrorContext(ctx, "find contact failed", "receiver_id", msg.ReceiverID, "error", err)
		return nil, err
	}
	if !guest.HasAnyRole(model.ContactRoles...) || guest.User == nil || guest.User.Email == nil {
		return nil, apperrors.ErrNotFound
	}

	return &Delivery{
		To:        *guest.User.Email,
		Recipient: ContactView{ID: guest.ID, FirstName: guest.FirstName, LastName: guest.LastName},
		Message:   msg,
	}, nil
}

func (s *contactService) normalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	num, err := phonenumbers.Parse(raw, s.phoneRegion)
	if err != nil {
		return "", err
	}
	if !phonenumbers.IsPossibleNumber(num) {
		return "", phonenumbers.ErrNotANumber
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
