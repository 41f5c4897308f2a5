package provision

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gorm.io/gorm"

	"rsvp/internal/auth"
	"rsvp/internal/model"
	"rsvp/internal/repository"
)

// InvitedGuest is a guest as listed in the invitations file.
type InvitedGuest struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Roles     []string `json:"roles"`
}

// Invitation pairs a plaintext invitation token with the guests it admits.
type Invitation struct {
	Token  string         `json:"token"`
	Guests []InvitedGuest `json:"guests"`
	QRCode string         `json:"qr_code,omitempty"`
}

// Invitations maps invitation fingerprints to invitations.
type Invitations map[string]Invitation

// Provisioner creates one UNSEEN user per household together with its guests.
type Provisioner struct {
	db     *gorm.DB
	tokens *auth.TokenCodec
	qr     QRWriter
	link   func(token string) string
	logger *slog.Logger
}

// NewProvisioner creates a new provisioner. link builds the registration URL encoded in QR codes.
func NewProvisioner(db *gorm.DB, tokens *auth.TokenCodec, qr QRWriter, link func(token string) string, logger *slog.Logger) *Provisioner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Provisioner{db: db, tokens: tokens, qr: qr, link: link, logger: logger}
}

// Import stores all households in a single transaction and returns their invitations.
func (p *Provisioner) Import(ctx context.Context, households []Household) (Invitations, error) {
	invitations := make(Invitations, len(households))
	err := p.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		roles, err := repository.NewRoleRepository(tx).Ensure(ctx, model.RoleGuest, model.RoleWitness, model.RoleAdmin)
		if err != nil {
			return err
		}
		users := repository.NewUserRepository(tx)

		for _, h := range households {
			token, err := p.tokens.Generate()
			if err != nil {
				return fmt.Errorf("generate invitation token: %w", err)
			}
			fingerprint := p.tokens.Fingerprint(token)

			user := &model.User{InvitationFingerprint: fingerprint, Status: model.UserStatusUnseen}
			invitation := Invitation{Token: token, QRCode: QRFileName(h)}
			for _, g := range h.Guests {
				guest := model.Guest{FirstName: g.FirstName, LastName: g.LastName}
				labels := make([]string, 0, len(g.Roles))
				for _, r := range g.Roles {
					role, ok := roles[r]
					if !ok {
						return fmt.Errorf("household %s: unknown role %s", h.Group, r)
					}
					guest.Roles = append(guest.Roles, role)
					labels = append(labels, r.String())
				}
				user.Guests = append(user.Guests, guest)
				invitation.Guests = append(invitation.Guests, InvitedGuest{
					FirstName: g.FirstName,
					LastName:  g.LastName,
					Roles:     labels,
				})
			}

			if err := users.Create(ctx, user); err != nil {
				return fmt.Errorf("create household %s: %w", h.Group, err)
			}
			invitations[fingerprint] = invitation
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	p.logger.InfoContext(ctx, "households imported", "households", len(households))
	return invitations, nil
}

// WriteQRCodes renders one registration QR code per invitation into dir.
func (p *Provisioner) WriteQRCodes(invitations Invitations, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create qr dir: %w", err)
	}
	for _, inv := range invitations {
		if err := p.qr.Write(p.link(inv.Token), filepath.Join(dir, inv.QRCode)); err != nil {
			return err
		}
	}
	return nil
}

// WriteInvitations stores invitations as indented JSON at path.
func WriteInvitations(invitations Invitations, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create invitations dir: %w", err)
	}
	data, err := json.MarshalIndent(invitations, "", "  ")
	if err != nil {
		return fmt.Errorf("encode invitations: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write invitations: %w", err)
	}
	return nil
}
