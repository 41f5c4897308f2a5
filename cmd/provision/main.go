// Command provision imports the guest list, then writes the invitations file and
// one registration QR code per household.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"rsvp/internal/auth"
	"rsvp/internal/config"
	"rsvp/internal/db"
	"rsvp/internal/provision"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := run(context.Background(), logger); err != nil {
		logger.Error("provisioning failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	gormDB, err := db.Open(cfg)
	if err != nil {
		return err
	}
	if cfg.ResetDB {
		logger.Warn("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			return err
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		return err
	}

	f, err := os.Open(cfg.GuestListPath)
	if err != nil {
		return fmt.Errorf("open guest list: %w", err)
	}
	defer f.Close()

	logger.Info("loading guest list", "path", cfg.GuestListPath)
	households, err := provision.ParseGuestList(f)
	if err != nil {
		return fmt.Errorf("parse guest list: %w", err)
	}

	tokens := auth.NewTokenCodec(cfg.InvitationTokenSize, cfg.TokenFingerprintKey)
	p := provision.NewProvisioner(gormDB, tokens, provision.PNGWriter{Size: provision.DefaultQRSize}, cfg.RegistrationLink, logger)

	invitations, err := p.Import(ctx, households)
	if err != nil {
		return err
	}
	if err := provision.WriteInvitations(invitations, cfg.InvitationOutput); err != nil {
		return err
	}
	if err := p.WriteQRCodes(invitations, cfg.QRCodeOutputDir); err != nil {
		return err
	}

	logger.Info("provisioning complete",
		"households", len(households),
		"invitations", cfg.InvitationOutput,
		"qr_codes", cfg.QRCodeOutputDir,
	)
	return nil
}
