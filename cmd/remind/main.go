// Command remind sends one reminder email per address listed in the reminder CSV.
//
// Usage: remind [path]. The path defaults to REMINDER_LIST_PATH.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"rsvp/internal/config"
	"rsvp/internal/notify"
	"rsvp/internal/provision"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	if err := run(context.Background(), os.Args[1:], logger); err != nil {
		logger.Error("sending reminders failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, logger *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	path := cfg.ReminderListPath
	if len(args) > 0 {
		path = args[0]
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open reminder list: %w", err)
	}
	defer f.Close()

	groups, err := provision.ParseReminderList(f)
	if err != nil {
		return fmt.Errorf("parse reminder list: %w", err)
	}

	mailer := notify.NewSMTPMailer(notify.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		From:     cfg.MailFrom,
		Timeout:  cfg.MailSendTimeout(),
	})
	// every reminder must fit in the queue
	dispatcher := notify.NewDispatcher(mailer, cfg.MailWorkers, max(cfg.MailQueueSize, len(groups)), cfg.MailSendTimeout(), logger)
	dispatcher.Start(ctx)
	notifier := notify.NewNotifier(dispatcher, cfg, cfg.MailSubjectPrefix, logger)

	sent := provision.SendReminders(ctx, notifier, groups)
	dispatcher.Stop()

	logger.Info("reminders sent", "path", path, "addresses", len(groups), "queued", sent)
	return nil
}
