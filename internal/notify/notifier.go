package notify

import (
	"context"
	"log/slog"
	"strings"
)

// Links builds the frontend URLs embedded in emails.
type Links interface {
	VerificationLink(token string) string
	PasswordResetLink(token string) string
	LoginLink() string
}

// ContactMessage is a relayed message addressed to a contact.
type ContactMessage struct {
	FirstName   string
	Subject     string
	Body        string
	SenderEmail string
	SenderPhone string
}

// Queue accepts emails for asynchronous delivery.
type Queue interface {
	Enqueue(email Email) bool
}

// Notifier renders the application's emails and hands them to a queue.
type Notifier struct {
	queue         Queue
	links         Links
	subjectPrefix string
	logger        *slog.Logger
}

// NewNotifier creates a new notifier.
func NewNotifier(queue Queue, links Links, subjectPrefix string, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{queue: queue, links: links, subjectPrefix: subjectPrefix, logger: logger}
}

func (n *Notifier) subject(s string) string {
	if n.subjectPrefix == "" {
		return s
	}
	return "[" + n.subjectPrefix + "] " + s
}

// NotifyVerification sends the email verification link.
func (n *Notifier) NotifyVerification(ctx context.Context, to, token string) {
	n.send(ctx, "verification", to, "", n.subject("Confirm your email address"),
		struct{ Link string }{n.links.VerificationLink(token)})
}

// NotifyPasswordReset sends the password reset link.
func (n *Notifier) NotifyPasswordReset(ctx context.Context, to, token string) {
	n.send(ctx, "password_reset", to, "", n.subject("Reset your password"),
		struct{ Link string }{n.links.PasswordResetLink(token)})
}

// NotifyContact relays a visitor's message. Replies go straight to the sender.
func (n *Notifier) NotifyContact(ctx context.Context, to string, msg ContactMessage) {
	subject := strings.TrimSpace(msg.Subject)
	if subject == "" {
		subject = "New message"
	}
	n.send(ctx, "contact", to, msg.SenderEmail, n.subject(subject), msg)
}

// NotifyReminder asks a household to answer the invitation. It reports whether the email was queued.
func (n *Notifier) NotifyReminder(ctx context.Context, to string, firstNames []string) bool {
	return n.send(ctx, "reminder", to, "", n.subject("Reminder: please answer your invitation"),
		struct{ Names, Link string }{joinNames(firstNames), n.links.LoginLink()})
}

func (n *Notifier) send(ctx context.Context, name, to, replyTo, subject string, data any) bool {
	text, html, err := render(name, data)
	if err != nil {
		n.logger.ErrorContext(ctx, "render email failed", "template", name, "error", err)
		return false
	}
	if !n.queue.Enqueue(Email{To: to, ReplyTo: replyTo, Subject: subject, Text: text, HTML: html}) {
		n.logger.WarnContext(ctx, "email not queued", "template", name)
		return false
	}
	return true
}

// joinNames renders "Anna", "Anna and Beat" or "Anna, Beat and Carl".
func joinNames(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	}
	return strings.Join(names[:len(names)-1], ", ") + " and " + names[len(names)-1]
}
