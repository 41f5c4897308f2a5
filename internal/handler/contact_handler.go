package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"rsvp/internal/notify"
	"rsvp/internal/service"
)

// ContactHandler serves the public contact directory and message relay.
type ContactHandler struct {
	contacts service.ContactService
	notifier Notifier
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contacts service.ContactService, notifier Notifier) *ContactHandler {
	return &ContactHandler{contacts: contacts, notifier: notifier}
}

// ContactListResponse lists reachable contacts.
type ContactListResponse struct {
	Contacts []service.ContactView `json:"contacts"`
}

// SendMessageRequest is a message addressed to a contact.
type SendMessageRequest struct {
	ReceiverID  uint   `json:"receiver_id" validate:"required"`
	Subject     string `json:"subject" validate:"max=200"`
	Message     string `json:"message" validate:"required,max=5000"`
	SenderEmail string `json:"sender_email" validate:"required,email"`
	SenderPhone string `json:"sender_phone" validate:"max=32"`
}

// GetContacts godoc
// @Summary List contactable witnesses and admins
// @Tags contacts
// @Produce json
// @Success 200 {object} ContactListResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /contact_info [get]
func (h *ContactHandler) GetContacts(c echo.Context) error {
	contacts, err := h.contacts.GetContacts(c.Request().Context())
	if err != nil {
		return httpError(c, err, "", false)
	}
	return c.JSON(http.StatusOK, ContactListResponse{Contacts: contacts})
}

// SendMessage godoc
// @Summary Relay a message to a contact
// @Description The receiver's email address is never disclosed.
// @Tags contacts
// @Accept json
// @Produce json
// @Param request body SendMessageRequest true "Message"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /send_message [post]
func (h *ContactHandler) SendMessage(c echo.Context) error {
	var req SendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	delivery, err := h.contacts.SendMessage(c.Request().Context(), service.Message{
		ReceiverID:  req.ReceiverID,
		Subject:     req.Subject,
		Body:        req.Message,
		SenderEmail: req.SenderEmail,
		SenderPhone: req.SenderPhone,
	})
	if err != nil {
		return httpError(c, err, "Unknown receiver", false)
	}

	h.notifier.NotifyContact(c.Request().Context(), delivery.To, notify.ContactMessage{
		FirstName:   delivery.Recipient.FirstName,
		Subject:     delivery.Message.Subject,
		Body:        delivery.Message.Body,
		SenderEmail: delivery.Message.SenderEmail,
		SenderPhone: delivery.Message.SenderPhone,
	})
	return c.JSON(http.StatusOK, MessageResponse{Message: "ok"})
}

// Ping godoc
// @Summary Liveness probe
// @Tags system
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /ping [get]
func Ping(c echo.Context) error {
	return c.JSON(http.StatusOK, MessageResponse{Message: "pong"})
}
