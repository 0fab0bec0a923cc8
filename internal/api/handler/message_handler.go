package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sentinelforce/agency-api/internal/core/ports"
)

// MessageHandler handles HTTP requests for contact messages.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

// --- Request types ---

type createMessageRequest struct {
	Name      string `json:"name"      validate:"required"`
	Email     string `json:"email"     validate:"required,contactemail"`
	Phone     string `json:"phone"`
	Message   string `json:"message"   validate:"required"`
	UserID    string `json:"userId"`
	UserEmail string `json:"userEmail"`
}

type updateMessageRequest struct {
	Email  string  `json:"email"`
	Status *string `json:"status"`
	IsRead *bool   `json:"isRead"`
}

type userMessagesRequest struct {
	UserEmail string `param:"userEmail" validate:"contactemail"`
}

// Create handles POST /users-message.
//
// @Summary      Submit a contact message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        body  body      createMessageRequest  true  "Contact form"
// @Success      201   {object}  envelope{data=domain.Message}
// @Failure      400   {object}  ErrorEnvelope
// @Failure      429   {object}  ErrorEnvelope
// @Failure      500   {object}  ErrorEnvelope
// @Router       /users-message [post]
func (h *MessageHandler) Create(c echo.Context) error {
	var req createMessageRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	msg, err := h.service.Create(c.Request().Context(), ports.CreateMessageInput{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
		UserID:    req.UserID,
		UserEmail: req.UserEmail,
	})
	if err != nil {
		return err
	}
	return okWithMessage(c, http.StatusCreated, "message sent successfully", msg)
}

// List handles GET /all-users-messages?email=.
//
// @Summary      List every contact message, newest first
// @Tags         messages
// @Produce      json
// @Param        email  query     string  true  "Email of the requesting admin"
// @Success      200    {object}  envelope{data=[]domain.Message}
// @Failure      400    {object}  ErrorEnvelope
// @Failure      403    {object}  ErrorEnvelope
// @Router       /all-users-messages [get]
func (h *MessageHandler) List(c echo.Context) error {
	msgs, err := h.service.List(c.Request().Context(), c.QueryParam("email"))
	if err != nil {
		return err
	}
	return okList(c, len(msgs), msgs)
}

// Update handles PATCH /users-messages/:id.
//
// @Summary      Change a message's status or read flag
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        id    path      string                true  "Message id"
// @Param        body  body      updateMessageRequest  true  "Admin email and fields to change"
// @Success      200   {object}  envelope{data=domain.Message}
// @Failure      400   {object}  ErrorEnvelope
// @Failure      403   {object}  ErrorEnvelope
// @Failure      404   {object}  ErrorEnvelope
// @Router       /users-messages/{id} [patch]
func (h *MessageHandler) Update(c echo.Context) error {
	var req updateMessageRequest
	if err := c.Bind(&req); err != nil {
		return invalidPayload()
	}

	msg, err := h.service.Update(c.Request().Context(), ports.UpdateMessageInput{
		ID:          c.Param("id"),
		CallerEmail: req.Email,
		Status:      req.Status,
		IsRead:      req.IsRead,
	})
	if err != nil {
		return err
	}
	return okWithMessage(c, http.StatusOK, "message updated successfully", msg)
}

// ListByUser handles GET /users-messages/:userEmail.
//
// @Summary      List a user's messages, newest first
// @Tags         messages
// @Produce      json
// @Param        userEmail  path      string  true  "Submitter email"
// @Success      200        {object}  envelope{data=[]domain.Message}
// @Failure      400        {object}  ErrorEnvelope
// @Router       /users-messages/{userEmail} [get]
func (h *MessageHandler) ListByUser(c echo.Context) error {
	email, err := pathParam(c, "userEmail")
	if err != nil {
		return err
	}

	req := userMessagesRequest{UserEmail: email}
	if err := c.Validate(&req); err != nil {
		return err
	}

	msgs, err := h.service.ListByUser(c.Request().Context(), req.UserEmail)
	if err != nil {
		return err
	}
	return okList(c, len(msgs), msgs)
}
