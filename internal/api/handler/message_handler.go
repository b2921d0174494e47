package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/AYUSHMAAN1812/chatify/internal/api/metrics"
	"github.com/AYUSHMAAN1812/chatify/internal/core/domain"
	"github.com/AYUSHMAAN1812/chatify/internal/core/ports"
)

// MessageHandler handles message sending, history, and contact listings.
type MessageHandler struct {
	service ports.MessageService
}

func NewMessageHandler(service ports.MessageService) *MessageHandler {
	return &MessageHandler{service: service}
}

type sendMessageRequest struct {
	Text  string `json:"text"`
	Image string `json:"image"`
}

// Contacts lists every other registered user.
//
// @Summary      List contacts
// @Tags         messages
// @Produce      json
// @Success      200  {array}   ports.Contact
// @Failure      401  {object}  map[string]string
// @Router       /api/messages/contacts [get]
func (h *MessageHandler) Contacts(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	contacts, err := h.service.Contacts(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, contacts)
}

// ChatPartners lists the users the caller has a conversation with.
//
// @Summary      List chat partners
// @Tags         messages
// @Produce      json
// @Success      200  {array}   domain.User
// @Failure      401  {object}  map[string]string
// @Router       /api/messages/chats [get]
func (h *MessageHandler) ChatPartners(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	partners, err := h.service.ChatPartners(c.Request().Context(), user.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, partners)
}

// Conversation returns the message history with one partner.
//
// @Summary      Get conversation history
// @Tags         messages
// @Produce      json
// @Param        id   path      string  true  "Partner user id"
// @Success      200  {array}   domain.Message
// @Failure      401  {object}  map[string]string
// @Router       /api/messages/{id} [get]
func (h *MessageHandler) Conversation(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	messages, err := h.service.Conversation(c.Request().Context(), user.ID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messages)
}

// Send creates a new message for the receiver in the path.
//
// @Summary      Send a message
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        id    path      string              true  "Receiver user id"
// @Param        body  body      sendMessageRequest  true  "Message content"
// @Success      201   {object}  domain.Message
// @Failure      400   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /api/messages/send/{id} [post]
func (h *MessageHandler) Send(c echo.Context) error {
	user, err := ctxUser(c)
	if err != nil {
		return err
	}

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	msg, err := h.service.SendMessage(c.Request().Context(), ports.SendMessageInput{
		SenderID:   user.ID,
		ReceiverID: c.Param("id"),
		Text:       req.Text,
		Image:      req.Image,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyMessage),
			errors.Is(err, domain.ErrMessageTooLong),
			errors.Is(err, domain.ErrSelfMessage):
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrReceiverNotFound):
			return echo.NewHTTPError(http.StatusNotFound, err.Error())
		default:
			return err
		}
	}

	metrics.MessagesCreatedTotal.WithLabelValues(messageKind(msg)).Inc()
	return c.JSON(http.StatusCreated, msg)
}

func messageKind(msg *domain.Message) string {
	switch {
	case msg.Text != "" && msg.Image != "":
		return "text_image"
	case msg.Image != "":
		return "image"
	default:
		return "text"
	}
}
