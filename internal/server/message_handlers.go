package server

import (
	"resonate/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SendMessage handles POST /api/messages
func (s *Server) SendMessage(c *fiber.Ctx) error {
	var req struct {
		RecipientID uint   `json:"recipient_id"`
		Text        string `json:"text"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.RecipientID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("recipient_id is required"))
	}

	msg, err := s.messageService.SendMessage(c.Context(), currentUserID(c), req.RecipientID, req.Text)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// GetThread handles GET /api/messages/:userId
func (s *Server) GetThread(c *fiber.Ctx) error {
	otherID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	msgs, err := s.messageService.GetThread(c.Context(), currentUserID(c), otherID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(msgs)
}

// GetRecentMessages handles GET /api/messages/recent, the newest inbound
// messages for the current user.
func (s *Server) GetRecentMessages(c *fiber.Ctx) error {
	p := parsePagination(c, 20)
	msgs, err := s.messageService.RecentInbound(c.Context(), currentUserID(c), p.Limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(msgs)
}
