package server

import (
	"resonate/internal/models"

	"github.com/gofiber/fiber/v2"
)

// SendPoke handles POST /api/auth/users/:id/poke
func (s *Server) SendPoke(c *fiber.Ctx) error {
	targetID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Song models.Track `json:"song"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	poke, err := s.pokeService.SendPoke(c.Context(), currentUserID(c), targetID, req.Song)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(poke)
}

// GetPokeNotifications handles GET /api/auth/notifications/pokes
func (s *Server) GetPokeNotifications(c *fiber.Ctx) error {
	notifications, err := s.pokeService.ListNotifications(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(notifications)
}

// GetPokeReplies handles GET /api/auth/notifications/replies
func (s *Server) GetPokeReplies(c *fiber.Ctx) error {
	replies, err := s.pokeService.ListReplies(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(replies)
}
