package server

import (
	"promptstash/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CastVote handles POST /api/prompts/:id/vote. The same endpoint covers all
// three transitions: first vote, toggle-off, and switch.
func (s *Server) CastVote(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		VoteType string `json:"vote_type"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	prompt, svcErr := s.voteService.Cast(c.Context(), currentUserID(c), id, req.VoteType)
	if svcErr != nil {
		return models.RespondWithError(c, models.StatusForError(svcErr), svcErr)
	}

	return c.JSON(prompt)
}
