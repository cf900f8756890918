package server

import (
	"promptstash/internal/models"
	"promptstash/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPrompts handles GET /api/prompts
// Query parameters: category, search, limit, offset.
func (s *Server) GetPrompts(c *fiber.Ctx) error {
	pagination := parsePagination(c, 20)
	viewerID, _ := s.optionalUserID(c)

	prompts, err := s.promptService.ListPublished(c.Context(), service.ListPromptsInput{
		Category:      c.Query("category"),
		Search:        c.Query("search"),
		Limit:         pagination.Limit,
		Offset:        pagination.Offset,
		CurrentUserID: viewerID,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(prompts)
}

// GetPrompt handles GET /api/prompts/:id
func (s *Server) GetPrompt(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	viewerID, _ := s.optionalUserID(c)

	prompt, svcErr := s.promptService.GetPrompt(c.Context(), id, viewerID)
	if svcErr != nil {
		return models.RespondWithError(c, models.StatusForError(svcErr), svcErr)
	}

	return c.JSON(prompt)
}

// GetCategoryCounts handles GET /api/prompts/categories
func (s *Server) GetCategoryCounts(c *fiber.Ctx) error {
	counts, err := s.promptService.CategoryCounts(c.Context())
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(counts)
}

// GetMyPrompts handles GET /api/prompts/me/list, returning the caller's
// prompts including drafts.
func (s *Server) GetMyPrompts(c *fiber.Ctx) error {
	pagination := parsePagination(c, 20)
	userID := currentUserID(c)

	prompts, err := s.promptService.ListOwn(c.Context(), userID, pagination.Limit, pagination.Offset)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.JSON(prompts)
}

// CreatePrompt handles POST /api/prompts
func (s *Server) CreatePrompt(c *fiber.Ctx) error {
	var req struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Content     string   `json:"content"`
		Category    string   `json:"category"`
		Tags        []string `json:"tags"`
		Published   bool     `json:"published"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	prompt, err := s.promptService.CreatePrompt(c.Context(), service.CreatePromptInput{
		AuthorID:    currentUserID(c),
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Category:    req.Category,
		Tags:        req.Tags,
		Published:   req.Published,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}

	return c.Status(fiber.StatusCreated).JSON(prompt)
}

// UpdatePrompt handles PUT /api/prompts/:id
func (s *Server) UpdatePrompt(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Content     string   `json:"content"`
		Category    string   `json:"category"`
		Tags        []string `json:"tags"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	prompt, svcErr := s.promptService.UpdatePrompt(c.Context(), service.UpdatePromptInput{
		UserID:      currentUserID(c),
		PromptID:    id,
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Category:    req.Category,
		Tags:        req.Tags,
	})
	if svcErr != nil {
		return models.RespondWithError(c, models.StatusForError(svcErr), svcErr)
	}

	return c.JSON(prompt)
}

// DeletePrompt handles DELETE /api/prompts/:id
func (s *Server) DeletePrompt(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if svcErr := s.promptService.DeletePrompt(c.Context(), currentUserID(c), id); svcErr != nil {
		return models.RespondWithError(c, models.StatusForError(svcErr), svcErr)
	}

	return c.JSON(fiber.Map{"message": "Prompt deleted"})
}

// TogglePublished handles POST /api/prompts/:id/publish
func (s *Server) TogglePublished(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	prompt, svcErr := s.promptService.TogglePublished(c.Context(), currentUserID(c), id)
	if svcErr != nil {
		return models.RespondWithError(c, models.StatusForError(svcErr), svcErr)
	}

	return c.JSON(prompt)
}
