package server

import (
	"promptstash/internal/models"
	"promptstash/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/profiles/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	profile, err := s.profileService.GetProfile(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(profile)
}

// UpdateMyProfile handles PUT /api/profiles/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	profile, err := s.profileService.UpdateProfile(c.Context(), service.UpdateProfileInput{
		UserID: currentUserID(c),
		Name:   req.Name,
	})
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(profile)
}

// GetProfile handles GET /api/profiles/:id
func (s *Server) GetProfile(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	profile, svcErr := s.profileService.GetProfile(c.Context(), id)
	if svcErr != nil {
		return models.RespondWithError(c, models.StatusForError(svcErr), svcErr)
	}
	return c.JSON(profile)
}

// GetAllProfiles handles GET /api/profiles (admin only)
func (s *Server) GetAllProfiles(c *fiber.Ctx) error {
	pagination := parsePagination(c, 50)

	profiles, err := s.profileService.ListProfiles(c.Context(), pagination.Limit, pagination.Offset)
	if err != nil {
		return models.RespondWithError(c, models.StatusForError(err), err)
	}
	return c.JSON(profiles)
}

// PromoteToAdmin handles POST /api/profiles/:id/promote-admin (admin only)
func (s *Server) PromoteToAdmin(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	profile, svcErr := s.profileService.SetRole(c.Context(), id, models.RoleAdmin)
	if svcErr != nil {
		return models.RespondWithError(c, models.StatusForError(svcErr), svcErr)
	}
	return c.JSON(profile)
}

// DemoteFromAdmin handles POST /api/profiles/:id/demote-admin (admin only)
func (s *Server) DemoteFromAdmin(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	// Admins cannot demote themselves; that would risk locking everyone out.
	if id == currentUserID(c) {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("You cannot demote yourself"))
	}

	profile, svcErr := s.profileService.SetRole(c.Context(), id, models.RoleUser)
	if svcErr != nil {
		return models.RespondWithError(c, models.StatusForError(svcErr), svcErr)
	}
	return c.JSON(profile)
}
