package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetStats handles GET /api/admin/stats
// @Summary Platform statistics
// @Description Aggregate counts and recent activity for the admin dashboard
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.PlatformStats
// @Failure 403 {object} models.ErrorResponse
// @Router /admin/stats [get]
func (s *Server) GetStats(c *fiber.Ctx) error {
	stats, err := s.userService.Stats(c.Context(), s.actor(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(stats)
}
