package server

import (
	"pawmatch/internal/matching"
	"pawmatch/internal/models"

	"github.com/gofiber/fiber/v2"
)

// MatchQuiz handles POST /api/matching/quiz
// @Summary Matching quiz
// @Description Derive an adopter personality from quiz answers and recommend up to three available pets
// @Tags matching
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body matching.QuizAnswers true "Quiz answers"
// @Success 200 {object} object{personality=string,matches=[]service.MatchResult}
// @Failure 400 {object} models.ErrorResponse
// @Router /matching/quiz [post]
func (s *Server) MatchQuiz(c *fiber.Ctx) error {
	var answers matching.QuizAnswers
	if err := c.BodyParser(&answers); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	personality, matches, err := s.petService.Match(c.Context(), answers)
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"personality": personality,
		"matches":     matches,
	})
}
