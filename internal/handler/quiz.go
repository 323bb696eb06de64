package handler

import (
	"wiki-quiz/internal/domain"
	"wiki-quiz/internal/dto"
	"wiki-quiz/internal/logger"
	"wiki-quiz/internal/middleware"
	"wiki-quiz/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const healthMessage = "AI Quiz Generator Backend is Running!"

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// RegisterRoutes mounts the quiz endpoints on r.
func RegisterRoutes(r fiber.Router, h *QuizHandler, vm *middleware.ValidationMiddleware) {
	r.Get("/", h.Health)
	r.Post("/generate_quiz", vm.ValidateArticleURL(), h.GenerateQuiz)
	r.Get("/history", h.GetHistory)
	r.Get("/quiz/:id", vm.ValidateQuizID(), h.GetQuiz)
}

// Health godoc
// @Summary Health check
// @Description Reports that the service is up
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router / [get]
func (h *QuizHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Message: healthMessage})
}

// GenerateQuiz godoc
// @Summary Generate a quiz from a Wikipedia article
// @Description Scrapes the article, asks the model for a quiz and stores the result before returning it with its id
// @Tags quiz
// @Accept json
// @Produce json
// @Param url query string false "Wikipedia article URL"
// @Param request body dto.GenerateQuizRequest false "Article URL, when not sent as a query parameter"
// @Success 200 {object} domain.QuizDocument
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /generate_quiz [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	rawURL, ok := c.Locals(middleware.ValidatedURLKey).(string)
	if !ok {
		return domain.NewInternalError("validated url missing from request context", nil)
	}

	quiz, err := h.service.GenerateQuiz(c.UserContext(), rawURL)
	if err != nil {
		return err
	}

	logger.Get().Debug("Quiz returned",
		zap.String("request_id", middleware.RequestIDFrom(c)),
		zap.Int64("quiz_id", *quiz.ID))
	return c.JSON(quiz)
}

// GetHistory godoc
// @Summary List generated quizzes
// @Description Lists every stored quiz, newest first
// @Tags quiz
// @Produce json
// @Success 200 {array} dto.HistoryItemResponse
// @Failure 500 {object} middleware.ErrorResponse
// @Router /history [get]
func (h *QuizHandler) GetHistory(c *fiber.Ctx) error {
	history, err := h.service.ListHistory(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(history)
}

// GetQuiz godoc
// @Summary Get a stored quiz
// @Description Returns a stored quiz with the document as it was persisted
// @Tags quiz
// @Produce json
// @Param id path int true "Quiz ID"
// @Success 200 {object} dto.QuizDetailResponse
// @Failure 400 {object} middleware.ValidationErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /quiz/{id} [get]
func (h *QuizHandler) GetQuiz(c *fiber.Ctx) error {
	id, ok := c.Locals(middleware.ValidatedQuizIDKey).(int64)
	if !ok {
		return domain.NewInternalError("validated quiz id missing from request context", nil)
	}

	quiz, err := h.service.GetQuiz(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(quiz)
}
