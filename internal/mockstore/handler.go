package mockstore

import (
	"errors"
	"fmt"
	"math/rand"
	"net/http"
	"slices"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/trivia-browser/internal/models"
	"github.com/SAP-F-2025/trivia-browser/internal/utils"
	"github.com/SAP-F-2025/trivia-browser/internal/validator"
)

const (
	msgMethodNotAllowed = "You cannot use this endpoint to perform a %s request."
	msgUnprocessable    = "Make sure that %s are not null."
	msgNotFound         = "The requested resource was not found."
)

// QuestionHandler serves the question store endpoints
type QuestionHandler struct {
	store     Store
	validator *validator.Validator
	logger    utils.Logger

	// pick chooses an index in [0, n) for the quiz endpoint
	pick func(n int) int
}

func NewQuestionHandler(store Store, v *validator.Validator, logger utils.Logger) *QuestionHandler {
	return &QuestionHandler{
		store:     store,
		validator: v,
		logger:    logger,
		pick:      rand.Intn,
	}
}

// ListCategories GET /categories
func (h *QuestionHandler) ListCategories(c *gin.Context) {
	categories, err := h.store.ListCategories(c.Request.Context(), pageParam(c))
	if err != nil {
		h.handleStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetCategory GET /categories/:id
func (h *QuestionHandler) GetCategory(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	category, err := h.store.GetCategory(c.Request.Context(), id)
	if err != nil {
		h.handleStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

// ListQuestionsByCategory GET /categories/:id/questions
func (h *QuestionHandler) ListQuestionsByCategory(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	questions, err := h.store.ListQuestionsByCategory(c.Request.Context(), id, pageParam(c))
	if err != nil {
		h.handleStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// ListQuestions GET /questions?page=N
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	questions, err := h.store.ListQuestions(c.Request.Context(), pageParam(c))
	if err != nil {
		h.handleStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

// CreateQuestion POST /questions
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	var req models.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if err := h.validator.Struct(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			h.logger.Warn("Rejected question payload", "error", verrs.Error())
		}
		abortWithError(c, http.StatusUnprocessableEntity, "payload is unprocessable.")
		return
	}

	question := &models.Question{
		Question:   *req.Question,
		Answer:     *req.Answer,
		Category:   *req.Category,
		Difficulty: *req.Difficulty,
	}
	if err := h.store.CreateQuestion(c.Request.Context(), question); err != nil {
		h.handleStoreError(c, err)
		return
	}

	utils.GetLogger(c, h.logger).Info("Question created", "question_id", question.ID)
	c.JSON(http.StatusCreated, question)
}

// GetQuestion GET /questions/:id
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	question, err := h.store.GetQuestion(c.Request.Context(), id)
	if err != nil {
		h.handleStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// DeleteQuestion DELETE /questions/:id
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}
	if err := h.store.DeleteQuestion(c.Request.Context(), id); err != nil {
		h.handleStoreError(c, err)
		return
	}

	utils.GetLogger(c, h.logger).Info("Question deleted", "question_id", id)
	c.Status(http.StatusNoContent)
}

// NextQuizQuestion POST /questions/quizzes returns a random question of the category
// that is not among previous_questions, or {} once the category is exhausted
func (h *QuestionHandler) NextQuizQuestion(c *gin.Context) {
	var req models.QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil || h.validator.Struct(&req) != nil {
		abortWithError(c, http.StatusUnprocessableEntity, fmt.Sprintf(msgUnprocessable, "quiz_category and previous_questions"))
		return
	}

	candidates, err := h.store.CategoryQuestions(c.Request.Context(), *req.QuizCategory)
	if err != nil {
		h.handleStoreError(c, err)
		return
	}
	if len(candidates) == 0 {
		abortWithError(c, http.StatusNotFound, fmt.Sprintf("Could not find any category with id=%d.", *req.QuizCategory))
		return
	}

	remaining := slices.DeleteFunc(candidates, func(q models.Question) bool {
		return slices.Contains(req.PreviousQuestions, q.ID)
	})
	if len(remaining) == 0 {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, remaining[h.pick(len(remaining))])
}

// SearchQuestions POST /questions/search-term
func (h *QuestionHandler) SearchQuestions(c *gin.Context) {
	var req models.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.SearchTerm == nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf(msgUnprocessable, "search_term"))
		return
	}

	utils.GetLogger(c, h.logger).Debug("Searching questions", "search_term", *req.SearchTerm)

	questions, err := h.store.SearchQuestions(c.Request.Context(), *req.SearchTerm, pageParam(c))
	if err != nil {
		h.handleStoreError(c, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

func (h *QuestionHandler) handleStoreError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrQuestionNotFound), errors.Is(err, ErrCategoryNotFound):
		abortWithError(c, http.StatusNotFound, msgNotFound)
	default:
		utils.GetLogger(c, h.logger).Error("Store operation failed", "error", err)
		abortWithError(c, http.StatusInternalServerError, "Internal Server Error")
	}
}

func (h *QuestionHandler) parseIDParam(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		abortWithError(c, http.StatusNotFound, msgNotFound)
		return 0, false
	}
	return id, true
}

// pageParam mirrors request.args.get("page", 1, type=int): bad input falls back to 1
func pageParam(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Status:  status,
		Success: false,
		Message: message,
	})
}
