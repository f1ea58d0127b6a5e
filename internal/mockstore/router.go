package mockstore

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/SAP-F-2025/trivia-browser/internal/utils"
	"github.com/SAP-F-2025/trivia-browser/internal/validator"
)

// NewRouter builds the gin engine serving /api/v1
func NewRouter(store Store, v *validator.Validator, logger utils.Logger) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true

	SetupMiddleware(router, logger)

	h := NewQuestionHandler(store, v, logger)

	v1 := router.Group("/api/v1")
	{
		categories := v1.Group("/categories")
		{
			categories.GET("", h.ListCategories)
			categories.GET("/:id", h.GetCategory)
			categories.GET("/:id/questions", h.ListQuestionsByCategory)
		}

		questions := v1.Group("/questions")
		{
			questions.GET("", h.ListQuestions)
			questions.POST("", h.CreateQuestion)
			questions.POST("/search-term", h.SearchQuestions)
			questions.POST("/quizzes", h.NextQuizQuestion)
			questions.GET("/:id", h.GetQuestion)
			questions.DELETE("/:id", h.DeleteQuestion)
		}
	}

	router.NoRoute(func(c *gin.Context) {
		abortWithError(c, http.StatusNotFound, msgNotFound)
	})
	router.NoMethod(func(c *gin.Context) {
		abortWithError(c, http.StatusMethodNotAllowed, fmt.Sprintf(msgMethodNotAllowed, c.Request.Method))
	})

	return router
}

// SetupMiddleware sets up common middleware for the Gin router
func SetupMiddleware(router *gin.Engine, logger utils.Logger) {
	router.Use(RequestIDMiddleware())
	router.Use(CORSMiddleware())
	router.Use(gin.Recovery())
	router.Use(utils.ContextLogger(logger))
	router.Use(utils.LoggerMiddleware(logger))
}

// RequestIDMiddleware echoes X-Request-ID, generating one when absent
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header("X-Request-ID", requestID)
		c.Set("request_id", requestID)
		c.Next()
	}
}

// CORSMiddleware allows the browser client on any origin
func CORSMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET,POST,DELETE")
		c.Header("Access-Control-Allow-Headers", "Content-Type,Authorization,X-Request-ID")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
