package mockstore

import (
	"context"
	"errors"

	"github.com/SAP-F-2025/trivia-browser/internal/models"
)

// QuestionsPerPage is the slice size for every listing endpoint
const QuestionsPerPage = 10

var (
	ErrQuestionNotFound = errors.New("question not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// Store is the persistence behind the fake question store
type Store interface {
	ListCategories(ctx context.Context, page int) ([]models.Category, error)
	GetCategory(ctx context.Context, id int) (*models.Category, error)

	ListQuestions(ctx context.Context, page int) ([]models.Question, error)
	ListQuestionsByCategory(ctx context.Context, categoryID, page int) ([]models.Question, error)
	// CategoryQuestions returns every question in a category, unpaginated
	CategoryQuestions(ctx context.Context, categoryID int) ([]models.Question, error)
	// SearchQuestions matches term as a case-insensitive substring of the question text
	SearchQuestions(ctx context.Context, term string, page int) ([]models.Question, error)

	GetQuestion(ctx context.Context, id int) (*models.Question, error)
	CreateQuestion(ctx context.Context, q *models.Question) error
	DeleteQuestion(ctx context.Context, id int) error

	CreateCategory(ctx context.Context, c *models.Category) error
}

func offset(page int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * QuestionsPerPage
}

func paginate[T any](items []T, page int) []T {
	start := offset(page)
	if start >= len(items) {
		return []T{}
	}
	end := start + QuestionsPerPage
	if end > len(items) {
		end = len(items)
	}
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}
