package mockstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/trivia-browser/internal/models"
)

// PostgresStore serves the catalog from the questions/categories tables
type PostgresStore struct {
	db *gorm.DB
}

var _ Store = (*PostgresStore)(nil)

func NewPostgresStore(db *gorm.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the tables when they are missing
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&models.Category{}, &models.Question{}); err != nil {
		return fmt.Errorf("failed to migrate catalog tables: %w", err)
	}
	return nil
}

func (s *PostgresStore) ListCategories(ctx context.Context, page int) ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.WithContext(ctx).
		Order("id").
		Offset(offset(page)).
		Limit(QuestionsPerPage).
		Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *PostgresStore) GetCategory(ctx context.Context, id int) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &category, nil
}

func (s *PostgresStore) ListQuestions(ctx context.Context, page int) ([]models.Question, error) {
	return s.findQuestions(ctx, s.db, page)
}

func (s *PostgresStore) ListQuestionsByCategory(ctx context.Context, categoryID, page int) ([]models.Question, error) {
	return s.findQuestions(ctx, s.db.Where("category = ?", categoryID), page)
}

func (s *PostgresStore) CategoryQuestions(ctx context.Context, categoryID int) ([]models.Question, error) {
	var questions []models.Question
	if err := s.db.WithContext(ctx).
		Where("category = ?", categoryID).
		Order("id").
		Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to list category questions: %w", err)
	}
	return questions, nil
}

func (s *PostgresStore) SearchQuestions(ctx context.Context, term string, page int) ([]models.Question, error) {
	return s.findQuestions(ctx, s.db.Where(`question ILIKE ? ESCAPE '\'`, containsPattern(term)), page)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds an ILIKE pattern that matches term literally, as MemoryStore does
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(term) + "%"
}

func (s *PostgresStore) GetQuestion(ctx context.Context, id int) (*models.Question, error) {
	var question models.Question
	if err := s.db.WithContext(ctx).First(&question, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	return &question, nil
}

func (s *PostgresStore) CreateQuestion(ctx context.Context, q *models.Question) error {
	if err := s.db.WithContext(ctx).Create(q).Error; err != nil {
		return fmt.Errorf("failed to create question: %w", err)
	}
	return nil
}

func (s *PostgresStore) DeleteQuestion(ctx context.Context, id int) error {
	result := s.db.WithContext(ctx).Delete(&models.Question{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete question: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrQuestionNotFound
	}
	return nil
}

func (s *PostgresStore) CreateCategory(ctx context.Context, c *models.Category) error {
	if err := s.db.WithContext(ctx).Create(c).Error; err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

func (s *PostgresStore) findQuestions(ctx context.Context, query *gorm.DB, page int) ([]models.Question, error) {
	var questions []models.Question
	if err := query.WithContext(ctx).
		Order("id").
		Offset(offset(page)).
		Limit(QuestionsPerPage).
		Find(&questions).Error; err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}
