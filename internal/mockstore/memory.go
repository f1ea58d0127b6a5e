package mockstore

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/SAP-F-2025/trivia-browser/internal/models"
)

// MemoryStore keeps the catalog in process; used by tests and when no database is configured
type MemoryStore struct {
	mu             sync.RWMutex
	categories     map[int]models.Category
	questions      map[int]models.Question
	nextQuestionID int
	nextCategoryID int
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		categories:     make(map[int]models.Category),
		questions:      make(map[int]models.Question),
		nextQuestionID: 1,
		nextCategoryID: 1,
	}
}

func (s *MemoryStore) ListCategories(_ context.Context, page int) ([]models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]models.Category, 0, len(s.categories))
	for _, c := range s.categories {
		all = append(all, c)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })
	return paginate(all, page), nil
}

func (s *MemoryStore) GetCategory(_ context.Context, id int) (*models.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.categories[id]
	if !ok {
		return nil, ErrCategoryNotFound
	}
	return &c, nil
}

func (s *MemoryStore) ListQuestions(_ context.Context, page int) ([]models.Question, error) {
	return paginate(s.filter(func(models.Question) bool { return true }), page), nil
}

func (s *MemoryStore) ListQuestionsByCategory(_ context.Context, categoryID, page int) ([]models.Question, error) {
	return paginate(s.filter(func(q models.Question) bool { return q.Category == categoryID }), page), nil
}

func (s *MemoryStore) CategoryQuestions(_ context.Context, categoryID int) ([]models.Question, error) {
	return s.filter(func(q models.Question) bool { return q.Category == categoryID }), nil
}

func (s *MemoryStore) SearchQuestions(_ context.Context, term string, page int) ([]models.Question, error) {
	needle := strings.ToLower(term)
	return paginate(s.filter(func(q models.Question) bool {
		return strings.Contains(strings.ToLower(q.Question), needle)
	}), page), nil
}

func (s *MemoryStore) GetQuestion(_ context.Context, id int) (*models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.questions[id]
	if !ok {
		return nil, ErrQuestionNotFound
	}
	return &q, nil
}

// CreateQuestion assigns an id when q.ID is zero
func (s *MemoryStore) CreateQuestion(_ context.Context, q *models.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if q.ID == 0 {
		q.ID = s.nextQuestionID
	}
	if q.ID >= s.nextQuestionID {
		s.nextQuestionID = q.ID + 1
	}
	s.questions[q.ID] = *q
	return nil
}

func (s *MemoryStore) DeleteQuestion(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.questions[id]; !ok {
		return ErrQuestionNotFound
	}
	delete(s.questions, id)
	return nil
}

func (s *MemoryStore) CreateCategory(_ context.Context, c *models.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c.ID == 0 {
		c.ID = s.nextCategoryID
	}
	if c.ID >= s.nextCategoryID {
		s.nextCategoryID = c.ID + 1
	}
	s.categories[c.ID] = *c
	return nil
}

// filter returns matching questions ordered by id
func (s *MemoryStore) filter(keep func(models.Question) bool) []models.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Question, 0, len(s.questions))
	for _, q := range s.questions {
		if keep(q) {
			out = append(out, q)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
