// Package directory holds the category id → label lookup that is loaded once per session.
package directory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SAP-F-2025/trivia-browser/internal/cache"
	"github.com/SAP-F-2025/trivia-browser/internal/models"
)

const cacheKey = "all"

// Directory is an immutable id → label mapping. The zero value is an empty directory.
type Directory struct {
	labels map[int]string
	ids    []int
}

// New builds a directory; when ids repeat the last label wins
func New(categories []models.Category) Directory {
	labels := make(map[int]string, len(categories))
	for _, c := range categories {
		labels[c.ID] = c.Type
	}
	ids := make([]int, 0, len(labels))
	for id := range labels {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return Directory{labels: labels, ids: ids}
}

// Label returns the display name for id
func (d Directory) Label(id int) (string, bool) {
	label, ok := d.labels[id]
	return label, ok
}

// IconKey returns the icon asset name for id, or "" for unknown ids
func (d Directory) IconKey(id int) string {
	label, ok := d.labels[id]
	if !ok {
		return ""
	}
	return models.IconKey(label)
}

// IDs returns the known ids in ascending order
func (d Directory) IDs() []int {
	out := make([]int, len(d.ids))
	copy(out, d.ids)
	return out
}

func (d Directory) Len() int {
	return len(d.ids)
}

// Entries returns the categories in id order
func (d Directory) Entries() []models.Category {
	out := make([]models.Category, 0, len(d.ids))
	for _, id := range d.ids {
		out = append(out, models.Category{ID: id, Type: d.labels[id]})
	}
	return out
}

// Source is where categories come from
type Source interface {
	ListCategories(ctx context.Context) ([]models.Category, error)
}

// Loader fetches the directory, reading through the cache when one is configured
type Loader struct {
	source Source
	cache  *cache.CacheHelper
	ttl    time.Duration
	logger *slog.Logger
}

func NewLoader(source Source, cacheHelper *cache.CacheHelper, ttl time.Duration, logger *slog.Logger) *Loader {
	if cacheHelper == nil {
		cacheHelper = cache.NewCacheHelper(nil, "")
	}
	if ttl <= 0 {
		ttl = cache.CategoryCacheConfig.TTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		source: source,
		cache:  cacheHelper,
		ttl:    ttl,
		logger: logger,
	}
}

// Load returns the category directory; on error the returned directory is empty
func (l *Loader) Load(ctx context.Context) (Directory, error) {
	var categories []models.Category
	err := l.cache.CacheOrExecute(ctx, cacheKey, &categories, l.ttl, func(ctx context.Context) (interface{}, error) {
		return l.source.ListCategories(ctx)
	})
	if err != nil {
		return Directory{}, fmt.Errorf("failed to load categories: %w", err)
	}

	l.logger.InfoContext(ctx, "Category directory loaded", "categories", len(categories), "cached", l.cache.Enabled())
	return New(categories), nil
}
