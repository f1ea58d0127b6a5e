package browser

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/SAP-F-2025/trivia-browser/internal/directory"
	"github.com/SAP-F-2025/trivia-browser/internal/models"
	"github.com/SAP-F-2025/trivia-browser/internal/triviaapi"
)

// Controller runs the fetch and mutation orchestration for one browsing session.
// Its methods are safe to call from several goroutines; the last issued retrieval wins.
type Controller struct {
	store      QuestionStore
	categories CategoryLoader
	notifier   Notifier
	logger     *slog.Logger

	mu       sync.Mutex
	state    ViewState
	pending  uint64
	seq      uint64
	inflight *Query

	dirOnce sync.Once
	dir     directory.Directory
}

func NewController(store QuestionStore, categories CategoryLoader, notifier Notifier, logger *slog.Logger) *Controller {
	if notifier == nil {
		notifier = NotifierFunc(func(context.Context, Notice) {})
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		store:      store,
		categories: categories,
		notifier:   notifier,
		logger:     logger,
		state:      InitialState(),
	}
}

// Init loads the category directory and the first page concurrently. Neither
// failure blocks the other; both end in a notice.
func (c *Controller) Init(ctx context.Context) ViewState {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.LoadCategories(ctx)
	}()

	state := c.LoadPage(ctx, 1)
	wg.Wait()
	return state
}

// LoadCategories loads the category directory on first use and returns it. It never
// touches the question list, so callers may run it alongside a page load.
func (c *Controller) LoadCategories(ctx context.Context) directory.Directory {
	c.loadCategories(ctx)
	return c.Categories()
}

// Categories returns the loaded directory; it is empty until then or on failure
func (c *Controller) Categories() directory.Directory {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dir
}

// Snapshot returns a copy of the current view
func (c *Controller) Snapshot() ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// LoadPage lists the page-th slice of the whole catalog
func (c *Controller) LoadPage(ctx context.Context, page int) ViewState {
	if page < 1 {
		page = 1
	}
	return c.run(ctx, Query{Mode: ModeAll, Page: page})
}

// LoadByCategory lists every question in a category
func (c *Controller) LoadByCategory(ctx context.Context, categoryID int) ViewState {
	return c.run(ctx, Query{Mode: ModeByCategory, Page: 1, CategoryID: categoryID})
}

// Search lists questions whose text contains term; matching happens in the store
func (c *Controller) Search(ctx context.Context, term string) ViewState {
	return c.run(ctx, Query{Mode: ModeBySearch, Page: 1, SearchTerm: term})
}

// RefreshActive re-issues the retrieval that produced the displayed list, or the
// one still in flight, so a pending category or search request is not replaced
// by a refresh of the previous mode.
func (c *Controller) RefreshActive(ctx context.Context) ViewState {
	return c.run(ctx, c.activeQuery())
}

func (c *Controller) activeQuery() Query {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight != nil {
		q := *c.inflight
		q.Seq, q.RequestID = 0, ""
		return q
	}
	return c.state.ActiveQuery()
}

// SelectPage switches page while listing all questions
func (c *Controller) SelectPage(ctx context.Context, page int) (ViewState, error) {
	if snap := c.Snapshot(); snap.Mode != ModeAll {
		return snap, ErrPaginationUnavailable
	}
	return c.LoadPage(ctx, page), nil
}

// RevealAnswer toggles the answer of a displayed question
func (c *Controller) RevealAnswer(id int) ViewState {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = RevealAnswer(c.state, id)
	return c.state.Clone()
}

// DeleteQuestion asks confirm, deletes the question and refreshes the active list.
// The returned bool reports whether the store accepted the delete. The list is never
// edited locally: on failure it stays as it was.
func (c *Controller) DeleteQuestion(ctx context.Context, id int, confirm Confirmer) (ViewState, bool) {
	if confirm == nil || !confirm.Confirm(ctx, DeletePrompt) {
		c.logger.DebugContext(ctx, "Question delete declined", "question_id", id)
		return c.Snapshot(), false
	}

	requestID := uuid.New().String()
	if err := c.store.DeleteQuestion(triviaapi.WithRequestID(ctx, requestID), id); err != nil {
		c.logger.ErrorContext(ctx, "Failed to delete question",
			"question_id", id,
			"request_id", requestID,
			"error", err)
		c.notifier.Notify(ctx, Notice{Kind: NoticeDeleteFailed, Message: FailureMessage})
		return c.Snapshot(), false
	}

	c.logger.InfoContext(ctx, "Question deleted", "question_id", id, "request_id", requestID)
	return c.RefreshActive(ctx), true
}

func (c *Controller) loadCategories(ctx context.Context) {
	c.dirOnce.Do(func() {
		if c.categories == nil {
			return
		}
		dir, err := c.categories.Load(ctx)
		if err != nil {
			c.logger.ErrorContext(ctx, "Failed to load categories", "error", err)
			c.notifier.Notify(ctx, Notice{Kind: NoticeCategoriesFailed, Message: FailureMessage})
			return
		}
		c.mu.Lock()
		c.dir = dir
		c.mu.Unlock()
	})
}

func (c *Controller) run(ctx context.Context, q Query) ViewState {
	q = c.issue(q)
	questions, err := c.fetch(triviaapi.WithRequestID(ctx, q.RequestID), q)
	return c.complete(ctx, Result{Query: q, Questions: questions, Err: err})
}

// issue tags q and makes it the only retrieval whose result will be applied
func (c *Controller) issue(q Query) Query {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	q.Seq = c.seq
	q.RequestID = uuid.New().String()
	c.pending = q.Seq
	inflight := q
	c.inflight = &inflight
	c.state = Begin(c.state)
	return q
}

func (c *Controller) fetch(ctx context.Context, q Query) ([]models.Question, error) {
	switch q.Mode {
	case ModeAll:
		return c.store.ListQuestions(ctx, q.Page)
	case ModeByCategory:
		return c.store.ListQuestionsByCategory(ctx, q.CategoryID)
	case ModeBySearch:
		return c.store.SearchQuestions(ctx, q.SearchTerm)
	default:
		return nil, fmt.Errorf("unknown mode %v", q.Mode)
	}
}

func (c *Controller) complete(ctx context.Context, r Result) ViewState {
	c.mu.Lock()
	next, outcome := Apply(c.state, c.pending, r)
	c.state = next
	if outcome != OutcomeStale {
		c.inflight = nil
	}
	snap := next.Clone()
	c.mu.Unlock()

	attrs := []any{
		"mode", r.Query.Mode.String(),
		"page", r.Query.Page,
		"category_id", r.Query.CategoryID,
		"search_term", r.Query.SearchTerm,
		"seq", r.Query.Seq,
		"request_id", r.Query.RequestID,
	}
	switch outcome {
	case OutcomeStale:
		c.logger.DebugContext(ctx, "Discarded stale response", attrs...)
	case OutcomeFailed:
		c.logger.ErrorContext(ctx, "Failed to load questions", append(attrs, "error", r.Err)...)
		c.notifier.Notify(ctx, Notice{Kind: NoticeFetchFailed, Message: FailureMessage})
	default:
		c.logger.DebugContext(ctx, "Questions loaded", append(attrs, "count", snap.TotalQuestions)...)
	}
	return snap
}
