package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SAP-F-2025/trivia-browser/internal/browser"
	"github.com/SAP-F-2025/trivia-browser/internal/directory"
	"github.com/SAP-F-2025/trivia-browser/internal/events"
	"github.com/SAP-F-2025/trivia-browser/internal/models"
)

type memoryStore struct {
	mu        sync.Mutex
	questions []models.Question
	deleted   []int
	gates     map[string]gate
}

type gate struct {
	started chan struct{}
	release chan struct{}
}

// hold makes the next call named call block until release is invoked
func (s *memoryStore) hold(call string) (started <-chan struct{}, release func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gates == nil {
		s.gates = make(map[string]gate)
	}
	g := gate{started: make(chan struct{}), release: make(chan struct{})}
	s.gates[call] = g
	return g.started, func() { close(g.release) }
}

func (s *memoryStore) wait(call string) {
	s.mu.Lock()
	g, ok := s.gates[call]
	delete(s.gates, call)
	s.mu.Unlock()
	if ok {
		close(g.started)
		<-g.release
	}
}

func (s *memoryStore) ListQuestions(_ context.Context, page int) ([]models.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	start := (page - 1) * browser.PageSize
	if start >= len(s.questions) {
		return []models.Question{}, nil
	}
	end := start + browser.PageSize
	if end > len(s.questions) {
		end = len(s.questions)
	}
	return append([]models.Question(nil), s.questions[start:end]...), nil
}

func (s *memoryStore) ListQuestionsByCategory(_ context.Context, id int) ([]models.Question, error) {
	s.wait("category:" + strconv.Itoa(id))
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Question
	for _, q := range s.questions {
		if q.Category == id {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *memoryStore) SearchQuestions(_ context.Context, term string) ([]models.Question, error) {
	s.wait("search:" + term)
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Question
	for _, q := range s.questions {
		if strings.Contains(strings.ToLower(q.Question), strings.ToLower(term)) {
			out = append(out, q)
		}
	}
	return out, nil
}

func (s *memoryStore) DeleteQuestion(_ context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, q := range s.questions {
		if q.ID == id {
			s.questions = append(s.questions[:i], s.questions[i+1:]...)
			s.deleted = append(s.deleted, id)
			return nil
		}
	}
	return errors.New("not found")
}

type staticLoader struct{ dir directory.Directory }

func (l staticLoader) Load(context.Context) (directory.Directory, error) { return l.dir, nil }

type recordingAuditor struct {
	deleted []int
	exports []string
}

func (a *recordingAuditor) QuestionDeleted(_ context.Context, id int, _ browser.Mode) {
	a.deleted = append(a.deleted, id)
}

func (a *recordingAuditor) ExportWritten(_ context.Context, path string, _ int) {
	a.exports = append(a.exports, path)
}

type blockingLoader struct{ release chan struct{} }

func (l blockingLoader) Load(ctx context.Context) (directory.Directory, error) {
	select {
	case <-l.release:
	case <-ctx.Done():
	}
	return directory.Directory{}, errors.New("categories unavailable")
}

func seededStore() *memoryStore {
	store := &memoryStore{}
	for i := 1; i <= 12; i++ {
		category := 1
		text := "Science question"
		if i%3 == 0 {
			category, text = 6, "Who won the World Cup?"
		}
		store.questions = append(store.questions, models.Question{
			ID: i, Question: text, Answer: "answer", Category: category, Difficulty: 1 + i%5,
		})
	}
	return store
}

func newTestModel(t *testing.T) (Model, *memoryStore, *recordingAuditor) {
	t.Helper()
	store := seededStore()
	dir := directory.New([]models.Category{{ID: 1, Type: "Science"}, {ID: 6, Type: "Sports"}})
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctrl := browser.NewController(store, staticLoader{dir: dir}, nil, logger)
	auditor := &recordingAuditor{}

	m := New(context.Background(), Options{
		Controller: ctrl,
		Auditor:    auditor,
		ExportDir:  t.TempDir(),
		Now:        func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) },
	})
	m = drive(t, m, m.Init())
	return m, store, auditor
}

// drive runs cmd and feeds its messages back into the model
func drive(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			m = drive(t, m, c)
		}
		return m
	}
	if msg == nil {
		return m
	}
	next, nextCmd := m.Update(msg)
	return drive(t, next.(Model), nextCmd)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "right":
			msg = tea.KeyMsg{Type: tea.KeyRight}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		next, cmd := m.Update(msg)
		m = drive(t, next.(Model), cmd)
	}
	return m
}

func TestModel_Init(t *testing.T) {
	m, _, _ := newTestModel(t)

	if m.State().Mode != browser.ModeAll || m.State().TotalQuestions != 10 {
		t.Errorf("state = %+v", m.State())
	}
	view := m.View()
	for _, want := range []string{"1 Science", "6 Sports", "pages:", "all questions, page 1"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModel_Search(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, "/", "world cup", "enter")

	state := m.State()
	if state.Mode != browser.ModeBySearch || state.SearchTerm != "world cup" || state.TotalQuestions != 4 {
		t.Fatalf("state = %+v", state)
	}
	if strings.Contains(m.View(), "pages:") {
		t.Error("search results must not show page links")
	}

	m = press(t, m, "g")
	if m.Status() != browser.ErrPaginationUnavailable.Error() {
		t.Errorf("status = %q", m.Status())
	}
}

func TestModel_CategoryAndPaging(t *testing.T) {
	m, _, _ := newTestModel(t)

	m = press(t, m, "right")
	if m.State().Page != 2 || m.State().TotalQuestions != 2 {
		t.Errorf("page 2 state = %+v", m.State())
	}

	m = press(t, m, "c", "6", "enter")
	if m.State().Mode != browser.ModeByCategory {
		t.Fatalf("mode = %v", m.State().Mode)
	}
	if cat, _ := m.State().Category(); cat != 6 {
		t.Errorf("current category = %d", cat)
	}
	if !strings.Contains(m.View(), "category: Sports") {
		t.Errorf("view:\n%s", m.View())
	}

	m = press(t, m, "c", "six", "enter")
	if !strings.Contains(m.Status(), "not a category id") {
		t.Errorf("status = %q", m.Status())
	}
}

func TestModel_RevealAnswer(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = press(t, m, "down", "enter")

	if !m.State().IsRevealed(2) {
		t.Error("second question not revealed")
	}
	if !strings.Contains(m.View(), "Answer: answer") {
		t.Error("answer not rendered")
	}
}

func TestModel_Delete(t *testing.T) {
	t.Run("confirmed", func(t *testing.T) {
		m, store, auditor := newTestModel(t)
		m = press(t, m, "d")
		if !strings.Contains(m.View(), browser.DeletePrompt) {
			t.Fatalf("confirmation not shown:\n%s", m.View())
		}

		m = press(t, m, "y")
		if len(store.deleted) != 1 || store.deleted[0] != 1 {
			t.Errorf("deleted = %v", store.deleted)
		}
		if _, ok := m.State().Question(1); ok {
			t.Error("deleted question still listed")
		}
		if len(auditor.deleted) != 1 {
			t.Errorf("audited deletes = %v", auditor.deleted)
		}
	})

	t.Run("declined", func(t *testing.T) {
		m, store, auditor := newTestModel(t)
		m = press(t, m, "d", "n")
		if len(store.deleted) != 0 || len(auditor.deleted) != 0 {
			t.Errorf("declined delete went through: %v", store.deleted)
		}
		if _, ok := m.State().Question(1); !ok {
			t.Error("question 1 disappeared")
		}
	})
}

func TestModel_Export(t *testing.T) {
	m, _, auditor := newTestModel(t)
	m = press(t, m, "x")

	if len(auditor.exports) != 1 {
		t.Fatalf("exports = %v", auditor.exports)
	}
	path := auditor.exports[0]
	if filepath.Base(path) != "questions-page-1-20260102-030405.xlsx" {
		t.Errorf("path = %s", path)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("export file missing: %v", err)
	}
	if !strings.Contains(m.Status(), "Exported 10 questions") {
		t.Errorf("status = %q", m.Status())
	}
}

func TestModel_EventStatus(t *testing.T) {
	m, _, _ := newTestModel(t)

	notice, _ := events.NewEvent(events.EventNotice, browser.Notice{Kind: browser.NoticeFetchFailed, Message: browser.FailureMessage})
	next, _ := m.Update(eventMsg{event: notice})
	m = next.(Model)
	if m.Status() != browser.FailureMessage {
		t.Errorf("status = %q", m.Status())
	}

	deleted, _ := events.NewEvent(events.EventQuestionDeleted, events.QuestionDeletedEvent{QuestionID: 3})
	next, _ = m.Update(eventMsg{event: deleted})
	if got := next.(Model).Status(); got != "Question 3 deleted" {
		t.Errorf("status = %q", got)
	}
}

func TestModel_InitDoesNotWaitForCategories(t *testing.T) {
	loader := blockingLoader{release: make(chan struct{})}
	defer close(loader.release)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctrl := browser.NewController(seededStore(), loader, nil, logger)
	m := New(context.Background(), Options{Controller: ctrl})

	batch, ok := m.Init()().(tea.BatchMsg)
	if !ok {
		t.Fatal("Init should start independent commands")
	}
	msgs := make(chan tea.Msg, len(batch))
	for _, cmd := range batch {
		go func(cmd tea.Cmd) { msgs <- cmd() }(cmd)
	}

	select {
	case msg := <-msgs:
		if _, ok := msg.(stateMsg); !ok {
			t.Fatalf("first message = %T, want stateMsg", msg)
		}
		next, _ := m.Update(msg)
		m = next.(Model)
	case <-time.After(5 * time.Second):
		t.Fatal("first page held back by the category load")
	}

	if m.State().TotalQuestions != 10 {
		t.Errorf("displayed %d questions, want 10", m.State().TotalQuestions)
	}
	if !strings.Contains(m.View(), "categories unavailable") {
		t.Errorf("view should render without categories:\n%s", m.View())
	}
}

func TestModel_OutOfOrderCompletion(t *testing.T) {
	m, store, _ := newTestModel(t)

	searchStarted, releaseSearch := store.hold("search:world cup")
	categoryStarted, releaseCategory := store.hold("category:1")

	searchDone := make(chan tea.Msg, 1)
	go func(cmd tea.Cmd) { searchDone <- cmd() }(m.search("world cup"))
	<-searchStarted

	categoryDone := make(chan tea.Msg, 1)
	go func(cmd tea.Cmd) { categoryDone <- cmd() }(m.loadCategory(1))
	<-categoryStarted

	// the superseded search finishes first while the category load is still running
	releaseSearch()
	staleMsg := <-searchDone
	releaseCategory()
	freshMsg := <-categoryDone

	next, _ := m.Update(freshMsg)
	next, _ = next.(Model).Update(staleMsg)
	m = next.(Model)

	state := m.State()
	if state.Mode != browser.ModeByCategory || state.CategoryID != 1 || state.Loading {
		t.Errorf("displayed state = mode %v category %d loading %v", state.Mode, state.CategoryID, state.Loading)
	}
	for _, q := range state.Questions {
		if q.Category != 1 {
			t.Errorf("question %d of category %d displayed", q.ID, q.Category)
		}
	}
}
