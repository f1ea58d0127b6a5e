// Package tui is the terminal front end of the question browser.
package tui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/SAP-F-2025/trivia-browser/internal/browser"
	"github.com/SAP-F-2025/trivia-browser/internal/directory"
	"github.com/SAP-F-2025/trivia-browser/internal/events"
	"github.com/SAP-F-2025/trivia-browser/internal/export"
	"github.com/SAP-F-2025/trivia-browser/internal/models"
)

// Auditor records user actions that changed something
type Auditor interface {
	QuestionDeleted(ctx context.Context, id int, mode browser.Mode)
	ExportWritten(ctx context.Context, path string, questions int)
}

type inputMode int

const (
	inputNone inputMode = iota
	inputSearch
	inputCategory
	inputPage
)

func (m inputMode) prompt() string {
	switch m {
	case inputSearch:
		return "search: "
	case inputCategory:
		return "category id: "
	case inputPage:
		return "page: "
	default:
		return ""
	}
}

type Options struct {
	Controller *browser.Controller
	Auditor    Auditor
	Events     <-chan *events.Event
	ExportDir  string
	Now        func() time.Time
}

type Model struct {
	ctx       context.Context
	ctrl      *browser.Controller
	auditor   Auditor
	events    <-chan *events.Event
	exportDir string
	now       func() time.Time

	state  browser.ViewState
	dir    directory.Directory
	cursor int

	input  inputMode
	buffer string

	confirming bool
	confirmID  int

	status string
	width  int
}

func New(ctx context.Context, opts Options) Model {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return Model{
		ctx:       ctx,
		ctrl:      opts.Controller,
		auditor:   opts.Auditor,
		events:    opts.Events,
		exportDir: opts.ExportDir,
		now:       now,
		state:     browser.InitialState(),
	}
}

// Init loads the first page and the category directory independently; a slow
// directory never holds back the list
func (m Model) Init() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	categories := func() tea.Msg {
		return categoriesMsg{dir: ctrl.LoadCategories(ctx)}
	}
	return tea.Batch(m.loadPage(1), categories, m.waitForEvent())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case categoriesMsg:
		m.dir = msg.dir
		return m, nil

	case stateMsg:
		m.setState(m.ctrl.Snapshot())
		return m, nil

	case deleteMsg:
		m.setState(m.ctrl.Snapshot())
		if msg.deleted && m.auditor != nil {
			m.auditor.QuestionDeleted(m.ctx, msg.id, m.state.Mode)
		}
		return m, nil

	case exportMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Export failed: %v", msg.err)
			return m, nil
		}
		m.status = exportStatus(msg.path, msg.questions)
		if m.auditor != nil {
			m.auditor.ExportWritten(m.ctx, msg.path, msg.questions)
		}
		return m, nil

	case eventMsg:
		if status := eventStatus(msg.event); status != "" {
			m.status = status
		}
		return m, m.waitForEvent()

	case errMsg:
		m.status = msg.err.Error()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) setState(s browser.ViewState) {
	m.state = s
	if m.cursor >= len(s.Questions) {
		m.cursor = len(s.Questions) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.confirming {
		return m.handleConfirmKey(msg)
	}
	if m.input != inputNone {
		return m.handleInputKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.state.Questions)-1 {
			m.cursor++
		}
	case "enter", " ":
		if q, ok := m.selected(); ok {
			m.state = m.ctrl.RevealAnswer(q.ID)
		}
	case "right", "l":
		return m, m.selectPage(m.state.Page + 1)
	case "left", "h":
		if m.state.Page > 1 {
			return m, m.selectPage(m.state.Page - 1)
		}
	case "a":
		return m, m.loadPage(1)
	case "r":
		return m, m.refresh()
	case "/":
		m.input, m.buffer = inputSearch, ""
	case "c":
		m.input, m.buffer = inputCategory, ""
	case "g":
		if m.state.Mode != browser.ModeAll {
			m.status = browser.ErrPaginationUnavailable.Error()
			break
		}
		m.input, m.buffer = inputPage, ""
	case "d":
		if q, ok := m.selected(); ok {
			m.confirming, m.confirmID = true, q.ID
		}
	case "x":
		return m, m.exportView()
	}
	return m, nil
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var answer bool
	switch msg.String() {
	case "y", "Y":
		answer = true
	case "n", "N", "esc":
		answer = false
	default:
		return m, nil
	}
	id := m.confirmID
	m.confirming, m.confirmID = false, 0
	return m, m.deleteQuestion(id, answer)
}

func (m Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.input, m.buffer = inputNone, ""
		return m, nil
	case tea.KeyBackspace:
		if r := []rune(m.buffer); len(r) > 0 {
			m.buffer = string(r[:len(r)-1])
		}
		return m, nil
	case tea.KeySpace:
		m.buffer += " "
		return m, nil
	case tea.KeyRunes:
		m.buffer += string(msg.Runes)
		return m, nil
	case tea.KeyEnter:
	default:
		return m, nil
	}

	mode, value := m.input, m.buffer
	m.input, m.buffer = inputNone, ""

	switch mode {
	case inputSearch:
		// sent verbatim; the store does the matching
		return m, m.search(value)
	case inputCategory:
		id, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			m.status = fmt.Sprintf("%q is not a category id", value)
			return m, nil
		}
		return m, m.loadCategory(id)
	case inputPage:
		page, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || page < 1 {
			m.status = fmt.Sprintf("%q is not a page number", value)
			return m, nil
		}
		return m, m.selectPage(page)
	}
	return m, nil
}

func (m Model) selected() (models.Question, bool) {
	if m.cursor < 0 || m.cursor >= len(m.state.Questions) {
		return models.Question{}, false
	}
	return m.state.Questions[m.cursor], true
}

func (m Model) loadPage(page int) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		ctrl.LoadPage(ctx, page)
		return stateMsg{}
	}
}

func (m Model) selectPage(page int) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		if _, err := ctrl.SelectPage(ctx, page); err != nil {
			return errMsg{err: err}
		}
		return stateMsg{}
	}
}

func (m Model) loadCategory(id int) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		ctrl.LoadByCategory(ctx, id)
		return stateMsg{}
	}
}

func (m Model) search(term string) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		ctrl.Search(ctx, term)
		return stateMsg{}
	}
}

func (m Model) refresh() tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	return func() tea.Msg {
		ctrl.RefreshActive(ctx)
		return stateMsg{}
	}
}

// deleteQuestion passes the answer given in the confirmation modal on to the controller
func (m Model) deleteQuestion(id int, answer bool) tea.Cmd {
	ctrl, ctx := m.ctrl, m.ctx
	confirm := browser.ConfirmFunc(func(context.Context, string) bool { return answer })
	return func() tea.Msg {
		_, deleted := ctrl.DeleteQuestion(ctx, id, confirm)
		return deleteMsg{id: id, deleted: deleted}
	}
}

func (m Model) exportView() tea.Cmd {
	state, dir := m.state.Clone(), m.dir
	path := filepath.Join(m.exportDir, export.FileName(state, m.now()))
	return func() tea.Msg {
		err := export.WriteView(path, state, dir)
		return exportMsg{path: path, questions: len(state.Questions), err: err}
	}
}

func (m Model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	ch := m.events
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return eventMsg{event: event}
	}
}

func eventStatus(event *events.Event) string {
	if n, ok := events.NoticeFrom(event); ok {
		return n.Message
	}
	switch event.Type {
	case events.EventQuestionDeleted:
		var data events.QuestionDeletedEvent
		if err := event.DecodeData(&data); err == nil {
			return fmt.Sprintf("Question %d deleted", data.QuestionID)
		}
	case events.EventExportWritten:
		var data events.ExportWrittenEvent
		if err := event.DecodeData(&data); err == nil {
			return exportStatus(data.Path, data.Questions)
		}
	}
	return ""
}

func exportStatus(path string, questions int) string {
	return fmt.Sprintf("Exported %d questions to %s", questions, path)
}

// State exposes the displayed view
func (m Model) State() browser.ViewState { return m.state }

// Status is the text of the status line
func (m Model) Status() string { return m.status }

var errNoController = errors.New("tui: no controller")

// Run starts the program and blocks until the user quits
func Run(ctx context.Context, opts Options, programOpts ...tea.ProgramOption) error {
	if opts.Controller == nil {
		return errNoController
	}
	programOpts = append(programOpts, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := tea.NewProgram(New(ctx, opts), programOpts...).Run()
	return err
}
