// Package browser owns the question list view: which page, category or search term is
// active, and how responses from the question store are reconciled into it.
//
// ViewState is a value. Begin, Apply and RevealAnswer are pure transitions; Controller
// sequences them around the network calls and tags every request so that a response
// for a superseded request is dropped instead of applied.
package browser

import (
	"fmt"
	"slices"

	"github.com/SAP-F-2025/trivia-browser/internal/models"
)

// Mode selects which retrieval produced the displayed list
type Mode int

const (
	ModeAll Mode = iota
	ModeByCategory
	ModeBySearch
)

func (m Mode) String() string {
	switch m {
	case ModeAll:
		return "ALL"
	case ModeByCategory:
		return "BY_CATEGORY"
	case ModeBySearch:
		return "BY_SEARCH"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Query is one retrieval request together with the tag used to detect stale responses
type Query struct {
	Mode       Mode
	Page       int
	CategoryID int
	SearchTerm string

	Seq       uint64
	RequestID string
}

// ViewState is the snapshot of what is currently displayed
type ViewState struct {
	Mode Mode
	// Page is meaningful in ModeAll only; other modes are unpaginated and keep it at 1
	Page       int
	CategoryID int
	SearchTerm string

	Questions      []models.Question
	TotalQuestions int

	CurrentCategory    int
	HasCurrentCategory bool

	Loading  bool
	Revealed map[int]bool
}

// InitialState is the state before the first page arrives
func InitialState() ViewState {
	return ViewState{
		Mode:      ModeAll,
		Page:      1,
		Questions: []models.Question{},
	}
}

// Clone returns a deep copy, so callers may hold snapshots across transitions
func (s ViewState) Clone() ViewState {
	out := s
	out.Questions = slices.Clone(s.Questions)
	if out.Questions == nil {
		out.Questions = []models.Question{}
	}
	if s.Revealed != nil {
		out.Revealed = make(map[int]bool, len(s.Revealed))
		for id, v := range s.Revealed {
			out.Revealed[id] = v
		}
	}
	return out
}

// ActiveQuery is the retrieval that produced the displayed list
func (s ViewState) ActiveQuery() Query {
	q := Query{Mode: s.Mode, Page: 1}
	switch s.Mode {
	case ModeAll:
		q.Page = s.Page
	case ModeByCategory:
		q.CategoryID = s.CategoryID
	case ModeBySearch:
		q.SearchTerm = s.SearchTerm
	}
	return q
}

// Category returns the highlighted category, if any
func (s ViewState) Category() (int, bool) {
	return s.CurrentCategory, s.HasCurrentCategory
}

// IsRevealed reports whether the answer of question id is shown
func (s ViewState) IsRevealed(id int) bool {
	return s.Revealed[id]
}

// Question looks up a displayed question by id
func (s ViewState) Question(id int) (models.Question, bool) {
	for _, q := range s.Questions {
		if q.ID == id {
			return q, true
		}
	}
	return models.Question{}, false
}
