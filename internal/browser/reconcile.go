package browser

import "github.com/SAP-F-2025/trivia-browser/internal/models"

// Result is the outcome of one retrieval, tagged with the query it answers
type Result struct {
	Query     Query
	Questions []models.Question
	Err       error
}

// Outcome tells the caller what Apply did with a Result
type Outcome int

const (
	OutcomeApplied Outcome = iota
	OutcomeFailed
	OutcomeStale
)

func (o Outcome) String() string {
	switch o {
	case OutcomeApplied:
		return "applied"
	case OutcomeFailed:
		return "failed"
	default:
		return "stale"
	}
}

// Begin marks a retrieval as in flight
func Begin(s ViewState) ViewState {
	next := s.Clone()
	next.Loading = true
	return next
}

// Apply reconciles r into s. pending is the Seq of the latest issued query; results
// for any other Seq are stale and leave s untouched. A failed result only clears
// Loading. A successful one replaces the list wholesale.
func Apply(s ViewState, pending uint64, r Result) (ViewState, Outcome) {
	if r.Query.Seq != pending {
		return s, OutcomeStale
	}

	next := s.Clone()
	next.Loading = false
	if r.Err != nil {
		return next, OutcomeFailed
	}

	q := r.Query
	next.Mode = q.Mode
	next.Page = 1
	next.CategoryID = 0
	next.SearchTerm = ""
	switch q.Mode {
	case ModeAll:
		next.Page = q.Page
	case ModeByCategory:
		next.CategoryID = q.CategoryID
	case ModeBySearch:
		next.SearchTerm = q.SearchTerm
	}

	questions := make([]models.Question, len(r.Questions))
	copy(questions, r.Questions)
	next.Questions = questions
	next.TotalQuestions = len(questions)
	next.Revealed = nil

	if id, ok := currentCategoryFor(q, questions); ok {
		next.CurrentCategory = id
		next.HasCurrentCategory = true
	}

	return next, OutcomeApplied
}

// currentCategoryFor picks the highlighted category from fetched data. An empty
// result yields nothing so the previous highlight survives.
func currentCategoryFor(q Query, questions []models.Question) (int, bool) {
	if len(questions) == 0 {
		return 0, false
	}
	switch q.Mode {
	case ModeAll:
		return questions[len(questions)-1].Category, true
	case ModeByCategory:
		return q.CategoryID, true
	case ModeBySearch:
		return questions[0].Category, true
	}
	return 0, false
}

// RevealAnswer toggles the answer of a displayed question. Unknown ids are ignored.
func RevealAnswer(s ViewState, id int) ViewState {
	if _, ok := s.Question(id); !ok {
		return s
	}
	next := s.Clone()
	if next.Revealed == nil {
		next.Revealed = make(map[int]bool)
	}
	if next.Revealed[id] {
		delete(next.Revealed, id)
	} else {
		next.Revealed[id] = true
	}
	return next
}
