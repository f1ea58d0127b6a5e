package browser

import (
	"context"

	"github.com/SAP-F-2025/trivia-browser/internal/directory"
	"github.com/SAP-F-2025/trivia-browser/internal/models"
)

// FailureMessage is shown for every failed request
const FailureMessage = "Unable to load questions. Please try your request again"

// DeletePrompt is asked before a question is deleted
const DeletePrompt = "are you sure you want to delete the question?"

// QuestionStore is the part of the question store API the controller uses
type QuestionStore interface {
	ListQuestions(ctx context.Context, page int) ([]models.Question, error)
	ListQuestionsByCategory(ctx context.Context, categoryID int) ([]models.Question, error)
	SearchQuestions(ctx context.Context, term string) ([]models.Question, error)
	DeleteQuestion(ctx context.Context, id int) error
}

// CategoryLoader produces the category directory
type CategoryLoader interface {
	Load(ctx context.Context) (directory.Directory, error)
}

type NoticeKind string

const (
	NoticeCategoriesFailed NoticeKind = "categories_failed"
	NoticeFetchFailed      NoticeKind = "fetch_failed"
	NoticeDeleteFailed     NoticeKind = "delete_failed"
)

// Notice is a user-visible failure; it deliberately carries no error details
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

// Notifier presents notices to the user
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

type NotifierFunc func(ctx context.Context, n Notice)

func (f NotifierFunc) Notify(ctx context.Context, n Notice) { f(ctx, n) }

// MultiNotifier fans a notice out to several notifiers
type MultiNotifier []Notifier

func (m MultiNotifier) Notify(ctx context.Context, n Notice) {
	for _, notifier := range m {
		if notifier != nil {
			notifier.Notify(ctx, n)
		}
	}
}

// Confirmer is the yes/no gate in front of destructive actions
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) bool
}

type ConfirmFunc func(ctx context.Context, prompt string) bool

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) bool { return f(ctx, prompt) }
