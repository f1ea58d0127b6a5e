package models

// ===== QUESTION STORE PAYLOADS =====

// SearchRequest is the body of POST /api/v1/questions/search-term.
// SearchTerm is a pointer so an absent key can be told apart from "".
type SearchRequest struct {
	SearchTerm *string `json:"search_term"`
}

// CreateQuestionRequest is the body of POST /api/v1/questions.
type CreateQuestionRequest struct {
	Question   *string `json:"question" validate:"required"`
	Answer     *string `json:"answer" validate:"required"`
	Category   *int    `json:"category" validate:"required,min=1"`
	Difficulty *int    `json:"difficulty" validate:"required,difficulty_level"`
}

// QuizRequest is the body of POST /api/v1/questions/quizzes.
type QuizRequest struct {
	QuizCategory      *int  `json:"quiz_category" validate:"required,min=1"`
	PreviousQuestions []int `json:"previous_questions" validate:"required"`
}

// ===== ERROR RESPONSES =====

type ErrorResponse struct {
	Status  int    `json:"status"`
	Success bool   `json:"success"`
	Message string `json:"message"`
}
