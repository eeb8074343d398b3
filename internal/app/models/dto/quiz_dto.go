package dto

import "github.com/anmol/campushire/internal/app/models"

// CreateQuizRequest represents a request to create a quiz
type CreateQuizRequest struct {
	Name      string `json:"name" binding:"required"`
	SubjectID int64  `json:"subjectId" binding:"required,min=1"`
}

// UpdateQuizRequest represents a request to update a quiz
type UpdateQuizRequest struct {
	Name      string `json:"name" binding:"required"`
	SubjectID int64  `json:"subjectId" binding:"required,min=1"`
}

// AnswerRequest represents one answer option submitted with a question
type AnswerRequest struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

// QuestionRequest represents a request to create or update a question with
// its answer options inline.
type QuestionRequest struct {
	Text    string          `json:"text" binding:"required"`
	Answers []AnswerRequest `json:"answers" binding:"required,min=2,max=10,dive"`
}

// QuizDetailResponse is a quiz together with its questions, each annotated
// with an answer count.
type QuizDetailResponse struct {
	Quiz      models.Quiz       `json:"quiz"`
	Questions []models.Question `json:"questions"`
}

// QuizResultsResponse aggregates a quiz's attempts for the results view.
// AverageScore is nil when there are no attempts.
type QuizResultsResponse struct {
	Quiz          models.Quiz        `json:"quiz"`
	TakenQuizzes  []models.TakenQuiz `json:"takenQuizzes"`
	TotalAttempts int                `json:"totalAttempts"`
	AverageScore  *float64           `json:"averageScore"`
}

// DeletedResponse reports a completed delete with a human-readable message.
// For question deletes QuizID points back at the parent quiz.
type DeletedResponse struct {
	Message string `json:"message" example:"The quiz Data Structures Basics was deleted with success!"`
	QuizID  int64  `json:"quizId,omitempty"`
}
