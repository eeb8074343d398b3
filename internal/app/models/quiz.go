package models

import (
	"time"
)

// Subject defines a quiz subject based on the 'subjects' table
type Subject struct {
	ID    int64  `json:"id" db:"id" example:"1"`
	Name  string `json:"name" db:"name" example:"Computer Science"`
	Color string `json:"color" db:"color" example:"#007bff"`
}

// Quiz defines the quiz model based on the 'quizzes' table
type Quiz struct {
	ID        int64   `json:"id" db:"id"`
	Name      string  `json:"name" db:"name" example:"Data Structures Basics"`
	SubjectID int64   `json:"subjectId" db:"subject_id"`
	OwnerID   int64   `json:"ownerId" db:"owner_id"`
	Subject   *Subject `json:"subject,omitempty"` // Relation, no db tag

	// Read-time annotations, populated by list queries
	QuestionsCount int `json:"questionsCount,omitempty"`
	TakenCount     int `json:"takenCount,omitempty"`
}

// Question defines a quiz question based on the 'questions' table
type Question struct {
	ID     int64  `json:"id" db:"id"`
	QuizID int64  `json:"quizId" db:"quiz_id"`
	Text   string `json:"text" db:"text"`

	Answers []Answer `json:"answers,omitempty"`
	// AnswersCount is populated by the quiz detail query
	AnswersCount int `json:"answersCount,omitempty"`
}

// Answer defines an answer option based on the 'answers' table
type Answer struct {
	ID         int64  `json:"id" db:"id"`
	QuestionID int64  `json:"questionId" db:"question_id"`
	Text       string `json:"text" db:"text"`
	IsCorrect  bool   `json:"isCorrect" db:"is_correct"`
}

// TakenQuiz records one student's attempt at a quiz, based on the
// 'taken_quizzes' table. Attempts are written by the student-facing flow and
// only read here for the results view.
type TakenQuiz struct {
	ID          int64     `json:"id" db:"id"`
	QuizID      int64     `json:"quizId" db:"quiz_id"`
	StudentID   int64     `json:"studentId" db:"student_id"`
	Score       float64   `json:"score" db:"score"`
	Date        time.Time `json:"date" db:"date"`
	StudentName string    `json:"studentName,omitempty"`
}
