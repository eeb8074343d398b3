package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/anmol/campushire/internal/app/models"
	"github.com/anmol/campushire/internal/app/models/dto"
	"github.com/anmol/campushire/internal/pkg/apperrors"
)

// SubjectStore is the subject lookup surface
type SubjectStore interface {
	GetAll(ctx context.Context) ([]*models.Subject, error)
	GetByID(ctx context.Context, id int64) (*models.Subject, error)
}

// QuizStore is the quiz persistence surface. All reads and writes that name a
// quiz are scoped to its owner so other teachers' quizzes stay invisible.
type QuizStore interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Quiz, error)
	GetByIDForOwner(ctx context.Context, id, ownerID int64) (*models.Quiz, error)
	Create(ctx context.Context, quiz *models.Quiz) (*models.Quiz, error)
	Update(ctx context.Context, quiz *models.Quiz) error
	Delete(ctx context.Context, id, ownerID int64) error
	ListQuestionsWithAnswerCounts(ctx context.Context, quizID int64) ([]*models.Question, error)
	ListAttempts(ctx context.Context, quizID int64) ([]*models.TakenQuiz, error)
	GetAttemptStats(ctx context.Context, quizID int64) (int, *float64, error)
}

// QuestionStore is the question persistence surface
type QuestionStore interface {
	GetForOwner(ctx context.Context, id, ownerID int64) (*models.Question, error)
	CreateWithAnswers(ctx context.Context, question *models.Question) error
	UpdateWithAnswers(ctx context.Context, question *models.Question) error
	DeleteForOwner(ctx context.Context, id, ownerID int64) error
}

// QuizService handles quiz authoring for teachers
type QuizService interface {
	ListSubjects(ctx context.Context) ([]*models.Subject, error)
	ListQuizzes(ctx context.Context, ownerID int64) ([]*models.Quiz, error)
	GetQuiz(ctx context.Context, id, ownerID int64) (*dto.QuizDetailResponse, error)
	CreateQuiz(ctx context.Context, ownerID int64, req *dto.CreateQuizRequest) (*models.Quiz, error)
	UpdateQuiz(ctx context.Context, id, ownerID int64, req *dto.UpdateQuizRequest) (*models.Quiz, error)
	DeleteQuiz(ctx context.Context, id, ownerID int64) (*dto.DeletedResponse, error)
	GetQuizResults(ctx context.Context, id, ownerID int64) (*dto.QuizResultsResponse, error)
	CreateQuestion(ctx context.Context, quizID, ownerID int64, req *dto.QuestionRequest) (*models.Question, error)
	UpdateQuestion(ctx context.Context, questionID, ownerID int64, req *dto.QuestionRequest) (*models.Question, error)
	DeleteQuestion(ctx context.Context, questionID, ownerID int64) (*dto.DeletedResponse, error)
}

type quizService struct {
	subjectStore  SubjectStore
	quizStore     QuizStore
	questionStore QuestionStore
	logger        zerolog.Logger
}

// NewQuizService creates a new QuizService
func NewQuizService(subjectStore SubjectStore, quizStore QuizStore, questionStore QuestionStore, logger zerolog.Logger) QuizService {
	return &quizService{
		subjectStore:  subjectStore,
		quizStore:     quizStore,
		questionStore: questionStore,
		logger:        logger,
	}
}

// ListSubjects returns all available subjects
func (s *quizService) ListSubjects(ctx context.Context) ([]*models.Subject, error) {
	return s.subjectStore.GetAll(ctx)
}

// ListQuizzes returns the teacher's quizzes with question and attempt counts
func (s *quizService) ListQuizzes(ctx context.Context, ownerID int64) ([]*models.Quiz, error) {
	return s.quizStore.ListByOwner(ctx, ownerID)
}

// GetQuiz returns one of the teacher's quizzes with its question list
func (s *quizService) GetQuiz(ctx context.Context, id, ownerID int64) (*dto.QuizDetailResponse, error) {
	quiz, err := s.quizStore.GetByIDForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	questions, err := s.quizStore.ListQuestionsWithAnswerCounts(ctx, quiz.ID)
	if err != nil {
		return nil, err
	}

	detail := &dto.QuizDetailResponse{Quiz: *quiz, Questions: make([]models.Question, 0, len(questions))}
	for _, question := range questions {
		detail.Questions = append(detail.Questions, *question)
	}

	return detail, nil
}

// CreateQuiz creates a new quiz for the teacher
func (s *quizService) CreateQuiz(ctx context.Context, ownerID int64, req *dto.CreateQuizRequest) (*models.Quiz, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: quiz name cannot be empty", apperrors.ErrValidationFailed)
	}

	subject, err := s.subjectStore.GetByID(ctx, req.SubjectID)
	if err != nil {
		return nil, err
	}

	quiz := &models.Quiz{
		Name:      name,
		SubjectID: subject.ID,
		OwnerID:   ownerID,
	}

	quiz, err = s.quizStore.Create(ctx, quiz)
	if err != nil {
		return nil, err
	}
	quiz.Subject = subject

	s.logger.Info().Int64("quizID", quiz.ID).Int64("ownerID", ownerID).Msg("Quiz created")

	return quiz, nil
}

// UpdateQuiz renames or re-subjects one of the teacher's quizzes
func (s *quizService) UpdateQuiz(ctx context.Context, id, ownerID int64, req *dto.UpdateQuizRequest) (*models.Quiz, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: quiz name cannot be empty", apperrors.ErrValidationFailed)
	}

	subject, err := s.subjectStore.GetByID(ctx, req.SubjectID)
	if err != nil {
		return nil, err
	}

	quiz := &models.Quiz{
		ID:        id,
		Name:      name,
		SubjectID: subject.ID,
		OwnerID:   ownerID,
	}

	if err := s.quizStore.Update(ctx, quiz); err != nil {
		return nil, err
	}
	quiz.Subject = subject

	return quiz, nil
}

// DeleteQuiz removes one of the teacher's quizzes together with its
// questions, answers and recorded attempts.
func (s *quizService) DeleteQuiz(ctx context.Context, id, ownerID int64) (*dto.DeletedResponse, error) {
	quiz, err := s.quizStore.GetByIDForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.quizStore.Delete(ctx, id, ownerID); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("quizID", id).Int64("ownerID", ownerID).Msg("Quiz deleted")

	return &dto.DeletedResponse{
		Message: fmt.Sprintf("The quiz %s was deleted with success!", quiz.Name),
	}, nil
}

// GetQuizResults returns the attempts recorded for one of the teacher's
// quizzes together with aggregate stats.
func (s *quizService) GetQuizResults(ctx context.Context, id, ownerID int64) (*dto.QuizResultsResponse, error) {
	quiz, err := s.quizStore.GetByIDForOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	attempts, err := s.quizStore.ListAttempts(ctx, quiz.ID)
	if err != nil {
		return nil, err
	}

	total, average, err := s.quizStore.GetAttemptStats(ctx, quiz.ID)
	if err != nil {
		return nil, err
	}

	results := &dto.QuizResultsResponse{
		Quiz:          *quiz,
		TakenQuizzes:  make([]models.TakenQuiz, 0, len(attempts)),
		TotalAttempts: total,
		AverageScore:  average,
	}
	for _, attempt := range attempts {
		results.TakenQuizzes = append(results.TakenQuizzes, *attempt)
	}

	return results, nil
}

// validateQuestion enforces the answer set rules shared by create and update
func (s *quizService) validateQuestion(req *dto.QuestionRequest) error {
	if strings.TrimSpace(req.Text) == "" {
		return fmt.Errorf("%w: question text cannot be empty", apperrors.ErrValidationFailed)
	}
	if len(req.Answers) < 2 || len(req.Answers) > 10 {
		return fmt.Errorf("%w: a question needs between 2 and 10 answers", apperrors.ErrValidationFailed)
	}

	hasCorrect := false
	for _, answer := range req.Answers {
		if strings.TrimSpace(answer.Text) == "" {
			return fmt.Errorf("%w: answer text cannot be empty", apperrors.ErrValidationFailed)
		}
		if answer.IsCorrect {
			hasCorrect = true
		}
	}
	if !hasCorrect {
		return fmt.Errorf("%w: at least one answer must be marked correct", apperrors.ErrValidationFailed)
	}

	return nil
}

// CreateQuestion adds a question with its answers to one of the teacher's quizzes
func (s *quizService) CreateQuestion(ctx context.Context, quizID, ownerID int64, req *dto.QuestionRequest) (*models.Question, error) {
	if err := s.validateQuestion(req); err != nil {
		return nil, err
	}

	quiz, err := s.quizStore.GetByIDForOwner(ctx, quizID, ownerID)
	if err != nil {
		return nil, err
	}

	question := &models.Question{
		QuizID:  quiz.ID,
		Text:    strings.TrimSpace(req.Text),
		Answers: buildAnswers(req.Answers),
	}

	if err := s.questionStore.CreateWithAnswers(ctx, question); err != nil {
		return nil, err
	}

	return question, nil
}

// UpdateQuestion rewrites a question and replaces its answer set
func (s *quizService) UpdateQuestion(ctx context.Context, questionID, ownerID int64, req *dto.QuestionRequest) (*models.Question, error) {
	if err := s.validateQuestion(req); err != nil {
		return nil, err
	}

	existing, err := s.questionStore.GetForOwner(ctx, questionID, ownerID)
	if err != nil {
		return nil, err
	}

	question := &models.Question{
		ID:      existing.ID,
		QuizID:  existing.QuizID,
		Text:    strings.TrimSpace(req.Text),
		Answers: buildAnswers(req.Answers),
	}

	if err := s.questionStore.UpdateWithAnswers(ctx, question); err != nil {
		return nil, err
	}

	return question, nil
}

// DeleteQuestion removes a question from one of the teacher's quizzes.
// The response names the deleted question and points back at its quiz.
func (s *quizService) DeleteQuestion(ctx context.Context, questionID, ownerID int64) (*dto.DeletedResponse, error) {
	question, err := s.questionStore.GetForOwner(ctx, questionID, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.questionStore.DeleteForOwner(ctx, questionID, ownerID); err != nil {
		return nil, err
	}

	return &dto.DeletedResponse{
		Message: fmt.Sprintf("The question %s was deleted with success!", question.Text),
		QuizID:  question.QuizID,
	}, nil
}

func buildAnswers(requests []dto.AnswerRequest) []models.Answer {
	answers := make([]models.Answer, 0, len(requests))
	for _, req := range requests {
		answers = append(answers, models.Answer{
			Text:      strings.TrimSpace(req.Text),
			IsCorrect: req.IsCorrect,
		})
	}
	return answers
}
