package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anmol/campushire/internal/app/models"
	"github.com/anmol/campushire/internal/app/models/dto"
	"github.com/anmol/campushire/internal/pkg/apperrors"
)

type fakeSubjectStore struct {
	subjects map[int64]*models.Subject
}

func newFakeSubjectStore() *fakeSubjectStore {
	return &fakeSubjectStore{subjects: map[int64]*models.Subject{
		1: {ID: 1, Name: "Computer Science", Color: "#007bff"},
		2: {ID: 2, Name: "Mathematics", Color: "#28a745"},
	}}
}

func (s *fakeSubjectStore) GetAll(ctx context.Context) ([]*models.Subject, error) {
	var all []*models.Subject
	for _, subject := range s.subjects {
		all = append(all, subject)
	}
	return all, nil
}

func (s *fakeSubjectStore) GetByID(ctx context.Context, id int64) (*models.Subject, error) {
	subject, ok := s.subjects[id]
	if !ok {
		return nil, apperrors.ErrSubjectNotFound
	}
	return subject, nil
}

type fakeQuizStore struct {
	quizzes  map[int64]*models.Quiz
	attempts map[int64][]*models.TakenQuiz
	nextID   int64
}

func newFakeQuizStore() *fakeQuizStore {
	return &fakeQuizStore{
		quizzes:  map[int64]*models.Quiz{},
		attempts: map[int64][]*models.TakenQuiz{},
		nextID:   1,
	}
}

func (s *fakeQuizStore) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Quiz, error) {
	var owned []*models.Quiz
	for _, quiz := range s.quizzes {
		if quiz.OwnerID == ownerID {
			owned = append(owned, quiz)
		}
	}
	return owned, nil
}

func (s *fakeQuizStore) GetByIDForOwner(ctx context.Context, id, ownerID int64) (*models.Quiz, error) {
	quiz, ok := s.quizzes[id]
	if !ok || quiz.OwnerID != ownerID {
		return nil, apperrors.ErrQuizNotFound
	}
	return quiz, nil
}

func (s *fakeQuizStore) Create(ctx context.Context, quiz *models.Quiz) (*models.Quiz, error) {
	quiz.ID = s.nextID
	s.nextID++
	s.quizzes[quiz.ID] = quiz
	return quiz, nil
}

func (s *fakeQuizStore) Update(ctx context.Context, quiz *models.Quiz) error {
	existing, ok := s.quizzes[quiz.ID]
	if !ok || existing.OwnerID != quiz.OwnerID {
		return apperrors.ErrQuizNotFound
	}
	s.quizzes[quiz.ID] = quiz
	return nil
}

func (s *fakeQuizStore) Delete(ctx context.Context, id, ownerID int64) error {
	quiz, ok := s.quizzes[id]
	if !ok || quiz.OwnerID != ownerID {
		return apperrors.ErrQuizNotFound
	}
	delete(s.quizzes, id)
	return nil
}

func (s *fakeQuizStore) ListQuestionsWithAnswerCounts(ctx context.Context, quizID int64) ([]*models.Question, error) {
	return nil, nil
}

func (s *fakeQuizStore) ListAttempts(ctx context.Context, quizID int64) ([]*models.TakenQuiz, error) {
	return s.attempts[quizID], nil
}

func (s *fakeQuizStore) GetAttemptStats(ctx context.Context, quizID int64) (int, *float64, error) {
	attempts := s.attempts[quizID]
	if len(attempts) == 0 {
		return 0, nil, nil
	}
	var sum float64
	for _, attempt := range attempts {
		sum += attempt.Score
	}
	average := sum / float64(len(attempts))
	return len(attempts), &average, nil
}

type fakeQuestionStore struct {
	questions map[int64]*models.Question
	quizzes   *fakeQuizStore
	nextID    int64
}

func newFakeQuestionStore(quizzes *fakeQuizStore) *fakeQuestionStore {
	return &fakeQuestionStore{
		questions: map[int64]*models.Question{},
		quizzes:   quizzes,
		nextID:    1,
	}
}

func (s *fakeQuestionStore) ownsQuiz(quizID, ownerID int64) bool {
	quiz, ok := s.quizzes.quizzes[quizID]
	return ok && quiz.OwnerID == ownerID
}

func (s *fakeQuestionStore) GetForOwner(ctx context.Context, id, ownerID int64) (*models.Question, error) {
	question, ok := s.questions[id]
	if !ok || !s.ownsQuiz(question.QuizID, ownerID) {
		return nil, apperrors.ErrQuestionNotFound
	}
	return question, nil
}

func (s *fakeQuestionStore) CreateWithAnswers(ctx context.Context, question *models.Question) error {
	question.ID = s.nextID
	s.nextID++
	s.questions[question.ID] = question
	return nil
}

func (s *fakeQuestionStore) UpdateWithAnswers(ctx context.Context, question *models.Question) error {
	if _, ok := s.questions[question.ID]; !ok {
		return apperrors.ErrQuestionNotFound
	}
	s.questions[question.ID] = question
	return nil
}

func (s *fakeQuestionStore) DeleteForOwner(ctx context.Context, id, ownerID int64) error {
	question, ok := s.questions[id]
	if !ok || !s.ownsQuiz(question.QuizID, ownerID) {
		return apperrors.ErrQuestionNotFound
	}
	delete(s.questions, id)
	return nil
}

func newTestQuizService() (QuizService, *fakeQuizStore, *fakeQuestionStore) {
	quizStore := newFakeQuizStore()
	questionStore := newFakeQuestionStore(quizStore)
	svc := NewQuizService(newFakeSubjectStore(), quizStore, questionStore, zerolog.Nop())
	return svc, quizStore, questionStore
}

const (
	ownerA int64 = 10
	ownerB int64 = 20
)

func validAnswers() []dto.AnswerRequest {
	return []dto.AnswerRequest{
		{Text: "Stack", IsCorrect: true},
		{Text: "Queue"},
		{Text: "Heap"},
	}
}

func TestCreateQuiz(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestQuizService()

	t.Run("creates quiz with subject attached", func(t *testing.T) {
		quiz, err := svc.CreateQuiz(ctx, ownerA, &dto.CreateQuizRequest{Name: "Basics", SubjectID: 1})
		require.NoError(t, err)
		assert.Equal(t, ownerA, quiz.OwnerID)
		require.NotNil(t, quiz.Subject)
		assert.Equal(t, "Computer Science", quiz.Subject.Name)
	})

	t.Run("rejects unknown subject", func(t *testing.T) {
		_, err := svc.CreateQuiz(ctx, ownerA, &dto.CreateQuizRequest{Name: "Basics", SubjectID: 99})
		assert.ErrorIs(t, err, apperrors.ErrSubjectNotFound)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		_, err := svc.CreateQuiz(ctx, ownerA, &dto.CreateQuizRequest{Name: "   ", SubjectID: 1})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestQuizOwnershipScoping(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestQuizService()

	quiz, err := svc.CreateQuiz(ctx, ownerA, &dto.CreateQuizRequest{Name: "Basics", SubjectID: 1})
	require.NoError(t, err)

	t.Run("another teacher cannot read the quiz", func(t *testing.T) {
		_, err := svc.GetQuiz(ctx, quiz.ID, ownerB)
		assert.ErrorIs(t, err, apperrors.ErrQuizNotFound)
	})

	t.Run("another teacher cannot update the quiz", func(t *testing.T) {
		_, err := svc.UpdateQuiz(ctx, quiz.ID, ownerB, &dto.UpdateQuizRequest{Name: "Hijacked", SubjectID: 1})
		assert.ErrorIs(t, err, apperrors.ErrQuizNotFound)
	})

	t.Run("another teacher cannot delete the quiz", func(t *testing.T) {
		_, err := svc.DeleteQuiz(ctx, quiz.ID, ownerB)
		assert.ErrorIs(t, err, apperrors.ErrQuizNotFound)
	})

	t.Run("owner listing excludes other teachers' quizzes", func(t *testing.T) {
		listed, err := svc.ListQuizzes(ctx, ownerB)
		require.NoError(t, err)
		assert.Empty(t, listed)
	})
}

func TestDeleteQuiz(t *testing.T) {
	ctx := context.Background()
	svc, quizStore, _ := newTestQuizService()

	quiz, err := svc.CreateQuiz(ctx, ownerA, &dto.CreateQuizRequest{Name: "Data Structures Basics", SubjectID: 1})
	require.NoError(t, err)

	deleted, err := svc.DeleteQuiz(ctx, quiz.ID, ownerA)
	require.NoError(t, err)
	assert.Contains(t, deleted.Message, "Data Structures Basics")
	assert.NotContains(t, quizStore.quizzes, quiz.ID)
}

func TestQuizResults(t *testing.T) {
	ctx := context.Background()
	svc, quizStore, _ := newTestQuizService()

	quiz, err := svc.CreateQuiz(ctx, ownerA, &dto.CreateQuizRequest{Name: "Basics", SubjectID: 1})
	require.NoError(t, err)

	t.Run("no attempts yields nil average", func(t *testing.T) {
		results, err := svc.GetQuizResults(ctx, quiz.ID, ownerA)
		require.NoError(t, err)
		assert.Zero(t, results.TotalAttempts)
		assert.Nil(t, results.AverageScore)
		assert.Empty(t, results.TakenQuizzes)
	})

	t.Run("aggregates recorded attempts", func(t *testing.T) {
		quizStore.attempts[quiz.ID] = []*models.TakenQuiz{
			{ID: 1, QuizID: quiz.ID, StudentID: 100, Score: 80},
			{ID: 2, QuizID: quiz.ID, StudentID: 101, Score: 60},
		}

		results, err := svc.GetQuizResults(ctx, quiz.ID, ownerA)
		require.NoError(t, err)
		assert.Equal(t, 2, results.TotalAttempts)
		require.NotNil(t, results.AverageScore)
		assert.InDelta(t, 70.0, *results.AverageScore, 0.001)
	})
}

func TestCreateQuestion(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestQuizService()

	quiz, err := svc.CreateQuiz(ctx, ownerA, &dto.CreateQuizRequest{Name: "Basics", SubjectID: 1})
	require.NoError(t, err)

	t.Run("creates question with answers", func(t *testing.T) {
		question, err := svc.CreateQuestion(ctx, quiz.ID, ownerA, &dto.QuestionRequest{
			Text:    "Which structure is LIFO?",
			Answers: validAnswers(),
		})
		require.NoError(t, err)
		assert.Equal(t, quiz.ID, question.QuizID)
		assert.Len(t, question.Answers, 3)
	})

	t.Run("rejects too few answers", func(t *testing.T) {
		_, err := svc.CreateQuestion(ctx, quiz.ID, ownerA, &dto.QuestionRequest{
			Text:    "Lonely question",
			Answers: []dto.AnswerRequest{{Text: "Only one", IsCorrect: true}},
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("rejects answer sets with no correct option", func(t *testing.T) {
		_, err := svc.CreateQuestion(ctx, quiz.ID, ownerA, &dto.QuestionRequest{
			Text: "Unanswerable",
			Answers: []dto.AnswerRequest{
				{Text: "Wrong"},
				{Text: "Also wrong"},
			},
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("rejects more than ten answers", func(t *testing.T) {
		answers := make([]dto.AnswerRequest, 11)
		for i := range answers {
			answers[i] = dto.AnswerRequest{Text: "Option", IsCorrect: i == 0}
		}
		_, err := svc.CreateQuestion(ctx, quiz.ID, ownerA, &dto.QuestionRequest{Text: "Crowded", Answers: answers})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("cannot add question to another teacher's quiz", func(t *testing.T) {
		_, err := svc.CreateQuestion(ctx, quiz.ID, ownerB, &dto.QuestionRequest{
			Text:    "Intruder",
			Answers: validAnswers(),
		})
		assert.ErrorIs(t, err, apperrors.ErrQuizNotFound)
	})
}

func TestUpdateAndDeleteQuestion(t *testing.T) {
	ctx := context.Background()
	svc, _, questionStore := newTestQuizService()

	quiz, err := svc.CreateQuiz(ctx, ownerA, &dto.CreateQuizRequest{Name: "Basics", SubjectID: 1})
	require.NoError(t, err)

	question, err := svc.CreateQuestion(ctx, quiz.ID, ownerA, &dto.QuestionRequest{
		Text:    "Which structure is LIFO?",
		Answers: validAnswers(),
	})
	require.NoError(t, err)

	t.Run("update replaces the answer set", func(t *testing.T) {
		updated, err := svc.UpdateQuestion(ctx, question.ID, ownerA, &dto.QuestionRequest{
			Text: "Which structure is FIFO?",
			Answers: []dto.AnswerRequest{
				{Text: "Queue", IsCorrect: true},
				{Text: "Stack"},
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "Which structure is FIFO?", updated.Text)
		assert.Len(t, updated.Answers, 2)
	})

	t.Run("another teacher cannot update the question", func(t *testing.T) {
		_, err := svc.UpdateQuestion(ctx, question.ID, ownerB, &dto.QuestionRequest{
			Text:    "Hijacked",
			Answers: validAnswers(),
		})
		assert.ErrorIs(t, err, apperrors.ErrQuestionNotFound)
	})

	t.Run("another teacher cannot delete the question", func(t *testing.T) {
		_, err := svc.DeleteQuestion(ctx, question.ID, ownerB)
		assert.ErrorIs(t, err, apperrors.ErrQuestionNotFound)
	})

	t.Run("owner can delete the question", func(t *testing.T) {
		deleted, err := svc.DeleteQuestion(ctx, question.ID, ownerA)
		require.NoError(t, err)
		assert.Contains(t, deleted.Message, "Which structure is FIFO?")
		assert.Equal(t, question.QuizID, deleted.QuizID)
		assert.NotContains(t, questionStore.questions, question.ID)
	})
}
