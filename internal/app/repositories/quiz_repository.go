package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anmol/campushire/internal/app/models"
	"github.com/anmol/campushire/internal/pkg/apperrors"
	"github.com/anmol/campushire/internal/pkg/logger"
)

// QuizRepository handles quiz database operations
type QuizRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewQuizRepository creates a new QuizRepository
func NewQuizRepository(db *pgxpool.Pool) *QuizRepository {
	return &QuizRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ListByOwner returns all quizzes owned by the given teacher, annotated with
// subject details, question count and attempt count.
func (r *QuizRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*models.Quiz, error) {
	sql, args, err := r.sb.Select(
		"q.id", "q.name", "q.subject_id", "q.owner_id",
		"s.name AS subject_name", "s.color AS subject_color",
		"COUNT(DISTINCT qs.id) AS questions_count",
		"COUNT(DISTINCT tq.id) AS taken_count",
	).
		From("quizzes q").
		Join("subjects s ON s.id = q.subject_id").
		LeftJoin("questions qs ON qs.quiz_id = q.id").
		LeftJoin("taken_quizzes tq ON tq.quiz_id = q.id").
		Where(squirrel.Eq{"q.owner_id": ownerID}).
		GroupBy("q.id", "q.name", "q.subject_id", "q.owner_id", "s.name", "s.color").
		OrderBy("q.name ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build quiz list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("ownerID", ownerID).Msg("Error querying quizzes")
		return nil, fmt.Errorf("error listing quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []*models.Quiz
	for rows.Next() {
		quiz := &models.Quiz{Subject: &models.Subject{}}
		err := rows.Scan(
			&quiz.ID, &quiz.Name, &quiz.SubjectID, &quiz.OwnerID,
			&quiz.Subject.Name, &quiz.Subject.Color,
			&quiz.QuestionsCount, &quiz.TakenCount,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning quiz row: %w", err)
		}
		quiz.Subject.ID = quiz.SubjectID
		quizzes = append(quizzes, quiz)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating quiz rows: %w", err)
	}

	return quizzes, nil
}

// GetByIDForOwner returns a quiz only if it belongs to the given owner.
// Quizzes owned by other teachers are indistinguishable from missing ones.
func (r *QuizRepository) GetByIDForOwner(ctx context.Context, id, ownerID int64) (*models.Quiz, error) {
	sql, args, err := r.sb.Select(
		"q.id", "q.name", "q.subject_id", "q.owner_id",
		"s.name AS subject_name", "s.color AS subject_color",
	).
		From("quizzes q").
		Join("subjects s ON s.id = q.subject_id").
		Where(squirrel.Eq{"q.id": id, "q.owner_id": ownerID}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build quiz query: %w", err)
	}

	quiz := &models.Quiz{Subject: &models.Subject{}}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&quiz.ID, &quiz.Name, &quiz.SubjectID, &quiz.OwnerID,
		&quiz.Subject.Name, &quiz.Subject.Color,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuizNotFound
		}
		logger.Error().Err(err).Int64("quizID", id).Msg("Error scanning quiz row")
		return nil, fmt.Errorf("error retrieving quiz: %w", err)
	}
	quiz.Subject.ID = quiz.SubjectID

	return quiz, nil
}

// Create inserts a new quiz and returns it with the generated ID
func (r *QuizRepository) Create(ctx context.Context, quiz *models.Quiz) (*models.Quiz, error) {
	sql, args, err := r.sb.Insert("quizzes").
		Columns("name", "subject_id", "owner_id").
		Values(quiz.Name, quiz.SubjectID, quiz.OwnerID).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build create quiz query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&quiz.ID); err != nil {
		logger.Error().Err(err).Int64("ownerID", quiz.OwnerID).Msg("Error creating quiz")
		return nil, fmt.Errorf("error creating quiz: %w", err)
	}

	return quiz, nil
}

// Update renames or re-subjects a quiz owned by the given teacher
func (r *QuizRepository) Update(ctx context.Context, quiz *models.Quiz) error {
	sql, args, err := r.sb.Update("quizzes").
		Set("name", quiz.Name).
		Set("subject_id", quiz.SubjectID).
		Where(squirrel.Eq{"id": quiz.ID, "owner_id": quiz.OwnerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build update quiz query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("quizID", quiz.ID).Msg("Error updating quiz")
		return fmt.Errorf("error updating quiz: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrQuizNotFound
	}

	return nil
}

// Delete removes a quiz owned by the given teacher. Questions, answers and
// attempts go with it via ON DELETE CASCADE.
func (r *QuizRepository) Delete(ctx context.Context, id, ownerID int64) error {
	sql, args, err := r.sb.Delete("quizzes").
		Where(squirrel.Eq{"id": id, "owner_id": ownerID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build delete quiz query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("quizID", id).Msg("Error deleting quiz")
		return fmt.Errorf("error deleting quiz: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrQuizNotFound
	}

	return nil
}

// ListQuestionsWithAnswerCounts returns the questions of a quiz annotated
// with how many answer options each carries.
func (r *QuizRepository) ListQuestionsWithAnswerCounts(ctx context.Context, quizID int64) ([]*models.Question, error) {
	sql, args, err := r.sb.Select(
		"qs.id", "qs.quiz_id", "qs.text",
		"COUNT(a.id) AS answers_count",
	).
		From("questions qs").
		LeftJoin("answers a ON a.question_id = qs.id").
		Where(squirrel.Eq{"qs.quiz_id": quizID}).
		GroupBy("qs.id", "qs.quiz_id", "qs.text").
		OrderBy("qs.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build question list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("quizID", quizID).Msg("Error querying questions")
		return nil, fmt.Errorf("error listing questions: %w", err)
	}
	defer rows.Close()

	var questions []*models.Question
	for rows.Next() {
		question := &models.Question{}
		if err := rows.Scan(&question.ID, &question.QuizID, &question.Text, &question.AnswersCount); err != nil {
			return nil, fmt.Errorf("error scanning question row: %w", err)
		}
		questions = append(questions, question)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating question rows: %w", err)
	}

	return questions, nil
}

// ListAttempts returns all recorded attempts for a quiz, most recent first,
// annotated with the student's display name.
func (r *QuizRepository) ListAttempts(ctx context.Context, quizID int64) ([]*models.TakenQuiz, error) {
	sql, args, err := r.sb.Select(
		"tq.id", "tq.quiz_id", "tq.student_id", "tq.score", "tq.date",
		"u.first_name || ' ' || u.last_name AS student_name",
	).
		From("taken_quizzes tq").
		Join("users u ON u.id = tq.student_id").
		Where(squirrel.Eq{"tq.quiz_id": quizID}).
		OrderBy("tq.date DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build attempts query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("quizID", quizID).Msg("Error querying quiz attempts")
		return nil, fmt.Errorf("error listing quiz attempts: %w", err)
	}
	defer rows.Close()

	var attempts []*models.TakenQuiz
	for rows.Next() {
		attempt := &models.TakenQuiz{}
		err := rows.Scan(
			&attempt.ID, &attempt.QuizID, &attempt.StudentID,
			&attempt.Score, &attempt.Date, &attempt.StudentName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning attempt row: %w", err)
		}
		attempts = append(attempts, attempt)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating attempt rows: %w", err)
	}

	return attempts, nil
}

// GetAttemptStats returns the attempt count and average score for a quiz.
// The average is nil when the quiz has never been taken.
func (r *QuizRepository) GetAttemptStats(ctx context.Context, quizID int64) (int, *float64, error) {
	sql, args, err := r.sb.Select("COUNT(*)", "AVG(score)").
		From("taken_quizzes").
		Where(squirrel.Eq{"quiz_id": quizID}).
		ToSql()

	if err != nil {
		return 0, nil, fmt.Errorf("failed to build attempt stats query: %w", err)
	}

	var count int
	var average *float64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count, &average); err != nil {
		logger.Error().Err(err).Int64("quizID", quizID).Msg("Error scanning attempt stats")
		return 0, nil, fmt.Errorf("error retrieving attempt stats: %w", err)
	}

	return count, average, nil
}
