package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/anmol/campushire/internal/app/models"
	"github.com/anmol/campushire/internal/db"
	"github.com/anmol/campushire/internal/pkg/apperrors"
	"github.com/anmol/campushire/internal/pkg/logger"
)

// QuestionRepository handles question and answer database operations.
// Question writes always touch the answers table too, so this repository
// holds the wrapped database rather than the bare pool.
type QuestionRepository struct {
	database *db.PostgresDB
	sb       squirrel.StatementBuilderType
}

// NewQuestionRepository creates a new QuestionRepository
func NewQuestionRepository(database *db.PostgresDB) *QuestionRepository {
	return &QuestionRepository{
		database: database,
		sb:       squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// ownedQuizFilter restricts a question query to quizzes owned by the teacher
func (r *QuestionRepository) ownedQuizFilter(ownerID int64) squirrel.Sqlizer {
	return squirrel.Expr("quiz_id IN (SELECT id FROM quizzes WHERE owner_id = ?)", ownerID)
}

// GetForOwner returns a question with its answers, but only when the
// enclosing quiz belongs to the given teacher.
func (r *QuestionRepository) GetForOwner(ctx context.Context, id, ownerID int64) (*models.Question, error) {
	sql, args, err := r.sb.Select("id", "quiz_id", "text").
		From("questions").
		Where(squirrel.Eq{"id": id}).
		Where(r.ownedQuizFilter(ownerID)).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build question query: %w", err)
	}

	question := &models.Question{}
	err = r.database.Pool.QueryRow(ctx, sql, args...).Scan(&question.ID, &question.QuizID, &question.Text)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrQuestionNotFound
		}
		logger.Error().Err(err).Int64("questionID", id).Msg("Error scanning question row")
		return nil, fmt.Errorf("error retrieving question: %w", err)
	}

	answers, err := r.listAnswers(ctx, question.ID)
	if err != nil {
		return nil, err
	}
	question.Answers = answers

	return question, nil
}

// CreateWithAnswers inserts a question and its answer options atomically
func (r *QuestionRepository) CreateWithAnswers(ctx context.Context, question *models.Question) error {
	return r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Insert("questions").
			Columns("quiz_id", "text").
			Values(question.QuizID, question.Text).
			Suffix("RETURNING id").
			ToSql()

		if err != nil {
			return fmt.Errorf("failed to build create question query: %w", err)
		}

		if err := tx.QueryRow(ctx, sql, args...).Scan(&question.ID); err != nil {
			logger.Error().Err(err).Int64("quizID", question.QuizID).Msg("Error creating question")
			return fmt.Errorf("error creating question: %w", err)
		}

		return r.insertAnswers(ctx, tx, question)
	})
}

// UpdateWithAnswers rewrites a question's text and replaces its answer set
// atomically. The old answers are dropped rather than diffed.
func (r *QuestionRepository) UpdateWithAnswers(ctx context.Context, question *models.Question) error {
	return r.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Update("questions").
			Set("text", question.Text).
			Where(squirrel.Eq{"id": question.ID}).
			ToSql()

		if err != nil {
			return fmt.Errorf("failed to build update question query: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			logger.Error().Err(err).Int64("questionID", question.ID).Msg("Error updating question")
			return fmt.Errorf("error updating question: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrQuestionNotFound
		}

		sql, args, err = r.sb.Delete("answers").
			Where(squirrel.Eq{"question_id": question.ID}).
			ToSql()

		if err != nil {
			return fmt.Errorf("failed to build delete answers query: %w", err)
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("error replacing answers: %w", err)
		}

		return r.insertAnswers(ctx, tx, question)
	})
}

// DeleteForOwner removes a question when the enclosing quiz belongs to the
// given teacher. Answers cascade.
func (r *QuestionRepository) DeleteForOwner(ctx context.Context, id, ownerID int64) error {
	sql, args, err := r.sb.Delete("questions").
		Where(squirrel.Eq{"id": id}).
		Where(r.ownedQuizFilter(ownerID)).
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build delete question query: %w", err)
	}

	cmdTag, err := r.database.Pool.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("questionID", id).Msg("Error deleting question")
		return fmt.Errorf("error deleting question: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrQuestionNotFound
	}

	return nil
}

func (r *QuestionRepository) insertAnswers(ctx context.Context, tx pgx.Tx, question *models.Question) error {
	builder := r.sb.Insert("answers").Columns("question_id", "text", "is_correct")
	for _, answer := range question.Answers {
		builder = builder.Values(question.ID, answer.Text, answer.IsCorrect)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert answers query: %w", err)
	}

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		logger.Error().Err(err).Int64("questionID", question.ID).Msg("Error inserting answers")
		return fmt.Errorf("error inserting answers: %w", err)
	}

	return nil
}

func (r *QuestionRepository) listAnswers(ctx context.Context, questionID int64) ([]models.Answer, error) {
	sql, args, err := r.sb.Select("id", "question_id", "text", "is_correct").
		From("answers").
		Where(squirrel.Eq{"question_id": questionID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build answers query: %w", err)
	}

	rows, err := r.database.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing answers: %w", err)
	}
	defer rows.Close()

	var answers []models.Answer
	for rows.Next() {
		var answer models.Answer
		if err := rows.Scan(&answer.ID, &answer.QuestionID, &answer.Text, &answer.IsCorrect); err != nil {
			return nil, fmt.Errorf("error scanning answer row: %w", err)
		}
		answers = append(answers, answer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating answer rows: %w", err)
	}

	return answers, nil
}
