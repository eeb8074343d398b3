package seed

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// defaultSubjects seeds the subject catalogue teachers pick from when
// creating quizzes. ON CONFLICT keeps reruns idempotent.
var defaultSubjects = []struct {
	Name  string
	Color string
}{
	{"Computer Science", "#007bff"},
	{"Mathematics", "#28a745"},
	{"Physics", "#6f42c1"},
	{"Chemistry", "#fd7e14"},
	{"Biology", "#20c997"},
	{"English", "#dc3545"},
	{"History", "#795548"},
	{"Geography", "#17a2b8"},
}

// CreateDefaultData inserts the default subject catalogue if missing
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	lgr.Info().Msg("Checking/Creating default data (Subjects)...")

	for _, subject := range defaultSubjects {
		_, err := dbPool.Exec(ctx,
			`INSERT INTO subjects (name, color) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
			subject.Name, subject.Color,
		)
		if err != nil {
			lgr.Error().Err(err).Str("subject", subject.Name).Msg("Error seeding subject")
			return err
		}
	}

	lgr.Info().Int("subjects", len(defaultSubjects)).Msg("Default subjects ensured")
	return nil
}
