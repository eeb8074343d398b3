package repositories

import (
	"github.com/anmol/campushire/internal/db"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository     *UserRepository
	TokenRepository    *TokenRepository
	SubjectRepository  *SubjectRepository
	QuizRepository     *QuizRepository
	QuestionRepository *QuestionRepository
	ProfileRepository  *ProfileRepository
	JobRepository      *JobRepository
}

// NewRepositories initializes all repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	pool := database.Pool
	return &Repositories{
		UserRepository:     NewUserRepository(pool),
		TokenRepository:    NewTokenRepository(pool),
		SubjectRepository:  NewSubjectRepository(pool),
		QuizRepository:     NewQuizRepository(pool),
		QuestionRepository: NewQuestionRepository(database),
		ProfileRepository:  NewProfileRepository(pool),
		JobRepository:      NewJobRepository(pool),
	}
}
