package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anmol/campushire/internal/app/controllers"
	"github.com/anmol/campushire/internal/app/models"
	"github.com/anmol/campushire/internal/middleware"
	"github.com/anmol/campushire/internal/pkg/metrics"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	quizController *controllers.QuizController,
	onboardingController *controllers.OnboardingController,
	jobController *controllers.JobController,
	authMiddleware *middleware.AuthMiddleware,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/register", authController.Register)
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
	}

	// Subjects are public reference data
	v1.GET("/subjects", quizController.ListSubjects)

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())

	// Quiz authoring, teacher role only. Every route is additionally scoped
	// to the caller's own quizzes inside the service layer.
	quizzes := authenticated.Group("/quizzes")
	quizzes.Use(authMiddleware.RoleRequired(models.RoleTeacher))
	{
		quizzes.GET("", quizController.ListQuizzes)
		quizzes.POST("", quizController.CreateQuiz)
		quizzes.GET("/:id", quizController.GetQuiz)
		quizzes.PUT("/:id", quizController.UpdateQuiz)
		quizzes.DELETE("/:id", quizController.DeleteQuiz)
		quizzes.GET("/:id/results", quizController.GetQuizResults)
		quizzes.POST("/:id/questions", quizController.CreateQuestion)
	}

	questions := authenticated.Group("/questions")
	questions.Use(authMiddleware.RoleRequired(models.RoleTeacher))
	{
		questions.PUT("/:id", quizController.UpdateQuestion)
		questions.DELETE("/:id", quizController.DeleteQuestion)
	}

	// Recruiter onboarding rides on the teacher role: teacher accounts
	// double as recruiter accounts.
	recruiter := authenticated.Group("/recruiter")
	recruiter.Use(authMiddleware.RoleRequired(models.RoleTeacher))
	{
		recruiter.GET("/onboarding", onboardingController.GetOnboardingState)
		recruiter.POST("/organization", onboardingController.CreateOrganization)
		recruiter.POST("/personal", onboardingController.CreatePersonalDetails)
		recruiter.POST("/jobs", jobController.PostJob)
		recruiter.GET("/jobs", jobController.ListPostedJobs)
		recruiter.GET("/jobs/:id/applicants", jobController.GetApplicants)
	}

	// Student-facing job board
	jobs := authenticated.Group("/jobs")
	jobs.Use(authMiddleware.RoleRequired(models.RoleStudent))
	{
		jobs.GET("", jobController.ListOpenJobs)
		jobs.POST("/:id/apply", jobController.Apply)
	}
}
