package models

// RoleType defines the user role type
type RoleType string

const (
	// RoleStudent takes quizzes and applies to jobs
	RoleStudent RoleType = "STUDENT"
	// RoleTeacher authors quizzes and doubles as a recruiter
	RoleTeacher RoleType = "TEACHER"
)
