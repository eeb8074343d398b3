package models

import (
	"time"
)

// OrganizationDetails defines the recruiter's organization record, based on
// the 'organization_details' table. At most one per user, enforced by a
// UNIQUE constraint on user_id.
type OrganizationDetails struct {
	ID          int64   `json:"id" db:"id"`
	UserID      int64   `json:"userId" db:"user_id"`
	Name        string  `json:"name" db:"name" example:"Acme Systems"`
	Email       *string `json:"email,omitempty" db:"email"`
	Description string  `json:"description" db:"description"`
}

// PersonalDetails defines the recruiter's personal record, based on the
// 'personal_details' table. At most one per user; references the user's
// organization.
type PersonalDetails struct {
	ID             int64   `json:"id" db:"id"`
	UserID         int64   `json:"userId" db:"user_id"`
	FirstName      string  `json:"firstName" db:"first_name"`
	LastName       string  `json:"lastName" db:"last_name"`
	Email          *string `json:"email,omitempty" db:"email"`
	Mobile         int64   `json:"mobile" db:"mobile"`
	OrganizationID int64   `json:"organizationId" db:"organization_id"`
}

// Job defines a job posting based on the 'jobs' table. OrganizationID is
// copied from the poster's personal details at creation time, not live-linked.
type Job struct {
	ID                 int64     `json:"id" db:"id"`
	UserID             int64     `json:"userId" db:"user_id"`
	OrganizationID     int64     `json:"organizationId" db:"organization_id"`
	DateOfPosting      time.Time `json:"dateOfPosting" db:"date_of_posting"`
	Offer              string    `json:"offer" db:"offer"`
	PrimaryProfile     string    `json:"primaryProfile" db:"primary_profile" example:"Backend Engineer"`
	Location           string    `json:"location" db:"location"`
	Positions          int       `json:"positions" db:"positions"`
	ApplyDeadline      time.Time `json:"applyDeadline" db:"apply_deadline"`
	DriveDate          time.Time `json:"driveDate" db:"drive_date"`
	OrganizationSector string    `json:"organizationSector" db:"organization_sector"`
	Description        string    `json:"description" db:"description"`
	Package            string    `json:"package" db:"package" example:"12 LPA"`
	RequiredSkills     string    `json:"requiredSkills" db:"required_skills"`
	MinCPI             float64   `json:"minCpi" db:"min_cpi"`
	SelectionProcess   string    `json:"selectionProcess" db:"selection_process"`
	OtherDetails       string    `json:"otherDetails" db:"other_details"`
	CreatedAt          time.Time `json:"createdAt" db:"created_at"`

	OrganizationName string `json:"organizationName,omitempty"`
}

// JobApplication records one student's application to one job, based on the
// 'job_applications' table ("TakenJob" in the legacy schema).
type JobApplication struct {
	ID        int64     `json:"id" db:"id"`
	JobID     int64     `json:"jobId" db:"job_id"`
	StudentID int64     `json:"studentId" db:"student_id"`
	AppliedAt time.Time `json:"appliedAt" db:"applied_at"`

	StudentName  string `json:"studentName,omitempty"`
	StudentEmail string `json:"studentEmail,omitempty"`
}
