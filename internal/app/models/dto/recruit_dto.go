package dto

import (
	"time"

	"github.com/anmol/campushire/internal/app/models"
)

// CreateOrganizationRequest is step 1 of recruiter onboarding
type CreateOrganizationRequest struct {
	Name        string  `json:"name" binding:"required"`
	Email       *string `json:"email,omitempty" binding:"omitempty,email"`
	Description string  `json:"description"`
}

// CreatePersonalDetailsRequest is step 2 of recruiter onboarding
type CreatePersonalDetailsRequest struct {
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
	Mobile    int64   `json:"mobile" binding:"required"`
}

// PostJobRequest is step 3 of recruiter onboarding: a job posting
type PostJobRequest struct {
	DateOfPosting      time.Time `json:"dateOfPosting" binding:"required"`
	Offer              string    `json:"offer" binding:"required"`
	PrimaryProfile     string    `json:"primaryProfile" binding:"required"`
	Location           string    `json:"location" binding:"required"`
	Positions          int       `json:"positions" binding:"required,min=1"`
	ApplyDeadline      time.Time `json:"applyDeadline" binding:"required"`
	DriveDate          time.Time `json:"driveDate" binding:"required"`
	OrganizationSector string    `json:"organizationSector"`
	Description        string    `json:"description"`
	Package            string    `json:"package" binding:"required"`
	RequiredSkills     string    `json:"requiredSkills"`
	MinCPI             float64   `json:"minCpi" binding:"min=0,max=10"`
	SelectionProcess   string    `json:"selectionProcess"`
	OtherDetails       string    `json:"otherDetails"`
}

// OnboardingStateResponse reports which recruiter onboarding steps are done
type OnboardingStateResponse struct {
	OrganizationDone    bool                        `json:"organizationDone"`
	PersonalDetailsDone bool                        `json:"personalDetailsDone"`
	Organization        *models.OrganizationDetails `json:"organization,omitempty"`
	PersonalDetails     *models.PersonalDetails     `json:"personalDetails,omitempty"`
}

// ApplicantsResponse lists the applications for one job
type ApplicantsResponse struct {
	Job        models.Job              `json:"job"`
	Applicants []models.JobApplication `json:"applicants"`
}
