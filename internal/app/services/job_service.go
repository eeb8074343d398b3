package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/anmol/campushire/internal/app/models"
	"github.com/anmol/campushire/internal/app/models/dto"
	"github.com/anmol/campushire/internal/pkg/apperrors"
	"github.com/anmol/campushire/internal/pkg/helpers"
)

// JobStore is the job posting and application persistence surface
type JobStore interface {
	Create(ctx context.Context, job *models.Job) error
	ListByOwner(ctx context.Context, userID int64) ([]*models.Job, error)
	GetByIDForOwner(ctx context.Context, id, userID int64) (*models.Job, error)
	GetByID(ctx context.Context, id int64) (*models.Job, error)
	ListOpen(ctx context.Context, now time.Time, offset uint64, limit int) ([]*models.Job, int64, error)
	ListApplicants(ctx context.Context, jobID int64) ([]*models.JobApplication, error)
	CreateApplication(ctx context.Context, application *models.JobApplication) error
}

// JobService handles recruiter job postings and student applications
type JobService interface {
	PostJob(ctx context.Context, userID int64, req *dto.PostJobRequest) (*models.Job, error)
	ListPostedJobs(ctx context.Context, userID int64) ([]*models.Job, error)
	GetApplicants(ctx context.Context, jobID, userID int64) (*dto.ApplicantsResponse, error)
	ListOpenJobs(ctx context.Context, page, size int) (*dto.PaginatedResponse, error)
	Apply(ctx context.Context, jobID, studentID int64) (*models.JobApplication, error)
}

type jobService struct {
	jobStore     JobStore
	profileStore ProfileStore
	logger       zerolog.Logger
	now          func() time.Time
}

// NewJobService creates a new JobService
func NewJobService(jobStore JobStore, profileStore ProfileStore, logger zerolog.Logger) JobService {
	return &jobService{
		jobStore:     jobStore,
		profileStore: profileStore,
		logger:       logger,
		now:          time.Now,
	}
}

// PostJob publishes a job posting, step 3 of onboarding. Personal and
// organizational details must be filled in first; the organization ID is
// copied from the personal record at creation time and never re-linked.
func (s *jobService) PostJob(ctx context.Context, userID int64, req *dto.PostJobRequest) (*models.Job, error) {
	if err := s.validateJobRequest(req); err != nil {
		return nil, err
	}

	details, err := s.profileStore.GetPersonalDetailsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	job := &models.Job{
		UserID:             userID,
		OrganizationID:     details.OrganizationID,
		DateOfPosting:      req.DateOfPosting,
		Offer:              strings.TrimSpace(req.Offer),
		PrimaryProfile:     strings.TrimSpace(req.PrimaryProfile),
		Location:           strings.TrimSpace(req.Location),
		Positions:          req.Positions,
		ApplyDeadline:      req.ApplyDeadline,
		DriveDate:          req.DriveDate,
		OrganizationSector: strings.TrimSpace(req.OrganizationSector),
		Description:        strings.TrimSpace(req.Description),
		Package:            strings.TrimSpace(req.Package),
		RequiredSkills:     strings.TrimSpace(req.RequiredSkills),
		MinCPI:             req.MinCPI,
		SelectionProcess:   strings.TrimSpace(req.SelectionProcess),
		OtherDetails:       strings.TrimSpace(req.OtherDetails),
	}

	if err := s.jobStore.Create(ctx, job); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("jobID", job.ID).Int64("userID", userID).Str("profile", job.PrimaryProfile).Msg("Job posted")

	return job, nil
}

// ListPostedJobs returns the recruiter's own postings
func (s *jobService) ListPostedJobs(ctx context.Context, userID int64) ([]*models.Job, error) {
	return s.jobStore.ListByOwner(ctx, userID)
}

// GetApplicants returns the applications for one of the recruiter's postings.
// Jobs posted by other recruiters look exactly like missing jobs.
func (s *jobService) GetApplicants(ctx context.Context, jobID, userID int64) (*dto.ApplicantsResponse, error) {
	job, err := s.jobStore.GetByIDForOwner(ctx, jobID, userID)
	if err != nil {
		return nil, err
	}

	applicants, err := s.jobStore.ListApplicants(ctx, job.ID)
	if err != nil {
		return nil, err
	}

	response := &dto.ApplicantsResponse{
		Job:        *job,
		Applicants: make([]models.JobApplication, 0, len(applicants)),
	}
	for _, applicant := range applicants {
		response.Applicants = append(response.Applicants, *applicant)
	}

	return response, nil
}

// ListOpenJobs returns one page of the postings students may still apply to
func (s *jobService) ListOpenJobs(ctx context.Context, page, size int) (*dto.PaginatedResponse, error) {
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	jobs, total, err := s.jobStore.ListOpen(ctx, s.now(), offset, limit)
	if err != nil {
		return nil, err
	}

	return &dto.PaginatedResponse{
		Items:      jobs,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}, nil
}

// Apply records a student's application to a job. Applying twice is rejected
// by the database constraint, and the original application stands.
func (s *jobService) Apply(ctx context.Context, jobID, studentID int64) (*models.JobApplication, error) {
	job, err := s.jobStore.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if s.now().After(job.ApplyDeadline) {
		return nil, fmt.Errorf("%w: the application deadline has passed", apperrors.ErrValidationFailed)
	}

	application := &models.JobApplication{
		JobID:     job.ID,
		StudentID: studentID,
	}

	if err := s.jobStore.CreateApplication(ctx, application); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("jobID", jobID).Int64("studentID", studentID).Msg("Job application recorded")

	return application, nil
}

func (s *jobService) validateJobRequest(req *dto.PostJobRequest) error {
	if strings.TrimSpace(req.PrimaryProfile) == "" {
		return fmt.Errorf("%w: primary profile cannot be empty", apperrors.ErrValidationFailed)
	}
	if req.Positions < 1 {
		return fmt.Errorf("%w: at least one position is required", apperrors.ErrValidationFailed)
	}
	if req.MinCPI < 0 || req.MinCPI > 10 {
		return fmt.Errorf("%w: minimum CPI must be between 0 and 10", apperrors.ErrValidationFailed)
	}
	if req.ApplyDeadline.Before(req.DateOfPosting) {
		return fmt.Errorf("%w: apply deadline cannot precede the posting date", apperrors.ErrValidationFailed)
	}
	return nil
}
