package services

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anmol/campushire/internal/app/models"
	"github.com/anmol/campushire/internal/app/models/dto"
	"github.com/anmol/campushire/internal/pkg/apperrors"
)

type appliedKey struct {
	jobID     int64
	studentID int64
}

type fakeJobStore struct {
	jobs         map[int64]*models.Job
	applications map[appliedKey]*models.JobApplication
	nextID       int64
}

func newFakeJobStore() *fakeJobStore {
	return &fakeJobStore{
		jobs:         map[int64]*models.Job{},
		applications: map[appliedKey]*models.JobApplication{},
		nextID:       1,
	}
}

func (s *fakeJobStore) Create(ctx context.Context, job *models.Job) error {
	job.ID = s.nextID
	s.nextID++
	job.CreatedAt = time.Now()
	s.jobs[job.ID] = job
	return nil
}

func (s *fakeJobStore) ListByOwner(ctx context.Context, userID int64) ([]*models.Job, error) {
	var owned []*models.Job
	for _, job := range s.jobs {
		if job.UserID == userID {
			owned = append(owned, job)
		}
	}
	return owned, nil
}

func (s *fakeJobStore) GetByIDForOwner(ctx context.Context, id, userID int64) (*models.Job, error) {
	job, ok := s.jobs[id]
	if !ok || job.UserID != userID {
		return nil, apperrors.ErrJobNotFound
	}
	return job, nil
}

func (s *fakeJobStore) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	job, ok := s.jobs[id]
	if !ok {
		return nil, apperrors.ErrJobNotFound
	}
	return job, nil
}

func (s *fakeJobStore) ListOpen(ctx context.Context, now time.Time, offset uint64, limit int) ([]*models.Job, int64, error) {
	var open []*models.Job
	for _, job := range s.jobs {
		if !job.ApplyDeadline.Before(now) {
			open = append(open, job)
		}
	}
	sort.Slice(open, func(i, j int) bool { return open[i].ID > open[j].ID })

	total := int64(len(open))
	if int(offset) >= len(open) {
		return nil, total, nil
	}
	open = open[offset:]
	if len(open) > limit {
		open = open[:limit]
	}
	return open, total, nil
}

func (s *fakeJobStore) ListApplicants(ctx context.Context, jobID int64) ([]*models.JobApplication, error) {
	var applicants []*models.JobApplication
	for _, application := range s.applications {
		if application.JobID == jobID {
			applicants = append(applicants, application)
		}
	}
	return applicants, nil
}

func (s *fakeJobStore) CreateApplication(ctx context.Context, application *models.JobApplication) error {
	key := appliedKey{jobID: application.JobID, studentID: application.StudentID}
	if _, exists := s.applications[key]; exists {
		return apperrors.ErrAlreadyApplied
	}
	application.ID = s.nextID
	s.nextID++
	application.AppliedAt = time.Now()
	s.applications[key] = application
	return nil
}

func jobRequest() *dto.PostJobRequest {
	now := time.Now()
	return &dto.PostJobRequest{
		DateOfPosting:  now,
		Offer:          "Full time",
		PrimaryProfile: "Backend Engineer",
		Location:       "Remote",
		Positions:      3,
		ApplyDeadline:  now.Add(14 * 24 * time.Hour),
		DriveDate:      now.Add(30 * 24 * time.Hour),
		Package:        "12 LPA",
		MinCPI:         6.5,
	}
}

func setupJobService(t *testing.T) (JobService, *fakeJobStore, *fakeProfileStore) {
	t.Helper()
	jobStore := newFakeJobStore()
	profileStore := newFakeProfileStore()
	svc := NewJobService(jobStore, profileStore, zerolog.Nop())
	return svc, jobStore, profileStore
}

func completeOnboarding(t *testing.T, profileStore *fakeProfileStore, userID int64, orgName string) {
	t.Helper()
	ctx := context.Background()
	onboarding := NewOnboardingService(profileStore, zerolog.Nop())
	_, err := onboarding.CreateOrganization(ctx, userID, orgRequest(orgName))
	require.NoError(t, err)
	_, err = onboarding.CreatePersonalDetails(ctx, userID, personalRequest())
	require.NoError(t, err)
}

func TestPostJob(t *testing.T) {
	ctx := context.Background()

	t.Run("requires completed onboarding", func(t *testing.T) {
		svc, _, _ := setupJobService(t)

		_, err := svc.PostJob(ctx, recruiterID, jobRequest())
		assert.ErrorIs(t, err, apperrors.ErrOnboardingIncomplete)
	})

	t.Run("snapshots the organization ID from personal details", func(t *testing.T) {
		svc, _, profileStore := setupJobService(t)
		completeOnboarding(t, profileStore, recruiterID, "Acme Systems")

		job, err := svc.PostJob(ctx, recruiterID, jobRequest())
		require.NoError(t, err)
		assert.Equal(t, profileStore.personal[recruiterID].OrganizationID, job.OrganizationID)
		assert.Equal(t, recruiterID, job.UserID)
	})

	t.Run("job keeps its organization ID after personal details change", func(t *testing.T) {
		svc, jobStore, profileStore := setupJobService(t)
		completeOnboarding(t, profileStore, recruiterID, "Acme Systems")

		job, err := svc.PostJob(ctx, recruiterID, jobRequest())
		require.NoError(t, err)
		snapshotted := job.OrganizationID

		profileStore.personal[recruiterID].OrganizationID = snapshotted + 100

		stored, err := jobStore.GetByIDForOwner(ctx, job.ID, recruiterID)
		require.NoError(t, err)
		assert.Equal(t, snapshotted, stored.OrganizationID)
	})

	t.Run("rejects deadline before posting date", func(t *testing.T) {
		svc, _, profileStore := setupJobService(t)
		completeOnboarding(t, profileStore, recruiterID, "Acme Systems")

		req := jobRequest()
		req.ApplyDeadline = req.DateOfPosting.Add(-time.Hour)
		_, err := svc.PostJob(ctx, recruiterID, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("rejects CPI out of range", func(t *testing.T) {
		svc, _, profileStore := setupJobService(t)
		completeOnboarding(t, profileStore, recruiterID, "Acme Systems")

		req := jobRequest()
		req.MinCPI = 11
		_, err := svc.PostJob(ctx, recruiterID, req)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestListPostedJobs(t *testing.T) {
	ctx := context.Background()
	svc, _, profileStore := setupJobService(t)

	const otherRecruiterID = recruiterID + 1
	completeOnboarding(t, profileStore, recruiterID, "Acme Systems")
	completeOnboarding(t, profileStore, otherRecruiterID, "Globex Corp")

	mine, err := svc.PostJob(ctx, recruiterID, jobRequest())
	require.NoError(t, err)
	_, err = svc.PostJob(ctx, otherRecruiterID, jobRequest())
	require.NoError(t, err)

	jobs, err := svc.ListPostedJobs(ctx, recruiterID)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, mine.ID, jobs[0].ID)
}

func TestGetApplicants(t *testing.T) {
	ctx := context.Background()
	svc, _, profileStore := setupJobService(t)
	completeOnboarding(t, profileStore, recruiterID, "Acme Systems")

	job, err := svc.PostJob(ctx, recruiterID, jobRequest())
	require.NoError(t, err)

	const studentID int64 = 500
	_, err = svc.Apply(ctx, job.ID, studentID)
	require.NoError(t, err)

	t.Run("owner sees applicants", func(t *testing.T) {
		resp, err := svc.GetApplicants(ctx, job.ID, recruiterID)
		require.NoError(t, err)
		require.Len(t, resp.Applicants, 1)
		assert.Equal(t, studentID, resp.Applicants[0].StudentID)
	})

	t.Run("another recruiter gets not found, not forbidden", func(t *testing.T) {
		_, err := svc.GetApplicants(ctx, job.ID, recruiterID+1)
		assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
	})
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	svc, jobStore, profileStore := setupJobService(t)
	completeOnboarding(t, profileStore, recruiterID, "Acme Systems")

	job, err := svc.PostJob(ctx, recruiterID, jobRequest())
	require.NoError(t, err)

	const studentID int64 = 500

	t.Run("records the application", func(t *testing.T) {
		application, err := svc.Apply(ctx, job.ID, studentID)
		require.NoError(t, err)
		assert.Equal(t, job.ID, application.JobID)
		assert.Equal(t, studentID, application.StudentID)
	})

	t.Run("second application is rejected and the first stands", func(t *testing.T) {
		_, err := svc.Apply(ctx, job.ID, studentID)
		assert.ErrorIs(t, err, apperrors.ErrAlreadyApplied)

		applicants, err := jobStore.ListApplicants(ctx, job.ID)
		require.NoError(t, err)
		assert.Len(t, applicants, 1)
	})

	t.Run("rejects applications after the deadline", func(t *testing.T) {
		expired := jobRequest()
		expired.DateOfPosting = time.Now().Add(-48 * time.Hour)
		expired.ApplyDeadline = time.Now().Add(-24 * time.Hour)
		expiredJob, err := svc.PostJob(ctx, recruiterID, expired)
		require.NoError(t, err)

		_, err = svc.Apply(ctx, expiredJob.ID, studentID)
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})

	t.Run("unknown job yields not found", func(t *testing.T) {
		_, err := svc.Apply(ctx, 9999, studentID)
		assert.ErrorIs(t, err, apperrors.ErrJobNotFound)
	})
}

func TestListOpenJobs(t *testing.T) {
	ctx := context.Background()
	svc, _, profileStore := setupJobService(t)
	completeOnboarding(t, profileStore, recruiterID, "Acme Systems")

	var openIDs []int64
	for i := 0; i < 3; i++ {
		job, err := svc.PostJob(ctx, recruiterID, jobRequest())
		require.NoError(t, err)
		openIDs = append(openIDs, job.ID)
	}

	expired := jobRequest()
	expired.DateOfPosting = time.Now().Add(-48 * time.Hour)
	expired.ApplyDeadline = time.Now().Add(-24 * time.Hour)
	expiredJob, err := svc.PostJob(ctx, recruiterID, expired)
	require.NoError(t, err)

	t.Run("expired jobs are filtered out", func(t *testing.T) {
		page, err := svc.ListOpenJobs(ctx, 1, 10)
		require.NoError(t, err)

		jobs := page.Items.([]*models.Job)
		require.Len(t, jobs, 3)
		for _, job := range jobs {
			assert.NotEqual(t, expiredJob.ID, job.ID)
		}
		assert.Equal(t, int64(3), page.Pagination.TotalItems)
	})

	t.Run("pages slice the listing", func(t *testing.T) {
		first, err := svc.ListOpenJobs(ctx, 1, 2)
		require.NoError(t, err)
		require.Len(t, first.Items.([]*models.Job), 2)
		assert.Equal(t, 2, first.Pagination.TotalPages)
		assert.Equal(t, int64(3), first.Pagination.TotalItems)

		second, err := svc.ListOpenJobs(ctx, 2, 2)
		require.NoError(t, err)
		require.Len(t, second.Items.([]*models.Job), 1)
		assert.Equal(t, 2, second.Pagination.CurrentPage)
	})

	t.Run("newest posting leads the listing", func(t *testing.T) {
		page, err := svc.ListOpenJobs(ctx, 1, 1)
		require.NoError(t, err)

		jobs := page.Items.([]*models.Job)
		require.Len(t, jobs, 1)
		assert.Equal(t, openIDs[len(openIDs)-1], jobs[0].ID)
	})
}
