package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anmol/campushire/internal/app/models"
	"github.com/anmol/campushire/internal/pkg/apperrors"
	"github.com/anmol/campushire/internal/pkg/dberrors"
	"github.com/anmol/campushire/internal/pkg/logger"
)

// JobRepository handles job posting and application database operations
type JobRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewJobRepository creates a new JobRepository
func NewJobRepository(db *pgxpool.Pool) *JobRepository {
	return &JobRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var jobColumns = []string{
	"id", "user_id", "organization_id", "date_of_posting", "offer",
	"primary_profile", "location", "positions", "apply_deadline", "drive_date",
	"organization_sector", "description", "package", "required_skills",
	"min_cpi", "selection_process", "other_details", "created_at",
}

func scanJob(row pgx.Row, job *models.Job) error {
	return row.Scan(
		&job.ID, &job.UserID, &job.OrganizationID, &job.DateOfPosting, &job.Offer,
		&job.PrimaryProfile, &job.Location, &job.Positions, &job.ApplyDeadline, &job.DriveDate,
		&job.OrganizationSector, &job.Description, &job.Package, &job.RequiredSkills,
		&job.MinCPI, &job.SelectionProcess, &job.OtherDetails, &job.CreatedAt,
	)
}

// Create inserts a new job posting and returns it with the generated ID
func (r *JobRepository) Create(ctx context.Context, job *models.Job) error {
	sql, args, err := r.sb.Insert("jobs").
		Columns(
			"user_id", "organization_id", "date_of_posting", "offer",
			"primary_profile", "location", "positions", "apply_deadline", "drive_date",
			"organization_sector", "description", "package", "required_skills",
			"min_cpi", "selection_process", "other_details",
		).
		Values(
			job.UserID, job.OrganizationID, job.DateOfPosting, job.Offer,
			job.PrimaryProfile, job.Location, job.Positions, job.ApplyDeadline, job.DriveDate,
			job.OrganizationSector, job.Description, job.Package, job.RequiredSkills,
			job.MinCPI, job.SelectionProcess, job.OtherDetails,
		).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build create job query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&job.ID, &job.CreatedAt); err != nil {
		logger.Error().Err(err).Int64("userID", job.UserID).Msg("Error creating job")
		return fmt.Errorf("error creating job: %w", err)
	}

	return nil
}

// ListByOwner returns all jobs posted by the given recruiter, newest first,
// annotated with the organization's name.
func (r *JobRepository) ListByOwner(ctx context.Context, userID int64) ([]*models.Job, error) {
	builder := r.sb.Select(prefixColumns("j", jobColumns)...).
		Column("o.name AS organization_name").
		From("jobs j").
		Join("organization_details o ON o.id = j.organization_id").
		Where(squirrel.Eq{"j.user_id": userID}).
		OrderBy("j.created_at DESC")

	return r.queryJobs(ctx, builder)
}

// GetByIDForOwner returns a job only if the given recruiter posted it
func (r *JobRepository) GetByIDForOwner(ctx context.Context, id, userID int64) (*models.Job, error) {
	sql, args, err := r.sb.Select(jobColumns...).
		From("jobs").
		Where(squirrel.Eq{"id": id, "user_id": userID}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build job query: %w", err)
	}

	job := &models.Job{}
	if err := scanJob(r.db.QueryRow(ctx, sql, args...), job); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrJobNotFound
		}
		logger.Error().Err(err).Int64("jobID", id).Msg("Error scanning job row")
		return nil, fmt.Errorf("error retrieving job: %w", err)
	}

	return job, nil
}

// GetByID returns a job regardless of poster. Used by the student apply flow.
func (r *JobRepository) GetByID(ctx context.Context, id int64) (*models.Job, error) {
	sql, args, err := r.sb.Select(jobColumns...).
		From("jobs").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build job query: %w", err)
	}

	job := &models.Job{}
	if err := scanJob(r.db.QueryRow(ctx, sql, args...), job); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrJobNotFound
		}
		logger.Error().Err(err).Int64("jobID", id).Msg("Error scanning job row")
		return nil, fmt.Errorf("error retrieving job: %w", err)
	}

	return job, nil
}

// ListOpen returns one page of the jobs students may still apply to, newest
// first, together with the total number of open jobs.
func (r *JobRepository) ListOpen(ctx context.Context, now time.Time, offset uint64, limit int) ([]*models.Job, int64, error) {
	countSQL, countArgs, err := r.sb.Select("COUNT(*)").
		From("jobs").
		Where(squirrel.GtOrEq{"apply_deadline": now}).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build job count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting open jobs")
		return nil, 0, fmt.Errorf("error counting open jobs: %w", err)
	}

	builder := r.sb.Select(prefixColumns("j", jobColumns)...).
		Column("o.name AS organization_name").
		From("jobs j").
		Join("organization_details o ON o.id = j.organization_id").
		Where(squirrel.GtOrEq{"j.apply_deadline": now}).
		OrderBy("j.created_at DESC").
		Offset(offset).
		Limit(uint64(limit))

	jobs, err := r.queryJobs(ctx, builder)
	if err != nil {
		return nil, 0, err
	}

	return jobs, total, nil
}

// ListApplicants returns the applications recorded for a job, annotated with
// the applying student's name and email.
func (r *JobRepository) ListApplicants(ctx context.Context, jobID int64) ([]*models.JobApplication, error) {
	sql, args, err := r.sb.Select(
		"ja.id", "ja.job_id", "ja.student_id", "ja.applied_at",
		"u.first_name || ' ' || u.last_name AS student_name",
		"u.email AS student_email",
	).
		From("job_applications ja").
		Join("users u ON u.id = ja.student_id").
		Where(squirrel.Eq{"ja.job_id": jobID}).
		OrderBy("ja.applied_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build applicants query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("jobID", jobID).Msg("Error querying applicants")
		return nil, fmt.Errorf("error listing applicants: %w", err)
	}
	defer rows.Close()

	var applications []*models.JobApplication
	for rows.Next() {
		application := &models.JobApplication{}
		err := rows.Scan(
			&application.ID, &application.JobID, &application.StudentID,
			&application.AppliedAt, &application.StudentName, &application.StudentEmail,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning applicant row: %w", err)
		}
		applications = append(applications, application)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applicant rows: %w", err)
	}

	return applications, nil
}

// CreateApplication records a student's application. The UNIQUE constraint on
// (job_id, student_id) is the arbiter: a repeat application surfaces as a
// constraint violation even under concurrent requests.
func (r *JobRepository) CreateApplication(ctx context.Context, application *models.JobApplication) error {
	sql, args, err := r.sb.Insert("job_applications").
		Columns("job_id", "student_id").
		Values(application.JobID, application.StudentID).
		Suffix("RETURNING id, applied_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build create application query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&application.ID, &application.AppliedAt); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "job_applications_job_student_key") {
			return apperrors.ErrAlreadyApplied
		}
		logger.Error().Err(err).
			Int64("jobID", application.JobID).
			Int64("studentID", application.StudentID).
			Msg("Error creating job application")
		return fmt.Errorf("error creating job application: %w", err)
	}

	return nil
}

func (r *JobRepository) queryJobs(ctx context.Context, builder squirrel.SelectBuilder) ([]*models.Job, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build job list query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying jobs")
		return nil, fmt.Errorf("error listing jobs: %w", err)
	}
	defer rows.Close()

	var jobs []*models.Job
	for rows.Next() {
		job := &models.Job{}
		err := rows.Scan(
			&job.ID, &job.UserID, &job.OrganizationID, &job.DateOfPosting, &job.Offer,
			&job.PrimaryProfile, &job.Location, &job.Positions, &job.ApplyDeadline, &job.DriveDate,
			&job.OrganizationSector, &job.Description, &job.Package, &job.RequiredSkills,
			&job.MinCPI, &job.SelectionProcess, &job.OtherDetails, &job.CreatedAt,
			&job.OrganizationName,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning job row: %w", err)
		}
		jobs = append(jobs, job)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating job rows: %w", err)
	}

	return jobs, nil
}

func prefixColumns(alias string, columns []string) []string {
	prefixed := make([]string, len(columns))
	for i, column := range columns {
		prefixed[i] = alias + "." + column
	}
	return prefixed
}
