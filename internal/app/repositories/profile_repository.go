package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/anmol/campushire/internal/app/models"
	"github.com/anmol/campushire/internal/pkg/apperrors"
	"github.com/anmol/campushire/internal/pkg/dberrors"
	"github.com/anmol/campushire/internal/pkg/logger"
)

// ProfileRepository handles recruiter onboarding records, the organization
// and personal details tables.
type ProfileRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateOrganization inserts the recruiter's organization record. The insert
// is the arbiter of uniqueness: a concurrent duplicate surfaces here as a
// constraint violation, not in a prior existence check.
func (r *ProfileRepository) CreateOrganization(ctx context.Context, org *models.OrganizationDetails) error {
	sql, args, err := r.sb.Insert("organization_details").
		Columns("user_id", "name", "email", "description").
		Values(org.UserID, org.Name, org.Email, org.Description).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build create organization query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&org.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "organization_details_user_id_key") {
			return apperrors.ErrOrganizationExists
		}
		if dberrors.IsDuplicateConstraintError(err, "organization_details_name_key") ||
			dberrors.IsDuplicateConstraintError(err, "organization_details_email_key") {
			return apperrors.ErrOrganizationNameTaken
		}
		logger.Error().Err(err).Int64("userID", org.UserID).Msg("Error creating organization details")
		return fmt.Errorf("error creating organization details: %w", err)
	}

	return nil
}

// GetOrganizationByUserID returns the recruiter's organization record
func (r *ProfileRepository) GetOrganizationByUserID(ctx context.Context, userID int64) (*models.OrganizationDetails, error) {
	sql, args, err := r.sb.Select("id", "user_id", "name", "email", "description").
		From("organization_details").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build organization query: %w", err)
	}

	org := &models.OrganizationDetails{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&org.ID, &org.UserID, &org.Name, &org.Email, &org.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOrganizationMissing
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning organization row")
		return nil, fmt.Errorf("error retrieving organization details: %w", err)
	}

	return org, nil
}

// CreatePersonalDetails inserts the recruiter's personal record
func (r *ProfileRepository) CreatePersonalDetails(ctx context.Context, details *models.PersonalDetails) error {
	sql, args, err := r.sb.Insert("personal_details").
		Columns("user_id", "first_name", "last_name", "email", "mobile", "organization_id").
		Values(details.UserID, details.FirstName, details.LastName, details.Email, details.Mobile, details.OrganizationID).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		return fmt.Errorf("failed to build create personal details query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&details.ID); err != nil {
		if dberrors.IsDuplicateConstraintError(err, "personal_details_user_id_key") {
			return apperrors.ErrPersonalDetailsExist
		}
		logger.Error().Err(err).Int64("userID", details.UserID).Msg("Error creating personal details")
		return fmt.Errorf("error creating personal details: %w", err)
	}

	return nil
}

// GetPersonalDetailsByUserID returns the recruiter's personal record.
// ErrOnboardingIncomplete signals the caller that the posting prerequisites
// are not yet filled.
func (r *ProfileRepository) GetPersonalDetailsByUserID(ctx context.Context, userID int64) (*models.PersonalDetails, error) {
	sql, args, err := r.sb.Select("id", "user_id", "first_name", "last_name", "email", "mobile", "organization_id").
		From("personal_details").
		Where(squirrel.Eq{"user_id": userID}).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("failed to build personal details query: %w", err)
	}

	details := &models.PersonalDetails{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&details.ID, &details.UserID, &details.FirstName, &details.LastName,
		&details.Email, &details.Mobile, &details.OrganizationID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrOnboardingIncomplete
		}
		logger.Error().Err(err).Int64("userID", userID).Msg("Error scanning personal details row")
		return nil, fmt.Errorf("error retrieving personal details: %w", err)
	}

	return details, nil
}
