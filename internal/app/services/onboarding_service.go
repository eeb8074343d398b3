package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/anmol/campushire/internal/app/models"
	"github.com/anmol/campushire/internal/app/models/dto"
	"github.com/anmol/campushire/internal/pkg/apperrors"
)

// ProfileStore is the recruiter onboarding persistence surface
type ProfileStore interface {
	CreateOrganization(ctx context.Context, org *models.OrganizationDetails) error
	GetOrganizationByUserID(ctx context.Context, userID int64) (*models.OrganizationDetails, error)
	CreatePersonalDetails(ctx context.Context, details *models.PersonalDetails) error
	GetPersonalDetailsByUserID(ctx context.Context, userID int64) (*models.PersonalDetails, error)
}

// OnboardingService walks a teacher account through recruiter onboarding:
// organization first, then personal details, then job postings.
type OnboardingService interface {
	CreateOrganization(ctx context.Context, userID int64, req *dto.CreateOrganizationRequest) (*models.OrganizationDetails, error)
	CreatePersonalDetails(ctx context.Context, userID int64, req *dto.CreatePersonalDetailsRequest) (*models.PersonalDetails, error)
	GetOnboardingState(ctx context.Context, userID int64) (*dto.OnboardingStateResponse, error)
}

type onboardingService struct {
	profileStore ProfileStore
	logger       zerolog.Logger
}

// NewOnboardingService creates a new OnboardingService
func NewOnboardingService(profileStore ProfileStore, logger zerolog.Logger) OnboardingService {
	return &onboardingService{
		profileStore: profileStore,
		logger:       logger,
	}
}

// CreateOrganization records the recruiter's organization, step 1 of
// onboarding. A second submission is reported via ErrOrganizationExists and
// leaves the stored record untouched.
func (s *onboardingService) CreateOrganization(ctx context.Context, userID int64, req *dto.CreateOrganizationRequest) (*models.OrganizationDetails, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: organization name cannot be empty", apperrors.ErrValidationFailed)
	}

	org := &models.OrganizationDetails{
		UserID:      userID,
		Name:        name,
		Email:       req.Email,
		Description: strings.TrimSpace(req.Description),
	}

	if err := s.profileStore.CreateOrganization(ctx, org); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Str("organization", name).Msg("Organization details recorded")

	return org, nil
}

// CreatePersonalDetails records the recruiter's personal details, step 2.
// The organization must exist first; its ID is copied onto the record.
func (s *onboardingService) CreatePersonalDetails(ctx context.Context, userID int64, req *dto.CreatePersonalDetailsRequest) (*models.PersonalDetails, error) {
	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return nil, fmt.Errorf("%w: first and last name are required", apperrors.ErrValidationFailed)
	}
	if req.Mobile <= 0 {
		return nil, fmt.Errorf("%w: mobile number is required", apperrors.ErrValidationFailed)
	}

	org, err := s.profileStore.GetOrganizationByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	details := &models.PersonalDetails{
		UserID:         userID,
		FirstName:      strings.TrimSpace(req.FirstName),
		LastName:       strings.TrimSpace(req.LastName),
		Email:          req.Email,
		Mobile:         req.Mobile,
		OrganizationID: org.ID,
	}

	if err := s.profileStore.CreatePersonalDetails(ctx, details); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Msg("Personal details recorded")

	return details, nil
}

// GetOnboardingState reports which onboarding steps the recruiter has completed
func (s *onboardingService) GetOnboardingState(ctx context.Context, userID int64) (*dto.OnboardingStateResponse, error) {
	state := &dto.OnboardingStateResponse{}

	org, err := s.profileStore.GetOrganizationByUserID(ctx, userID)
	switch {
	case err == nil:
		state.Organization = org
		state.OrganizationDone = true
	case apperrors.Is(err, apperrors.ErrOrganizationMissing):
		// step not done yet
	default:
		return nil, err
	}

	details, err := s.profileStore.GetPersonalDetailsByUserID(ctx, userID)
	switch {
	case err == nil:
		state.PersonalDetails = details
		state.PersonalDetailsDone = true
	case apperrors.Is(err, apperrors.ErrOnboardingIncomplete):
		// step not done yet
	default:
		return nil, err
	}

	return state, nil
}
