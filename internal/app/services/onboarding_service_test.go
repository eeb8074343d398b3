package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anmol/campushire/internal/app/models"
	"github.com/anmol/campushire/internal/app/models/dto"
	"github.com/anmol/campushire/internal/pkg/apperrors"
)

type fakeProfileStore struct {
	organizations map[int64]*models.OrganizationDetails
	personal      map[int64]*models.PersonalDetails
	nextID        int64
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{
		organizations: map[int64]*models.OrganizationDetails{},
		personal:      map[int64]*models.PersonalDetails{},
		nextID:        1,
	}
}

func (s *fakeProfileStore) CreateOrganization(ctx context.Context, org *models.OrganizationDetails) error {
	if _, exists := s.organizations[org.UserID]; exists {
		return apperrors.ErrOrganizationExists
	}
	for _, existing := range s.organizations {
		if existing.Name == org.Name {
			return apperrors.ErrOrganizationNameTaken
		}
	}
	org.ID = s.nextID
	s.nextID++
	s.organizations[org.UserID] = org
	return nil
}

func (s *fakeProfileStore) GetOrganizationByUserID(ctx context.Context, userID int64) (*models.OrganizationDetails, error) {
	org, ok := s.organizations[userID]
	if !ok {
		return nil, apperrors.ErrOrganizationMissing
	}
	return org, nil
}

func (s *fakeProfileStore) CreatePersonalDetails(ctx context.Context, details *models.PersonalDetails) error {
	if _, exists := s.personal[details.UserID]; exists {
		return apperrors.ErrPersonalDetailsExist
	}
	details.ID = s.nextID
	s.nextID++
	s.personal[details.UserID] = details
	return nil
}

func (s *fakeProfileStore) GetPersonalDetailsByUserID(ctx context.Context, userID int64) (*models.PersonalDetails, error) {
	details, ok := s.personal[userID]
	if !ok {
		return nil, apperrors.ErrOnboardingIncomplete
	}
	return details, nil
}

const recruiterID int64 = 42

func orgRequest(name string) *dto.CreateOrganizationRequest {
	return &dto.CreateOrganizationRequest{Name: name, Description: "We hire"}
}

func personalRequest() *dto.CreatePersonalDetailsRequest {
	return &dto.CreatePersonalDetailsRequest{
		FirstName: "Jane",
		LastName:  "Doe",
		Mobile:    9876543210,
	}
}

func TestCreateOrganization(t *testing.T) {
	ctx := context.Background()

	t.Run("records the organization once", func(t *testing.T) {
		store := newFakeProfileStore()
		svc := NewOnboardingService(store, zerolog.Nop())

		org, err := svc.CreateOrganization(ctx, recruiterID, orgRequest("Acme Systems"))
		require.NoError(t, err)
		assert.Equal(t, recruiterID, org.UserID)
		assert.NotZero(t, org.ID)
	})

	t.Run("second submission keeps the original record", func(t *testing.T) {
		store := newFakeProfileStore()
		svc := NewOnboardingService(store, zerolog.Nop())

		first, err := svc.CreateOrganization(ctx, recruiterID, orgRequest("Acme Systems"))
		require.NoError(t, err)

		_, err = svc.CreateOrganization(ctx, recruiterID, orgRequest("Different Name"))
		assert.ErrorIs(t, err, apperrors.ErrOrganizationExists)
		assert.Equal(t, "Acme Systems", store.organizations[recruiterID].Name)
		assert.Equal(t, first.ID, store.organizations[recruiterID].ID)
	})

	t.Run("organization name must be globally unique", func(t *testing.T) {
		store := newFakeProfileStore()
		svc := NewOnboardingService(store, zerolog.Nop())

		_, err := svc.CreateOrganization(ctx, recruiterID, orgRequest("Acme Systems"))
		require.NoError(t, err)

		_, err = svc.CreateOrganization(ctx, recruiterID+1, orgRequest("Acme Systems"))
		assert.ErrorIs(t, err, apperrors.ErrOrganizationNameTaken)
	})

	t.Run("rejects blank name", func(t *testing.T) {
		svc := NewOnboardingService(newFakeProfileStore(), zerolog.Nop())

		_, err := svc.CreateOrganization(ctx, recruiterID, orgRequest("  "))
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	})
}

func TestCreatePersonalDetails(t *testing.T) {
	ctx := context.Background()

	t.Run("requires organization first", func(t *testing.T) {
		svc := NewOnboardingService(newFakeProfileStore(), zerolog.Nop())

		_, err := svc.CreatePersonalDetails(ctx, recruiterID, personalRequest())
		assert.ErrorIs(t, err, apperrors.ErrOrganizationMissing)
	})

	t.Run("copies the organization ID onto the record", func(t *testing.T) {
		store := newFakeProfileStore()
		svc := NewOnboardingService(store, zerolog.Nop())

		org, err := svc.CreateOrganization(ctx, recruiterID, orgRequest("Acme Systems"))
		require.NoError(t, err)

		details, err := svc.CreatePersonalDetails(ctx, recruiterID, personalRequest())
		require.NoError(t, err)
		assert.Equal(t, org.ID, details.OrganizationID)
	})

	t.Run("second submission is rejected without overwriting", func(t *testing.T) {
		store := newFakeProfileStore()
		svc := NewOnboardingService(store, zerolog.Nop())

		_, err := svc.CreateOrganization(ctx, recruiterID, orgRequest("Acme Systems"))
		require.NoError(t, err)
		_, err = svc.CreatePersonalDetails(ctx, recruiterID, personalRequest())
		require.NoError(t, err)

		replay := personalRequest()
		replay.FirstName = "Changed"
		_, err = svc.CreatePersonalDetails(ctx, recruiterID, replay)
		assert.ErrorIs(t, err, apperrors.ErrPersonalDetailsExist)
		assert.Equal(t, "Jane", store.personal[recruiterID].FirstName)
	})
}

func TestGetOnboardingState(t *testing.T) {
	ctx := context.Background()
	store := newFakeProfileStore()
	svc := NewOnboardingService(store, zerolog.Nop())

	state, err := svc.GetOnboardingState(ctx, recruiterID)
	require.NoError(t, err)
	assert.False(t, state.OrganizationDone)
	assert.False(t, state.PersonalDetailsDone)

	_, err = svc.CreateOrganization(ctx, recruiterID, orgRequest("Acme Systems"))
	require.NoError(t, err)

	state, err = svc.GetOnboardingState(ctx, recruiterID)
	require.NoError(t, err)
	assert.True(t, state.OrganizationDone)
	assert.False(t, state.PersonalDetailsDone)

	_, err = svc.CreatePersonalDetails(ctx, recruiterID, personalRequest())
	require.NoError(t, err)

	state, err = svc.GetOnboardingState(ctx, recruiterID)
	require.NoError(t, err)
	assert.True(t, state.OrganizationDone)
	assert.True(t, state.PersonalDetailsDone)
	require.NotNil(t, state.Organization)
	assert.Equal(t, "Acme Systems", state.Organization.Name)
}
