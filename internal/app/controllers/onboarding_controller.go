package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/anmol/campushire/internal/app/models/dto"
	"github.com/anmol/campushire/internal/app/services"
	"github.com/anmol/campushire/internal/middleware"
)

// OnboardingController handles recruiter onboarding operations. Duplicate
// submissions and missing prerequisites answer HTTP 200 with success=false so
// step-by-step clients can replay earlier steps without treating it as a
// transport failure.
type OnboardingController struct {
	onboardingService services.OnboardingService
	logger            zerolog.Logger
}

// NewOnboardingController creates a new OnboardingController
func NewOnboardingController(onboardingService services.OnboardingService, logger zerolog.Logger) *OnboardingController {
	return &OnboardingController{
		onboardingService: onboardingService,
		logger:            logger,
	}
}

// CreateOrganization records the recruiter's organization details
// @Summary Submit organization details
// @Description Step 1 of recruiter onboarding
// @Tags recruiter
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateOrganizationRequest true "Organization details"
// @Success 200 {object} dto.StructuredResponse
// @Failure 409 {object} dto.ErrorResponse "Organization name or email already in use"
// @Router /recruiter/organization [post]
func (c *OnboardingController) CreateOrganization(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateOrganizationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	org, err := c.onboardingService.CreateOrganization(ctx.Request.Context(), userID, &req)
	if err != nil {
		if middleware.HandleRecoverableOnboarding(ctx, err) {
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(true, "Organizational details filled successfully!", org))
}

// CreatePersonalDetails records the recruiter's personal details
// @Summary Submit personal details
// @Description Step 2 of recruiter onboarding, requires organization details first
// @Tags recruiter
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePersonalDetailsRequest true "Personal details"
// @Success 200 {object} dto.StructuredResponse
// @Router /recruiter/personal [post]
func (c *OnboardingController) CreatePersonalDetails(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreatePersonalDetailsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	details, err := c.onboardingService.CreatePersonalDetails(ctx.Request.Context(), userID, &req)
	if err != nil {
		if middleware.HandleRecoverableOnboarding(ctx, err) {
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(true, "Personal details filled successfully!", details))
}

// GetOnboardingState reports which onboarding steps the caller has completed
// @Summary Onboarding state
// @Tags recruiter
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.OnboardingStateResponse}
// @Router /recruiter/onboarding [get]
func (c *OnboardingController) GetOnboardingState(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	state, err := c.onboardingService.GetOnboardingState(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(state))
}
