package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/anmol/campushire/internal/app/models/dto"
	"github.com/anmol/campushire/internal/app/services"
	"github.com/anmol/campushire/internal/middleware"
	"github.com/anmol/campushire/internal/pkg/helpers"
)

// JobController handles recruiter job postings and student applications
type JobController struct {
	jobService services.JobService
	logger     zerolog.Logger
}

// NewJobController creates a new JobController
func NewJobController(jobService services.JobService, logger zerolog.Logger) *JobController {
	return &JobController{
		jobService: jobService,
		logger:     logger,
	}
}

// PostJob publishes a job posting
// @Summary Post a job
// @Description Step 3 of recruiter onboarding, requires personal and organizational details first
// @Tags recruiter
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PostJobRequest true "Job posting"
// @Success 200 {object} dto.StructuredResponse
// @Router /recruiter/jobs [post]
func (c *JobController) PostJob(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	var req dto.PostJobRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return
	}

	job, err := c.jobService.PostJob(ctx.Request.Context(), userID, &req)
	if err != nil {
		if middleware.HandleRecoverableOnboarding(ctx, err) {
			return
		}
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewStructuredResponse(true, "Job posted successfully!", job))
}

// ListPostedJobs returns the caller's postings
// @Summary List own job postings
// @Tags recruiter
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Job}
// @Router /recruiter/jobs [get]
func (c *JobController) ListPostedJobs(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}

	jobs, err := c.jobService.ListPostedJobs(ctx.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(jobs))
}

// GetApplicants lists the applications for one of the caller's postings
// @Summary List job applicants
// @Description Applicants are visible only to the recruiter who posted the job
// @Tags recruiter
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 200 {object} dto.APIResponse{data=dto.ApplicantsResponse}
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Router /recruiter/jobs/{id}/applicants [get]
func (c *JobController) GetApplicants(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	applicants, err := c.jobService.GetApplicants(ctx.Request.Context(), jobID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(applicants))
}

// ListOpenJobs lists jobs students may still apply to
// @Summary List open jobs
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1) minimum(1)
// @Param size query int false "Page size (default: 10, max: 100)" default(10) minimum(1) maximum(100)
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedResponse}
// @Router /jobs [get]
func (c *JobController) ListOpenJobs(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	jobs, err := c.jobService.ListOpenJobs(ctx.Request.Context(), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(jobs))
}

// Apply records the student's application to a job
// @Summary Apply to a job
// @Description A student may apply to each job at most once
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path int true "Job ID"
// @Success 201 {object} dto.APIResponse{data=models.JobApplication}
// @Failure 404 {object} dto.ErrorResponse "Job not found"
// @Failure 409 {object} dto.ErrorResponse "Already applied"
// @Router /jobs/{id}/apply [post]
func (c *JobController) Apply(ctx *gin.Context) {
	userID, ok := requireUserID(ctx)
	if !ok {
		return
	}
	jobID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	application, err := c.jobService.Apply(ctx.Request.Context(), jobID, userID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(application))
}
