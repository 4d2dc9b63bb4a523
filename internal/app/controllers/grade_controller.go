package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pradipta/siakad/internal/app/models/dto"
	"github.com/pradipta/siakad/internal/app/services"
	"github.com/pradipta/siakad/internal/middleware"
	"github.com/pradipta/siakad/internal/pkg/helpers"
)

// GradeController handles final grade computation and retrieval
type GradeController struct {
	gradeService     *services.GradeService
	recomputeService *services.RecomputeService
	offeringService  *services.OfferingService
	logger           zerolog.Logger
}

// NewGradeController creates a new GradeController
func NewGradeController(
	gradeService *services.GradeService,
	recomputeService *services.RecomputeService,
	offeringService *services.OfferingService,
	logger zerolog.Logger,
) *GradeController {
	return &GradeController{
		gradeService:     gradeService,
		recomputeService: recomputeService,
		offeringService:  offeringService,
		logger:           logger,
	}
}

// ComputeFinal computes and stores a student's final grade
// @Summary Compute a final grade
// @Description Aggregates the student's component scores into a final grade, converting through the grade scale. Missing component scores contribute zero. Fails while the offering's weights do not sum to 100.
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Offering ID"
// @Param studentId path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.FinalGradeResponse} "Final grade computed successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid path parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Offering not found"
// @Failure 422 {object} dto.ErrorResponse "Component weights do not sum to 100"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /offerings/{id}/students/{studentId}/final-grade [post]
func (c *GradeController) ComputeFinal(ctx *gin.Context) {
	offeringID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	grade, err := c.gradeService.ComputeFinal(ctx.Request.Context(), studentID, offeringID)
	if err != nil {
		c.logger.Warn().Err(err).
			Int64("studentId", studentID).
			Int64("offeringId", offeringID).
			Msg("Failed to compute final grade")
		middleware.HandleAPIError(ctx, err)
		return
	}

	rpsApproved, err := c.offeringService.IsRPSApproved(ctx.Request.Context(), offeringID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.FinalGradeResponse{
			FinalGrade:  grade,
			Incomplete:  services.IsIncomplete(grade),
			RPSApproved: rpsApproved,
		},
		Timestamp: time.Now(),
	})
}

// GetFinal retrieves a stored final grade
// @Summary Get a final grade
// @Description Retrieves a previously computed final grade with its completeness and advisory RPS approval flags
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Offering ID"
// @Param studentId path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.FinalGradeResponse} "Final grade retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid path parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Final grade not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /offerings/{id}/students/{studentId}/final-grade [get]
func (c *GradeController) GetFinal(ctx *gin.Context) {
	offeringID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	grade, err := c.gradeService.GetFinal(ctx.Request.Context(), studentID, offeringID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	rpsApproved, err := c.offeringService.IsRPSApproved(ctx.Request.Context(), offeringID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.FinalGradeResponse{
			FinalGrade:  grade,
			Incomplete:  services.IsIncomplete(grade),
			RPSApproved: rpsApproved,
		},
		Timestamp: time.Now(),
	})
}

// ListFinalGrades lists an offering's final grades
// @Summary List final grades
// @Description Retrieves one page of an offering's stored final grades
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Offering ID"
// @Param page query int false "Page number (default 1)"
// @Param size query int false "Page size (default 25, max 200)"
// @Success 200 {object} dto.PagedResponse "Final grades retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid offering ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /offerings/{id}/final-grades [get]
func (c *GradeController) ListFinalGrades(ctx *gin.Context) {
	offeringID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	page, pageSize := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)

	grades, total, err := c.gradeService.ListFinalGrades(ctx.Request.Context(), offeringID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.PagedResponse{
		Items:      grades,
		Pagination: helpers.NewPaginationInfo(total, page, pageSize),
	})
}

// RecomputeBatch recomputes final grades for many students
// @Summary Recompute final grades in batch
// @Description Recomputes final grades for the selected students, or for every actively enrolled student when the list is empty. Returns a per-student report; individual failures never abort the batch.
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Offering ID"
// @Param request body dto.RecomputeBatchRequest true "Students to recompute (empty for all enrolled)"
// @Success 200 {object} dto.APIResponse{data=dto.BatchReport} "Batch recompute finished"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 422 {object} dto.ErrorResponse "Component weights do not sum to 100"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /offerings/{id}/final-grades/recompute [post]
func (c *GradeController) RecomputeBatch(ctx *gin.Context) {
	offeringID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.RecomputeBatchRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid recompute request")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	report, err := c.recomputeService.RecomputeBatch(ctx.Request.Context(), offeringID, req.StudentIDs)
	if err != nil {
		c.logger.Warn().Err(err).Int64("offeringId", offeringID).Msg("Batch recompute rejected")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      report,
		Timestamp: time.Now(),
	})
}
