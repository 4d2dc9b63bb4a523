// Package controllers handles HTTP request handling
package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pradipta/siakad/internal/app/models"
	"github.com/pradipta/siakad/internal/app/models/dto"
	"github.com/pradipta/siakad/internal/app/services"
	"github.com/pradipta/siakad/internal/middleware"
)

// OfferingController handles course offering operations
type OfferingController struct {
	offeringService *services.OfferingService
	logger          zerolog.Logger
}

// NewOfferingController creates a new OfferingController
func NewOfferingController(offeringService *services.OfferingService, logger zerolog.Logger) *OfferingController {
	return &OfferingController{
		offeringService: offeringService,
		logger:          logger,
	}
}

// parseIDParam reads a positive int64 path parameter, writing a 400 response
// and returning false on failure
func parseIDParam(ctx *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+name)
		errorDetail = errorDetail.WithDetails(name + " must be a positive integer")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// CreateOffering handles course offering creation
// @Summary Create a course offering
// @Description Creates a course offering for a course, semester and academic year. The grading family stays undetermined until the first assessment component is added.
// @Tags offerings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateOfferingRequest true "Offering information"
// @Success 201 {object} dto.APIResponse{data=dto.OfferingResponse} "Offering created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 409 {object} dto.ErrorResponse "Offering already exists for this course, semester and academic year"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /offerings [post]
func (c *OfferingController) CreateOffering(ctx *gin.Context) {
	var req dto.CreateOfferingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid offering data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if errorDetail := middleware.ValidateStruct(req); errorDetail != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	offering := &models.CourseOffering{
		MataKuliahID: req.MataKuliahID,
		Semester:     models.Semester(req.Semester),
		TahunAjaran:  req.TahunAjaran,
	}

	if err := c.offeringService.CreateOffering(ctx.Request.Context(), offering); err != nil {
		c.logger.Warn().Err(err).Int64("mataKuliahId", req.MataKuliahID).Msg("Failed to create offering")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      dto.OfferingResponse{Offering: offering},
		Timestamp: time.Now(),
	})
}

// GetOffering retrieves a course offering by ID
// @Summary Get offering by ID
// @Description Retrieves a course offering with its advisory RPS approval status
// @Tags offerings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Offering ID"
// @Success 200 {object} dto.APIResponse{data=dto.OfferingResponse} "Offering retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid offering ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Offering not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /offerings/{id} [get]
func (c *OfferingController) GetOffering(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	offering, err := c.offeringService.GetOffering(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	rpsApproved, err := c.offeringService.IsRPSApproved(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      dto.OfferingResponse{Offering: offering, RPSApproved: rpsApproved},
		Timestamp: time.Now(),
	})
}
