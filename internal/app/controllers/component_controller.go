package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pradipta/siakad/internal/app/models"
	"github.com/pradipta/siakad/internal/app/models/dto"
	"github.com/pradipta/siakad/internal/app/services"
	"github.com/pradipta/siakad/internal/middleware"
)

// ComponentController handles assessment component operations
type ComponentController struct {
	componentService *services.ComponentService
	logger           zerolog.Logger
}

// NewComponentController creates a new ComponentController
func NewComponentController(componentService *services.ComponentService, logger zerolog.Logger) *ComponentController {
	return &ComponentController{
		componentService: componentService,
		logger:           logger,
	}
}

// AddComponent adds an assessment component to an offering
// @Summary Add an assessment component
// @Description Adds a weighted assessment component. The first component locks the offering to its grading family (LEGACY or OBE); later components must match.
// @Tags components
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Offering ID"
// @Param request body dto.CreateComponentRequest true "Component information"
// @Success 201 {object} dto.APIResponse{data=models.AssessmentComponent} "Component created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid component data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Offering not found"
// @Failure 409 {object} dto.ErrorResponse "Grading family mismatch"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /offerings/{id}/components [post]
func (c *ComponentController) AddComponent(ctx *gin.Context) {
	offeringID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CreateComponentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid component data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if errorDetail := middleware.ValidateStruct(req); errorDetail != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	spec := services.ComponentSpec{
		Family:         models.GradingFamily(req.Family),
		Weight:         *req.Weight,
		SubCPMKID:      req.SubCPMKID,
		PertemuanRange: req.PertemuanRange,
		Description:    req.Description,
	}
	if req.LegacyType != nil {
		legacyType := models.LegacyType(*req.LegacyType)
		spec.LegacyType = &legacyType
	}

	component, err := c.componentService.AddComponent(ctx.Request.Context(), offeringID, spec)
	if err != nil {
		c.logger.Warn().Err(err).Int64("offeringId", offeringID).Msg("Failed to add component")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Success:   true,
		Data:      component,
		Timestamp: time.Now(),
	})
}

// ListComponents lists an offering's assessment components
// @Summary List assessment components
// @Description Retrieves every assessment component configured for an offering
// @Tags components
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Offering ID"
// @Success 200 {object} dto.APIResponse{data=[]models.AssessmentComponent} "Components retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid offering ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Offering not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /offerings/{id}/components [get]
func (c *ComponentController) ListComponents(ctx *gin.Context) {
	offeringID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	components, err := c.componentService.ListComponents(ctx.Request.Context(), offeringID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      components,
		Timestamp: time.Now(),
	})
}

// UpdateComponent patches a component's mutable fields
// @Summary Update an assessment component
// @Description Updates weight, pertemuan range or description. Family and identity fields are immutable; delete and recreate to change them.
// @Tags components
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Component ID"
// @Param request body dto.UpdateComponentRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.AssessmentComponent} "Component updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid component data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Component not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /components/{id} [put]
func (c *ComponentController) UpdateComponent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.UpdateComponentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid component data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	component, err := c.componentService.UpdateComponent(ctx.Request.Context(), id, req)
	if err != nil {
		c.logger.Warn().Err(err).Int64("componentId", id).Msg("Failed to update component")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      component,
		Timestamp: time.Now(),
	})
}

// RemoveComponent deletes an assessment component
// @Summary Delete an assessment component
// @Description Deletes a component that has no recorded scores. Removing the last component releases the offering's grading family lock.
// @Tags components
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Component ID"
// @Success 200 {object} dto.APIResponse "Component deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid component ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Component not found"
// @Failure 409 {object} dto.ErrorResponse "Component has recorded scores"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /components/{id} [delete]
func (c *ComponentController) RemoveComponent(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.componentService.RemoveComponent(ctx.Request.Context(), id); err != nil {
		c.logger.Warn().Err(err).Int64("componentId", id).Msg("Failed to remove component")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Message:   "Component deleted successfully",
		Timestamp: time.Now(),
	})
}

// GetWeightSummary reports the offering's weight configuration state
// @Summary Get weight summary
// @Description Reports per-component weights, the running total and whether the offering is ready for grading (weights sum to 100 within tolerance)
// @Tags components
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Offering ID"
// @Success 200 {object} dto.APIResponse{data=dto.WeightSummaryResponse} "Weight summary retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid offering ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Offering not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /offerings/{id}/weight-summary [get]
func (c *ComponentController) GetWeightSummary(ctx *gin.Context) {
	offeringID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	summary, err := c.componentService.WeightSummary(ctx.Request.Context(), offeringID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      summary,
		Timestamp: time.Now(),
	})
}
