package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pradipta/siakad/internal/app/models/dto"
	"github.com/pradipta/siakad/internal/app/services"
	"github.com/pradipta/siakad/internal/middleware"
)

// ScoreController handles student component score operations
type ScoreController struct {
	scoreService *services.ScoreService
	logger       zerolog.Logger
}

// NewScoreController creates a new ScoreController
func NewScoreController(scoreService *services.ScoreService, logger zerolog.Logger) *ScoreController {
	return &ScoreController{
		scoreService: scoreService,
		logger:       logger,
	}
}

// UpsertScore records or overwrites a student's component score
// @Summary Record a component score
// @Description Records a raw score for a student on an assessment component, overwriting any previous score. The component letter and GPA point are derived on write.
// @Tags scores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpsertScoreRequest true "Score information"
// @Success 200 {object} dto.APIResponse{data=models.StudentComponentScore} "Score recorded successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid score data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Component not found"
// @Failure 409 {object} dto.ErrorResponse "Student not actively enrolled"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /scores [put]
func (c *ScoreController) UpsertScore(ctx *gin.Context) {
	var req dto.UpsertScoreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid score data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}
	if errorDetail := middleware.ValidateStruct(req); errorDetail != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	score, err := c.scoreService.UpsertScore(ctx.Request.Context(), req.StudentID, req.ComponentID, req.RawScore)
	if err != nil {
		c.logger.Warn().Err(err).
			Int64("studentId", req.StudentID).
			Int64("componentId", req.ComponentID).
			Msg("Failed to record score")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success:   true,
		Data:      score,
		Timestamp: time.Now(),
	})
}

// GetStudentScores lists a student's scores for an offering
// @Summary List a student's component scores
// @Description Retrieves every recorded component score of a student within an offering
// @Tags scores
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Offering ID"
// @Param studentId path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentScoresResponse} "Scores retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid path parameters"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /offerings/{id}/students/{studentId}/scores [get]
func (c *ScoreController) GetStudentScores(ctx *gin.Context) {
	offeringID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}
	studentID, ok := parseIDParam(ctx, "studentId")
	if !ok {
		return
	}

	scores, err := c.scoreService.GetStudentScores(ctx.Request.Context(), studentID, offeringID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Success: true,
		Data: dto.StudentScoresResponse{
			StudentID:  studentID,
			OfferingID: offeringID,
			Scores:     scores,
		},
		Timestamp: time.Now(),
	})
}
