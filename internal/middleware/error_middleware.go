package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pradipta/siakad/internal/app/models/dto"
	"github.com/pradipta/siakad/internal/pkg/apperrors"
)

// HandleAPIError maps service errors to HTTP responses. Controllers call it
// for every error returned from the service layer so status codes and error
// codes stay consistent across the API.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := classifyError(err)

	var custom *apperrors.CustomError
	if errors.As(err, &custom) {
		if custom.Message != "" {
			detail = detail.WithDetails(custom.Message)
		}
		if custom.Details != nil {
			detail = detail.WithDetails(custom.Details)
		}
	}

	c.JSON(status, dto.NewErrorResponse(detail))
}

func classifyError(err error) (int, *dto.ErrorDetail) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidComponent):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeInvalidComponent, err.Error())
	case errors.Is(err, apperrors.ErrInvalidScore):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeInvalidScore, err.Error())
	case errors.Is(err, apperrors.ErrFamilyMismatch):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeFamilyMismatch, err.Error())
	case errors.Is(err, apperrors.ErrComponentInUse):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeComponentInUse, err.Error())
	case errors.Is(err, apperrors.ErrNotEnrolled):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeNotEnrolled, err.Error())
	case errors.Is(err, apperrors.ErrOfferingAlreadyExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error())
	case errors.Is(err, apperrors.ErrResourceAlreadyExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error())
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error())
	case errors.Is(err, apperrors.ErrIncompleteWeights):
		return http.StatusUnprocessableEntity, dto.NewErrorDetail(dto.ErrorCodeIncompleteWeights, err.Error())
	case errors.Is(err, apperrors.ErrOfferingNotFound),
		errors.Is(err, apperrors.ErrComponentNotFound),
		errors.Is(err, apperrors.ErrScoreNotFound),
		errors.Is(err, apperrors.ErrFinalGradeNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())
	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token expired")
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, "Permission denied")
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}
