package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wocademy/utility-backend/internal/apperrors"
	"github.com/wocademy/utility-backend/internal/dto"
	"github.com/wocademy/utility-backend/internal/middleware"
)

// respondError maps a service error to the uniform {statusCode, code, message}
// body. Unclassified errors get a generic message; the detail stays in the log.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Status >= http.StatusInternalServerError {
			logger.Error("request failed", slog.String("error", appErr.Error()))
		} else {
			logger.Warn("request rejected", slog.String("error", appErr.Error()))
		}
		c.JSON(appErr.Status, dto.ErrorResponse{
			StatusCode: appErr.Status,
			Code:       appErr.Code,
			Message:    appErr.Message,
		})
		return
	}

	status, code, message := http.StatusInternalServerError, apperrors.CodeInternal, "something went wrong"
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status, code, message = http.StatusNotFound, apperrors.CodeNotFound, "resource not found"
	case errors.Is(err, apperrors.ErrValidation):
		status, code, message = http.StatusBadRequest, apperrors.CodeValidation, err.Error()
	case errors.Is(err, apperrors.ErrDuplicate):
		status, code, message = http.StatusConflict, apperrors.CodeDuplicate, "resource already exists"
	case errors.Is(err, apperrors.ErrConflict):
		status, code, message = http.StatusConflict, apperrors.CodeConflict, "resource conflict"
	case errors.Is(err, apperrors.ErrInsufficientCredits):
		status, code, message = http.StatusBadRequest, apperrors.CodeInsufficientCredits, "insufficient credits"
	case errors.Is(err, apperrors.ErrUpstream):
		status, code, message = http.StatusServiceUnavailable, apperrors.CodeUpstreamUnavailable, "upstream service unavailable"
	}

	if status >= http.StatusInternalServerError {
		logger.Error("request failed", slog.String("error", err.Error()))
	} else {
		logger.Warn("request rejected", slog.String("error", err.Error()))
	}
	c.JSON(status, dto.ErrorResponse{StatusCode: status, Code: code, Message: message})
}

// respondBindingError maps a gin binding failure to a validation error body.
func respondBindingError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		StatusCode: http.StatusBadRequest,
		Code:       apperrors.CodeValidation,
		Message:    "Invalid request format: " + err.Error(),
	})
}
