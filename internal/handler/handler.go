package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/servibook/servibook/internal/domain"
	"github.com/servibook/servibook/internal/response"
	"github.com/servibook/servibook/internal/service"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// handleError maps domain errors to HTTP responses
func handleError(c *gin.Context, err error) {
	switch {
	case domain.IsNotFoundError(err):
		response.NotFound(c, err.Error())
	case domain.IsConflictError(err):
		response.Conflict(c, err.Error())
	case domain.IsValidationError(err),
		errors.Is(err, domain.ErrBookingNotAccepted),
		errors.Is(err, domain.ErrInvalidBookingPrice),
		errors.Is(err, domain.ErrVerificationFailed):
		response.BadRequest(c, err.Error())
	case errors.Is(err, domain.ErrInvalidAdmin):
		response.Forbidden(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken),
		errors.Is(err, service.ErrTokenExpired),
		errors.Is(err, service.ErrTokenRevoked):
		response.Unauthorized(c, err.Error())
	default:
		response.InternalError(c, err)
	}
}

// pagination reads limit/offset query parameters with sane bounds
func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultPageSize)))
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
