package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/guttosm/stockr/internal/domain/dto"
	"github.com/guttosm/stockr/internal/logger"
)

// ErrorHandler renders errors attached with c.Error() that no handler turned
// into a response. The last error wins and is reported as a 500.
func ErrorHandler(c *gin.Context) {
	c.Next()

	if len(c.Errors) == 0 || c.Writer.Written() {
		return
	}

	err := c.Errors.Last().Err
	logger.L().Error().Err(err).Str("path", c.Request.URL.Path).Msg("unhandled request error")
	AbortWithCode(c, http.StatusInternalServerError, "internal_error", "Internal server error", err)
}

// AbortWithError stops the chain and writes a standardized error body.
func AbortWithError(c *gin.Context, status int, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(message, err).WithRequestID(RequestIDFrom(c)))
}

// AbortWithCode is AbortWithError with a machine readable code.
// Both stamp the body with the request id when RequestID ran.
func AbortWithCode(c *gin.Context, status int, code, message string, err error) {
	c.AbortWithStatusJSON(status, dto.NewCodedErrorResponse(code, message, err).WithRequestID(RequestIDFrom(c)))
}
