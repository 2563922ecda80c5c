package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/chubrika/wineo-back/internal/apperr"
)

func OK(c *gin.Context, data any)      { c.JSON(http.StatusOK, data) }
func Created(c *gin.Context, data any) { c.JSON(http.StatusCreated, data) }
func NoContent(c *gin.Context)         { c.Status(http.StatusNoContent) }

// Err maps an application error to its HTTP status. Internal errors are
// logged with their cause and answered with a generic body so no detail
// leaks to the caller.
func Err(c *gin.Context, l *zap.Logger, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Code != http.StatusInternalServerError {
		c.JSON(ae.Code, gin.H{"error": ae.Error()})
		return
	}
	l.Error("internal error",
		zap.String("path", c.FullPath()),
		zap.String("method", c.Request.Method),
		zap.Error(err),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// BindErr answers a request-body/query binding failure.
func BindErr(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
