package resp

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/n4mp3un9/car-rental-sub001/pkg/apperr"
)

func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "data": data})
}
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, gin.H{"ok": true, "data": data})
}
func BadRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": msg})
}
func Unauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"ok": false, "error": msg})
}
func Forbidden(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"ok": false, "error": msg})
}
func ServerError(c *gin.Context, err error) {
	slog.Error("request failed",
		"err", err,
		"method", c.Request.Method,
		"path", c.FullPath(),
		"req_id", c.GetString("requestId"),
	)
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "internal server error"})
}

// Error writes err using its apperr kind. Anything unclassified is a 500
// and is logged with the request id.
func Error(c *gin.Context, err error) {
	var status int
	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = http.StatusBadRequest
	case apperr.KindUnauthorized:
		status = http.StatusUnauthorized
	case apperr.KindForbidden:
		status = http.StatusForbidden
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindConflict, apperr.KindInvalidState:
		status = http.StatusConflict
	default:
		ServerError(c, err)
		return
	}
	slog.Warn("request rejected",
		"status", status,
		"err", err.Error(),
		"path", c.FullPath(),
		"req_id", c.GetString("requestId"),
	)
	c.JSON(status, gin.H{"ok": false, "error": message(err), "code": apperr.KindOf(err)})
}

func message(err error) string {
	var ae *apperr.Error
	if errors.As(err, &ae) && ae.Msg != "" {
		return ae.Msg
	}
	return err.Error()
}
