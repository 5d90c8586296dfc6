package controllers

import (
	"errors"
	"net/http"

	apperrors "storefront-bff/common/errors"

	"github.com/gin-gonic/gin"
)

// respondSuccess writes the success envelope.
func respondSuccess(c *gin.Context, code int, message string, data interface{}) {
	body := gin.H{
		"status":  "success",
		"message": message,
	}
	if data != nil {
		body["data"] = data
	}
	c.JSON(code, body)
}

// respondError maps an application error to the error envelope. Anything
// that is not an *apperrors.Error becomes a 500.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	if !errors.As(err, &appErr) {
		appErr = apperrors.New(http.StatusInternalServerError, "Something went wrong", err)
	}
	c.JSON(appErr.Code, gin.H{
		"status":  "error",
		"message": appErr.Message,
	})
}
