package handlers

import (
	"github.com/gin-gonic/gin"

	"hybrid-sim/internal/api/models"
)

func abortError(c *gin.Context, status int, code string, err error) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: err.Error(),
		},
	})
}
