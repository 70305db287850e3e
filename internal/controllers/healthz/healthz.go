// Package healthz implements the health check endpoint.
package healthz

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pesibar-dev/sikera-backend/internal/httputil"
	"github.com/pesibar-dev/sikera-backend/internal/models"
)

type HealthResponse struct {
	Error *string `json:"error" example:"pinging the database failed"` // The error, if any occurred
}

// @Summary		Health
// @Description	Returns the health of the API and its database connection
// @Tags			General
// @Success		200	{object}	HealthResponse
// @Failure		500	{object}	HealthResponse
// @Router			/healthz [get]
func Get(c *gin.Context) {
	db, err := models.DB.DB()
	if err == nil {
		err = db.Ping()
	}

	if err != nil {
		s := err.Error()
		c.JSON(http.StatusInternalServerError, HealthResponse{Error: &s})
		return
	}

	c.JSON(http.StatusOK, HealthResponse{})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			General
// @Success		204
// @Router			/healthz [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
