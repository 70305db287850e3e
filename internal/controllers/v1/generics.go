package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pesibar-dev/sikera-backend/internal/httputil"
	"github.com/pesibar-dev/sikera-backend/internal/models"
)

// resourceOptionsDetail returns the appropriate response for an HTTP OPTIONS
// request for a specific resource.
func resourceOptionsDetail[R models.Agency | models.FundingSource | models.Activity | models.SubActivity | models.Allocation | models.SubAllocation | models.Realization | models.Monitoring | models.Signatory](c *gin.Context, resource R) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.First(&resource, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// deleteResource deletes a resource identified by the id URI parameter.
func deleteResource[R models.Agency | models.FundingSource | models.Activity | models.SubActivity | models.Signatory | models.MonitoringPhoto | models.BlankoItem](c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	var resource R
	err = models.DB.First(&resource, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	err = models.DB.Delete(&resource).Error
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
