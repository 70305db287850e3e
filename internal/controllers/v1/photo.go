package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pesibar-dev/sikera-backend/internal/httputil"
	"github.com/pesibar-dev/sikera-backend/internal/models"
)

// RegisterMonitoringPhotoRoutes registers the routes for photo documentation
// records with the RouterGroup that is passed.
//
// Photos are created through their monitoring record, see
// CreateMonitoringPhoto.
func RegisterMonitoringPhotoRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:id", OptionsMonitoringPhotoDetail)
	r.DELETE("/:id", DeleteMonitoringPhoto)
}

// MonitoringPhotoEditable represents all user configurable parameters
type MonitoringPhotoEditable struct {
	URL     string     `json:"url" example:"https://storage.example.com/photos/abc.jpg" default:""` // URL of the uploaded photo
	Caption string     `json:"caption" example:"Pengecoran lantai kerja" default:""`                // Caption of the photo
	TakenAt *time.Time `json:"takenAt" example:"2024-05-17T09:31:00Z"`                              // When the photo was taken
}

func (editable MonitoringPhotoEditable) model() models.MonitoringPhoto {
	return models.MonitoringPhoto{
		URL:     editable.URL,
		Caption: editable.Caption,
		TakenAt: editable.TakenAt,
	}
}

type MonitoringPhotoLinks struct {
	Self       string `json:"self" example:"https://example.com/api/v1/monitoring-photos/3b1ea324-d438-4419-882a-2fc91d71772f"` // The photo record itself
	Monitoring string `json:"monitoring" example:"https://example.com/api/v1/monitorings/d576d985-764a-4a50-8e43-e5bf80811f2a"` // The monitoring record
}

type MonitoringPhoto struct {
	models.DefaultModel
	MonitoringPhotoEditable
	MonitoringID string               `json:"monitoringId" example:"d576d985-764a-4a50-8e43-e5bf80811f2a"` // ID of the monitoring record
	Links        MonitoringPhotoLinks `json:"links"`
}

func newMonitoringPhoto(c *gin.Context, model models.MonitoringPhoto) MonitoringPhoto {
	url := httputil.RequestHost(c)

	return MonitoringPhoto{
		DefaultModel: model.DefaultModel,
		MonitoringPhotoEditable: MonitoringPhotoEditable{
			URL:     model.URL,
			Caption: model.Caption,
			TakenAt: model.TakenAt,
		},
		MonitoringID: model.MonitoringID.String(),
		Links: MonitoringPhotoLinks{
			Self:       fmt.Sprintf("%s/v1/monitoring-photos/%s", url, model.ID),
			Monitoring: fmt.Sprintf("%s/v1/monitorings/%s", url, model.MonitoringID),
		},
	}
}

type MonitoringPhotoListResponse struct {
	Data  []MonitoringPhoto `json:"data"`                                                          // List of photo records
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type MonitoringPhotoResponse struct {
	Data  *MonitoringPhoto `json:"data"`                                                          // Data for the photo record
	Error *string          `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Monitorings
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/monitorings/{id}/photos [options]
func OptionsMonitoringPhotos(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Monitoring{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPost(c)
}

// @Summary		Get photos
// @Description	Returns the photo documentation of a monitoring record
// @Tags			Monitorings
// @Produce		json
// @Success		200	{object}	MonitoringPhotoListResponse
// @Failure		400	{object}	MonitoringPhotoListResponse
// @Failure		404	{object}	MonitoringPhotoListResponse
// @Failure		500	{object}	MonitoringPhotoListResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/monitorings/{id}/photos [get]
func GetMonitoringPhotos(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), MonitoringPhotoListResponse{Error: errorString(err)})
		return
	}

	var monitoring models.Monitoring
	err = models.DB.First(&monitoring, uri.ID).Error
	if err != nil {
		c.JSON(status(err), MonitoringPhotoListResponse{Error: errorString(err)})
		return
	}

	var photos []models.MonitoringPhoto
	err = models.DB.
		Where(&models.MonitoringPhoto{MonitoringID: monitoring.ID}).
		Order("taken_at ASC, created_at ASC").
		Find(&photos).Error
	if err != nil {
		c.JSON(status(err), MonitoringPhotoListResponse{Error: errorString(err)})
		return
	}

	data := make([]MonitoringPhoto, 0, len(photos))
	for _, photo := range photos {
		data = append(data, newMonitoringPhoto(c, photo))
	}

	c.JSON(http.StatusOK, MonitoringPhotoListResponse{Data: data})
}

// @Summary		Create photo
// @Description	Adds a photo documentation record to a monitoring record. The photo itself must already be uploaded, only its URL is stored.
// @Tags			Monitorings
// @Produce		json
// @Success		201		{object}	MonitoringPhotoResponse
// @Failure		400		{object}	MonitoringPhotoResponse
// @Failure		404		{object}	MonitoringPhotoResponse
// @Failure		500		{object}	MonitoringPhotoResponse
// @Param			id		path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			photo	body		MonitoringPhotoEditable	true	"Photo"
// @Router			/v1/monitorings/{id}/photos [post]
func CreateMonitoringPhoto(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), MonitoringPhotoResponse{Error: errorString(err)})
		return
	}

	var monitoring models.Monitoring
	err = models.DB.First(&monitoring, uri.ID).Error
	if err != nil {
		c.JSON(status(err), MonitoringPhotoResponse{Error: errorString(err)})
		return
	}

	var editable MonitoringPhotoEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), MonitoringPhotoResponse{Error: errorString(err)})
		return
	}

	photo := editable.model()
	photo.MonitoringID = monitoring.ID

	err = models.DB.Create(&photo).Error
	if err != nil {
		c.JSON(status(err), MonitoringPhotoResponse{Error: errorString(err)})
		return
	}

	data := newMonitoringPhoto(c, photo)
	c.JSON(http.StatusCreated, MonitoringPhotoResponse{Data: &data})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Monitorings
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/monitoring-photos/{id} [options]
func OptionsMonitoringPhotoDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.MonitoringPhoto{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsDelete(c)
}

// @Summary		Delete photo
// @Description	Deletes a photo documentation record
// @Tags			Monitorings
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/monitoring-photos/{id} [delete]
func DeleteMonitoringPhoto(c *gin.Context) {
	deleteResource[models.MonitoringPhoto](c)
}
