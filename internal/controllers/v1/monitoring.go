package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pesibar-dev/sikera-backend/internal/httputil"
	"github.com/pesibar-dev/sikera-backend/internal/models"
	ez_uuid "github.com/pesibar-dev/sikera-backend/internal/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// RegisterMonitoringRoutes registers the routes for construction monitoring
// records with the RouterGroup that is passed.
func RegisterMonitoringRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsMonitoringList)
		r.GET("", GetMonitorings)
		r.POST("", CreateMonitoring)
	}

	// Monitoring with ID
	{
		r.OPTIONS("/:id", OptionsMonitoringDetail)
		r.GET("/:id", GetMonitoring)
		r.PATCH("/:id", UpdateMonitoring)
		r.DELETE("/:id", DeleteMonitoring)
	}

	// Photo documentation
	{
		r.OPTIONS("/:id/photos", OptionsMonitoringPhotos)
		r.GET("/:id/photos", GetMonitoringPhotos)
		r.POST("/:id/photos", CreateMonitoringPhoto)
	}

	// Itemized cost breakdown
	{
		r.OPTIONS("/:id/blanko", OptionsMonitoringBlanko)
		r.GET("/:id/blanko", GetMonitoringBlanko)
	}
}

// MonitoringEditable represents all user configurable parameters
type MonitoringEditable struct {
	AgencyID      uuid.UUID `json:"agencyId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`      // ID of the agency
	SubActivityID uuid.UUID `json:"subActivityId" example:"d576d985-764a-4a50-8e43-e5bf80811f2a"` // ID of the sub-activity the contract belongs to
	Year          uint      `json:"year" example:"2024"`                                          // Fiscal year

	JobName        string          `json:"jobName" example:"Rehabilitasi Jembatan Kali Putih" default:""` // Name of the job
	Contractor     string          `json:"contractor" example:"PT Karya Membangun" default:""`            // Executing contractor
	ContractValue  decimal.Decimal `json:"contractValue" example:"750000000"`                             // Contract value
	ContractNumber string          `json:"contractNumber" example:"SPK/12/2024" default:""`               // Contract number

	ProcurementType      string     `json:"procurementType" default:""`                // Type of procurement
	ProcurementMechanism string     `json:"procurementMechanism" default:""`           // Procurement mechanism
	SelfManaged          string     `json:"selfManaged" default:""`                    // Swakelola classification
	ContractDate         *time.Time `json:"contractDate" example:"2024-03-04T00:00:00Z"` // Date the contract was signed
	StartDate            *time.Time `json:"startDate" example:"2024-03-11T00:00:00Z"`  // Start of the work
	EndDate              *time.Time `json:"endDate" example:"2024-09-08T00:00:00Z"`    // Contractual end of the work
	Officer              string     `json:"officer" default:""`                        // Contract officer
	Location             string     `json:"location" default:""`                       // Where the work happens
	Obstacles            string     `json:"obstacles" default:""`                      // Observed obstacles
	Workforce            uint       `json:"workforce" example:"25"`                    // Workers on site
	SafetyMeasures       string     `json:"safetyMeasures" default:""`                 // Work safety measures
	Note                 string     `json:"note" default:""`                           // Notes about the record
	Progress             string     `json:"progress" example:"65%" default:""`         // Physical progress

	HasInsurance     bool   `json:"hasInsurance" example:"true" default:"false"`     // Workers are insured
	HasAccidentPlan  bool   `json:"hasAccidentPlan" example:"true" default:"false"`  // An accident response plan exists
	HasFirstAid      bool   `json:"hasFirstAid" example:"true" default:"false"`      // First aid is available on site
	HasSignage       bool   `json:"hasSignage" example:"true" default:"false"`       // Safety signage is in place
	WorkerOrigin     string `json:"workerOrigin" default:""`                         // Where the workers come from
	HasCertifiedCrew bool   `json:"hasCertifiedCrew" example:"true" default:"false"` // The crew holds the required certificates
	WorkerCount      uint   `json:"workerCount" example:"25"`                        // Total number of workers
	LocalWorkers     uint   `json:"localWorkers" example:"18"`                       // Workers hired locally
	NonLocalWorkers  uint   `json:"nonLocalWorkers" example:"7"`                     // Workers hired elsewhere
	LocalMaterial    string `json:"localMaterial" default:""`                        // Locally sourced material
	NonLocalMaterial string `json:"nonLocalMaterial" default:""`                     // Material sourced elsewhere
}

func (editable MonitoringEditable) model() models.Monitoring {
	return models.Monitoring{
		AgencyID:             editable.AgencyID,
		SubActivityID:        editable.SubActivityID,
		Year:                 editable.Year,
		JobName:              editable.JobName,
		Contractor:           editable.Contractor,
		ContractValue:        editable.ContractValue,
		ContractNumber:       editable.ContractNumber,
		ProcurementType:      editable.ProcurementType,
		ProcurementMechanism: editable.ProcurementMechanism,
		SelfManaged:          editable.SelfManaged,
		ContractDate:         editable.ContractDate,
		StartDate:            editable.StartDate,
		EndDate:              editable.EndDate,
		Officer:              editable.Officer,
		Location:             editable.Location,
		Obstacles:            editable.Obstacles,
		Workforce:            editable.Workforce,
		SafetyMeasures:       editable.SafetyMeasures,
		Note:                 editable.Note,
		Progress:             editable.Progress,
		HasInsurance:         editable.HasInsurance,
		HasAccidentPlan:      editable.HasAccidentPlan,
		HasFirstAid:          editable.HasFirstAid,
		HasSignage:           editable.HasSignage,
		WorkerOrigin:         editable.WorkerOrigin,
		HasCertifiedCrew:     editable.HasCertifiedCrew,
		WorkerCount:          editable.WorkerCount,
		LocalWorkers:         editable.LocalWorkers,
		NonLocalWorkers:      editable.NonLocalWorkers,
		LocalMaterial:        editable.LocalMaterial,
		NonLocalMaterial:     editable.NonLocalMaterial,
	}
}

type MonitoringLinks struct {
	Self   string `json:"self" example:"https://example.com/api/v1/monitorings/3b1ea324-d438-4419-882a-2fc91d71772f"`          // The monitoring itself
	Photos string `json:"photos" example:"https://example.com/api/v1/monitorings/3b1ea324-d438-4419-882a-2fc91d71772f/photos"` // Photo documentation
	Blanko string `json:"blanko" example:"https://example.com/api/v1/monitorings/3b1ea324-d438-4419-882a-2fc91d71772f/blanko"` // Itemized cost breakdown
}

type Monitoring struct {
	models.DefaultModel
	MonitoringEditable
	Links MonitoringLinks `json:"links"`
}

func newMonitoring(c *gin.Context, model models.Monitoring) Monitoring {
	url := httputil.RequestHost(c)

	return Monitoring{
		DefaultModel: model.DefaultModel,
		MonitoringEditable: MonitoringEditable{
			AgencyID:             model.AgencyID,
			SubActivityID:        model.SubActivityID,
			Year:                 model.Year,
			JobName:              model.JobName,
			Contractor:           model.Contractor,
			ContractValue:        model.ContractValue,
			ContractNumber:       model.ContractNumber,
			ProcurementType:      model.ProcurementType,
			ProcurementMechanism: model.ProcurementMechanism,
			SelfManaged:          model.SelfManaged,
			ContractDate:         model.ContractDate,
			StartDate:            model.StartDate,
			EndDate:              model.EndDate,
			Officer:              model.Officer,
			Location:             model.Location,
			Obstacles:            model.Obstacles,
			Workforce:            model.Workforce,
			SafetyMeasures:       model.SafetyMeasures,
			Note:                 model.Note,
			Progress:             model.Progress,
			HasInsurance:         model.HasInsurance,
			HasAccidentPlan:      model.HasAccidentPlan,
			HasFirstAid:          model.HasFirstAid,
			HasSignage:           model.HasSignage,
			WorkerOrigin:         model.WorkerOrigin,
			HasCertifiedCrew:     model.HasCertifiedCrew,
			WorkerCount:          model.WorkerCount,
			LocalWorkers:         model.LocalWorkers,
			NonLocalWorkers:      model.NonLocalWorkers,
			LocalMaterial:        model.LocalMaterial,
			NonLocalMaterial:     model.NonLocalMaterial,
		},
		Links: MonitoringLinks{
			Self:   fmt.Sprintf("%s/v1/monitorings/%s", url, model.ID),
			Photos: fmt.Sprintf("%s/v1/monitorings/%s/photos", url, model.ID),
			Blanko: fmt.Sprintf("%s/v1/monitorings/%s/blanko", url, model.ID),
		},
	}
}

type MonitoringListResponse struct {
	Data       []Monitoring `json:"data"`                                                          // List of monitoring records
	Error      *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination  `json:"pagination"`                                                    // Pagination information
}

type MonitoringResponse struct {
	Data  *Monitoring `json:"data"`                                                          // Data for the monitoring record
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type MonitoringQueryFilter struct {
	AgencyID      ez_uuid.UUID `form:"agency"`                      // By ID of the agency
	SubActivityID ez_uuid.UUID `form:"subActivity"`                 // By ID of the sub-activity
	Year          uint         `form:"year"`                        // By fiscal year
	JobName       string       `form:"jobName" filterField:"false"` // By job name
	Offset        uint         `form:"offset" filterField:"false"`  // The offset of the first record returned. Defaults to 0.
	Limit         int          `form:"limit" filterField:"false"`   // Maximum number of records to return. Defaults to 50.
}

func (f MonitoringQueryFilter) model() models.Monitoring {
	return models.Monitoring{
		AgencyID:      f.AgencyID.UUID,
		SubActivityID: f.SubActivityID.UUID,
		Year:          f.Year,
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Monitorings
// @Success		204
// @Router			/v1/monitorings [options]
func OptionsMonitoringList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Monitorings
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/monitorings/{id} [options]
func OptionsMonitoringDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Monitoring{})
}

// @Summary		Create monitoring
// @Description	Creates a new construction monitoring record
// @Tags			Monitorings
// @Produce		json
// @Success		201			{object}	MonitoringResponse
// @Failure		400			{object}	MonitoringResponse
// @Failure		404			{object}	MonitoringResponse
// @Failure		500			{object}	MonitoringResponse
// @Param			monitoring	body		MonitoringEditable	true	"Monitoring"
// @Router			/v1/monitorings [post]
func CreateMonitoring(c *gin.Context) {
	var editable MonitoringEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), MonitoringResponse{Error: errorString(err)})
		return
	}

	monitoring := editable.model()
	err = models.DB.Create(&monitoring).Error
	if err != nil {
		c.JSON(status(err), MonitoringResponse{Error: errorString(err)})
		return
	}

	data := newMonitoring(c, monitoring)
	c.JSON(http.StatusCreated, MonitoringResponse{Data: &data})
}

// @Summary		Get monitorings
// @Description	Returns a list of construction monitoring records
// @Tags			Monitorings
// @Produce		json
// @Success		200	{object}	MonitoringListResponse
// @Failure		400	{object}	MonitoringListResponse
// @Failure		500	{object}	MonitoringListResponse
// @Router			/v1/monitorings [get]
// @Param			agency		query	string	false	"Filter by agency ID"
// @Param			subActivity	query	string	false	"Filter by sub-activity ID"
// @Param			year		query	uint	false	"Filter by fiscal year"
// @Param			jobName		query	string	false	"Filter by job name"
// @Param			offset		query	uint	false	"The offset of the first record returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of records to return. Defaults to 50."
func GetMonitorings(c *gin.Context) {
	var filter MonitoringQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(status(err), MonitoringListResponse{Error: errorString(err)})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("created_at DESC").
		Where(filter.model(), queryFields...)

	if filter.JobName != "" {
		q = q.Where("job_name LIKE ?", fmt.Sprintf("%%%s%%", filter.JobName))
	}

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var monitorings []models.Monitoring
	err := q.Find(&monitorings).Error
	if err != nil {
		c.JSON(status(err), MonitoringListResponse{Error: errorString(err)})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		c.JSON(status(err), MonitoringListResponse{Error: errorString(err)})
		return
	}

	data := make([]Monitoring, 0, len(monitorings))
	for _, monitoring := range monitorings {
		data = append(data, newMonitoring(c, monitoring))
	}

	c.JSON(http.StatusOK, MonitoringListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get monitoring
// @Description	Returns a specific construction monitoring record
// @Tags			Monitorings
// @Produce		json
// @Success		200	{object}	MonitoringResponse
// @Failure		400	{object}	MonitoringResponse
// @Failure		404	{object}	MonitoringResponse
// @Failure		500	{object}	MonitoringResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/monitorings/{id} [get]
func GetMonitoring(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), MonitoringResponse{Error: errorString(err)})
		return
	}

	var monitoring models.Monitoring
	err = models.DB.First(&monitoring, uri.ID).Error
	if err != nil {
		c.JSON(status(err), MonitoringResponse{Error: errorString(err)})
		return
	}

	data := newMonitoring(c, monitoring)
	c.JSON(http.StatusOK, MonitoringResponse{Data: &data})
}

// @Summary		Update monitoring
// @Description	Update an existing monitoring record. Only values to be updated need to be specified.
// @Tags			Monitorings
// @Accept			json
// @Produce		json
// @Success		200			{object}	MonitoringResponse
// @Failure		400			{object}	MonitoringResponse
// @Failure		404			{object}	MonitoringResponse
// @Failure		500			{object}	MonitoringResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			monitoring	body		MonitoringEditable	true	"Monitoring"
// @Router			/v1/monitorings/{id} [patch]
func UpdateMonitoring(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), MonitoringResponse{Error: errorString(err)})
		return
	}

	var monitoring models.Monitoring
	err = models.DB.First(&monitoring, uri.ID).Error
	if err != nil {
		c.JSON(status(err), MonitoringResponse{Error: errorString(err)})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, MonitoringEditable{})
	if err != nil {
		c.JSON(status(err), MonitoringResponse{Error: errorString(err)})
		return
	}

	var data MonitoringEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		c.JSON(status(err), MonitoringResponse{Error: errorString(err)})
		return
	}

	err = models.DB.Model(&monitoring).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		c.JSON(status(err), MonitoringResponse{Error: errorString(err)})
		return
	}

	r := newMonitoring(c, monitoring)
	c.JSON(http.StatusOK, MonitoringResponse{Data: &r})
}

// @Summary		Delete monitoring
// @Description	Deletes a monitoring record with its photos and cost breakdown
// @Tags			Monitorings
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/monitorings/{id} [delete]
func DeleteMonitoring(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var monitoring models.Monitoring
	err = models.DB.First(&monitoring, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DeleteMonitoring(models.DB, monitoring.ID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
