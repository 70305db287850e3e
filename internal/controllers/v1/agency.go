package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pesibar-dev/sikera-backend/internal/httputil"
	"github.com/pesibar-dev/sikera-backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterAgencyRoutes registers the routes for agencies with
// the RouterGroup that is passed.
func RegisterAgencyRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsAgencyList)
		r.GET("", GetAgencies)
		r.POST("", CreateAgency)
	}

	// Agency with ID
	{
		r.OPTIONS("/:id", OptionsAgencyDetail)
		r.GET("/:id", GetAgency)
		r.PATCH("/:id", UpdateAgency)
		r.DELETE("/:id", DeleteAgency)
	}
}

// AgencyEditable represents all user configurable parameters
type AgencyEditable struct {
	Name string `json:"name" example:"Dinas Pekerjaan Umum" default:""` // Name of the agency
	Note string `json:"note" example:"Bidang Bina Marga" default:""`   // Notes about the agency
}

func (editable AgencyEditable) model() models.Agency {
	return models.Agency{
		Name: editable.Name,
		Note: editable.Note,
	}
}

type AgencyLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/agencies/3b1ea324-d438-4419-882a-2fc91d71772f"`               // The agency itself
	Allocations string `json:"allocations" example:"https://example.com/api/v1/allocations?agency=3b1ea324-d438-4419-882a-2fc91d71772f"` // Allocations for this agency
}

type Agency struct {
	models.DefaultModel
	AgencyEditable
	Links AgencyLinks `json:"links"`
}

func newAgency(c *gin.Context, model models.Agency) Agency {
	url := httputil.RequestHost(c)

	return Agency{
		DefaultModel: model.DefaultModel,
		AgencyEditable: AgencyEditable{
			Name: model.Name,
			Note: model.Note,
		},
		Links: AgencyLinks{
			Self:        fmt.Sprintf("%s/v1/agencies/%s", url, model.ID),
			Allocations: fmt.Sprintf("%s/v1/allocations?agency=%s", url, model.ID),
		},
	}
}

type AgencyListResponse struct {
	Data       []Agency    `json:"data"`                                                          // List of agencies
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type AgencyResponse struct {
	Data  *Agency `json:"data"`                                                          // Data for the agency
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AgencyQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Note   string `form:"note" filterField:"false"`   // By note
	Search string `form:"search" filterField:"false"` // By string in name or note
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first agency returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of agencies to return. Defaults to 50.
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Agencies
// @Success		204
// @Router			/v1/agencies [options]
func OptionsAgencyList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Agencies
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/agencies/{id} [options]
func OptionsAgencyDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Agency{})
}

// @Summary		Create agency
// @Description	Creates a new agency
// @Tags			Agencies
// @Produce		json
// @Success		201		{object}	AgencyResponse
// @Failure		400		{object}	AgencyResponse
// @Failure		500		{object}	AgencyResponse
// @Param			agency	body		AgencyEditable	true	"Agency"
// @Router			/v1/agencies [post]
func CreateAgency(c *gin.Context) {
	var editable AgencyEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), AgencyResponse{Error: errorString(err)})
		return
	}

	agency := editable.model()
	err = models.DB.Create(&agency).Error
	if err != nil {
		c.JSON(status(err), AgencyResponse{Error: errorString(err)})
		return
	}

	data := newAgency(c, agency)
	c.JSON(http.StatusCreated, AgencyResponse{Data: &data})
}

// @Summary		Get agencies
// @Description	Returns a list of agencies
// @Tags			Agencies
// @Produce		json
// @Success		200	{object}	AgencyListResponse
// @Failure		400	{object}	AgencyListResponse
// @Failure		500	{object}	AgencyListResponse
// @Router			/v1/agencies [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			note	query	string	false	"Filter by note"
// @Param			search	query	string	false	"Search for this text in name and note"
// @Param			offset	query	uint	false	"The offset of the first agency returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of agencies to return. Defaults to 50."
func GetAgencies(c *gin.Context) {
	var filter AgencyQueryFilter

	// Every parameter is bound into a string, so this will always succeed
	_ = c.Bind(&filter)

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.Order("name ASC")
	q = stringFilters(models.DB, q, setFields, filter.Name, filter.Note, filter.Search)

	// Set the offset. Does not need checking since the default is 0
	q = q.Offset(int(filter.Offset))

	// Default to 50 agencies and set the limit
	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var agencies []models.Agency
	err := q.Find(&agencies).Error
	if err != nil {
		c.JSON(status(err), AgencyListResponse{Error: errorString(err)})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		c.JSON(status(err), AgencyListResponse{Error: errorString(err)})
		return
	}

	data := make([]Agency, 0, len(agencies))
	for _, agency := range agencies {
		data = append(data, newAgency(c, agency))
	}

	c.JSON(http.StatusOK, AgencyListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get agency
// @Description	Returns a specific agency
// @Tags			Agencies
// @Produce		json
// @Success		200	{object}	AgencyResponse
// @Failure		400	{object}	AgencyResponse
// @Failure		404	{object}	AgencyResponse
// @Failure		500	{object}	AgencyResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/agencies/{id} [get]
func GetAgency(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), AgencyResponse{Error: errorString(err)})
		return
	}

	var agency models.Agency
	err = models.DB.First(&agency, uri.ID).Error
	if err != nil {
		c.JSON(status(err), AgencyResponse{Error: errorString(err)})
		return
	}

	data := newAgency(c, agency)
	c.JSON(http.StatusOK, AgencyResponse{Data: &data})
}

// @Summary		Update agency
// @Description	Update an existing agency. Only values to be updated need to be specified.
// @Tags			Agencies
// @Accept			json
// @Produce		json
// @Success		200		{object}	AgencyResponse
// @Failure		400		{object}	AgencyResponse
// @Failure		404		{object}	AgencyResponse
// @Failure		500		{object}	AgencyResponse
// @Param			id		path		URIID			true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			agency	body		AgencyEditable	true	"Agency"
// @Router			/v1/agencies/{id} [patch]
func UpdateAgency(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), AgencyResponse{Error: errorString(err)})
		return
	}

	var agency models.Agency
	err = models.DB.First(&agency, uri.ID).Error
	if err != nil {
		c.JSON(status(err), AgencyResponse{Error: errorString(err)})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, AgencyEditable{})
	if err != nil {
		c.JSON(status(err), AgencyResponse{Error: errorString(err)})
		return
	}

	var data AgencyEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		c.JSON(status(err), AgencyResponse{Error: errorString(err)})
		return
	}

	err = models.DB.Model(&agency).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		c.JSON(status(err), AgencyResponse{Error: errorString(err)})
		return
	}

	r := newAgency(c, agency)
	c.JSON(http.StatusOK, AgencyResponse{Data: &r})
}

// @Summary		Delete agency
// @Description	Deletes an agency
// @Tags			Agencies
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/agencies/{id} [delete]
func DeleteAgency(c *gin.Context) {
	deleteResource[models.Agency](c)
}
