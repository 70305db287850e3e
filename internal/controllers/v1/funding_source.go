package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pesibar-dev/sikera-backend/internal/httputil"
	"github.com/pesibar-dev/sikera-backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterFundingSourceRoutes registers the routes for funding sources with
// the RouterGroup that is passed.
func RegisterFundingSourceRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsFundingSourceList)
		r.GET("", GetFundingSources)
		r.POST("", CreateFundingSource)
	}

	// Funding source with ID
	{
		r.OPTIONS("/:id", OptionsFundingSourceDetail)
		r.GET("/:id", GetFundingSource)
		r.PATCH("/:id", UpdateFundingSource)
		r.DELETE("/:id", DeleteFundingSource)
	}
}

// FundingSourceEditable represents all user configurable parameters
type FundingSourceEditable struct {
	Name string `json:"name" example:"DAU" default:""` // Name of the funding source
}

func (editable FundingSourceEditable) model() models.FundingSource {
	return models.FundingSource{
		Name: editable.Name,
	}
}

type FundingSourceLinks struct {
	Self string `json:"self" example:"https://example.com/api/v1/funding-sources/3b1ea324-d438-4419-882a-2fc91d71772f"` // The funding source itself
}

type FundingSource struct {
	models.DefaultModel
	FundingSourceEditable
	Links FundingSourceLinks `json:"links"`
}

func newFundingSource(c *gin.Context, model models.FundingSource) FundingSource {
	return FundingSource{
		DefaultModel: model.DefaultModel,
		FundingSourceEditable: FundingSourceEditable{
			Name: model.Name,
		},
		Links: FundingSourceLinks{
			Self: fmt.Sprintf("%s/v1/funding-sources/%s", httputil.RequestHost(c), model.ID),
		},
	}
}

type FundingSourceListResponse struct {
	Data       []FundingSource `json:"data"`                                                          // List of funding sources
	Error      *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination     `json:"pagination"`                                                    // Pagination information
}

type FundingSourceResponse struct {
	Data  *FundingSource `json:"data"`                                                          // Data for the funding source
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type FundingSourceQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // By name
	Search string `form:"search" filterField:"false"` // By string in name
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first funding source returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of funding sources to return. Defaults to 50.
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			FundingSources
// @Success		204
// @Router			/v1/funding-sources [options]
func OptionsFundingSourceList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			FundingSources
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/funding-sources/{id} [options]
func OptionsFundingSourceDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.FundingSource{})
}

// @Summary		Create funding source
// @Description	Creates a new funding source
// @Tags			FundingSources
// @Produce		json
// @Success		201				{object}	FundingSourceResponse
// @Failure		400				{object}	FundingSourceResponse
// @Failure		500				{object}	FundingSourceResponse
// @Param			fundingSource	body		FundingSourceEditable	true	"Funding source"
// @Router			/v1/funding-sources [post]
func CreateFundingSource(c *gin.Context) {
	var editable FundingSourceEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), FundingSourceResponse{Error: errorString(err)})
		return
	}

	fundingSource := editable.model()
	err = models.DB.Create(&fundingSource).Error
	if err != nil {
		c.JSON(status(err), FundingSourceResponse{Error: errorString(err)})
		return
	}

	data := newFundingSource(c, fundingSource)
	c.JSON(http.StatusCreated, FundingSourceResponse{Data: &data})
}

// @Summary		Get funding sources
// @Description	Returns a list of funding sources
// @Tags			FundingSources
// @Produce		json
// @Success		200	{object}	FundingSourceListResponse
// @Failure		400	{object}	FundingSourceListResponse
// @Failure		500	{object}	FundingSourceListResponse
// @Router			/v1/funding-sources [get]
// @Param			name	query	string	false	"Filter by name"
// @Param			search	query	string	false	"Search for this text in the name"
// @Param			offset	query	uint	false	"The offset of the first funding source returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of funding sources to return. Defaults to 50."
func GetFundingSources(c *gin.Context) {
	var filter FundingSourceQueryFilter
	_ = c.Bind(&filter)

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.Order("name ASC")

	if filter.Name != "" {
		q = q.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Name))
	} else if slices.Contains(setFields, "Name") {
		q = q.Where("name = ''")
	}

	if filter.Search != "" {
		q = q.Where("name LIKE ?", fmt.Sprintf("%%%s%%", filter.Search))
	}

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var fundingSources []models.FundingSource
	err := q.Find(&fundingSources).Error
	if err != nil {
		c.JSON(status(err), FundingSourceListResponse{Error: errorString(err)})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		c.JSON(status(err), FundingSourceListResponse{Error: errorString(err)})
		return
	}

	data := make([]FundingSource, 0, len(fundingSources))
	for _, fundingSource := range fundingSources {
		data = append(data, newFundingSource(c, fundingSource))
	}

	c.JSON(http.StatusOK, FundingSourceListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get funding source
// @Description	Returns a specific funding source
// @Tags			FundingSources
// @Produce		json
// @Success		200	{object}	FundingSourceResponse
// @Failure		400	{object}	FundingSourceResponse
// @Failure		404	{object}	FundingSourceResponse
// @Failure		500	{object}	FundingSourceResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/funding-sources/{id} [get]
func GetFundingSource(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), FundingSourceResponse{Error: errorString(err)})
		return
	}

	var fundingSource models.FundingSource
	err = models.DB.First(&fundingSource, uri.ID).Error
	if err != nil {
		c.JSON(status(err), FundingSourceResponse{Error: errorString(err)})
		return
	}

	data := newFundingSource(c, fundingSource)
	c.JSON(http.StatusOK, FundingSourceResponse{Data: &data})
}

// @Summary		Update funding source
// @Description	Update an existing funding source. Only values to be updated need to be specified.
// @Tags			FundingSources
// @Accept			json
// @Produce		json
// @Success		200				{object}	FundingSourceResponse
// @Failure		400				{object}	FundingSourceResponse
// @Failure		404				{object}	FundingSourceResponse
// @Failure		500				{object}	FundingSourceResponse
// @Param			id				path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			fundingSource	body		FundingSourceEditable	true	"Funding source"
// @Router			/v1/funding-sources/{id} [patch]
func UpdateFundingSource(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), FundingSourceResponse{Error: errorString(err)})
		return
	}

	var fundingSource models.FundingSource
	err = models.DB.First(&fundingSource, uri.ID).Error
	if err != nil {
		c.JSON(status(err), FundingSourceResponse{Error: errorString(err)})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, FundingSourceEditable{})
	if err != nil {
		c.JSON(status(err), FundingSourceResponse{Error: errorString(err)})
		return
	}

	var data FundingSourceEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		c.JSON(status(err), FundingSourceResponse{Error: errorString(err)})
		return
	}

	err = models.DB.Model(&fundingSource).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		c.JSON(status(err), FundingSourceResponse{Error: errorString(err)})
		return
	}

	r := newFundingSource(c, fundingSource)
	c.JSON(http.StatusOK, FundingSourceResponse{Data: &r})
}

// @Summary		Delete funding source
// @Description	Deletes a funding source
// @Tags			FundingSources
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/funding-sources/{id} [delete]
func DeleteFundingSource(c *gin.Context) {
	deleteResource[models.FundingSource](c)
}
