package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pesibar-dev/sikera-backend/internal/httputil"
	"github.com/pesibar-dev/sikera-backend/internal/models"
	"github.com/pesibar-dev/sikera-backend/internal/types"
	ez_uuid "github.com/pesibar-dev/sikera-backend/internal/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// RegisterSubAllocationRoutes registers the routes for sub-activity
// allocations with the RouterGroup that is passed.
func RegisterSubAllocationRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsSubAllocationList)
		r.GET("", GetSubAllocations)
		r.POST("", CreateSubAllocation)
	}

	// Sub-allocation with ID
	{
		r.OPTIONS("/:id", OptionsSubAllocationDetail)
		r.GET("/:id", GetSubAllocation)
		r.PATCH("/:id", UpdateSubAllocation)
		r.DELETE("/:id", DeleteSubAllocation)
	}
}

// SubAllocationEditable represents all user configurable parameters
type SubAllocationEditable struct {
	AllocationID    uuid.UUID             `json:"allocationId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`    // ID of the budget document the line item belongs to
	SubActivityID   uuid.UUID             `json:"subActivityId" example:"d576d985-764a-4a50-8e43-e5bf80811f2a"`   // ID of the sub-activity being funded
	FundingSourceID uuid.UUID             `json:"fundingSourceId" example:"bf4f9db4-b6be-43e1-95b5-ce4ba9cbdf82"` // ID of the funding source
	Location        string                `json:"location" example:"Kecamatan Selatan" default:""`                // Where the work happens
	Target          string                `json:"target" example:"3 km jalan" default:""`                         // Output target
	Schedule        string                `json:"schedule" example:"Triwulan II" default:""`                      // Planned execution period
	Note            string                `json:"note" default:""`                                                // Notes about the line item
	Amounts         types.CategoryAmounts `json:"amounts"`                                                        // Amounts booked, by category
}

func (editable SubAllocationEditable) model() models.SubAllocation {
	return models.SubAllocation{
		AllocationID:    editable.AllocationID,
		SubActivityID:   editable.SubActivityID,
		FundingSourceID: editable.FundingSourceID,
		Location:        editable.Location,
		Target:          editable.Target,
		Schedule:        editable.Schedule,
		Note:            editable.Note,
		Amounts:         editable.Amounts,
	}
}

type SubAllocationLinks struct {
	Self       string `json:"self" example:"https://example.com/api/v1/sub-allocations/3b1ea324-d438-4419-882a-2fc91d71772f"` // The sub-allocation itself
	Allocation string `json:"allocation" example:"https://example.com/api/v1/allocations/52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // The budget document
}

type SubAllocation struct {
	models.DefaultModel
	SubAllocationEditable
	Total decimal.Decimal    `json:"total" example:"250000000"` // Sum of the category amounts
	Links SubAllocationLinks `json:"links"`
}

func newSubAllocation(c *gin.Context, model models.SubAllocation) SubAllocation {
	url := httputil.RequestHost(c)

	return SubAllocation{
		DefaultModel: model.DefaultModel,
		SubAllocationEditable: SubAllocationEditable{
			AllocationID:    model.AllocationID,
			SubActivityID:   model.SubActivityID,
			FundingSourceID: model.FundingSourceID,
			Location:        model.Location,
			Target:          model.Target,
			Schedule:        model.Schedule,
			Note:            model.Note,
			Amounts:         model.Amounts,
		},
		Total: model.Total,
		Links: SubAllocationLinks{
			Self:       fmt.Sprintf("%s/v1/sub-allocations/%s", url, model.ID),
			Allocation: fmt.Sprintf("%s/v1/allocations/%s", url, model.AllocationID),
		},
	}
}

type SubAllocationListResponse struct {
	Data       []SubAllocation `json:"data"`                                                          // List of sub-allocations
	Error      *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination     `json:"pagination"`                                                    // Pagination information
}

type SubAllocationResponse struct {
	Data  *SubAllocation `json:"data"`                                                          // Data for the sub-allocation
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type SubAllocationQueryFilter struct {
	AllocationID    ez_uuid.UUID `form:"allocation"`                 // By ID of the budget document
	SubActivityID   ez_uuid.UUID `form:"subActivity"`                // By ID of the sub-activity
	FundingSourceID ez_uuid.UUID `form:"fundingSource"`              // By ID of the funding source
	Offset          uint         `form:"offset" filterField:"false"` // The offset of the first sub-allocation returned. Defaults to 0.
	Limit           int          `form:"limit" filterField:"false"`  // Maximum number of sub-allocations to return. Defaults to 50.
}

func (f SubAllocationQueryFilter) model() models.SubAllocation {
	return models.SubAllocation{
		AllocationID:    f.AllocationID.UUID,
		SubActivityID:   f.SubActivityID.UUID,
		FundingSourceID: f.FundingSourceID.UUID,
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			SubAllocations
// @Success		204
// @Router			/v1/sub-allocations [options]
func OptionsSubAllocationList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			SubAllocations
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/sub-allocations/{id} [options]
func OptionsSubAllocationDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.SubAllocation{})
}

// @Summary		Create sub-allocation
// @Description	Books a sub-activity line item against a budget document. The amounts are added to the document's disbursed totals and merged into the realization record for the sub-activity.
// @Tags			SubAllocations
// @Produce		json
// @Success		201				{object}	SubAllocationResponse
// @Failure		400				{object}	SubAllocationResponse
// @Failure		404				{object}	SubAllocationResponse
// @Failure		500				{object}	SubAllocationResponse
// @Param			subAllocation	body		SubAllocationEditable	true	"Sub-allocation"
// @Router			/v1/sub-allocations [post]
func CreateSubAllocation(c *gin.Context) {
	var editable SubAllocationEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), SubAllocationResponse{Error: errorString(err)})
		return
	}

	sub := editable.model()
	err = models.AddSubAllocation(models.DB, &sub)
	if err != nil {
		c.JSON(status(err), SubAllocationResponse{Error: errorString(err)})
		return
	}

	data := newSubAllocation(c, sub)
	c.JSON(http.StatusCreated, SubAllocationResponse{Data: &data})
}

// @Summary		Get sub-allocations
// @Description	Returns a list of sub-activity allocations
// @Tags			SubAllocations
// @Produce		json
// @Success		200	{object}	SubAllocationListResponse
// @Failure		400	{object}	SubAllocationListResponse
// @Failure		500	{object}	SubAllocationListResponse
// @Router			/v1/sub-allocations [get]
// @Param			allocation		query	string	false	"Filter by budget document ID"
// @Param			subActivity		query	string	false	"Filter by sub-activity ID"
// @Param			fundingSource	query	string	false	"Filter by funding source ID"
// @Param			offset			query	uint	false	"The offset of the first sub-allocation returned. Defaults to 0."
// @Param			limit			query	int		false	"Maximum number of sub-allocations to return. Defaults to 50."
func GetSubAllocations(c *gin.Context) {
	var filter SubAllocationQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(status(err), SubAllocationListResponse{Error: errorString(err)})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("created_at ASC").
		Where(filter.model(), queryFields...)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var subs []models.SubAllocation
	err := q.Find(&subs).Error
	if err != nil {
		c.JSON(status(err), SubAllocationListResponse{Error: errorString(err)})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		c.JSON(status(err), SubAllocationListResponse{Error: errorString(err)})
		return
	}

	data := make([]SubAllocation, 0, len(subs))
	for _, sub := range subs {
		data = append(data, newSubAllocation(c, sub))
	}

	c.JSON(http.StatusOK, SubAllocationListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get sub-allocation
// @Description	Returns a specific sub-activity allocation
// @Tags			SubAllocations
// @Produce		json
// @Success		200	{object}	SubAllocationResponse
// @Failure		400	{object}	SubAllocationResponse
// @Failure		404	{object}	SubAllocationResponse
// @Failure		500	{object}	SubAllocationResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/sub-allocations/{id} [get]
func GetSubAllocation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), SubAllocationResponse{Error: errorString(err)})
		return
	}

	var sub models.SubAllocation
	err = models.DB.First(&sub, uri.ID).Error
	if err != nil {
		c.JSON(status(err), SubAllocationResponse{Error: errorString(err)})
		return
	}

	data := newSubAllocation(c, sub)
	c.JSON(http.StatusOK, SubAllocationResponse{Data: &data})
}

// @Summary		Update sub-allocation
// @Description	Replaces a sub-activity line item. The new amounts are booked against the budget document.
// @Tags			SubAllocations
// @Accept			json
// @Produce		json
// @Success		200				{object}	SubAllocationResponse
// @Failure		400				{object}	SubAllocationResponse
// @Failure		404				{object}	SubAllocationResponse
// @Failure		500				{object}	SubAllocationResponse
// @Param			id				path		URIID					true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			subAllocation	body		SubAllocationEditable	true	"Sub-allocation"
// @Router			/v1/sub-allocations/{id} [patch]
func UpdateSubAllocation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), SubAllocationResponse{Error: errorString(err)})
		return
	}

	var editable SubAllocationEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), SubAllocationResponse{Error: errorString(err)})
		return
	}

	err = models.UpdateSubAllocation(models.DB, uri.ID.UUID, editable.model())
	if err != nil {
		c.JSON(status(err), SubAllocationResponse{Error: errorString(err)})
		return
	}

	var sub models.SubAllocation
	err = models.DB.First(&sub, uri.ID).Error
	if err != nil {
		c.JSON(status(err), SubAllocationResponse{Error: errorString(err)})
		return
	}

	data := newSubAllocation(c, sub)
	c.JSON(http.StatusOK, SubAllocationResponse{Data: &data})
}

// @Summary		Delete sub-allocation
// @Description	Deletes a sub-activity line item and reverses its booking on the budget document
// @Tags			SubAllocations
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/sub-allocations/{id} [delete]
func DeleteSubAllocation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DeleteSubAllocation(models.DB, uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
