package v1

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pesibar-dev/sikera-backend/internal/httputil"
	"github.com/pesibar-dev/sikera-backend/internal/models"
	"github.com/pesibar-dev/sikera-backend/internal/types"
	ez_uuid "github.com/pesibar-dev/sikera-backend/internal/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterAllocationRoutes registers the routes for allocations with
// the RouterGroup that is passed.
func RegisterAllocationRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsAllocationList)
		r.GET("", GetAllocations)
		r.POST("", CreateAllocation)
	}

	// Allocation with ID
	{
		r.OPTIONS("/:id", OptionsAllocationDetail)
		r.GET("/:id", GetAllocation)
		r.PATCH("/:id", UpdateAllocation)
		r.DELETE("/:id", DeleteAllocation)
	}

	// Disbursement plan
	{
		r.OPTIONS("/:id/plan", OptionsAllocationPlan)
		r.GET("/:id/plan", GetAllocationPlan)
		r.PUT("/:id/plan", PutAllocationPlan)
	}

	// Signatories
	{
		r.OPTIONS("/:id/signatories", OptionsAllocationSignatories)
		r.GET("/:id/signatories", GetAllocationSignatories)
		r.POST("/:id/signatories", CreateAllocationSignatory)
	}

	// Report export
	{
		r.OPTIONS("/:id/export", OptionsAllocationExport)
		r.GET("/:id/export", GetAllocationExport)
	}
}

// AllocationEditable represents all user configurable parameters
type AllocationEditable struct {
	Number         string          `json:"number" example:"DPA/A.1/1.03.0.00.0.00.01.0000/001/2024" default:""` // Document number
	AgencyID       uuid.UUID       `json:"agencyId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`             // ID of the agency the document belongs to
	Year           uint            `json:"year" example:"2024"`                                                 // Fiscal year. Defaults to the current year.
	Deadline       *time.Time      `json:"deadline" example:"2024-12-20T00:00:00Z"`                             // Disbursement deadline
	ActivityID     *uuid.UUID      `json:"activityId" example:"d576d985-764a-4a50-8e43-e5bf80811f2a"`           // ID of the activity, set by the detail step
	TotalAllocated decimal.Decimal `json:"totalAllocated" example:"1500000000"`                                 // Total amount allocated by the document
}

func (editable AllocationEditable) model() models.Allocation {
	return models.Allocation{
		Number:         editable.Number,
		AgencyID:       editable.AgencyID,
		Year:           editable.Year,
		Deadline:       editable.Deadline,
		ActivityID:     editable.ActivityID,
		TotalAllocated: editable.TotalAllocated,
	}
}

type AllocationLinks struct {
	Self           string `json:"self" example:"https://example.com/api/v1/allocations/3b1ea324-d438-4419-882a-2fc91d71772f"`                            // The allocation itself
	Plan           string `json:"plan" example:"https://example.com/api/v1/allocations/3b1ea324-d438-4419-882a-2fc91d71772f/plan"`                       // The disbursement plan
	Signatories    string `json:"signatories" example:"https://example.com/api/v1/allocations/3b1ea324-d438-4419-882a-2fc91d71772f/signatories"`         // Signatories of the document
	Export         string `json:"export" example:"https://example.com/api/v1/allocations/3b1ea324-d438-4419-882a-2fc91d71772f/export"`                   // XLSX report for the allocation
	SubAllocations string `json:"subAllocations" example:"https://example.com/api/v1/sub-allocations?allocation=3b1ea324-d438-4419-882a-2fc91d71772f"` // Sub-activity allocations of the document
}

type Allocation struct {
	models.DefaultModel
	AllocationEditable

	// These fields are maintained by the ledger
	TotalDisbursed decimal.Decimal       `json:"totalDisbursed" example:"350000000"` // Sum of all booked sub-activity allocations
	TotalRemaining decimal.Decimal       `json:"totalRemaining" example:"1150000000"` // Allocated minus disbursed
	Allocated      types.CategoryAmounts `json:"allocated"`                          // Per-category allocated amounts
	Disbursed      types.CategoryAmounts `json:"disbursed"`                          // Per-category disbursed amounts
	Remaining      types.CategoryAmounts `json:"remaining"`                          // Per-category remaining amounts

	Links AllocationLinks `json:"links"`
}

func newAllocation(c *gin.Context, model models.Allocation) Allocation {
	url := httputil.RequestHost(c)

	return Allocation{
		DefaultModel: model.DefaultModel,
		AllocationEditable: AllocationEditable{
			Number:         model.Number,
			AgencyID:       model.AgencyID,
			Year:           model.Year,
			Deadline:       model.Deadline,
			ActivityID:     model.ActivityID,
			TotalAllocated: model.TotalAllocated,
		},
		TotalDisbursed: model.TotalDisbursed,
		TotalRemaining: model.TotalRemaining,
		Allocated:      model.Allocated,
		Disbursed:      model.Disbursed,
		Remaining:      model.Remaining,
		Links: AllocationLinks{
			Self:           fmt.Sprintf("%s/v1/allocations/%s", url, model.ID),
			Plan:           fmt.Sprintf("%s/v1/allocations/%s/plan", url, model.ID),
			Signatories:    fmt.Sprintf("%s/v1/allocations/%s/signatories", url, model.ID),
			Export:         fmt.Sprintf("%s/v1/allocations/%s/export", url, model.ID),
			SubAllocations: fmt.Sprintf("%s/v1/sub-allocations?allocation=%s", url, model.ID),
		},
	}
}

type AllocationListResponse struct {
	Data       []Allocation `json:"data"`                                                          // List of allocations
	Error      *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination  `json:"pagination"`                                                    // Pagination information
}

type AllocationResponse struct {
	Data  *Allocation `json:"data"`                                                          // Data for the allocation
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type AllocationQueryFilter struct {
	AgencyID ez_uuid.UUID `form:"agency"`                     // By ID of the agency
	Year     uint         `form:"year"`                       // By fiscal year
	Number   string       `form:"number" filterField:"false"` // By document number
	Offset   uint         `form:"offset" filterField:"false"` // The offset of the first allocation returned. Defaults to 0.
	Limit    int          `form:"limit" filterField:"false"`  // Maximum number of allocations to return. Defaults to 50.
}

func (f AllocationQueryFilter) model() models.Allocation {
	return models.Allocation{
		AgencyID: f.AgencyID.UUID,
		Year:     f.Year,
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Allocations
// @Success		204
// @Router			/v1/allocations [options]
func OptionsAllocationList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Allocations
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/allocations/{id} [options]
func OptionsAllocationDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Allocation{})
}

// @Summary		Create allocation
// @Description	Creates a new budget allocation document with its twelve-month disbursement plan
// @Tags			Allocations
// @Produce		json
// @Success		201			{object}	AllocationResponse
// @Failure		400			{object}	AllocationResponse
// @Failure		404			{object}	AllocationResponse
// @Failure		500			{object}	AllocationResponse
// @Param			allocation	body		AllocationEditable	true	"Allocation"
// @Router			/v1/allocations [post]
func CreateAllocation(c *gin.Context) {
	var editable AllocationEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), AllocationResponse{Error: errorString(err)})
		return
	}

	allocation := editable.model()
	err = models.CreateAllocation(models.DB, &allocation)
	if err != nil {
		c.JSON(status(err), AllocationResponse{Error: errorString(err)})
		return
	}

	data := newAllocation(c, allocation)
	c.JSON(http.StatusCreated, AllocationResponse{Data: &data})
}

// @Summary		Get allocations
// @Description	Returns a list of budget allocation documents
// @Tags			Allocations
// @Produce		json
// @Success		200	{object}	AllocationListResponse
// @Failure		400	{object}	AllocationListResponse
// @Failure		500	{object}	AllocationListResponse
// @Router			/v1/allocations [get]
// @Param			agency	query	string	false	"Filter by agency ID"
// @Param			year	query	uint	false	"Filter by fiscal year"
// @Param			number	query	string	false	"Filter by document number"
// @Param			offset	query	uint	false	"The offset of the first allocation returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of allocations to return. Defaults to 50."
func GetAllocations(c *gin.Context) {
	var filter AllocationQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(status(err), AllocationListResponse{Error: errorString(err)})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("year DESC, number ASC").
		Where(filter.model(), queryFields...)

	if filter.Number != "" {
		q = q.Where("number LIKE ?", fmt.Sprintf("%%%s%%", filter.Number))
	}

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var allocations []models.Allocation
	err := q.Find(&allocations).Error
	if err != nil {
		c.JSON(status(err), AllocationListResponse{Error: errorString(err)})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		c.JSON(status(err), AllocationListResponse{Error: errorString(err)})
		return
	}

	data := make([]Allocation, 0, len(allocations))
	for _, allocation := range allocations {
		data = append(data, newAllocation(c, allocation))
	}

	c.JSON(http.StatusOK, AllocationListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get allocation
// @Description	Returns a specific budget allocation document
// @Tags			Allocations
// @Produce		json
// @Success		200	{object}	AllocationResponse
// @Failure		400	{object}	AllocationResponse
// @Failure		404	{object}	AllocationResponse
// @Failure		500	{object}	AllocationResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/allocations/{id} [get]
func GetAllocation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), AllocationResponse{Error: errorString(err)})
		return
	}

	var allocation models.Allocation
	err = models.DB.First(&allocation, uri.ID).Error
	if err != nil {
		c.JSON(status(err), AllocationResponse{Error: errorString(err)})
		return
	}

	data := newAllocation(c, allocation)
	c.JSON(http.StatusOK, AllocationResponse{Data: &data})
}

// @Summary		Update allocation
// @Description	Update an existing allocation. Only values to be updated need to be specified. When totalAllocated changes, totalRemaining is recomputed against the booked disbursements.
// @Tags			Allocations
// @Accept			json
// @Produce		json
// @Success		200			{object}	AllocationResponse
// @Failure		400			{object}	AllocationResponse
// @Failure		404			{object}	AllocationResponse
// @Failure		500			{object}	AllocationResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			allocation	body		AllocationEditable	true	"Allocation"
// @Router			/v1/allocations/{id} [patch]
func UpdateAllocation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), AllocationResponse{Error: errorString(err)})
		return
	}

	var allocation models.Allocation
	err = models.DB.First(&allocation, uri.ID).Error
	if err != nil {
		c.JSON(status(err), AllocationResponse{Error: errorString(err)})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, AllocationEditable{})
	if err != nil {
		c.JSON(status(err), AllocationResponse{Error: errorString(err)})
		return
	}

	var data AllocationEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		c.JSON(status(err), AllocationResponse{Error: errorString(err)})
		return
	}

	totalSet := false
	for _, field := range updateFields {
		if field == "TotalAllocated" {
			totalSet = true
		}
	}

	// A document revision changes the allocated total. The remainder follows
	// so that totalRemaining = totalAllocated - totalDisbursed stays true.
	if totalSet {
		if data.TotalAllocated.IsNegative() {
			c.JSON(status(models.ErrAmountNegative), AllocationResponse{Error: errorString(models.ErrAmountNegative)})
			return
		}

		updateFields = append(updateFields, "TotalRemaining")
		allocation.TotalRemaining = data.TotalAllocated.Sub(allocation.TotalDisbursed)
	}

	update := data.model()
	update.TotalRemaining = allocation.TotalRemaining

	err = models.DB.Model(&allocation).Select("", updateFields...).Updates(update).Error
	if err != nil {
		c.JSON(status(err), AllocationResponse{Error: errorString(err)})
		return
	}

	r := newAllocation(c, allocation)
	c.JSON(http.StatusOK, AllocationResponse{Data: &r})
}

// @Summary		Delete allocation
// @Description	Deletes an allocation and its disbursement plan. Allocations with booked sub-activity allocations can not be deleted.
// @Tags			Allocations
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/allocations/{id} [delete]
func DeleteAllocation(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var allocation models.Allocation
	err = models.DB.First(&allocation, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	var subs int64
	err = models.DB.Model(&models.SubAllocation{}).Where("allocation_id = ?", allocation.ID).Count(&subs).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	if subs > 0 {
		c.JSON(http.StatusBadRequest, httpError{Error: errAllocationHasSubs.Error()})
		return
	}

	err = models.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("allocation_id = ?", allocation.ID).Delete(&models.PlanEntry{}).Error; err != nil {
			return err
		}

		if err := tx.Where("allocation_id = ?", allocation.ID).Delete(&models.Signatory{}).Error; err != nil {
			return err
		}

		return tx.Delete(&allocation).Error
	})
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
