package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pesibar-dev/sikera-backend/internal/httputil"
	"github.com/pesibar-dev/sikera-backend/internal/models"
	"github.com/pesibar-dev/sikera-backend/internal/types"
	"github.com/shopspring/decimal"
)

// PlanEntryObject is one month of the disbursement plan in API responses.
type PlanEntryObject struct {
	ID      uuid.UUID             `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"` // ID of the plan entry
	Month   uint8                 `json:"month" example:"4"`                                 // Month of the entry, 1 to 12
	Amounts types.CategoryAmounts `json:"amounts"`                                           // Planned disbursement by category
	Total   decimal.Decimal       `json:"total" example:"125000000"`                         // Sum of the category amounts
}

// PlanObject is the full disbursement plan of an allocation.
type PlanObject struct {
	Entries   []PlanEntryObject     `json:"entries"`   // The twelve monthly entries
	Disbursed types.CategoryAmounts `json:"disbursed"` // Per-category planned disbursement, sum over all entries
	Remaining types.CategoryAmounts `json:"remaining"` // Per-category remainder of the allocation
}

type PlanResponse struct {
	Data  *PlanObject `json:"data"`                                                          // The disbursement plan
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// PlanUpdate is the request body replacing a disbursement plan. All twelve
// entries must be submitted exactly once and the disbursed totals must equal
// the sum of the entries. The remainder is derived server-side.
type PlanUpdate struct {
	Entries   []models.PlanEntryUpdate `json:"entries"`   // The twelve monthly entries
	Disbursed types.CategoryAmounts    `json:"disbursed"` // Per-category planned disbursement
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Allocations
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/allocations/{id}/plan [options]
func OptionsAllocationPlan(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Allocation{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGetPut(c)
}

// @Summary		Get disbursement plan
// @Description	Returns the twelve monthly entries of the allocation's disbursement plan
// @Tags			Allocations
// @Produce		json
// @Success		200	{object}	PlanResponse
// @Failure		400	{object}	PlanResponse
// @Failure		404	{object}	PlanResponse
// @Failure		500	{object}	PlanResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/allocations/{id}/plan [get]
func GetAllocationPlan(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), PlanResponse{Error: errorString(err)})
		return
	}

	var allocation models.Allocation
	err = models.DB.First(&allocation, uri.ID).Error
	if err != nil {
		c.JSON(status(err), PlanResponse{Error: errorString(err)})
		return
	}

	var entries []models.PlanEntry
	err = models.DB.
		Where(&models.PlanEntry{AllocationID: allocation.ID}).
		Order("month ASC").
		Find(&entries).Error
	if err != nil {
		c.JSON(status(err), PlanResponse{Error: errorString(err)})
		return
	}

	data := PlanObject{
		Entries:   make([]PlanEntryObject, 0, len(entries)),
		Disbursed: allocation.Disbursed,
		Remaining: allocation.Remaining,
	}
	for _, entry := range entries {
		data.Entries = append(data.Entries, PlanEntryObject{
			ID:      entry.ID,
			Month:   entry.Month,
			Amounts: entry.Amounts,
			Total:   entry.Total,
		})
	}

	c.JSON(http.StatusOK, PlanResponse{Data: &data})
}

// @Summary		Replace disbursement plan
// @Description	Replaces all twelve entries of the disbursement plan. The per-category disbursed totals must equal the sum of the submitted entries.
// @Tags			Allocations
// @Accept			json
// @Produce		json
// @Success		200		{object}	PlanResponse
// @Failure		400		{object}	PlanResponse
// @Failure		404		{object}	PlanResponse
// @Failure		500		{object}	PlanResponse
// @Param			id		path		URIID		true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			plan	body		PlanUpdate	true	"Disbursement plan"
// @Router			/v1/allocations/{id}/plan [put]
func PutAllocationPlan(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), PlanResponse{Error: errorString(err)})
		return
	}

	var update PlanUpdate
	err = httputil.BindData(c, &update)
	if err != nil {
		c.JSON(status(err), PlanResponse{Error: errorString(err)})
		return
	}

	err = models.ReplaceDisbursementPlan(models.DB, uri.ID.UUID, update.Disbursed, update.Entries)
	if err != nil {
		c.JSON(status(err), PlanResponse{Error: errorString(err)})
		return
	}

	GetAllocationPlan(c)
}
