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

// RegisterRealizationRoutes registers the routes for realizations with
// the RouterGroup that is passed.
//
// Realization records are created by the ledger when sub-activity allocations
// are booked, so the API only reads them.
func RegisterRealizationRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsRealizationList)
		r.GET("", GetRealizations)
	}

	// Realization with ID
	{
		r.OPTIONS("/:id", OptionsRealizationDetail)
		r.GET("/:id", GetRealization)
	}
}

// RegisterRealizationMonthRoutes registers the routes for monthly realization
// entries with the RouterGroup that is passed.
func RegisterRealizationMonthRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:id", OptionsRealizationMonthDetail)
	r.PATCH("/:id", UpdateRealizationMonth)
}

// RealizationMonthEditable represents all user configurable parameters
type RealizationMonthEditable struct {
	Amounts types.CategoryAmounts `json:"amounts"`                                  // Actual spend of the month, by category
	Note    string                `json:"note" example:"Termin II" default:""` // Notes about the month
}

type RealizationMonthObject struct {
	ID      uuid.UUID             `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"` // ID of the monthly entry
	Month   uint8                 `json:"month" example:"4"`                                 // Month of the entry, 1 to 12
	Amounts types.CategoryAmounts `json:"amounts"`                                           // Actual spend of the month, by category
	Note    string                `json:"note" example:"Termin II"`                          // Notes about the month
}

type RealizationLinks struct {
	Self        string `json:"self" example:"https://example.com/api/v1/realizations/3b1ea324-d438-4419-882a-2fc91d71772f"`            // The realization itself
	SubActivity string `json:"subActivity" example:"https://example.com/api/v1/sub-activities/d576d985-764a-4a50-8e43-e5bf80811f2a"` // The sub-activity being tracked
}

type Realization struct {
	models.DefaultModel
	SubActivityID uuid.UUID                `json:"subActivityId" example:"d576d985-764a-4a50-8e43-e5bf80811f2a"` // ID of the sub-activity
	AgencyID      uuid.UUID                `json:"agencyId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"`      // ID of the agency
	Year          uint                     `json:"year" example:"2024"`                                          // Fiscal year
	Pagu          decimal.Decimal          `json:"pagu" example:"250000000"`                                     // The target amount
	Realized      decimal.Decimal          `json:"realized" example:"180000000"`                                 // Cumulative actual spend
	Status        models.RealizationStatus `json:"status" example:"not-reached"`                                 // Whether the target is reached
	Allocated     types.CategoryAmounts    `json:"allocated"`                                                    // Allocated amounts by category
	RealizedBy    types.CategoryAmounts    `json:"realizedAmounts"`                                              // Realized amounts by category
	Remaining     types.CategoryAmounts    `json:"remaining"`                                                    // Remaining amounts by category
	Months        []RealizationMonthObject `json:"months,omitempty"`                                             // The twelve monthly entries, on detail requests
	Links         RealizationLinks         `json:"links"`
}

func newRealization(c *gin.Context, model models.Realization) Realization {
	url := httputil.RequestHost(c)

	return Realization{
		DefaultModel:  model.DefaultModel,
		SubActivityID: model.SubActivityID,
		AgencyID:      model.AgencyID,
		Year:          model.Year,
		Pagu:          model.Pagu,
		Realized:      model.Realized,
		Status:        model.Status,
		Allocated:     model.Allocated,
		RealizedBy:    model.RealizedAmounts,
		Remaining:     model.Remaining,
		Links: RealizationLinks{
			Self:        fmt.Sprintf("%s/v1/realizations/%s", url, model.ID),
			SubActivity: fmt.Sprintf("%s/v1/sub-activities/%s", url, model.SubActivityID),
		},
	}
}

type RealizationListResponse struct {
	Data       []Realization `json:"data"`                                                          // List of realizations
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type RealizationResponse struct {
	Data  *Realization `json:"data"`                                                          // Data for the realization
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type RealizationQueryFilter struct {
	SubActivityID ez_uuid.UUID `form:"subActivity"`                // By ID of the sub-activity
	AgencyID      ez_uuid.UUID `form:"agency"`                     // By ID of the agency
	Year          uint         `form:"year"`                       // By fiscal year
	Status        string       `form:"status"`                     // By status, "reached" or "not-reached"
	Offset        uint         `form:"offset" filterField:"false"` // The offset of the first realization returned. Defaults to 0.
	Limit         int          `form:"limit" filterField:"false"`  // Maximum number of realizations to return. Defaults to 50.
}

func (f RealizationQueryFilter) model() models.Realization {
	return models.Realization{
		SubActivityID: f.SubActivityID.UUID,
		AgencyID:      f.AgencyID.UUID,
		Year:          f.Year,
		Status:        models.RealizationStatus(f.Status),
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Realizations
// @Success		204
// @Router			/v1/realizations [options]
func OptionsRealizationList(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Realizations
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/realizations/{id} [options]
func OptionsRealizationDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Realization{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Get realizations
// @Description	Returns a list of realization records
// @Tags			Realizations
// @Produce		json
// @Success		200	{object}	RealizationListResponse
// @Failure		400	{object}	RealizationListResponse
// @Failure		500	{object}	RealizationListResponse
// @Router			/v1/realizations [get]
// @Param			subActivity	query	string	false	"Filter by sub-activity ID"
// @Param			agency		query	string	false	"Filter by agency ID"
// @Param			year		query	uint	false	"Filter by fiscal year"
// @Param			status		query	string	false	"Filter by status"
// @Param			offset		query	uint	false	"The offset of the first realization returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of realizations to return. Defaults to 50."
func GetRealizations(c *gin.Context) {
	var filter RealizationQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(status(err), RealizationListResponse{Error: errorString(err)})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("year DESC, created_at ASC").
		Where(filter.model(), queryFields...)

	q = q.Offset(int(filter.Offset))

	limit := 50
	if slices.Contains(setFields, "Limit") {
		limit = filter.Limit
	}
	q = q.Limit(limit)

	var realizations []models.Realization
	err := q.Find(&realizations).Error
	if err != nil {
		c.JSON(status(err), RealizationListResponse{Error: errorString(err)})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		c.JSON(status(err), RealizationListResponse{Error: errorString(err)})
		return
	}

	data := make([]Realization, 0, len(realizations))
	for _, realization := range realizations {
		data = append(data, newRealization(c, realization))
	}

	c.JSON(http.StatusOK, RealizationListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get realization
// @Description	Returns a realization record with its twelve monthly entries
// @Tags			Realizations
// @Produce		json
// @Success		200	{object}	RealizationResponse
// @Failure		400	{object}	RealizationResponse
// @Failure		404	{object}	RealizationResponse
// @Failure		500	{object}	RealizationResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/realizations/{id} [get]
func GetRealization(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), RealizationResponse{Error: errorString(err)})
		return
	}

	var realization models.Realization
	err = models.DB.First(&realization, uri.ID).Error
	if err != nil {
		c.JSON(status(err), RealizationResponse{Error: errorString(err)})
		return
	}

	var months []models.RealizationMonth
	err = models.DB.
		Where(&models.RealizationMonth{RealizationID: realization.ID}).
		Order("month ASC").
		Find(&months).Error
	if err != nil {
		c.JSON(status(err), RealizationResponse{Error: errorString(err)})
		return
	}

	data := newRealization(c, realization)
	data.Months = make([]RealizationMonthObject, 0, len(months))
	for _, month := range months {
		data.Months = append(data.Months, RealizationMonthObject{
			ID:      month.ID,
			Month:   month.Month,
			Amounts: month.Amounts,
			Note:    month.Note,
		})
	}

	c.JSON(http.StatusOK, RealizationResponse{Data: &data})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Realizations
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/realization-months/{id} [options]
func OptionsRealizationMonthDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.RealizationMonth{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsPatch(c)
}

// @Summary		Record monthly realization
// @Description	Sets the actual spend of one month. The difference to the previously recorded amounts is applied to the realization record's cumulative totals.
// @Tags			Realizations
// @Accept			json
// @Produce		json
// @Success		200		{object}	RealizationResponse
// @Failure		400		{object}	RealizationResponse
// @Failure		404		{object}	RealizationResponse
// @Failure		500		{object}	RealizationResponse
// @Param			id		path		URIID						true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			month	body		RealizationMonthEditable	true	"Monthly realization"
// @Router			/v1/realization-months/{id} [patch]
func UpdateRealizationMonth(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), RealizationResponse{Error: errorString(err)})
		return
	}

	var editable RealizationMonthEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), RealizationResponse{Error: errorString(err)})
		return
	}

	err = models.RecordMonthlyRealization(models.DB, uri.ID.UUID, editable.Amounts, editable.Note)
	if err != nil {
		c.JSON(status(err), RealizationResponse{Error: errorString(err)})
		return
	}

	var month models.RealizationMonth
	err = models.DB.First(&month, uri.ID).Error
	if err != nil {
		c.JSON(status(err), RealizationResponse{Error: errorString(err)})
		return
	}

	var realization models.Realization
	err = models.DB.First(&realization, month.RealizationID).Error
	if err != nil {
		c.JSON(status(err), RealizationResponse{Error: errorString(err)})
		return
	}

	data := newRealization(c, realization)
	c.JSON(http.StatusOK, RealizationResponse{Data: &data})
}
