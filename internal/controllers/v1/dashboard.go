package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pesibar-dev/sikera-backend/internal/httputil"
	"github.com/pesibar-dev/sikera-backend/internal/models"
	ez_uuid "github.com/pesibar-dev/sikera-backend/internal/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// RegisterDashboardRoutes registers the routes for the dashboard with
// the RouterGroup that is passed.
func RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsDashboard)
	r.GET("", GetDashboard)
}

type DashboardQueryFilter struct {
	Year     uint         `form:"year"`   // The fiscal year to aggregate. Required.
	AgencyID ez_uuid.UUID `form:"agency"` // Restrict the aggregation to one agency
}

// DashboardMonth is one month of the realization chart.
type DashboardMonth struct {
	Month     uint8           `json:"month" example:"4"`              // The month, 1 to 12
	Realized  decimal.Decimal `json:"realized" example:"75000000"`    // Actual spend recorded for the month
	Remaining decimal.Decimal `json:"remaining" example:"1425000000"` // Target minus cumulative spend up to this month
}

// DashboardAllocation is one entry of the top allocations list.
type DashboardAllocation struct {
	ID             string          `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"` // ID of the allocation
	Number         string          `json:"number"`                                            // Document number
	AgencyID       string          `json:"agencyId"`                                          // ID of the agency
	TotalAllocated decimal.Decimal `json:"totalAllocated"`                                    // Total amount allocated
	TotalDisbursed decimal.Decimal `json:"totalDisbursed"`                                    // Total amount disbursed
}

// DashboardObject aggregates one fiscal year.
type DashboardObject struct {
	Year            uint                  `json:"year" example:"2024"`            // The aggregated fiscal year
	Allocations     int64                 `json:"allocations" example:"17"`       // Number of budget documents
	TotalAllocated  decimal.Decimal       `json:"totalAllocated"`                 // Sum over all documents
	TotalDisbursed  decimal.Decimal       `json:"totalDisbursed"`                 // Sum over all documents
	TotalRemaining  decimal.Decimal       `json:"totalRemaining"`                 // Sum over all documents
	Pagu            decimal.Decimal       `json:"pagu"`                           // Sum of realization targets
	Realized        decimal.Decimal       `json:"realized"`                       // Sum of actual spend
	Months          []DashboardMonth      `json:"months"`                         // Monthly realization with running remainder
	TopAllocations  []DashboardAllocation `json:"topAllocations"`                 // The five largest documents by allocated amount
}

type DashboardResponse struct {
	Data  *DashboardObject `json:"data"`                                              // The dashboard aggregation
	Error *string          `json:"error" example:"the year query parameter must be set"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Dashboard
// @Success		204
// @Router			/v1/dashboard [options]
func OptionsDashboard(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get dashboard
// @Description	Returns aggregate totals, the monthly realization chart and the largest allocations for one fiscal year
// @Tags			Dashboard
// @Produce		json
// @Success		200	{object}	DashboardResponse
// @Failure		400	{object}	DashboardResponse
// @Failure		500	{object}	DashboardResponse
// @Router			/v1/dashboard [get]
// @Param			year	query	uint	true	"The fiscal year to aggregate"
// @Param			agency	query	string	false	"Restrict the aggregation to one agency"
func GetDashboard(c *gin.Context) {
	var filter DashboardQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(status(err), DashboardResponse{Error: errorString(err)})
		return
	}

	_, setFields := httputil.GetURLFields(c.Request.URL, filter)
	if !slices.Contains(setFields, "Year") {
		c.JSON(http.StatusBadRequest, DashboardResponse{Error: errorString(errYearNotSetInQuery)})
		return
	}

	agencySet := slices.Contains(setFields, "AgencyID")

	data := DashboardObject{
		Year:           filter.Year,
		Months:         make([]DashboardMonth, 0, 12),
		TopAllocations: make([]DashboardAllocation, 0, 5),
	}

	allocations := func() *gorm.DB {
		q := models.DB.Model(&models.Allocation{}).Where("year = ?", filter.Year)
		if agencySet {
			q = q.Where("agency_id = ?", filter.AgencyID.UUID)
		}
		return q
	}

	err := allocations().Count(&data.Allocations).Error
	if err != nil {
		c.JSON(status(err), DashboardResponse{Error: errorString(err)})
		return
	}

	var allocationTotals struct {
		TotalAllocated decimal.NullDecimal
		TotalDisbursed decimal.NullDecimal
		TotalRemaining decimal.NullDecimal
	}
	err = allocations().
		Select("SUM(total_allocated) AS total_allocated, SUM(total_disbursed) AS total_disbursed, SUM(total_remaining) AS total_remaining").
		Scan(&allocationTotals).Error
	if err != nil {
		c.JSON(status(err), DashboardResponse{Error: errorString(err)})
		return
	}
	data.TotalAllocated = allocationTotals.TotalAllocated.Decimal
	data.TotalDisbursed = allocationTotals.TotalDisbursed.Decimal
	data.TotalRemaining = allocationTotals.TotalRemaining.Decimal

	realizations := func() *gorm.DB {
		q := models.DB.Model(&models.Realization{}).Where("realizations.year = ?", filter.Year)
		if agencySet {
			q = q.Where("realizations.agency_id = ?", filter.AgencyID.UUID)
		}
		return q
	}

	var realizationTotals struct {
		Pagu     decimal.NullDecimal
		Realized decimal.NullDecimal
	}
	err = realizations().
		Select("SUM(pagu) AS pagu, SUM(realized) AS realized").
		Scan(&realizationTotals).Error
	if err != nil {
		c.JSON(status(err), DashboardResponse{Error: errorString(err)})
		return
	}
	data.Pagu = realizationTotals.Pagu.Decimal
	data.Realized = realizationTotals.Realized.Decimal

	var monthTotals []struct {
		Month    uint8
		Realized decimal.NullDecimal
	}
	err = realizations().
		Select("realization_months.month AS month, SUM(realization_months.amount_operating + realization_months.amount_capital + realization_months.amount_contingency + realization_months.amount_transfer) AS realized").
		Joins("JOIN realization_months ON realization_months.realization_id = realizations.id").
		Group("realization_months.month").
		Order("realization_months.month ASC").
		Scan(&monthTotals).Error
	if err != nil {
		c.JSON(status(err), DashboardResponse{Error: errorString(err)})
		return
	}

	byMonth := make(map[uint8]decimal.Decimal, len(monthTotals))
	for _, total := range monthTotals {
		byMonth[total.Month] = total.Realized.Decimal
	}

	// The chart always shows all twelve months. The remainder runs down from
	// the total target as the months accumulate.
	remaining := data.Pagu
	for month := uint8(1); month <= 12; month++ {
		realized := byMonth[month]
		remaining = remaining.Sub(realized)
		data.Months = append(data.Months, DashboardMonth{
			Month:     month,
			Realized:  realized,
			Remaining: remaining,
		})
	}

	var top []models.Allocation
	err = allocations().
		Order("total_allocated DESC").
		Limit(5).
		Find(&top).Error
	if err != nil {
		c.JSON(status(err), DashboardResponse{Error: errorString(err)})
		return
	}

	for _, allocation := range top {
		data.TopAllocations = append(data.TopAllocations, DashboardAllocation{
			ID:             allocation.ID.String(),
			Number:         allocation.Number,
			AgencyID:       allocation.AgencyID.String(),
			TotalAllocated: allocation.TotalAllocated,
			TotalDisbursed: allocation.TotalDisbursed,
		})
	}

	c.JSON(http.StatusOK, DashboardResponse{Data: &data})
}
