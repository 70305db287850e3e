package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pesibar-dev/sikera-backend/internal/httputil"
	"github.com/pesibar-dev/sikera-backend/internal/models"
)

// RegisterFiscalYearRoutes registers the routes for fiscal years with
// the RouterGroup that is passed.
//
// Fiscal years are created implicitly with the first allocation for the year,
// so the API only supports listing and explicit creation, no updates or
// deletion.
func RegisterFiscalYearRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsFiscalYearList)
	r.GET("", GetFiscalYears)
	r.POST("", CreateFiscalYear)
}

// FiscalYearEditable represents all user configurable parameters
type FiscalYearEditable struct {
	Year uint `json:"year" example:"2024"` // The year
}

type FiscalYear struct {
	models.DefaultModel
	FiscalYearEditable
}

func newFiscalYear(model models.FiscalYear) FiscalYear {
	return FiscalYear{
		DefaultModel: model.DefaultModel,
		FiscalYearEditable: FiscalYearEditable{
			Year: model.Year,
		},
	}
}

type FiscalYearListResponse struct {
	Data  []FiscalYear `json:"data"`                                      // List of fiscal years
	Error *string      `json:"error" example:"the year already exists"` // The error, if any occurred
}

type FiscalYearResponse struct {
	Data  *FiscalYear `json:"data"`                                      // Data for the fiscal year
	Error *string     `json:"error" example:"the year already exists"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			FiscalYears
// @Success		204
// @Router			/v1/fiscal-years [options]
func OptionsFiscalYearList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Get fiscal years
// @Description	Returns the list of fiscal years, most recent first
// @Tags			FiscalYears
// @Produce		json
// @Success		200	{object}	FiscalYearListResponse
// @Failure		500	{object}	FiscalYearListResponse
// @Router			/v1/fiscal-years [get]
func GetFiscalYears(c *gin.Context) {
	var years []models.FiscalYear
	err := models.DB.Order("year DESC").Find(&years).Error
	if err != nil {
		c.JSON(status(err), FiscalYearListResponse{Error: errorString(err)})
		return
	}

	data := make([]FiscalYear, 0, len(years))
	for _, year := range years {
		data = append(data, newFiscalYear(year))
	}

	c.JSON(http.StatusOK, FiscalYearListResponse{Data: data})
}

// @Summary		Create fiscal year
// @Description	Creates a fiscal year ahead of its first allocation
// @Tags			FiscalYears
// @Produce		json
// @Success		201			{object}	FiscalYearResponse
// @Failure		400			{object}	FiscalYearResponse
// @Failure		500			{object}	FiscalYearResponse
// @Param			fiscalYear	body		FiscalYearEditable	true	"Fiscal year"
// @Router			/v1/fiscal-years [post]
func CreateFiscalYear(c *gin.Context) {
	var editable FiscalYearEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), FiscalYearResponse{Error: errorString(err)})
		return
	}

	year := models.FiscalYear{Year: editable.Year}
	err = models.DB.Create(&year).Error
	if err != nil {
		c.JSON(status(err), FiscalYearResponse{Error: errorString(err)})
		return
	}

	data := newFiscalYear(year)
	c.JSON(http.StatusCreated, FiscalYearResponse{Data: &data})
}
