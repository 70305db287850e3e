package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pesibar-dev/sikera-backend/internal/httputil"
	"github.com/pesibar-dev/sikera-backend/internal/models"
	ez_uuid "github.com/pesibar-dev/sikera-backend/internal/uuid"
	"golang.org/x/exp/slices"
)

// RegisterSubActivityRoutes registers the routes for sub-activities with
// the RouterGroup that is passed.
func RegisterSubActivityRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsSubActivityList)
		r.GET("", GetSubActivities)
		r.POST("", CreateSubActivity)
	}

	// Sub-activity with ID
	{
		r.OPTIONS("/:id", OptionsSubActivityDetail)
		r.GET("/:id", GetSubActivity)
		r.PATCH("/:id", UpdateSubActivity)
		r.DELETE("/:id", DeleteSubActivity)
	}
}

// SubActivityEditable represents all user configurable parameters
type SubActivityEditable struct {
	Code       string    `json:"code" example:"1.03.10.1.01.02" default:""`                 // Program structure code of the sub-activity
	Name       string    `json:"name" example:"Rehabilitasi Jalan" default:""`              // Name of the sub-activity
	ActivityID uuid.UUID `json:"activityId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the activity this sub-activity belongs to
}

func (editable SubActivityEditable) model() models.SubActivity {
	return models.SubActivity{
		Code:       editable.Code,
		Name:       editable.Name,
		ActivityID: editable.ActivityID,
	}
}

type SubActivityLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/sub-activities/3b1ea324-d438-4419-882a-2fc91d71772f"`                   // The sub-activity itself
	Realizations string `json:"realizations" example:"https://example.com/api/v1/realizations?subActivity=3b1ea324-d438-4419-882a-2fc91d71772f"` // Realizations tracking this sub-activity
}

type SubActivity struct {
	models.DefaultModel
	SubActivityEditable
	Links SubActivityLinks `json:"links"`
}

func newSubActivity(c *gin.Context, model models.SubActivity) SubActivity {
	url := httputil.RequestHost(c)

	return SubActivity{
		DefaultModel: model.DefaultModel,
		SubActivityEditable: SubActivityEditable{
			Code:       model.Code,
			Name:       model.Name,
			ActivityID: model.ActivityID,
		},
		Links: SubActivityLinks{
			Self:         fmt.Sprintf("%s/v1/sub-activities/%s", url, model.ID),
			Realizations: fmt.Sprintf("%s/v1/realizations?subActivity=%s", url, model.ID),
		},
	}
}

type SubActivityListResponse struct {
	Data       []SubActivity `json:"data"`                                                          // List of sub-activities
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type SubActivityResponse struct {
	Data  *SubActivity `json:"data"`                                                          // Data for the sub-activity
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type SubActivityQueryFilter struct {
	Code       string       `form:"code"`                       // By code
	Name       string       `form:"name" filterField:"false"`   // By name
	ActivityID ez_uuid.UUID `form:"activity"`                   // By ID of the activity
	Search     string       `form:"search" filterField:"false"` // By string in name
	Offset     uint         `form:"offset" filterField:"false"` // The offset of the first sub-activity returned. Defaults to 0.
	Limit      int          `form:"limit" filterField:"false"`  // Maximum number of sub-activities to return. Defaults to 50.
}

func (f SubActivityQueryFilter) model() models.SubActivity {
	return models.SubActivity{
		Code:       f.Code,
		ActivityID: f.ActivityID.UUID,
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			SubActivities
// @Success		204
// @Router			/v1/sub-activities [options]
func OptionsSubActivityList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			SubActivities
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/sub-activities/{id} [options]
func OptionsSubActivityDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.SubActivity{})
}

// @Summary		Create sub-activity
// @Description	Creates a new sub-activity
// @Tags			SubActivities
// @Produce		json
// @Success		201			{object}	SubActivityResponse
// @Failure		400			{object}	SubActivityResponse
// @Failure		404			{object}	SubActivityResponse
// @Failure		500			{object}	SubActivityResponse
// @Param			subActivity	body		SubActivityEditable	true	"Sub-activity"
// @Router			/v1/sub-activities [post]
func CreateSubActivity(c *gin.Context) {
	var editable SubActivityEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), SubActivityResponse{Error: errorString(err)})
		return
	}

	subActivity := editable.model()
	err = models.DB.Create(&subActivity).Error
	if err != nil {
		c.JSON(status(err), SubActivityResponse{Error: errorString(err)})
		return
	}

	data := newSubActivity(c, subActivity)
	c.JSON(http.StatusCreated, SubActivityResponse{Data: &data})
}

// @Summary		Get sub-activities
// @Description	Returns a list of sub-activities
// @Tags			SubActivities
// @Produce		json
// @Success		200	{object}	SubActivityListResponse
// @Failure		400	{object}	SubActivityListResponse
// @Failure		500	{object}	SubActivityListResponse
// @Router			/v1/sub-activities [get]
// @Param			code		query	string	false	"Filter by code"
// @Param			name		query	string	false	"Filter by name"
// @Param			activity	query	string	false	"Filter by activity ID"
// @Param			search		query	string	false	"Search for this text in the name"
// @Param			offset		query	uint	false	"The offset of the first sub-activity returned. Defaults to 0."
// @Param			limit		query	int		false	"Maximum number of sub-activities to return. Defaults to 50."
func GetSubActivities(c *gin.Context) {
	var filter SubActivityQueryFilter
	if err := c.Bind(&filter); err != nil {
		c.JSON(status(err), SubActivityListResponse{Error: errorString(err)})
		return
	}

	queryFields, setFields := httputil.GetURLFields(c.Request.URL, filter)

	q := models.DB.
		Order("code ASC").
		Where(filter.model(), queryFields...)

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

	var subActivities []models.SubActivity
	err := q.Find(&subActivities).Error
	if err != nil {
		c.JSON(status(err), SubActivityListResponse{Error: errorString(err)})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		c.JSON(status(err), SubActivityListResponse{Error: errorString(err)})
		return
	}

	data := make([]SubActivity, 0, len(subActivities))
	for _, subActivity := range subActivities {
		data = append(data, newSubActivity(c, subActivity))
	}

	c.JSON(http.StatusOK, SubActivityListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get sub-activity
// @Description	Returns a specific sub-activity
// @Tags			SubActivities
// @Produce		json
// @Success		200	{object}	SubActivityResponse
// @Failure		400	{object}	SubActivityResponse
// @Failure		404	{object}	SubActivityResponse
// @Failure		500	{object}	SubActivityResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/sub-activities/{id} [get]
func GetSubActivity(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), SubActivityResponse{Error: errorString(err)})
		return
	}

	var subActivity models.SubActivity
	err = models.DB.First(&subActivity, uri.ID).Error
	if err != nil {
		c.JSON(status(err), SubActivityResponse{Error: errorString(err)})
		return
	}

	data := newSubActivity(c, subActivity)
	c.JSON(http.StatusOK, SubActivityResponse{Data: &data})
}

// @Summary		Update sub-activity
// @Description	Update an existing sub-activity. Only values to be updated need to be specified.
// @Tags			SubActivities
// @Accept			json
// @Produce		json
// @Success		200			{object}	SubActivityResponse
// @Failure		400			{object}	SubActivityResponse
// @Failure		404			{object}	SubActivityResponse
// @Failure		500			{object}	SubActivityResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			subActivity	body		SubActivityEditable	true	"Sub-activity"
// @Router			/v1/sub-activities/{id} [patch]
func UpdateSubActivity(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), SubActivityResponse{Error: errorString(err)})
		return
	}

	var subActivity models.SubActivity
	err = models.DB.First(&subActivity, uri.ID).Error
	if err != nil {
		c.JSON(status(err), SubActivityResponse{Error: errorString(err)})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, SubActivityEditable{})
	if err != nil {
		c.JSON(status(err), SubActivityResponse{Error: errorString(err)})
		return
	}

	var data SubActivityEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		c.JSON(status(err), SubActivityResponse{Error: errorString(err)})
		return
	}

	err = models.DB.Model(&subActivity).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		c.JSON(status(err), SubActivityResponse{Error: errorString(err)})
		return
	}

	r := newSubActivity(c, subActivity)
	c.JSON(http.StatusOK, SubActivityResponse{Data: &r})
}

// @Summary		Delete sub-activity
// @Description	Deletes a sub-activity
// @Tags			SubActivities
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/sub-activities/{id} [delete]
func DeleteSubActivity(c *gin.Context) {
	deleteResource[models.SubActivity](c)
}
