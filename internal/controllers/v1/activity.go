package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pesibar-dev/sikera-backend/internal/httputil"
	"github.com/pesibar-dev/sikera-backend/internal/models"
	"golang.org/x/exp/slices"
)

// RegisterActivityRoutes registers the routes for activities with
// the RouterGroup that is passed.
func RegisterActivityRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsActivityList)
		r.GET("", GetActivities)
		r.POST("", CreateActivity)
	}

	// Activity with ID
	{
		r.OPTIONS("/:id", OptionsActivityDetail)
		r.GET("/:id", GetActivity)
		r.PATCH("/:id", UpdateActivity)
		r.DELETE("/:id", DeleteActivity)
	}
}

// ActivityEditable represents all user configurable parameters
type ActivityEditable struct {
	Code string `json:"code" example:"1.03.10.1.01" default:""`          // Program structure code of the activity
	Name string `json:"name" example:"Pengelolaan Jalan" default:""` // Name of the activity
}

func (editable ActivityEditable) model() models.Activity {
	return models.Activity{
		Code: editable.Code,
		Name: editable.Name,
	}
}

type ActivityLinks struct {
	Self          string `json:"self" example:"https://example.com/api/v1/activities/3b1ea324-d438-4419-882a-2fc91d71772f"`                      // The activity itself
	SubActivities string `json:"subActivities" example:"https://example.com/api/v1/sub-activities?activity=3b1ea324-d438-4419-882a-2fc91d71772f"` // Sub-activities of this activity
}

type Activity struct {
	models.DefaultModel
	ActivityEditable
	Links ActivityLinks `json:"links"`
}

func newActivity(c *gin.Context, model models.Activity) Activity {
	url := httputil.RequestHost(c)

	return Activity{
		DefaultModel: model.DefaultModel,
		ActivityEditable: ActivityEditable{
			Code: model.Code,
			Name: model.Name,
		},
		Links: ActivityLinks{
			Self:          fmt.Sprintf("%s/v1/activities/%s", url, model.ID),
			SubActivities: fmt.Sprintf("%s/v1/sub-activities?activity=%s", url, model.ID),
		},
	}
}

type ActivityListResponse struct {
	Data       []Activity  `json:"data"`                                                          // List of activities
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type ActivityResponse struct {
	Data  *Activity `json:"data"`                                                          // Data for the activity
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type ActivityQueryFilter struct {
	Code   string `form:"code"`                       // By code
	Name   string `form:"name" filterField:"false"`   // By name
	Search string `form:"search" filterField:"false"` // By string in name
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first activity returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of activities to return. Defaults to 50.
}

func (f ActivityQueryFilter) model() models.Activity {
	return models.Activity{
		Code: f.Code,
	}
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Activities
// @Success		204
// @Router			/v1/activities [options]
func OptionsActivityList(c *gin.Context) {
	httputil.OptionsGetPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Activities
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/activities/{id} [options]
func OptionsActivityDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Activity{})
}

// @Summary		Create activity
// @Description	Creates a new activity
// @Tags			Activities
// @Produce		json
// @Success		201			{object}	ActivityResponse
// @Failure		400			{object}	ActivityResponse
// @Failure		500			{object}	ActivityResponse
// @Param			activity	body		ActivityEditable	true	"Activity"
// @Router			/v1/activities [post]
func CreateActivity(c *gin.Context) {
	var editable ActivityEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), ActivityResponse{Error: errorString(err)})
		return
	}

	activity := editable.model()
	err = models.DB.Create(&activity).Error
	if err != nil {
		c.JSON(status(err), ActivityResponse{Error: errorString(err)})
		return
	}

	data := newActivity(c, activity)
	c.JSON(http.StatusCreated, ActivityResponse{Data: &data})
}

// @Summary		Get activities
// @Description	Returns a list of activities
// @Tags			Activities
// @Produce		json
// @Success		200	{object}	ActivityListResponse
// @Failure		400	{object}	ActivityListResponse
// @Failure		500	{object}	ActivityListResponse
// @Router			/v1/activities [get]
// @Param			code	query	string	false	"Filter by code"
// @Param			name	query	string	false	"Filter by name"
// @Param			search	query	string	false	"Search for this text in the name"
// @Param			offset	query	uint	false	"The offset of the first activity returned. Defaults to 0."
// @Param			limit	query	int		false	"Maximum number of activities to return. Defaults to 50."
func GetActivities(c *gin.Context) {
	var filter ActivityQueryFilter
	_ = c.Bind(&filter)

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

	var activities []models.Activity
	err := q.Find(&activities).Error
	if err != nil {
		c.JSON(status(err), ActivityListResponse{Error: errorString(err)})
		return
	}

	var count int64
	err = q.Limit(-1).Offset(-1).Count(&count).Error
	if err != nil {
		c.JSON(status(err), ActivityListResponse{Error: errorString(err)})
		return
	}

	data := make([]Activity, 0, len(activities))
	for _, activity := range activities {
		data = append(data, newActivity(c, activity))
	}

	c.JSON(http.StatusOK, ActivityListResponse{
		Data: data,
		Pagination: &Pagination{
			Count:  len(data),
			Total:  count,
			Offset: filter.Offset,
			Limit:  limit,
		},
	})
}

// @Summary		Get activity
// @Description	Returns a specific activity
// @Tags			Activities
// @Produce		json
// @Success		200	{object}	ActivityResponse
// @Failure		400	{object}	ActivityResponse
// @Failure		404	{object}	ActivityResponse
// @Failure		500	{object}	ActivityResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/activities/{id} [get]
func GetActivity(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), ActivityResponse{Error: errorString(err)})
		return
	}

	var activity models.Activity
	err = models.DB.First(&activity, uri.ID).Error
	if err != nil {
		c.JSON(status(err), ActivityResponse{Error: errorString(err)})
		return
	}

	data := newActivity(c, activity)
	c.JSON(http.StatusOK, ActivityResponse{Data: &data})
}

// @Summary		Update activity
// @Description	Update an existing activity. Only values to be updated need to be specified.
// @Tags			Activities
// @Accept			json
// @Produce		json
// @Success		200			{object}	ActivityResponse
// @Failure		400			{object}	ActivityResponse
// @Failure		404			{object}	ActivityResponse
// @Failure		500			{object}	ActivityResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			activity	body		ActivityEditable	true	"Activity"
// @Router			/v1/activities/{id} [patch]
func UpdateActivity(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), ActivityResponse{Error: errorString(err)})
		return
	}

	var activity models.Activity
	err = models.DB.First(&activity, uri.ID).Error
	if err != nil {
		c.JSON(status(err), ActivityResponse{Error: errorString(err)})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, ActivityEditable{})
	if err != nil {
		c.JSON(status(err), ActivityResponse{Error: errorString(err)})
		return
	}

	var data ActivityEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		c.JSON(status(err), ActivityResponse{Error: errorString(err)})
		return
	}

	err = models.DB.Model(&activity).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		c.JSON(status(err), ActivityResponse{Error: errorString(err)})
		return
	}

	r := newActivity(c, activity)
	c.JSON(http.StatusOK, ActivityResponse{Data: &r})
}

// @Summary		Delete activity
// @Description	Deletes an activity
// @Tags			Activities
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/activities/{id} [delete]
func DeleteActivity(c *gin.Context) {
	deleteResource[models.Activity](c)
}
