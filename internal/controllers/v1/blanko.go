package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pesibar-dev/sikera-backend/internal/httputil"
	"github.com/pesibar-dev/sikera-backend/internal/models"
	"github.com/shopspring/decimal"
)

// RegisterBlankoCategoryRoutes registers the routes for blanko categories
// with the RouterGroup that is passed.
func RegisterBlankoCategoryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsBlankoCategoryList)
	r.POST("", CreateBlankoCategory)

	r.OPTIONS("/:id", OptionsBlankoCategoryDetail)
	r.DELETE("/:id", DeleteBlankoCategory)
}

// RegisterBlankoItemRoutes registers the routes for blanko items with
// the RouterGroup that is passed.
func RegisterBlankoItemRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsBlankoItemList)
	r.POST("", CreateBlankoItem)

	r.OPTIONS("/:id", OptionsBlankoItemDetail)
	r.PATCH("/:id", UpdateBlankoItem)
	r.DELETE("/:id", DeleteBlankoItem)
}

// BlankoCategoryEditable represents all user configurable parameters
type BlankoCategoryEditable struct {
	MonitoringID uuid.UUID `json:"monitoringId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the monitoring record
	Name         string    `json:"name" example:"Pekerjaan Persiapan" default:""`               // Name of the section
}

type BlankoCategory struct {
	models.DefaultModel
	BlankoCategoryEditable
	Total decimal.Decimal `json:"total" example:"12500000"` // Sum of the item totals in this section
}

func newBlankoCategory(model models.BlankoCategory) BlankoCategory {
	return BlankoCategory{
		DefaultModel: model.DefaultModel,
		BlankoCategoryEditable: BlankoCategoryEditable{
			MonitoringID: model.MonitoringID,
			Name:         model.Name,
		},
		Total: model.Total,
	}
}

type BlankoCategoryResponse struct {
	Data  *BlankoCategory `json:"data"`                                                          // Data for the category
	Error *string         `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// BlankoItemEditable represents all user configurable parameters
type BlankoItemEditable struct {
	MonitoringID uuid.UUID       `json:"monitoringId" example:"52d967d3-33f4-4b04-9ba7-772e5ab9d0ce"` // ID of the monitoring record
	CategoryID   uuid.UUID       `json:"categoryId" example:"d576d985-764a-4a50-8e43-e5bf80811f2a"`   // ID of the section the item belongs to
	Job          string          `json:"job" example:"Mobilisasi" default:""`                         // The work item
	Volume       decimal.Decimal `json:"volume" example:"4"`                                          // Volume of the work
	Unit         string          `json:"unit" example:"ls" default:""`                                // Unit of the volume
	UnitPrice    decimal.Decimal `json:"unitPrice" example:"250000"`                                  // Price per unit
}

func (editable BlankoItemEditable) model() models.BlankoItem {
	return models.BlankoItem{
		MonitoringID: editable.MonitoringID,
		CategoryID:   editable.CategoryID,
		Job:          editable.Job,
		Volume:       editable.Volume,
		Unit:         editable.Unit,
		UnitPrice:    editable.UnitPrice,
	}
}

type BlankoItem struct {
	models.DefaultModel
	BlankoItemEditable
	Total decimal.Decimal `json:"total" example:"1000000"` // Volume times unit price
}

func newBlankoItem(model models.BlankoItem) BlankoItem {
	return BlankoItem{
		DefaultModel: model.DefaultModel,
		BlankoItemEditable: BlankoItemEditable{
			MonitoringID: model.MonitoringID,
			CategoryID:   model.CategoryID,
			Job:          model.Job,
			Volume:       model.Volume,
			Unit:         model.Unit,
			UnitPrice:    model.UnitPrice,
		},
		Total: model.Total,
	}
}

type BlankoItemResponse struct {
	Data  *BlankoItem `json:"data"`                                                          // Data for the item
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// BlankoObject is the merged cost breakdown table of a monitoring record.
type BlankoObject struct {
	Rows  []models.BlankoRow `json:"rows"`  // The numbered display rows
	Total decimal.Decimal    `json:"total"` // Grand total over all sections
}

type BlankoResponse struct {
	Data  *BlankoObject `json:"data"`                                                          // The merged cost breakdown
	Error *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Blanko
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/monitorings/{id}/blanko [options]
func OptionsMonitoringBlanko(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.Monitoring{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsGet(c)
}

// @Summary		Get cost breakdown
// @Description	Returns the merged cost breakdown table of a monitoring record: section rows with Roman numerals, item rows numbered per section, spacer rows between sections
// @Tags			Blanko
// @Produce		json
// @Success		200	{object}	BlankoResponse
// @Failure		400	{object}	BlankoResponse
// @Failure		404	{object}	BlankoResponse
// @Failure		500	{object}	BlankoResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/monitorings/{id}/blanko [get]
func GetMonitoringBlanko(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), BlankoResponse{Error: errorString(err)})
		return
	}

	var monitoring models.Monitoring
	err = models.DB.First(&monitoring, uri.ID).Error
	if err != nil {
		c.JSON(status(err), BlankoResponse{Error: errorString(err)})
		return
	}

	var categories []models.BlankoCategory
	err = models.DB.
		Where(&models.BlankoCategory{MonitoringID: monitoring.ID}).
		Order("created_at ASC").
		Find(&categories).Error
	if err != nil {
		c.JSON(status(err), BlankoResponse{Error: errorString(err)})
		return
	}

	var items []models.BlankoItem
	err = models.DB.
		Where(&models.BlankoItem{MonitoringID: monitoring.ID}).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		c.JSON(status(err), BlankoResponse{Error: errorString(err)})
		return
	}

	total := decimal.Zero
	for _, category := range categories {
		total = total.Add(category.Total)
	}

	data := BlankoObject{
		Rows:  models.MergeBlanko(categories, items),
		Total: total,
	}

	c.JSON(http.StatusOK, BlankoResponse{Data: &data})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Blanko
// @Success		204
// @Router			/v1/blanko-categories [options]
func OptionsBlankoCategoryList(c *gin.Context) {
	c.Header("allow", "OPTIONS, POST")
	c.Status(http.StatusNoContent)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Blanko
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/blanko-categories/{id} [options]
func OptionsBlankoCategoryDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.BlankoCategory{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	httputil.OptionsDelete(c)
}

// @Summary		Create category
// @Description	Adds a section to the cost breakdown of a monitoring record
// @Tags			Blanko
// @Produce		json
// @Success		201			{object}	BlankoCategoryResponse
// @Failure		400			{object}	BlankoCategoryResponse
// @Failure		404			{object}	BlankoCategoryResponse
// @Failure		500			{object}	BlankoCategoryResponse
// @Param			category	body		BlankoCategoryEditable	true	"Category"
// @Router			/v1/blanko-categories [post]
func CreateBlankoCategory(c *gin.Context) {
	var editable BlankoCategoryEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), BlankoCategoryResponse{Error: errorString(err)})
		return
	}

	var monitoring models.Monitoring
	err = models.DB.First(&monitoring, editable.MonitoringID).Error
	if err != nil {
		c.JSON(status(err), BlankoCategoryResponse{Error: errorString(err)})
		return
	}

	category := models.BlankoCategory{
		MonitoringID: monitoring.ID,
		Name:         editable.Name,
	}

	err = models.DB.Create(&category).Error
	if err != nil {
		c.JSON(status(err), BlankoCategoryResponse{Error: errorString(err)})
		return
	}

	data := newBlankoCategory(category)
	c.JSON(http.StatusCreated, BlankoCategoryResponse{Data: &data})
}

// @Summary		Delete category
// @Description	Deletes a section of the cost breakdown with all its items
// @Tags			Blanko
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/blanko-categories/{id} [delete]
func DeleteBlankoCategory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DeleteBlankoCategory(models.DB, uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Blanko
// @Success		204
// @Router			/v1/blanko-items [options]
func OptionsBlankoItemList(c *gin.Context) {
	c.Header("allow", "OPTIONS, POST")
	c.Status(http.StatusNoContent)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Blanko
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/blanko-items/{id} [options]
func OptionsBlankoItemDetail(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DB.First(&models.BlankoItem{}, uri.ID).Error
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.Header("allow", "OPTIONS, PATCH, DELETE")
	c.Status(http.StatusNoContent)
}

// @Summary		Create item
// @Description	Adds a work item to a section of the cost breakdown. The section total is refreshed.
// @Tags			Blanko
// @Produce		json
// @Success		201		{object}	BlankoItemResponse
// @Failure		400		{object}	BlankoItemResponse
// @Failure		404		{object}	BlankoItemResponse
// @Failure		500		{object}	BlankoItemResponse
// @Param			item	body		BlankoItemEditable	true	"Item"
// @Router			/v1/blanko-items [post]
func CreateBlankoItem(c *gin.Context) {
	var editable BlankoItemEditable

	err := httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), BlankoItemResponse{Error: errorString(err)})
		return
	}

	item := editable.model()
	err = models.SaveBlankoItem(models.DB, &item)
	if err != nil {
		c.JSON(status(err), BlankoItemResponse{Error: errorString(err)})
		return
	}

	data := newBlankoItem(item)
	c.JSON(http.StatusCreated, BlankoItemResponse{Data: &data})
}

// @Summary		Update item
// @Description	Update an existing work item. Only values to be updated need to be specified. The section total is refreshed.
// @Tags			Blanko
// @Accept			json
// @Produce		json
// @Success		200		{object}	BlankoItemResponse
// @Failure		400		{object}	BlankoItemResponse
// @Failure		404		{object}	BlankoItemResponse
// @Failure		500		{object}	BlankoItemResponse
// @Param			id		path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			item	body		BlankoItemEditable	true	"Item"
// @Router			/v1/blanko-items/{id} [patch]
func UpdateBlankoItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), BlankoItemResponse{Error: errorString(err)})
		return
	}

	var item models.BlankoItem
	err = models.DB.First(&item, uri.ID).Error
	if err != nil {
		c.JSON(status(err), BlankoItemResponse{Error: errorString(err)})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, BlankoItemEditable{})
	if err != nil {
		c.JSON(status(err), BlankoItemResponse{Error: errorString(err)})
		return
	}

	var data BlankoItemEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		c.JSON(status(err), BlankoItemResponse{Error: errorString(err)})
		return
	}

	update := data.model()
	for _, field := range updateFields {
		switch field {
		case "Job":
			item.Job = update.Job
		case "Volume":
			item.Volume = update.Volume
		case "Unit":
			item.Unit = update.Unit
		case "UnitPrice":
			item.UnitPrice = update.UnitPrice
		case "CategoryID":
			item.CategoryID = update.CategoryID
		}
	}

	err = models.SaveBlankoItem(models.DB, &item)
	if err != nil {
		c.JSON(status(err), BlankoItemResponse{Error: errorString(err)})
		return
	}

	r := newBlankoItem(item)
	c.JSON(http.StatusOK, BlankoItemResponse{Data: &r})
}

// @Summary		Delete item
// @Description	Deletes a work item. The section total is refreshed.
// @Tags			Blanko
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/blanko-items/{id} [delete]
func DeleteBlankoItem(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	err = models.DeleteBlankoItem(models.DB, uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
