package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pesibar-dev/sikera-backend/internal/httputil"
	"github.com/pesibar-dev/sikera-backend/internal/models"
)

// RegisterSignatoryRoutes registers the routes for signatories with
// the RouterGroup that is passed.
//
// Signatories are created through their allocation, see
// CreateAllocationSignatory.
func RegisterSignatoryRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/:id", OptionsSignatoryDetail)
	r.GET("/:id", GetSignatory)
	r.PATCH("/:id", UpdateSignatory)
	r.DELETE("/:id", DeleteSignatory)
}

// SignatoryEditable represents all user configurable parameters
type SignatoryEditable struct {
	Role     models.SignatoryRole `json:"role" example:"signer"`                           // Role, either "user" or "signer"
	Name     string               `json:"name" example:"Ir. Budi Santoso" default:""`      // Full name
	NIP      string               `json:"nip" example:"196512311990031001" default:""`     // Employee identification number
	Position string               `json:"position" example:"Kepala Dinas PU" default:""` // Position held
}

func (editable SignatoryEditable) model() models.Signatory {
	return models.Signatory{
		Role:     editable.Role,
		Name:     editable.Name,
		NIP:      editable.NIP,
		Position: editable.Position,
	}
}

func (editable SignatoryEditable) validate() error {
	if editable.Role != models.SignatoryRoleUser && editable.Role != models.SignatoryRoleSigner {
		return errSignatoryRole
	}
	return nil
}

type SignatoryLinks struct {
	Self       string `json:"self" example:"https://example.com/api/v1/signatories/3b1ea324-d438-4419-882a-2fc91d71772f"`  // The signatory itself
	Allocation string `json:"allocation" example:"https://example.com/api/v1/allocations/d576d985-764a-4a50-8e43-e5bf80811f2a"` // The allocation the signatory belongs to
}

type Signatory struct {
	models.DefaultModel
	SignatoryEditable
	AllocationID string         `json:"allocationId" example:"d576d985-764a-4a50-8e43-e5bf80811f2a"` // ID of the allocation
	Links        SignatoryLinks `json:"links"`
}

func newSignatory(c *gin.Context, model models.Signatory) Signatory {
	url := httputil.RequestHost(c)

	return Signatory{
		DefaultModel: model.DefaultModel,
		SignatoryEditable: SignatoryEditable{
			Role:     model.Role,
			Name:     model.Name,
			NIP:      model.NIP,
			Position: model.Position,
		},
		AllocationID: model.AllocationID.String(),
		Links: SignatoryLinks{
			Self:       fmt.Sprintf("%s/v1/signatories/%s", url, model.ID),
			Allocation: fmt.Sprintf("%s/v1/allocations/%s", url, model.AllocationID),
		},
	}
}

type SignatoryListResponse struct {
	Data  []Signatory `json:"data"`                                                          // List of signatories
	Error *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

type SignatoryResponse struct {
	Data  *Signatory `json:"data"`                                                          // Data for the signatory
	Error *string    `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Signatories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/allocations/{id}/signatories [options]
func OptionsAllocationSignatories(c *gin.Context) {
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

	httputil.OptionsGetPost(c)
}

// @Summary		Get signatories
// @Description	Returns the signatories of an allocation, budget users first
// @Tags			Signatories
// @Produce		json
// @Success		200	{object}	SignatoryListResponse
// @Failure		400	{object}	SignatoryListResponse
// @Failure		404	{object}	SignatoryListResponse
// @Failure		500	{object}	SignatoryListResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/allocations/{id}/signatories [get]
func GetAllocationSignatories(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), SignatoryListResponse{Error: errorString(err)})
		return
	}

	var allocation models.Allocation
	err = models.DB.First(&allocation, uri.ID).Error
	if err != nil {
		c.JSON(status(err), SignatoryListResponse{Error: errorString(err)})
		return
	}

	var signatories []models.Signatory
	err = models.DB.
		Where(&models.Signatory{AllocationID: allocation.ID}).
		Order("role DESC, name ASC").
		Find(&signatories).Error
	if err != nil {
		c.JSON(status(err), SignatoryListResponse{Error: errorString(err)})
		return
	}

	data := make([]Signatory, 0, len(signatories))
	for _, signatory := range signatories {
		data = append(data, newSignatory(c, signatory))
	}

	c.JSON(http.StatusOK, SignatoryListResponse{Data: data})
}

// @Summary		Create signatory
// @Description	Adds a signatory to an allocation
// @Tags			Signatories
// @Produce		json
// @Success		201			{object}	SignatoryResponse
// @Failure		400			{object}	SignatoryResponse
// @Failure		404			{object}	SignatoryResponse
// @Failure		500			{object}	SignatoryResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			signatory	body		SignatoryEditable	true	"Signatory"
// @Router			/v1/allocations/{id}/signatories [post]
func CreateAllocationSignatory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), SignatoryResponse{Error: errorString(err)})
		return
	}

	var allocation models.Allocation
	err = models.DB.First(&allocation, uri.ID).Error
	if err != nil {
		c.JSON(status(err), SignatoryResponse{Error: errorString(err)})
		return
	}

	var editable SignatoryEditable
	err = httputil.BindData(c, &editable)
	if err != nil {
		c.JSON(status(err), SignatoryResponse{Error: errorString(err)})
		return
	}

	if err := editable.validate(); err != nil {
		c.JSON(status(err), SignatoryResponse{Error: errorString(err)})
		return
	}

	signatory := editable.model()
	signatory.AllocationID = allocation.ID

	err = models.DB.Create(&signatory).Error
	if err != nil {
		c.JSON(status(err), SignatoryResponse{Error: errorString(err)})
		return
	}

	data := newSignatory(c, signatory)
	c.JSON(http.StatusCreated, SignatoryResponse{Data: &data})
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Signatories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/signatories/{id} [options]
func OptionsSignatoryDetail(c *gin.Context) {
	resourceOptionsDetail(c, models.Signatory{})
}

// @Summary		Get signatory
// @Description	Returns a specific signatory
// @Tags			Signatories
// @Produce		json
// @Success		200	{object}	SignatoryResponse
// @Failure		400	{object}	SignatoryResponse
// @Failure		404	{object}	SignatoryResponse
// @Failure		500	{object}	SignatoryResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/signatories/{id} [get]
func GetSignatory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), SignatoryResponse{Error: errorString(err)})
		return
	}

	var signatory models.Signatory
	err = models.DB.First(&signatory, uri.ID).Error
	if err != nil {
		c.JSON(status(err), SignatoryResponse{Error: errorString(err)})
		return
	}

	data := newSignatory(c, signatory)
	c.JSON(http.StatusOK, SignatoryResponse{Data: &data})
}

// @Summary		Update signatory
// @Description	Update an existing signatory. Only values to be updated need to be specified.
// @Tags			Signatories
// @Accept			json
// @Produce		json
// @Success		200			{object}	SignatoryResponse
// @Failure		400			{object}	SignatoryResponse
// @Failure		404			{object}	SignatoryResponse
// @Failure		500			{object}	SignatoryResponse
// @Param			id			path		URIID				true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			signatory	body		SignatoryEditable	true	"Signatory"
// @Router			/v1/signatories/{id} [patch]
func UpdateSignatory(c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), SignatoryResponse{Error: errorString(err)})
		return
	}

	var signatory models.Signatory
	err = models.DB.First(&signatory, uri.ID).Error
	if err != nil {
		c.JSON(status(err), SignatoryResponse{Error: errorString(err)})
		return
	}

	updateFields, err := httputil.GetBodyFields(c, SignatoryEditable{})
	if err != nil {
		c.JSON(status(err), SignatoryResponse{Error: errorString(err)})
		return
	}

	var data SignatoryEditable
	err = httputil.BindData(c, &data)
	if err != nil {
		c.JSON(status(err), SignatoryResponse{Error: errorString(err)})
		return
	}

	for _, field := range updateFields {
		if field == "Role" {
			if err := data.validate(); err != nil {
				c.JSON(status(err), SignatoryResponse{Error: errorString(err)})
				return
			}
		}
	}

	err = models.DB.Model(&signatory).Select("", updateFields...).Updates(data.model()).Error
	if err != nil {
		c.JSON(status(err), SignatoryResponse{Error: errorString(err)})
		return
	}

	r := newSignatory(c, signatory)
	c.JSON(http.StatusOK, SignatoryResponse{Data: &r})
}

// @Summary		Delete signatory
// @Description	Deletes a signatory
// @Tags			Signatories
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/signatories/{id} [delete]
func DeleteSignatory(c *gin.Context) {
	deleteResource[models.Signatory](c)
}
