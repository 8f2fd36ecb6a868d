package http

import (
	"github.com/gin-gonic/gin"

	"wardrobe-assistant/pkg/response"
)

// CreateItem godoc
// @Summary     Create a clothing item
// @Description Stores a new item. The subcategory is detected from the analysis when omitted.
// @Tags        Items
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body body createItemReq true "Item data"
// @Success     200  {object} itemDetailResp
// @Failure     400  {object} response.Resp "Bad Request"
// @Failure     401  {object} response.Resp "Unauthorized"
// @Failure     500  {object} response.Resp "Internal Server Error"
// @Router      /api/v1/items [POST]
func (h *handler) CreateItem(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.processScope(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	req, err := h.processCreateItemReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.CreateItem(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.CreateItem: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newItemDetailResp(ctx, output))
}

// ListItems godoc
// @Summary     List clothing items
// @Description Returns the caller's items, filtered, sorted and paginated.
// @Tags        Items
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       category    query string false "Category (Hauts, Bas, Chaussures, Accessoires or English name)"
// @Param       subcategory query string false "Subcategory"
// @Param       color       query string false "Color substring"
// @Param       q           query string false "Free text search"
// @Param       sort        query string false "newest, oldest, category or color"
// @Param       limit       query int    false "Page size (default: 50)"
// @Param       offset      query int    false "Page offset (default: 0)"
// @Success     200 {object} listItemsResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/items [GET]
func (h *handler) ListItems(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.processScope(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	req, err := h.processListItemsReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.ListItems(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.ListItems: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newListItemsResp(ctx, output))
}

// DetailItem godoc
// @Summary     Get item detail
// @Tags        Items
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Item ID"
// @Success     200 {object} itemDetailResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/items/{id} [GET]
func (h *handler) DetailItem(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.processScope(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	id, err := h.processIDParam(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.DetailItem(ctx, sc, id)
	if err != nil {
		h.l.Errorf(ctx, "uc.DetailItem: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newItemDetailResp(ctx, output))
}

// UpdateItem godoc
// @Summary     Update an item
// @Description Partial update. Empty fields keep their stored value.
// @Tags        Items
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id   path string        true "Item ID"
// @Param       body body updateItemReq true "Fields to update"
// @Success     200 {object} itemDetailResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/items/{id} [PUT]
func (h *handler) UpdateItem(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.processScope(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	req, err := h.processUpdateItemReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.UpdateItem(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.UpdateItem: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newItemDetailResp(ctx, output))
}

// DeleteItem godoc
// @Summary     Delete an item
// @Tags        Items
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Item ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/items/{id} [DELETE]
func (h *handler) DeleteItem(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.processScope(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	id, err := h.processIDParam(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	if err := h.uc.DeleteItem(ctx, sc, id); err != nil {
		h.l.Errorf(ctx, "uc.DeleteItem: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, nil)
}

// ClassifyItems godoc
// @Summary     Backfill subcategories
// @Description Detects and stores a subcategory for every item that has none.
// @Tags        Items
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} backfillResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/items/classify [POST]
func (h *handler) ClassifyItems(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.processScope(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	output, err := h.uc.BackfillSubcategories(ctx, sc)
	if err != nil {
		h.l.Errorf(ctx, "uc.BackfillSubcategories: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newBackfillResp(ctx, output))
}

// Taxonomy godoc
// @Summary     List categories and subcategories
// @Tags        Items
// @Produce     json
// @Success     200 {object} taxonomyResp
// @Router      /api/v1/taxonomy [GET]
func (h *handler) Taxonomy(c *gin.Context) {
	response.OK(c, h.newTaxonomyResp(h.uc.Taxonomy(c.Request.Context())))
}
