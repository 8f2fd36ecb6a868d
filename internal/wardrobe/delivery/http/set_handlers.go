package http

import (
	"github.com/gin-gonic/gin"

	"wardrobe-assistant/pkg/response"
)

// CreateSet godoc
// @Summary     Create a set
// @Description Groups items under a name. Unknown item ids are kept and reported.
// @Tags        Sets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body body createSetReq true "Set data"
// @Success     200 {object} setDetailResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/sets [POST]
func (h *handler) CreateSet(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.processScope(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	req, err := h.processCreateSetReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.CreateSet(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.CreateSet: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newSetDetailResp(ctx, output))
}

// ListSets godoc
// @Summary     List sets
// @Tags        Sets
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} listSetsResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/sets [GET]
func (h *handler) ListSets(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.processScope(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	output, err := h.uc.ListSets(ctx, sc)
	if err != nil {
		h.l.Errorf(ctx, "uc.ListSets: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newListSetsResp(ctx, output))
}

// DetailSet godoc
// @Summary     Get set detail
// @Description Returns the set with its existing members and the ids that no longer resolve.
// @Tags        Sets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Set ID"
// @Success     200 {object} setDetailResp
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/sets/{id} [GET]
func (h *handler) DetailSet(c *gin.Context) {
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

	output, err := h.uc.DetailSet(ctx, sc, id)
	if err != nil {
		h.l.Errorf(ctx, "uc.DetailSet: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newSetDetailResp(ctx, output))
}

// DeleteSet godoc
// @Summary     Delete a set
// @Tags        Sets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Set ID"
// @Success     200 {object} response.Resp "OK"
// @Failure     404 {object} response.Resp "Not Found"
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/sets/{id} [DELETE]
func (h *handler) DeleteSet(c *gin.Context) {
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

	if err := h.uc.DeleteSet(ctx, sc, id); err != nil {
		h.l.Errorf(ctx, "uc.DeleteSet: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, nil)
}
