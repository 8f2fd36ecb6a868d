package http

import (
	"github.com/gin-gonic/gin"

	"wardrobe-assistant/pkg/response"
)

// SuggestOutfits godoc
// @Summary     Suggest outfits
// @Description Asks the AI stylist for outfits built from the caller's wardrobe. Pieces that do not resolve are returned with found=false.
// @Tags        Stylist
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body body suggestOutfitsReq false "Context"
// @Success     200 {object} suggestOutfitsResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Failure     502 {object} response.Resp "Bad AI response"
// @Failure     503 {object} response.Resp "AI unavailable"
// @Router      /api/v1/outfits/suggest [POST]
func (h *handler) SuggestOutfits(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.processScope(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	req, err := h.processSuggestOutfitsReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.SuggestOutfits(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.SuggestOutfits: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newSuggestOutfitsResp(ctx, output))
}

// PlanVacation godoc
// @Summary     Plan a vacation packing list
// @Description Dates accept YYYY-MM-DD or relative expressions such as "tomorrow" or "in 3 days".
// @Tags        Stylist
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body body planVacationReq true "Trip"
// @Success     200 {object} planVacationResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Failure     502 {object} response.Resp "Bad AI response"
// @Failure     503 {object} response.Resp "AI unavailable"
// @Router      /api/v1/vacations/plan [POST]
func (h *handler) PlanVacation(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.processScope(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	req, err := h.processPlanVacationReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.PlanVacation(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.PlanVacation: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newPlanVacationResp(ctx, output))
}

// AnalyzeGaps godoc
// @Summary     Analyze wardrobe gaps
// @Tags        Stylist
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body body analyzeGapsReq false "Preferences"
// @Success     200 {object} analyzeGapsResp
// @Failure     429 {object} response.Resp "Too Many Requests"
// @Failure     502 {object} response.Resp "Bad AI response"
// @Failure     503 {object} response.Resp "AI unavailable"
// @Router      /api/v1/gaps/analyze [POST]
func (h *handler) AnalyzeGaps(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.processScope(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	req, err := h.processAnalyzeGapsReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.AnalyzeGaps(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.AnalyzeGaps: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newAnalyzeGapsResp(output))
}

// Resolve godoc
// @Summary     Resolve an AI reference
// @Description Maps a cached {id, description} reference to an item or set of the caller.
// @Tags        Stylist
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body body resolveReq true "Reference"
// @Success     200 {object} resolvedResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/resolve [POST]
func (h *handler) Resolve(c *gin.Context) {
	ctx := c.Request.Context()

	sc, ok := h.processScope(c)
	if !ok {
		response.Unauthorized(c)
		return
	}

	req, err := h.processResolveReq(c)
	if err != nil {
		response.Error(c, err, nil)
		return
	}

	output, err := h.uc.ResolveReference(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "uc.ResolveReference: %v", err)
		response.Error(c, h.mapError(err), nil)
		return
	}

	response.OK(c, h.newResolvedResp(ctx, output))
}
