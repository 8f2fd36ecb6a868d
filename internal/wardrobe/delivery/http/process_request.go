package http

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"wardrobe-assistant/internal/middleware"
	"wardrobe-assistant/internal/model"
	pkgErrors "wardrobe-assistant/pkg/errors"
)

var errMissingID = pkgErrors.NewHTTPError(http.StatusBadRequest, "id is required")

// processScope reads the caller set by the Auth middleware.
func (h *handler) processScope(c *gin.Context) (model.Scope, bool) {
	return middleware.GetScope(c)
}

func (h *handler) processIDParam(c *gin.Context) (string, error) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return "", errMissingID
	}
	return id, nil
}

func (h *handler) processCreateItemReq(c *gin.Context) (createItemReq, error) {
	var req createItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

func (h *handler) processListItemsReq(c *gin.Context) (listItemsReq, error) {
	var req listItemsReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

// processUpdateItemReq binds the body and the id URI param.
func (h *handler) processUpdateItemReq(c *gin.Context) (updateItemReq, error) {
	var req updateItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	id, err := h.processIDParam(c)
	if err != nil {
		return req, err
	}
	req.ID = id
	return req, req.validate()
}

func (h *handler) processCreateSetReq(c *gin.Context) (createSetReq, error) {
	var req createSetReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

func (h *handler) processSuggestOutfitsReq(c *gin.Context) (suggestOutfitsReq, error) {
	var req suggestOutfitsReq
	if err := bindOptionalJSON(c, &req); err != nil {
		return req, err
	}
	return req, req.validate()
}

func (h *handler) processPlanVacationReq(c *gin.Context) (planVacationReq, error) {
	var req planVacationReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

func (h *handler) processAnalyzeGapsReq(c *gin.Context) (analyzeGapsReq, error) {
	var req analyzeGapsReq
	if err := bindOptionalJSON(c, &req); err != nil {
		return req, err
	}
	return req, req.validate()
}

func (h *handler) processResolveReq(c *gin.Context) (resolveReq, error) {
	var req resolveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

// bindOptionalJSON binds a JSON body that may be absent.
func bindOptionalJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
