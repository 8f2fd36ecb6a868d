package httpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"wardrobe-assistant/internal/middleware"
	wardrobeHTTP "wardrobe-assistant/internal/wardrobe/delivery/http"
	wardrobeRepo "wardrobe-assistant/internal/wardrobe/repository/mongo"
	wardrobeUC "wardrobe-assistant/internal/wardrobe/usecase"
)

var errMissingDatabase = errors.New("mongo database is required")

// setupWardrobeDomain initializes the wardrobe domain and registers its routes.
func (srv HTTPServer) setupWardrobeDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) error {
	if srv.mongoDB == nil {
		return errMissingDatabase
	}

	// 1. Repository
	repo := wardrobeRepo.New(srv.mongoDB, srv.l)
	if err := repo.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to create wardrobe indexes: %w", err)
	}

	// 2. UseCase
	uc := wardrobeUC.New(
		srv.l,
		repo,
		srv.classifier,
		srv.llm,
		srv.calendar,
		srv.dateMath,
		srv.metrics,
		srv.calendarID,
		srv.timezone,
	)

	// 3. HTTP Handler
	h := wardrobeHTTP.New(srv.l, uc, srv.presigner)

	// 4. Routes: /api/v1/items, /api/v1/sets, /api/v1/outfits/suggest, ...
	wardrobeHTTP.RegisterRoutes(api, h, mw)

	if srv.llm == nil {
		srv.l.Warnf(ctx, "Gemini not configured, AI routes will answer 503")
	}
	if srv.calendar == nil {
		srv.l.Infof(ctx, "Google Calendar not configured, trip export disabled")
	}

	srv.l.Infof(ctx, "Wardrobe domain registered")
	return nil
}
