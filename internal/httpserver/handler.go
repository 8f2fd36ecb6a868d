package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"wardrobe-assistant/internal/middleware"
	"wardrobe-assistant/internal/model"
)

func (srv HTTPServer) mapHandlers(ctx context.Context) error {
	mw := middleware.New(srv.l, srv.jwtManager, srv.rateLimitPerMin)

	srv.registerMiddlewares(ctx, mw)
	srv.registerSystemRoutes()

	if err := srv.registerDomainRoutes(ctx, mw); err != nil {
		return err
	}

	return nil
}

func (srv HTTPServer) registerMiddlewares(ctx context.Context, mw middleware.Middleware) {
	srv.gin.Use(gin.Recovery())
	srv.gin.Use(mw.RequestID())

	if srv.environment == string(model.EnvironmentProduction) {
		srv.l.Infof(ctx, "Running in production mode")
	} else {
		srv.l.Infof(ctx, "Running in %s mode", srv.environment)
	}
	if srv.jwtManager == nil {
		srv.l.Warnf(ctx, "JWT secret not configured, trusting the X-User-ID header")
	}
}

func (srv HTTPServer) registerSystemRoutes() {
	srv.gin.GET("/health", srv.healthCheck)
	srv.gin.GET("/ready", srv.readyCheck)
	srv.gin.GET("/live", srv.liveCheck)

	srv.gin.GET("/metrics", gin.WrapH(promhttp.HandlerFor(srv.gatherer, promhttp.HandlerOpts{})))

	srv.gin.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))
}

// registerDomainRoutes registers all domain routes under /api/v1.
func (srv HTTPServer) registerDomainRoutes(ctx context.Context, mw middleware.Middleware) error {
	api := srv.gin.Group("/api/v1")

	if err := srv.setupWardrobeDomain(ctx, api, mw); err != nil {
		return err
	}

	return nil
}
