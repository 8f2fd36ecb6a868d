package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"wardrobe-assistant/config"
	_ "wardrobe-assistant/docs" // Swagger docs
	"wardrobe-assistant/internal/httpserver"
	"wardrobe-assistant/internal/wardrobe/classifier"
	wardrobeUC "wardrobe-assistant/internal/wardrobe/usecase"
	"wardrobe-assistant/pkg/datemath"
	"wardrobe-assistant/pkg/gcalendar"
	"wardrobe-assistant/pkg/gemini"
	"wardrobe-assistant/pkg/log"
	"wardrobe-assistant/pkg/metrics"
	pkgMongo "wardrobe-assistant/pkg/mongo"
	"wardrobe-assistant/pkg/s3"
	"wardrobe-assistant/pkg/scope"
)

// @title       Wardrobe Assistant API
// @description Wardrobe inventory with subcategory detection, AI outfit suggestions, packing lists and gap analysis.
// @version     1
// @host        localhost:8080
// @schemes     http
// @securityDefinitions.apikey BearerAuth
// @in          header
// @name        Authorization
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting Wardrobe Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. MongoDB
	mongoClient, err := pkgMongo.Connect(ctx, pkgMongo.Config{
		URI:            cfg.Mongo.URI,
		Database:       cfg.Mongo.Database,
		ConnectTimeout: cfg.Mongo.ConnectTimeout,
	})
	if err != nil {
		logger.Error(ctx, "Failed to connect to MongoDB: ", err)
		return
	}
	defer func() {
		if err := pkgMongo.Disconnect(mongoClient, 5*time.Second); err != nil {
			logger.Warnf(context.Background(), "MongoDB disconnect: %v", err)
		}
	}()
	logger.Infof(ctx, "MongoDB connected, database %q", cfg.Mongo.Database)

	// 4. Object storage (optional)
	var presigner s3.IPresigner
	if cfg.Storage.Bucket != "" {
		p, s3Err := s3.New(ctx, s3.Config{
			Region:          cfg.Storage.Region,
			Bucket:          cfg.Storage.Bucket,
			Endpoint:        cfg.Storage.Endpoint,
			AccessKeyID:     cfg.Storage.AccessKeyID,
			SecretAccessKey: cfg.Storage.SecretAccessKey,
			UsePathStyle:    cfg.Storage.UsePathStyle,
			PresignTTL:      cfg.Storage.PresignTTL,
		})
		if s3Err != nil {
			logger.Warnf(ctx, "Object storage not available, image keys returned as is: %v", s3Err)
		} else {
			presigner = p
		}
	}

	// 5. Gemini (optional)
	var llm gemini.IGemini
	if cfg.Gemini.APIKey != "" {
		client, gErr := gemini.New(gemini.Config{
			APIKey:  cfg.Gemini.APIKey,
			Model:   cfg.Gemini.Model,
			Timeout: cfg.Gemini.Timeout,
		})
		if gErr != nil {
			logger.Warnf(ctx, "Gemini not available: %v", gErr)
		} else {
			llm = client
			logger.Infof(ctx, "Gemini initialized with model %s", client.Model())
		}
	} else {
		logger.Warn(ctx, "GEMINI_API_KEY is missing, AI features disabled")
	}

	// 6. Google Calendar (optional)
	var calendar wardrobeUC.Calendar
	if cfg.GoogleCalendar.CredentialsPath != "" {
		client, calErr := gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsPath, cfg.GoogleCalendar.TokenPath)
		if calErr != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", calErr)
			logger.Warn(ctx, "Run `go run scripts/gcal-auth/main.go` to generate the token")
		} else {
			calendar = client
			logger.Info(ctx, "Google Calendar initialized")
		}
	}

	// 7. Date parsing
	timezone := cfg.GoogleCalendar.Timezone
	dateMathParser, err := datemath.NewParser(timezone)
	if err != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", timezone, err)
		timezone = "UTC"
		dateMathParser, _ = datemath.NewParser(timezone)
	}

	// 8. Subcategory taxonomy
	taxonomy := classifier.DefaultTaxonomy()
	if cfg.Taxonomy.Path != "" {
		loaded, taxErr := classifier.LoadTaxonomy(cfg.Taxonomy.Path)
		if taxErr != nil {
			logger.Error(ctx, "Failed to load taxonomy: ", taxErr)
			return
		}
		taxonomy = loaded
		logger.Infof(ctx, "Taxonomy loaded from %s", cfg.Taxonomy.Path)
	}

	// 9. Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.New()
	collector.Register(registry)

	// 10. Auth
	var jwtManager scope.Manager
	if cfg.Auth.JWTSecret != "" {
		jwtManager, err = scope.New(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL)
		if err != nil {
			logger.Error(ctx, "Failed to initialize JWT manager: ", err)
			return
		}
	}

	// 11. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:          logger,
		Port:            cfg.HTTPServer.Port,
		Mode:            cfg.HTTPServer.Mode,
		Environment:     cfg.Environment.Name,
		MongoDB:         mongoClient.Database(cfg.Mongo.Database),
		Presigner:       presigner,
		Metrics:         collector,
		Gatherer:        registry,
		LLM:             llm,
		Calendar:        calendar,
		CalendarID:      cfg.GoogleCalendar.CalendarID,
		Timezone:        timezone,
		DateMath:        dateMathParser,
		Classifier:      classifier.New(taxonomy),
		JWTManager:      jwtManager,
		RateLimitPerMin: cfg.RateLimit.AIRequestsPerMin,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 12. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
