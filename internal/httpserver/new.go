package httpserver

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.mongodb.org/mongo-driver/mongo"

	"wardrobe-assistant/internal/wardrobe/classifier"
	wardrobeUC "wardrobe-assistant/internal/wardrobe/usecase"
	"wardrobe-assistant/pkg/datemath"
	"wardrobe-assistant/pkg/gemini"
	"wardrobe-assistant/pkg/log"
	"wardrobe-assistant/pkg/metrics"
	"wardrobe-assistant/pkg/s3"
	"wardrobe-assistant/pkg/scope"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Infrastructure
	mongoDB   *mongo.Database
	presigner s3.IPresigner
	metrics   *metrics.Collector
	gatherer  prometheus.Gatherer

	// Wardrobe domain
	llm        gemini.IGemini
	calendar   wardrobeUC.Calendar
	calendarID string
	timezone   string
	dateMath   *datemath.Parser
	classifier *classifier.Classifier

	// Middleware
	jwtManager      scope.Manager
	rateLimitPerMin int
}

// Config is the dependency bag passed to New().
// LLM, Calendar, Presigner and JWTManager are optional and must be left as
// untyped nil when not configured.
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	// Infrastructure
	MongoDB   *mongo.Database
	Presigner s3.IPresigner
	Metrics   *metrics.Collector
	Gatherer  prometheus.Gatherer

	// Wardrobe domain
	LLM        gemini.IGemini
	Calendar   wardrobeUC.Calendar
	CalendarID string
	Timezone   string
	DateMath   *datemath.Parser
	Classifier *classifier.Classifier

	// Middleware
	JWTManager      scope.Manager
	RateLimitPerMin int
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		mongoDB:         cfg.MongoDB,
		presigner:       cfg.Presigner,
		metrics:         cfg.Metrics,
		gatherer:        cfg.Gatherer,
		llm:             cfg.LLM,
		calendar:        cfg.Calendar,
		calendarID:      cfg.CalendarID,
		timezone:        cfg.Timezone,
		dateMath:        cfg.DateMath,
		classifier:      cfg.Classifier,
		jwtManager:      cfg.JWTManager,
		rateLimitPerMin: cfg.RateLimitPerMin,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if srv.gatherer == nil {
		srv.gatherer = prometheus.DefaultGatherer
	}
	if srv.classifier == nil {
		srv.classifier = classifier.New(classifier.DefaultTaxonomy())
	}
	if srv.timezone == "" {
		srv.timezone = "UTC"
	}
	if srv.dateMath == nil {
		parser, err := datemath.NewParser(srv.timezone)
		if err != nil {
			return nil, err
		}
		srv.dateMath = parser
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	return nil
}
