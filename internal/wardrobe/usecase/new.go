package usecase

import (
	"context"
	"time"

	"wardrobe-assistant/internal/wardrobe"
	"wardrobe-assistant/internal/wardrobe/classifier"
	"wardrobe-assistant/internal/wardrobe/repository"
	"wardrobe-assistant/pkg/datemath"
	"wardrobe-assistant/pkg/gcalendar"
	"wardrobe-assistant/pkg/gemini"
	pkgLog "wardrobe-assistant/pkg/log"
	"wardrobe-assistant/pkg/metrics"
)

// Calendar creates calendar events. *gcalendar.Client satisfies it.
type Calendar interface {
	CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error)
}

type implUseCase struct {
	l          pkgLog.Logger
	repo       repository.Repository
	classifier *classifier.Classifier
	llm        gemini.IGemini
	calendar   Calendar
	dateMath   *datemath.Parser
	metrics    *metrics.Collector
	calendarID string
	timezone   string
	now        func() time.Time
}

var _ wardrobe.UseCase = (*implUseCase)(nil)

// New creates a new wardrobe UseCase instance. llm and calendar may be nil:
// AI operations then fail with ErrAIUnavailable and calendar export is skipped.
func New(
	l pkgLog.Logger,
	repo repository.Repository,
	classifier *classifier.Classifier,
	llm gemini.IGemini,
	calendar Calendar,
	dateMath *datemath.Parser,
	metrics *metrics.Collector,
	calendarID string,
	timezone string,
) *implUseCase {
	if calendarID == "" {
		calendarID = gcalendar.DefaultCalendarID
	}
	return &implUseCase{
		l:          l,
		repo:       repo,
		classifier: classifier,
		llm:        llm,
		calendar:   calendar,
		dateMath:   dateMath,
		metrics:    metrics,
		calendarID: calendarID,
		timezone:   timezone,
		now:        time.Now,
	}
}
