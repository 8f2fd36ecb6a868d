package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"wardrobe-assistant/internal/wardrobe"
	"wardrobe-assistant/internal/wardrobe/classifier"
	"wardrobe-assistant/internal/wardrobe/repository"
	"wardrobe-assistant/pkg/datemath"
	"wardrobe-assistant/pkg/gcalendar"
	"wardrobe-assistant/pkg/gemini"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

var errDB = errors.New("db error")

// mockRepo is an in-memory repository.Repository.
type mockRepo struct {
	items   []wardrobe.ClothingItem
	sets    []wardrobe.ClothingSet
	fail    bool
	updates int
	clock   time.Time
}

func (m *mockRepo) tick() time.Time {
	m.clock = m.clock.Add(time.Minute)
	return m.clock
}

func (m *mockRepo) CreateItem(ctx context.Context, opt repository.CreateItemOptions) (wardrobe.ClothingItem, error) {
	if m.fail {
		return wardrobe.ClothingItem{}, errDB
	}
	now := m.tick()
	item := wardrobe.ClothingItem{
		ID:          opt.ID,
		UserID:      opt.UserID,
		Analysis:    opt.Analysis,
		Category:    opt.Category,
		Subcategory: opt.Subcategory,
		Color:       opt.Color,
		Material:    opt.Material,
		ImageKey:    opt.ImageKey,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.items = append(m.items, item)
	return item, nil
}

func (m *mockRepo) GetOneItem(ctx context.Context, opt repository.GetOneItemOptions) (wardrobe.ClothingItem, error) {
	if m.fail {
		return wardrobe.ClothingItem{}, errDB
	}
	for _, item := range m.items {
		if item.UserID == opt.UserID && item.ID == opt.ID {
			return item, nil
		}
	}
	return wardrobe.ClothingItem{}, nil
}

func (m *mockRepo) ListItems(ctx context.Context, opt repository.ListItemsOptions) ([]wardrobe.ClothingItem, error) {
	if m.fail {
		return nil, errDB
	}
	ids := make(map[string]bool, len(opt.IDs))
	for _, id := range opt.IDs {
		ids[id] = true
	}
	var out []wardrobe.ClothingItem
	for _, item := range m.items {
		if item.UserID != opt.UserID {
			continue
		}
		if opt.Category != "" && item.Category != opt.Category {
			continue
		}
		if len(ids) > 0 && !ids[item.ID] {
			continue
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *mockRepo) UpdateItem(ctx context.Context, opt repository.UpdateItemOptions) (wardrobe.ClothingItem, error) {
	if m.fail {
		return wardrobe.ClothingItem{}, errDB
	}
	for i, item := range m.items {
		if item.UserID == opt.UserID && item.ID == opt.ID {
			m.updates++
			item.Analysis = opt.Analysis
			item.Category = opt.Category
			item.Subcategory = opt.Subcategory
			item.Color = opt.Color
			item.Material = opt.Material
			item.ImageKey = opt.ImageKey
			item.UpdatedAt = m.tick()
			m.items[i] = item
			return item, nil
		}
	}
	return wardrobe.ClothingItem{}, nil
}

func (m *mockRepo) DeleteItem(ctx context.Context, opt repository.DeleteOptions) error {
	if m.fail {
		return errDB
	}
	for i, item := range m.items {
		if item.UserID == opt.UserID && item.ID == opt.ID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockRepo) CreateSet(ctx context.Context, opt repository.CreateSetOptions) (wardrobe.ClothingSet, error) {
	if m.fail {
		return wardrobe.ClothingSet{}, errDB
	}
	set := wardrobe.ClothingSet{
		ID:        opt.ID,
		UserID:    opt.UserID,
		Name:      opt.Name,
		ItemIDs:   opt.ItemIDs,
		ImageSrc:  opt.ImageSrc,
		CreatedAt: m.tick(),
	}
	m.sets = append(m.sets, set)
	return set, nil
}

func (m *mockRepo) GetOneSet(ctx context.Context, opt repository.GetOneSetOptions) (wardrobe.ClothingSet, error) {
	if m.fail {
		return wardrobe.ClothingSet{}, errDB
	}
	for _, set := range m.sets {
		if set.UserID == opt.UserID && set.ID == opt.ID {
			return set, nil
		}
	}
	return wardrobe.ClothingSet{}, nil
}

func (m *mockRepo) ListSets(ctx context.Context, opt repository.ListSetsOptions) ([]wardrobe.ClothingSet, error) {
	if m.fail {
		return nil, errDB
	}
	var out []wardrobe.ClothingSet
	for _, set := range m.sets {
		if set.UserID == opt.UserID {
			out = append(out, set)
		}
	}
	return out, nil
}

func (m *mockRepo) DeleteSet(ctx context.Context, opt repository.DeleteOptions) error {
	if m.fail {
		return errDB
	}
	for i, set := range m.sets {
		if set.UserID == opt.UserID && set.ID == opt.ID {
			m.sets = append(m.sets[:i], m.sets[i+1:]...)
			return nil
		}
	}
	return nil
}

// Mock Gemini client for testing
type mockGeminiClient struct {
	text    string
	err     error
	prompts []string
}

func (m *mockGeminiClient) GenerateContent(ctx context.Context, req gemini.GenerateRequest) (*gemini.GenerateResponse, error) {
	if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
		m.prompts = append(m.prompts, req.Contents[0].Parts[0].Text)
	}
	if m.err != nil {
		return nil, m.err
	}
	return &gemini.GenerateResponse{
		Candidates: []gemini.Candidate{
			{Content: gemini.Content{Parts: []gemini.Part{{Text: m.text}}}},
		},
	}, nil
}

func (m *mockGeminiClient) Model() string {
	return "gemini-test"
}

type mockCalendarClient struct {
	fail     bool
	requests []gcalendar.CreateEventRequest
}

func (m *mockCalendarClient) CreateEvent(ctx context.Context, req gcalendar.CreateEventRequest) (*gcalendar.Event, error) {
	m.requests = append(m.requests, req)
	if m.fail {
		return nil, errors.New("cal error")
	}
	return &gcalendar.Event{HtmlLink: "http://cal.link"}, nil
}

// fixedNow is a Wednesday.
var fixedNow = time.Date(2026, 6, 10, 9, 0, 0, 0, time.UTC)

func newTestUseCase(repo *mockRepo, llm gemini.IGemini, cal Calendar) *implUseCase {
	dm, err := datemath.NewParser("UTC")
	if err != nil {
		panic(err)
	}
	uc := New(&mockLogger{}, repo, classifier.New(classifier.DefaultTaxonomy()), llm, cal, dm, nil, "", "UTC")
	uc.now = func() time.Time { return fixedNow }
	return uc
}
