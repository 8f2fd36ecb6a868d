package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"wardrobe-assistant/internal/middleware"
	"wardrobe-assistant/internal/model"
	"wardrobe-assistant/internal/wardrobe"
	"wardrobe-assistant/pkg/log"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockUseCase struct {
	lastScope model.Scope
	lastList  wardrobe.ListItemsInput
	lastRef   wardrobe.ResolveReferenceInput
	err       error

	items []wardrobe.ClothingItem
}

func (m *mockUseCase) CreateItem(ctx context.Context, sc model.Scope, input wardrobe.CreateItemInput) (wardrobe.ItemOutput, error) {
	m.lastScope = sc
	if m.err != nil {
		return wardrobe.ItemOutput{}, m.err
	}
	return wardrobe.ItemOutput{Item: wardrobe.ClothingItem{
		ID:       "new",
		Analysis: input.Analysis,
		Category: wardrobe.Category(input.Category),
		ImageKey: input.ImageKey,
	}}, nil
}

func (m *mockUseCase) ListItems(ctx context.Context, sc model.Scope, input wardrobe.ListItemsInput) (wardrobe.ListItemsOutput, error) {
	m.lastScope = sc
	m.lastList = input
	if m.err != nil {
		return wardrobe.ListItemsOutput{}, m.err
	}
	return wardrobe.ListItemsOutput{Items: m.items, Total: len(m.items), Limit: 50}, nil
}

func (m *mockUseCase) DetailItem(ctx context.Context, sc model.Scope, id string) (wardrobe.ItemOutput, error) {
	if m.err != nil {
		return wardrobe.ItemOutput{}, m.err
	}
	return wardrobe.ItemOutput{Item: wardrobe.ClothingItem{ID: id}}, nil
}

func (m *mockUseCase) UpdateItem(ctx context.Context, sc model.Scope, input wardrobe.UpdateItemInput) (wardrobe.ItemOutput, error) {
	if m.err != nil {
		return wardrobe.ItemOutput{}, m.err
	}
	return wardrobe.ItemOutput{Item: wardrobe.ClothingItem{ID: input.ID, Color: input.Color}}, nil
}

func (m *mockUseCase) DeleteItem(ctx context.Context, sc model.Scope, id string) error {
	return m.err
}

func (m *mockUseCase) BackfillSubcategories(ctx context.Context, sc model.Scope) (wardrobe.BackfillOutput, error) {
	return wardrobe.BackfillOutput{Scanned: 3, Updated: 1, Unmatched: 2}, m.err
}

func (m *mockUseCase) CreateSet(ctx context.Context, sc model.Scope, input wardrobe.CreateSetInput) (wardrobe.SetOutput, error) {
	if m.err != nil {
		return wardrobe.SetOutput{}, m.err
	}
	return wardrobe.SetOutput{Set: wardrobe.ClothingSet{ID: "s", Name: input.Name, ItemIDs: input.ItemIDs}}, nil
}

func (m *mockUseCase) ListSets(ctx context.Context, sc model.Scope) (wardrobe.ListSetsOutput, error) {
	return wardrobe.ListSetsOutput{}, m.err
}

func (m *mockUseCase) DetailSet(ctx context.Context, sc model.Scope, id string) (wardrobe.SetOutput, error) {
	if m.err != nil {
		return wardrobe.SetOutput{}, m.err
	}
	return wardrobe.SetOutput{
		Set:            wardrobe.ClothingSet{ID: id, ItemIDs: []string{"a", "gone"}},
		Members:        []wardrobe.ClothingItem{{ID: "a"}},
		MissingItemIDs: []string{"gone"},
	}, nil
}

func (m *mockUseCase) DeleteSet(ctx context.Context, sc model.Scope, id string) error {
	return m.err
}

func (m *mockUseCase) SuggestOutfits(ctx context.Context, sc model.Scope, input wardrobe.SuggestOutfitsInput) (wardrobe.SuggestOutfitsOutput, error) {
	if m.err != nil {
		return wardrobe.SuggestOutfitsOutput{}, m.err
	}
	item := wardrobe.ClothingItem{ID: "abc123", Analysis: "Jean", ImageKey: "img/jean.jpg"}
	return wardrobe.SuggestOutfitsOutput{Outfits: []wardrobe.Outfit{{
		Name: "Casual",
		Items: []wardrobe.ResolvedItem{
			{Reference: wardrobe.OutfitItem{ID: "abc123"}, Item: &item, Step: "item_id"},
			{Reference: wardrobe.OutfitItem{Description: "Chaussures roses"}, Step: "none"},
		},
	}}}, nil
}

func (m *mockUseCase) PlanVacation(ctx context.Context, sc model.Scope, input wardrobe.PlanVacationInput) (wardrobe.PlanVacationOutput, error) {
	if m.err != nil {
		return wardrobe.PlanVacationOutput{}, m.err
	}
	return wardrobe.PlanVacationOutput{
		Destination: input.Destination,
		StartDate:   time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 7, 5, 0, 0, 0, 0, time.UTC),
		Days:        5,
		Packing:     []wardrobe.PackingEntry{{Quantity: 2, Resolved: wardrobe.ResolvedItem{Step: "none"}}},
	}, nil
}

func (m *mockUseCase) AnalyzeGaps(ctx context.Context, sc model.Scope, input wardrobe.AnalyzeGapsInput) (wardrobe.AnalyzeGapsOutput, error) {
	if m.err != nil {
		return wardrobe.AnalyzeGapsOutput{}, m.err
	}
	return wardrobe.AnalyzeGapsOutput{
		Summary: wardrobe.InventorySummary{TotalItems: 2, ByCategory: map[wardrobe.Category]int{wardrobe.CategoryTops: 2}},
		Suggestions: []wardrobe.GapSuggestion{
			{Category: wardrobe.CategoryShoes, RawCategory: "shoes", Description: "Bottines"},
			{RawCategory: "Robes", Description: "Robe d'été"},
		},
	}, nil
}

func (m *mockUseCase) ResolveReference(ctx context.Context, sc model.Scope, input wardrobe.ResolveReferenceInput) (wardrobe.ResolvedItem, error) {
	m.lastRef = input
	if m.err != nil {
		return wardrobe.ResolvedItem{}, m.err
	}
	return wardrobe.ResolvedItem{Reference: input.Reference, Step: "none"}, nil
}

func (m *mockUseCase) Taxonomy(ctx context.Context) wardrobe.TaxonomyOutput {
	return wardrobe.TaxonomyOutput{Categories: []wardrobe.TaxonomyCategory{
		{Category: wardrobe.CategoryTops, Subcategories: []wardrobe.Subcategory{"T-shirts", "Chemises"}},
	}}
}

type mockPresigner struct {
	fail bool
}

func (m *mockPresigner) PresignGetURL(ctx context.Context, key string) (string, error) {
	if m.fail {
		return "", errors.New("sign error")
	}
	return "https://cdn.test/" + key + "?sig=1", nil
}

func newTestRouter(uc *mockUseCase, presigner *mockPresigner) *gin.Engine {
	var h *handler
	if presigner != nil {
		h = New(log.NewNop(), uc, presigner)
	} else {
		h = New(log.NewNop(), uc, nil)
	}
	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), h, middleware.New(log.NewNop(), nil, 0))
	return r
}

type envelope struct {
	ErrorCode int             `json:"error_code"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
}

func do(t *testing.T, r *gin.Engine, method, path, body string, authed bool) (int, envelope) {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("X-User-ID", "alice")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
			t.Fatalf("invalid JSON response %q: %v", w.Body.String(), err)
		}
	}
	return w.Code, env
}

func TestCreateItemHandler(t *testing.T) {
	uc := &mockUseCase{}
	r := newTestRouter(uc, &mockPresigner{})

	code, env := do(t, r, http.MethodPost, "/api/v1/items", `{"analysis": "Pull", "category": "Hauts", "image_key": "img/pull.jpg"}`, true)
	if code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", code, env.Data)
	}
	var resp itemDetailResp
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Item.ID != "new" || resp.Item.ImageURL != "https://cdn.test/img/pull.jpg?sig=1" {
		t.Errorf("unexpected item: %+v", resp.Item)
	}
	if uc.lastScope.UserID != "alice" {
		t.Errorf("scope = %+v", uc.lastScope)
	}

	t.Run("Missing required field", func(t *testing.T) {
		code, _ := do(t, r, http.MethodPost, "/api/v1/items", `{"category": "Hauts"}`, true)
		if code != http.StatusBadRequest {
			t.Errorf("status = %d", code)
		}
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		code, _ := do(t, r, http.MethodPost, "/api/v1/items", `{"analysis": "Pull", "category": "Hauts"}`, false)
		if code != http.StatusUnauthorized {
			t.Errorf("status = %d", code)
		}
	})
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "Item not found", err: wardrobe.ErrItemNotFound, wantStatus: http.StatusNotFound},
		{name: "Set not found", err: wardrobe.ErrSetNotFound, wantStatus: http.StatusNotFound},
		{name: "Wrapped invalid category", err: fmt.Errorf("ctx: %w", wardrobe.ErrInvalidCategory), wantStatus: http.StatusBadRequest},
		{name: "Invalid date range", err: wardrobe.ErrInvalidDateRange, wantStatus: http.StatusBadRequest},
		{name: "AI unavailable", err: fmt.Errorf("%w: timeout", wardrobe.ErrAIUnavailable), wantStatus: http.StatusServiceUnavailable},
		{name: "AI response", err: wardrobe.ErrAIResponse, wantStatus: http.StatusBadGateway},
		{name: "Unknown", err: errors.New("mongo exploded"), wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(&mockUseCase{err: tt.err}, nil)
			code, env := do(t, r, http.MethodGet, "/api/v1/items/abc", "", true)
			if code != tt.wantStatus {
				t.Errorf("status = %d, want %d", code, tt.wantStatus)
			}
			if strings.Contains(env.Message, "mongo") {
				t.Errorf("internal error leaked: %q", env.Message)
			}
		})
	}
}

func TestListItemsHandler(t *testing.T) {
	uc := &mockUseCase{items: []wardrobe.ClothingItem{{ID: "1", ImageKey: "k"}}}
	r := newTestRouter(uc, &mockPresigner{fail: true})

	code, env := do(t, r, http.MethodGet, "/api/v1/items?category=tops&q=lin&sort=color&limit=5&offset=10", "", true)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	want := wardrobe.ListItemsInput{Category: "tops", Query: "lin", Sort: "color", Limit: 5, Offset: 10}
	if uc.lastList != want {
		t.Errorf("input = %+v", uc.lastList)
	}
	var resp listItemsResp
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Items) != 1 || resp.Items[0].ImageURL != "" {
		t.Errorf("failed presign should drop the URL: %+v", resp.Items)
	}

	if code, _ := do(t, r, http.MethodGet, "/api/v1/items?sort=random", "", true); code != http.StatusBadRequest {
		t.Errorf("invalid sort: status = %d", code)
	}
}

func TestSetHandlers(t *testing.T) {
	r := newTestRouter(&mockUseCase{}, nil)

	code, env := do(t, r, http.MethodGet, "/api/v1/sets/s1", "", true)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	var detail setDetailResp
	if err := json.Unmarshal(env.Data, &detail); err != nil {
		t.Fatal(err)
	}
	if detail.Set.ID != "s1" || len(detail.Members) != 1 || len(detail.MissingItemIDs) != 1 {
		t.Errorf("unexpected detail: %+v", detail)
	}

	if code, _ := do(t, r, http.MethodPost, "/api/v1/sets", `{"name": "S", "item_ids": []}`, true); code != http.StatusBadRequest {
		t.Errorf("empty item_ids: status = %d", code)
	}

	code, env = do(t, r, http.MethodGet, "/api/v1/sets", "", true)
	if code != http.StatusOK || !strings.Contains(string(env.Data), `"sets":[]`) {
		t.Errorf("list: %d %s", code, env.Data)
	}
}

func TestSuggestOutfitsHandler(t *testing.T) {
	r := newTestRouter(&mockUseCase{}, nil)

	code, env := do(t, r, http.MethodPost, "/api/v1/outfits/suggest", "", true)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	var resp suggestOutfitsResp
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatal(err)
	}
	items := resp.Outfits[0].Items
	if !items[0].Found || items[0].Item == nil || items[0].Item.ImageURL != "img/jean.jpg" {
		t.Errorf("resolved piece: %+v", items[0])
	}
	if items[1].Found || items[1].Item != nil || items[1].Reference.Description != "Chaussures roses" {
		t.Errorf("placeholder piece: %+v", items[1])
	}

	if code, _ := do(t, r, http.MethodPost, "/api/v1/outfits/suggest", `{"count": 50}`, true); code != http.StatusBadRequest {
		t.Errorf("count too high: status = %d", code)
	}
}

func TestPlanVacationHandler(t *testing.T) {
	r := newTestRouter(&mockUseCase{}, nil)

	code, env := do(t, r, http.MethodPost, "/api/v1/vacations/plan", `{"destination": "Nice", "start_date": "2026-07-01", "end_date": "2026-07-05"}`, true)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	var resp planVacationResp
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatal(err)
	}
	if resp.StartDate != "2026-07-01" || resp.EndDate != "2026-07-05" || resp.Days != 5 || resp.Packing[0].Quantity != 2 {
		t.Errorf("unexpected plan: %+v", resp)
	}

	if code, _ := do(t, r, http.MethodPost, "/api/v1/vacations/plan", `{"destination": "Nice"}`, true); code != http.StatusBadRequest {
		t.Errorf("missing dates: status = %d", code)
	}
}

func TestAnalyzeGapsHandler(t *testing.T) {
	r := newTestRouter(&mockUseCase{}, nil)

	code, env := do(t, r, http.MethodPost, "/api/v1/gaps/analyze", `{"season": "hiver"}`, true)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	var resp analyzeGapsResp
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Summary.ByCategory["Hauts"] != 2 {
		t.Errorf("summary = %+v", resp.Summary)
	}
	if !resp.Suggestions[0].Known || resp.Suggestions[0].Category != "Chaussures" {
		t.Errorf("known suggestion = %+v", resp.Suggestions[0])
	}
	if resp.Suggestions[1].Known || resp.Suggestions[1].Category != "Robes" {
		t.Errorf("free text suggestion = %+v", resp.Suggestions[1])
	}
}

func TestResolveHandler(t *testing.T) {
	uc := &mockUseCase{}
	r := newTestRouter(uc, nil)

	code, _ := do(t, r, http.MethodPost, "/api/v1/resolve", `{"reference": {"id": 7, "description": " Jean "}, "mode": "vacation"}`, true)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	if uc.lastRef.Reference.ID != "7" || uc.lastRef.Reference.Description != "Jean" || uc.lastRef.Mode != "vacation" {
		t.Errorf("input = %+v", uc.lastRef)
	}

	if code, _ := do(t, r, http.MethodPost, "/api/v1/resolve", `{"reference": null}`, true); code != http.StatusBadRequest {
		t.Errorf("empty reference: status = %d", code)
	}
	if code, _ := do(t, r, http.MethodPost, "/api/v1/resolve", `{"reference": "abc", "mode": "fuzzy"}`, true); code != http.StatusBadRequest {
		t.Errorf("invalid mode: status = %d", code)
	}
}

func TestTaxonomyHandler(t *testing.T) {
	r := newTestRouter(&mockUseCase{}, nil)

	code, env := do(t, r, http.MethodGet, "/api/v1/taxonomy", "", false)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	var resp taxonomyResp
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Categories) != 1 || resp.Categories[0].Subcategories[1] != "Chemises" {
		t.Errorf("unexpected taxonomy: %+v", resp)
	}
}

func TestClassifyHandler(t *testing.T) {
	r := newTestRouter(&mockUseCase{}, nil)

	code, env := do(t, r, http.MethodPost, "/api/v1/items/classify", "", true)
	if code != http.StatusOK {
		t.Fatalf("status = %d", code)
	}
	var resp backfillResp
	if err := json.Unmarshal(env.Data, &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Scanned != 3 || resp.Updated != 1 || resp.Unmatched != 2 || resp.Items == nil {
		t.Errorf("unexpected backfill: %+v", resp)
	}
}
