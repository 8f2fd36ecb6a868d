package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"wardrobe-assistant/internal/wardrobe"
	"wardrobe-assistant/internal/wardrobe/resolver"
)

func aiRepo() *mockRepo {
	return &mockRepo{
		clock: fixedNow,
		items: []wardrobe.ClothingItem{
			{ID: "abc123", UserID: "alice", Analysis: "Jean bleu délavé", Category: wardrobe.CategoryBottoms, Subcategory: "Jeans"},
			{ID: "xyz", UserID: "alice", Analysis: "Jean bleu délavé coupe droite", Category: wardrobe.CategoryBottoms, Subcategory: "Jeans"},
			{ID: "shirt-1", UserID: "alice", Analysis: "Chemise blanche en lin", Category: wardrobe.CategoryTops, Subcategory: "Chemises"},
			{ID: "shoe-1", UserID: "alice", Analysis: "Baskets blanches", Category: wardrobe.CategoryShoes},
		},
		sets: []wardrobe.ClothingSet{
			{ID: "set-1", UserID: "alice", Name: "Week-end", ItemIDs: []string{"abc123", "shirt-1"}},
		},
	}
}

func TestSuggestOutfits(t *testing.T) {
	ctx := context.Background()

	t.Run("Resolves every piece", func(t *testing.T) {
		llm := &mockGeminiClient{text: "Voici mes idées :\n```json\n" + `{"outfits": [
			{"name": "Casual", "description": "Décontracté", "items": [
				{"id": "abc123", "description": "Jean"},
				{"id": "Jean bleu délavé coupe droite", "description": "x"},
				"shirt-1",
				{"id": "", "description": "chemise BLANCHE"},
				{"id": 42, "description": "Chaussures roses"},
				null
			]},
			{"name": "Set", "items": [{"id": "set-1"}]}
		]}` + "\n```"}
		uc := newTestUseCase(aiRepo(), llm, nil)

		out, err := uc.SuggestOutfits(ctx, alice, wardrobe.SuggestOutfitsInput{Occasion: "brunch"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Outfits) != 2 {
			t.Fatalf("expected 2 outfits, got %d", len(out.Outfits))
		}

		first := out.Outfits[0]
		if first.Name != "Casual" || len(first.Items) != 5 {
			t.Fatalf("unexpected first outfit: %+v", first)
		}
		wantSteps := []resolver.Step{
			resolver.StepItemID,
			resolver.StepReverseContainment,
			resolver.StepItemID,
			resolver.StepFuzzyDescription,
			resolver.StepNone,
		}
		for i, want := range wantSteps {
			if first.Items[i].Step != string(want) {
				t.Errorf("item %d: step %q, want %q", i, first.Items[i].Step, want)
			}
		}
		if first.Items[1].Item == nil || first.Items[1].Item.ID != "xyz" {
			t.Errorf("reverse containment resolved to %+v", first.Items[1].Item)
		}
		if first.Items[4].Found() || first.Items[4].Reference.ID != "42" {
			t.Errorf("unresolved reference should be kept: %+v", first.Items[4])
		}

		if s := out.Outfits[1].Items[0]; s.Set == nil || s.Set.ID != "set-1" {
			t.Errorf("expected set match, got %+v", s)
		}

		if len(llm.prompts) != 1 || !strings.Contains(llm.prompts[0], "id=abc123") || !strings.Contains(llm.prompts[0], "Occasion: brunch") {
			t.Errorf("prompt missing inventory or occasion: %q", llm.prompts)
		}
	})

	t.Run("Bare array answer", func(t *testing.T) {
		llm := &mockGeminiClient{text: `[{"name": "A", "items": ["shoe-1"]}]`}
		uc := newTestUseCase(aiRepo(), llm, nil)
		out, err := uc.SuggestOutfits(ctx, alice, wardrobe.SuggestOutfitsInput{})
		if err != nil || len(out.Outfits) != 1 || !out.Outfits[0].Items[0].Found() {
			t.Errorf("got %+v, %v", out, err)
		}
	})

	t.Run("Empty wardrobe skips the LLM", func(t *testing.T) {
		llm := &mockGeminiClient{text: "{}"}
		uc := newTestUseCase(&mockRepo{}, llm, nil)
		out, err := uc.SuggestOutfits(ctx, alice, wardrobe.SuggestOutfitsInput{})
		if err != nil || out.Outfits == nil || len(out.Outfits) != 0 || len(llm.prompts) != 0 {
			t.Errorf("got %+v, %v, prompts=%d", out, err, len(llm.prompts))
		}
	})

	t.Run("Undecodable answer", func(t *testing.T) {
		uc := newTestUseCase(aiRepo(), &mockGeminiClient{text: "désolé, je ne peux pas"}, nil)
		if _, err := uc.SuggestOutfits(ctx, alice, wardrobe.SuggestOutfitsInput{}); !errors.Is(err, wardrobe.ErrAIResponse) {
			t.Errorf("expected ErrAIResponse, got %v", err)
		}
	})

	t.Run("LLM failure", func(t *testing.T) {
		uc := newTestUseCase(aiRepo(), &mockGeminiClient{err: errors.New("boom")}, nil)
		if _, err := uc.SuggestOutfits(ctx, alice, wardrobe.SuggestOutfitsInput{}); !errors.Is(err, wardrobe.ErrAIUnavailable) {
			t.Errorf("expected ErrAIUnavailable, got %v", err)
		}
	})

	t.Run("No LLM configured", func(t *testing.T) {
		uc := newTestUseCase(aiRepo(), nil, nil)
		if _, err := uc.SuggestOutfits(ctx, alice, wardrobe.SuggestOutfitsInput{}); !errors.Is(err, wardrobe.ErrAIUnavailable) {
			t.Errorf("expected ErrAIUnavailable, got %v", err)
		}
	})
}

func TestPlanVacation(t *testing.T) {
	ctx := context.Background()
	answer := `{"packing": [
		{"id": "xyz", "quantity": 2, "reason": "Polyvalent"},
		{"id": "Chemise blanche en lin", "description": "x", "quantity": "3"},
		{"id": "nope", "description": "Jean bleu délavé"},
		{"id": "", "description": "chemise blanche"},
		{"id": "set-1"}
	], "advice": "Prévoir un pull."}`

	t.Run("Resolves with exact matching", func(t *testing.T) {
		cal := &mockCalendarClient{}
		llm := &mockGeminiClient{text: answer}
		uc := newTestUseCase(aiRepo(), llm, cal)

		out, err := uc.PlanVacation(ctx, alice, wardrobe.PlanVacationInput{
			Destination:      " Lisbonne ",
			StartDate:        "2026-07-01",
			EndDate:          "2026-07-05",
			Activities:       []string{"plage"},
			ExportToCalendar: true,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Destination != "Lisbonne" || out.Days != 5 || out.Advice != "Prévoir un pull." {
			t.Errorf("unexpected plan header: %+v", out)
		}
		if len(out.Packing) != 5 {
			t.Fatalf("expected 5 entries, got %d", len(out.Packing))
		}

		wantSteps := []resolver.Step{
			resolver.StepItemID,
			resolver.StepExactAnalysisID,
			resolver.StepExactAnalysisDescription,
			resolver.StepNone,
			resolver.StepSetID,
		}
		for i, want := range wantSteps {
			if out.Packing[i].Resolved.Step != string(want) {
				t.Errorf("entry %d: step %q, want %q", i, out.Packing[i].Resolved.Step, want)
			}
		}
		if out.Packing[0].Quantity != 2 || out.Packing[1].Quantity != 3 || out.Packing[2].Quantity != 1 {
			t.Errorf("quantities: %d %d %d", out.Packing[0].Quantity, out.Packing[1].Quantity, out.Packing[2].Quantity)
		}
		if out.Packing[0].Reason != "Polyvalent" {
			t.Errorf("reason = %q", out.Packing[0].Reason)
		}

		if out.CalendarLink != "http://cal.link" || len(cal.requests) != 1 {
			t.Fatalf("calendar export missing: link=%q requests=%d", out.CalendarLink, len(cal.requests))
		}
		req := cal.requests[0]
		if !req.AllDay || req.CalendarID != "primary" || req.Location != "Lisbonne" {
			t.Errorf("unexpected calendar request: %+v", req)
		}
		if !strings.Contains(req.Description, "2x Jean bleu délavé coupe droite") || !strings.Contains(req.Description, "1x Week-end") {
			t.Errorf("description = %q", req.Description)
		}
		if !strings.Contains(llm.prompts[0], "5 day trip to Lisbonne") {
			t.Errorf("prompt = %q", llm.prompts[0])
		}
	})

	t.Run("Relative dates", func(t *testing.T) {
		uc := newTestUseCase(aiRepo(), &mockGeminiClient{text: answer}, nil)
		out, err := uc.PlanVacation(ctx, alice, wardrobe.PlanVacationInput{
			Destination: "Nice",
			StartDate:   "demain",
			EndDate:     "in 3 days",
		})
		if err != nil {
			t.Fatal(err)
		}
		if out.StartDate.Format("2006-01-02") != "2026-06-11" || out.Days != 3 {
			t.Errorf("start=%s days=%d", out.StartDate, out.Days)
		}
	})

	t.Run("Calendar failure is not fatal", func(t *testing.T) {
		uc := newTestUseCase(aiRepo(), &mockGeminiClient{text: answer}, &mockCalendarClient{fail: true})
		out, err := uc.PlanVacation(ctx, alice, wardrobe.PlanVacationInput{
			Destination: "Nice", StartDate: "2026-07-01", EndDate: "2026-07-02", ExportToCalendar: true,
		})
		if err != nil || out.CalendarLink != "" {
			t.Errorf("got link=%q err=%v", out.CalendarLink, err)
		}
	})

	tests := []struct {
		name    string
		input   wardrobe.PlanVacationInput
		wantErr error
	}{
		{name: "No destination", input: wardrobe.PlanVacationInput{StartDate: "2026-07-01", EndDate: "2026-07-02"}, wantErr: wardrobe.ErrEmptyDestination},
		{name: "End before start", input: wardrobe.PlanVacationInput{Destination: "Nice", StartDate: "2026-07-05", EndDate: "2026-07-01"}, wantErr: wardrobe.ErrInvalidDateRange},
		{name: "Garbage date", input: wardrobe.PlanVacationInput{Destination: "Nice", StartDate: "someday", EndDate: "2026-07-01"}, wantErr: wardrobe.ErrInvalidDateRange},
		{name: "Too long", input: wardrobe.PlanVacationInput{Destination: "Nice", StartDate: "2026-01-01", EndDate: "2026-12-31"}, wantErr: wardrobe.ErrInvalidDateRange},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newTestUseCase(aiRepo(), &mockGeminiClient{text: answer}, nil)
			if _, err := uc.PlanVacation(ctx, alice, tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestAnalyzeGaps(t *testing.T) {
	ctx := context.Background()
	llm := &mockGeminiClient{text: `{"suggestions": [
		{"category": "shoes", "subcategory": "bottes", "description": "Bottines noires", "reason": "Pour l'hiver", "priority": "HIGH"},
		{"category": "Robes", "description": "Robe d'été", "priority": 1},
		{"category": "Hauts"}
	]}`}
	uc := newTestUseCase(aiRepo(), llm, nil)

	out, err := uc.AnalyzeGaps(ctx, alice, wardrobe.AnalyzeGapsInput{Season: "hiver"})
	if err != nil {
		t.Fatal(err)
	}

	s := out.Summary
	if s.TotalItems != 4 || s.TotalSets != 1 || s.ByCategory[wardrobe.CategoryBottoms] != 2 || s.BySubcategory["Jeans"] != 2 || s.Unclassified != 1 {
		t.Errorf("unexpected summary: %+v", s)
	}

	if len(out.Suggestions) != 2 {
		t.Fatalf("expected 2 suggestions, got %+v", out.Suggestions)
	}
	first := out.Suggestions[0]
	if first.Category != wardrobe.CategoryShoes || first.Subcategory != "Bottes" || first.Priority != "high" {
		t.Errorf("first suggestion not normalized: %+v", first)
	}
	second := out.Suggestions[1]
	if second.Category != "" || second.RawCategory != "Robes" || second.Priority != "1" {
		t.Errorf("unknown category should be kept as text: %+v", second)
	}

	if !strings.Contains(llm.prompts[0], "- Bas: 2") || !strings.Contains(llm.prompts[0], "Season: hiver") {
		t.Errorf("prompt = %q", llm.prompts[0])
	}
}

func TestResolveReference(t *testing.T) {
	ctx := context.Background()
	uc := newTestUseCase(aiRepo(), nil, nil)
	ref := wardrobe.OutfitItem{Description: "chemise blanche"}

	out, err := uc.ResolveReference(ctx, alice, wardrobe.ResolveReferenceInput{Reference: ref})
	if err != nil || out.Item == nil || out.Item.ID != "shirt-1" {
		t.Errorf("outfit mode: %+v, %v", out, err)
	}

	out, err = uc.ResolveReference(ctx, alice, wardrobe.ResolveReferenceInput{Reference: ref, Mode: "Vacation"})
	if err != nil || out.Found() || out.Step != string(resolver.StepNone) {
		t.Errorf("vacation mode: %+v, %v", out, err)
	}

	if _, err := uc.ResolveReference(ctx, alice, wardrobe.ResolveReferenceInput{Reference: ref, Mode: "fuzzy"}); !errors.Is(err, wardrobe.ErrInvalidResolveMode) {
		t.Errorf("expected ErrInvalidResolveMode, got %v", err)
	}

	if out, _ := uc.ResolveReference(ctx, bob, wardrobe.ResolveReferenceInput{Reference: wardrobe.OutfitItem{ID: "abc123"}}); out.Found() {
		t.Error("other users' items must not resolve")
	}
}

func TestTaxonomy(t *testing.T) {
	uc := newTestUseCase(&mockRepo{}, nil, nil)
	out := uc.Taxonomy(context.Background())
	if len(out.Categories) != 4 || out.Categories[0].Category != wardrobe.CategoryTops {
		t.Fatalf("unexpected taxonomy: %+v", out)
	}
	if out.Categories[1].Subcategories[0] != "Jeans" {
		t.Errorf("unexpected bottoms: %v", out.Categories[1].Subcategories)
	}
}
