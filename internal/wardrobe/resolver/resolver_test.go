package resolver_test

import (
	"encoding/json"
	"reflect"
	"sync"
	"testing"

	"wardrobe-assistant/internal/wardrobe"
	"wardrobe-assistant/internal/wardrobe/resolver"
)

func inventory() wardrobe.Inventory {
	return wardrobe.Inventory{
		Items: []wardrobe.ClothingItem{
			{ID: "abc123", Analysis: "Jean bleu délavé"},
			{ID: "xyz", Analysis: "Jean bleu délavé coupe droite"},
			{ID: "shirt-1", Analysis: "Chemise blanche en lin"},
			{ID: "blank", Analysis: "   "},
		},
		Sets: []wardrobe.ClothingSet{
			{ID: "set-1", Name: "Week-end", ItemIDs: []string{"abc123", "shirt-1"}},
		},
	}
}

func itemID(m resolver.Match) string {
	if m.Item == nil {
		return ""
	}
	return m.Item.ID
}

func TestResolveOutfitItem(t *testing.T) {
	inv := inventory()

	tests := []struct {
		name     string
		ref      wardrobe.OutfitItem
		wantItem string
		wantSet  string
		wantStep resolver.Step
	}{
		{
			name:     "Exact item id",
			ref:      wardrobe.OutfitItem{ID: "abc123", Description: "Jean bleu"},
			wantItem: "abc123",
			wantStep: resolver.StepItemID,
		},
		{
			name:     "Exact item id is trimmed",
			ref:      wardrobe.OutfitItem{ID: "  shirt-1\n", Description: ""},
			wantItem: "shirt-1",
			wantStep: resolver.StepItemID,
		},
		{
			name:     "Exact set id",
			ref:      wardrobe.OutfitItem{ID: "set-1", Description: "Chemise blanche"},
			wantSet:  "set-1",
			wantStep: resolver.StepSetID,
		},
		{
			name:     "Reverse containment",
			ref:      wardrobe.OutfitItem{ID: "Jean bleu délavé", Description: "ignored"},
			wantItem: "abc123",
			wantStep: resolver.StepReverseContainment,
		},
		{
			name:     "Reverse containment is case insensitive",
			ref:      wardrobe.OutfitItem{ID: "COUPE DROITE", Description: "ignored"},
			wantItem: "xyz",
			wantStep: resolver.StepReverseContainment,
		},
		{
			name:     "Fuzzy: analysis contains description",
			ref:      wardrobe.OutfitItem{ID: "", Description: "chemise BLANCHE"},
			wantItem: "shirt-1",
			wantStep: resolver.StepFuzzyDescription,
		},
		{
			name:     "Fuzzy: description contains analysis",
			ref:      wardrobe.OutfitItem{ID: "garbage", Description: "Une chemise blanche en lin, manches longues"},
			wantItem: "shirt-1",
			wantStep: resolver.StepFuzzyDescription,
		},
		{
			name:     "Fuzzy: description equals analysis with garbage id",
			ref:      wardrobe.OutfitItem{ID: "???", Description: "Chemise blanche en lin"},
			wantItem: "shirt-1",
			wantStep: resolver.StepFuzzyDescription,
		},
		{
			name:     "Empty id and unmatched description",
			ref:      wardrobe.OutfitItem{ID: "", Description: "Chaussures roses"},
			wantStep: resolver.StepNone,
		},
		{
			name:     "Empty reference",
			ref:      wardrobe.OutfitItem{},
			wantStep: resolver.StepNone,
		},
		{
			name:     "Whitespace only reference",
			ref:      wardrobe.OutfitItem{ID: "  ", Description: "\t"},
			wantStep: resolver.StepNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := resolver.ResolveOutfitItem(tt.ref, inv)
			if m.Step != tt.wantStep {
				t.Errorf("step = %q, want %q", m.Step, tt.wantStep)
			}
			if got := itemID(m); got != tt.wantItem {
				t.Errorf("item = %q, want %q", got, tt.wantItem)
			}
			gotSet := ""
			if m.Set != nil {
				gotSet = m.Set.ID
			}
			if gotSet != tt.wantSet {
				t.Errorf("set = %q, want %q", gotSet, tt.wantSet)
			}
			if m.Found() != (tt.wantItem != "" || tt.wantSet != "") {
				t.Errorf("Found() = %v", m.Found())
			}
		})
	}
}

func TestResolveOutfitItem_ExactIDBeatsFuzzy(t *testing.T) {
	inv := wardrobe.Inventory{
		Items: []wardrobe.ClothingItem{
			{ID: "fuzzy", Analysis: "Pull en laine rouge"},
			{ID: "exact", Analysis: "Bottines en cuir"},
		},
	}
	m := resolver.ResolveOutfitItem(wardrobe.OutfitItem{ID: "exact", Description: "Pull en laine rouge"}, inv)
	if itemID(m) != "exact" || m.Step != resolver.StepItemID {
		t.Errorf("expected exact id match, got %q via %q", itemID(m), m.Step)
	}
}

func TestResolveOutfitItem_IDHoldingDescription(t *testing.T) {
	inv := wardrobe.Inventory{
		Items: []wardrobe.ClothingItem{{ID: "xyz", Analysis: "Jean bleu délavé coupe droite"}},
	}
	m := resolver.ResolveOutfitItem(wardrobe.OutfitItem{ID: "Jean bleu délavé", Description: "ignored"}, inv)
	if itemID(m) != "xyz" || m.Step != resolver.StepReverseContainment {
		t.Errorf("expected xyz via reverse containment, got %q via %q", itemID(m), m.Step)
	}
}

func TestResolveOutfitItem_ItemIDBeatsSetID(t *testing.T) {
	inv := wardrobe.Inventory{
		Items: []wardrobe.ClothingItem{{ID: "shared", Analysis: "Jupe"}},
		Sets:  []wardrobe.ClothingSet{{ID: "shared", Name: "Set"}},
	}
	m := resolver.ResolveOutfitItem(wardrobe.OutfitItem{ID: "shared"}, inv)
	if m.Item == nil || m.Set != nil {
		t.Errorf("expected item match, got %+v", m)
	}
}

func TestResolveVacationItem(t *testing.T) {
	inv := inventory()

	tests := []struct {
		name     string
		ref      wardrobe.OutfitItem
		wantItem string
		wantStep resolver.Step
	}{
		{
			name:     "Exact item id",
			ref:      wardrobe.OutfitItem{ID: "xyz"},
			wantItem: "xyz",
			wantStep: resolver.StepItemID,
		},
		{
			name:     "Exact set id",
			ref:      wardrobe.OutfitItem{ID: "set-1"},
			wantStep: resolver.StepSetID,
		},
		{
			name:     "Analysis equals id",
			ref:      wardrobe.OutfitItem{ID: "Chemise blanche en lin", Description: "x"},
			wantItem: "shirt-1",
			wantStep: resolver.StepExactAnalysisID,
		},
		{
			name:     "Analysis equals description",
			ref:      wardrobe.OutfitItem{ID: "nope", Description: "Jean bleu délavé coupe droite"},
			wantItem: "xyz",
			wantStep: resolver.StepExactAnalysisDescription,
		},
		{
			name:     "Substring of id is not enough",
			ref:      wardrobe.OutfitItem{ID: "Jean bleu", Description: ""},
			wantStep: resolver.StepNone,
		},
		{
			name:     "Substring of description is not enough",
			ref:      wardrobe.OutfitItem{ID: "", Description: "chemise blanche"},
			wantStep: resolver.StepNone,
		},
		{
			name:     "Equality is case sensitive",
			ref:      wardrobe.OutfitItem{ID: "", Description: "chemise blanche en lin"},
			wantStep: resolver.StepNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := resolver.ResolveVacationItem(tt.ref, inv)
			if m.Step != tt.wantStep {
				t.Errorf("step = %q, want %q", m.Step, tt.wantStep)
			}
			if got := itemID(m); got != tt.wantItem {
				t.Errorf("item = %q, want %q", got, tt.wantItem)
			}
		})
	}
}

func TestResolve_DispatchesByChain(t *testing.T) {
	inv := inventory()
	ref := wardrobe.OutfitItem{Description: "chemise blanche"}

	if m := resolver.Resolve(resolver.ChainOutfit, ref, inv); !m.Found() {
		t.Error("outfit chain should match by fuzzy description")
	}
	if m := resolver.Resolve(resolver.ChainVacation, ref, inv); m.Found() {
		t.Error("vacation chain should not match a substring")
	}
	if m := resolver.Resolve("unknown", ref, inv); !m.Found() {
		t.Error("unknown chain should fall back to the outfit chain")
	}
}

func TestResolve_EmptyInventory(t *testing.T) {
	refs := []wardrobe.OutfitItem{
		{ID: "abc", Description: "Jean"},
		{},
		{ID: "  ", Description: "Chaussures roses"},
	}
	for _, ref := range refs {
		if m := resolver.ResolveOutfitItem(ref, wardrobe.Inventory{}); m.Found() || m.Step != resolver.StepNone {
			t.Errorf("expected miss for %+v, got %+v", ref, m)
		}
		if m := resolver.ResolveVacationItem(ref, wardrobe.Inventory{}); m.Found() {
			t.Errorf("expected miss for %+v, got %+v", ref, m)
		}
	}
}

func TestResolve_DecodedAIOutput(t *testing.T) {
	payload := `[{"id": "abc123", "description": "Jean"}, "shirt-1", null, {"id": 42, "description": "Chaussures roses"}, {"description": "Chemise blanche en lin"}]`

	var refs []wardrobe.OutfitItem
	if err := json.Unmarshal([]byte(payload), &refs); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	inv := inventory()
	got := make([]string, len(refs))
	for i, ref := range refs {
		got[i] = itemID(resolver.ResolveOutfitItem(ref, inv))
	}
	want := []string{"abc123", "shirt-1", "", "", "shirt-1"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("resolved = %v, want %v", got, want)
	}
}

func TestResolve_ConcurrentUse(t *testing.T) {
	inv := inventory()
	ref := wardrobe.OutfitItem{ID: "Jean bleu délavé"}

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if m := resolver.ResolveOutfitItem(ref, inv); itemID(m) != "abc123" {
				t.Errorf("unexpected match %q", itemID(m))
			}
		}()
	}
	wg.Wait()
}

func TestSetMembers(t *testing.T) {
	items := []wardrobe.ClothingItem{
		{ID: "a", Analysis: "A"},
		{ID: "b", Analysis: "B"},
	}
	set := wardrobe.ClothingSet{ID: "s", ItemIDs: []string{"b", "gone", "a"}}

	members, missing := resolver.SetMembers(set, items)
	if len(members) != 2 || members[0].ID != "b" || members[1].ID != "a" {
		t.Errorf("members = %+v", members)
	}
	if !reflect.DeepEqual(missing, []string{"gone"}) {
		t.Errorf("missing = %v", missing)
	}

	members, missing = resolver.SetMembers(wardrobe.ClothingSet{}, items)
	if len(members) != 0 || len(missing) != 0 {
		t.Errorf("expected nothing for empty set, got %v %v", members, missing)
	}
}
