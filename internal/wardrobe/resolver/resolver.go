package resolver

import (
	"strings"

	"wardrobe-assistant/internal/wardrobe"
)

// Step names the lookup that produced a match.
type Step string

const (
	StepNone                     Step = "none"
	StepItemID                   Step = "item_id"
	StepSetID                    Step = "set_id"
	StepReverseContainment       Step = "reverse_containment"
	StepFuzzyDescription         Step = "fuzzy_description"
	StepExactAnalysisID          Step = "exact_analysis_id"
	StepExactAnalysisDescription Step = "exact_analysis_description"
)

// Chain names a resolution chain.
type Chain string

const (
	ChainOutfit   Chain = "outfit"
	ChainVacation Chain = "vacation"
)

// Match is the result of a resolution. At most one of Item and Set is set.
type Match struct {
	Item *wardrobe.ClothingItem
	Set  *wardrobe.ClothingSet
	Step Step
}

// Found reports whether the reference resolved.
func (m Match) Found() bool {
	return m.Item != nil || m.Set != nil
}

// lookup tries one strategy. It must not fail; a miss returns a zero Match.
type lookup func(ref wardrobe.OutfitItem, inv wardrobe.Inventory) Match

var (
	outfitChain = []lookup{
		itemByID,
		setByID,
		itemByReverseContainment,
		itemByFuzzyDescription,
	}
	vacationChain = []lookup{
		itemByID,
		setByID,
		itemByExactAnalysisID,
		itemByExactAnalysisDescription,
	}
)

// ResolveOutfitItem maps an AI reference from an outfit suggestion to an
// inventory entry. Exact ids are tried first, then substring heuristics on the
// item analyses.
func ResolveOutfitItem(ref wardrobe.OutfitItem, inv wardrobe.Inventory) Match {
	return run(outfitChain, ref, inv)
}

// ResolveVacationItem maps an AI reference from a packing list. After the exact
// id lookups only exact analysis equality is accepted.
func ResolveVacationItem(ref wardrobe.OutfitItem, inv wardrobe.Inventory) Match {
	return run(vacationChain, ref, inv)
}

// Resolve dispatches to the chain named by chain. Unknown names use the outfit chain.
func Resolve(chain Chain, ref wardrobe.OutfitItem, inv wardrobe.Inventory) Match {
	if chain == ChainVacation {
		return ResolveVacationItem(ref, inv)
	}
	return ResolveOutfitItem(ref, inv)
}

func run(chain []lookup, ref wardrobe.OutfitItem, inv wardrobe.Inventory) Match {
	ref = ref.Normalize()
	for _, fn := range chain {
		if m := fn(ref, inv); m.Found() {
			return m
		}
	}
	return Match{Step: StepNone}
}

func itemByID(ref wardrobe.OutfitItem, inv wardrobe.Inventory) Match {
	if ref.ID == "" {
		return Match{}
	}
	for i := range inv.Items {
		if inv.Items[i].ID == ref.ID {
			return Match{Item: &inv.Items[i], Step: StepItemID}
		}
	}
	return Match{}
}

func setByID(ref wardrobe.OutfitItem, inv wardrobe.Inventory) Match {
	if ref.ID == "" {
		return Match{}
	}
	for i := range inv.Sets {
		if inv.Sets[i].ID == ref.ID {
			return Match{Set: &inv.Sets[i], Step: StepSetID}
		}
	}
	return Match{}
}

// itemByReverseContainment treats the id as descriptive text.
func itemByReverseContainment(ref wardrobe.OutfitItem, inv wardrobe.Inventory) Match {
	needle := strings.ToLower(ref.ID)
	if needle == "" {
		return Match{}
	}
	for i := range inv.Items {
		if strings.Contains(strings.ToLower(inv.Items[i].Analysis), needle) {
			return Match{Item: &inv.Items[i], Step: StepReverseContainment}
		}
	}
	return Match{}
}

// itemByFuzzyDescription matches when either text contains the other.
func itemByFuzzyDescription(ref wardrobe.OutfitItem, inv wardrobe.Inventory) Match {
	desc := strings.ToLower(ref.Description)
	if desc == "" {
		return Match{}
	}
	for i := range inv.Items {
		analysis := strings.ToLower(strings.TrimSpace(inv.Items[i].Analysis))
		if analysis == "" {
			continue
		}
		if strings.Contains(analysis, desc) || strings.Contains(desc, analysis) {
			return Match{Item: &inv.Items[i], Step: StepFuzzyDescription}
		}
	}
	return Match{}
}

func itemByExactAnalysisID(ref wardrobe.OutfitItem, inv wardrobe.Inventory) Match {
	if ref.ID == "" {
		return Match{}
	}
	for i := range inv.Items {
		if inv.Items[i].Analysis == ref.ID {
			return Match{Item: &inv.Items[i], Step: StepExactAnalysisID}
		}
	}
	return Match{}
}

func itemByExactAnalysisDescription(ref wardrobe.OutfitItem, inv wardrobe.Inventory) Match {
	if ref.Description == "" {
		return Match{}
	}
	for i := range inv.Items {
		if inv.Items[i].Analysis == ref.Description {
			return Match{Item: &inv.Items[i], Step: StepExactAnalysisDescription}
		}
	}
	return Match{}
}

// SetMembers returns the items of set that still exist, in set order.
// Dangling ids are skipped and returned separately.
func SetMembers(set wardrobe.ClothingSet, items []wardrobe.ClothingItem) (members []wardrobe.ClothingItem, missing []string) {
	byID := make(map[string]int, len(items))
	for i, item := range items {
		byID[item.ID] = i
	}
	for _, id := range set.ItemIDs {
		if i, ok := byID[strings.TrimSpace(id)]; ok {
			members = append(members, items[i])
		} else {
			missing = append(missing, id)
		}
	}
	return members, missing
}
