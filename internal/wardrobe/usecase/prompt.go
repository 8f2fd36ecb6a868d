package usecase

import (
	"fmt"
	"sort"
	"strings"

	"wardrobe-assistant/internal/wardrobe"
)

const systemStylist = `You are a personal stylist working only with the clothes the user owns.
Always answer with a single JSON document and no prose.
Reference wardrobe pieces by their exact id as given in the inventory.`

// writeInventory lists items and sets in a compact, id-first form.
func writeInventory(sb *strings.Builder, inv wardrobe.Inventory) {
	sb.WriteString("Inventory items:\n")
	for _, item := range inv.Items {
		sb.WriteString(fmt.Sprintf("- id=%s | %s", item.ID, item.Category))
		if item.Subcategory != "" {
			sb.WriteString(fmt.Sprintf("/%s", item.Subcategory))
		}
		if item.Color != "" {
			sb.WriteString(fmt.Sprintf(" | color: %s", item.Color))
		}
		if item.Material != "" {
			sb.WriteString(fmt.Sprintf(" | material: %s", item.Material))
		}
		sb.WriteString(fmt.Sprintf(" | %s\n", oneLine(item.Analysis)))
	}

	if len(inv.Sets) == 0 {
		return
	}
	sb.WriteString("\nSaved sets:\n")
	for _, set := range inv.Sets {
		sb.WriteString(fmt.Sprintf("- id=%s | %s | items: %s\n", set.ID, set.Name, strings.Join(set.ItemIDs, ", ")))
	}
}

func buildOutfitPrompt(inv wardrobe.Inventory, input wardrobe.SuggestOutfitsInput, count int) string {
	var sb strings.Builder
	writeInventory(&sb, inv)

	sb.WriteString(fmt.Sprintf("\nSuggest %d outfits.\n", count))
	if input.Occasion != "" {
		sb.WriteString(fmt.Sprintf("Occasion: %s\n", input.Occasion))
	}
	if input.Weather != "" {
		sb.WriteString(fmt.Sprintf("Weather: %s\n", input.Weather))
	}
	if input.Style != "" {
		sb.WriteString(fmt.Sprintf("Style: %s\n", input.Style))
	}

	sb.WriteString(`
Answer with:
{"outfits": [{"name": "...", "description": "...", "items": [{"id": "<item or set id>", "description": "<short description of the piece>"}]}]}
`)
	return sb.String()
}

func buildVacationPrompt(inv wardrobe.Inventory, input wardrobe.PlanVacationInput, start, end string, days int) string {
	var sb strings.Builder
	writeInventory(&sb, inv)

	sb.WriteString(fmt.Sprintf("\nPlan the packing list for a %d day trip to %s, from %s to %s.\n", days, input.Destination, start, end))
	if len(input.Activities) > 0 {
		sb.WriteString(fmt.Sprintf("Planned activities: %s\n", strings.Join(input.Activities, ", ")))
	}
	if input.Notes != "" {
		sb.WriteString(fmt.Sprintf("Notes: %s\n", input.Notes))
	}

	sb.WriteString(`
Only pack pieces from the inventory.
Answer with:
{"packing": [{"id": "<item or set id>", "description": "<piece>", "quantity": 1, "reason": "..."}], "advice": "..."}
`)
	return sb.String()
}

func buildGapsPrompt(summary wardrobe.InventorySummary, input wardrobe.AnalyzeGapsInput) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("The wardrobe holds %d items and %d saved sets.\n", summary.TotalItems, summary.TotalSets))
	sb.WriteString("Items per category:\n")
	for _, c := range wardrobe.Categories() {
		sb.WriteString(fmt.Sprintf("- %s: %d\n", c, summary.ByCategory[c]))
	}

	if len(summary.BySubcategory) > 0 {
		subs := make([]string, 0, len(summary.BySubcategory))
		for sub := range summary.BySubcategory {
			subs = append(subs, string(sub))
		}
		sort.Strings(subs)

		sb.WriteString("Items per subcategory:\n")
		for _, sub := range subs {
			sb.WriteString(fmt.Sprintf("- %s: %d\n", sub, summary.BySubcategory[wardrobe.Subcategory(sub)]))
		}
	}
	if summary.Unclassified > 0 {
		sb.WriteString(fmt.Sprintf("Unclassified items: %d\n", summary.Unclassified))
	}

	if input.Style != "" {
		sb.WriteString(fmt.Sprintf("\nPreferred style: %s\n", input.Style))
	}
	if input.Season != "" {
		sb.WriteString(fmt.Sprintf("Season: %s\n", input.Season))
	}

	sb.WriteString(fmt.Sprintf(`
List the pieces missing from this wardrobe. Use one of these categories: %s.
Answer with:
{"suggestions": [{"category": "...", "subcategory": "...", "description": "...", "reason": "...", "priority": "high|medium|low"}]}
`, joinCategories()))
	return sb.String()
}

func joinCategories() string {
	names := make([]string, 0, 4)
	for _, c := range wardrobe.Categories() {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
