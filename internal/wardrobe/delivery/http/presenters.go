package http

import (
	"context"
	"strings"
	"time"

	"wardrobe-assistant/internal/wardrobe"
	"wardrobe-assistant/pkg/response"
)

// --- Request DTOs ---

type createItemReq struct {
	Analysis    string `json:"analysis"    binding:"required,max=4000"`
	Category    string `json:"category"    binding:"required"`
	Subcategory string `json:"subcategory" binding:"max=100"`
	Color       string `json:"color"       binding:"max=100"`
	Material    string `json:"material"    binding:"max=100"`
	ImageKey    string `json:"image_key"   binding:"max=1024"`
}

func (r createItemReq) validate() error { return nil }

func (r createItemReq) toInput() wardrobe.CreateItemInput {
	return wardrobe.CreateItemInput{
		Analysis:    r.Analysis,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		Color:       r.Color,
		Material:    r.Material,
		ImageKey:    r.ImageKey,
	}
}

// ---

type listItemsReq struct {
	Category    string `form:"category"`
	Subcategory string `form:"subcategory"`
	Color       string `form:"color"`
	Query       string `form:"q"`
	Sort        string `form:"sort"   binding:"omitempty,oneof=newest oldest category color"`
	Limit       int    `form:"limit"  binding:"omitempty,min=0"`
	Offset      int    `form:"offset" binding:"omitempty,min=0"`
}

func (r listItemsReq) validate() error { return nil }

func (r listItemsReq) toInput() wardrobe.ListItemsInput {
	return wardrobe.ListItemsInput{
		Category:    r.Category,
		Subcategory: r.Subcategory,
		Color:       r.Color,
		Query:       r.Query,
		Sort:        r.Sort,
		Limit:       r.Limit,
		Offset:      r.Offset,
	}
}

// ---

type updateItemReq struct {
	ID          string `json:"-"` // populated from URI param
	Analysis    string `json:"analysis"    binding:"max=4000"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory" binding:"max=100"`
	Color       string `json:"color"       binding:"max=100"`
	Material    string `json:"material"    binding:"max=100"`
	ImageKey    string `json:"image_key"   binding:"max=1024"`
}

func (r updateItemReq) validate() error { return nil }

func (r updateItemReq) toInput() wardrobe.UpdateItemInput {
	return wardrobe.UpdateItemInput{
		ID:          r.ID,
		Analysis:    r.Analysis,
		Category:    r.Category,
		Subcategory: r.Subcategory,
		Color:       r.Color,
		Material:    r.Material,
		ImageKey:    r.ImageKey,
	}
}

// ---

type createSetReq struct {
	Name     string   `json:"name"      binding:"required,max=255"`
	ItemIDs  []string `json:"item_ids"  binding:"required,min=1,max=50"`
	ImageSrc string   `json:"image_src" binding:"max=1024"`
}

func (r createSetReq) validate() error { return nil }

func (r createSetReq) toInput() wardrobe.CreateSetInput {
	return wardrobe.CreateSetInput{
		Name:     r.Name,
		ItemIDs:  r.ItemIDs,
		ImageSrc: r.ImageSrc,
	}
}

// ---

type suggestOutfitsReq struct {
	Occasion string `json:"occasion" binding:"max=255"`
	Weather  string `json:"weather"  binding:"max=255"`
	Style    string `json:"style"    binding:"max=255"`
	Count    int    `json:"count"    binding:"omitempty,min=1,max=10"`
}

func (r suggestOutfitsReq) validate() error { return nil }

func (r suggestOutfitsReq) toInput() wardrobe.SuggestOutfitsInput {
	return wardrobe.SuggestOutfitsInput{
		Occasion: r.Occasion,
		Weather:  r.Weather,
		Style:    r.Style,
		Count:    r.Count,
	}
}

// ---

type planVacationReq struct {
	Destination      string   `json:"destination"        binding:"required,max=255"`
	StartDate        string   `json:"start_date"         binding:"required"`
	EndDate          string   `json:"end_date"           binding:"required"`
	Activities       []string `json:"activities"         binding:"max=20"`
	Notes            string   `json:"notes"              binding:"max=1000"`
	ExportToCalendar bool     `json:"export_to_calendar"`
}

func (r planVacationReq) validate() error { return nil }

func (r planVacationReq) toInput() wardrobe.PlanVacationInput {
	return wardrobe.PlanVacationInput{
		Destination:      r.Destination,
		StartDate:        r.StartDate,
		EndDate:          r.EndDate,
		Activities:       r.Activities,
		Notes:            r.Notes,
		ExportToCalendar: r.ExportToCalendar,
	}
}

// ---

type analyzeGapsReq struct {
	Style  string `json:"style"  binding:"max=255"`
	Season string `json:"season" binding:"max=100"`
}

func (r analyzeGapsReq) validate() error { return nil }

func (r analyzeGapsReq) toInput() wardrobe.AnalyzeGapsInput {
	return wardrobe.AnalyzeGapsInput{
		Style:  r.Style,
		Season: r.Season,
	}
}

// ---

type resolveReq struct {
	Reference wardrobe.OutfitItem `json:"reference"`
	Mode      string              `json:"mode" binding:"omitempty,oneof=outfit vacation"`
}

func (r resolveReq) validate() error {
	if r.Reference.IsEmpty() {
		return errEmptyReference
	}
	return nil
}

func (r resolveReq) toInput() wardrobe.ResolveReferenceInput {
	return wardrobe.ResolveReferenceInput{
		Reference: r.Reference,
		Mode:      strings.ToLower(r.Mode),
	}
}

// --- Response DTOs ---

type itemResp struct {
	ID          string    `json:"id"`
	Analysis    string    `json:"analysis"`
	Category    string    `json:"category"`
	Subcategory string    `json:"subcategory,omitempty"`
	Color       string    `json:"color,omitempty"`
	Material    string    `json:"material,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (h *handler) newItemResp(ctx context.Context, item wardrobe.ClothingItem) itemResp {
	return itemResp{
		ID:          item.ID,
		Analysis:    item.Analysis,
		Category:    string(item.Category),
		Subcategory: string(item.Subcategory),
		Color:       item.Color,
		Material:    item.Material,
		ImageURL:    h.imageURL(ctx, item.ImageKey),
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func (h *handler) newItemResps(ctx context.Context, items []wardrobe.ClothingItem) []itemResp {
	out := make([]itemResp, len(items))
	for i, item := range items {
		out[i] = h.newItemResp(ctx, item)
	}
	return out
}

type itemDetailResp struct {
	Item itemResp `json:"item"`
}

func (h *handler) newItemDetailResp(ctx context.Context, out wardrobe.ItemOutput) itemDetailResp {
	return itemDetailResp{Item: h.newItemResp(ctx, out.Item)}
}

type listItemsResp struct {
	Items  []itemResp `json:"items"`
	Total  int        `json:"total"`
	Limit  int        `json:"limit"`
	Offset int        `json:"offset"`
}

func (h *handler) newListItemsResp(ctx context.Context, out wardrobe.ListItemsOutput) listItemsResp {
	return listItemsResp{
		Items:  h.newItemResps(ctx, out.Items),
		Total:  out.Total,
		Limit:  out.Limit,
		Offset: out.Offset,
	}
}

type backfillResp struct {
	Scanned   int        `json:"scanned"`
	Updated   int        `json:"updated"`
	Unmatched int        `json:"unmatched"`
	Items     []itemResp `json:"items"`
}

func (h *handler) newBackfillResp(ctx context.Context, out wardrobe.BackfillOutput) backfillResp {
	return backfillResp{
		Scanned:   out.Scanned,
		Updated:   out.Updated,
		Unmatched: out.Unmatched,
		Items:     h.newItemResps(ctx, out.Items),
	}
}

// ---

type setResp struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ItemIDs   []string  `json:"item_ids"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (h *handler) newSetResp(ctx context.Context, set wardrobe.ClothingSet) setResp {
	ids := set.ItemIDs
	if ids == nil {
		ids = []string{}
	}
	return setResp{
		ID:        set.ID,
		Name:      set.Name,
		ItemIDs:   ids,
		ImageURL:  h.imageURL(ctx, set.ImageSrc),
		CreatedAt: set.CreatedAt,
	}
}

type setDetailResp struct {
	Set            setResp    `json:"set"`
	Members        []itemResp `json:"members"`
	MissingItemIDs []string   `json:"missing_item_ids"`
}

func (h *handler) newSetDetailResp(ctx context.Context, out wardrobe.SetOutput) setDetailResp {
	missing := out.MissingItemIDs
	if missing == nil {
		missing = []string{}
	}
	return setDetailResp{
		Set:            h.newSetResp(ctx, out.Set),
		Members:        h.newItemResps(ctx, out.Members),
		MissingItemIDs: missing,
	}
}

type listSetsResp struct {
	Sets []setResp `json:"sets"`
}

func (h *handler) newListSetsResp(ctx context.Context, out wardrobe.ListSetsOutput) listSetsResp {
	sets := make([]setResp, len(out.Sets))
	for i, set := range out.Sets {
		sets[i] = h.newSetResp(ctx, set)
	}
	return listSetsResp{Sets: sets}
}

// ---

type referenceResp struct {
	ID          string `json:"id"`
	Description string `json:"description"`
}

type resolvedResp struct {
	Reference referenceResp `json:"reference"`
	Found     bool          `json:"found"`
	Step      string        `json:"step"`
	Item      *itemResp     `json:"item,omitempty"`
	Set       *setResp      `json:"set,omitempty"`
}

func (h *handler) newResolvedResp(ctx context.Context, r wardrobe.ResolvedItem) resolvedResp {
	resp := resolvedResp{
		Reference: referenceResp{ID: r.Reference.ID, Description: r.Reference.Description},
		Found:     r.Found(),
		Step:      r.Step,
	}
	if r.Item != nil {
		item := h.newItemResp(ctx, *r.Item)
		resp.Item = &item
	}
	if r.Set != nil {
		set := h.newSetResp(ctx, *r.Set)
		resp.Set = &set
	}
	return resp
}

type outfitResp struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Items       []resolvedResp `json:"items"`
}

type suggestOutfitsResp struct {
	Outfits []outfitResp `json:"outfits"`
}

func (h *handler) newSuggestOutfitsResp(ctx context.Context, out wardrobe.SuggestOutfitsOutput) suggestOutfitsResp {
	outfits := make([]outfitResp, len(out.Outfits))
	for i, o := range out.Outfits {
		items := make([]resolvedResp, len(o.Items))
		for j, r := range o.Items {
			items[j] = h.newResolvedResp(ctx, r)
		}
		outfits[i] = outfitResp{Name: o.Name, Description: o.Description, Items: items}
	}
	return suggestOutfitsResp{Outfits: outfits}
}

type packingResp struct {
	Resolved resolvedResp `json:"resolved"`
	Quantity int          `json:"quantity"`
	Reason   string       `json:"reason,omitempty"`
}

type planVacationResp struct {
	Destination  string        `json:"destination"`
	StartDate    string        `json:"start_date"`
	EndDate      string        `json:"end_date"`
	Days         int           `json:"days"`
	Packing      []packingResp `json:"packing"`
	Advice       string        `json:"advice,omitempty"`
	CalendarLink string        `json:"calendar_link,omitempty"`
}

func (h *handler) newPlanVacationResp(ctx context.Context, out wardrobe.PlanVacationOutput) planVacationResp {
	packing := make([]packingResp, len(out.Packing))
	for i, p := range out.Packing {
		packing[i] = packingResp{
			Resolved: h.newResolvedResp(ctx, p.Resolved),
			Quantity: p.Quantity,
			Reason:   p.Reason,
		}
	}
	return planVacationResp{
		Destination:  out.Destination,
		StartDate:    out.StartDate.Format(response.DateFormat),
		EndDate:      out.EndDate.Format(response.DateFormat),
		Days:         out.Days,
		Packing:      packing,
		Advice:       out.Advice,
		CalendarLink: out.CalendarLink,
	}
}

type summaryResp struct {
	TotalItems    int            `json:"total_items"`
	TotalSets     int            `json:"total_sets"`
	ByCategory    map[string]int `json:"by_category"`
	BySubcategory map[string]int `json:"by_subcategory"`
	Unclassified  int            `json:"unclassified"`
}

type gapResp struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
	Description string `json:"description"`
	Reason      string `json:"reason,omitempty"`
	Priority    string `json:"priority,omitempty"`
	Known       bool   `json:"known_category"`
}

type analyzeGapsResp struct {
	Summary     summaryResp `json:"summary"`
	Suggestions []gapResp   `json:"suggestions"`
}

func (h *handler) newAnalyzeGapsResp(out wardrobe.AnalyzeGapsOutput) analyzeGapsResp {
	byCategory := make(map[string]int, len(out.Summary.ByCategory))
	for c, n := range out.Summary.ByCategory {
		byCategory[string(c)] = n
	}
	bySub := make(map[string]int, len(out.Summary.BySubcategory))
	for s, n := range out.Summary.BySubcategory {
		bySub[string(s)] = n
	}

	suggestions := make([]gapResp, len(out.Suggestions))
	for i, s := range out.Suggestions {
		category := string(s.Category)
		if category == "" {
			category = s.RawCategory
		}
		suggestions[i] = gapResp{
			Category:    category,
			Subcategory: s.Subcategory,
			Description: s.Description,
			Reason:      s.Reason,
			Priority:    s.Priority,
			Known:       s.Category != "",
		}
	}

	return analyzeGapsResp{
		Summary: summaryResp{
			TotalItems:    out.Summary.TotalItems,
			TotalSets:     out.Summary.TotalSets,
			ByCategory:    byCategory,
			BySubcategory: bySub,
			Unclassified:  out.Summary.Unclassified,
		},
		Suggestions: suggestions,
	}
}

type taxonomyCategoryResp struct {
	Category      string   `json:"category"`
	Subcategories []string `json:"subcategories"`
}

type taxonomyResp struct {
	Categories []taxonomyCategoryResp `json:"categories"`
}

func (h *handler) newTaxonomyResp(out wardrobe.TaxonomyOutput) taxonomyResp {
	categories := make([]taxonomyCategoryResp, len(out.Categories))
	for i, c := range out.Categories {
		subs := make([]string, len(c.Subcategories))
		for j, s := range c.Subcategories {
			subs[j] = string(s)
		}
		categories[i] = taxonomyCategoryResp{Category: string(c.Category), Subcategories: subs}
	}
	return taxonomyResp{Categories: categories}
}

// imageURL presigns a stored key. Failures are logged and yield no URL.
func (h *handler) imageURL(ctx context.Context, key string) string {
	if key == "" || h.presigner == nil {
		return key
	}
	url, err := h.presigner.PresignGetURL(ctx, key)
	if err != nil {
		h.l.Warnf(ctx, "wardrobe.delivery.http.imageURL: key=%s: %v", key, err)
		return ""
	}
	return url
}
