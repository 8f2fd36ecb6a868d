package wardrobe

import (
	"strings"
	"time"
)

// --- Category ---

// Category is the coarse garment classification. Values are the labels stored
// with each item.
type Category string

const (
	CategoryTops        Category = "Hauts"
	CategoryBottoms     Category = "Bas"
	CategoryShoes       Category = "Chaussures"
	CategoryAccessories Category = "Accessoires"
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{CategoryTops, CategoryBottoms, CategoryShoes, CategoryAccessories}
}

var categoryAliases = map[string]Category{
	"hauts":       CategoryTops,
	"haut":        CategoryTops,
	"tops":        CategoryTops,
	"top":         CategoryTops,
	"bas":         CategoryBottoms,
	"bottoms":     CategoryBottoms,
	"bottom":      CategoryBottoms,
	"chaussures":  CategoryShoes,
	"chaussure":   CategoryShoes,
	"shoes":       CategoryShoes,
	"accessoires": CategoryAccessories,
	"accessoire":  CategoryAccessories,
	"accessories": CategoryAccessories,
}

// ParseCategory accepts a stored label or its English name, case-insensitively.
func ParseCategory(s string) (Category, bool) {
	c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(s))]
	return c, ok
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryTops, CategoryBottoms, CategoryShoes, CategoryAccessories:
		return true
	}
	return false
}

// Subcategory is a finer tag nested under a Category. The empty value means unset.
type Subcategory string

// --- Domain Models ---

// ClothingItem is a single owned garment.
type ClothingItem struct {
	ID          string
	UserID      string
	Analysis    string
	Category    Category
	Subcategory Subcategory
	Color       string
	Material    string
	ImageKey    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ClothingSet is a named grouping of item ids. ItemIDs may reference items that
// no longer exist.
type ClothingSet struct {
	ID        string
	UserID    string
	Name      string
	ItemIDs   []string
	ImageSrc  string
	CreatedAt time.Time
}

// Inventory is a read-only snapshot of a user's items and sets.
type Inventory struct {
	Items []ClothingItem
	Sets  []ClothingSet
}

// ResolvedItem pairs an AI reference with what it resolved to. Item and Set are
// both nil when nothing matched.
type ResolvedItem struct {
	Reference OutfitItem
	Item      *ClothingItem
	Set       *ClothingSet
	Step      string
}

// Found reports whether the reference resolved to an item or a set.
func (r ResolvedItem) Found() bool {
	return r.Item != nil || r.Set != nil
}

// --- UseCase Inputs ---

type CreateItemInput struct {
	Analysis    string
	Category    string
	Subcategory string
	Color       string
	Material    string
	ImageKey    string
}

// Sort orders accepted by ListItems.
const (
	SortNewest   = "newest"
	SortOldest   = "oldest"
	SortCategory = "category"
	SortColor    = "color"
)

type ListItemsInput struct {
	Category    string
	Subcategory string
	Color       string
	Query       string
	Sort        string
	Limit       int
	Offset      int
}

// UpdateItemInput is a partial update: empty fields keep the stored value.
type UpdateItemInput struct {
	ID          string
	Analysis    string
	Category    string
	Subcategory string
	Color       string
	Material    string
	ImageKey    string
}

type CreateSetInput struct {
	Name     string
	ItemIDs  []string
	ImageSrc string
}

type SuggestOutfitsInput struct {
	Occasion string
	Weather  string
	Style    string
	Count    int
}

type PlanVacationInput struct {
	Destination      string
	StartDate        string
	EndDate          string
	Activities       []string
	Notes            string
	ExportToCalendar bool
}

type AnalyzeGapsInput struct {
	Style  string
	Season string
}

// Resolution chains accepted by ResolveReference.
const (
	ResolveModeOutfit   = "outfit"
	ResolveModeVacation = "vacation"
)

type ResolveReferenceInput struct {
	Reference OutfitItem
	Mode      string
}

// --- UseCase Outputs ---

type ItemOutput struct {
	Item ClothingItem
}

type ListItemsOutput struct {
	Items  []ClothingItem
	Total  int
	Limit  int
	Offset int
}

type BackfillOutput struct {
	Scanned   int
	Updated   int
	Unmatched int
	Items     []ClothingItem
}

type SetOutput struct {
	Set            ClothingSet
	Members        []ClothingItem
	MissingItemIDs []string
}

type ListSetsOutput struct {
	Sets []ClothingSet
}

// Outfit is one AI suggestion with every piece resolved against the inventory.
type Outfit struct {
	Name        string
	Description string
	Items       []ResolvedItem
}

type SuggestOutfitsOutput struct {
	Outfits []Outfit
}

type PackingEntry struct {
	Resolved ResolvedItem
	Quantity int
	Reason   string
}

type PlanVacationOutput struct {
	Destination  string
	StartDate    time.Time
	EndDate      time.Time
	Days         int
	Packing      []PackingEntry
	Advice       string
	CalendarLink string
}

// InventorySummary counts a user's wardrobe per category and subcategory.
type InventorySummary struct {
	TotalItems    int
	TotalSets     int
	ByCategory    map[Category]int
	BySubcategory map[Subcategory]int
	Unclassified  int
}

// GapSuggestion is a missing piece proposed by the AI. Category is empty when
// RawCategory did not name a known category.
type GapSuggestion struct {
	Category    Category
	RawCategory string
	Subcategory string
	Description string
	Reason      string
	Priority    string
}

type AnalyzeGapsOutput struct {
	Summary     InventorySummary
	Suggestions []GapSuggestion
}

type TaxonomyCategory struct {
	Category      Category
	Subcategories []Subcategory
}

type TaxonomyOutput struct {
	Categories []TaxonomyCategory
}
