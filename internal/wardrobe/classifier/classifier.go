package classifier

import (
	"strings"

	"wardrobe-assistant/internal/wardrobe"
)

// Classifier assigns subcategories from an item's free-text analysis.
// It holds no mutable state.
type Classifier struct {
	taxonomy Taxonomy
}

// New creates a Classifier over taxonomy.
func New(taxonomy Taxonomy) *Classifier {
	return &Classifier{taxonomy: taxonomy}
}

// Detect returns the first subcategory of category, in declaration order, with
// any keyword contained in the lowercased analysis. Keyword position inside the
// text plays no part in the choice.
func (c *Classifier) Detect(analysis string, category wardrobe.Category) (wardrobe.Subcategory, bool) {
	text := strings.ToLower(strings.TrimSpace(analysis))
	if text == "" {
		return "", false
	}

	for _, rule := range c.taxonomy.rules[canonical(category)] {
		for _, keyword := range rule.Keywords {
			if strings.Contains(text, keyword) {
				return rule.Subcategory, true
			}
		}
	}
	return "", false
}

// Classify returns a fresh slice where every item lacking a subcategory carries
// the detected one, when there is a match. Items that already have a
// subcategory are copied unchanged.
func (c *Classifier) Classify(items []wardrobe.ClothingItem) []wardrobe.ClothingItem {
	out := make([]wardrobe.ClothingItem, len(items))
	for i, item := range items {
		out[i] = item
		if item.Subcategory != "" {
			continue
		}
		if sub, ok := c.Detect(item.Analysis, item.Category); ok {
			out[i].Subcategory = sub
		}
	}
	return out
}

// Allows reports whether subcategory belongs to category. The empty
// subcategory is always allowed.
func (c *Classifier) Allows(category wardrobe.Category, subcategory wardrobe.Subcategory) bool {
	if subcategory == "" {
		return true
	}
	for _, rule := range c.taxonomy.rules[canonical(category)] {
		if strings.EqualFold(string(rule.Subcategory), string(subcategory)) {
			return true
		}
	}
	return false
}

// Canonical returns the declared spelling of subcategory within category.
func (c *Classifier) Canonical(category wardrobe.Category, subcategory wardrobe.Subcategory) (wardrobe.Subcategory, bool) {
	want := strings.TrimSpace(string(subcategory))
	for _, rule := range c.taxonomy.rules[canonical(category)] {
		if strings.EqualFold(string(rule.Subcategory), want) {
			return rule.Subcategory, true
		}
	}
	return "", false
}

// Subcategories lists the subcategories of category in declaration order.
func (c *Classifier) Subcategories(category wardrobe.Category) []wardrobe.Subcategory {
	rules := c.taxonomy.rules[canonical(category)]
	out := make([]wardrobe.Subcategory, 0, len(rules))
	for _, rule := range rules {
		out = append(out, rule.Subcategory)
	}
	return out
}

func canonical(category wardrobe.Category) wardrobe.Category {
	if category.Valid() {
		return category
	}
	if c, ok := wardrobe.ParseCategory(string(category)); ok {
		return c
	}
	return category
}
