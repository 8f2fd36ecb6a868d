package classifier

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"wardrobe-assistant/internal/wardrobe"
)

var (
	ErrEmptyTaxonomy        = errors.New("taxonomy has no categories")
	ErrUnknownCategory      = errors.New("taxonomy references an unknown category")
	ErrEmptyCategory        = errors.New("taxonomy category has no subcategories")
	ErrDuplicateSubcategory = errors.New("taxonomy subcategory declared twice")
	ErrMissingKeywords      = errors.New("taxonomy subcategory has no keywords")
)

// Rule binds a subcategory to its trigger substrings.
type Rule struct {
	Subcategory wardrobe.Subcategory
	Keywords    []string
}

// Taxonomy maps each category to its subcategory rules in declaration order.
// It is read-only once built and safe to share between goroutines.
type Taxonomy struct {
	rules map[wardrobe.Category][]Rule
}

// NewTaxonomy copies rules, lowercasing and trimming every keyword.
func NewTaxonomy(rules map[wardrobe.Category][]Rule) Taxonomy {
	t := Taxonomy{rules: make(map[wardrobe.Category][]Rule, len(rules))}
	for category, list := range rules {
		copied := make([]Rule, 0, len(list))
		for _, r := range list {
			keywords := make([]string, 0, len(r.Keywords))
			for _, k := range r.Keywords {
				if k = strings.ToLower(strings.TrimSpace(k)); k != "" {
					keywords = append(keywords, k)
				}
			}
			copied = append(copied, Rule{
				Subcategory: wardrobe.Subcategory(strings.TrimSpace(string(r.Subcategory))),
				Keywords:    keywords,
			})
		}
		t.rules[category] = copied
	}
	return t
}

// Rules returns a copy of the ordered rules for category.
func (t Taxonomy) Rules(category wardrobe.Category) []Rule {
	list := t.rules[category]
	out := make([]Rule, len(list))
	copy(out, list)
	return out
}

// Validate rejects taxonomies the classifier cannot use.
func (t Taxonomy) Validate() error {
	if len(t.rules) == 0 {
		return ErrEmptyTaxonomy
	}
	for category, list := range t.rules {
		if !category.Valid() {
			return fmt.Errorf("%w: %q", ErrUnknownCategory, category)
		}
		if len(list) == 0 {
			return fmt.Errorf("%w: %s", ErrEmptyCategory, category)
		}
		seen := make(map[wardrobe.Subcategory]bool, len(list))
		for _, r := range list {
			if seen[r.Subcategory] {
				return fmt.Errorf("%w: %s/%s", ErrDuplicateSubcategory, category, r.Subcategory)
			}
			seen[r.Subcategory] = true
			if r.Subcategory == "" || len(r.Keywords) == 0 {
				return fmt.Errorf("%w: %s/%s", ErrMissingKeywords, category, r.Subcategory)
			}
		}
	}
	return nil
}

// DefaultTaxonomy is the built-in keyword table.
func DefaultTaxonomy() Taxonomy {
	return NewTaxonomy(map[wardrobe.Category][]Rule{
		wardrobe.CategoryTops: {
			{Subcategory: "T-shirts", Keywords: []string{"t-shirt", "tee-shirt", "tshirt"}},
			{Subcategory: "Chemises", Keywords: []string{"chemise", "chemisier", "blouse"}},
			{Subcategory: "Pulls", Keywords: []string{"pull", "sweat", "gilet", "cardigan"}},
			{Subcategory: "Vestes", Keywords: []string{"veste", "blouson", "blazer"}},
			{Subcategory: "Manteaux", Keywords: []string{"manteau", "parka", "trench", "doudoune"}},
			{Subcategory: "Débardeurs", Keywords: []string{"débardeur", "caraco", "crop top"}},
		},
		wardrobe.CategoryBottoms: {
			{Subcategory: "Jeans", Keywords: []string{"jean", "denim"}},
			{Subcategory: "Pantalons", Keywords: []string{"pantalon", "chino", "jogging"}},
			{Subcategory: "Shorts", Keywords: []string{"short", "bermuda"}},
			{Subcategory: "Jupes", Keywords: []string{"jupe"}},
			{Subcategory: "Leggings", Keywords: []string{"legging"}},
		},
		wardrobe.CategoryShoes: {
			{Subcategory: "Baskets", Keywords: []string{"basket", "sneaker", "tennis"}},
			{Subcategory: "Bottes", Keywords: []string{"botte", "bottine"}},
			{Subcategory: "Sandales", Keywords: []string{"sandale", "tong", "espadrille"}},
			{Subcategory: "Escarpins", Keywords: []string{"escarpin", "talon"}},
			{Subcategory: "Mocassins", Keywords: []string{"mocassin", "derby", "richelieu"}},
		},
		wardrobe.CategoryAccessories: {
			{Subcategory: "Sacs", Keywords: []string{"sac", "pochette", "cabas"}},
			{Subcategory: "Ceintures", Keywords: []string{"ceinture"}},
			{Subcategory: "Bijoux", Keywords: []string{"collier", "bracelet", "bague", "boucle d'oreille"}},
			{Subcategory: "Chapeaux", Keywords: []string{"chapeau", "casquette", "bonnet"}},
			{Subcategory: "Écharpes", Keywords: []string{"écharpe", "foulard"}},
			{Subcategory: "Lunettes", Keywords: []string{"lunettes"}},
		},
	})
}

type fileTaxonomy struct {
	Categories []fileCategory `mapstructure:"categories"`
}

type fileCategory struct {
	Category      string            `mapstructure:"category"`
	Subcategories []fileSubcategory `mapstructure:"subcategories"`
}

type fileSubcategory struct {
	Name     string   `mapstructure:"name"`
	Keywords []string `mapstructure:"keywords"`
}

// LoadTaxonomy reads a YAML or JSON taxonomy file:
//
//	categories:
//	  - category: Hauts
//	    subcategories:
//	      - name: T-shirts
//	        keywords: [t-shirt, tee-shirt]
func LoadTaxonomy(path string) (Taxonomy, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Taxonomy{}, fmt.Errorf("read taxonomy %s: %w", path, err)
	}

	var raw fileTaxonomy
	if err := v.Unmarshal(&raw); err != nil {
		return Taxonomy{}, fmt.Errorf("decode taxonomy %s: %w", path, err)
	}

	rules := make(map[wardrobe.Category][]Rule, len(raw.Categories))
	for _, fc := range raw.Categories {
		category, ok := wardrobe.ParseCategory(fc.Category)
		if !ok {
			return Taxonomy{}, fmt.Errorf("%w: %q", ErrUnknownCategory, fc.Category)
		}
		for _, fs := range fc.Subcategories {
			rules[category] = append(rules[category], Rule{
				Subcategory: wardrobe.Subcategory(fs.Name),
				Keywords:    fs.Keywords,
			})
		}
		if _, ok := rules[category]; !ok {
			rules[category] = nil
		}
	}

	t := NewTaxonomy(rules)
	if err := t.Validate(); err != nil {
		return Taxonomy{}, err
	}
	return t, nil
}
