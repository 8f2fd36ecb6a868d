package usecase

import (
	"context"
	"strings"

	"wardrobe-assistant/internal/model"
	"wardrobe-assistant/internal/wardrobe"
	"wardrobe-assistant/internal/wardrobe/resolver"
)

// ResolveReference resolves one AI reference against the caller's inventory.
// A miss is not an error: the result has Found() == false.
func (uc *implUseCase) ResolveReference(ctx context.Context, sc model.Scope, input wardrobe.ResolveReferenceInput) (wardrobe.ResolvedItem, error) {
	var chain resolver.Chain
	switch strings.ToLower(strings.TrimSpace(input.Mode)) {
	case "", wardrobe.ResolveModeOutfit:
		chain = resolver.ChainOutfit
	case wardrobe.ResolveModeVacation:
		chain = resolver.ChainVacation
	default:
		return wardrobe.ResolvedItem{}, wardrobe.ErrInvalidResolveMode
	}

	inv, err := uc.inventory(ctx, sc)
	if err != nil {
		uc.l.Errorf(ctx, "wardrobe.usecase.ResolveReference.inventory: %v", err)
		return wardrobe.ResolvedItem{}, err
	}

	return uc.resolve(chain, input.Reference, inv), nil
}

// Taxonomy lists every category with its subcategories in declaration order.
func (uc *implUseCase) Taxonomy(ctx context.Context) wardrobe.TaxonomyOutput {
	categories := wardrobe.Categories()
	out := wardrobe.TaxonomyOutput{Categories: make([]wardrobe.TaxonomyCategory, 0, len(categories))}
	for _, c := range categories {
		out.Categories = append(out.Categories, wardrobe.TaxonomyCategory{
			Category:      c,
			Subcategories: uc.classifier.Subcategories(c),
		})
	}
	return out
}
