package usecase

import (
	"context"
	"strings"

	"wardrobe-assistant/internal/model"
	"wardrobe-assistant/internal/wardrobe"
	"wardrobe-assistant/internal/wardrobe/resolver"
)

const (
	defaultOutfitCount = 3
	maxOutfitCount     = 10
	opSuggestOutfits   = "suggest_outfits"
)

type aiOutfit struct {
	Name        any                   `json:"name"`
	Description any                   `json:"description"`
	Items       []wardrobe.OutfitItem `json:"items"`
}

// SuggestOutfits asks the LLM for outfits and resolves every piece against the
// caller's inventory. Unresolved pieces are kept so clients can show a placeholder.
func (uc *implUseCase) SuggestOutfits(ctx context.Context, sc model.Scope, input wardrobe.SuggestOutfitsInput) (wardrobe.SuggestOutfitsOutput, error) {
	inv, err := uc.inventory(ctx, sc)
	if err != nil {
		uc.l.Errorf(ctx, "wardrobe.usecase.SuggestOutfits.inventory: %v", err)
		return wardrobe.SuggestOutfitsOutput{}, err
	}
	if len(inv.Items) == 0 {
		return wardrobe.SuggestOutfitsOutput{Outfits: []wardrobe.Outfit{}}, nil
	}

	count := input.Count
	if count <= 0 {
		count = defaultOutfitCount
	}
	if count > maxOutfitCount {
		count = maxOutfitCount
	}

	cleaned, err := uc.generate(ctx, opSuggestOutfits, systemStylist, buildOutfitPrompt(inv, input, count), 0.7)
	if err != nil {
		return wardrobe.SuggestOutfitsOutput{}, err
	}

	var raw []aiOutfit
	if err := decodeList(cleaned, "outfits", &raw); err != nil {
		return wardrobe.SuggestOutfitsOutput{}, uc.badResponse(ctx, opSuggestOutfits, cleaned, err)
	}

	outfits := make([]wardrobe.Outfit, 0, len(raw))
	unresolved := 0
	for _, o := range raw {
		outfit := wardrobe.Outfit{
			Name:        looseString(o.Name),
			Description: looseString(o.Description),
			Items:       make([]wardrobe.ResolvedItem, 0, len(o.Items)),
		}
		for _, ref := range o.Items {
			if ref.IsEmpty() {
				continue
			}
			r := uc.resolve(resolver.ChainOutfit, ref, inv)
			if !r.Found() {
				unresolved++
			}
			outfit.Items = append(outfit.Items, r)
		}
		if len(outfit.Items) == 0 && strings.TrimSpace(outfit.Name) == "" {
			continue
		}
		outfits = append(outfits, outfit)
	}

	uc.l.Infof(ctx, "SuggestOutfits: user=%s outfits=%d unresolved=%d", sc.UserID, len(outfits), unresolved)
	return wardrobe.SuggestOutfitsOutput{Outfits: outfits}, nil
}
