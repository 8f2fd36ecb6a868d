package usecase

import (
	"context"
	"strings"

	"wardrobe-assistant/internal/model"
	"wardrobe-assistant/internal/wardrobe"
)

const opAnalyzeGaps = "analyze_gaps"

type aiGap struct {
	Category    any `json:"category"`
	Subcategory any `json:"subcategory"`
	Description any `json:"description"`
	Reason      any `json:"reason"`
	Priority    any `json:"priority"`
}

// AnalyzeGaps summarizes the wardrobe and asks the LLM which pieces are missing.
func (uc *implUseCase) AnalyzeGaps(ctx context.Context, sc model.Scope, input wardrobe.AnalyzeGapsInput) (wardrobe.AnalyzeGapsOutput, error) {
	inv, err := uc.inventory(ctx, sc)
	if err != nil {
		uc.l.Errorf(ctx, "wardrobe.usecase.AnalyzeGaps.inventory: %v", err)
		return wardrobe.AnalyzeGapsOutput{}, err
	}

	summary := summarize(inv)
	cleaned, err := uc.generate(ctx, opAnalyzeGaps, systemStylist, buildGapsPrompt(summary, input), 0.5)
	if err != nil {
		return wardrobe.AnalyzeGapsOutput{}, err
	}

	var raw []aiGap
	if err := decodeList(cleaned, "suggestions", &raw); err != nil {
		return wardrobe.AnalyzeGapsOutput{}, uc.badResponse(ctx, opAnalyzeGaps, cleaned, err)
	}

	suggestions := make([]wardrobe.GapSuggestion, 0, len(raw))
	for _, g := range raw {
		s := wardrobe.GapSuggestion{
			RawCategory: looseString(g.Category),
			Subcategory: looseString(g.Subcategory),
			Description: looseString(g.Description),
			Reason:      looseString(g.Reason),
			Priority:    strings.ToLower(looseString(g.Priority)),
		}
		if s.Description == "" && s.Subcategory == "" {
			continue
		}
		if c, ok := wardrobe.ParseCategory(s.RawCategory); ok {
			s.Category = c
			if sub, ok := uc.classifier.Canonical(c, wardrobe.Subcategory(s.Subcategory)); ok {
				s.Subcategory = string(sub)
			}
		}
		suggestions = append(suggestions, s)
	}

	uc.l.Infof(ctx, "AnalyzeGaps: user=%s items=%d suggestions=%d", sc.UserID, summary.TotalItems, len(suggestions))
	return wardrobe.AnalyzeGapsOutput{
		Summary:     summary,
		Suggestions: suggestions,
	}, nil
}
