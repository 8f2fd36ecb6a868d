package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"wardrobe-assistant/internal/model"
	"wardrobe-assistant/internal/wardrobe"
	"wardrobe-assistant/internal/wardrobe/repository"
	"wardrobe-assistant/internal/wardrobe/resolver"
	"wardrobe-assistant/pkg/gemini"
	"wardrobe-assistant/pkg/metrics"
)

const maxOutputTokens = 4096

var codeFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.+?)\\s*```")

// generate sends one prompt to the LLM and returns the JSON part of the answer.
func (uc *implUseCase) generate(ctx context.Context, operation, system, prompt string, temperature float64) (string, error) {
	if uc.llm == nil {
		return "", wardrobe.ErrAIUnavailable
	}

	req := gemini.NewTextRequest(system, prompt, &gemini.GenerationConfig{
		Temperature:      temperature,
		MaxOutputTokens:  maxOutputTokens,
		ResponseMimeType: gemini.MimeTypeJSON,
	})

	start := time.Now()
	resp, err := uc.llm.GenerateContent(ctx, req)
	if err != nil {
		uc.metrics.ObserveAICall(operation, metrics.StatusError, time.Since(start))
		uc.l.Errorf(ctx, "wardrobe.usecase.%s: LLM request failed: %v", operation, err)
		return "", fmt.Errorf("%w: %v", wardrobe.ErrAIUnavailable, err)
	}

	text, err := resp.Text()
	if err != nil {
		uc.metrics.ObserveAICall(operation, metrics.StatusBadResponse, time.Since(start))
		uc.l.Warnf(ctx, "wardrobe.usecase.%s: %v", operation, err)
		return "", fmt.Errorf("%w: %v", wardrobe.ErrAIResponse, err)
	}

	uc.metrics.ObserveAICall(operation, metrics.StatusOK, time.Since(start))
	uc.l.Debugf(ctx, "wardrobe.usecase.%s: LLM raw response: %s", operation, text)

	return sanitizeJSONResponse(text), nil
}

// badResponse records an undecodable answer and wraps err as ErrAIResponse.
func (uc *implUseCase) badResponse(ctx context.Context, operation, cleaned string, err error) error {
	uc.metrics.ObserveAICall(operation, metrics.StatusBadResponse, 0)
	uc.l.Errorf(ctx, "wardrobe.usecase.%s: failed to parse LLM response. Cleaned=%q: %v", operation, cleaned, err)
	return fmt.Errorf("%w: %v", wardrobe.ErrAIResponse, err)
}

// sanitizeJSONResponse removes markdown code fences and leading/trailing prose
// that LLMs often add around JSON output.
func sanitizeJSONResponse(text string) string {
	matches := codeFenceRe.FindStringSubmatch(text)
	if len(matches) > 1 {
		return strings.TrimSpace(matches[1])
	}

	start := strings.IndexAny(text, "[{")
	if start == -1 {
		return strings.TrimSpace(text)
	}
	end := strings.LastIndexAny(text, "]}")
	if end == -1 || end < start {
		return strings.TrimSpace(text)
	}
	return strings.TrimSpace(text[start : end+1])
}

// decodeList decodes either a bare JSON array or an object holding the array
// under key.
func decodeList(data, key string, out any) error {
	if strings.HasPrefix(strings.TrimSpace(data), "[") {
		return json.Unmarshal([]byte(data), out)
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal([]byte(data), &wrapper); err != nil {
		return err
	}
	for k, v := range wrapper {
		if strings.EqualFold(k, key) {
			return json.Unmarshal(v, out)
		}
	}
	return fmt.Errorf("missing %q in response", key)
}

// looseString renders a scalar JSON value as text. Anything else is "".
func looseString(v any) string {
	switch x := v.(type) {
	case string:
		return strings.TrimSpace(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	}
	return ""
}

// looseInt reads a positive count from a number or numeric string.
func looseInt(v any, fallback int) int {
	switch x := v.(type) {
	case float64:
		if x >= 1 {
			return int(x)
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(x)); err == nil && n >= 1 {
			return n
		}
	}
	return fallback
}

// inventory loads a snapshot of the caller's items and sets.
func (uc *implUseCase) inventory(ctx context.Context, sc model.Scope) (wardrobe.Inventory, error) {
	items, err := uc.repo.ListItems(ctx, repository.ListItemsOptions{UserID: sc.UserID})
	if err != nil {
		return wardrobe.Inventory{}, err
	}
	sets, err := uc.repo.ListSets(ctx, repository.ListSetsOptions{UserID: sc.UserID})
	if err != nil {
		return wardrobe.Inventory{}, err
	}
	return wardrobe.Inventory{Items: items, Sets: sets}, nil
}

func (uc *implUseCase) resolve(chain resolver.Chain, ref wardrobe.OutfitItem, inv wardrobe.Inventory) wardrobe.ResolvedItem {
	m := resolver.Resolve(chain, ref, inv)
	uc.metrics.ObserveResolution(string(chain), string(m.Step))
	return wardrobe.ResolvedItem{
		Reference: ref.Normalize(),
		Item:      m.Item,
		Set:       m.Set,
		Step:      string(m.Step),
	}
}

// summarize counts items per category and subcategory.
func summarize(inv wardrobe.Inventory) wardrobe.InventorySummary {
	s := wardrobe.InventorySummary{
		TotalItems:    len(inv.Items),
		TotalSets:     len(inv.Sets),
		ByCategory:    make(map[wardrobe.Category]int),
		BySubcategory: make(map[wardrobe.Subcategory]int),
	}
	for _, item := range inv.Items {
		s.ByCategory[item.Category]++
		if item.Subcategory == "" {
			s.Unclassified++
			continue
		}
		s.BySubcategory[item.Subcategory]++
	}
	return s
}

// parseCategory accepts an empty value when optional is set.
func parseCategory(raw string, optional bool) (wardrobe.Category, error) {
	if strings.TrimSpace(raw) == "" && optional {
		return "", nil
	}
	c, ok := wardrobe.ParseCategory(raw)
	if !ok {
		return "", wardrobe.ErrInvalidCategory
	}
	return c, nil
}

// subcategoryFor validates an explicit subcategory or detects one from the
// analysis.
func (uc *implUseCase) subcategoryFor(category wardrobe.Category, raw, analysis string) (wardrobe.Subcategory, error) {
	if strings.TrimSpace(raw) != "" {
		sub, ok := uc.classifier.Canonical(category, wardrobe.Subcategory(raw))
		if !ok {
			return "", wardrobe.ErrInvalidSubcategory
		}
		uc.metrics.ObserveClassification(metrics.OutcomePreset)
		return sub, nil
	}

	sub, ok := uc.classifier.Detect(analysis, category)
	if ok {
		uc.metrics.ObserveClassification(metrics.OutcomeDetected)
	} else {
		uc.metrics.ObserveClassification(metrics.OutcomeUnmatched)
	}
	return sub, nil
}
