package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"

	"wardrobe-assistant/internal/model"
	"wardrobe-assistant/internal/wardrobe"
	"wardrobe-assistant/internal/wardrobe/repository"
	"wardrobe-assistant/pkg/metrics"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// CreateItem stores a new item. A missing subcategory is detected from the analysis.
func (uc *implUseCase) CreateItem(ctx context.Context, sc model.Scope, input wardrobe.CreateItemInput) (wardrobe.ItemOutput, error) {
	analysis := strings.TrimSpace(input.Analysis)
	if analysis == "" {
		return wardrobe.ItemOutput{}, wardrobe.ErrEmptyAnalysis
	}

	category, err := parseCategory(input.Category, false)
	if err != nil {
		return wardrobe.ItemOutput{}, err
	}

	sub, err := uc.subcategoryFor(category, input.Subcategory, analysis)
	if err != nil {
		return wardrobe.ItemOutput{}, err
	}

	item, err := uc.repo.CreateItem(ctx, repository.CreateItemOptions{
		ID:          uuid.NewString(),
		UserID:      sc.UserID,
		Analysis:    analysis,
		Category:    category,
		Subcategory: sub,
		Color:       strings.TrimSpace(input.Color),
		Material:    strings.TrimSpace(input.Material),
		ImageKey:    strings.TrimSpace(input.ImageKey),
	})
	if err != nil {
		uc.l.Errorf(ctx, "wardrobe.usecase.CreateItem.repo.CreateItem: %v", err)
		return wardrobe.ItemOutput{}, err
	}

	uc.l.Infof(ctx, "CreateItem: user=%s id=%s category=%s subcategory=%q", sc.UserID, item.ID, item.Category, item.Subcategory)
	return wardrobe.ItemOutput{Item: item}, nil
}

// ListItems filters, sorts and paginates the caller's items.
func (uc *implUseCase) ListItems(ctx context.Context, sc model.Scope, input wardrobe.ListItemsInput) (wardrobe.ListItemsOutput, error) {
	category, err := parseCategory(input.Category, true)
	if err != nil {
		return wardrobe.ListItemsOutput{}, err
	}

	items, err := uc.repo.ListItems(ctx, repository.ListItemsOptions{
		UserID:   sc.UserID,
		Category: category,
	})
	if err != nil {
		uc.l.Errorf(ctx, "wardrobe.usecase.ListItems.repo.ListItems: %v", err)
		return wardrobe.ListItemsOutput{}, err
	}

	filtered := filterItems(items, input)
	sortItems(filtered, input.Sort)

	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	total := len(filtered)
	page := []wardrobe.ClothingItem{}
	if offset < total {
		end := offset + limit
		if end > total {
			end = total
		}
		page = filtered[offset:end]
	}

	return wardrobe.ListItemsOutput{
		Items:  page,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}

func (uc *implUseCase) DetailItem(ctx context.Context, sc model.Scope, id string) (wardrobe.ItemOutput, error) {
	item, err := uc.getItem(ctx, sc, id)
	if err != nil {
		return wardrobe.ItemOutput{}, err
	}
	return wardrobe.ItemOutput{Item: item}, nil
}

// UpdateItem applies a partial update. Changing the category drops a
// subcategory that no longer fits and detects a new one.
func (uc *implUseCase) UpdateItem(ctx context.Context, sc model.Scope, input wardrobe.UpdateItemInput) (wardrobe.ItemOutput, error) {
	current, err := uc.getItem(ctx, sc, input.ID)
	if err != nil {
		return wardrobe.ItemOutput{}, err
	}

	next := current
	if v := strings.TrimSpace(input.Analysis); v != "" {
		next.Analysis = v
	}
	if strings.TrimSpace(input.Category) != "" {
		category, err := parseCategory(input.Category, false)
		if err != nil {
			return wardrobe.ItemOutput{}, err
		}
		next.Category = category
	}
	if v := strings.TrimSpace(input.Color); v != "" {
		next.Color = v
	}
	if v := strings.TrimSpace(input.Material); v != "" {
		next.Material = v
	}
	if v := strings.TrimSpace(input.ImageKey); v != "" {
		next.ImageKey = v
	}

	switch {
	case strings.TrimSpace(input.Subcategory) != "":
		sub, err := uc.subcategoryFor(next.Category, input.Subcategory, next.Analysis)
		if err != nil {
			return wardrobe.ItemOutput{}, err
		}
		next.Subcategory = sub
	case !uc.classifier.Allows(next.Category, next.Subcategory):
		next.Subcategory, _ = uc.subcategoryFor(next.Category, "", next.Analysis)
	case next.Subcategory == "" && next.Analysis != current.Analysis:
		next.Subcategory, _ = uc.subcategoryFor(next.Category, "", next.Analysis)
	}

	updated, err := uc.repo.UpdateItem(ctx, repository.UpdateItemOptions{
		UserID:      sc.UserID,
		ID:          current.ID,
		Analysis:    next.Analysis,
		Category:    next.Category,
		Subcategory: next.Subcategory,
		Color:       next.Color,
		Material:    next.Material,
		ImageKey:    next.ImageKey,
	})
	if err != nil {
		uc.l.Errorf(ctx, "wardrobe.usecase.UpdateItem.repo.UpdateItem: %v", err)
		return wardrobe.ItemOutput{}, err
	}
	if updated.ID == "" {
		return wardrobe.ItemOutput{}, wardrobe.ErrItemNotFound
	}

	return wardrobe.ItemOutput{Item: updated}, nil
}

func (uc *implUseCase) DeleteItem(ctx context.Context, sc model.Scope, id string) error {
	item, err := uc.getItem(ctx, sc, id)
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteItem(ctx, repository.DeleteOptions{UserID: sc.UserID, ID: item.ID}); err != nil {
		uc.l.Errorf(ctx, "wardrobe.usecase.DeleteItem.repo.DeleteItem: %v", err)
		return err
	}
	return nil
}

// BackfillSubcategories classifies every item of the caller and persists the
// ones that gained a subcategory.
func (uc *implUseCase) BackfillSubcategories(ctx context.Context, sc model.Scope) (wardrobe.BackfillOutput, error) {
	items, err := uc.repo.ListItems(ctx, repository.ListItemsOptions{UserID: sc.UserID})
	if err != nil {
		uc.l.Errorf(ctx, "wardrobe.usecase.BackfillSubcategories.repo.ListItems: %v", err)
		return wardrobe.BackfillOutput{}, err
	}

	classified := uc.classifier.Classify(items)

	out := wardrobe.BackfillOutput{
		Scanned: len(items),
		Items:   []wardrobe.ClothingItem{},
	}
	for i, item := range classified {
		if items[i].Subcategory != "" {
			continue
		}
		if item.Subcategory == "" {
			out.Unmatched++
			uc.metrics.ObserveClassification(metrics.OutcomeUnmatched)
			continue
		}
		uc.metrics.ObserveClassification(metrics.OutcomeDetected)

		updated, err := uc.repo.UpdateItem(ctx, repository.UpdateItemOptions{
			UserID:      sc.UserID,
			ID:          item.ID,
			Analysis:    item.Analysis,
			Category:    item.Category,
			Subcategory: item.Subcategory,
			Color:       item.Color,
			Material:    item.Material,
			ImageKey:    item.ImageKey,
		})
		if err != nil {
			uc.l.Errorf(ctx, "wardrobe.usecase.BackfillSubcategories.repo.UpdateItem: id=%s: %v", item.ID, err)
			return wardrobe.BackfillOutput{}, err
		}
		if updated.ID == "" {
			// Deleted concurrently.
			continue
		}
		out.Updated++
		out.Items = append(out.Items, updated)
	}

	uc.l.Infof(ctx, "BackfillSubcategories: user=%s scanned=%d updated=%d unmatched=%d", sc.UserID, out.Scanned, out.Updated, out.Unmatched)
	return out, nil
}

func (uc *implUseCase) getItem(ctx context.Context, sc model.Scope, id string) (wardrobe.ClothingItem, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return wardrobe.ClothingItem{}, wardrobe.ErrItemNotFound
	}

	item, err := uc.repo.GetOneItem(ctx, repository.GetOneItemOptions{UserID: sc.UserID, ID: id})
	if err != nil {
		uc.l.Errorf(ctx, "wardrobe.usecase.getItem.repo.GetOneItem: %v", err)
		return wardrobe.ClothingItem{}, err
	}
	if item.ID == "" {
		return wardrobe.ClothingItem{}, wardrobe.ErrItemNotFound
	}
	return item, nil
}

func filterItems(items []wardrobe.ClothingItem, input wardrobe.ListItemsInput) []wardrobe.ClothingItem {
	sub := strings.TrimSpace(input.Subcategory)
	color := strings.ToLower(strings.TrimSpace(input.Color))
	query := strings.ToLower(strings.TrimSpace(input.Query))

	out := make([]wardrobe.ClothingItem, 0, len(items))
	for _, item := range items {
		if sub != "" && !strings.EqualFold(string(item.Subcategory), sub) {
			continue
		}
		if color != "" && !strings.Contains(strings.ToLower(item.Color), color) {
			continue
		}
		if query != "" && !matchesQuery(item, query) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesQuery(item wardrobe.ClothingItem, query string) bool {
	for _, field := range []string{item.Analysis, item.Color, item.Material, string(item.Subcategory)} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func sortItems(items []wardrobe.ClothingItem, order string) {
	rank := make(map[wardrobe.Category]int)
	for i, c := range wardrobe.Categories() {
		rank[c] = i
	}

	newest := func(a, b wardrobe.ClothingItem) bool { return a.CreatedAt.After(b.CreatedAt) }

	var less func(a, b wardrobe.ClothingItem) bool
	switch strings.ToLower(strings.TrimSpace(order)) {
	case wardrobe.SortOldest:
		less = func(a, b wardrobe.ClothingItem) bool { return a.CreatedAt.Before(b.CreatedAt) }
	case wardrobe.SortCategory:
		less = func(a, b wardrobe.ClothingItem) bool {
			if rank[a.Category] != rank[b.Category] {
				return rank[a.Category] < rank[b.Category]
			}
			return newest(a, b)
		}
	case wardrobe.SortColor:
		less = func(a, b wardrobe.ClothingItem) bool {
			ca, cb := strings.ToLower(a.Color), strings.ToLower(b.Color)
			if ca != cb {
				return ca < cb
			}
			return newest(a, b)
		}
	default:
		less = newest
	}

	sort.SliceStable(items, func(i, j int) bool { return less(items[i], items[j]) })
}
