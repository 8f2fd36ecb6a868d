package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"wardrobe-assistant/internal/model"
	"wardrobe-assistant/internal/wardrobe"
	"wardrobe-assistant/internal/wardrobe/repository"
	"wardrobe-assistant/internal/wardrobe/resolver"
)

// CreateSet groups existing items under a name. Unknown ids are kept on the set
// and reported back; at least one id must name an existing item.
func (uc *implUseCase) CreateSet(ctx context.Context, sc model.Scope, input wardrobe.CreateSetInput) (wardrobe.SetOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return wardrobe.SetOutput{}, wardrobe.ErrEmptyName
	}

	ids := uniqueIDs(input.ItemIDs)
	if len(ids) == 0 {
		return wardrobe.SetOutput{}, wardrobe.ErrEmptySet
	}

	items, err := uc.repo.ListItems(ctx, repository.ListItemsOptions{UserID: sc.UserID, IDs: ids})
	if err != nil {
		uc.l.Errorf(ctx, "wardrobe.usecase.CreateSet.repo.ListItems: %v", err)
		return wardrobe.SetOutput{}, err
	}

	draft := wardrobe.ClothingSet{ItemIDs: ids}
	members, missing := resolver.SetMembers(draft, items)
	if len(members) == 0 {
		return wardrobe.SetOutput{}, wardrobe.ErrEmptySet
	}

	imageSrc := strings.TrimSpace(input.ImageSrc)
	if imageSrc == "" {
		for _, m := range members {
			if m.ImageKey != "" {
				imageSrc = m.ImageKey
				break
			}
		}
	}

	set, err := uc.repo.CreateSet(ctx, repository.CreateSetOptions{
		ID:       uuid.NewString(),
		UserID:   sc.UserID,
		Name:     name,
		ItemIDs:  ids,
		ImageSrc: imageSrc,
	})
	if err != nil {
		uc.l.Errorf(ctx, "wardrobe.usecase.CreateSet.repo.CreateSet: %v", err)
		return wardrobe.SetOutput{}, err
	}

	if len(missing) > 0 {
		uc.l.Warnf(ctx, "CreateSet: set=%s references %d unknown items", set.ID, len(missing))
	}

	return wardrobe.SetOutput{
		Set:            set,
		Members:        members,
		MissingItemIDs: missing,
	}, nil
}

func (uc *implUseCase) ListSets(ctx context.Context, sc model.Scope) (wardrobe.ListSetsOutput, error) {
	sets, err := uc.repo.ListSets(ctx, repository.ListSetsOptions{UserID: sc.UserID})
	if err != nil {
		uc.l.Errorf(ctx, "wardrobe.usecase.ListSets.repo.ListSets: %v", err)
		return wardrobe.ListSetsOutput{}, err
	}
	if sets == nil {
		sets = []wardrobe.ClothingSet{}
	}
	return wardrobe.ListSetsOutput{Sets: sets}, nil
}

// DetailSet returns a set with its members. Ids of deleted items are reported
// in MissingItemIDs.
func (uc *implUseCase) DetailSet(ctx context.Context, sc model.Scope, id string) (wardrobe.SetOutput, error) {
	set, err := uc.getSet(ctx, sc, id)
	if err != nil {
		return wardrobe.SetOutput{}, err
	}

	items, err := uc.repo.ListItems(ctx, repository.ListItemsOptions{UserID: sc.UserID, IDs: set.ItemIDs})
	if err != nil {
		uc.l.Errorf(ctx, "wardrobe.usecase.DetailSet.repo.ListItems: %v", err)
		return wardrobe.SetOutput{}, err
	}

	members, missing := resolver.SetMembers(set, items)
	return wardrobe.SetOutput{
		Set:            set,
		Members:        members,
		MissingItemIDs: missing,
	}, nil
}

func (uc *implUseCase) DeleteSet(ctx context.Context, sc model.Scope, id string) error {
	set, err := uc.getSet(ctx, sc, id)
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteSet(ctx, repository.DeleteOptions{UserID: sc.UserID, ID: set.ID}); err != nil {
		uc.l.Errorf(ctx, "wardrobe.usecase.DeleteSet.repo.DeleteSet: %v", err)
		return err
	}
	return nil
}

func (uc *implUseCase) getSet(ctx context.Context, sc model.Scope, id string) (wardrobe.ClothingSet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return wardrobe.ClothingSet{}, wardrobe.ErrSetNotFound
	}

	set, err := uc.repo.GetOneSet(ctx, repository.GetOneSetOptions{UserID: sc.UserID, ID: id})
	if err != nil {
		uc.l.Errorf(ctx, "wardrobe.usecase.getSet.repo.GetOneSet: %v", err)
		return wardrobe.ClothingSet{}, err
	}
	if set.ID == "" {
		return wardrobe.ClothingSet{}, wardrobe.ErrSetNotFound
	}
	return set, nil
}

// uniqueIDs trims ids and drops blanks and repeats, keeping the first occurrence.
func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
