package wardrobe

import (
	"context"

	"wardrobe-assistant/internal/model"
)

//go:generate mockery --name UseCase
type UseCase interface {
	// Items
	CreateItem(ctx context.Context, sc model.Scope, input CreateItemInput) (ItemOutput, error)
	ListItems(ctx context.Context, sc model.Scope, input ListItemsInput) (ListItemsOutput, error)
	DetailItem(ctx context.Context, sc model.Scope, id string) (ItemOutput, error)
	UpdateItem(ctx context.Context, sc model.Scope, input UpdateItemInput) (ItemOutput, error)
	DeleteItem(ctx context.Context, sc model.Scope, id string) error
	BackfillSubcategories(ctx context.Context, sc model.Scope) (BackfillOutput, error)

	// Sets
	CreateSet(ctx context.Context, sc model.Scope, input CreateSetInput) (SetOutput, error)
	ListSets(ctx context.Context, sc model.Scope) (ListSetsOutput, error)
	DetailSet(ctx context.Context, sc model.Scope, id string) (SetOutput, error)
	DeleteSet(ctx context.Context, sc model.Scope, id string) error

	// AI assisted
	SuggestOutfits(ctx context.Context, sc model.Scope, input SuggestOutfitsInput) (SuggestOutfitsOutput, error)
	PlanVacation(ctx context.Context, sc model.Scope, input PlanVacationInput) (PlanVacationOutput, error)
	AnalyzeGaps(ctx context.Context, sc model.Scope, input AnalyzeGapsInput) (AnalyzeGapsOutput, error)
	ResolveReference(ctx context.Context, sc model.Scope, input ResolveReferenceInput) (ResolvedItem, error)

	Taxonomy(ctx context.Context) TaxonomyOutput
}
