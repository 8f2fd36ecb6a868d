package repository

import (
	"context"

	"wardrobe-assistant/internal/wardrobe"
)

// Repository is the composed interface for the wardrobe data store.
type Repository interface {
	ItemRepository
	SetRepository
}

// ItemRepository defines data access for clothing items. Every call is scoped
// to UserID; lookups that find nothing return a zero value and no error.
type ItemRepository interface {
	CreateItem(ctx context.Context, opt CreateItemOptions) (wardrobe.ClothingItem, error)
	GetOneItem(ctx context.Context, opt GetOneItemOptions) (wardrobe.ClothingItem, error)
	ListItems(ctx context.Context, opt ListItemsOptions) ([]wardrobe.ClothingItem, error)
	UpdateItem(ctx context.Context, opt UpdateItemOptions) (wardrobe.ClothingItem, error)
	DeleteItem(ctx context.Context, opt DeleteOptions) error
}

// SetRepository defines data access for clothing sets.
type SetRepository interface {
	CreateSet(ctx context.Context, opt CreateSetOptions) (wardrobe.ClothingSet, error)
	GetOneSet(ctx context.Context, opt GetOneSetOptions) (wardrobe.ClothingSet, error)
	ListSets(ctx context.Context, opt ListSetsOptions) ([]wardrobe.ClothingSet, error)
	DeleteSet(ctx context.Context, opt DeleteOptions) error
}
