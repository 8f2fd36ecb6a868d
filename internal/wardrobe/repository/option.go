package repository

import "wardrobe-assistant/internal/wardrobe"

// CreateItemOptions holds parameters for inserting a new item.
type CreateItemOptions struct {
	ID          string
	UserID      string
	Analysis    string
	Category    wardrobe.Category
	Subcategory wardrobe.Subcategory
	Color       string
	Material    string
	ImageKey    string
}

// GetOneItemOptions selects a single item.
type GetOneItemOptions struct {
	UserID string
	ID     string
}

// ListItemsOptions filters items on the store side. Empty fields are ignored.
type ListItemsOptions struct {
	UserID   string
	Category wardrobe.Category
	IDs      []string
}

// UpdateItemOptions replaces the mutable fields of an item.
type UpdateItemOptions struct {
	UserID      string
	ID          string
	Analysis    string
	Category    wardrobe.Category
	Subcategory wardrobe.Subcategory
	Color       string
	Material    string
	ImageKey    string
}

// DeleteOptions selects a single record to remove.
type DeleteOptions struct {
	UserID string
	ID     string
}

// CreateSetOptions holds parameters for inserting a new set.
type CreateSetOptions struct {
	ID       string
	UserID   string
	Name     string
	ItemIDs  []string
	ImageSrc string
}

// GetOneSetOptions selects a single set.
type GetOneSetOptions struct {
	UserID string
	ID     string
}

// ListSetsOptions filters sets.
type ListSetsOptions struct {
	UserID string
}
