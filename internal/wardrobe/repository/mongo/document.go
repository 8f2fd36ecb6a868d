package mongo

import (
	"time"

	"wardrobe-assistant/internal/wardrobe"
)

type itemDocument struct {
	ID          string    `bson:"_id"`
	UserID      string    `bson:"user_id"`
	Analysis    string    `bson:"analysis"`
	Category    string    `bson:"category"`
	Subcategory string    `bson:"subcategory,omitempty"`
	Color       string    `bson:"color,omitempty"`
	Material    string    `bson:"material,omitempty"`
	ImageKey    string    `bson:"image_key,omitempty"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}

func (d itemDocument) toItem() wardrobe.ClothingItem {
	return wardrobe.ClothingItem{
		ID:          d.ID,
		UserID:      d.UserID,
		Analysis:    d.Analysis,
		Category:    wardrobe.Category(d.Category),
		Subcategory: wardrobe.Subcategory(d.Subcategory),
		Color:       d.Color,
		Material:    d.Material,
		ImageKey:    d.ImageKey,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

type setDocument struct {
	ID        string    `bson:"_id"`
	UserID    string    `bson:"user_id"`
	Name      string    `bson:"name"`
	ItemIDs   []string  `bson:"item_ids"`
	ImageSrc  string    `bson:"image_src,omitempty"`
	CreatedAt time.Time `bson:"created_at"`
}

func (d setDocument) toSet() wardrobe.ClothingSet {
	ids := d.ItemIDs
	if ids == nil {
		ids = []string{}
	}
	return wardrobe.ClothingSet{
		ID:        d.ID,
		UserID:    d.UserID,
		Name:      d.Name,
		ItemIDs:   ids,
		ImageSrc:  d.ImageSrc,
		CreatedAt: d.CreatedAt,
	}
}
