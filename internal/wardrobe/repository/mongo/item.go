package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wardrobe-assistant/internal/wardrobe"
	"wardrobe-assistant/internal/wardrobe/repository"
)

func (r *implRepository) CreateItem(ctx context.Context, opt repository.CreateItemOptions) (wardrobe.ClothingItem, error) {
	now := r.now().UTC()
	doc := itemDocument{
		ID:          opt.ID,
		UserID:      opt.UserID,
		Analysis:    opt.Analysis,
		Category:    string(opt.Category),
		Subcategory: string(opt.Subcategory),
		Color:       opt.Color,
		Material:    opt.Material,
		ImageKey:    opt.ImageKey,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if _, err := r.items.InsertOne(ctx, doc); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateItem"), err)
		return wardrobe.ClothingItem{}, fmt.Errorf("%w: %v", repository.ErrFailedToInsert, err)
	}
	return doc.toItem(), nil
}

func (r *implRepository) GetOneItem(ctx context.Context, opt repository.GetOneItemOptions) (wardrobe.ClothingItem, error) {
	var doc itemDocument
	err := r.items.FindOne(ctx, buildOneFilter(opt.UserID, opt.ID)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return wardrobe.ClothingItem{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneItem"), err)
		return wardrobe.ClothingItem{}, fmt.Errorf("%w: %v", repository.ErrFailedToGet, err)
	}
	return doc.toItem(), nil
}

func (r *implRepository) ListItems(ctx context.Context, opt repository.ListItemsOptions) ([]wardrobe.ClothingItem, error) {
	cur, err := r.items.Find(ctx, buildItemListFilter(opt), options.Find().SetSort(newestFirst()))
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListItems"), err)
		return nil, fmt.Errorf("%w: %v", repository.ErrFailedToList, err)
	}
	defer cur.Close(ctx)

	var docs []itemDocument
	if err := cur.All(ctx, &docs); err != nil {
		r.l.Errorf(ctx, "%s decode: %v", r.dsn("ListItems"), err)
		return nil, fmt.Errorf("%w: %v", repository.ErrFailedToList, err)
	}

	items := make([]wardrobe.ClothingItem, len(docs))
	for i, d := range docs {
		items[i] = d.toItem()
	}
	return items, nil
}

func (r *implRepository) UpdateItem(ctx context.Context, opt repository.UpdateItemOptions) (wardrobe.ClothingItem, error) {
	var doc itemDocument
	err := r.items.FindOneAndUpdate(
		ctx,
		buildOneFilter(opt.UserID, opt.ID),
		buildItemUpdate(opt, r.now().UTC()),
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return wardrobe.ClothingItem{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("UpdateItem"), err)
		return wardrobe.ClothingItem{}, fmt.Errorf("%w: %v", repository.ErrFailedToUpdate, err)
	}
	return doc.toItem(), nil
}

func (r *implRepository) DeleteItem(ctx context.Context, opt repository.DeleteOptions) error {
	if _, err := r.items.DeleteOne(ctx, buildOneFilter(opt.UserID, opt.ID)); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteItem"), err)
		return fmt.Errorf("%w: %v", repository.ErrFailedToDelete, err)
	}
	return nil
}
