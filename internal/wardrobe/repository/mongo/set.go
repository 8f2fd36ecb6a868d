package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wardrobe-assistant/internal/wardrobe"
	"wardrobe-assistant/internal/wardrobe/repository"
)

func (r *implRepository) CreateSet(ctx context.Context, opt repository.CreateSetOptions) (wardrobe.ClothingSet, error) {
	doc := setDocument{
		ID:        opt.ID,
		UserID:    opt.UserID,
		Name:      opt.Name,
		ItemIDs:   opt.ItemIDs,
		ImageSrc:  opt.ImageSrc,
		CreatedAt: r.now().UTC(),
	}

	if _, err := r.sets.InsertOne(ctx, doc); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("CreateSet"), err)
		return wardrobe.ClothingSet{}, fmt.Errorf("%w: %v", repository.ErrFailedToInsert, err)
	}
	return doc.toSet(), nil
}

func (r *implRepository) GetOneSet(ctx context.Context, opt repository.GetOneSetOptions) (wardrobe.ClothingSet, error) {
	var doc setDocument
	err := r.sets.FindOne(ctx, buildOneFilter(opt.UserID, opt.ID)).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return wardrobe.ClothingSet{}, nil
	}
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("GetOneSet"), err)
		return wardrobe.ClothingSet{}, fmt.Errorf("%w: %v", repository.ErrFailedToGet, err)
	}
	return doc.toSet(), nil
}

func (r *implRepository) ListSets(ctx context.Context, opt repository.ListSetsOptions) ([]wardrobe.ClothingSet, error) {
	cur, err := r.sets.Find(ctx, bson.M{"user_id": opt.UserID}, options.Find().SetSort(newestFirst()))
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("ListSets"), err)
		return nil, fmt.Errorf("%w: %v", repository.ErrFailedToList, err)
	}
	defer cur.Close(ctx)

	var docs []setDocument
	if err := cur.All(ctx, &docs); err != nil {
		r.l.Errorf(ctx, "%s decode: %v", r.dsn("ListSets"), err)
		return nil, fmt.Errorf("%w: %v", repository.ErrFailedToList, err)
	}

	sets := make([]wardrobe.ClothingSet, len(docs))
	for i, d := range docs {
		sets[i] = d.toSet()
	}
	return sets, nil
}

func (r *implRepository) DeleteSet(ctx context.Context, opt repository.DeleteOptions) error {
	if _, err := r.sets.DeleteOne(ctx, buildOneFilter(opt.UserID, opt.ID)); err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("DeleteSet"), err)
		return fmt.Errorf("%w: %v", repository.ErrFailedToDelete, err)
	}
	return nil
}
