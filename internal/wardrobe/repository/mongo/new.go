package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"wardrobe-assistant/internal/wardrobe/repository"
	"wardrobe-assistant/pkg/log"
)

const (
	itemCollection = "items"
	setCollection  = "sets"
)

type implRepository struct {
	items *mongo.Collection
	sets  *mongo.Collection
	l     log.Logger
	now   func() time.Time
}

// New creates a MongoDB-backed Repository for the wardrobe domain.
func New(db *mongo.Database, l log.Logger) *implRepository {
	if db == nil {
		panic("wardrobe/repository/mongo: db is required")
	}
	return &implRepository{
		items: db.Collection(itemCollection),
		sets:  db.Collection(setCollection),
		l:     l,
		now:   time.Now,
	}
}

var _ repository.Repository = (*implRepository)(nil)

// EnsureIndexes creates the per-user listing indexes on both collections.
func (r *implRepository) EnsureIndexes(ctx context.Context) error {
	model := mongo.IndexModel{
		Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
		Options: options.Index().SetName("user_created"),
	}
	for _, coll := range []*mongo.Collection{r.items, r.sets} {
		if _, err := coll.Indexes().CreateOne(ctx, model); err != nil {
			return fmt.Errorf("create index on %s: %w", coll.Name(), err)
		}
	}
	return nil
}

// dsn returns a method-scoped prefix for log lines.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("wardrobe/repository/mongo.%s", method)
}
