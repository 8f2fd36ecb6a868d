package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"wardrobe-assistant/internal/wardrobe/repository"
)

func buildOneFilter(userID, id string) bson.M {
	return bson.M{"_id": id, "user_id": userID}
}

func buildItemListFilter(opt repository.ListItemsOptions) bson.M {
	filter := bson.M{"user_id": opt.UserID}
	if opt.Category != "" {
		filter["category"] = string(opt.Category)
	}
	if len(opt.IDs) > 0 {
		filter["_id"] = bson.M{"$in": opt.IDs}
	}
	return filter
}

func buildItemUpdate(opt repository.UpdateItemOptions, now time.Time) bson.M {
	set := bson.M{
		"analysis":   opt.Analysis,
		"category":   string(opt.Category),
		"color":      opt.Color,
		"material":   opt.Material,
		"image_key":  opt.ImageKey,
		"updated_at": now,
	}
	update := bson.M{"$set": set}
	if opt.Subcategory == "" {
		update["$unset"] = bson.M{"subcategory": ""}
	} else {
		set["subcategory"] = string(opt.Subcategory)
	}
	return update
}

func newestFirst() bson.D {
	return bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}
}
