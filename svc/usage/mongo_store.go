package usage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// mongoStore implements Store over a MongoDB collection, using $inc with
// upsert as the atomic insert-or-increment primitive.
type mongoStore struct {
	coll *mongo.Collection
}

// NewMongoStore returns a Mongo-backed usage store over the given database.
// The collection needs a unique index on (user_id, usage_type, period).
func NewMongoStore(db *mongo.Database) Store {
	return &mongoStore{coll: db.Collection("usage_records")}
}

type usageDoc struct {
	Count int64 `bson:"count"`
}

func (s *mongoStore) filter(userID uuid.UUID, usageType Type, period string) bson.M {
	return bson.M{
		"user_id":    userID.String(),
		"usage_type": string(usageType),
		"period":     period,
	}
}

func (s *mongoStore) Count(ctx context.Context, userID uuid.UUID, usageType Type, period string) (int64, error) {
	var doc usageDoc
	err := s.coll.FindOne(ctx, s.filter(userID, usageType, period)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, err
	}
	return doc.Count, nil
}

func (s *mongoStore) Increment(ctx context.Context, userID uuid.UUID, usageType Type, period string, amount int64) error {
	update := bson.M{
		"$inc":         bson.M{"count": amount},
		"$set":         bson.M{"updated_at": time.Now().UTC()},
		"$setOnInsert": bson.M{"created_at": time.Now().UTC()},
	}

	_, err := s.coll.UpdateOne(ctx, s.filter(userID, usageType, period), update,
		options.UpdateOne().SetUpsert(true))
	return err
}
