package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// MongoDocumentStore stores documents in MongoDB collections.
type MongoDocumentStore struct {
	db *mongo.Database
}

// NewMongoDocumentStore returns a MongoDB-backed implementation.
func NewMongoDocumentStore(db *mongo.Database) *MongoDocumentStore {
	return &MongoDocumentStore{db: db}
}

func (s *MongoDocumentStore) Insert(ctx context.Context, collection string, fields map[string]any) (string, error) {
	res, err := s.db.Collection(collection).InsertOne(ctx, bson.M(fields))
	if err != nil {
		return "", err
	}
	return idString(res.InsertedID), nil
}

func (s *MongoDocumentStore) QueryByField(ctx context.Context, collection, field, value string) ([]Document, error) {
	cur, err := s.db.Collection(collection).Find(ctx, bson.M{field: value})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []Document
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, err
		}
		id := idString(raw["_id"])
		delete(raw, "_id")
		docs = append(docs, Document{ID: id, Fields: raw})
	}
	if err := cur.Err(); err != nil {
		return nil, err
	}
	return docs, nil
}

func (s *MongoDocumentStore) NewBatch() WriteBatch {
	return &mongoBatch{db: s.db}
}

func (s *MongoDocumentStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

type mongoBatch struct {
	pendingWrites
	db *mongo.Database
}

// Commit sends one ordered BulkWrite per collection. MongoDB gives no
// cross-document atomicity here; a target that no longer exists is reported
// after the writes before it have been applied.
func (b *mongoBatch) Commit(ctx context.Context) error {
	order, grouped := b.byCollection()
	for _, collection := range order {
		updates := grouped[collection]
		models := make([]mongo.WriteModel, 0, len(updates))
		for _, u := range updates {
			models = append(models, mongo.NewUpdateOneModel().
				SetFilter(bson.M{"_id": objectIDOrString(u.ref.ID)}).
				SetUpdate(bson.M{"$set": bson.M(u.fields)}))
		}

		res, err := b.db.Collection(collection).BulkWrite(ctx, models, options.BulkWrite().SetOrdered(true))
		if err != nil {
			return fmt.Errorf("bulk update %s: %w", collection, err)
		}
		if res.MatchedCount < int64(len(models)) {
			return fmt.Errorf("bulk update %s matched %d of %d: %w",
				collection, res.MatchedCount, len(models), ErrDocumentNotFound)
		}
	}
	b.updates = nil
	return nil
}

func idString(id any) string {
	switch v := id.(type) {
	case nil:
		return ""
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func objectIDOrString(id string) any {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return oid
	}
	return id
}
