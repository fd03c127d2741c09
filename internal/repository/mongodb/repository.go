// Package mongodb backs the fixture server with a persistent record store,
// for dev setups where seeded data must survive restarts. It satisfies the
// devserver Store interface structurally.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository stores fixture collections in MongoDB, one collection per
// entity plus a counters collection for sequential integer ids.
type Repository struct {
	client *mongo.Client
	dbName string
}

// NewRepository connects and pings the deployment.
func NewRepository(ctx context.Context, uri string, dbName string) (*Repository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Repository{client: client, dbName: dbName}, nil
}

func (r *Repository) collection(entity string) *mongo.Collection {
	return r.client.Database(r.dbName).Collection(entity)
}

// nextID increments and returns the per-entity id sequence. Server-assigned
// ids are never reused, matching the API contract.
func (r *Repository) nextID(ctx context.Context, entity string) (int, error) {
	counters := r.collection("counters")

	var doc struct {
		Seq int `bson:"seq"`
	}
	err := counters.FindOneAndUpdate(ctx,
		bson.M{"_id": entity},
		bson.M{"$inc": bson.M{"seq": 1}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("increment id counter for %s: %w", entity, err)
	}
	return doc.Seq, nil
}

// List returns every document of the entity collection.
func (r *Repository) List(ctx context.Context, entity string) ([]map[string]any, error) {
	cursor, err := r.collection(entity).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", entity, err)
	}
	defer func() { _ = cursor.Close(ctx) }()

	var rows []map[string]any
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode %s document: %w", entity, err)
		}
		delete(doc, "_id")
		rows = append(rows, map[string]any(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s: %w", entity, err)
	}
	return rows, nil
}

// Insert assigns the next id, stamps timestamps and stores the document.
func (r *Repository) Insert(ctx context.Context, entity string, doc map[string]any) (map[string]any, error) {
	id, err := r.nextID(ctx, entity)
	if err != nil {
		return nil, err
	}

	stored := make(map[string]any, len(doc)+3)
	for k, v := range doc {
		stored[k] = v
	}
	now := time.Now().UTC()
	stored["id"] = id
	stored["created_at"] = now
	stored["updated_at"] = now

	if _, err := r.collection(entity).InsertOne(ctx, bson.M(stored)); err != nil {
		return nil, fmt.Errorf("insert into %s: %w", entity, err)
	}
	return stored, nil
}

// Update replaces the document's mutable fields, keeping id and created_at.
func (r *Repository) Update(ctx context.Context, entity string, id int, doc map[string]any) (map[string]any, bool, error) {
	var existing bson.M
	err := r.collection(entity).FindOne(ctx, bson.M{"id": id}).Decode(&existing)
	if err == mongo.ErrNoDocuments {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %s/%d: %w", entity, id, err)
	}

	stored := make(map[string]any, len(doc)+3)
	for k, v := range doc {
		stored[k] = v
	}
	stored["id"] = id
	stored["created_at"] = existing["created_at"]
	stored["updated_at"] = time.Now().UTC()

	if _, err := r.collection(entity).ReplaceOne(ctx, bson.M{"id": id}, bson.M(stored)); err != nil {
		return nil, false, fmt.Errorf("replace %s/%d: %w", entity, id, err)
	}
	return stored, true, nil
}

// Delete removes the document by id; the bool reports whether it existed.
func (r *Repository) Delete(ctx context.Context, entity string, id int) (bool, error) {
	res, err := r.collection(entity).DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, fmt.Errorf("delete %s/%d: %w", entity, id, err)
	}
	return res.DeletedCount > 0, nil
}

// Close disconnects from the deployment.
func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
