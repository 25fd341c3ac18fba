package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Mongo stores one document per vehicle uuid in a single collection.
type Mongo struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// OpenMongo connects, pings and ensures the unique index on uuid. The index
// is what keeps the at-most-one-document-per-uuid invariant under concurrent
// ingestion.
func OpenMongo(ctx context.Context, cfg Config) (*Mongo, error) {
	uri := cfg.URI
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	database := cfg.Database
	if database == "" {
		database = "gtfsrt"
	}
	collection := cfg.Collection
	if collection == "" {
		collection = "locations"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	coll := client.Database(database).Collection(collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "uuid", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create uuid index: %w", err)
	}

	return &Mongo{client: client, coll: coll}, nil
}

func (m *Mongo) FindByUUID(ctx context.Context, uuid string) (*Location, error) {
	var loc Location
	err := m.coll.FindOne(ctx, bson.M{"uuid": uuid}).Decode(&loc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find location %q: %w", uuid, err)
	}
	return &loc, nil
}

// Save replaces the document keyed on uuid, inserting when absent. The
// upsert makes the write atomic on the key, so two racing reconciles for
// the same vehicle end as last-write-wins rather than duplicate documents.
func (m *Mongo) Save(ctx context.Context, loc *Location) error {
	_, err := m.coll.ReplaceOne(ctx, bson.M{"uuid": loc.UUID}, loc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save location %q: %w", loc.UUID, err)
	}
	return nil
}

func (m *Mongo) Close() error {
	return m.client.Disconnect(context.Background())
}
