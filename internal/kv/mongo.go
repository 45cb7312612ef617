package kv

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Mongo is a Store backed by a MongoDB collection holding one document per
// key: {_id: <key>, value: <raw bytes>}.
type Mongo struct {
	client     *mongo.Client
	collection *mongo.Collection
}

type mongoDoc struct {
	Key   string `bson:"_id"`
	Value []byte `bson:"value"`
}

// ConnectMongo connects to MongoDB at uri and returns a Store over the
// given database's "kv" collection.
func ConnectMongo(uri, database string) (*Mongo, error) {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("mongo.Connect error: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	// Ping to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("mongo.Ping error: %w", err)
	}
	return &Mongo{client: client, collection: client.Database(database).Collection("kv")}, nil
}

// Close disconnects from the server.
func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

func (m *Mongo) Get(ctx context.Context, key string) ([]byte, error) {
	var doc mongoDoc
	err := m.collection.FindOne(ctx, bson.M{"_id": key}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return doc.Value, nil
}

func (m *Mongo) Set(ctx context.Context, key string, value []byte) error {
	opts := options.Replace().SetUpsert(true)
	_, err := m.collection.ReplaceOne(ctx, bson.M{"_id": key}, mongoDoc{Key: key, Value: value}, opts)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

func (m *Mongo) Delete(ctx context.Context, key string) error {
	if _, err := m.collection.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
