package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoConfig configures a MongoDB-backed store.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

// Defaults for MongoConfig.
const (
	DefaultDatabase   = "scenegraph"
	DefaultCollection = "snapshots"
)

// MongoStore keeps one document per (diagram, revision), enforced by a
// unique index.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects, pings, and ensures the revision index.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = DefaultDatabase
	}
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	coll := client.Database(cfg.Database).Collection(cfg.Collection)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    revisionIndex(),
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("create index: %w", err)
	}
	return &MongoStore{client: client, coll: coll}, nil
}

func revisionIndex() bson.D {
	return bson.D{{Key: "diagram_id", Value: 1}, {Key: "revision", Value: 1}}
}

func byRevision(diagramID string, revision int) bson.D {
	return bson.D{{Key: "diagram_id", Value: diagramID}, {Key: "revision", Value: revision}}
}

func (m *MongoStore) Save(ctx context.Context, s Snapshot) error {
	_, err := m.coll.InsertOne(ctx, s)
	if mongo.IsDuplicateKeyError(err) {
		return ErrConflict
	}
	if err != nil {
		return fmt.Errorf("insert snapshot: %w", err)
	}
	return nil
}

func (m *MongoStore) Get(ctx context.Context, diagramID string, revision int) (Snapshot, error) {
	var s Snapshot
	err := m.coll.FindOne(ctx, byRevision(diagramID, revision)).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("find snapshot: %w", err)
	}
	return s, nil
}

func (m *MongoStore) List(ctx context.Context, diagramID string) ([]Snapshot, error) {
	cur, err := m.coll.Find(ctx,
		bson.D{{Key: "diagram_id", Value: diagramID}},
		options.Find().SetSort(bson.D{{Key: "revision", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	var out []Snapshot
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	return out, nil
}

func (m *MongoStore) Latest(ctx context.Context, diagramID string) (Snapshot, error) {
	var s Snapshot
	err := m.coll.FindOne(ctx,
		bson.D{{Key: "diagram_id", Value: diagramID}},
		options.FindOne().SetSort(bson.D{{Key: "revision", Value: -1}})).Decode(&s)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Snapshot{}, ErrNotFound
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("latest snapshot: %w", err)
	}
	return s, nil
}

// Close disconnects the client.
func (m *MongoStore) Close() error {
	return m.client.Disconnect(context.Background())
}

var _ Store = (*MongoStore)(nil)
