package store

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/hireloop/talent-scout/internal/candidate"
)

const (
	connectTimeout         = 15 * time.Second
	serverSelectionTimeout = 20 * time.Second
)

// MongoSource reads the candidate snapshot from a MongoDB collection.
type MongoSource struct {
	client *mongo.Client
	col    *mongo.Collection
	logger *zap.Logger
}

func NewMongoSource(ctx context.Context, logger *zap.Logger, uri, database, collection string) (*MongoSource, error) {
	opts := options.Client().ApplyURI(uri).
		SetServerSelectionTimeout(serverSelectionTimeout).
		SetConnectTimeout(connectTimeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	return &MongoSource{
		client: client,
		col:    client.Database(database).Collection(collection),
		logger: logger,
	}, nil
}

func (s *MongoSource) FetchAll(ctx context.Context) (*candidate.Candidates, error) {
	cursor, err := s.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find candidates: %w", err)
	}

	var records []map[string]any
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("read candidate cursor: %w", err)
	}

	s.logger.Debug("fetched candidate snapshot", zap.Int("records", len(records)))

	return decodeRecords(normalizeDocumentIDs(records))
}

// normalizeDocumentIDs maps the mongo "_id" key onto the record id when the
// document carries no explicit one.
func normalizeDocumentIDs(records []map[string]any) []map[string]any {
	for _, record := range records {
		if _, ok := record["id"]; ok {
			continue
		}
		switch id := record["_id"].(type) {
		case primitive.ObjectID:
			record["id"] = id.Hex()
		case string:
			record["id"] = id
		}
	}
	return records
}

func (s *MongoSource) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}
