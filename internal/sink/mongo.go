package sink

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/macseguridad/flota-backend/pkg/config"
	"github.com/macseguridad/flota-backend/pkg/etlerrors"
	"github.com/macseguridad/flota-backend/pkg/logger"
)

// Mongo is the production document-store sink.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongo connects and pings within the configured timeout. A failed ping is
// surfaced as a fatal sink error: the run must not start against a cluster we
// cannot reach.
func NewMongo(ctx context.Context, cfg config.MongoConfig, logg *logger.Logger) (*Mongo, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, etlerrors.Wrap(etlerrors.CodeSinkUnavailable, err, "connecting to document store")
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, etlerrors.Wrap(etlerrors.CodeSinkUnavailable, err, "pinging document store")
	}

	if logg != nil {
		logg.Info(ctx, "document store connection established")
	}
	return &Mongo{client: client, db: client.Database(cfg.Database)}, nil
}

func (m *Mongo) Ping(ctx context.Context) error {
	if err := m.client.Ping(ctx, readpref.Primary()); err != nil {
		return etlerrors.Wrap(etlerrors.CodeSinkUnavailable, err, "pinging document store")
	}
	return nil
}

func (m *Mongo) UpsertByKey(ctx context.Context, collection, keyField string, docs []any) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}

	models := make([]mongo.WriteModel, 0, len(docs))
	for _, doc := range docs {
		key, err := extractKey(doc, keyField)
		if err != nil {
			return 0, etlerrors.Wrap(etlerrors.CodeCollectionWrite, err, "extracting upsert key").WithDetails(collection)
		}
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.D{{Key: keyField, Value: key}}).
			SetReplacement(doc).
			SetUpsert(true))
	}

	result, err := m.db.Collection(collection).BulkWrite(ctx, models, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, etlerrors.Wrap(etlerrors.CodeCollectionWrite, err, "bulk upsert failed").WithDetails(collection)
	}
	return upsertedTotal(result), nil
}

// upsertedTotal counts documents the bulk upsert touched. Matched already
// includes modified, so adding ModifiedCount would double-count replacements.
func upsertedTotal(result *mongo.BulkWriteResult) int {
	return int(result.UpsertedCount + result.MatchedCount)
}

func (m *Mongo) ReplaceAll(ctx context.Context, collection string, docs []any) (int, error) {
	coll := m.db.Collection(collection)
	if err := coll.Drop(ctx); err != nil {
		return 0, etlerrors.Wrap(etlerrors.CodeCollectionWrite, err, "dropping collection").WithDetails(collection)
	}
	if len(docs) == 0 {
		return 0, nil
	}
	result, err := coll.InsertMany(ctx, docs)
	if err != nil {
		return 0, etlerrors.Wrap(etlerrors.CodeCollectionWrite, err, "bulk insert failed").WithDetails(collection)
	}
	return len(result.InsertedIDs), nil
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// extractKey pulls the keyField value out of an arbitrary document by
// round-tripping it through bson.
func extractKey(doc any, keyField string) (any, error) {
	raw, err := bson.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshaling document: %w", err)
	}
	var m bson.M
	if err := bson.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("unmarshaling document: %w", err)
	}
	key, ok := m[keyField]
	if !ok || key == nil || key == "" {
		return nil, fmt.Errorf("document missing key field %q", keyField)
	}
	return key, nil
}
