package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"fitcoach/internal/config"
	"fitcoach/internal/logger"
)

// MongoStore implements [Store] on top of a MongoDB database. Tables map
// one-to-one onto collections.
type MongoStore struct {
	client   *mongo.Client
	database *mongo.Database
	logger   *logger.Logger
}

// uniqueIndexes lists the per-collection unique constraints the document
// backend enforces at startup, mirroring the relational schema.
var uniqueIndexes = map[string]string{
	"users":                 "email",
	"password_reset_tokens": "token",
}

// NewMongoStore connects to MongoDB, verifies the connection with a ping
// and ensures the unique indexes the application relies on.
func NewMongoStore(ctx context.Context, cfg config.Mongo, log *logger.Logger) (*MongoStore, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(cfg.URI))
	if err != nil {
		log.Err(err).Str("func", "NewMongoStore").Msg("error occured during database connection")
		return nil, fmt.Errorf("error occured during database connection: %w", err)
	}

	if err = client.Ping(ctx, nil); err != nil {
		log.Err(err).Str("func", "NewMongoStore").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Info().Str("func", "NewMongoStore").Msg("connected to database successfully")

	store := &MongoStore{
		client:   client,
		database: client.Database(cfg.Database),
		logger:   log,
	}

	if err = store.ensureIndexes(ctx); err != nil {
		log.Err(err).Str("func", "NewMongoStore").Msg("error creating indexes")
		return nil, err
	}

	return store, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	for collection, field := range uniqueIndexes {
		index := mongo.IndexModel{
			Keys:    bson.D{{Key: field, Value: 1}},
			Options: options.Index().SetUnique(true),
		}
		if _, err := s.database.Collection(collection).Indexes().CreateOne(ctx, index); err != nil {
			return fmt.Errorf("create index on %s.%s: %w", collection, field, err)
		}
	}

	return nil
}

// InsertOne persists a new document. Duplicate key errors from the unique
// indexes are reported as [ErrConstraintViolation].
func (s *MongoStore) InsertOne(ctx context.Context, table string, record Record) error {
	log := logger.FromContext(ctx)

	if _, err := s.database.Collection(table).InsertOne(ctx, bson.M(record)); err != nil {
		log.Err(err).Str("func", "*MongoStore.InsertOne").Str("table", table).Msg("error inserting document")

		if mongo.IsDuplicateKeyError(err) {
			return ErrConstraintViolation
		}
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return nil
}

// FindOne returns the first document matching the filter.
func (s *MongoStore) FindOne(ctx context.Context, table string, filter Filter) (Record, error) {
	log := logger.FromContext(ctx)

	var document bson.M
	err := s.database.Collection(table).FindOne(ctx, bson.M(filter)).Decode(&document)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		log.Err(err).Str("func", "*MongoStore.FindOne").Str("table", table).Msg("error finding document")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return recordFromDocument(document), nil
}

// FindAll returns every document matching the filter, honouring sort and
// limit options.
func (s *MongoStore) FindAll(ctx context.Context, table string, filter Filter, opts ...FindOption) ([]Record, error) {
	log := logger.FromContext(ctx)
	resolved := applyFindOptions(opts)

	findOpts := options.Find()
	if resolved.sortField != "" {
		direction := 1
		if resolved.sortDescending {
			direction = -1
		}
		findOpts.SetSort(bson.D{{Key: resolved.sortField, Value: direction}})
	}
	if resolved.limit > 0 {
		findOpts.SetLimit(resolved.limit)
	}

	cursor, err := s.database.Collection(table).Find(ctx, bson.M(filter), findOpts)
	if err != nil {
		log.Err(err).Str("func", "*MongoStore.FindAll").Str("table", table).Msg("error finding documents")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	var documents []bson.M
	if err = cursor.All(ctx, &documents); err != nil {
		log.Err(err).Str("func", "*MongoStore.FindAll").Str("table", table).Msg("error reading cursor")
		return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	records := make([]Record, 0, len(documents))
	for _, document := range documents {
		records = append(records, recordFromDocument(document))
	}

	return records, nil
}

// UpdateOne applies a $set update to a single matching document. MongoDB's
// UpdateOne is atomic, so the reported matched count is a reliable signal
// for conditional, compare-and-set style updates.
func (s *MongoStore) UpdateOne(ctx context.Context, table string, filter Filter, update Record) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := s.database.Collection(table).UpdateOne(ctx, bson.M(filter), bson.M{"$set": bson.M(update)})
	if err != nil {
		log.Err(err).Str("func", "*MongoStore.UpdateOne").Str("table", table).Msg("error updating document")

		if mongo.IsDuplicateKeyError(err) {
			return 0, ErrConstraintViolation
		}
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return result.MatchedCount, nil
}

// DeleteOne removes a single matching document.
func (s *MongoStore) DeleteOne(ctx context.Context, table string, filter Filter) (int64, error) {
	log := logger.FromContext(ctx)

	result, err := s.database.Collection(table).DeleteOne(ctx, bson.M(filter))
	if err != nil {
		log.Err(err).Str("func", "*MongoStore.DeleteOne").Str("table", table).Msg("error deleting document")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return result.DeletedCount, nil
}

// Count returns the number of documents matching the filter.
func (s *MongoStore) Count(ctx context.Context, table string, filter Filter) (int64, error) {
	log := logger.FromContext(ctx)

	count, err := s.database.Collection(table).CountDocuments(ctx, bson.M(filter))
	if err != nil {
		log.Err(err).Str("func", "*MongoStore.Count").Str("table", table).Msg("error counting documents")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return count, nil
}

// Ping verifies the MongoDB deployment is reachable.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

// Close disconnects the MongoDB client.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// recordFromDocument converts a decoded BSON document into a plain record:
// the driver-internal _id is dropped and BSON primitives are replaced with
// their native Go equivalents.
func recordFromDocument(document bson.M) Record {
	record := make(Record, len(document))
	for field, value := range document {
		if field == "_id" {
			continue
		}
		record[field] = nativeValue(value)
	}

	return record
}

func nativeValue(value any) any {
	switch typed := value.(type) {
	case bson.DateTime:
		return typed.Time().UTC()
	case bson.A:
		converted := make([]any, 0, len(typed))
		for _, item := range typed {
			converted = append(converted, nativeValue(item))
		}
		return converted
	case bson.M:
		converted := make(map[string]any, len(typed))
		for key, item := range typed {
			converted[key] = nativeValue(item)
		}
		return converted
	case bson.D:
		converted := make(map[string]any, len(typed))
		for _, element := range typed {
			converted[element.Key] = nativeValue(element.Value)
		}
		return converted
	case bson.ObjectID:
		return typed.Hex()
	default:
		return value
	}
}
