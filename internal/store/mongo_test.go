package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func TestRecordFromDocument(t *testing.T) {
	createdAt := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

	document := bson.M{
		"_id":        bson.NewObjectID(),
		"id":         "workout-1",
		"title":      "Push day",
		"created_at": bson.NewDateTimeFromTime(createdAt),
		"exercises":  bson.A{"press-ups", "squats"},
		"details":    bson.M{"sets": int32(3)},
	}

	record := recordFromDocument(document)

	assert.NotContains(t, record, "_id")
	assert.Equal(t, "workout-1", record["id"])
	assert.Equal(t, createdAt, record["created_at"])
	assert.Equal(t, []any{"press-ups", "squats"}, record["exercises"])
	assert.Equal(t, map[string]any{"sets": int32(3)}, record["details"])
}

func TestNativeValue_NestedDocuments(t *testing.T) {
	value := nativeValue(bson.D{
		{Key: "inner", Value: bson.A{bson.NewDateTimeFromTime(time.Unix(0, 0).UTC())}},
	})

	converted, ok := value.(map[string]any)
	assert.True(t, ok)

	inner, ok := converted["inner"].([]any)
	assert.True(t, ok)
	assert.Equal(t, time.Unix(0, 0).UTC(), inner[0])
}
