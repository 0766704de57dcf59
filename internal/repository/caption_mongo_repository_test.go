package repository

import (
	"context"
	"testing"
	"time"

	"conferencecaptions/internal/model"

	"github.com/go-playground/assert/v2"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newMockMongo(t *testing.T) *mtest.T {
	return mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
}

func captionsNamespace(mt *mtest.T) string {
	return mt.DB.Name() + "." + CaptionCollection
}

func TestCaptionMongoRepository(t *testing.T) {
	mt := newMockMongo(t)

	key := model.CaptionKey{Theme: "Rooted", Audience: "Youth", Date: "2025-06-01", Tone: "joyful"}

	mt.Run("find hit", func(mt *mtest.T) {
		repo := NewCaptionMongoRepository(mt.DB)

		id := primitive.NewObjectID()
		createdAt := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
		updatedAt := createdAt.Add(time.Minute)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, captionsNamespace(mt), mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "theme", Value: "Rooted"},
			{Key: "audience", Value: "Youth"},
			{Key: "date", Value: "2025-06-01"},
			{Key: "location", Value: "Main Hall"},
			{Key: "speakers", Value: "Pastor A"},
			{Key: "tone", Value: "joyful"},
			{Key: "captions", Value: bson.A{"1. Join us!", "2. Don't miss it!"}},
			{Key: "createdAt", Value: createdAt},
			{Key: "updatedAt", Value: updatedAt},
		}))

		caption, err := repo.FindOne(context.Background(), key)

		assert.Equal(mt.T, nil, err)
		assert.Equal(mt.T, id.Hex(), caption.ID)
		assert.Equal(mt.T, "Main Hall", caption.Location)
		assert.Equal(mt.T, []string{"1. Join us!", "2. Don't miss it!"}, caption.Captions)
		assert.Equal(mt.T, true, caption.CreatedAt.Equal(createdAt))
		assert.Equal(mt.T, true, caption.UpdatedAt.Equal(updatedAt))
	})

	mt.Run("filter uses lookup fields only", func(mt *mtest.T) {
		repo := NewCaptionMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, captionsNamespace(mt), mtest.FirstBatch))

		repo.FindOne(context.Background(), key)

		evt := mt.GetStartedEvent()
		assert.Equal(mt.T, "find", evt.CommandName)
		assert.Equal(mt.T, CaptionCollection, evt.Command.Lookup("find").StringValue())

		filter := evt.Command.Lookup("filter").Document()
		assert.Equal(mt.T, "Rooted", filter.Lookup("theme").StringValue())
		assert.Equal(mt.T, "Youth", filter.Lookup("audience").StringValue())
		assert.Equal(mt.T, "2025-06-01", filter.Lookup("date").StringValue())
		assert.Equal(mt.T, "joyful", filter.Lookup("tone").StringValue())

		_, err := filter.LookupErr("location")
		assert.NotEqual(mt.T, nil, err)
		_, err = filter.LookupErr("speakers")
		assert.NotEqual(mt.T, nil, err)
	})

	mt.Run("find miss", func(mt *mtest.T) {
		repo := NewCaptionMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, captionsNamespace(mt), mtest.FirstBatch))

		caption, err := repo.FindOne(context.Background(), key)

		assert.Equal(mt.T, nil, err)
		assert.Equal(mt.T, nil, caption)
	})

	mt.Run("find error", func(mt *mtest.T) {
		repo := NewCaptionMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized on conference",
		}))

		caption, err := repo.FindOne(context.Background(), key)

		assert.NotEqual(mt.T, nil, err)
		assert.Equal(mt.T, nil, caption)
	})

	mt.Run("create", func(mt *mtest.T) {
		repo := NewCaptionMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		caption := &model.Caption{
			Theme:    "Rooted",
			Audience: "Youth",
			Date:     "2025-06-01",
			Location: "Main Hall",
			Speakers: "Pastor A",
			Tone:     "joyful",
			Captions: []string{"1. Join us!"},
		}
		before := time.Now().UTC().Add(-time.Second)

		err := repo.Create(context.Background(), caption)

		assert.Equal(mt.T, nil, err)
		assert.Equal(mt.T, 24, len(caption.ID))
		assert.Equal(mt.T, true, caption.CreatedAt.After(before))
		assert.Equal(mt.T, caption.CreatedAt, caption.UpdatedAt)

		evt := mt.GetStartedEvent()
		assert.Equal(mt.T, "insert", evt.CommandName)

		doc := evt.Command.Lookup("documents").Array().Index(0).Value().Document()
		assert.Equal(mt.T, caption.ID, doc.Lookup("_id").ObjectID().Hex())
		assert.Equal(mt.T, "Pastor A", doc.Lookup("speakers").StringValue())
		_, err = doc.LookupErr("createdAt")
		assert.Equal(mt.T, nil, err)
		_, err = doc.LookupErr("updatedAt")
		assert.Equal(mt.T, nil, err)
	})

	mt.Run("create error", func(mt *mtest.T) {
		repo := NewCaptionMongoRepository(mt.DB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    121,
			Message: "Document failed validation",
		}))

		caption := &model.Caption{Theme: "Rooted", Captions: []string{"1. Join us!"}}
		err := repo.Create(context.Background(), caption)

		assert.NotEqual(mt.T, nil, err)
		assert.Equal(mt.T, "", caption.ID)
	})
}
