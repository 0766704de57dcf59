package repository

import (
	"context"
	"errors"
	"time"

	"conferencecaptions/internal/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const CaptionCollection = "captions"

type captionDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Theme     string             `bson:"theme"`
	Audience  string             `bson:"audience"`
	Date      string             `bson:"date"`
	Location  string             `bson:"location"`
	Speakers  string             `bson:"speakers"`
	Tone      string             `bson:"tone"`
	Captions  []string           `bson:"captions"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d captionDocument) toModel() *model.Caption {
	return &model.Caption{
		ID:        d.ID.Hex(),
		Theme:     d.Theme,
		Audience:  d.Audience,
		Date:      d.Date,
		Location:  d.Location,
		Speakers:  d.Speakers,
		Tone:      d.Tone,
		Captions:  d.Captions,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

type CaptionMongoRepository struct {
	db         *mongo.Database
	collection *mongo.Collection
}

func NewCaptionMongoRepository(db *mongo.Database) *CaptionMongoRepository {
	return &CaptionMongoRepository{
		db:         db,
		collection: db.Collection(CaptionCollection),
	}
}

func keyFilter(key model.CaptionKey) bson.M {
	return bson.M{
		"theme":    key.Theme,
		"audience": key.Audience,
		"date":     key.Date,
		"tone":     key.Tone,
	}
}

func (r *CaptionMongoRepository) FindOne(ctx context.Context, key model.CaptionKey) (*model.Caption, error) {
	var doc captionDocument
	err := r.collection.FindOne(ctx, keyFilter(key)).Decode(&doc)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}

	if err != nil {
		return nil, err
	}

	return doc.toModel(), nil
}

func (r *CaptionMongoRepository) Create(ctx context.Context, caption *model.Caption) error {
	now := time.Now().UTC()
	doc := captionDocument{
		ID:        primitive.NewObjectID(),
		Theme:     caption.Theme,
		Audience:  caption.Audience,
		Date:      caption.Date,
		Location:  caption.Location,
		Speakers:  caption.Speakers,
		Tone:      caption.Tone,
		Captions:  caption.Captions,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return err
	}

	caption.ID = doc.ID.Hex()
	caption.CreatedAt = now
	caption.UpdatedAt = now
	return nil
}

func (r *CaptionMongoRepository) Ping(ctx context.Context) error {
	return r.db.Client().Ping(ctx, readpref.Primary())
}
