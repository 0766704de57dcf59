package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

var Mongo *mongo.Client

func ConnectMongo(ctx context.Context, uri string) error {
	opts := options.Client().
		ApplyURI(uri).
		SetMaxPoolSize(25).
		SetServerSelectionTimeout(10 * time.Second)

	var err error
	Mongo, err = mongo.Connect(ctx, opts)
	if err != nil {
		return err
	}

	return Mongo.Ping(ctx, readpref.Primary())
}

func CloseMongo() {
	if Mongo != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		Mongo.Disconnect(ctx)
	}
}
