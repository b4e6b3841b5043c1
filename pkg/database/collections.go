package database

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const ServicesCollection = "services"
const BookingsCollection = "bookings"

func createIndexes() {
	servicesCollection := GetCollection(ServicesCollection)
	_, err := servicesCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}

	bookingsCollection := GetCollection(BookingsCollection)
	_, err = bookingsCollection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "service", Value: 1}},
		},
		{
			Keys: bson.D{
				{Key: "service", Value: 1},
				{Key: "origin", Value: 1},
				{Key: "destination", Value: 1},
			},
		},
	}, options.CreateIndexes())
	if err != nil {
		log.Error().Err(err).Msg("Creating Index")
	}
}
