package database

import (
	"context"
	"time"

	"github.com/travigo/revenue/pkg/registry"
	"github.com/travigo/revenue/pkg/revenue"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ServiceDocument struct {
	Name          string    `bson:"name"`
	DepartureDate time.Time `bson:"departuredate"`
	Stations      []string  `bson:"stations"`

	ModificationDateTime time.Time `bson:"modificationdatetime"`
}

type BookingDocument struct {
	Service     string  `bson:"service"`
	Origin      string  `bson:"origin"`
	Destination string  `bson:"destination"`
	SaleDayX    int     `bson:"saledayx"`
	Price       float64 `bson:"price"`

	Batch primitive.ObjectID `bson:"batch"`
}

func (b BookingDocument) Booking() registry.Booking {
	return registry.Booking{
		Service:     b.Service,
		Origin:      b.Origin,
		Destination: b.Destination,
		SaleDayX:    b.SaleDayX,
		Price:       b.Price,
	}
}

// SaveService upserts the service itinerary
func SaveService(ctx context.Context, collection *mongo.Collection, service *revenue.Service) error {
	document := ServiceDocument{
		Name:                 service.Name,
		DepartureDate:        service.DepartureDate,
		ModificationDateTime: time.Now(),
	}
	for _, station := range service.Itinerary() {
		document.Stations = append(document.Stations, station.Name)
	}

	_, err := collection.ReplaceOne(ctx, bson.M{"name": service.Name}, document, options.Replace().SetUpsert(true))

	return err
}

// SaveBookings replaces the stored bookings of the service with the passengers of its ODs.
// The new batch is inserted before the previous one is removed so a failed insert keeps the stored bookings.
func SaveBookings(ctx context.Context, collection *mongo.Collection, service *revenue.Service) (int, error) {
	batch := primitive.NewObjectID()

	var documents []interface{}

	for _, od := range service.ODs() {
		for _, passenger := range od.Passengers() {
			documents = append(documents, BookingDocument{
				Service:     service.Name,
				Origin:      od.Origin.Name,
				Destination: od.Destination.Name,
				SaleDayX:    passenger.SaleDayX,
				Price:       passenger.Price,
				Batch:       batch,
			})
		}
	}

	saved := 0
	if len(documents) > 0 {
		result, err := collection.InsertMany(ctx, documents)
		if err != nil {
			return 0, err
		}

		saved = len(result.InsertedIDs)
	}

	if _, err := collection.DeleteMany(ctx, bson.M{"service": service.Name, "batch": bson.M{"$ne": batch}}); err != nil {
		return saved, err
	}

	return saved, nil
}

func LoadBookings(ctx context.Context, collection *mongo.Collection, serviceName string) ([]registry.Booking, error) {
	cursor, err := collection.Find(ctx, bson.M{"service": serviceName})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var bookings []registry.Booking
	for cursor.Next(ctx) {
		var document BookingDocument
		if err := cursor.Decode(&document); err != nil {
			return nil, err
		}

		bookings = append(bookings, document.Booking())
	}

	return bookings, cursor.Err()
}
