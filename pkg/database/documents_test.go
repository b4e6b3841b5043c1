package database

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/revenue/pkg/registry"
	"github.com/travigo/revenue/pkg/revenue"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func newService() *revenue.Service {
	ply := revenue.NewStation("ply")
	lpd := revenue.NewStation("lpd")
	msc := revenue.NewStation("msc")

	service := revenue.NewService("7601", time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	service.LoadItinerary([]*revenue.Station{ply, lpd, msc})
	service.LoadPassengerManifest([]*revenue.Passenger{
		revenue.NewPassenger(ply, lpd, -30, 20),
		revenue.NewPassenger(ply, msc, -10, 50),
	})

	return service
}

func TestSaveService(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("upsert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		require.NoError(mt, SaveService(context.Background(), mt.Coll, newService()))
	})

	mt.Run("write error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))

		assert.Error(mt, SaveService(context.Background(), mt.Coll, newService()))
	})
}

func TestSaveBookings(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("insert", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(), mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 1}))

		saved, err := SaveBookings(context.Background(), mt.Coll, newService())
		require.NoError(mt, err)
		assert.Equal(mt, 2, saved)

		commands := startedCommands(mt)
		assert.Equal(mt, []string{"insert", "delete"}, commands)
	})

	mt.Run("failed insert keeps stored bookings", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 11000, Message: "duplicate key"}))

		_, err := SaveBookings(context.Background(), mt.Coll, newService())
		assert.Error(mt, err)

		assert.NotContains(mt, startedCommands(mt), "delete")
	})

	mt.Run("nothing to insert", func(mt *mtest.T) {
		service := revenue.NewService("empty", time.Now())
		service.LoadItinerary([]*revenue.Station{revenue.NewStation("a"), revenue.NewStation("b")})
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		saved, err := SaveBookings(context.Background(), mt.Coll, service)
		require.NoError(mt, err)
		assert.Equal(mt, 0, saved)
	})
}

func TestLoadBookings(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("find", func(mt *mtest.T) {
		namespace := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, namespace, mtest.FirstBatch,
			bson.D{
				{Key: "service", Value: "7601"},
				{Key: "origin", Value: "ply"},
				{Key: "destination", Value: "lpd"},
				{Key: "saledayx", Value: -30},
				{Key: "price", Value: 20.0},
			},
			bson.D{
				{Key: "service", Value: "7601"},
				{Key: "origin", Value: "ply"},
				{Key: "destination", Value: "msc"},
				{Key: "saledayx", Value: -10},
				{Key: "price", Value: 50.0},
			},
		))

		bookings, err := LoadBookings(context.Background(), mt.Coll, "7601")
		require.NoError(mt, err)
		assert.Equal(mt, []registry.Booking{
			{Service: "7601", Origin: "ply", Destination: "lpd", SaleDayX: -30, Price: 20},
			{Service: "7601", Origin: "ply", Destination: "msc", SaleDayX: -10, Price: 50},
		}, bookings)
	})
}

func startedCommands(mt *mtest.T) []string {
	var commands []string
	for _, event := range mt.GetAllStartedEvents() {
		commands = append(commands, event.CommandName)
	}

	return commands
}
