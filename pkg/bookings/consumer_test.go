package bookings

import (
	"testing"

	"github.com/adjust/rmq/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/revenue/pkg/manifest"
	"github.com/travigo/revenue/pkg/registry"
	"github.com/travigo/revenue/pkg/revenue"
)

func TestConsume(t *testing.T) {
	r := registry.New()
	require.NoError(t, r.Register(manifest.ServiceDefinition{
		Name:          "7601",
		DepartureDate: "2024-06-01",
		Stations:      []string{"ply", "lpd", "msc"},
	}))

	valid := []*rmq.TestDelivery{
		rmq.NewTestDeliveryString(`{"service":"7601","origin":"ply","destination":"lpd","sale_day_x":-30,"price":20}`),
		rmq.NewTestDeliveryString(`{"service":"7601","origin":"ply","destination":"msc","sale_day_x":-10,"price":50}`),
		rmq.NewTestDeliveryString(`{"service":"7601","origin":"msc","destination":"ply","sale_day_x":-10,"price":50}`),
	}
	garbage := rmq.NewTestDeliveryString(`{not json`)
	unknown := rmq.NewTestDeliveryString(`{"service":"0000","origin":"ply","destination":"lpd","sale_day_x":-1,"price":1}`)

	batch := rmq.Deliveries{valid[0], garbage, valid[1], unknown, valid[2]}

	NewBatchConsumer(r, nil).Consume(batch)

	for _, delivery := range valid {
		assert.Equal(t, rmq.Acked, delivery.State)
	}
	assert.Equal(t, rmq.Rejected, garbage.State)
	assert.Equal(t, rmq.Rejected, unknown.State)

	err := r.Read("7601", func(service *revenue.Service) error {
		assert.Len(t, service.Legs()[0].Passengers(), 2)
		assert.Len(t, service.Legs()[1].Passengers(), 1)
		return nil
	})
	require.NoError(t, err)
}

func TestPublish(t *testing.T) {
	connection := rmq.NewTestConnection()
	queue, err := connection.OpenQueue(QueueName)
	require.NoError(t, err)

	require.NoError(t, Publish(queue, registry.Booking{Service: "7601", Origin: "ply", Destination: "lpd", SaleDayX: -3, Price: 12.5}))

	assert.Equal(t, []string{`{"service":"7601","origin":"ply","destination":"lpd","sale_day_x":-3,"price":12.5}`}, connection.GetDeliveries(QueueName))
}
