package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/travigo/revenue/pkg/revenue"
)

func newService() *revenue.Service {
	ply := revenue.NewStation("ply")
	lpd := revenue.NewStation("lpd")
	msc := revenue.NewStation("msc")

	service := revenue.NewService("7601", time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC))
	service.LoadItinerary([]*revenue.Station{ply, lpd, msc})
	service.LoadPassengerManifest([]*revenue.Passenger{
		revenue.NewPassenger(ply, lpd, -30, 20),
		revenue.NewPassenger(ply, lpd, -25, 30),
		revenue.NewPassenger(ply, lpd, -20, 40),
		revenue.NewPassenger(ply, lpd, -20, 40),
		revenue.NewPassenger(ply, msc, -10, 50),
	})

	return service
}

func TestBuild(t *testing.T) {
	report, err := Build(newService(), Options{})
	require.NoError(t, err)

	assert.Equal(t, "7601", report.Service)
	assert.Equal(t, 5, report.Passengers)
	assert.Equal(t, 180.0, report.Revenue)

	require.Len(t, report.ODs, 3)
	assert.Equal(t, "ply", report.ODs[0].Origin)
	assert.Equal(t, "lpd", report.ODs[0].Destination)
	assert.Equal(t, "msc", report.ODs[1].Destination)
	assert.Equal(t, "lpd", report.ODs[2].Origin)

	plyLpd := report.OD("ply", "lpd")
	require.NotNil(t, plyLpd)
	assert.Equal(t, []revenue.HistoryRecord{
		{SaleDayX: -30, Count: 1, Revenue: 20},
		{SaleDayX: -25, Count: 1, Revenue: 30},
		{SaleDayX: -20, Count: 2, Revenue: 80},
	}, plyLpd.History)

	assert.Empty(t, report.OD("lpd", "msc").History)
	assert.Nil(t, report.OD("msc", "ply"))

	assert.Equal(t, []LegReport{
		{Origin: "ply", Destination: "lpd", Passengers: 5, Revenue: 180},
		{Origin: "lpd", Destination: "msc", Passengers: 1, Revenue: 50},
	}, report.Legs)
}

func TestBuildFilter(t *testing.T) {
	service := newService()

	report, err := Build(service, Options{Filter: "Price >= 40 && Origin == \"ply\""})
	require.NoError(t, err)

	assert.Equal(t, 3, report.Passengers)
	assert.Equal(t, []revenue.HistoryRecord{{SaleDayX: -20, Count: 2, Revenue: 80}}, report.OD("ply", "lpd").History)
	assert.Equal(t, 3, report.Legs[0].Passengers)

	// the service itself is untouched
	assert.Len(t, service.ODs()[0].Passengers(), 4)
}

func TestBuildHorizon(t *testing.T) {
	report, err := Build(newService(), Options{Horizon: "P25D"})
	require.NoError(t, err)

	assert.Equal(t, 4, report.Passengers)
	assert.Equal(t, -25, report.OD("ply", "lpd").History[0].SaleDayX)

	report, err = Build(newService(), Options{Horizon: "P1W", Filter: "SaleDayX > -30"})
	require.NoError(t, err)
	assert.Equal(t, 0, report.Passengers)
	assert.Equal(t, 0, report.Legs[1].Passengers)
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(newService(), Options{Filter: "Price +"})
	assert.Error(t, err)

	_, err = Build(newService(), Options{Filter: "Price"})
	assert.Error(t, err)

	_, err = Build(newService(), Options{Horizon: "thirty days"})
	assert.Error(t, err)
}
