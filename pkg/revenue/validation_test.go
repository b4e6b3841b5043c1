package revenue

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateItinerary(t *testing.T) {
	a := NewStation("a")
	b := NewStation("b")

	assert.NoError(t, ValidateItinerary([]*Station{a, b}))
	assert.NoError(t, ValidateItinerary([]*Station{a, b, NewStation("a")}))

	for name, itinerary := range map[string][]*Station{
		"empty":     {},
		"single":    {a},
		"duplicate": {a, b, a},
		"nil":       {a, nil},
	} {
		err := ValidateItinerary(itinerary)

		var validationError *ValidationError
		require.True(t, errors.As(err, &validationError), name)
		assert.Equal(t, "itinerary", validationError.Field, name)
	}
}

func TestValidatePassenger(t *testing.T) {
	a := NewStation("a")
	b := NewStation("b")

	assert.NoError(t, ValidatePassenger(NewPassenger(a, b, -3, 0)))

	var validationError *ValidationError
	require.ErrorAs(t, ValidatePassenger(NewPassenger(a, b, -3, -1)), &validationError)
	assert.Equal(t, "price", validationError.Field)

	require.ErrorAs(t, ValidatePassenger(NewPassenger(a, a, -3, 1)), &validationError)
	assert.Equal(t, "destination", validationError.Field)
	assert.Equal(t, "invalid destination: same as origin", validationError.Error())
}

func TestValidationDoesNotChangeLoading(t *testing.T) {
	a := NewStation("a")
	service := NewService("lenient", newFixture().service.DepartureDate)

	require.Error(t, ValidateItinerary([]*Station{a}))
	service.LoadItinerary([]*Station{a})
	assert.Empty(t, service.ODs())
}
