package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDaysBetween(t *testing.T) {
	today := time.Date(2024, time.March, 1, 23, 30, 0, 0, time.UTC)

	assert.Equal(t, 0, DaysBetween(today, time.Date(2024, time.March, 1, 1, 0, 0, 0, time.UTC)))
	assert.Equal(t, 7, DaysBetween(today, time.Date(2024, time.March, 8, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, -1, DaysBetween(today, time.Date(2024, time.February, 29, 12, 0, 0, 0, time.UTC)))
}

func TestParseDate(t *testing.T) {
	date, err := ParseDate("2024-03-08")
	require.NoError(t, err)
	assert.Equal(t, 2024, date.Year())
	assert.Equal(t, time.March, date.Month())
	assert.Equal(t, 8, date.Day())

	_, err = ParseDate("08/03/2024")
	assert.Error(t, err)
}

func TestInPlaceFilter(t *testing.T) {
	values := []int{1, 2, 3, 4, 5, 6}

	InPlaceFilter(&values, func(value int) bool {
		return value%2 == 0
	})

	assert.Equal(t, []int{2, 4, 6}, values)
}

func TestEnvironmentGet(t *testing.T) {
	t.Setenv("REVENUE_TEST_SET", "mongodb://db:27017/")
	t.Setenv("REVENUE_TEST_EMPTY", "")

	env := GetEnvironmentVariables()

	assert.Equal(t, "mongodb://db:27017/", env.Get("REVENUE_TEST_SET", "fallback"))
	assert.Equal(t, "fallback", env.Get("REVENUE_TEST_EMPTY", "fallback"))
	assert.Equal(t, "fallback", env.Get("REVENUE_TEST_UNSET", "fallback"))
}
