package events

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParsePublicFiltersDefaults(t *testing.T) {
	filters, err := ParsePublicFilters(url.Values{})

	require.NoError(t, err)
	require.Equal(t, SortEventDate, filters.Sort)
	require.Empty(t, filters.Text)
	require.Nil(t, filters.Paid)
	require.Nil(t, filters.RangeStart)
	require.Nil(t, filters.RangeEnd)
	require.False(t, filters.OnlyAvailable)
}

func TestParsePublicFiltersFull(t *testing.T) {
	values := url.Values{}
	values.Set("text", "  jazz concert ")
	values.Set("categories", "1,2,3")
	values.Set("paid", "true")
	values.Set("rangeStart", "2024-06-01 00:00:00")
	values.Set("rangeEnd", "2024-06-30 23:59:59")
	values.Set("onlyAvailable", "true")
	values.Set("sort", "views")

	filters, err := ParsePublicFilters(values)

	require.NoError(t, err)
	require.Equal(t, "jazz concert", filters.Text)
	require.Equal(t, []int64{1, 2, 3}, filters.Categories)
	require.NotNil(t, filters.Paid)
	require.True(t, *filters.Paid)
	require.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), *filters.RangeStart)
	require.True(t, filters.OnlyAvailable)
	require.Equal(t, SortViews, filters.Sort)
}

func TestParsePublicFiltersInvertedRange(t *testing.T) {
	values := url.Values{}
	values.Set("rangeStart", "2024-06-30 00:00:00")
	values.Set("rangeEnd", "2024-06-01 00:00:00")

	_, err := ParsePublicFilters(values)

	var fieldErr FieldError
	require.ErrorAs(t, err, &fieldErr)
	require.Equal(t, "rangeEnd", fieldErr.Field)
}

func TestParsePublicFiltersBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		field string
	}{
		{"bad paid", "paid", "maybe", "paid"},
		{"bad category id", "categories", "1,abc", "categories"},
		{"negative category id", "categories", "-5", "categories"},
		{"bad date", "rangeStart", "June 1st", "rangeStart"},
		{"bad sort", "sort", "RATING", "sort"},
		{"bad onlyAvailable", "onlyAvailable", "yes please", "onlyAvailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			values.Set(tt.key, tt.value)

			_, err := ParsePublicFilters(values)

			var fieldErr FieldError
			require.ErrorAs(t, err, &fieldErr)
			require.Equal(t, tt.field, fieldErr.Field)
		})
	}
}

func TestParseAdminFilters(t *testing.T) {
	values := url.Values{}
	values.Set("users", "1,2")
	values.Set("states", "pending,PUBLISHED")
	values.Set("categories", "7")
	values.Set("rangeStart", "2024-01-01 00:00:00")

	filters, err := ParseAdminFilters(values)

	require.NoError(t, err)
	require.Equal(t, []int64{1, 2}, filters.Users)
	require.Equal(t, []State{StatePending, StatePublished}, filters.States)
	require.Equal(t, []int64{7}, filters.Categories)
	require.NotNil(t, filters.RangeStart)
	require.Nil(t, filters.RangeEnd)
}

func TestParseAdminFiltersUnknownState(t *testing.T) {
	values := url.Values{}
	values.Set("states", "DRAFT")

	_, err := ParseAdminFilters(values)

	var fieldErr FieldError
	require.ErrorAs(t, err, &fieldErr)
	require.Equal(t, "states", fieldErr.Field)
}
