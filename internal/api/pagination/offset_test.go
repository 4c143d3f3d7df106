package pagination

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDefaults(t *testing.T) {
	page, err := Parse(url.Values{})

	require.NoError(t, err)
	require.Equal(t, DefaultFrom, page.From)
	require.Equal(t, DefaultSize, page.Size)
}

func TestParseExplicitValues(t *testing.T) {
	values := url.Values{}
	values.Set("from", "40")
	values.Set("size", "20")

	page, err := Parse(values)

	require.NoError(t, err)
	require.Equal(t, 40, page.From)
	require.Equal(t, 20, page.Size)
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"negative from", "from", "-1"},
		{"non-numeric from", "from", "abc"},
		{"zero size", "size", "0"},
		{"negative size", "size", "-10"},
		{"oversized", "size", "1001"},
		{"non-numeric size", "size", "ten"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := url.Values{}
			values.Set(tt.key, tt.value)

			_, err := Parse(values)

			require.ErrorIs(t, err, ErrInvalidPage)
		})
	}
}
