package news_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/newsdhq/newsd/internal/news"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	parsed, errParse := news.ParseDate("2024-05-28")
	require.NoError(t, errParse)
	require.Equal(t, "2024-05-28", parsed.String())

	for _, bad := range []string{"", "28-05-2024", "2024-13-01", "2024-05-28T10:00:00Z", "yesterday"} {
		_, errBad := news.ParseDate(bad)
		require.ErrorIs(t, errBad, news.ErrInvalidDate, "expected %q to be rejected", bad)
	}
}

func TestDateJSONRoundTrip(t *testing.T) {
	date, errParse := news.ParseDate("2024-01-01")
	require.NoError(t, errParse)

	encoded, errMarshal := json.Marshal(date)
	require.NoError(t, errMarshal)
	require.JSONEq(t, `"2024-01-01"`, string(encoded))

	var decoded news.Date
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	require.Equal(t, date, decoded)

	var invalid news.Date
	require.ErrorIs(t, json.Unmarshal([]byte(`"01/01/2024"`), &invalid), news.ErrInvalidDate)
}

func TestNewDateTruncates(t *testing.T) {
	date := news.NewDate(time.Date(2024, 5, 28, 13, 37, 42, 99, time.UTC))
	require.Equal(t, "2024-05-28", date.String())
	require.Equal(t, 0, date.Hour())
}
