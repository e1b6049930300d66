package news_test

import (
	"strings"
	"testing"
	"time"

	"github.com/newsdhq/newsd/internal/news"
	"github.com/stretchr/testify/require"
)

func validItem() news.Item {
	return news.Item{
		Title:    "Title",
		Body:     "Body text",
		Date:     news.NewDate(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
		Category: "Tech",
	}
}

func TestItemValidate(t *testing.T) {
	require.NoError(t, validItem().Validate())

	tests := []struct {
		name    string
		mutate  func(*news.Item)
		wantErr error
	}{
		{"empty title", func(item *news.Item) { item.Title = "" }, news.ErrTitleLength},
		{"title too long", func(item *news.Item) { item.Title = strings.Repeat("a", 256) }, news.ErrTitleLength},
		{"title at limit", func(item *news.Item) { item.Title = strings.Repeat("a", 255) }, nil},
		{"empty body", func(item *news.Item) { item.Body = "" }, news.ErrBodyEmpty},
		{"zero date", func(item *news.Item) { item.Date = news.Date{} }, news.ErrDateMissing},
		{"empty category", func(item *news.Item) { item.Category = "" }, news.ErrCategoryLength},
		{"category too long", func(item *news.Item) { item.Category = strings.Repeat("b", 101) }, news.ErrCategoryLength},
		{"category at limit", func(item *news.Item) { item.Category = strings.Repeat("b", 100) }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := validItem()
			tt.mutate(&item)

			err := item.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.wantErr)
				require.True(t, news.IsValidationErr(err))
			}
		})
	}
}
