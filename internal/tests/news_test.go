package tests

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/newsdhq/newsd/internal/news"
	"github.com/newsdhq/newsd/pkg/stringutil"
	"github.com/stretchr/testify/require"
)

func newEditRequest() news.EditRequest {
	return news.EditRequest{
		Title:    stringutil.SecureRandomString(10),
		Body:     stringutil.SecureRandomString(200),
		Date:     "2024-01-01",
		Category: stringutil.SecureRandomString(8),
	}
}

func listItems(t *testing.T, router http.Handler) []news.Item {
	t.Helper()

	var items []news.Item
	GetOK(t, router, "/items", &items)

	return items
}

func TestItemsCRUD(t *testing.T) {
	fixture.Reset(t.Context())

	router := fixture.CreateRouter()

	require.Empty(t, listItems(t, router))

	req := newEditRequest()

	var created news.Item
	PostCreated(t, router, "/items", req, KeyHeader(APIKey), &created)
	require.Positive(t, created.ItemID)
	require.Equal(t, req.Title, created.Title)
	require.Equal(t, req.Body, created.Body)
	require.Equal(t, req.Date, created.Date.String())
	require.Equal(t, req.Category, created.Category)

	// Round-trip, reads are public
	var fetched news.Item
	GetOK(t, router, fmt.Sprintf("/items/%d", created.ItemID), &fetched)
	require.Equal(t, created, fetched)

	require.Len(t, listItems(t, router), 1)

	// Full replacement of every non-id field
	updateReq := newEditRequest()
	updateReq.Date = "2024-05-30"

	var updated news.Item
	PutOK(t, router, fmt.Sprintf("/items/%d", created.ItemID), updateReq, KeyHeader(APIKey), &updated)
	require.Equal(t, created.ItemID, updated.ItemID)
	require.Equal(t, updateReq.Title, updated.Title)
	require.Equal(t, updateReq.Body, updated.Body)
	require.Equal(t, updateReq.Date, updated.Date.String())
	require.Equal(t, updateReq.Category, updated.Category)

	GetOK(t, router, fmt.Sprintf("/items/%d", created.ItemID), &fetched)
	require.Equal(t, updated, fetched)

	DeleteNoContent(t, router, fmt.Sprintf("/items/%d", created.ItemID), KeyHeader(APIKey))

	GetNotFound(t, router, fmt.Sprintf("/items/%d", created.ItemID))
	require.Empty(t, listItems(t, router))
}

func TestItemsNotFound(t *testing.T) {
	fixture.Reset(t.Context())

	router := fixture.CreateRouter()

	const missing = "/items/99999"

	GetNotFound(t, router, missing)
	PutNotFound(t, router, missing, newEditRequest(), KeyHeader(APIKey))
	DeleteNotFound(t, router, missing, KeyHeader(APIKey))

	// Failed update/delete must not alter the store
	require.Empty(t, listItems(t, router))
}

func TestItemsMalformedID(t *testing.T) {
	router := fixture.CreateRouter()

	GetBadRequest(t, router, "/items/not-a-number")
	GetBadRequest(t, router, "/items/0")
	GetBadRequest(t, router, "/items/-1")
}

func TestItemsAuth(t *testing.T) {
	fixture.Reset(t.Context())

	router := fixture.CreateRouter()

	req := newEditRequest()

	// Missing and wrong keys are rejected before the store is touched,
	// payload validity does not matter.
	PostUnauthorized(t, router, "/items", req, nil)
	PostUnauthorized(t, router, "/items", req, KeyHeader("wrong-key"))
	require.Empty(t, listItems(t, router))

	var created news.Item
	PostCreated(t, router, "/items", req, KeyHeader(APIKey), &created)

	DeleteUnauthorized(t, router, fmt.Sprintf("/items/%d", created.ItemID), KeyHeader("wrong-key"))

	// The record survives the rejected delete untouched
	var fetched news.Item
	GetOK(t, router, fmt.Sprintf("/items/%d", created.ItemID), &fetched)
	require.Equal(t, created, fetched)
}

func TestItemsValidation(t *testing.T) {
	fixture.Reset(t.Context())

	router := fixture.CreateRouter()

	valid := newEditRequest()

	emptyTitle := valid
	emptyTitle.Title = ""
	PostUnprocessable(t, router, "/items", emptyTitle, KeyHeader(APIKey))

	longTitle := valid
	for len(longTitle.Title) <= 255 {
		longTitle.Title += stringutil.SecureRandomString(32)
	}
	PostUnprocessable(t, router, "/items", longTitle, KeyHeader(APIKey))

	emptyBody := valid
	emptyBody.Body = ""
	PostUnprocessable(t, router, "/items", emptyBody, KeyHeader(APIKey))

	badDate := valid
	badDate.Date = "28-05-2024"
	PostUnprocessable(t, router, "/items", badDate, KeyHeader(APIKey))

	noCategory := valid
	noCategory.Category = ""
	PostUnprocessable(t, router, "/items", noCategory, KeyHeader(APIKey))

	// Nothing invalid ever reached the store
	require.Empty(t, listItems(t, router))

	var created news.Item
	PostCreated(t, router, "/items", valid, KeyHeader(APIKey), &created)

	// Replacement payloads get the same checks
	PutUnprocessable(t, router, fmt.Sprintf("/items/%d", created.ItemID), emptyTitle, KeyHeader(APIKey))

	var fetched news.Item
	GetOK(t, router, fmt.Sprintf("/items/%d", created.ItemID), &fetched)
	require.Equal(t, created, fetched)
}

func TestItemsListCardinality(t *testing.T) {
	fixture.Reset(t.Context())

	router := fixture.CreateRouter()

	var created []news.Item

	for range 5 {
		var item news.Item
		PostCreated(t, router, "/items", newEditRequest(), KeyHeader(APIKey), &item)
		created = append(created, item)
	}

	for _, item := range created[:2] {
		DeleteNoContent(t, router, fmt.Sprintf("/items/%d", item.ItemID), KeyHeader(APIKey))
	}

	items := listItems(t, router)
	require.Len(t, items, 3)

	// Ascending id order
	for i := 1; i < len(items); i++ {
		require.Greater(t, items[i].ItemID, items[i-1].ItemID)
	}
}
