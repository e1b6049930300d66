package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// KeyHeader builds the auth header map for mutating requests.
func KeyHeader(key string) map[string]string {
	return map[string]string{"X-API-Key": key}
}

func GetOK(t *testing.T, router http.Handler, path string, receiver ...any) {
	t.Helper()

	if len(receiver) > 0 {
		endpointWithReceiver(t, router, http.MethodGet, path, nil, http.StatusOK, nil, receiver[0])
	} else {
		endpoint(t, router, http.MethodGet, path, nil, http.StatusOK, nil)
	}
}

func GetNotFound(t *testing.T, router http.Handler, path string) {
	t.Helper()

	endpoint(t, router, http.MethodGet, path, nil, http.StatusNotFound, nil)
}

func GetBadRequest(t *testing.T, router http.Handler, path string) {
	t.Helper()

	endpoint(t, router, http.MethodGet, path, nil, http.StatusBadRequest, nil)
}

func PostCreated(t *testing.T, router http.Handler, path string, body any, headers map[string]string, receiver ...any) {
	t.Helper()

	if len(receiver) > 0 {
		endpointWithReceiver(t, router, http.MethodPost, path, body, http.StatusCreated, headers, receiver[0])
	} else {
		endpoint(t, router, http.MethodPost, path, body, http.StatusCreated, headers)
	}
}

func PostUnauthorized(t *testing.T, router http.Handler, path string, body any, headers map[string]string) {
	t.Helper()

	endpoint(t, router, http.MethodPost, path, body, http.StatusUnauthorized, headers)
}

func PostUnprocessable(t *testing.T, router http.Handler, path string, body any, headers map[string]string) {
	t.Helper()

	endpoint(t, router, http.MethodPost, path, body, http.StatusUnprocessableEntity, headers)
}

func PutOK(t *testing.T, router http.Handler, path string, body any, headers map[string]string, receiver ...any) {
	t.Helper()

	if len(receiver) > 0 {
		endpointWithReceiver(t, router, http.MethodPut, path, body, http.StatusOK, headers, receiver[0])
	} else {
		endpoint(t, router, http.MethodPut, path, body, http.StatusOK, headers)
	}
}

func PutNotFound(t *testing.T, router http.Handler, path string, body any, headers map[string]string) {
	t.Helper()

	endpoint(t, router, http.MethodPut, path, body, http.StatusNotFound, headers)
}

func PutUnprocessable(t *testing.T, router http.Handler, path string, body any, headers map[string]string) {
	t.Helper()

	endpoint(t, router, http.MethodPut, path, body, http.StatusUnprocessableEntity, headers)
}

func DeleteNoContent(t *testing.T, router http.Handler, path string, headers map[string]string) {
	t.Helper()

	resp := endpoint(t, router, http.MethodDelete, path, nil, http.StatusNoContent, headers)
	require.Empty(t, resp.Body.Bytes())
}

func DeleteNotFound(t *testing.T, router http.Handler, path string, headers map[string]string) {
	t.Helper()

	endpoint(t, router, http.MethodDelete, path, nil, http.StatusNotFound, headers)
}

func DeleteUnauthorized(t *testing.T, router http.Handler, path string, headers map[string]string) {
	t.Helper()

	endpoint(t, router, http.MethodDelete, path, nil, http.StatusUnauthorized, headers)
}

func endpointWithReceiver(t *testing.T, router http.Handler, method string,
	path string, body any, expectedStatus int, headers map[string]string, receiver any,
) {
	t.Helper()

	resp := endpoint(t, router, method, path, body, expectedStatus, headers)
	if receiver != nil {
		if err := json.NewDecoder(resp.Body).Decode(&receiver); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
	}
}

func endpoint(t *testing.T, router http.Handler, method string, path string, body any,
	expectedStatus int, headers map[string]string,
) *httptest.ResponseRecorder {
	t.Helper()

	reqCtx, cancel := context.WithTimeout(t.Context(), time.Second*10)
	defer cancel()

	recorder := httptest.NewRecorder()

	var bodyReader io.Reader
	if body != nil {
		bodyJSON, errJSON := json.Marshal(body)
		if errJSON != nil {
			t.Fatalf("Failed to encode request: %v", errJSON)
		}

		bodyReader = bytes.NewReader(bodyJSON)
	}

	request, errRequest := http.NewRequestWithContext(reqCtx, method, path, bodyReader)
	if errRequest != nil {
		t.Fatalf("Failed to make request: %v", errRequest)
	}

	for key, value := range headers {
		request.Header.Set(key, value)
	}

	router.ServeHTTP(recorder, request)

	require.Equal(t, expectedStatus, recorder.Code,
		"Received invalid response code. method: %s path: %s", method, path)

	return recorder
}
