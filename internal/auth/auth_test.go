package auth_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/newsdhq/newsd/internal/auth"
	"github.com/newsdhq/newsd/internal/httphelper"
	"github.com/stretchr/testify/require"
)

func testRouter(key string) *gin.Engine {
	router := httphelper.CreateRouter(httphelper.RouterOpts{Mode: gin.TestMode})

	authed := router.Group("/", auth.NewAuthentication(key).Middleware())
	authed.POST("/protected", func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	router.GET("/public", func(ctx *gin.Context) {
		ctx.Status(http.StatusOK)
	})

	return router
}

func doRequest(t *testing.T, router http.Handler, method string, path string, key string) *httptest.ResponseRecorder {
	t.Helper()

	request, errRequest := http.NewRequestWithContext(t.Context(), method, path, nil)
	require.NoError(t, errRequest)

	if key != "" {
		request.Header.Set(auth.HeaderKey, key)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	return recorder
}

func TestMiddleware(t *testing.T) {
	const secret = "super-secret"

	router := testRouter(secret)

	// Correct key passes through
	okResp := doRequest(t, router, http.MethodPost, "/protected", secret)
	require.Equal(t, http.StatusOK, okResp.Code)

	// Missing key is rejected with a challenge
	missingResp := doRequest(t, router, http.MethodPost, "/protected", "")
	require.Equal(t, http.StatusUnauthorized, missingResp.Code)
	require.Equal(t, "API-Key", missingResp.Header().Get("WWW-Authenticate"))
	require.Equal(t, "application/problem+json", missingResp.Header().Get("Content-Type"))

	// Wrong key is rejected, the comparison is exact
	wrongResp := doRequest(t, router, http.MethodPost, "/protected", secret+"x")
	require.Equal(t, http.StatusUnauthorized, wrongResp.Code)

	caseResp := doRequest(t, router, http.MethodPost, "/protected", "SUPER-SECRET")
	require.Equal(t, http.StatusUnauthorized, caseResp.Code)

	// Read routes are never gated
	publicResp := doRequest(t, router, http.MethodGet, "/public", "")
	require.Equal(t, http.StatusOK, publicResp.Code)
}
