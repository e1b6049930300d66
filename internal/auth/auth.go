// Package auth implements the static shared-secret check gating mutating
// operations. There are no roles, tokens or sessions, a caller either presents
// the configured key verbatim or is rejected.
package auth

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/newsdhq/newsd/internal/httphelper"
)

// HeaderKey is the request header carrying the shared secret.
const HeaderKey = "X-API-Key"

type Authentication struct {
	key string
}

func NewAuthentication(key string) *Authentication {
	return &Authentication{key: key}
}

// Middleware rejects any request that does not carry the exact configured key.
// It runs before payload binding and any store access, so an unauthorized
// request never touches either.
func (a *Authentication) Middleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		provided := ctx.GetHeader(HeaderKey)
		if subtle.ConstantTimeCompare([]byte(provided), []byte(a.key)) != 1 {
			ctx.Header("WWW-Authenticate", "API-Key")
			httphelper.SetError(ctx, httphelper.NewAPIError(http.StatusUnauthorized, httphelper.ErrUnauthorized))
			ctx.Abort()

			return
		}

		ctx.Next()
	}
}
