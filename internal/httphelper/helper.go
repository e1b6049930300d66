package httphelper

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// Authenticator gates access to mutating routes.
type Authenticator interface {
	Middleware() gin.HandlerFunc
}

// BindJSON decodes the request body into T. Validation failures are surfaced to the
// caller as a 422 problem+json response naming the failing fields, a malformed body
// is treated the same way. The caller should return without further action when
// false is returned.
func BindJSON[T any](ctx *gin.Context) (T, bool) { //nolint:ireturn
	var value T
	if err := ctx.ShouldBindJSON(&value); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			fields := make([]string, 0, len(validationErrs))
			for _, fieldErr := range validationErrs {
				fields = append(fields, fieldErr.Field())
			}

			SetError(ctx, NewAPIErrorf(http.StatusUnprocessableEntity, ErrValidation,
				"Invalid field(s): %s", strings.Join(fields, ", ")))
		} else {
			SetError(ctx, NewAPIError(http.StatusUnprocessableEntity, ErrValidation))
		}

		return value, false
	}

	return value, true
}

// GetIntParam reads a positive integer path parameter, responding with a 400 on
// missing or malformed values.
func GetIntParam(ctx *gin.Context, key string) (int, bool) {
	valueStr := ctx.Param(key)
	if valueStr == "" {
		SetError(ctx, NewAPIErrorf(http.StatusBadRequest, ErrParamKeyMissing,
			"Cannot read value for param: %s", key))

		return 0, false
	}

	value, valueErr := strconv.ParseInt(valueStr, 10, 32)
	if valueErr != nil {
		SetError(ctx, NewAPIErrorf(http.StatusBadRequest, errors.Join(valueErr, ErrParamParse),
			"Must be a valid integer: %s", key))

		return 0, false
	}

	if value <= 0 {
		SetError(ctx, NewAPIErrorf(http.StatusBadRequest, ErrParamInvalid,
			"Integer value must be positive: %s", key))

		return 0, false
	}

	return int(value), true
}

// NewServer wraps the handler in a http.Server with sane timeouts.
func NewServer(listenAddr string, handler http.Handler) *http.Server {
	httpServer := &http.Server{
		Addr:           listenAddr,
		Handler:        handler,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   120 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return httpServer
}
