package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestRequestLoggerRequestID(t *testing.T) {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()
	engine.Use(RequestLogger(zerolog.Nop()))
	engine.GET("/", func(gctx *gin.Context) {
		// The request-scoped logger must be reachable by handlers.
		require.NotNil(t, zerolog.Ctx(gctx.Request.Context()))
		gctx.Status(http.StatusOK)
	})

	t.Run("GeneratesID", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, "/", nil)
		require.NoError(t, err)

		recorder := httptest.NewRecorder()
		engine.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		require.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
	})

	t.Run("KeepsCallerID", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, "/", nil)
		require.NoError(t, err)
		req.Header.Set("X-Request-ID", "abc-123")

		recorder := httptest.NewRecorder()
		engine.ServeHTTP(recorder, req)

		require.Equal(t, http.StatusOK, recorder.Code)
		require.Empty(t, recorder.Header().Get("X-Request-ID"))
		require.Equal(t, "abc-123", req.Header.Get("X-Request-ID"))
	})
}
