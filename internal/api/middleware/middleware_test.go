package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"hybrid-sim/internal/logger"
)

type countingLogger struct {
	logger.NopLogger
	infos, warns, errors int
}

func (l *countingLogger) Infof(string, ...any)  { l.infos++ }
func (l *countingLogger) Warnf(string, ...any)  { l.warns++ }
func (l *countingLogger) Errorf(string, ...any) { l.errors++ }

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })
	r.GET("/panic-err", func(c *gin.Context) { panic(fmt.Errorf("wrapped")) })
	return r
}

func do(r http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestErrorHandlerRecoversPanics(t *testing.T) {
	log := &countingLogger{}
	r := newRouter(ErrorHandler(log))

	w := do(r, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":{"code":"INTERNAL_ERROR","message":"kaboom"}}`, w.Body.String())

	w = do(r, httptest.NewRequest(http.MethodGet, "/panic-err", nil))
	assert.Contains(t, w.Body.String(), "An unexpected error occurred")
	assert.Equal(t, 2, log.errors)
}

func TestLoggerLevels(t *testing.T) {
	log := &countingLogger{}
	r := newRouter(Logger(log))
	do(r, httptest.NewRequest(http.MethodGet, "/ok", nil))
	do(r, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, 1, log.infos)
	assert.Equal(t, 1, log.warns)
}

func TestCORS(t *testing.T) {
	r := newRouter(CORS([]string{"https://app.example"}))

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("Origin", "https://app.example")
	w := do(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = do(r, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/ok", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w = do(r, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}

func TestAllowedOriginsFromEnv(t *testing.T) {
	t.Setenv("CORS_ALLOWED_ORIGINS", "")
	assert.Equal(t, []string{"*"}, AllowedOriginsFromEnv())
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example, ,https://b.example")
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, AllowedOriginsFromEnv())
}
