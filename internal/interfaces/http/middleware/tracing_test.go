package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func tracedEngine(recorder *tracetest.SpanRecorder) *gin.Engine {
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	r := gin.New()
	r.Use(RequestID(), Tracing(TracingConfig{ServiceName: "growai-test", Enabled: true, TracerProvider: tp}), SpanEnricher())
	r.GET("/products/:id", func(c *gin.Context) {
		if c.Param("id") == "404" {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusOK)
	})
	return r
}

func attrValue(span sdktrace.ReadOnlySpan, key attribute.Key) string {
	for _, kv := range span.Attributes() {
		if kv.Key == key {
			return kv.Value.Emit()
		}
	}
	return ""
}

func TestTracing_SpanAttributes(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	r := tracedEngine(recorder)

	req := httptest.NewRequest(http.MethodGet, "/products/1", nil)
	req.Header.Set(RequestIDHeader, "req-t")
	req.Header.Set("Idempotency-Key", "sale-1")
	r.ServeHTTP(httptest.NewRecorder(), req)

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "req-t", attrValue(spans[0], "request_id"))
	assert.Equal(t, "sale-1", attrValue(spans[0], "idempotency_key"))
	assert.NotEqual(t, codes.Error, spans[0].Status().Code)
}

func TestTracing_ErrorStatus(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	r := tracedEngine(recorder)

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/products/404", nil))

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status().Code)
	assert.Equal(t, "404", attrValue(spans[0], "http.status_code"))
}

func TestTracing_Disabled(t *testing.T) {
	r := gin.New()
	r.Use(Tracing(TracingConfig{Enabled: false}), SpanEnricher())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
}
