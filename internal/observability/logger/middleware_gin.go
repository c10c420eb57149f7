package logger

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	obscontext "github.com/smallbiznis/shiftcount/internal/observability/context"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const annotationsKey = "log_annotations"

// MiddlewareConfig controls request logging behavior.
type MiddlewareConfig struct {
	Debug           bool
	ErrorClassifier func(err error) (string, string)
}

// routeOps names the inventory operation behind each API route.
var routeOps = map[string]string{
	"GET /api/products":               "product.list",
	"POST /api/products":              "product.add",
	"GET /api/products/:id":           "product.get",
	"DELETE /api/products/:id":        "product.delete",
	"POST /api/products/:id/count":    "product.count",
	"PUT /api/products/:id/pack":      "product.pack",
	"POST /api/products/:id/complete": "product.complete",
	"POST /api/shift/reset":           "shift.reset",
	"GET /api/pack-sizes":             "shift.pack_sizes",
	"GET /api/report":                 "report.preview",
	"GET /api/report/csv":             "report.csv",
	"POST /api/report/deliver":        "report.deliver",
}

// Annotate attaches extra fields to the request log line written once the
// handler returns.
func Annotate(c *gin.Context, fields ...zap.Field) {
	existing, _ := c.Get(annotationsKey)
	prev, _ := existing.([]zap.Field)
	c.Set(annotationsKey, append(prev, fields...))
}

// GinMiddleware writes one log line per request, tagged with the inventory
// operation it served.
func GinMiddleware(cfg MiddlewareConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := requestIDFor(c)
		c.Request = c.Request.WithContext(obscontext.WithRequestID(c.Request.Context(), requestID))

		c.Next()

		route := c.FullPath()
		op := routeOps[c.Request.Method+" "+route]
		if route == "" {
			route = "unknown"
		}
		status := c.Writer.Status()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		}
		if op != "" {
			fields = append(fields, zap.String("op", op))
		}
		if id := c.Param("id"); id != "" {
			fields = append(fields, zap.String("product_id", id))
		}
		if extra, ok := c.Get(annotationsKey); ok {
			if annotations, ok := extra.([]zap.Field); ok {
				fields = append(fields, annotations...)
			}
		}
		if n := c.Writer.Size(); n > 0 {
			fields = append(fields, zap.Int("bytes_out", n))
		}

		var errorType string
		if lastErr := c.Errors.Last(); lastErr != nil {
			var errorCode string
			if cfg.ErrorClassifier != nil {
				errorType, errorCode = cfg.ErrorClassifier(lastErr.Err)
			}
			fields = append(fields, zap.String("error_type", errorType), zap.String("error_code", errorCode))
			if cfg.Debug {
				fields = append(fields, zap.Stack("stack"))
			}
		}

		logAt(FromContext(c.Request.Context()), requestLevel(route, op, status, errorType), fields)
	}
}

func requestIDFor(c *gin.Context) string {
	id := strings.TrimSpace(c.GetHeader("X-Request-Id"))
	if id == "" {
		id = uuid.NewString()
	}
	c.Set("request_id", id)
	c.Header("X-Request-Id", id)
	return id
}

// requestLevel keeps scrape traffic and rejected stepper taps out of the
// info stream.
func requestLevel(route, op string, status int, errorType string) zapcore.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zap.ErrorLevel
	case route == "/metrics" || route == "/health":
		return zap.DebugLevel
	case op == "product.count" && errorType == "validation_error":
		return zap.DebugLevel
	default:
		return zap.InfoLevel
	}
}

func logAt(log *zap.Logger, level zapcore.Level, fields []zap.Field) {
	if log == nil {
		return
	}
	if ce := log.Check(level, "http_request"); ce != nil {
		ce.Write(fields...)
	}
}
