package middleware

import (
	"bytes"
	"io"
	"mime"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"docmanager-api/internal/infrastructure/metrics"
)

const (
	maxLogBodySize = 1 << 12 // 4 KB

	requestsTotal = "app_requests_total"
)

var secretFieldRe = regexp.MustCompile(`(?i)("(?:password|newPassword|confirmPassword)"\s*:\s*)"(?:[^"\\]|\\.)*"`)

func RequestLogGin(logger *zap.Logger, mCounter *prometheus.CounterVec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions ||
			c.Request.URL.Path == "/favicon.ico" ||
			strings.HasSuffix(c.Request.URL.Path, "/metrics") ||
			strings.HasSuffix(c.Request.URL.Path, "/healthz") {
			c.Next()
			return
		}

		start := time.Now()

		var body string
		if c.Request.Body != nil {
			if isMultipart(c.GetHeader("Content-Type")) {
				body = "<multipart/form-data omitted>"
			} else {
				var buf bytes.Buffer
				_, _ = io.Copy(&buf, io.LimitReader(c.Request.Body, maxLogBodySize))
				c.Request.Body = struct {
					io.Reader
					io.Closer
				}{io.MultiReader(bytes.NewReader(buf.Bytes()), c.Request.Body), c.Request.Body}
				body = maskSecrets(buf.String())
			}
		}

		c.Next()

		metrics.Inc(mCounter, requestsTotal)

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("url", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("body", body),
			zap.String("client_ip", c.ClientIP()),
			zap.String("user_agent", c.Request.UserAgent()),
		}
		if id, ok := IdentityFrom(c); ok {
			fields = append(fields, zap.String("user_id", id.ID.String()))
		}

		logger.Info("HTTP request", fields...)
	}
}

// isMultipart matches the media type case-insensitively, as gin does when parsing the form.
func isMultipart(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "multipart/")
	}
	return strings.HasPrefix(mt, "multipart/")
}

func maskSecrets(body string) string {
	return secretFieldRe.ReplaceAllString(body, `$1"***"`)
}
