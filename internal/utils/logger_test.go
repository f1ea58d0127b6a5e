package utils

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestLoggerMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name      string
		status    int
		requestID string
		wantLevel string
	}{
		{"success", http.StatusOK, "req-1", "INFO"},
		{"client error", http.StatusNotFound, "", "WARN"},
		{"server error", http.StatusInternalServerError, "req-3", "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewSlogLogger(slog.New(slog.NewJSONHandler(&buf, nil)))

			router := gin.New()
			router.Use(func(c *gin.Context) {
				if tt.requestID != "" {
					c.Set(requestIDContextKey, tt.requestID)
				}
				c.Next()
			})
			router.Use(ContextLogger(logger), LoggerMiddleware(logger))
			router.GET("/questions", func(c *gin.Context) { c.Status(tt.status) })

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/questions?page=2", nil))

			var entry map[string]any
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
			}
			if entry["level"] != tt.wantLevel {
				t.Errorf("level = %v, want %s", entry["level"], tt.wantLevel)
			}
			if entry["path"] != "/questions?page=2" {
				t.Errorf("path = %v", entry["path"])
			}
			if int(entry["status"].(float64)) != tt.status {
				t.Errorf("status = %v", entry["status"])
			}
			if got, _ := entry["request_id"].(string); got != tt.requestID {
				t.Errorf("request_id = %q, want %q", got, tt.requestID)
			}
		})
	}
}

func TestGetLogger_Fallback(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fallback := NewSlogLogger(nil)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if GetLogger(c, fallback) != fallback {
		t.Error("expected the fallback logger")
	}
}
