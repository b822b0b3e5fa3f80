package logging

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNewRejectsUnknownLevel(t *testing.T) {
	if _, err := New("chatty", "json", &bytes.Buffer{}); err == nil {
		t.Error("Expected error for unknown level")
	}
}

func TestMiddlewareLogsRequest(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("info", "json", &buf)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(logger))
	r.GET("/users", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	req, _ := http.NewRequest("GET", "/users", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Header().Get(RequestIDHeader) != "abc-123" {
		t.Errorf("Expected request id to be echoed, got %q", resp.Header().Get(RequestIDHeader))
	}

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected one JSON log line, got %q: %v", buf.String(), err)
	}
	if entry["path"] != "/users" || entry["method"] != "GET" {
		t.Errorf("Unexpected log entry: %v", entry)
	}
	if entry["status"] != float64(http.StatusOK) {
		t.Errorf("Expected status 200 in log, got %v", entry["status"])
	}
	if entry["request_id"] != "abc-123" {
		t.Errorf("Expected request id in log, got %v", entry["request_id"])
	}
}

func TestMiddlewareGeneratesRequestID(t *testing.T) {
	logger, _ := New("info", "json", &bytes.Buffer{})

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware(logger))
	r.GET("/", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req, _ := http.NewRequest("GET", "/", nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Header().Get(RequestIDHeader) == "" {
		t.Error("Expected a generated request id")
	}
}
