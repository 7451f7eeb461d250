package log

import (
	"bytes"
	"context"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestAccessLogUsesContextLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Component: ComponentHTTP,
		Handler:   slog.NewTextHandler(&buf, nil),
	})
	ctx := context.WithValue(context.Background(),
		LoggerContextKey, logger.With(FieldRequestID, "req_test"))

	r := httptest.NewRequest("GET", "/api/bills?status=Pending", nil)
	AccessLog(ctx, r, 200, 12, "10.0.0.1")

	out := buf.String()
	for _, want := range []string{
		"request_id=req_test",
		"path=/api/bills",
		"status_code=200",
		"client_ip=10.0.0.1",
		"success=true",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("access log missing %q: %s", want, out)
		}
	}
}

func TestAccessLogLevelTracksStatus(t *testing.T) {
	cases := []struct {
		status int
		level  string
	}{
		{200, "level=INFO"},
		{404, "level=WARN"},
		{500, "level=ERROR"},
	}
	for _, tc := range cases {
		var buf bytes.Buffer
		logger := New(Config{Handler: slog.NewTextHandler(&buf, nil)})
		ctx := context.WithValue(context.Background(), LoggerContextKey, logger)

		AccessLog(ctx, httptest.NewRequest("GET", "/x", nil), tc.status, 1, "10.0.0.1")
		if !strings.Contains(buf.String(), tc.level) {
			t.Errorf("status %d: want %s in %q", tc.status, tc.level, buf.String())
		}
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	logger := FromContext(context.Background())
	if logger == nil || logger.Logger == nil {
		t.Fatal("expected a usable fallback logger")
	}
	if logger.Component() != ComponentApp {
		t.Errorf("fallback component = %q, want %q", logger.Component(), ComponentApp)
	}
}
