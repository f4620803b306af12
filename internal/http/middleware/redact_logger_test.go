package middleware

import (
	"bufio"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func lastLogLine(t *testing.T, raw string) map[string]any {
	t.Helper()
	var last string
	sc := bufio.NewScanner(strings.NewReader(raw))
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) != "" {
			last = sc.Text()
		}
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(last), &m); err != nil {
		t.Fatalf("decode log line %q: %v", last, err)
	}
	return m
}

func TestRedact(t *testing.T) {
	cases := [][2]string{
		{"email=ana@hotel.com.br", "email=[REDACTED:email]"},
		{"card=4111 1111 1111 1111", "card=[REDACTED:card]"},
		{"cpf=123.456.789-09", "cpf=[REDACTED:doc]"},
		{"fone=11 9888-7777", "fone=[REDACTED:phone]"},
		{"id=123e4567-e89b-12d3-a456-426614174000", "id=[REDACTED:id]"},
		{"from=2025-03-01", "from=2025-03-01"},
		{"", ""},
	}
	for _, tc := range cases {
		in, want := tc[0], tc[1]
		if got := redact(in); got != want {
			t.Fatalf("redact(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestRedactingLogger_LevelsAndScrubbing(t *testing.T) {
	buf := captureLogger(t)
	r := gin.New()
	r.Use(RequestID(), RedactingLogger(RedactOptions{MaskHeaders: []string{" X-Api-Key "}}))
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/bad", func(c *gin.Context) { c.Status(http.StatusBadRequest) })
	r.GET("/down", func(c *gin.Context) { c.Status(http.StatusBadGateway) })

	req := httptest.NewRequest(http.MethodGet, "/ok?contact=ana@hotel.com", nil)
	req.Header.Set("Authorization", "Bearer tok-123")
	req.Header.Set("X-Api-Key", "k")
	req.Header.Set("X-Contact", "11 9888-7777")
	req.Header.Set(requestIDHeader, "rid-ok")
	r.ServeHTTP(httptest.NewRecorder(), req)

	line := lastLogLine(t, buf.String())
	if line["level"] != "info" || line["request_id"] != "rid-ok" || line["path"] != "/ok" || line["status"] != float64(200) {
		t.Fatalf("unexpected line: %v", line)
	}
	if line["query"] != "contact=[REDACTED:email]" {
		t.Fatalf("query not scrubbed: %v", line["query"])
	}
	headers := line["headers"].(map[string]any)
	if headers["Authorization"] != "[REDACTED]" || headers["X-Api-Key"] != "[REDACTED]" || headers["X-Contact"] != "[REDACTED:phone]" {
		t.Fatalf("headers not scrubbed: %v", headers)
	}
	if strings.Contains(buf.String(), "tok-123") {
		t.Fatal("token leaked to logs")
	}

	for path, level := range map[string]string{"/bad": "warn", "/down": "error"} {
		buf.Reset()
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
		if got := lastLogLine(t, buf.String())["level"]; got != level {
			t.Fatalf("%s logged at %v; want %s", path, got, level)
		}
	}
}
