package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// recordingLogger captures log calls so middleware tests can assert on them.
type recordingLogger struct {
	infos  []string
	errs   []string
	fields [][]interface{}
}

func (l *recordingLogger) Info(msg string, fields ...interface{}) {
	l.infos = append(l.infos, msg)
	l.fields = append(l.fields, fields)
}

func (l *recordingLogger) Error(msg string, err error, fields ...interface{}) {
	l.errs = append(l.errs, msg)
}

func (l *recordingLogger) Debug(msg string, fields ...interface{}) {}
func (l *recordingLogger) Warn(msg string, fields ...interface{})  {}

func (l *recordingLogger) loggedField(key string) (interface{}, bool) {
	for _, fields := range l.fields {
		for i := 0; i+1 < len(fields); i += 2 {
			if fields[i] == key {
				return fields[i+1], true
			}
		}
	}
	return nil, false
}

func TestRequestIDMiddleware(t *testing.T) {
	var seen string
	h := RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := GetRequestIDFromContext(r)
		if !ok || id == "" {
			t.Fatal("expected request id in context")
		}
		seen = id
		w.WriteHeader(http.StatusNoContent)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rr.Header().Get("X-Request-ID"); got == "" || got != seen {
		t.Fatalf("expected response header to carry the request id, got %q", got)
	}

	rr2 := httptest.NewRecorder()
	h.ServeHTTP(rr2, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr2.Header().Get("X-Request-ID") == seen {
		t.Fatal("expected a fresh request id per request")
	}
}

func TestLoggingMiddleware_RecordsStatus(t *testing.T) {
	logger := &recordingLogger{}
	h := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	if len(logger.infos) != 1 || logger.infos[0] != "Request handled" {
		t.Fatalf("unexpected log messages %v", logger.infos)
	}
	status, ok := logger.loggedField("status")
	if !ok || status != http.StatusTeapot {
		t.Errorf("expected status %d logged, got %v", http.StatusTeapot, status)
	}
	if path, _ := logger.loggedField("path"); path != "/health" {
		t.Errorf("expected path logged, got %v", path)
	}
}

func TestLoggingMiddleware_DefaultStatus(t *testing.T) {
	logger := &recordingLogger{}
	h := LoggingMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if status, _ := logger.loggedField("status"); status != http.StatusOK {
		t.Errorf("expected implicit 200 logged, got %v", status)
	}
}

func TestRecoveryMiddleware_Panic(t *testing.T) {
	logger := &recordingLogger{}
	h := RecoveryMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("expected status %d, got %d", http.StatusInternalServerError, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Internal server error") {
		t.Fatalf("unexpected response body: %s", rr.Body.String())
	}
	if len(logger.errs) != 1 || logger.errs[0] != "Handler panic recovered" {
		t.Fatalf("unexpected error logs %v", logger.errs)
	}
}

func TestRecoveryMiddleware_Passthrough(t *testing.T) {
	logger := &recordingLogger{}
	h := RecoveryMiddleware(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status %d, got %d", http.StatusCreated, rr.Code)
	}
	if len(logger.errs) != 0 {
		t.Errorf("unexpected error logs %v", logger.errs)
	}
}
