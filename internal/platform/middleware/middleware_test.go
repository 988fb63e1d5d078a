package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"msa-addon/internal/platform/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func TestAddonHeaders(t *testing.T) {
	h := AddonHeaders(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/meta/series/x.json", nil))

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("expected CORS header *, got %q", got)
	}
	if got := rec.Header().Get("Cache-Control"); got != AddonCacheControl {
		t.Errorf("expected Cache-Control %q, got %q", AddonCacheControl, got)
	}
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(RequestLogger(log))
	r.Get("/manifest.json", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.Write([]byte("abc"))
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/manifest.json", nil))

	out := buf.String()
	for _, want := range []string{`"path":"/manifest.json"`, `"status":418`, `"size":3`, `"request_id":"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log line missing %s: %s", want, out)
		}
	}
}

func TestRequestMetrics(t *testing.T) {
	m := metrics.New()

	r := chi.NewRouter()
	r.Use(RequestMetrics(m))
	r.Get("/ok", func(w http.ResponseWriter, r *http.Request) {})
	r.Get("/missing", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNotFound) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/ok", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))

	rec := httptest.NewRecorder()
	m.Handler(nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	if !strings.Contains(body, "addon_requests_total 2") {
		t.Errorf("expected 2 requests counted: %s", body)
	}
	if !strings.Contains(body, "addon_errors_total 1") {
		t.Errorf("expected 1 error counted: %s", body)
	}
}

// readerFromWriter is a ResponseWriter that, like net/http's, implements
// io.ReaderFrom.
type readerFromWriter struct {
	*httptest.ResponseRecorder
	usedReadFrom bool
}

func (w *readerFromWriter) ReadFrom(r io.Reader) (int64, error) {
	w.usedReadFrom = true
	return io.Copy(w.ResponseRecorder, r)
}

func TestStatusRecorder_ReadFrom(t *testing.T) {
	dst := &readerFromWriter{ResponseRecorder: httptest.NewRecorder()}
	wrap := &statusRecorder{ResponseWriter: dst, status: http.StatusOK}

	if _, ok := any(wrap).(io.ReaderFrom); !ok {
		t.Fatal("statusRecorder does not implement io.ReaderFrom")
	}

	// Hide strings.Reader's WriterTo so io.Copy takes the ReaderFrom path.
	src := struct{ io.Reader }{strings.NewReader("media bytes")}
	n, err := io.Copy(wrap, src)
	if err != nil {
		t.Fatalf("copy: %v", err)
	}
	if n != 11 || wrap.size != 11 {
		t.Errorf("expected 11 bytes copied and counted, got n=%d size=%d", n, wrap.size)
	}
	if !dst.usedReadFrom {
		t.Error("expected the wrapped writer's ReadFrom to be used")
	}
	if got := dst.Body.String(); got != "media bytes" {
		t.Errorf("unexpected body %q", got)
	}
}

func TestRequestLogger_counts_ReadFrom_bytes(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	h := RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.Copy(w, struct{ io.Reader }{strings.NewReader("0123456789")})
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/media/film/film.mkv", nil))

	if out := buf.String(); !strings.Contains(out, `"size":10`) {
		t.Errorf("log line missing size 10: %s", out)
	}
}
