package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	wirefmt "github.com/reoring/wirefmt"
	"github.com/reoring/wirefmt/middleware"
)

func hardened(t *testing.T, inner http.HandlerFunc, opts ...wirefmt.ReadOpt) http.Handler {
	t.Helper()
	return middleware.Harden(inner, opts...)
}

func TestHarden_ValidJSONReachesHandler(t *testing.T) {
	var seen *wirefmt.Document
	h := hardened(t, func(rw http.ResponseWriter, req *http.Request) {
		doc, ok := middleware.DocumentFromContext(req.Context())
		if !ok {
			t.Fatalf("document missing from context")
		}
		seen = doc
		rw.WriteHeader(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"value":1.50}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
	}
	if seen == nil || seen.Root.Child("value").Value != "1.50" {
		t.Fatalf("handler saw wrong tree: %+v", seen)
	}
}

func TestHarden_BodyStillReadableByHandler(t *testing.T) {
	h := hardened(t, func(rw http.ResponseWriter, req *http.Request) {
		b := make([]byte, 16)
		n, _ := req.Body.Read(b)
		if string(b[:n]) != `{"a":1}` {
			t.Fatalf("handler body = %q", b[:n])
		}
	})
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"a":1}`))
	h.ServeHTTP(httptest.NewRecorder(), req)
}

func TestHarden_DoctypeRejected(t *testing.T) {
	h := hardened(t, func(rw http.ResponseWriter, req *http.Request) {
		t.Fatalf("handler must not run for rejected bodies")
	})
	body := `<!DOCTYPE foo [<!ENTITY x "y">]><foo>&x;</foo>`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "security_rejected") {
		t.Fatalf("payload missing rejection code: %s", rec.Body)
	}
}

func TestHarden_UnrecognizedBody(t *testing.T) {
	h := hardened(t, func(rw http.ResponseWriter, req *http.Request) {
		t.Fatalf("handler must not run")
	})
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("plain text"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestHarden_OversizeBody(t *testing.T) {
	h := hardened(t, func(rw http.ResponseWriter, req *http.Request) {
		t.Fatalf("handler must not run")
	}, wirefmt.ReadOpt{MaxBytes: 32})
	body := `{"padding":"` + strings.Repeat("x", 64) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "truncated") {
		t.Fatalf("payload = %s", rec.Body)
	}
}

func TestHarden_EmptyBodyPassesThrough(t *testing.T) {
	ran := false
	h := hardened(t, func(rw http.ResponseWriter, req *http.Request) { ran = true })
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	h.ServeHTTP(httptest.NewRecorder(), req)
	if !ran {
		t.Fatalf("bodyless request must reach the handler")
	}
}

func TestDetectFormat(t *testing.T) {
	if f, ok := middleware.DetectFormat([]byte("  <a/>")); !ok || f != wirefmt.FormatXML {
		t.Fatalf("markup probe failed: %v %v", f, ok)
	}
	if f, ok := middleware.DetectFormat([]byte("\n{\"a\":1}")); !ok || f != wirefmt.FormatJSON {
		t.Fatalf("object probe failed: %v %v", f, ok)
	}
	if _, ok := middleware.DetectFormat([]byte("hello")); ok {
		t.Fatalf("plain text must not probe")
	}
}
