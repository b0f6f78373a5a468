package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteError(rec, http.StatusNotFound, "NOT_FOUND", "product not found")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("content type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, `"code":"NOT_FOUND"`) || !strings.Contains(body, `"message":"product not found"`) {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestDecodeRejectsMalformedJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{nope"))

	var v struct{}
	if Decode(rec, req, &v) {
		t.Fatal("expected decode to fail")
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestDecodeAcceptsValidJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"Vase"}`))

	var v struct {
		Name string `json:"name"`
	}
	if !Decode(rec, req, &v) {
		t.Fatal("expected decode to succeed")
	}
	if v.Name != "Vase" {
		t.Fatalf("name = %q", v.Name)
	}
}
