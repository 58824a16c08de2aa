package report

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRenderHTMLSendsIndexFileAndPageSetup(t *testing.T) {
	var gotFile, gotPaperWidth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forms/chromium/convert/html" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if files := r.MultipartForm.File["files"]; len(files) == 1 {
			gotFile = files[0].Filename
		}
		gotPaperWidth = r.FormValue("paperWidth")
		_, _ = w.Write([]byte("%PDF-1.4"))
	}))
	defer srv.Close()

	pdf, err := NewClient(srv.URL).RenderHTML(context.Background(), "<html><body>Invoice</body></html>")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.HasPrefix(string(pdf), "%PDF") {
		t.Fatalf("unexpected payload: %q", pdf)
	}
	if gotFile != "index.html" {
		t.Fatalf("file name = %q, want index.html", gotFile)
	}
	if gotPaperWidth != "8.27" {
		t.Fatalf("paperWidth = %q, want 8.27", gotPaperWidth)
	}
}

func TestPingReportsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL).Ping(context.Background()); err == nil {
		t.Fatal("expected error for unhealthy service")
	}
}
