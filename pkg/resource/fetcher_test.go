package resource

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

func TestIsDataURI(t *testing.T) {
	if !IsDataURI("data:image/png;base64,abc") {
		t.Error("expected true for data URI")
	}
	if !IsDataURI("DATA:text/plain,x") {
		t.Error("expected scheme to be case insensitive")
	}
	if IsDataURI("/path/to/file.png") {
		t.Error("expected false for file path")
	}
	if IsDataURI("") {
		t.Error("expected false for empty string")
	}
}

func TestDecodeDataURI(t *testing.T) {
	data, ct, err := DecodeDataURI("data:text/plain;base64,aGVsbG8=")
	if err != nil || string(data) != "hello" || ct != "text/plain" {
		t.Errorf("unexpected result %q %q %v", data, ct, err)
	}
	data, ct, err = DecodeDataURI("data:,a%20b")
	if err != nil || string(data) != "a b" || ct != "text/plain" {
		t.Errorf("unexpected result %q %q %v", data, ct, err)
	}
	if _, _, err := DecodeDataURI("data:image/png;base64"); err == nil {
		t.Error("expected error for missing comma")
	}
}

func TestFetch_File(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}
	f := NewFetcher(dir)
	body, _, err := f.Fetch(context.Background(), "a.txt")
	if err != nil || string(body) != "content" {
		t.Errorf("unexpected result %q %v", body, err)
	}
	if _, _, err := f.Fetch(context.Background(), "missing.txt"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFetch_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/img/a.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		fmt.Fprint(w, "png")
	}))
	defer srv.Close()

	f := NewFetcher(srv.URL + "/img/")
	body, ct, err := f.Fetch(context.Background(), "a.png")
	if err != nil || string(body) != "png" || ct != "image/png" {
		t.Errorf("unexpected result %q %q %v", body, ct, err)
	}
	if _, _, err := f.Fetch(context.Background(), "b.png"); err == nil {
		t.Error("expected error for 404")
	}
	if _, _, err := f.Fetch(context.Background(), "/etc/passwd"); err == nil {
		t.Error("expected network base to refuse local files")
	}
}
