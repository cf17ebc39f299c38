package loader_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-schemaform/internal/loader"
	"github.com/goliatone/go-schemaform/pkg/schema"
)

const payload = `{"type":"object","properties":{"name":{"type":"string"}}}`

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "contact.json")
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	l := loader.New(schema.NewLoaderOptions())
	doc, err := l.Load(context.Background(), schema.SourceFromFile(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != payload {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}
	if doc.Location() != path {
		t.Fatalf("unexpected location %q", doc.Location())
	}
}

func TestLoadFromFS(t *testing.T) {
	files := fstest.MapFS{"schemas/contact.json": {Data: []byte(payload)}}
	l := loader.New(schema.NewLoaderOptions(schema.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), schema.SourceFromFS("schemas/contact.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	node, err := doc.Node()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, ok := node.Property("name"); !ok {
		t.Fatalf("expected name property")
	}
}

func TestLoadFromFSRequiresFileSystem(t *testing.T) {
	l := loader.New(schema.NewLoaderOptions())
	if _, err := l.Load(context.Background(), schema.SourceFromFS("contact.json")); err == nil {
		t.Fatalf("expected error without fs")
	}
}

func TestLoadHTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/contact.json" {
			http.NotFound(w, r)
			return
		}
		if !strings.Contains(r.Header.Get("Accept"), "application/schema+json") {
			http.Error(w, "missing accept header", http.StatusNotAcceptable)
			return
		}
		w.Header().Set("Content-Type", "application/schema+json")
		_, _ = w.Write([]byte(payload))
	}))
	defer server.Close()

	l := loader.New(schema.NewLoaderOptions(schema.WithHTTPClient(server.Client())))
	doc, err := l.Load(context.Background(), schema.SourceFromURL(server.URL+"/contact.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != payload {
		t.Fatalf("unexpected payload %q", doc.Raw())
	}

	if _, err := l.Load(context.Background(), schema.SourceFromURL(server.URL+"/missing.json")); err == nil {
		t.Fatalf("expected error for 404")
	}
}

func TestLoadHTTPDisabledByDefault(t *testing.T) {
	l := loader.New(schema.NewLoaderOptions())
	if _, err := l.Load(context.Background(), schema.SourceFromURL("http://example.com/schema.json")); err == nil {
		t.Fatalf("expected http to be disabled")
	}
}

func TestLoadHonoursCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	files := fstest.MapFS{"contact.json": {Data: []byte(payload)}}
	l := loader.New(schema.NewLoaderOptions(schema.WithFileSystem(files)))
	if _, err := l.Load(ctx, schema.SourceFromFS("contact.json")); err == nil {
		t.Fatalf("expected canceled context error")
	}
}

func TestLoadNodeWrapsParseErrorsWithLocation(t *testing.T) {
	files := fstest.MapFS{
		"good.json":   {Data: []byte(`{"type":"object","properties":{"b":{},"a":{}}}`)},
		"broken.json": {Data: []byte(`{"type":`)},
	}
	l := loader.New(schema.NewLoaderOptions(schema.WithFileSystem(files)))

	node, err := l.LoadNode(context.Background(), schema.SourceFromFS("good.json"))
	if err != nil {
		t.Fatalf("load node: %v", err)
	}
	if props := node.Properties(); len(props) != 2 || props[0].Key != "b" {
		t.Fatalf("unexpected properties %v", props)
	}

	_, err = l.LoadNode(context.Background(), schema.SourceFromFS("broken.json"))
	if err == nil || !strings.Contains(err.Error(), `fs "broken.json"`) {
		t.Fatalf("expected parse error naming the source, got %v", err)
	}

	_, err = l.Load(context.Background(), schema.SourceFromFS("missing.json"))
	if err == nil || !strings.Contains(err.Error(), `fs "missing.json"`) {
		t.Fatalf("expected read error naming the source, got %v", err)
	}
}

func TestLoadRejectsOversizedDocuments(t *testing.T) {
	files := fstest.MapFS{"contact.json": {Data: []byte(payload)}}
	l := loader.New(schema.NewLoaderOptions(
		schema.WithFileSystem(files),
		schema.WithMaxDocumentBytes(int64(len(payload)-1)),
	))
	if _, err := l.Load(context.Background(), schema.SourceFromFS("contact.json")); err == nil {
		t.Fatal("expected size limit error")
	}

	l = loader.New(schema.NewLoaderOptions(
		schema.WithFileSystem(files),
		schema.WithMaxDocumentBytes(int64(len(payload))),
	))
	if _, err := l.Load(context.Background(), schema.SourceFromFS("contact.json")); err != nil {
		t.Fatalf("payload at the limit should load: %v", err)
	}
}

func TestLoadHTTPRejectsHTMLPages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><body>login</body></html>"))
	}))
	defer server.Close()

	l := loader.New(schema.NewLoaderOptions(schema.WithHTTPClient(server.Client())))
	if _, err := l.Load(context.Background(), schema.SourceFromURL(server.URL+"/schema.json")); err == nil {
		t.Fatal("expected content type error")
	}
}
