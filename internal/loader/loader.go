package loader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"os"
	"time"

	"github.com/goliatone/go-schemaform/pkg/schema"
)

// DefaultMaxDocumentBytes caps schema payloads when the options leave it unset.
const DefaultMaxDocumentBytes int64 = 8 << 20

const acceptSchema = "application/schema+json, application/json, application/yaml;q=0.9, */*;q=0.1"

// Loader reads schema documents from files, an fs.FS or HTTP(S) endpoints.
type Loader struct {
	files    fs.FS
	client   *http.Client
	timeout  time.Duration
	maxBytes int64
}

var _ schema.Loader = (*Loader)(nil)

// New constructs a Loader. URL sources stay disabled unless the options carry
// an HTTP client or enable the fallback client.
func New(options schema.LoaderOptions) *Loader {
	l := &Loader{
		files:    options.FileSystem,
		timeout:  options.RequestTimeout,
		maxBytes: options.MaxDocumentBytes,
	}
	if l.maxBytes <= 0 {
		l.maxBytes = DefaultMaxDocumentBytes
	}
	switch {
	case options.HTTPClient != nil:
		l.client = options.HTTPClient
	case options.AllowHTTPFallback:
		l.client = &http.Client{}
	}
	return l
}

// Load reads src into a Document. Errors name the source they came from.
func (l *Loader) Load(ctx context.Context, src schema.Source) (schema.Document, error) {
	if src == nil {
		return schema.Document{}, errors.New("schema loader: source is nil")
	}
	data, err := l.read(ctx, src)
	if err != nil {
		return schema.Document{}, fmt.Errorf("schema loader: %s %q: %w", src.Kind(), src.Location(), err)
	}
	return schema.NewDocument(src, data)
}

// LoadNode reads src and parses it as a schema tree.
func (l *Loader) LoadNode(ctx context.Context, src schema.Source) (*schema.Node, error) {
	doc, err := l.Load(ctx, src)
	if err != nil {
		return nil, err
	}
	node, err := doc.Node()
	if err != nil {
		return nil, fmt.Errorf("schema loader: %s %q: %w", src.Kind(), src.Location(), err)
	}
	return node, nil
}

func (l *Loader) read(ctx context.Context, src schema.Source) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	location := src.Location()
	if location == "" {
		return nil, errors.New("location is required")
	}

	switch src.Kind() {
	case schema.SourceKindFile:
		f, err := os.Open(location)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return l.readLimited(f)
	case schema.SourceKindFS:
		if l.files == nil {
			return nil, errors.New("no file system configured")
		}
		f, err := l.files.Open(location)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return l.readLimited(f)
	case schema.SourceKindURL:
		return l.fetch(ctx, location)
	default:
		return nil, fmt.Errorf("unsupported source kind %q", src.Kind())
	}
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	if l.client == nil {
		return nil, errors.New("http sources are disabled")
	}
	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", acceptSchema)

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	if mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type")); err == nil && mediaType == "text/html" {
		return nil, fmt.Errorf("unexpected content type %q", mediaType)
	}
	return l.readLimited(resp.Body)
}

func (l *Loader) readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.maxBytes+1))
	if err != nil {
		return nil, err
	}
	if int64(len(data)) > l.maxBytes {
		return nil, fmt.Errorf("document exceeds %d bytes", l.maxBytes)
	}
	return data, nil
}
