package documents

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	log "github.com/sirupsen/logrus"
)

const (
	defaultThumbSize    = 96
	maxImageBytes       = 10 << 20
	defaultFetchTimeout = 10 * time.Second
	maxCachedThumbs     = 512
)

// ImageSource turns a line image URL into PNG bytes ready to embed in a document.
type ImageSource interface {
	Thumbnail(ctx context.Context, url string) ([]byte, error)
}

// ThumbnailLoader downloads line images and scales them to fit a square box.
// Successful results are cached per URL; the cache is dropped once it holds
// maxCachedThumbs entries.
type ThumbnailLoader struct {
	client *http.Client
	size   int

	mu    sync.Mutex
	cache map[string][]byte
}

var _ ImageSource = (*ThumbnailLoader)(nil)

func NewThumbnailLoader(client *http.Client, size int) *ThumbnailLoader {
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}
	if size <= 0 {
		size = defaultThumbSize
	}
	return &ThumbnailLoader{client: client, size: size, cache: map[string][]byte{}}
}

func (l *ThumbnailLoader) Thumbnail(ctx context.Context, url string) ([]byte, error) {
	l.mu.Lock()
	if data, ok := l.cache[url]; ok {
		l.mu.Unlock()
		return data, nil
	}
	l.mu.Unlock()

	data, err := l.fetch(ctx, url)
	if err != nil {
		log.Warnf("[desk][documents] thumbnail failed url=%s err=%v", url, err)
		return nil, err
	}

	l.mu.Lock()
	if len(l.cache) >= maxCachedThumbs {
		l.cache = map[string][]byte{}
	}
	l.cache[url] = data
	l.mu.Unlock()
	return data, nil
}

func (l *ThumbnailLoader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	img, err := imaging.Decode(io.LimitReader(resp.Body, maxImageBytes), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	thumb := imaging.Fit(img, l.size, l.size, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
