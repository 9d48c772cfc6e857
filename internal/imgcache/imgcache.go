package imgcache

import (
	"context"
	"crypto/sha256" // Stable cache file naming
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"
)

// ErrFetch is returned for any failure obtaining a remote image. Callers
// treat it as "image not available" and answer with a not-found, never with
// a hard error.
var ErrFetch = errors.New("image fetch failed")

// fetchTimeout keeps a slow or dead image host from tying up a request
const fetchTimeout = 6 * time.Second

// Cache is a disk-backed cache of raffle cover images keyed by source URL
type Cache struct {
	dir    string
	client *http.Client
}

// New returns a Cache storing files under dir
func New(dir string) *Cache {
	return &Cache{
		dir:    dir,
		client: &http.Client{Timeout: fetchTimeout},
	}
}

// Path returns the local file holding the image at rawURL for the given
// raffle, downloading it on a cache miss. The filename embeds a hash of the
// URL so changing the raffle's image naturally misses the old entry.
func (c *Cache) Path(ctx context.Context, raffleID uint, rawURL string) (string, error) {
	if rawURL == "" {
		return "", ErrFetch
	}
	p := filepath.Join(c.dir, c.fileName(raffleID, rawURL))
	if _, err := os.Stat(p); err == nil {
		return p, nil // Already cached
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", ErrFetch
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) RaffleSystem/1.0")
	resp, err := c.client.Do(req)
	if err != nil {
		return "", ErrFetch
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", ErrFetch
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", ErrFetch
	}
	// Write via a temp file and rename so a concurrent request never sees
	// a half-written entry at the final path
	tmp, err := os.CreateTemp(c.dir, "download-*")
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return p, nil
}

func (c *Cache) fileName(raffleID uint, rawURL string) string {
	sum := sha256.Sum256([]byte(rawURL))
	return fmt.Sprintf("%d-%s%s", raffleID, hex.EncodeToString(sum[:])[:24], suffix(rawURL))
}

// suffix extracts a file extension from the URL path, defaulting to .img
func suffix(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ".img"
	}
	if ext := path.Ext(u.Path); ext != "" {
		return ext
	}
	return ".img"
}
