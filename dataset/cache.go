package dataset

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// diskCache is an http.RoundTripper keeping successful GET responses on disk.
// Keys include the current day, so cached datasets expire daily.
type diskCache struct {
	dir   string
	base  http.RoundTripper
	today func() time.Time
}

func (c *diskCache) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return c.base.RoundTrip(req)
	}
	key := c.key(req)

	if resp, err := c.get(key, req); err == nil {
		log.Debug("dataset cache hit", "url", req.URL.Redacted())
		return resp, nil
	}

	resp, err := c.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Debug("dataset downloaded", "host", req.URL.Host, "path", req.URL.Path, "status", resp.Status)
	if resp.StatusCode != http.StatusOK {
		return resp, nil
	}
	if err := c.put(key, resp); err != nil {
		log.Warn("dataset cache write failed", "err", err)
	}
	return resp, nil
}

func (c *diskCache) key(req *http.Request) string {
	day := c.today().Format(time.DateOnly)
	return fmt.Sprintf("%x", sha1.Sum([]byte(day+" "+req.URL.String())))
}

func (c *diskCache) get(key string, req *http.Request) (*http.Response, error) {
	content, err := os.ReadFile(filepath.Join(c.dir, key))
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req)
}

// put stores resp on disk. DumpResponse leaves resp.Body readable.
func (c *diskCache) put(key string, resp *http.Response) error {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(c.dir, key), content, 0o644)
}

// Daily returns a client caching downloads in dir for the rest of the day.
// An empty dir disables the cache.
func Daily(dir string) *http.Client {
	if dir == "" {
		return http.DefaultClient
	}
	return &http.Client{Transport: &diskCache{dir: dir, base: http.DefaultTransport, today: time.Now}}
}
