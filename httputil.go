package intrinsic

import (
	"bufio"
	"bytes"
	"crypto/sha1"
	"fmt"
	"log"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"time"
)

// contains http utils to deal with remote services

// DiskCache is an http.RoundTripper that keeps successful GET responses on disk.
//
// Entries older than TTL are fetched again. It lets a short lived command
// reuse the responses of a previous run.
type DiskCache struct {
	Base http.RoundTripper // defaults to http.DefaultTransport
	Dir  string            // defaults to os.TempDir()
	TTL  time.Duration
	Now  func() time.Time // defaults to time.Now
}

// NewCachingClient returns an http.Client that uses a DiskCache in dir.
func NewCachingClient(dir string, ttl time.Duration) *http.Client {
	client := new(http.Client)
	client.Transport = &DiskCache{Base: http.DefaultTransport, Dir: dir, TTL: ttl}
	return client
}

func (c *DiskCache) RoundTrip(req *http.Request) (resp *http.Response, err error) {
	if req.Method != http.MethodGet || c.TTL <= 0 {
		return c.base().RoundTrip(req)
	}
	key := fmt.Sprintf("%s %s", req.Method, req.URL.String())
	key = fmt.Sprintf("dcf-%x", sha1.Sum([]byte(key)))

	cachedResp, err := c.get(key, req)
	if err == nil { // Cache hit
		return cachedResp, nil
	}

	resp, err = c.base().RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Printf("%v %v%v %v", req.Method, req.URL.Host, req.URL.Path, resp.Status)
	if resp.StatusCode >= 300 {
		return resp, nil
	}
	// otherwise attempt to store it in cache

	err = c.put(key, resp)
	if err != nil {
		log.Printf("cache write err (ignored): %v\n", err)
	}
	return resp, nil
}

func (c *DiskCache) base() http.RoundTripper {
	if c.Base == nil {
		return http.DefaultTransport
	}
	return c.Base
}

func (c *DiskCache) file(key string) string {
	dir := c.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, key)
}

func (c *DiskCache) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// get retrieves a cached response from disk, if it has not expired.
func (c *DiskCache) get(key string, req *http.Request) (resp *http.Response, err error) {
	file := c.file(key)
	info, err := os.Stat(file)
	if err != nil {
		return nil, err
	}
	if age := c.now().Sub(info.ModTime()); age >= c.TTL {
		return nil, fmt.Errorf("cache entry expired %v ago", age-c.TTL)
	}
	content, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return http.ReadResponse(bufio.NewReader(bytes.NewBuffer(content)), req)
}

// put stores a response to disk cache.
//
// The response body is consumed and replaced by an in-memory copy.
func (c *DiskCache) put(key string, resp *http.Response) (err error) {
	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return err
	}

	file := c.file(key)
	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return err
	}
	f, err := os.Create(file)
	if err != nil {
		return err
	}

	_, err = f.Write(content)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}
