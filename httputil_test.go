package intrinsic

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestDiskCache(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, "hello %d", hits)
	}))
	defer srv.Close()

	now := time.Now()
	cache := &DiskCache{Base: srv.Client().Transport, Dir: t.TempDir(), TTL: time.Hour, Now: func() time.Time { return now }}
	client := &http.Client{Transport: cache}

	get := func(path string) string {
		t.Helper()
		resp, err := client.Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		return string(body)
	}

	if got := get("/a"); got != "hello 1" {
		t.Errorf("first GET = %q, want %q", got, "hello 1")
	}
	if got := get("/a"); got != "hello 1" {
		t.Errorf("cached GET = %q, want %q", got, "hello 1")
	}
	if hits != 1 {
		t.Errorf("server hits = %d, want 1", hits)
	}

	// failures are not cached
	get("/missing")
	get("/missing")
	if hits != 3 {
		t.Errorf("server hits = %d, want 3", hits)
	}

	now = now.Add(2 * time.Hour)
	if got := get("/a"); got != "hello 4" {
		t.Errorf("expired GET = %q, want %q", got, "hello 4")
	}
}
