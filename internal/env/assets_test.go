package env

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/javanstorm/lenv/internal/distro"
)

// fakeProvider serves its rootfs from a test server.
type fakeProvider struct {
	url string
}

func (p *fakeProvider) ID() distro.ID                 { return "testos" }
func (p *fakeProvider) Name() string                  { return "Test OS" }
func (p *fakeProvider) Version() string               { return "1.0" }
func (p *fakeProvider) SupportedArchs() []distro.Arch { return []distro.Arch{distro.ArchAMD64} }
func (p *fakeProvider) SupportsArch(a distro.Arch) bool {
	return a == distro.ArchAMD64
}
func (p *fakeProvider) Provisioning() []string { return nil }
func (p *fakeProvider) Highlights() []string   { return nil }
func (p *fakeProvider) Rootfs(a distro.Arch) (*distro.Rootfs, error) {
	if !p.SupportsArch(a) {
		return nil, &distro.ErrUnsupportedArch{Distro: p.ID(), Arch: a}
	}
	return &distro.Rootfs{URL: p.url + "/testos-rootfs.tar.gz", Filename: "testos-rootfs.tar.gz", SizeMB: 1}, nil
}

func rootfsServer(t *testing.T, body []byte, hits *int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*hits++
		if r.URL.Path != "/testos-rootfs.tar.gz" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRootfsCacheDownloadsOnce(t *testing.T) {
	body := bytes.Repeat([]byte("rootfs"), 1024)
	hits := 0
	srv := rootfsServer(t, body, &hits)

	var out bytes.Buffer
	cache := NewRootfsCache(filepath.Join(t.TempDir(), "rootfs"), srv.Client(), &out, nil)
	p := &fakeProvider{url: srv.URL}

	path, err := cache.Ensure(context.Background(), p, distro.ArchAMD64)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cache.Dir(), "testos-rootfs.tar.gz"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, body, data)
	assert.Contains(t, out.String(), "Downloading testos rootfs (~1MB)...")
	assert.Contains(t, out.String(), "From: "+srv.URL+"/testos-rootfs.tar.gz")
	assert.Contains(t, out.String(), "Progress: 100%")
	assert.Contains(t, out.String(), "Download complete")

	out.Reset()
	again, err := cache.Ensure(context.Background(), p, distro.ArchAMD64)
	require.NoError(t, err)
	assert.Equal(t, path, again)
	assert.Equal(t, 1, hits, "cache hit must not download")
	assert.Equal(t, "Using cached testos rootfs\n", out.String())
}

func TestRootfsCacheHTTPError(t *testing.T) {
	hits := 0
	srv := rootfsServer(t, nil, &hits)

	var out bytes.Buffer
	cache := NewRootfsCache(t.TempDir(), srv.Client(), &out, nil)
	p := &fakeProvider{url: srv.URL + "/missing"}

	_, err := cache.Ensure(context.Background(), p, distro.ArchAMD64)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, out.String(), "Please download manually from: "+srv.URL+"/missing/testos-rootfs.tar.gz")
	assert.Contains(t, out.String(), "Save to: "+filepath.Join(cache.Dir(), "testos-rootfs.tar.gz"))

	entries, err := os.ReadDir(cache.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries, "failed download leaves nothing behind")
}

func TestRootfsCacheCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	t.Cleanup(srv.Close)

	cache := NewRootfsCache(t.TempDir(), srv.Client(), nil, nil)
	cache.Timeout = 20 * time.Millisecond

	_, err := cache.Ensure(context.Background(), &fakeProvider{url: srv.URL}, distro.ArchAMD64)
	assert.Error(t, err)
}

func TestRootfsCacheUnsupportedArch(t *testing.T) {
	cache := NewRootfsCache(t.TempDir(), nil, nil, nil)
	_, err := cache.Ensure(context.Background(), &fakeProvider{}, distro.ArchARM64)
	assert.Error(t, err)
}

func TestRootfsCacheListAndClear(t *testing.T) {
	dir := t.TempDir()
	cache := NewRootfsCache(dir, nil, nil, nil)

	alpine, err := distro.NewAlpineProvider().Rootfs(distro.ArchAMD64)
	require.NoError(t, err)
	ubuntu, err := distro.NewUbuntuProvider().Rootfs(distro.ArchAMD64)
	require.NoError(t, err)

	for _, name := range []string{alpine.Filename, ubuntu.Filename, "custom.tar", "partial.tar.gz.tmp"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(strings.Repeat("x", 10)), 0644))
	}

	archives, err := cache.List()
	require.NoError(t, err)
	require.Len(t, archives, 3, "temp files are not listed")

	byName := map[string]CachedRootfs{}
	for _, a := range archives {
		byName[a.Filename] = a
	}
	assert.Equal(t, distro.Alpine, byName[alpine.Filename].Distro)
	assert.Equal(t, distro.Ubuntu, byName[ubuntu.Filename].Distro)
	assert.Equal(t, distro.ID(""), byName["custom.tar"].Distro)
	assert.Equal(t, int64(10), byName["custom.tar"].Size)

	removed, err := cache.Clear(distro.Ubuntu)
	require.NoError(t, err)
	require.Len(t, removed, 1)
	assert.Equal(t, ubuntu.Filename, removed[0].Filename)

	removed, err = cache.Clear("")
	require.NoError(t, err)
	assert.Len(t, removed, 2)

	archives, err = cache.List()
	require.NoError(t, err)
	assert.Empty(t, archives)
}

func TestRootfsCacheListMissingDir(t *testing.T) {
	cache := NewRootfsCache(filepath.Join(t.TempDir(), "nope"), nil, nil, nil)
	archives, err := cache.List()
	require.NoError(t, err)
	assert.Empty(t, archives)
}

// failingClose reports a flush error when the file is closed.
type failingClose struct {
	*os.File
}

func (f failingClose) Close() error {
	f.File.Close()
	return errors.New("disk full")
}

func TestRootfsCacheCloseFailure(t *testing.T) {
	orig := createFile
	defer func() { createFile = orig }()
	createFile = func(path string) (io.WriteCloser, error) {
		f, err := os.Create(path)
		if err != nil {
			return nil, err
		}
		return failingClose{f}, nil
	}

	hits := 0
	srv := rootfsServer(t, []byte("rootfs"), &hits)
	dir := t.TempDir()
	cache := NewRootfsCache(dir, srv.Client(), nil, nil)
	p := &fakeProvider{url: srv.URL}

	_, err := cache.Ensure(context.Background(), p, distro.ArchAMD64)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "neither the archive nor its temp file may remain")

	createFile = orig
	path, err := cache.Ensure(context.Background(), p, distro.ArchAMD64)
	require.NoError(t, err)
	assert.Equal(t, 2, hits, "a failed download is fetched again")
	assert.FileExists(t, path)
}
