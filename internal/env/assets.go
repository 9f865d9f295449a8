package env

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/javanstorm/lenv/internal/distro"
)

// RootfsCache downloads and caches rootfs archives. Archives are keyed by
// their filename and shared by every project; nothing invalidates them.
type RootfsCache struct {
	dir    string
	client *http.Client
	out    io.Writer
	log    *zap.Logger

	// Timeout bounds a single download (0 = no limit).
	Timeout time.Duration
}

// CachedRootfs describes an archive in the cache.
type CachedRootfs struct {
	Filename string
	Path     string
	Distro   distro.ID // empty when no provider claims the file
	Size     int64
	ModTime  time.Time
}

// NewRootfsCache creates a cache rooted at dir. Progress messages go to out.
func NewRootfsCache(dir string, client *http.Client, out io.Writer, log *zap.Logger) *RootfsCache {
	if client == nil {
		client = http.DefaultClient
	}
	if out == nil {
		out = io.Discard
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RootfsCache{
		dir:    dir,
		client: client,
		out:    out,
		log:    log,
	}
}

// Dir returns the cache directory.
func (c *RootfsCache) Dir() string {
	return c.dir
}

// PathFor returns where the archive for rootfs is cached.
func (c *RootfsCache) PathFor(rootfs *distro.Rootfs) string {
	return filepath.Join(c.dir, rootfs.Filename)
}

// Ensure returns the cached archive for the provider, downloading it first on
// a cache miss.
func (c *RootfsCache) Ensure(ctx context.Context, provider distro.Provider, arch distro.Arch) (string, error) {
	rootfs, err := provider.Rootfs(arch)
	if err != nil {
		return "", err
	}

	path := c.PathFor(rootfs)
	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(c.out, "Using cached %s rootfs\n", provider.ID())
		return path, nil
	}

	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return "", fmt.Errorf("create cache dir: %w", err)
	}

	fmt.Fprintf(c.out, "Downloading %s rootfs (~%dMB)...\n", provider.ID(), rootfs.SizeMB)
	fmt.Fprintf(c.out, "   From: %s\n", rootfs.URL)

	if err := c.download(ctx, path, rootfs.URL); err != nil {
		fmt.Fprintf(c.out, "\nDownload failed: %v\n", err)
		fmt.Fprintln(c.out, "Please download manually from:", rootfs.URL)
		fmt.Fprintln(c.out, "Save to:", path)
		return "", fmt.Errorf("download %s rootfs: %w", provider.ID(), err)
	}

	fmt.Fprintln(c.out, "\nDownload complete")
	return path, nil
}

// download fetches url to path through a temp file so an interrupted download
// never leaves a partial archive under the cache key.
func (c *RootfsCache) download(ctx context.Context, path, url string) error {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download failed: %s (URL: %s)", resp.Status, url)
	}

	tmpPath := path + ".tmp"
	f, err := createFile(tmpPath)
	if err != nil {
		return err
	}

	pw := &progressWriter{out: c.out, total: resp.ContentLength}
	n, err := io.Copy(f, io.TeeReader(resp.Body, pw))
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tmpPath)
		return err
	}

	c.log.Debug("rootfs downloaded",
		zap.String("url", url),
		zap.Int64("bytes", n),
		zap.Duration("took", time.Since(start)))

	return os.Rename(tmpPath, path)
}

// List returns the archives in the cache, sorted by filename.
func (c *RootfsCache) List() ([]CachedRootfs, error) {
	entries, err := os.ReadDir(c.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cache dir: %w", err)
	}

	var archives []CachedRootfs
	for _, e := range entries {
		if e.IsDir() || strings.HasSuffix(e.Name(), ".tmp") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		archives = append(archives, CachedRootfs{
			Filename: e.Name(),
			Path:     filepath.Join(c.dir, e.Name()),
			Distro:   distroForFilename(e.Name()),
			Size:     info.Size(),
			ModTime:  info.ModTime(),
		})
	}

	sort.Slice(archives, func(i, j int) bool {
		return archives[i].Filename < archives[j].Filename
	})
	return archives, nil
}

// Clear removes cached archives. With an empty id every archive is removed,
// otherwise only the archives belonging to that distro. Returns the removed
// entries.
func (c *RootfsCache) Clear(id distro.ID) ([]CachedRootfs, error) {
	archives, err := c.List()
	if err != nil {
		return nil, err
	}

	var removed []CachedRootfs
	var errs []error
	for _, a := range archives {
		if id != "" && a.Distro != id {
			continue
		}
		if err := os.Remove(a.Path); err != nil {
			errs = append(errs, fmt.Errorf("remove %s: %w", a.Filename, err))
			continue
		}
		removed = append(removed, a)
	}

	return removed, errors.Join(errs...)
}

// distroForFilename finds the provider whose rootfs archive, for any of its
// architectures, has the given filename.
func distroForFilename(name string) distro.ID {
	for _, p := range distro.ListProviders() {
		for _, arch := range p.SupportedArchs() {
			rootfs, err := p.Rootfs(arch)
			if err == nil && rootfs.Filename == name {
				return p.ID()
			}
		}
	}
	return ""
}

// createFile opens the download target. Tests replace it to inject write
// failures.
var createFile = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// progressWriter prints a single updating progress line.
type progressWriter struct {
	out     io.Writer
	total   int64
	written int64
	last    int
}

func (p *progressWriter) Write(b []byte) (int, error) {
	p.written += int64(len(b))
	if p.total > 0 {
		percent := int(p.written * 100 / p.total)
		if percent != p.last {
			p.last = percent
			fmt.Fprintf(p.out, "\r   Progress: %d%% (%s / %s)", percent,
				humanize.Bytes(uint64(p.written)), humanize.Bytes(uint64(p.total)))
		}
	} else {
		fmt.Fprintf(p.out, "\r   Progress: %s", humanize.Bytes(uint64(p.written)))
	}
	return len(b), nil
}
