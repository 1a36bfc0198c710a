package metadata

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/wippyai/scale-codec/errors"
)

// DefaultCacheSize is the number of parsed projects a Loader keeps.
const DefaultCacheSize = 32

// BundleExt is the extension of bundles that embed the contract Wasm.
const BundleExt = ".contract"

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithCacheSize sets how many parsed projects are kept in memory.
func WithCacheSize(n int) LoaderOption {
	return func(l *Loader) {
		if n > 0 {
			l.cacheSize = n
		}
	}
}

// WithCacheDir sets the directory searched for <address>.json.
func WithCacheDir(dir string) LoaderOption {
	return func(l *Loader) {
		l.cacheDir = dir
	}
}

// Loader loads metadata files. It is safe for concurrent use.
type Loader struct {
	cache     *lru.Cache[string, *Project]
	group     singleflight.Group
	cacheDir  string
	cacheSize int
}

func NewLoader(opts ...LoaderOption) (*Loader, error) {
	l := &Loader{cacheSize: DefaultCacheSize}
	for _, opt := range opts {
		opt(l)
	}
	cache, err := lru.New[string, *Project](l.cacheSize)
	if err != nil {
		return nil, errors.Load("create metadata cache", err)
	}
	l.cache = cache
	return l, nil
}

// CacheDir returns the configured cache directory, or "" if none is set.
func (l *Loader) CacheDir() string {
	return l.cacheDir
}

// Load resolves metadata for a contract. An explicit path wins; otherwise the
// cache directory is searched for <address>.json.
func (l *Loader) Load(ctx context.Context, address, path string) (*Project, error) {
	if path != "" {
		return l.LoadFile(ctx, path)
	}
	if l.cacheDir != "" && address != "" {
		cached := l.cachePath(address)
		if _, err := os.Stat(cached); err == nil {
			return l.LoadFile(ctx, cached)
		}
		Logger().Debug("metadata not in cache dir", zap.String("address", address), zap.String("dir", l.cacheDir))
	}
	return nil, errors.New(errors.PhaseLoad, errors.KindNotFound).
		Value(address).
		Detail("no metadata for contract %s; pass a metadata file or place it at %s",
			address, l.cachePath(address)).
		Build()
}

// LoadFile reads and parses a .json metadata file or .contract bundle.
func (l *Loader) LoadFile(ctx context.Context, path string) (*Project, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Load("resolve path "+path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, errors.Load("read metadata file "+path, err)
	}
	key := fmt.Sprintf("%s@%d:%d", abs, info.ModTime().UnixNano(), info.Size())

	if p, ok := l.cache.Get(key); ok {
		Logger().Debug("metadata cache hit", zap.String("path", abs))
		return p, nil
	}
	Logger().Debug("metadata cache miss", zap.String("path", abs))

	ch := l.group.DoChan(key, func() (any, error) {
		p, err := readFile(abs)
		if err != nil {
			return nil, err
		}
		l.cache.Add(key, p)
		return p, nil
	})

	select {
	case <-ctx.Done():
		return nil, errors.Load("load "+path, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Project), nil
	}
}

func readFile(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Load("read metadata file "+path, err)
	}
	p, err := Parse(data)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, BundleExt) && !p.IsBundle() {
		return nil, errors.New(errors.PhaseLoad, errors.KindInvalidData).
			Value(path).
			Detail("bundle %s has no source.wasm", filepath.Base(path)).
			Build()
	}
	return p, nil
}

// SaveToCache writes the project's document to <cacheDir>/<address>.json.
func (l *Loader) SaveToCache(address string, p *Project) error {
	if l.cacheDir == "" {
		return errors.InvalidInput(errors.PhaseLoad, "no cache directory configured")
	}
	if address == "" || strings.ContainsAny(address, `/\`) || address == "." || address == ".." {
		return errors.InvalidInput(errors.PhaseLoad, fmt.Sprintf("invalid contract address %q", address))
	}
	if err := os.MkdirAll(l.cacheDir, 0o755); err != nil {
		return errors.Load("create cache dir", err)
	}

	var out bytes.Buffer
	if err := json.Indent(&out, p.raw, "", "  "); err != nil {
		return errors.Load("format metadata", err)
	}
	if err := os.WriteFile(l.cachePath(address), out.Bytes(), 0o644); err != nil {
		return errors.Load("write cache file", err)
	}
	return nil
}

// Purge drops all parsed projects from memory.
func (l *Loader) Purge() {
	l.cache.Purge()
}

func (l *Loader) cachePath(address string) string {
	return filepath.Join(l.cacheDir, address+".json")
}

// DefaultCacheDir returns $HOME/.scalec/cache.
func DefaultCacheDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Load("locate home directory", err)
	}
	return filepath.Join(home, ".scalec", "cache"), nil
}
