// Package dircache answers "does this directory exist" questions and
// remembers the answers for the lifetime of one build invocation.
package dircache

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/patrule/pkg/logging"
	"github.com/rs/zerolog"
)

// StatFunc is the signature of os.Stat.
type StatFunc func(name string) (fs.FileInfo, error)

// Cache memoizes directory existence checks relative to a base directory.
type Cache struct {
	mu      sync.Mutex
	base    string
	stat    StatFunc
	results map[string]bool
	logger  zerolog.Logger
}

// New returns a Cache resolving relative paths against base. An empty base
// means the current working directory.
func New(base string) *Cache {
	return NewWithStat(base, os.Stat)
}

// NewWithStat is New with a custom stat function.
func NewWithStat(base string, stat StatFunc) *Cache {
	return &Cache{
		base:    base,
		stat:    stat,
		results: make(map[string]bool),
		logger:  logging.GetLogger("dircache"),
	}
}

// DirExists reports whether dir exists and is a directory.
func (c *Cache) DirExists(dir string) bool {
	path := dir
	if !filepath.IsAbs(path) && c.base != "" {
		path = filepath.Join(c.base, path)
	}
	path = filepath.Clean(path)

	c.mu.Lock()
	defer c.mu.Unlock()

	if exists, ok := c.results[path]; ok {
		return exists
	}

	info, err := c.stat(path)
	exists := err == nil && info.IsDir()
	c.results[path] = exists

	c.logger.Trace().
		Str("dir", path).
		Bool("exists", exists).
		Msg("Directory checked")

	return exists
}
