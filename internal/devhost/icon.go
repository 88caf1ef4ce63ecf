package devhost

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
)

// maxIconBytes bounds what is inlined into a data URL.
const maxIconBytes = 256 << 10

// IconCache resolves executables to inline image data URLs. Results,
// including misses, are remembered per path.
type IconCache struct {
	mu    sync.Mutex
	cache map[string]*string
}

// NewIconCache returns an empty cache.
func NewIconCache() *IconCache {
	return &IconCache{cache: make(map[string]*string)}
}

// Icon returns a data URL for path, or nil. The file itself is used when it
// is an image; otherwise a sibling with the same base name and a .png or
// .ico extension.
func (c *IconCache) Icon(path string) *string {
	if path == "" {
		return nil
	}
	if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
		return nil
	}

	c.mu.Lock()
	cached, hit := c.cache[path]
	c.mu.Unlock()
	if hit {
		return cached
	}

	url := findIcon(path)
	c.mu.Lock()
	c.cache[path] = url
	c.mu.Unlock()
	return url
}

func findIcon(path string) *string {
	base := strings.TrimSuffix(path, filepath.Ext(path))
	for _, candidate := range []string{path, base + ".png", base + ".ico"} {
		if url, ok := imageDataURL(candidate); ok {
			return &url
		}
	}
	return nil
}

func imageDataURL(path string) (string, bool) {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() || info.Size() == 0 || info.Size() > maxIconBytes {
		return "", false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return "", false
	}
	return "data:" + mtype.String() + ";base64," + base64.StdEncoding.EncodeToString(data), true
}
