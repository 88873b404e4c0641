// pkg/resource/manager.go
package resource

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/opd-ai/go-snake/pkg/entity"
	"github.com/opd-ai/go-snake/pkg/logging"
)

// ErrTextureLoad is returned when an asset cannot be read or decoded
var ErrTextureLoad = errors.New("failed to load texture")

// Decoder turns an asset path into a texture handle
type Decoder func(path string) (entity.Texture, error)

// Manager loads textures on first use and caches them by path. Failed
// loads are not cached, so a later call retries the decoder.
type Manager struct {
	decode Decoder
	logger *logging.Logger

	mu       sync.RWMutex
	textures map[string]entity.Texture

	// Atomic counters for thread-safe access
	hits     int64
	misses   int64
	failures int64

	lastLoad time.Time
}

// NewManager creates a texture manager backed by decode
func NewManager(decode Decoder, logger *logging.Logger) *Manager {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Manager{
		decode:   decode,
		logger:   logger,
		textures: make(map[string]entity.Texture),
	}
}

// Load returns the texture for path, decoding it on the first request.
func (m *Manager) Load(path string) (entity.Texture, error) {
	m.mu.RLock()
	texture, ok := m.textures[path]
	m.mu.RUnlock()
	if ok {
		atomic.AddInt64(&m.hits, 1)
		return texture, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Another caller may have loaded it while we waited for the lock.
	if texture, ok := m.textures[path]; ok {
		atomic.AddInt64(&m.hits, 1)
		return texture, nil
	}
	atomic.AddInt64(&m.misses, 1)

	start := time.Now()
	texture, err := m.decode(path)
	if err != nil {
		atomic.AddInt64(&m.failures, 1)
		m.logger.Error(context.Background(), "Texture load failed", err, "path", path)
		return nil, fmt.Errorf("%w %q: %w", ErrTextureLoad, path, err)
	}
	if texture == nil {
		atomic.AddInt64(&m.failures, 1)
		return nil, fmt.Errorf("%w %q: decoder returned no texture", ErrTextureLoad, path)
	}

	m.textures[path] = texture
	m.lastLoad = time.Now()
	m.logger.Debug(context.Background(), "Texture loaded",
		"path", path,
		"width", texture.Width(),
		"height", texture.Height(),
		"duration", time.Since(start),
	)

	return texture, nil
}

// GetStats returns cache statistics.
func (m *Manager) GetStats() Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Stats{
		Cached:   len(m.textures),
		Hits:     atomic.LoadInt64(&m.hits),
		Misses:   atomic.LoadInt64(&m.misses),
		Errors:   atomic.LoadInt64(&m.failures),
		LastLoad: m.lastLoad,
	}
}

// Stats contains texture cache statistics.
type Stats struct {
	Cached   int       `json:"cached"`
	Hits     int64     `json:"hits"`
	Misses   int64     `json:"misses"`
	Errors   int64     `json:"errors"`
	LastLoad time.Time `json:"last_load"`
}
