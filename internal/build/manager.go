// Package build coordinates auxiliary builds shared between tests.
//
// Tests from many worker goroutines may depend on the same auxiliary file.
// The Manager guarantees that each distinct build key triggers at most one
// physical build, that concurrent requests for one key block until that
// build finishes and then share its result, and that builds for distinct
// keys proceed independently.
package build

import (
	"sync"

	"golang.org/x/sync/singleflight"
)

// Builder describes one auxiliary build, keyed for memoization.
type Builder interface {
	// Key identifies the build. Identical keys share one physical build.
	Key() string

	// Digest returns the content digest used by the disk cache; ok reports
	// whether a digest is available. Builds without one skip the cache.
	Digest() (Digest, bool)

	// Build produces the extra command-line arguments required to use the
	// built artifact as a dependency.
	Build(mgr *Manager) ([]string, error)
}

type buildResult struct {
	args []string
	err  error
}

// Manager memoizes auxiliary builds by key.
type Manager struct {
	group singleflight.Group
	cache *DiskCache

	mu   sync.Mutex
	done map[string]buildResult
}

// NewManager creates a Manager. The cache is optional.
func NewManager(cache *DiskCache) *Manager {
	return &Manager{
		cache: cache,
		done:  make(map[string]buildResult),
	}
}

// Build returns the extra arguments for the given build, running it at most
// once per key for the lifetime of the Manager. Failed builds are memoized
// too: a broken dependency is reported once per test, not rebuilt per test.
func (m *Manager) Build(b Builder) ([]string, error) {
	key := b.Key()

	m.mu.Lock()
	if res, ok := m.done[key]; ok {
		m.mu.Unlock()
		return res.args, res.err
	}
	m.mu.Unlock()

	v, err, _ := m.group.Do(key, func() (any, error) {
		args, err := m.buildOnce(b)
		m.mu.Lock()
		m.done[key] = buildResult{args: args, err: err}
		m.mu.Unlock()
		return args, err
	})
	if err != nil {
		return nil, err
	}
	return v.([]string), nil
}

func (m *Manager) buildOnce(b Builder) ([]string, error) {
	digest, cacheable := b.Digest()
	if cacheable && m.cache != nil {
		var payload Payload
		if hit, err := m.cache.Get(digest, &payload); err == nil && hit {
			return payload.ExtraArgs, nil
		}
	}

	args, err := b.Build(m)
	if err != nil {
		return nil, err
	}

	if cacheable && m.cache != nil {
		// Cache write failures only cost a rebuild next run.
		_ = m.cache.Put(digest, &Payload{
			Schema:    cacheSchemaVersion,
			Key:       b.Key(),
			ExtraArgs: args,
		})
	}
	return args, nil
}
