package build

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type countingBuilder struct {
	key    string
	digest Digest
	cached bool
	args   []string
	err    error
	calls  atomic.Int32
	delay  time.Duration
}

func (b *countingBuilder) Key() string { return b.key }

func (b *countingBuilder) Digest() (Digest, bool) { return b.digest, b.cached }

func (b *countingBuilder) Build(*Manager) ([]string, error) {
	b.calls.Add(1)
	if b.delay > 0 {
		time.Sleep(b.delay)
	}
	return b.args, b.err
}

func TestManagerDeduplicatesConcurrentBuilds(t *testing.T) {
	builder := &countingBuilder{
		key:   "deps/shared",
		args:  []string{"--extern", "shared"},
		delay: 10 * time.Millisecond,
	}
	mgr := NewManager(nil)

	const callers = 16
	results := make([][]string, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			args, err := mgr.Build(builder)
			if err != nil {
				t.Errorf("Build() failed: %v", err)
				return
			}
			results[i] = args
		}()
	}
	wg.Wait()

	if got := builder.calls.Load(); got != 1 {
		t.Errorf("builder invoked %d times, want 1", got)
	}
	for i, args := range results {
		if !reflect.DeepEqual(args, builder.args) {
			t.Errorf("caller %d got %v, want %v", i, args, builder.args)
		}
	}
}

func TestManagerIndependentKeys(t *testing.T) {
	a := &countingBuilder{key: "deps/a", args: []string{"--extern", "a"}}
	b := &countingBuilder{key: "deps/b", args: []string{"--extern", "b"}}
	mgr := NewManager(nil)

	if _, err := mgr.Build(a); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Build(b); err != nil {
		t.Fatal(err)
	}
	if a.calls.Load() != 1 || b.calls.Load() != 1 {
		t.Errorf("calls = (%d, %d), want (1, 1)", a.calls.Load(), b.calls.Load())
	}
}

func TestManagerMemoizesFailures(t *testing.T) {
	builder := &countingBuilder{key: "deps/broken", err: errors.New("does not compile")}
	mgr := NewManager(nil)

	if _, err := mgr.Build(builder); err == nil {
		t.Fatal("Build() succeeded, want failure")
	}
	if _, err := mgr.Build(builder); err == nil {
		t.Fatal("second Build() succeeded, want memoized failure")
	}
	if got := builder.calls.Load(); got != 1 {
		t.Errorf("builder invoked %d times, want 1 (failures memoize too)", got)
	}
}

func TestManagerUsesDiskCache(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	digest := Digest{1, 2, 3}
	first := &countingBuilder{key: "deps/cached", digest: digest, cached: true, args: []string{"--extern", "cached"}}

	if _, err := NewManager(cache).Build(first); err != nil {
		t.Fatal(err)
	}

	// A fresh manager with the same cache must not rebuild.
	second := &countingBuilder{key: "deps/cached", digest: digest, cached: true, args: []string{"ignored"}}
	args, err := NewManager(cache).Build(second)
	if err != nil {
		t.Fatal(err)
	}
	if second.calls.Load() != 0 {
		t.Errorf("builder invoked despite a cache hit")
	}
	if !reflect.DeepEqual(args, first.args) {
		t.Errorf("cached args = %v, want %v", args, first.args)
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	key := Digest{42}
	in := &Payload{Schema: cacheSchemaVersion, Key: "deps/x", ExtraArgs: []string{"--extern", "x"}}
	if err := cache.Put(key, in); err != nil {
		t.Fatal(err)
	}

	var out Payload
	hit, err := cache.Get(key, &out)
	if err != nil || !hit {
		t.Fatalf("Get() = (%v, %v), want hit", hit, err)
	}
	if !reflect.DeepEqual(&out, in) {
		t.Errorf("payload = %+v, want %+v", out, *in)
	}

	var miss Payload
	hit, err = cache.Get(Digest{99}, &miss)
	if err != nil || hit {
		t.Errorf("Get(unknown) = (%v, %v), want miss", hit, err)
	}
}

func TestFileDigest(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.sg")
	b := filepath.Join(dir, "b.sg")
	if err := os.WriteFile(a, []byte("same content"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(b, []byte("same content"), 0o644); err != nil {
		t.Fatal(err)
	}

	da, err := FileDigest(a)
	if err != nil {
		t.Fatal(err)
	}
	db, err := FileDigest(b)
	if err != nil {
		t.Fatal(err)
	}
	if da != db {
		t.Errorf("digests differ for identical content")
	}

	if err := os.WriteFile(b, []byte("other content"), 0o644); err != nil {
		t.Fatal(err)
	}
	db2, err := FileDigest(b)
	if err != nil {
		t.Fatal(err)
	}
	if da == db2 {
		t.Errorf("digests match for different content")
	}

	if _, err := FileDigest(filepath.Join(dir, "missing.sg")); err == nil {
		t.Errorf("FileDigest(missing) succeeded, want error")
	}
}
