package engine

import (
	"path/filepath"
	"sync"
	"time"
)

// Loader serves the immutable Engine for a language, memoising the last
// build alongside the directory signature it was built from. A TTL can
// short-circuit even the signature check; beyond that, an unchanged
// signature reuses the cached Engine without re-parsing any YAML.
type Loader struct {
	source  Source
	baseDir string
	ttl     time.Duration

	mu     sync.Mutex
	byLang map[string]*cacheEntry
}

type cacheEntry struct {
	engine   *Engine
	sig      signature
	loadedAt time.Time
}

// NewLoader builds a Loader rooted at baseDir, where each language's
// resources live in baseDir/<lang>/. ttl == 0 disables the time-based
// short-circuit and forces a per-call mtime check.
func NewLoader(baseDir string, ttl time.Duration) *Loader {
	return NewLoaderWithSource(FileSource{}, baseDir, ttl)
}

// NewLoaderWithSource builds a Loader over a caller-supplied Source,
// letting tests substitute an in-memory source instead of touching disk.
func NewLoaderWithSource(source Source, baseDir string, ttl time.Duration) *Loader {
	return &Loader{
		source:  source,
		baseDir: baseDir,
		ttl:     ttl,
		byLang:  make(map[string]*cacheEntry),
	}
}

// Get returns the current Engine for lang, rebuilding it if the resource
// directory's (filename, mtime) signature has changed since the last
// build. The swap from old to new entry is a single assignment under the
// loader's mutex, so concurrent readers never observe a half-built Engine.
func (l *Loader) Get(lang string) (*Engine, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	dir := filepath.Join(l.baseDir, lang)

	if entry, ok := l.byLang[lang]; ok {
		if l.ttl > 0 && time.Since(entry.loadedAt) < l.ttl {
			return entry.engine, nil
		}

		files, err := l.source.List(dir)
		if err != nil {
			return nil, err
		}
		newSig := make(signature, len(files))
		copy(newSig, files)

		if entry.sig.equal(newSig) {
			entry.loadedAt = time.Now()
			return entry.engine, nil
		}
	}

	eng, sig, err := Load(l.source, dir, lang)
	if err != nil {
		return nil, err
	}

	l.byLang[lang] = &cacheEntry{engine: eng, sig: sig, loadedAt: time.Now()}
	return eng, nil
}
