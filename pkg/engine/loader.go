package engine

import (
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/aiquest/classifier/pkg/value"
)

// Source reads a language's resource directory from some backing store.
// FileSource is the only production implementation; the interface exists
// so tests can substitute an in-memory source, mirroring the teacher's
// config.Source/Reader split for loading a single YAML document.
type Source interface {
	// List returns the *.yaml files in dir along with their mtimes, sorted
	// by filename. Returns ErrResourcesDirMissing if dir does not exist.
	List(dir string) ([]FileStat, error)
	// Read returns the raw bytes of a file previously returned by List.
	Read(path string) ([]byte, error)
}

// FileStat is one entry of a directory signature: a filename paired with
// its last-modified time, used to detect when a reload is needed.
type FileStat struct {
	Name    string
	Path    string
	ModTime time.Time
}

// FileSource reads resource directories from the local filesystem.
type FileSource struct{}

func (FileSource) List(dir string) ([]FileStat, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrResourcesDirMissing
		}
		return nil, err
	}

	var out []FileStat
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".yaml" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, err
		}
		out = append(out, FileStat{
			Name:    e.Name(),
			Path:    filepath.Join(dir, e.Name()),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (FileSource) Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// signature is the (filename, mtime) list the cache compares against on
// each reload check.
type signature []FileStat

func (s signature) equal(o signature) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if s[i].Name != o[i].Name || !s[i].ModTime.Equal(o[i].ModTime) {
			return false
		}
	}
	return true
}

// Load reads every *.yaml file in dir and builds an immutable Engine for
// lang, per §4.2: optional constants.yaml, citation-stripping, module_num
// ordering, and index construction.
func Load(source Source, dir, lang string) (*Engine, signature, error) {
	files, err := source.List(dir)
	if err != nil {
		return nil, nil, err
	}

	eng := &Engine{
		Lang:          lang,
		ModulesByID:   make(map[string]*Module),
		QuestionsByID: make(map[string]*Question),
		Constants:     make(map[string]value.Value),
	}

	for _, f := range files {
		data, err := source.Read(f.Path)
		if err != nil {
			return nil, nil, err
		}

		if f.Name == "constants.yaml" {
			constants, err := parseConstants([]byte(stripCitations(string(data))))
			if err != nil {
				return nil, nil, err
			}
			eng.Constants = constants
			continue
		}

		clean := stripCitations(string(data))
		mod, err := parseModuleFile(f.Name, []byte(clean))
		if err != nil {
			return nil, nil, err
		}

		eng.Modules = append(eng.Modules, mod)
		eng.ModulesByID[mod.ID] = mod
		for qid, q := range mod.QuestionsByID {
			eng.QuestionsByID[qid] = q
		}
	}

	if len(eng.Modules) == 0 {
		return nil, nil, ErrNoModulesLoaded
	}

	sort.SliceStable(eng.Modules, func(i, j int) bool {
		return eng.Modules[i].ModuleNum < eng.Modules[j].ModuleNum
	})

	sig := make(signature, len(files))
	copy(sig, files)
	return eng, sig, nil
}
