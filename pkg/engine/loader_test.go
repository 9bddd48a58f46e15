package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memSource is an in-memory Source used so loader tests never touch disk.
type memSource struct {
	files map[string]memFile
}

type memFile struct {
	data    []byte
	modTime time.Time
}

func (m *memSource) List(dir string) ([]FileStat, error) {
	var out []FileStat
	for name, f := range m.files {
		out = append(out, FileStat{Name: name, Path: name, ModTime: f.modTime})
	}
	return out, nil
}

func (m *memSource) Read(path string) ([]byte, error) {
	return m.files[path].data, nil
}

const module1YAML = `
module_id: "1_intro"
title: Intro
questions:
  - id: q1
    type: boolean
router:
  - condition: "q1 == True [cite_end]"
    action: Terminate
`

func TestLoad_CitationStrippingAndModuleNum(t *testing.T) {
	src := &memSource{files: map[string]memFile{
		"1_intro.yaml": {data: []byte(module1YAML), modTime: time.Now()},
	}}

	eng, _, err := Load(src, "en", "en")
	require.NoError(t, err)
	require.Len(t, eng.Modules, 1)

	mod := eng.Modules[0]
	assert.Equal(t, 1, mod.ModuleNum)
	assert.Equal(t, "1_intro", mod.ID)
	require.Len(t, mod.Router, 1)
	assert.NoError(t, mod.Router[0].Condition.Err())
}

func TestLoad_MissingModuleIDIsFatal(t *testing.T) {
	src := &memSource{files: map[string]memFile{
		"broken.yaml": {data: []byte("title: no id here\n"), modTime: time.Now()},
	}}

	_, _, err := Load(src, "en", "en")
	require.Error(t, err)
}

func TestLoad_RouterTargetNormalization(t *testing.T) {
	src := &memSource{files: map[string]memFile{
		"1.yaml": {data: []byte(`
module_id: "1"
router:
  - condition: "else"
    action: jump
    target_module: "Module 2"
`), modTime: time.Now()},
	}}

	eng, _, err := Load(src, "en", "en")
	require.NoError(t, err)
	assert.Equal(t, "2", eng.Modules[0].Router[0].TargetModuleID)
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, _, err := Load(FileSource{}, "/no/such/dir/for/sure", "en")
	assert.ErrorIs(t, err, ErrResourcesDirMissing)
}
