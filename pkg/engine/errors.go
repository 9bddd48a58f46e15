package engine

import "errors"

// ErrResourcesDirMissing is returned when a language's resource directory
// does not exist on disk.
var ErrResourcesDirMissing = errors.New("resources_dir_missing")

// ErrNoModulesLoaded is returned when a resource directory exists but
// contains no usable module files.
var ErrNoModulesLoaded = errors.New("no_modules_loaded")

// LoadFault is an authoring-time (500-class) error: malformed YAML
// resource content discovered while building an Engine.
type LoadFault struct {
	File   string
	Reason string
}

func (e *LoadFault) Error() string {
	return "engine load fault in " + e.File + ": " + e.Reason
}
