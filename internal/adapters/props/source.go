// Package props implements the project property source on top of Java-style
// .properties files, which is the format the declared library references
// live in.
package props

import (
	"os"
	"sync"

	"github.com/magiconair/properties"
	"go.trai.ch/zerr"
)

// Filename is the property file a project is expected to carry at its root.
const Filename = "project.properties"

// File is a PropertySource backed by a .properties file on disk.
type File struct {
	path string

	mu sync.Mutex
	p  *properties.Properties
}

// Load reads the property file at path.
func Load(path string) (*File, error) {
	p, err := load(path)
	if err != nil {
		return nil, err
	}
	return &File{path: path, p: p}, nil
}

func load(path string) (*properties.Properties, error) {
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to load property file"), "path", path)
	}
	// Values are opaque paths and ids; ${...} must stay literal.
	p.DisableExpansion = true
	return p, nil
}

// Path returns the location of the backing file.
func (f *File) Path() string {
	return f.path
}

// Get returns the value for key and whether it is present.
func (f *File) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.p.Get(key)
}

// Set stores value under key in memory. Save persists it.
func (f *File) Set(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, _, _ = f.p.Set(key, value)
}

// Save writes the current state back to the backing file.
func (f *File) Save() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	out, err := os.Create(f.path)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write property file"), "path", f.path)
	}
	if _, err := f.p.Write(out, properties.UTF8); err != nil {
		_ = out.Close()
		return zerr.With(zerr.Wrap(err, "failed to write property file"), "path", f.path)
	}
	if err := out.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to write property file"), "path", f.path)
	}
	return nil
}

// Reload re-reads the backing file, discarding unsaved in-memory changes.
func (f *File) Reload() error {
	p, err := load(f.path)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.p = p
	f.mu.Unlock()
	return nil
}
