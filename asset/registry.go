package asset

import "github.com/hashicorp/go-hclog"

// A Registry deduplicates open asset files by filename so that every
// cache entry referencing the same container shares one handle.
//
// The registry follows the engine's single-writer-thread model: it is
// not safe for concurrent use.
type Registry struct {
	files []*File
	log   hclog.Logger
}

// Creates a new, empty file registry. A nil logger is replaced
// by [hclog.NewNullLogger]().
func NewRegistry(logger hclog.Logger) *Registry {
	if logger == nil { logger = hclog.NewNullLogger() }
	return &Registry{log: logger}
}

// Returns the already-open File for the given filename, or nil.
func (self *Registry) Lookup(filename string) *File {
	for _, file := range self.files {
		if file.Filename() == filename { return file }
	}
	return nil
}

// Opens the file at the given path, or returns the shared handle if it
// is already open. Reused handles are reset to the container start.
func (self *Registry) Open(filename string, paletteRemap bool) (*File, error) {
	if file := self.Lookup(filename); file != nil {
		file.SeekToBegin()
		return file, nil
	}
	file, err := Open(filename, paletteRemap)
	if err != nil { return nil, err }
	self.log.Debug("opened asset container", "file", filename)
	self.files = append(self.files, file)
	return file, nil
}

// Returns the number of currently open containers.
func (self *Registry) Count() int { return len(self.files) }

// Closes every open handle and empties the registry. The first close
// error is returned, but all handles are closed regardless.
func (self *Registry) Clear() error {
	var firstErr error
	for _, file := range self.files {
		err := file.Close()
		if err != nil && firstErr == nil { firstErr = err }
	}
	self.files = nil
	return firstErr
}
