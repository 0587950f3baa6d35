package font

import "io/fs"
import "errors"
import "path/filepath"

import "golang.org/x/image/font/sfnt"

// A collection of parsed fonts accessible by name.
//
// The glyph caches look up their configured interface fonts and the
// fallback chain here, so anything that should be usable by name must
// be parsed into the library first. The library doesn't know about
// system fonts; the embedder decides which files or embedded assets
// get parsed in.
type Library struct {
	fonts map[string]*sfnt.Font
}

// Creates a new, empty font [Library].
func NewLibrary() *Library {
	return &Library{
		fonts: make(map[string]*sfnt.Font),
	}
}

// Returns the current number of fonts in the library.
func (self *Library) Size() int { return len(self.fonts) }

// Finds out whether a font with the given name exists in the library.
func (self *Library) HasFont(name string) bool {
	_, found := self.fonts[name]
	return found
}

// Returns the font with the given name, or nil if not found.
//
// Font names are the full names reported by the fonts themselves, as
// returned by the parsing functions or [GetName]().
func (self *Library) GetFont(name string) *sfnt.Font {
	fnt, found := self.fonts[name]
	if found { return fnt }
	return nil
}

// Adds an already parsed font into the library and returns its name
// and any possible error. If another font with the same name was
// already present, [ErrAlreadyPresent] will be returned.
func (self *Library) AddFont(fnt *sfnt.Font) (string, error) {
	name, err := GetName(fnt)
	if err != nil { return "", err }
	return name, self.addNewFont(fnt, name)
}

// Returns false if the font can't be removed due to not being found.
func (self *Library) RemoveFont(name string) bool {
	_, found := self.fonts[name]
	if !found { return false }
	delete(self.fonts, name)
	return true
}

// Parses the font at the given path into the library and returns its
// name and any possible error. If error == nil, the font name will be
// non-empty.
//
// If a font with the same name has already been parsed or added,
// [ErrAlreadyPresent] will be returned.
func (self *Library) ParseFromPath(path string) (string, error) {
	fnt, name, err := ParseFromPath(path)
	if err != nil { return name, err }
	return name, self.addNewFont(fnt, name)
}

// The equivalent of [Library.ParseFromPath]() for raw font bytes.
// The bytes must not be modified while the font is in use. When in
// doubt, pass a copy.
func (self *Library) ParseFromBytes(fontBytes []byte) (string, error) {
	fnt, name, err := ParseFromBytes(fontBytes)
	if err != nil { return name, err }
	return name, self.addNewFont(fnt, name)
}

// An error returned when a font is not added due to its name already
// being present in the [Library].
var ErrAlreadyPresent = errors.New("font already present in the library")

func (self *Library) addNewFont(fnt *sfnt.Font, name string) error {
	if self.HasFont(name) { return ErrAlreadyPresent }
	self.fonts[name] = fnt
	return nil
}

// Special error that can be used with [Library.EachFont]() to break
// early. When used, the method will return early but still return a
// nil error.
var ErrBreakEach = errors.New("EachFont() early break")

// Calls the given function for each font in the library, passing their
// names and content as arguments, in pseudo-random order.
//
// If the given function returns a non-nil error, the method will
// immediately stop and return that error, with the only exception of
// [ErrBreakEach].
func (self *Library) EachFont(fontFunc func(string, *sfnt.Font) error) error {
	for name, fnt := range self.fonts {
		err := fontFunc(name, fnt)
		if err != nil {
			if err == ErrBreakEach { return nil }
			return err
		}
	}
	return nil
}

// Walks the given directory non-recursively and adds all the .ttf and
// .otf fonts in it. Returns the number of fonts added, the number of
// fonts skipped (already present in the library) and any error that
// might happen during the process.
func (self *Library) ParseAllFromPath(dirName string) (added, skipped int, err error) {
	absDirPath, err := filepath.Abs(dirName)
	if err != nil { return 0, 0, err }

	err = filepath.WalkDir(absDirPath,
		func(path string, info fs.DirEntry, err error) error {
			if err != nil { return err }
			if info.IsDir() {
				if path == absDirPath { return nil }
				return fs.SkipDir
			}

			if !hasValidFontExtension(path) { return nil }
			_, err = self.ParseFromPath(path)
			if err == ErrAlreadyPresent {
				skipped += 1
				return nil
			}
			if err == nil { added += 1 }
			return err
		})
	return added, skipped, err
}

// The equivalent of [Library.ParseFromPath]() for filesystems.
// This is mainly provided to support [embed.FS] and embedded fonts.
func (self *Library) ParseFromFS(filesys fs.FS, path string) (string, error) {
	fnt, name, err := ParseFromFS(filesys, path)
	if err != nil { return name, err }
	return name, self.addNewFont(fnt, name)
}

// The equivalent of [Library.ParseAllFromPath]() for filesystems.
func (self *Library) ParseAllFromFS(filesys fs.FS, dirName string) (added, skipped int, err error) {
	entries, err := fs.ReadDir(filesys, dirName)
	if err != nil { return 0, 0, err }

	if dirName == "." {
		dirName = ""
	} else if len(dirName) == 0 || dirName[len(dirName)-1] != '/' {
		dirName += "/"
	}

	for _, entry := range entries {
		if entry.IsDir() { continue }
		if !hasValidFontExtension(entry.Name()) { continue }
		path := dirName + entry.Name()
		_, err = self.ParseFromFS(filesys, path)
		if err == ErrAlreadyPresent {
			skipped += 1
			continue
		}
		if err != nil { return added, skipped, err }
		added += 1
	}
	return added, skipped, nil
}
