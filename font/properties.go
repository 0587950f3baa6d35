package font

import "sync"
import "errors"

import "golang.org/x/image/font/sfnt"
import "github.com/zyedidia/generic/mapset"

var ErrNotFound = errors.New("font property not found or empty")

// One shared sfnt.Buffer for property lookups. These buffers can't be
// used concurrently, so it is guarded by a mutex; lookups are rare
// enough (config load, font scan) that contention is a non-issue.
var sfntBufferMutex sync.Mutex
var sfntBuffer sfnt.Buffer

// Returns the requested font property for the given font.
// The returned property string might be empty even when error is nil.
// If the property is missing, [ErrNotFound] will be returned.
func GetProperty(fnt *sfnt.Font, property sfnt.NameID) (string, error) {
	sfntBufferMutex.Lock()
	str, err := fnt.Name(&sfntBuffer, property)
	sfntBufferMutex.Unlock()
	if err == sfnt.ErrNotFound { return "", ErrNotFound }
	return str, err
}

// Returns the family name of the given font. If the information is
// missing, [ErrNotFound] will be returned. Other errors are also
// possible (e.g., if the font naming table is invalid).
func GetFamily(fnt *sfnt.Font) (string, error) {
	return GetProperty(fnt, sfnt.NameIDFamily)
}

// Returns the subfamily name of the given font, most commonly one of
// Regular, Italic, Bold or Bold Italic. If the information is missing,
// [ErrNotFound] will be returned.
func GetSubfamily(fnt *sfnt.Font) (string, error) {
	return GetProperty(fnt, sfnt.NameIDSubfamily)
}

// Returns the full name of the given font. If the information is
// missing, [ErrNotFound] will be returned.
func GetName(fnt *sfnt.Font) (string, error) {
	return GetProperty(fnt, sfnt.NameIDFull)
}

// Returns the identifier of the given font. If the information is
// missing, [ErrNotFound] will be returned.
func GetIdentifier(fnt *sfnt.Font) (string, error) {
	return GetProperty(fnt, sfnt.NameIDUniqueIdentifier)
}

// Returns the set of runes in the given text that the font has no
// glyph for. This is how fallback font candidates are checked for
// actually covering the strings that triggered the fallback search.
func MissingRunes(fnt *sfnt.Font, text string) (mapset.Set[rune], error) {
	sfntBufferMutex.Lock()
	defer sfntBufferMutex.Unlock()

	missing := mapset.New[rune]()
	for _, codePoint := range text {
		index, err := fnt.GlyphIndex(&sfntBuffer, codePoint)
		if err != nil { return missing, err }
		if index == 0 { missing.Put(codePoint) }
	}
	return missing, nil
}
