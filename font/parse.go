package font

import "os"
import "io"
import "io/fs"
import "errors"
import "strings"

import "golang.org/x/image/font/sfnt"

// Similar to [sfnt.Parse](), but also including the font name in the
// returned values. The bytes must not be modified while the font is
// in use.
//
// This is a low level function; you may prefer to use a [Library]
// instead.
//
// [sfnt.Parse]: https://pkg.go.dev/golang.org/x/image/font/sfnt#Parse.
func ParseFromBytes(fontBytes []byte) (*sfnt.Font, string, error) {
	parsed, err := sfnt.Parse(fontBytes)
	if err != nil { return nil, "", err }
	name, err := GetName(parsed)
	return parsed, name, err
}

// Attempts to parse the font at the given filepath and returns it
// along with its name and any possible error. Supported formats are
// .ttf and .otf.
func ParseFromPath(path string) (*sfnt.Font, string, error) {
	if !hasValidFontExtension(path) {
		return nil, "", errors.New("invalid font path '" + path + "'")
	}
	file, err := os.Open(path)
	if err != nil { return nil, "", err }
	return parseFontFileAndClose(file)
}

// Same as [ParseFromPath](), but for filesystems. This is mainly
// provided to support [embed.FS] and embedded fonts.
func ParseFromFS(filesys fs.FS, path string) (*sfnt.Font, string, error) {
	if !hasValidFontExtension(path) {
		return nil, "", errors.New("invalid font path '" + path + "'")
	}
	file, err := filesys.Open(path)
	if err != nil { return nil, "", err }
	return parseFontFileAndClose(file)
}

// ---- helpers ----

func parseFontFileAndClose(file io.ReadCloser) (*sfnt.Font, string, error) {
	fontBytes, err := io.ReadAll(file)
	if err != nil {
		_ = file.Close()
		return nil, "", err
	}
	err = file.Close()
	if err != nil { return nil, "", err }
	return ParseFromBytes(fontBytes)
}

func hasValidFontExtension(path string) bool {
	return strings.HasSuffix(path, ".ttf") || strings.HasSuffix(path, ".otf")
}
