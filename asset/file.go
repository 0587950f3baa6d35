package asset

import "os"
import "io"
import "encoding/binary"

// A File wraps a random-access handle to an on-disk asset container.
//
// Every read is self-positioning: the wrapper seeks to its own logical
// position before reading, so multiple logical consumers can share one
// File as long as they don't interleave reads within a single logical
// operation. The underlying OS cursor is never relied upon.
type File struct {
	filename     string
	handle       *os.File
	pos          int64
	size         int64
	paletteRemap bool
}

// Opens the file at the given path. The paletteRemap flag records
// whether payloads read from this container need a palette remap;
// the File itself only carries the flag, remapping is up to readers.
func Open(filename string, paletteRemap bool) (*File, error) {
	handle, err := os.Open(filename)
	if err != nil { return nil, err }
	info, err := handle.Stat()
	if err != nil {
		_ = handle.Close()
		return nil, err
	}
	return &File{
		filename:     filename,
		handle:       handle,
		size:         info.Size(),
		paletteRemap: paletteRemap,
	}, nil
}

// Returns the path this File was opened with.
func (self *File) Filename() string { return self.filename }

// Whether payloads from this container need a palette remap.
func (self *File) NeedsPaletteRemap() bool { return self.paletteRemap }

// Returns the current logical read position.
func (self *File) Pos() int64 { return self.pos }

// Returns the total size of the container in bytes.
func (self *File) Size() int64 { return self.size }

// Whether the logical position has reached the end of the container.
func (self *File) AtEnd() bool { return self.pos >= self.size }

// Moves the logical read position to an absolute byte offset.
func (self *File) SeekTo(pos int64) { self.pos = pos }

// Moves the logical read position back to the start of the container.
func (self *File) SeekToBegin() { self.pos = 0 }

// Advances the logical read position without reading.
func (self *File) SkipBytes(n int64) { self.pos += n }

// Reads exactly len(p) bytes at the current logical position and
// advances it. Returns [io.ErrUnexpectedEOF] on short reads.
func (self *File) ReadBlock(p []byte) error {
	n, err := self.handle.ReadAt(p, self.pos)
	self.pos += int64(n)
	if err == io.EOF && n == len(p) { err = nil }
	if err == io.EOF { err = io.ErrUnexpectedEOF }
	return err
}

// Reads a single byte.
func (self *File) ReadByte() (byte, error) {
	var buf [1]byte
	err := self.ReadBlock(buf[:])
	return buf[0], err
}

// Reads a little-endian 16-bit value.
func (self *File) ReadWord() (uint16, error) {
	var buf [2]byte
	err := self.ReadBlock(buf[:])
	return binary.LittleEndian.Uint16(buf[:]), err
}

// Reads a little-endian 32-bit value.
func (self *File) ReadDword() (uint32, error) {
	var buf [4]byte
	err := self.ReadBlock(buf[:])
	return binary.LittleEndian.Uint32(buf[:]), err
}

// Closes the underlying OS handle. The File must not be used after.
func (self *File) Close() error {
	if self.handle == nil { return nil }
	err := self.handle.Close()
	self.handle = nil
	return err
}
