package cache

import "gfxcache/asset"
import "gfxcache/loader"

// Container record type marking a recolour table instead of pixels.
const recolourRecord = 0xFF

// Pixel records carry a 7 byte dimension header after the type byte;
// together with the type byte that is 8 bytes of the declared length.
const pixelHeaderLen = 8

// RegisterNext reads the next sprite record from the file's sprite
// section, classifies it and registers it under the given id. The
// file is left positioned at the following record. Returns false when
// the section ends (zero-length record or end of file).
//
// Records that declare more payload than they contain are registered
// with an invalid location: they exist, but decoding them falls back
// to the placeholder instead of reading garbage.
func (self *Cache) RegisterNext(file *asset.File, id SpriteID, localID uint32, isFont bool, flags loader.ControlFlags) (bool, error) {
	if file.AtEnd() { return false, nil }
	num, err := file.ReadWord()
	if err != nil { return false, err }
	if num == 0 { return false, nil }

	typByte, err := file.ReadByte()
	if err != nil { return false, err }

	if typByte == recolourRecord {
		pos := file.Pos()
		file.SkipBytes(int64(num))
		return true, self.Register(id, file, pos, TypeRecolour, localID, uint32(num), flags)
	}

	typ := TypeNormal
	if isFont { typ = TypeFont }

	pos := file.Pos() - 3 // record start, length and type included
	if num < pixelHeaderLen {
		self.log.Warn("undersized sprite record", "sprite", id, "file", file.Filename())
		return true, self.Register(id, file, InvalidFilePos, typ, localID, 0, flags)
	}
	file.SkipBytes(pixelHeaderLen - 1)
	ok, err := loader.SkipSpriteData(file, typByte, num-pixelHeaderLen)
	if err != nil { return false, err }
	if !ok {
		self.log.Warn("corrupt sprite record", "sprite", id, "file", file.Filename())
		return true, self.Register(id, file, InvalidFilePos, typ, localID, 0, flags)
	}
	return true, self.Register(id, file, pos, typ, localID, 0, flags)
}
