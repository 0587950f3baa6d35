package font

import "testing"

import "golang.org/x/image/font/gofont/goregular"

func TestLibrary(t *testing.T) {
	library := NewLibrary()
	if library.Size() != 0 { t.Fatalf("fresh library has %d fonts", library.Size()) }

	name, err := library.ParseFromBytes(goregular.TTF)
	if err != nil { t.Fatalf("parse failed: %s", err) }
	if name == "" { t.Fatal("parsed font has no name") }
	if !library.HasFont(name) { t.Fatalf("font %q not in library", name) }
	if library.GetFont(name) == nil { t.Fatalf("font %q not retrievable", name) }

	_, err = library.ParseFromBytes(goregular.TTF)
	if err != ErrAlreadyPresent { t.Fatalf("expected ErrAlreadyPresent, got %v", err) }

	if !library.RemoveFont(name) { t.Fatal("font removal failed") }
	if library.HasFont(name) { t.Fatal("font still present after removal") }
	if library.RemoveFont(name) { t.Fatal("removing twice reported success") }
}

func TestProperties(t *testing.T) {
	fnt, name, err := ParseFromBytes(goregular.TTF)
	if err != nil { t.Fatalf("parse failed: %s", err) }
	if name == "" { t.Fatal("empty font name") }

	family, err := GetFamily(fnt)
	if err != nil { t.Fatalf("family lookup failed: %s", err) }
	if family == "" { t.Fatal("empty family name") }
}

func TestMissingRunes(t *testing.T) {
	fnt, _, err := ParseFromBytes(goregular.TTF)
	if err != nil { t.Fatalf("parse failed: %s", err) }

	missing, err := MissingRunes(fnt, "ab中ま")
	if err != nil { t.Fatalf("coverage scan failed: %s", err) }
	if missing.Has('a') || missing.Has('b') { t.Fatal("latin runes reported missing") }
	if !missing.Has('中') || !missing.Has('ま') {
		t.Fatalf("CJK runes not reported missing (%d entries)", missing.Size())
	}
}
