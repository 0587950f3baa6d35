package config

import "os"
import "path/filepath"
import "testing"

import "github.com/google/go-cmp/cmp"

func TestDefaults(t *testing.T) {
	settings := Default()
	if settings.SpriteCacheSizeMB == 0 { t.Fatal("zero default cache budget") }
	if settings.EvictionSlack != 512*1024 { t.Fatalf("unexpected slack %d", settings.EvictionSlack) }
	if settings.Medium.Size == 0 { t.Fatal("zero default font size") }
	if settings.SoundRate != 44100 { t.Fatalf("unexpected sound rate %d", settings.SoundRate) }
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "engine.yaml")
	content := []byte(`
sprite_cache_size_mb: 64
sprite_zoom_min: 2
medium_font:
  font: "Go Regular"
  size: 14
  fallbacks: ["Go Mono"]
`)
	if err := os.WriteFile(path, content, 0o644); err != nil { t.Fatal(err) }

	settings, err := Load(path)
	if err != nil { t.Fatal(err) }

	want := Default()
	want.SpriteCacheSizeMB = 64
	want.SpriteZoomMin = 2
	want.Medium.Font = "Go Regular"
	want.Medium.Size = 14
	want.Medium.Fallbacks = []string{"Go Mono"}
	if diff := cmp.Diff(want, settings); diff != "" {
		t.Fatalf("settings mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil { t.Fatal("missing file did not error") }
}
