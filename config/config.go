// The config subpackage loads the engine's graphics and font settings
// from a configuration file. It only produces plain [Settings] values;
// nothing here holds on to the file or watches it.
package config

import "github.com/spf13/viper"

// FontConfig selects the font used for one interface font size. An
// empty Font name selects the built-in bitmap font.
type FontConfig struct {
	Font      string   `mapstructure:"font"`
	Size      uint     `mapstructure:"size"`
	AA        bool     `mapstructure:"aa"`
	Fallbacks []string `mapstructure:"fallbacks"`
}

// Settings is the engine configuration in plain decoded form.
type Settings struct {
	// Sprite cache budget in MiB, scaled by renderer depth at runtime.
	SpriteCacheSizeMB uint `mapstructure:"sprite_cache_size_mb"`

	// Extra bytes freed beyond the deficit on each eviction pass.
	EvictionSlack uint64 `mapstructure:"eviction_slack"`

	// Coarsest zoom level kept as the sprite working baseline
	// (0 = full resolution, each step halves it).
	SpriteZoomMin uint8 `mapstructure:"sprite_zoom_min"`

	// Zoom level font sprites are rebased to.
	FontZoom uint8 `mapstructure:"font_zoom"`

	// Prefer the built-in bitmap font over configured vector fonts.
	PreferSprite bool `mapstructure:"prefer_sprite"`

	Small  FontConfig `mapstructure:"small_font"`
	Medium FontConfig `mapstructure:"medium_font"`
	Large  FontConfig `mapstructure:"large_font"`
	Mono   FontConfig `mapstructure:"mono_font"`

	// Mixer play rate sound effects are resampled to, in Hz.
	SoundRate int `mapstructure:"sound_rate"`
}

// Default returns the settings used when no configuration file exists.
func Default() Settings {
	return Settings{
		SpriteCacheSizeMB: 128,
		EvictionSlack:     512 * 1024,
		Small:             FontConfig{Size: 8, AA: true},
		Medium:            FontConfig{Size: 12, AA: true},
		Large:             FontConfig{Size: 18, AA: true},
		Mono:              FontConfig{Size: 12, AA: true},
		SoundRate:         44100,
	}
}

// Load reads the configuration file at the given path and returns the
// decoded settings on top of the defaults. Missing keys keep their
// default values; a missing file is an error, use [Default] for that
// case instead.
func Load(path string) (Settings, error) {
	settings := Default()

	v := viper.New()
	v.SetConfigFile(path)
	setDefaults(v, settings)
	if err := v.ReadInConfig(); err != nil { return settings, err }
	if err := v.Unmarshal(&settings); err != nil { return settings, err }
	return settings, nil
}

func setDefaults(v *viper.Viper, settings Settings) {
	v.SetDefault("sprite_cache_size_mb", settings.SpriteCacheSizeMB)
	v.SetDefault("eviction_slack", settings.EvictionSlack)
	v.SetDefault("sprite_zoom_min", settings.SpriteZoomMin)
	v.SetDefault("font_zoom", settings.FontZoom)
	v.SetDefault("prefer_sprite", settings.PreferSprite)
	v.SetDefault("sound_rate", settings.SoundRate)
	v.SetDefault("small_font.size", settings.Small.Size)
	v.SetDefault("small_font.aa", settings.Small.AA)
	v.SetDefault("medium_font.size", settings.Medium.Size)
	v.SetDefault("medium_font.aa", settings.Medium.AA)
	v.SetDefault("large_font.size", settings.Large.Size)
	v.SetDefault("large_font.aa", settings.Large.AA)
	v.SetDefault("mono_font.size", settings.Mono.Size)
	v.SetDefault("mono_font.aa", settings.Mono.AA)
}
