package gfxcache

import "github.com/hashicorp/go-hclog"

import "gfxcache/asset"
import "gfxcache/cache"
import "gfxcache/config"
import "gfxcache/font"
import "gfxcache/fontcache"
import "gfxcache/loader"
import "gfxcache/resample"
import "gfxcache/zoom"

// Options carries the injected collaborators and the content-defined
// well-known sprite ids the engine can't derive from settings.
type Options struct {
	// Decodes sprites from asset containers. Required.
	Loader loader.SpriteLoader

	// The rendering backend's sprite encoder. Required.
	Encoder cache.Encoder

	// Placeholder substituted for missing or mistyped sprites.
	MissingSprite cache.SpriteID

	// Identity remap substituted for mistyped recolour sprites.
	IdentityRecolour cache.SpriteID

	// Upper bound of the reserved map generator id range, 0 for none.
	MapGenLimit cache.SpriteID

	// Root logger; subsystems log under named children. A nil logger
	// disables logging.
	Logger hclog.Logger
}

// Engine bundles the engine's asset subsystems, wired together from a
// settings value. The exported fields are the subsystems themselves;
// use them directly for anything the facade doesn't cover.
type Engine struct {
	Files   *asset.Registry
	Sprites *cache.Cache
	Library *font.Library
	Fonts   *fontcache.Registry
	Sound   *resample.Resampler

	settings config.Settings
	log      hclog.Logger
}

// Creates a new engine from the given settings and collaborators.
func New(settings config.Settings, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil { logger = hclog.NewNullLogger() }

	files := asset.NewRegistry(logger.Named("asset"))
	sprites := cache.New(files, opts.Loader, opts.Encoder, cache.Config{
		BudgetMB:         settings.SpriteCacheSizeMB,
		EvictionSlack:    settings.EvictionSlack,
		MissingSprite:    opts.MissingSprite,
		IdentityRecolour: opts.IdentityRecolour,
		MapGenLimit:      opts.MapGenLimit,
		MinZoom:          zoom.Level(settings.SpriteZoomMin),
		FontZoom:         zoom.Level(settings.FontZoom),
	}, logger.Named("sprite"))
	library := font.NewLibrary()

	return &Engine{
		Files:    files,
		Sprites:  sprites,
		Library:  library,
		Fonts:    fontcache.NewRegistry(sprites, library, logger.Named("font")),
		Sound:    resample.New(nil, logger.Named("sound")),
		settings: settings,
		log:      logger,
	}
}

// The settings the engine was built from.
func (self *Engine) Settings() config.Settings { return self.settings }

// SetupFonts builds the font caches for every size from the settings:
// the configured vector font and its fallbacks where given, and the
// built-in bitmap font anchored at the given base glyph sprites.
// Priority follows the prefer_sprite setting; vector fonts that fail
// to resolve are logged and skipped rather than failing the setup.
// Call it after the base sprites are registered and the configured
// fonts are parsed into [Engine.Library].
func (self *Engine) SetupFonts(glyphBases [fontcache.NumSizes]cache.SpriteID) {
	for size := fontcache.Size(0); size < fontcache.NumSizes; size++ {
		fontCfg := self.fontConfig(size)

		addVector := func() {
			if fontCfg.Font == "" { return }
			names := append([]string{fontCfg.Font}, fontCfg.Fallbacks...)
			for _, name := range names {
				_, err := self.Fonts.AddVectorFont(size, name, int(fontCfg.Size))
				if err != nil {
					self.log.Warn("skipping unusable font", "font", name, "size", size, "error", err)
				}
			}
		}
		addSprite := func() {
			if glyphBases[size] != 0 { self.Fonts.AddSpriteFont(size, glyphBases[size]) }
		}

		if self.settings.PreferSprite {
			addSprite()
			addVector()
		} else {
			addVector()
			addSprite()
		}
	}
	self.Fonts.Rebuild()
}

func (self *Engine) fontConfig(size fontcache.Size) config.FontConfig {
	switch size {
	case fontcache.SizeSmall: return self.settings.Small
	case fontcache.SizeLarge: return self.settings.Large
	case fontcache.SizeMono: return self.settings.Mono
	default: return self.settings.Medium
	}
}

// Maintain runs the periodic upkeep of the sprite cache. Call once
// per frame or scheduler tick.
func (self *Engine) Maintain() {
	self.Sprites.Maintain()
}

// Close releases everything: cached payloads, the sprite table and
// all open asset containers.
func (self *Engine) Close() {
	self.Sprites.ClearAll()
	self.log.Debug("engine closed")
}
